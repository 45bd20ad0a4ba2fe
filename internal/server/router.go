// Package server assembles the HTTP API.
package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/faciam-dev/customfields/internal/api/handler"
	"github.com/faciam-dev/customfields/internal/auditlog"
	"github.com/faciam-dev/customfields/internal/auth"
	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/customfields/internal/customfield/audit"
	"github.com/faciam-dev/customfields/internal/customfield/store"
	"github.com/faciam-dev/customfields/internal/events"
	"github.com/faciam-dev/customfields/internal/logger"
	"github.com/faciam-dev/customfields/internal/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the API. db may be nil when only the OpenAPI document is needed.
func New(db *sql.DB, cfg DBConfig, fields config.Config) (huma.API, *store.Store, error) {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/healthz", healthz(db))

	fields = cfg.FieldConfig(fields)
	st, err := store.New(db, cfg.Driver, fields)
	if err != nil {
		return nil, nil, fmt.Errorf("store: %w", err)
	}

	api := humachi.New(r, huma.DefaultConfig("CustomField API", "1.0.0"))
	api.UseMiddleware(middleware.MetricsMW)
	if secret := jwtSecret(); secret != "" {
		api.UseMiddleware(auth.Middleware(api, auth.NewJWT(secret, 15*time.Minute)))
	} else {
		logger.L.Warn("JWT_SECRET is not set; API authentication disabled")
	}

	if db != nil {
		if err := initEvents(db, cfg.Driver, fields.TablePrefix); err != nil {
			return nil, nil, err
		}
	}

	rec := &audit.Recorder{DB: db, Driver: cfg.Driver, TablePrefix: fields.TablePrefix}
	handler.RegisterSelection(api, &handler.SelectionHandler{Store: st, Recorder: rec})
	handler.RegisterAudit(api, &handler.AuditHandler{Repo: &auditlog.Repo{DB: db, Driver: cfg.Driver, TablePrefix: fields.TablePrefix}})
	return api, st, nil
}

func healthz(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

// initEvents initializes the global events dispatcher.
func initEvents(db *sql.DB, driver, tablePrefix string) error {
	evtConf, err := events.LoadConfig(os.Getenv("CF_EVENTS_CONFIG"))
	if err != nil {
		return fmt.Errorf("load events configuration: %w", err)
	}
	var sinks []events.Sink
	if wh := events.NewWebhookSink(evtConf.Sinks.Webhook); wh != nil {
		sinks = append(sinks, wh)
	}
	if rs, err := events.NewRedisSink(evtConf.Sinks.Redis); err == nil && rs != nil {
		sinks = append(sinks, rs)
	} else if err != nil {
		logger.L.Error("redis sink", "err", err)
	}
	if ks, err := events.NewKafkaSink(evtConf.Sinks.Kafka); err == nil && ks != nil {
		sinks = append(sinks, ks)
	} else if err != nil {
		logger.L.Error("kafka sink", "err", err)
	}
	events.Default = events.NewDispatcher(evtConf, &events.SQLDLQ{DB: db, Driver: driver, TablePrefix: tablePrefix}, sinks...)
	return nil
}

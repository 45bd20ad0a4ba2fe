package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/customfields/internal/logger"
	"github.com/faciam-dev/customfields/internal/server"
	"github.com/faciam-dev/customfields/pkg/metrics"
	"github.com/faciam-dev/customfields/pkg/util"
)

func main() {
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "database DSN")
	driver := flag.String("driver", "postgres", "database driver")
	tblPrefix := flag.String("table-prefix", util.GetEnv("TABLE_PREFIX", ""), "table prefix")
	cfgPath := flag.String("config", os.Getenv("CF_CONFIG"), "YAML file with table_prefix and type_mappings")
	addr := flag.String("addr", ":8080", "listen address")
	openapi := flag.String("openapi", "", "write OpenAPI JSON and exit")
	flag.Parse()

	logger.Set(logger.FromEnv())

	driverProvided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "driver" {
			driverProvided = true
		}
	})

	if *dsn != "" {
		if detected, err := util.DetectDriver(*dsn); err != nil {
			if !driverProvided || *driver == "" {
				logger.L.Error("detect driver", "err", err)
				os.Exit(1)
			}
		} else {
			if !driverProvided || *driver == "" {
				*driver = detected
			} else if *driver != detected {
				logger.L.Error("driver mismatch", "driver", *driver, "expected", detected)
				os.Exit(1)
			}
		}
	}

	fields, err := config.Load(*cfgPath)
	if err != nil {
		logger.L.Error("load config", "path", *cfgPath, "err", err)
		os.Exit(1)
	}
	dbCfg := server.DBConfig{Driver: *driver, DSN: *dsn, TablePrefix: *tblPrefix}
	fields = dbCfg.FieldConfig(fields)

	var db *sql.DB
	if *dsn != "" && *openapi == "" {
		openDSN := *dsn
		if *driver == "mysql" {
			openDSN = util.MySQLDSN(openDSN)
		}
		db, err = sql.Open(*driver, openDSN)
		if err != nil {
			logger.L.Error("db open", "err", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := config.CheckPrefix(context.Background(), db, util.DialectFromDriver(*driver), fields.TablePrefix); err != nil {
			logger.L.Error("prefix check", "err", err)
			os.Exit(1)
		}
	}
	logger.L.Info("configuration", "driver", *driver, "table_prefix", fields.TablePrefix)

	api, st, err := server.New(db, dbCfg, fields)
	if err != nil {
		logger.L.Error("build api", "err", err)
		os.Exit(1)
	}

	if *openapi != "" {
		data, err := json.MarshalIndent(api.OpenAPI(), "", "  ")
		if err != nil {
			logger.L.Error("marshal openapi", "err", err)
			os.Exit(1)
		}
		p := filepath.Clean(*openapi)
		if err := os.WriteFile(p, data, 0o600); err != nil {
			logger.L.Error("write openapi", "err", err)
			os.Exit(1)
		}
		return
	}

	if db != nil {
		s, err := metrics.StartFieldGauge(context.Background(), st, 30*time.Second)
		if err != nil {
			logger.L.Error("schedule field gauge", "err", err)
		} else {
			defer s.Stop()
		}
	}

	logger.L.Info("listening", "addr", *addr)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      api.Adapter(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.L.Error("server error", "err", err)
		os.Exit(1)
	}
}

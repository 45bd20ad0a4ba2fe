package sdk

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/faciam-dev/customfields/internal/config"
	"github.com/faciam-dev/customfields/internal/customfield/audit"
	"github.com/faciam-dev/customfields/internal/customfield/store"
	"github.com/faciam-dev/customfields/internal/events"
)

// ErrNoDatabase is returned by field operations when the service was built
// without a database connection.
var ErrNoDatabase = errors.New("sdk: no database configured")

// Service provides database operations for custom fields.
type Service interface {
	// ListSelectionFields returns selection fields, optionally narrowed to
	// one plain type name.
	ListSelectionFields(ctx context.Context, typeName string) ([]CustomField, error)
	// CreateSelectionField stores a selection field with its values.
	CreateSelectionField(ctx context.Context, typeName string, in SelectionFieldInput) (CustomField, error)
	// ListPlainTypes returns the plain type catalog.
	ListPlainTypes(ctx context.Context) ([]PlainType, error)
	// MigrateRegistry upgrades or downgrades the schema.
	MigrateRegistry(ctx context.Context, cfg DBConfig, target int) error
	// RegistryVersion returns the current schema version.
	RegistryVersion(ctx context.Context, cfg DBConfig) (int, error)
}

// New returns a Service initialized with the given configuration.
func New(cfg ServiceConfig) (Service, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	actor := cfg.Actor
	if actor == "" {
		actor = "sdk"
	}
	fields := cfg.Fields
	if fields.TypeMappings == nil {
		prefix := fields.TablePrefix
		fields = config.Default()
		fields.TablePrefix = prefix
	}
	s := &service{logger: logger, recorder: cfg.Recorder, actor: actor, db: cfg.DB, driver: cfg.Driver}
	if cfg.DB != nil {
		st, err := store.New(cfg.DB, cfg.Driver, fields)
		if err != nil {
			return nil, err
		}
		s.store = st
	}
	return s, nil
}

type service struct {
	logger   *zap.SugaredLogger
	recorder *audit.Recorder
	actor    string
	db       *sql.DB
	driver   string
	store    *store.Store
}

func (s *service) ListSelectionFields(ctx context.Context, typeName string) ([]CustomField, error) {
	if s.store == nil {
		return nil, ErrNoDatabase
	}
	return s.store.ListSelectionFields(ctx, typeName)
}

func (s *service) CreateSelectionField(ctx context.Context, typeName string, in SelectionFieldInput) (CustomField, error) {
	if s.store == nil {
		return CustomField{}, ErrNoDatabase
	}
	cf, err := s.store.CreateSelectionField(ctx, typeName, in)
	if err != nil {
		return CustomField{}, err
	}
	s.logger.Infow("selection field created", "id", cf.ID, "name", cf.Name, "type", typeName)
	if err := s.recorder.Write(ctx, s.actor, nil, &cf); err != nil {
		s.logger.Errorw("audit write failed", "id", cf.ID, "error", err)
	}
	events.Emit(ctx, events.New(events.SelectionCreated, cf))
	return cf, nil
}

func (s *service) ListPlainTypes(ctx context.Context) ([]PlainType, error) {
	if s.store == nil {
		return nil, ErrNoDatabase
	}
	return s.store.ListPlainTypes(ctx)
}

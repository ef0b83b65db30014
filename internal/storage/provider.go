package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"status-page/internal/config"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrUniqueViolation   = errors.New("unique constraint violation")
	ErrForeignKeyMissing = errors.New("referenced record does not exist")
)

type Provider interface {
	Close() error
	Ping(ctx context.Context) error
	GetSchemaVersion(ctx context.Context) (int, error)
	MigrateTo(ctx context.Context, target int) error

	// API key methods
	CreateAPIKey(ctx context.Context, key APIKey) (*APIKey, error)
	APIKeyExists(ctx context.Context, key string) (bool, error)
	ListAPIKeys(ctx context.Context) ([]APIKey, error)
	DeleteAPIKey(ctx context.Context, key string) error

	// Site metadata methods
	GetSiteInfo(ctx context.Context) (*SiteInfo, error)
	SetSiteInfo(ctx context.Context, info SiteInfo) error

	// Component methods
	CreateComponent(ctx context.Context, component Component) (*Component, error)
	GetComponentByName(ctx context.Context, name string) (*Component, error)
	ListComponents(ctx context.Context) ([]Component, error)

	// Status update methods
	CreateStatusUpdate(ctx context.Context, update StatusUpdate) (*StatusUpdate, error)
	ListStatusUpdates(ctx context.Context, componentID int64, startDate, endDate string) ([]StatusUpdate, error)
}

func NewProvider(config *config.Storage) (Provider, error) {
	switch {
	case config.SQLite != nil:
		provider, err := NewSQLiteProvider(config)
		if err != nil {
			return nil, err
		}
		if err := provider.runMigrations(); err != nil {
			provider.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return provider, nil

	default:
		slog.Error("Unsupported storage configuration", "config", config)
	}

	return nil, fmt.Errorf("unsupported storage configuration")
}

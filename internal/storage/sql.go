package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"status-page/internal/config"
)

type SQLProvider struct {
	db     *sqlx.DB
	driver string

	config *config.Storage

	logger *slog.Logger
}

func NewSQLProvider(config *config.Storage, driverName string, dataSource string) (*SQLProvider, error) {
	db, err := sqlx.Open(driverName, dataSource)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	logger := slog.With("component", "storage")

	return &SQLProvider{
		db:     db,
		driver: driverName,
		config: config,
		logger: logger,
	}, nil
}

func (p *SQLProvider) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

func (p *SQLProvider) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// translateError maps driver constraint errors to storage errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
		case sqlite3.ErrConstraintForeignKey:
			return fmt.Errorf("%w: %v", ErrForeignKeyMissing, err)
		}
	}
	return err
}

// withTx runs fn inside a transaction. The transaction is rolled back if fn
// returns an error or panics.
func (p *SQLProvider) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				p.logger.Error("Failed to roll back transaction", "error", rbErr)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// ---------------------------------------------------------------------------
// API keys
// ---------------------------------------------------------------------------

func (p *SQLProvider) CreateAPIKey(ctx context.Context, key APIKey) (*APIKey, error) {
	if key.CreatedAt.IsZero() {
		key.CreatedAt = time.Now().UTC()
	}
	res, err := p.db.ExecContext(ctx,
		`INSERT INTO api_keys ("key", created_at) VALUES (?, ?)`,
		key.Key, key.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	if key.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &key, nil
}

func (p *SQLProvider) APIKeyExists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := p.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM api_keys WHERE "key" = ?)`, key)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (p *SQLProvider) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	keys := []APIKey{}
	err := p.db.SelectContext(ctx, &keys,
		`SELECT id, "key", created_at FROM api_keys ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (p *SQLProvider) DeleteAPIKey(ctx context.Context, key string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM api_keys WHERE "key" = ?`, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ---------------------------------------------------------------------------
// Site metadata
// ---------------------------------------------------------------------------

func (p *SQLProvider) GetSiteInfo(ctx context.Context) (*SiteInfo, error) {
	var info SiteInfo
	err := p.db.GetContext(ctx, &info,
		`SELECT id, COALESCE(title, '') AS title, COALESCE(description, '') AS description
		FROM web_info ORDER BY id LIMIT 1`)
	if err != nil {
		return nil, translateError(err)
	}
	return &info, nil
}

// SetSiteInfo replaces the single site metadata row.
func (p *SQLProvider) SetSiteInfo(ctx context.Context, info SiteInfo) error {
	return p.withTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM web_info`); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO web_info (title, description) VALUES (?, ?)`,
			info.Title, info.Description)
		return err
	})
}

// ---------------------------------------------------------------------------
// Components
// ---------------------------------------------------------------------------

// CreateComponent inserts a component. A duplicate name fails with
// ErrUniqueViolation from the table constraint, so concurrent creations
// of the same name cannot both succeed.
func (p *SQLProvider) CreateComponent(ctx context.Context, component Component) (*Component, error) {
	if component.CreatedAt.IsZero() {
		component.CreatedAt = time.Now().UTC()
	}
	res, err := p.db.ExecContext(ctx,
		`INSERT INTO components (name, website, created_at) VALUES (?, ?, ?)`,
		component.Name, component.Website, component.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	if component.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return &component, nil
}

func (p *SQLProvider) GetComponentByName(ctx context.Context, name string) (*Component, error) {
	var component Component
	err := p.db.GetContext(ctx, &component,
		`SELECT id, name, website, created_at FROM components WHERE name = ?`, name)
	if err != nil {
		return nil, translateError(err)
	}
	return &component, nil
}

func (p *SQLProvider) ListComponents(ctx context.Context) ([]Component, error) {
	components := []Component{}
	err := p.db.SelectContext(ctx, &components,
		`SELECT id, name, website, created_at FROM components ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return components, nil
}

// ---------------------------------------------------------------------------
// Status updates
// ---------------------------------------------------------------------------

// CreateStatusUpdate checks the component exists and inserts the update in
// one transaction. A missing component fails with ErrForeignKeyMissing.
func (p *SQLProvider) CreateStatusUpdate(ctx context.Context, update StatusUpdate) (*StatusUpdate, error) {
	if update.CreatedAt.IsZero() {
		update.CreatedAt = time.Now().UTC()
	}

	err := p.withTx(ctx, func(tx *sqlx.Tx) error {
		var exists bool
		if err := tx.GetContext(ctx, &exists,
			`SELECT EXISTS(SELECT 1 FROM components WHERE id = ?)`, update.ComponentID); err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%w: component %d", ErrForeignKeyMissing, update.ComponentID)
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO status_updates (component_id, status, date, created_at) VALUES (?, ?, ?, ?)`,
			update.ComponentID, update.Status, update.Date, update.CreatedAt)
		if err != nil {
			return translateError(err)
		}
		update.ID, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return nil, err
	}
	return &update, nil
}

// ListStatusUpdates returns the updates of a component with startDate <= date <= endDate,
// ordered by date. Dates are YYYY-MM-DD strings, which sort chronologically.
func (p *SQLProvider) ListStatusUpdates(ctx context.Context, componentID int64, startDate, endDate string) ([]StatusUpdate, error) {
	updates := []StatusUpdate{}
	err := p.db.SelectContext(ctx, &updates,
		`SELECT id, component_id, status, date, created_at
		FROM status_updates
		WHERE component_id = ? AND date >= ? AND date <= ?
		ORDER BY date, id`,
		componentID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	return updates, nil
}

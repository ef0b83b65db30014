package storage

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"status-page/internal/config"
)

func newTestProvider(t *testing.T) Provider {
	t.Helper()
	p, err := NewProvider(&config.Storage{SQLite: &config.SQLiteStorage{Path: ":memory:"}})
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestNewProvider_Unsupported(t *testing.T) {
	_, err := NewProvider(&config.Storage{})
	assert.Error(t, err)
}

func TestMigrations_Idempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "status.db")
	cfg := &config.Storage{SQLite: &config.SQLiteStorage{Path: path}}

	p, err := NewProvider(cfg)
	require.NoError(t, err)
	_, err = p.CreateComponent(ctx, Component{Name: "API", Website: "https://api.example.com"})
	require.NoError(t, err)
	require.NoError(t, p.Close())

	p, err = NewProvider(cfg)
	require.NoError(t, err)
	defer p.Close()

	version, err := p.GetSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	components, err := p.ListComponents(ctx)
	require.NoError(t, err)
	assert.Len(t, components, 1)
}

func TestMigrateTo_DownAndUp(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	require.NoError(t, p.MigrateTo(ctx, 0))
	version, err := p.GetSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	_, err = p.ListComponents(ctx)
	assert.Error(t, err, "tables are dropped at version 0")

	require.NoError(t, p.MigrateTo(ctx, -1))
	version, err = p.GetSchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	assert.ErrorIs(t, p.MigrateTo(ctx, 99), ErrMigrateTargetVersionInvalid)
}

func TestAPIKeys(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	exists, err := p.APIKeyExists(ctx, "secret")
	require.NoError(t, err)
	assert.False(t, exists)

	created, err := p.CreateAPIKey(ctx, APIKey{Key: "secret"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	_, err = p.CreateAPIKey(ctx, APIKey{Key: "secret"})
	assert.ErrorIs(t, err, ErrUniqueViolation)

	exists, err = p.APIKeyExists(ctx, "secret")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = p.APIKeyExists(ctx, "SECRET")
	require.NoError(t, err)
	assert.False(t, exists, "keys are compared exactly")

	keys, err := p.ListAPIKeys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "secret", keys[0].Key)

	require.NoError(t, p.DeleteAPIKey(ctx, "secret"))
	assert.ErrorIs(t, p.DeleteAPIKey(ctx, "secret"), ErrNotFound)
}

func TestSiteInfo(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, err := p.GetSiteInfo(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, p.SetSiteInfo(ctx, SiteInfo{Title: "Acme", Description: "Acme services"}))
	require.NoError(t, p.SetSiteInfo(ctx, SiteInfo{Title: "Acme Status"}))

	info, err := p.GetSiteInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Acme Status", info.Title)
	assert.Empty(t, info.Description)
}

func TestComponents(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	components, err := p.ListComponents(ctx)
	require.NoError(t, err)
	assert.NotNil(t, components)
	assert.Empty(t, components)

	for _, name := range []string{"Web", "API", "DB"} {
		_, err := p.CreateComponent(ctx, Component{Name: name, Website: "https://" + name + ".example.com"})
		require.NoError(t, err)
	}

	_, err = p.CreateComponent(ctx, Component{Name: "API", Website: "https://other.example.com"})
	assert.ErrorIs(t, err, ErrUniqueViolation)

	components, err = p.ListComponents(ctx)
	require.NoError(t, err)
	require.Len(t, components, 3)
	assert.Equal(t, "Web", components[0].Name, "insertion order is kept")
	assert.Equal(t, "DB", components[2].Name)

	c, err := p.GetComponentByName(ctx, "API")
	require.NoError(t, err)
	assert.Equal(t, "https://API.example.com", c.Website)

	_, err = p.GetComponentByName(ctx, "api")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComponents_ConcurrentDuplicate(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := p.CreateComponent(ctx, Component{Name: "Race", Website: "https://race.example.com"}); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestStatusUpdates(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	c, err := p.CreateComponent(ctx, Component{Name: "API", Website: "https://api.example.com"})
	require.NoError(t, err)
	other, err := p.CreateComponent(ctx, Component{Name: "Web", Website: "https://web.example.com"})
	require.NoError(t, err)

	inserts := []StatusUpdate{
		{ComponentID: c.ID, Status: "working", Date: "2024-05-31"},
		{ComponentID: c.ID, Status: "outage", Date: "2024-06-01"},
		{ComponentID: c.ID, Status: "working", Date: "2024-06-01"},
		{ComponentID: c.ID, Status: "working", Date: "2024-06-11"},
		{ComponentID: other.ID, Status: "outage", Date: "2024-06-01"},
	}
	for _, u := range inserts {
		_, err := p.CreateStatusUpdate(ctx, u)
		require.NoError(t, err)
	}

	updates, err := p.ListStatusUpdates(ctx, c.ID, "2024-06-01", "2024-06-10")
	require.NoError(t, err)
	require.Len(t, updates, 2)
	for _, u := range updates {
		assert.Equal(t, "2024-06-01", u.Date)
		assert.Equal(t, c.ID, u.ComponentID)
	}

	updates, err = p.ListStatusUpdates(ctx, c.ID, "2024-05-31", "2024-06-11")
	require.NoError(t, err)
	assert.Len(t, updates, 4, "both bounds are inclusive")
}

func TestStatusUpdates_UnknownComponent(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	_, err := p.CreateStatusUpdate(ctx, StatusUpdate{ComponentID: 42, Status: "working", Date: "2024-06-01"})
	assert.ErrorIs(t, err, ErrForeignKeyMissing)

	updates, err := p.ListStatusUpdates(ctx, 42, "0000-01-01", "9999-12-31")
	require.NoError(t, err)
	assert.Empty(t, updates)
}

func TestPing(t *testing.T) {
	p := newTestProvider(t)
	assert.NoError(t, p.Ping(context.Background()))
}

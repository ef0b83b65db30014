package statuspage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/patrickmn/go-cache"

	"status-page/internal/clock"
	"status-page/internal/status"
	"status-page/internal/storage"
)

// ComponentHistory is one entry of the public status listing.
type ComponentHistory struct {
	Name          string         `json:"name" yaml:"name"`
	Website       string         `json:"website" yaml:"website"`
	StatusHistory []status.Color `json:"status_history" yaml:"status_history"`
}

// Options configures a Service.
type Options struct {
	// WindowDays is how many days before today the history reaches back.
	WindowDays int
	// CacheTTL is how long a computed listing is reused. Zero disables caching.
	CacheTTL time.Duration
	Clock    clock.Clock
}

// Service ties the registry, the event log and the aggregator together.
type Service struct {
	Keys       *KeyStore
	Components *Registry
	Events     *EventLog

	clock      clock.Clock
	windowDays int
	cacheTTL   time.Duration
	cache      *cache.Cache
	// generation is bumped by every write and is part of the cache key, so
	// a listing computed before a write is never served after it.
	generation atomic.Uint64
	logger     *slog.Logger
}

func NewService(provider storage.Provider, opts Options) *Service {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real()
	}
	windowDays := opts.WindowDays
	if windowDays < 0 {
		windowDays = status.DefaultWindowDays
	}

	return &Service{
		Keys:       NewKeyStore(provider),
		Components: NewRegistry(provider, clk),
		Events:     NewEventLog(provider, clk),
		clock:      clk,
		windowDays: windowDays,
		cacheTTL:   opts.CacheTTL,
		cache:      cache.New(opts.CacheTTL, 10*time.Minute),
		logger:     slog.With("component", "statuspage"),
	}
}

// Window returns the aggregation window ending today.
func (s *Service) Window() status.Window {
	return status.TrailingWindow(s.clock.Now(), s.windowDays)
}

// AddComponent registers a component and invalidates cached listings.
func (s *Service) AddComponent(ctx context.Context, name, website string) (*storage.Component, error) {
	component, err := s.Components.Create(ctx, name, website)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return component, nil
}

func (s *Service) invalidate() {
	s.generation.Add(1)
	s.cache.Flush()
}

// UpdateStatus records a status for the named component. Status and date
// are validated before the component is looked up.
func (s *Service) UpdateStatus(ctx context.Context, name, st, date string) error {
	if _, err := status.ParseStatus(st); err != nil {
		return errors.Join(ErrValidation, err)
	}
	if _, err := status.ParseDate(date); err != nil {
		return errors.Join(ErrValidation, err)
	}

	component, err := s.Components.FindByName(ctx, name)
	if err != nil {
		return err
	}

	if err := s.Events.Append(ctx, component.ID, st, date); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// List returns every component with its color history over the current
// window. One window is used for all components of a call.
func (s *Service) List(ctx context.Context) ([]ComponentHistory, error) {
	w := s.Window()
	cacheKey := "list:" + status.FormatDate(w.End) + ":" + strconv.FormatUint(s.generation.Load(), 10)

	if s.cacheTTL > 0 {
		if cached, ok := s.cache.Get(cacheKey); ok {
			return cached.([]ComponentHistory), nil
		}
	}

	components, err := s.Components.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]ComponentHistory, 0, len(components))
	for _, c := range components {
		events, err := s.Events.QueryRange(ctx, c.ID, w.Start, w.End)
		if err != nil {
			return nil, fmt.Errorf("component %q: %w", c.Name, err)
		}
		result = append(result, ComponentHistory{
			Name:          c.Name,
			Website:       c.Website,
			StatusHistory: status.Aggregate(w, events),
		})
	}

	if s.cacheTTL > 0 {
		s.cache.Set(cacheKey, result, s.cacheTTL)
	}
	s.logger.Debug("Computed status listing", "components", len(result), "start", status.FormatDate(w.Start), "end", status.FormatDate(w.End))
	return result, nil
}

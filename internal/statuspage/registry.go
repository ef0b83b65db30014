package statuspage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"status-page/internal/clock"
	"status-page/internal/storage"
)

// Registry creates and looks up components.
type Registry struct {
	provider storage.Provider
	clock    clock.Clock
	logger   *slog.Logger
}

func NewRegistry(provider storage.Provider, clk clock.Clock) *Registry {
	return &Registry{
		provider: provider,
		clock:    clk,
		logger:   slog.With("component", "registry"),
	}
}

// Create registers a new component. Name uniqueness is enforced by the
// store, so two concurrent creations of the same name never both succeed.
func (r *Registry) Create(ctx context.Context, name, website string) (*storage.Component, error) {
	if name == "" || website == "" {
		return nil, fmt.Errorf("%w: name and website are required", ErrValidation)
	}

	component, err := r.provider.CreateComponent(ctx, storage.Component{
		Name:      name,
		Website:   website,
		CreatedAt: r.clock.Now().UTC(),
	})
	if errors.Is(err, storage.ErrUniqueViolation) {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create component: %w", err)
	}

	r.logger.Info("Component created", "id", component.ID, "name", component.Name)
	return component, nil
}

// ListAll returns every component in creation order.
func (r *Registry) ListAll(ctx context.Context) ([]storage.Component, error) {
	components, err := r.provider.ListComponents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list components: %w", err)
	}
	return components, nil
}

// FindByName looks up a component by its exact name.
func (r *Registry) FindByName(ctx context.Context, name string) (*storage.Component, error) {
	component, err := r.provider.GetComponentByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find component: %w", err)
	}
	return component, nil
}

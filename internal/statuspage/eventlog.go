package statuspage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"status-page/internal/clock"
	"status-page/internal/status"
	"status-page/internal/storage"
)

// EventLog records and reads status updates.
type EventLog struct {
	provider storage.Provider
	clock    clock.Clock
	logger   *slog.Logger
}

func NewEventLog(provider storage.Provider, clk clock.Clock) *EventLog {
	return &EventLog{
		provider: provider,
		clock:    clk,
		logger:   slog.With("component", "eventlog"),
	}
}

// Append records a status for a component on the given YYYY-MM-DD date.
// Status and date errors wrap ErrValidation as well as the status package
// sentinel that describes them.
func (l *EventLog) Append(ctx context.Context, componentID int64, st string, effectiveDate string) error {
	parsed, err := status.ParseStatus(st)
	if err != nil {
		return errors.Join(ErrValidation, err)
	}
	day, err := status.ParseDate(effectiveDate)
	if err != nil {
		return errors.Join(ErrValidation, err)
	}

	_, err = l.provider.CreateStatusUpdate(ctx, storage.StatusUpdate{
		ComponentID: componentID,
		Status:      string(parsed),
		Date:        status.FormatDate(day),
		CreatedAt:   l.clock.Now().UTC(),
	})
	if errors.Is(err, storage.ErrForeignKeyMissing) {
		return fmt.Errorf("%w: unknown component id %d", ErrValidation, componentID)
	}
	if err != nil {
		return fmt.Errorf("failed to record status: %w", err)
	}

	l.logger.Debug("Status recorded", "component_id", componentID, "status", parsed, "date", effectiveDate)
	return nil
}

// QueryRange returns the events of a component between start and end,
// both days inclusive, oldest first.
func (l *EventLog) QueryRange(ctx context.Context, componentID int64, start, end time.Time) ([]status.Event, error) {
	updates, err := l.provider.ListStatusUpdates(ctx, componentID, status.FormatDate(start), status.FormatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query status updates: %w", err)
	}

	events := make([]status.Event, 0, len(updates))
	for _, u := range updates {
		day, err := status.ParseDate(u.Date)
		if err != nil {
			l.logger.Warn("Skipping status update with malformed date", "id", u.ID, "date", u.Date)
			continue
		}
		events = append(events, status.Event{Status: status.Status(u.Status), Date: day})
	}
	return events, nil
}

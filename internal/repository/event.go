package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vaultpass/passgen-go/internal/model"
)

var ErrEventInvalid = errors.New("generation event is missing required fields")

// EventRepository persists generation audit events.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Record inserts an event, assigning its ID and timestamp when unset.
func (r *EventRepository) Record(ctx context.Context, event *model.GenerationEvent) error {
	if err := prepareEvent(event); err != nil {
		return err
	}

	query := `INSERT INTO generation_events
		(id, client, length, classes, count, entropy_bits, hashed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.Client,
		event.Length,
		event.Classes,
		event.Count,
		event.EntropyBits,
		event.Hashed,
		event.CreatedAt,
	)
	return err
}

// Stats aggregates events created after since. A nil since covers every event.
func (r *EventRepository) Stats(ctx context.Context, since *time.Time) (model.Stats, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(count), 0), COALESCE(AVG(length), 0)
		FROM generation_events`
	var args []any
	if since != nil {
		query += ` WHERE created_at > ?`
		args = append(args, since.UTC())
	}

	stats := model.Stats{Since: since}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalRequests, &stats.TotalPasswords, &stats.AverageLength,
	)
	if err != nil {
		return model.Stats{}, err
	}

	return stats, nil
}

func prepareEvent(event *model.GenerationEvent) error {
	if event == nil || event.Length < 1 || event.Count < 1 || event.Classes == "" {
		return ErrEventInvalid
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return nil
}

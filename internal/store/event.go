package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ReactionEvent is one committed stabilized reaction.
type ReactionEvent struct {
	ID         string
	Kind       string // "expression" or "gesture"
	Category   string
	Confidence float64
	AssetID    string
	CreatedAt  time.Time
}

// EventRepository provides access to the reaction event log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Insert logs a reaction event. A missing ID is filled with a fresh UUID.
func (r *EventRepository) Insert(e *ReactionEvent) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now()

	var assetID any
	if e.AssetID != "" {
		assetID = e.AssetID
	}

	_, err := r.db.Exec(
		`INSERT INTO reaction_events (id, kind, category, confidence, asset_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Kind, e.Category, e.Confidence, assetID, e.CreatedAt,
	)
	return err
}

// ListRecent returns the newest events, newest first.
func (r *EventRepository) ListRecent(limit int) ([]ReactionEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(
		`SELECT id, kind, category, confidence, COALESCE(asset_id, ''), created_at
		 FROM reaction_events ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ReactionEvent
	for rows.Next() {
		var e ReactionEvent
		if err := rows.Scan(&e.ID, &e.Kind, &e.Category, &e.Confidence, &e.AssetID, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

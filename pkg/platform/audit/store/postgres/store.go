package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "vetting/pkg/platform/audit"
	txcontext "vetting/pkg/platform/tx"
)

// Store implements audit.Store on the audit_events table. Appends join the
// caller's transaction when one is carried on the context.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *Store) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Append inserts an audit event. Duplicate IDs are ignored so redelivered
// events stay idempotent.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}

	_, err := s.execer(ctx).ExecContext(ctx, `
		INSERT INTO audit_events (id, category, action, subject, actor_id, decision, reason, request_id, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`,
		event.ID,
		string(category),
		event.Action,
		event.Subject,
		nullString(event.ActorID),
		nullString(event.Decision),
		nullString(event.Reason),
		nullString(event.RequestID),
		nullString(event.Batch),
		event.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

const selectEvents = `
	SELECT id, category, action, subject, actor_id, decision, reason, request_id, batch_id, created_at
	FROM audit_events`

// ListBySubject returns the events recorded for one nominee, oldest first.
func (s *Store) ListBySubject(ctx context.Context, subject string) ([]audit.Event, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, selectEvents+` WHERE subject = $1 ORDER BY created_at ASC`, subject)
	if err != nil {
		return nil, fmt.Errorf("list audit events by subject: %w", err)
	}
	return scanEvents(rows)
}

// ListRecent returns up to limit of the most recent events, oldest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Event, error) {
	rows, err := s.execer(ctx).QueryContext(ctx, `
		SELECT * FROM (`+selectEvents+` ORDER BY created_at DESC LIMIT $1) recent
		ORDER BY created_at ASC`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent audit events: %w", err)
	}
	return scanEvents(rows)
}

func scanEvents(rows *sql.Rows) ([]audit.Event, error) {
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			e                                           audit.Event
			category                                    string
			actor, decision, reason, requestID, batchID sql.NullString
		)
		if err := rows.Scan(&e.ID, &category, &e.Action, &e.Subject, &actor, &decision, &reason, &requestID, &batchID, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		e.Category = audit.EventCategory(category)
		e.ActorID = actor.String
		e.Decision = decision.String
		e.Reason = reason.String
		e.RequestID = requestID.String
		e.Batch = batchID.String
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

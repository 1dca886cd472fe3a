// Package ports defines the collaborators the vetting engine consumes.
//
// The engine never talks to Postgres, Redis, or Kafka directly. Stores and
// publishers are adapted to these interfaces so the reconciliation, status,
// and commit logic stays in-process and testable.
package ports

//go:generate mockgen -destination=mocks/mocks.go -package=mocks vetting/internal/vetting/ports NomineeLookup,CategoryDirectory,Submitter,AuditPublisher

import (
	"context"
	"log/slog"

	"vetting/internal/vetting/models"
	"vetting/pkg/platform/audit"
	"vetting/pkg/requestcontext"
)

// NomineeLookup resolves nominees by identifier.
// Implementations return sentinel.ErrNotFound when no nominee matches.
type NomineeLookup interface {
	FindByID(ctx context.Context, id models.NomineeID) (*models.Nominee, error)
}

// CategoryDirectory resolves categories by identifier.
// Implementations return sentinel.ErrNotFound when no category matches.
type CategoryDirectory interface {
	FindByID(ctx context.Context, id models.CategoryID) (*models.Category, error)
}

// Submitter persists a batch of updated nominees.
// A batch is submitted with atomic intent; the engine does not retry.
type Submitter interface {
	Submit(ctx context.Context, records []models.Nominee, kind models.UpdateKind) error
}

// AuditPublisher emits audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// LogAudit logs an audit event and, when a publisher is configured, emits it.
// attrs are slog-style key/value pairs; "nominee_id", "reason", and "decision"
// are lifted into the event.
func LogAudit(ctx context.Context, logger *slog.Logger, publisher AuditPublisher, event audit.AuditEvent, attrs ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	args := append(attrs, "event", string(event), "log_type", "audit")

	if logger != nil {
		logger.InfoContext(ctx, string(event), args...)
	}

	if publisher == nil {
		return
	}

	err := publisher.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Action:    string(event),
		Category:  event.Category(),
		Subject:   stringAttr(attrs, "nominee_id"),
		ActorID:   requestcontext.ReviewerID(ctx),
		Decision:  stringAttr(attrs, "decision"),
		Reason:    stringAttr(attrs, "reason"),
		RequestID: requestID,
		Batch:     stringAttr(attrs, "batch_id"),
	})
	if err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event",
			"event", string(event),
			"error", err,
		)
	}
}

func stringAttr(attrs []any, key string) string {
	for i := 0; i+1 < len(attrs); i += 2 {
		if k, ok := attrs[i].(string); ok && k == key {
			switch v := attrs[i+1].(type) {
			case string:
				return v
			case interface{ String() string }:
				return v.String()
			}
		}
	}
	return ""
}

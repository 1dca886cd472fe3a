package audit

import (
	"context"
	"time"
)

// EventCategory classifies audit events by their primary purpose so sinks can
// route and retain them differently.
type EventCategory string

const (
	// CategoryCompliance covers changes to canonical nominee records.
	CategoryCompliance EventCategory = "compliance"
	// CategoryOperations covers routine reviewer activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from the vetting service to capture reviewer actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        string
	Category  EventCategory
	Timestamp time.Time
	// Subject is the nominee the action applied to.
	Subject string
	Action  string
	// ActorID is the reviewer who performed the action.
	ActorID string
	// Decision carries the resulting status label for status events.
	Decision  string
	Reason    string
	RequestID string
	// Batch groups events that were submitted together.
	Batch string
}

type AuditEvent string

const (
	EventNomineeOpened        AuditEvent = "nominee_opened"
	EventNomineeDataUpdated   AuditEvent = "nominee_data_updated"
	EventNomineeStatusChanged AuditEvent = "nominee_status_changed"
	EventEditsDiscarded       AuditEvent = "nominee_edits_discarded"
	EventCommitFailed         AuditEvent = "nominee_commit_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventNomineeDataUpdated:   CategoryCompliance,
	EventNomineeStatusChanged: CategoryCompliance,

	EventNomineeOpened:  CategoryOperations,
	EventEditsDiscarded: CategoryOperations,
	EventCommitFailed:   CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

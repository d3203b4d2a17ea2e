package ports

import (
	"context"
	"time"
)

// AuditEvent records one administrative mutation for the audit trail.
type AuditEvent struct {
	ActorID  int64
	Action   string
	EntityID string
	At       time.Time
}

// Audit actions recorded by the settings service.
const (
	ActionTemplateSaved   = "template_saved"
	ActionScheduleCreated = "schedule_created"
	ActionScheduleUpdated = "schedule_updated"
	ActionScheduleDeleted = "schedule_deleted"
	ActionAdminAdded      = "admin_added"
	ActionAdminRemoved    = "admin_removed"
)

// AuditRecorder persists audit events.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent) error
}

// AuditSink accepts events for asynchronous recording. Implementations must
// preserve per-actor ordering.
type AuditSink interface {
	Submit(event AuditEvent)
}

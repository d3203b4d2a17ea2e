package ports

import (
	"context"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// TemplateInput carries the operator-editable template fields. Options and
// the enabled flag are intentionally absent: the service pins both.
type TemplateInput struct {
	Name           string
	Description    string
	TrainingDay    domain.Weekday
	PollDay        domain.Weekday
	TrainingTime   string
	DefaultChatID  string
	DefaultTopicID *int64
}

// ScheduleInput carries the mutable schedule fields for create and update.
// Updates are a full replace; there are no partial-field semantics.
type ScheduleInput struct {
	Name            string
	ChatID          string
	MessageThreadID *int64
	TrainingDay     domain.Weekday
	PollDay         domain.Weekday
	TrainingTime    string
	Enabled         bool
}

// SettingsService defines the admin configuration use cases.
type SettingsService interface {
	Template(ctx context.Context) (domain.Template, error)
	SaveTemplate(ctx context.Context, actorID int64, input TemplateInput) error

	Schedules(ctx context.Context) ([]domain.Schedule, error)
	AddSchedule(ctx context.Context, actorID int64, input ScheduleInput) (*domain.Schedule, error)
	UpdateSchedule(ctx context.Context, actorID int64, id string, input ScheduleInput) error
	DeleteSchedule(ctx context.Context, actorID int64, id string) error

	ActivePolls(ctx context.Context) ([]domain.ActivePoll, error)

	AdminIDs(ctx context.Context) ([]int64, error)
	AddAdminID(ctx context.Context, actorID, adminID int64) error
	RemoveAdminID(ctx context.Context, actorID, adminID int64) error
}

// SettingsRepository persists the template, schedules, active polls and the
// admin roster.
type SettingsRepository interface {
	Template(ctx context.Context) (*domain.Template, error)
	SaveTemplate(ctx context.Context, t domain.Template) error

	Schedules(ctx context.Context) ([]domain.Schedule, error)
	InsertSchedule(ctx context.Context, s domain.Schedule) error
	ReplaceSchedule(ctx context.Context, s domain.Schedule) error
	DeleteSchedule(ctx context.Context, id string) error
	FindSchedule(ctx context.Context, id string) (*domain.Schedule, error)

	ActivePolls(ctx context.Context) ([]domain.ActivePoll, error)

	AdminIDs(ctx context.Context) ([]int64, error)
	SetAdminIDs(ctx context.Context, ids []int64) error
}

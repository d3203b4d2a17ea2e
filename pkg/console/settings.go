package console

import (
	"context"
	"sync"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// TemplateFields is the typed form state for editing the default template.
// Poll options and the enabled flag are absent on purpose: the options are
// a system-wide constant and saved templates are always enabled.
type TemplateFields struct {
	Name           string
	Description    string
	TrainingDay    domain.Weekday
	PollDay        domain.Weekday
	TrainingTime   string
	DefaultChatID  string
	DefaultTopicID *int64
}

// ScheduleFields is the typed form state for creating or editing one
// schedule. Updates send every field; there are no partial updates.
type ScheduleFields struct {
	Name            string
	ChatID          string
	MessageThreadID *int64
	TrainingDay     domain.Weekday
	PollDay         domain.Weekday
	TrainingTime    string
	Enabled         bool
}

// ScheduleRepository caches the template, the schedule list and the
// active-poll snapshot. It exclusively owns these caches; accessors return
// copies. Every mutation awaits the server round trip and then reloads the
// affected cache from the server rather than patching locally, so
// server-assigned fields (ids in particular) are always reflected.
type ScheduleRepository struct {
	transport *Transport

	mu          sync.Mutex
	template    domain.Template
	hasTemplate bool
	schedules   []domain.Schedule
	activePolls []domain.ActivePoll
}

func NewScheduleRepository(transport *Transport) *ScheduleRepository {
	return &ScheduleRepository{transport: transport}
}

// Template returns the cached template; ok is false before the first
// successful LoadTemplate.
func (r *ScheduleRepository) Template() (domain.Template, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.template, r.hasTemplate
}

// Schedules returns a copy of the cached schedule list.
func (r *ScheduleRepository) Schedules() []domain.Schedule {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Schedule(nil), r.schedules...)
}

// ActivePolls returns a copy of the cached active-poll snapshot.
func (r *ScheduleRepository) ActivePolls() []domain.ActivePoll {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ActivePoll(nil), r.activePolls...)
}

// LoadTemplate refreshes the template cache from the server.
func (r *ScheduleRepository) LoadTemplate(ctx context.Context) (domain.Template, error) {
	var template domain.Template
	if err := r.transport.get(ctx, "/api/admin/settings/template", &template); err != nil {
		return domain.Template{}, err
	}

	r.mu.Lock()
	r.template = template
	r.hasTemplate = true
	r.mu.Unlock()
	return template, nil
}

// SaveTemplate full-replaces the template. The fixed poll-option set and
// enabled=true are attached here, not taken from the caller. On success the
// cache is refreshed with a reload.
func (r *ScheduleRepository) SaveTemplate(ctx context.Context, fields TemplateFields) error {
	payload := domain.Template{
		Name:           fields.Name,
		Description:    fields.Description,
		TrainingDay:    fields.TrainingDay,
		PollDay:        fields.PollDay,
		TrainingTime:   fields.TrainingTime,
		Options:        append([]string(nil), domain.PollOptions...),
		Enabled:        true,
		DefaultChatID:  fields.DefaultChatID,
		DefaultTopicID: fields.DefaultTopicID,
	}
	if err := r.transport.put(ctx, "/api/admin/settings/template", payload); err != nil {
		return err
	}

	_, err := r.LoadTemplate(ctx)
	return err
}

// LoadSchedules refreshes the schedule cache from the server.
func (r *ScheduleRepository) LoadSchedules(ctx context.Context) ([]domain.Schedule, error) {
	var schedules []domain.Schedule
	if err := r.transport.get(ctx, "/api/admin/settings/schedules", &schedules); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.schedules = schedules
	r.mu.Unlock()
	return append([]domain.Schedule(nil), schedules...), nil
}

// AddSchedule creates a schedule. Missing name or chat id fails locally
// before any request is issued. On success the full list is reloaded so the
// cache carries the server-assigned id.
func (r *ScheduleRepository) AddSchedule(ctx context.Context, fields ScheduleFields) error {
	if err := validateScheduleFields(fields); err != nil {
		return err
	}

	if err := r.transport.post(ctx, "/api/admin/settings/schedules", schedulePayload(fields), nil); err != nil {
		return err
	}

	_, err := r.LoadSchedules(ctx)
	return err
}

// UpdateSchedule full-replaces the mutable fields of one schedule, then
// reloads the list.
func (r *ScheduleRepository) UpdateSchedule(ctx context.Context, id string, fields ScheduleFields) error {
	if id == "" {
		return validationError("schedule id is required")
	}
	if err := validateScheduleFields(fields); err != nil {
		return err
	}

	if err := r.transport.put(ctx, "/api/admin/settings/schedules/"+id, schedulePayload(fields)); err != nil {
		return err
	}

	_, err := r.LoadSchedules(ctx)
	return err
}

// DeleteSchedule removes a schedule, then reloads the list.
func (r *ScheduleRepository) DeleteSchedule(ctx context.Context, id string) error {
	if id == "" {
		return validationError("schedule id is required")
	}

	if err := r.transport.delete(ctx, "/api/admin/settings/schedules/"+id); err != nil {
		return err
	}

	_, err := r.LoadSchedules(ctx)
	return err
}

// LoadActivePolls refreshes the read-only active-poll snapshot.
func (r *ScheduleRepository) LoadActivePolls(ctx context.Context) ([]domain.ActivePoll, error) {
	var polls []domain.ActivePoll
	if err := r.transport.get(ctx, "/api/admin/settings/active_polls", &polls); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.activePolls = polls
	r.mu.Unlock()
	return append([]domain.ActivePoll(nil), polls...), nil
}

func validateScheduleFields(fields ScheduleFields) error {
	if fields.Name == "" {
		return validationError("name is required")
	}
	if fields.ChatID == "" {
		return validationError("chat_id is required")
	}
	if !fields.TrainingDay.IsValid() {
		return validationError("training_day must be a weekday token")
	}
	if !fields.PollDay.IsValid() {
		return validationError("poll_day must be a weekday token")
	}
	return nil
}

// schedulePayload is the wire shape shared by create and update.
type scheduleBody struct {
	Name            string         `json:"name"`
	ChatID          string         `json:"chat_id"`
	MessageThreadID *int64         `json:"message_thread_id,omitempty"`
	TrainingDay     domain.Weekday `json:"training_day"`
	PollDay         domain.Weekday `json:"poll_day"`
	TrainingTime    string         `json:"training_time"`
	Enabled         bool           `json:"enabled"`
}

func schedulePayload(fields ScheduleFields) scheduleBody {
	return scheduleBody{
		Name:            fields.Name,
		ChatID:          fields.ChatID,
		MessageThreadID: fields.MessageThreadID,
		TrainingDay:     fields.TrainingDay,
		PollDay:         fields.PollDay,
		TrainingTime:    fields.TrainingTime,
		Enabled:         fields.Enabled,
	}
}

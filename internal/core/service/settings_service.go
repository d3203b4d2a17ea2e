package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/volleybot/admin-api/internal/core/domain"
	"github.com/volleybot/admin-api/internal/core/ports"
)

// SettingsService implements the template, schedule, active-poll and admin
// roster use cases. Every successful mutation emits an audit event.
type SettingsService struct {
	repo   ports.SettingsRepository
	audit  ports.AuditSink
	logger zerolog.Logger
	now    func() time.Time
}

func NewSettingsService(repo ports.SettingsRepository, audit ports.AuditSink, logger zerolog.Logger) *SettingsService {
	return &SettingsService{repo: repo, audit: audit, logger: logger, now: time.Now}
}

// Template returns the stored template, falling back to the built-in default
// when none has been saved yet.
func (s *SettingsService) Template(ctx context.Context) (domain.Template, error) {
	t, err := s.repo.Template(ctx)
	if err != nil {
		return domain.Template{}, err
	}
	if t == nil {
		return domain.DefaultTemplate(), nil
	}
	return *t, nil
}

// SaveTemplate replaces the template. The poll options and the enabled flag
// are pinned here regardless of what the caller sent.
func (s *SettingsService) SaveTemplate(ctx context.Context, actorID int64, input ports.TemplateInput) error {
	if !input.TrainingDay.IsValid() || !input.PollDay.IsValid() {
		return domain.ErrInvalidWeekday
	}

	t := domain.Template{
		Name:           input.Name,
		Description:    input.Description,
		TrainingDay:    input.TrainingDay,
		PollDay:        input.PollDay,
		TrainingTime:   input.TrainingTime,
		Options:        append([]string(nil), domain.PollOptions...),
		Enabled:        true,
		DefaultChatID:  input.DefaultChatID,
		DefaultTopicID: input.DefaultTopicID,
	}
	if err := s.repo.SaveTemplate(ctx, t); err != nil {
		return err
	}

	s.logger.Info().Int64("actor_id", actorID).Msg("poll template saved")
	s.record(actorID, ports.ActionTemplateSaved, "")
	return nil
}

func (s *SettingsService) Schedules(ctx context.Context) ([]domain.Schedule, error) {
	return s.repo.Schedules(ctx)
}

// AddSchedule creates a new schedule with a server-assigned id.
func (s *SettingsService) AddSchedule(ctx context.Context, actorID int64, input ports.ScheduleInput) (*domain.Schedule, error) {
	if err := validateScheduleInput(input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	schedule := domain.Schedule{
		ID:              uuid.NewString(),
		Name:            input.Name,
		ChatID:          input.ChatID,
		MessageThreadID: input.MessageThreadID,
		TrainingDay:     input.TrainingDay,
		PollDay:         input.PollDay,
		TrainingTime:    input.TrainingTime,
		Enabled:         input.Enabled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.InsertSchedule(ctx, schedule); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("actor_id", actorID).Str("schedule_id", schedule.ID).Str("chat_id", schedule.ChatID).Msg("schedule created")
	s.record(actorID, ports.ActionScheduleCreated, schedule.ID)
	return &schedule, nil
}

// UpdateSchedule replaces every mutable field of an existing schedule.
// The id and creation timestamp are preserved.
func (s *SettingsService) UpdateSchedule(ctx context.Context, actorID int64, id string, input ports.ScheduleInput) error {
	if err := validateScheduleInput(input); err != nil {
		return err
	}

	existing, err := s.repo.FindSchedule(ctx, id)
	if err != nil {
		return err
	}

	schedule := domain.Schedule{
		ID:              existing.ID,
		Name:            input.Name,
		ChatID:          input.ChatID,
		MessageThreadID: input.MessageThreadID,
		TrainingDay:     input.TrainingDay,
		PollDay:         input.PollDay,
		TrainingTime:    input.TrainingTime,
		Enabled:         input.Enabled,
		CreatedAt:       existing.CreatedAt,
		UpdatedAt:       s.now().UTC(),
	}
	if err := s.repo.ReplaceSchedule(ctx, schedule); err != nil {
		return err
	}

	s.logger.Info().Int64("actor_id", actorID).Str("schedule_id", id).Msg("schedule updated")
	s.record(actorID, ports.ActionScheduleUpdated, id)
	return nil
}

func (s *SettingsService) DeleteSchedule(ctx context.Context, actorID int64, id string) error {
	if err := s.repo.DeleteSchedule(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("actor_id", actorID).Str("schedule_id", id).Msg("schedule deleted")
	s.record(actorID, ports.ActionScheduleDeleted, id)
	return nil
}

func (s *SettingsService) ActivePolls(ctx context.Context) ([]domain.ActivePoll, error) {
	return s.repo.ActivePolls(ctx)
}

func (s *SettingsService) AdminIDs(ctx context.Context) ([]int64, error) {
	return s.repo.AdminIDs(ctx)
}

// AddAdminID grants administrative capability. Duplicates are rejected, not
// silently deduplicated, so the operator sees the mistake.
func (s *SettingsService) AddAdminID(ctx context.Context, actorID, adminID int64) error {
	if adminID == 0 {
		return domain.ErrAdminIDRequired
	}

	ids, err := s.repo.AdminIDs(ctx)
	if err != nil {
		return err
	}
	if containsID(ids, adminID) {
		return domain.ErrDuplicateAdmin
	}

	if err := s.repo.SetAdminIDs(ctx, append(ids, adminID)); err != nil {
		return err
	}

	s.logger.Info().Int64("actor_id", actorID).Int64("admin_id", adminID).Msg("administrator added")
	s.record(actorID, ports.ActionAdminAdded, formatID(adminID))
	return nil
}

// RemoveAdminID revokes administrative capability. Removing an id that is
// not on the roster succeeds as a no-op; removing the last remaining admin
// is refused so the system cannot lock everyone out.
func (s *SettingsService) RemoveAdminID(ctx context.Context, actorID, adminID int64) error {
	ids, err := s.repo.AdminIDs(ctx)
	if err != nil {
		return err
	}
	if !containsID(ids, adminID) {
		return nil
	}
	if len(ids) == 1 {
		return domain.ErrLastAdmin
	}

	remaining := make([]int64, 0, len(ids)-1)
	for _, id := range ids {
		if id != adminID {
			remaining = append(remaining, id)
		}
	}
	if err := s.repo.SetAdminIDs(ctx, remaining); err != nil {
		return err
	}

	s.logger.Info().Int64("actor_id", actorID).Int64("admin_id", adminID).Msg("administrator removed")
	s.record(actorID, ports.ActionAdminRemoved, formatID(adminID))
	return nil
}

func (s *SettingsService) record(actorID int64, action, entityID string) {
	if s.audit == nil {
		return
	}
	s.audit.Submit(ports.AuditEvent{
		ActorID:  actorID,
		Action:   action,
		EntityID: entityID,
		At:       s.now().UTC(),
	})
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func validateScheduleInput(input ports.ScheduleInput) error {
	if input.Name == "" || input.ChatID == "" {
		return domain.ErrInvalidSchedule
	}
	if !input.TrainingDay.IsValid() || !input.PollDay.IsValid() {
		return domain.ErrInvalidWeekday
	}
	return nil
}

package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/volleybot/admin-api/internal/core/domain"
	"github.com/volleybot/admin-api/internal/core/ports"
)

type stubSettingsRepo struct {
	template  *domain.Template
	schedules []domain.Schedule
	polls     []domain.ActivePoll
	adminIDs  []int64
}

func (r *stubSettingsRepo) Template(_ context.Context) (*domain.Template, error) {
	if r.template == nil {
		return nil, nil
	}
	clone := *r.template
	return &clone, nil
}

func (r *stubSettingsRepo) SaveTemplate(_ context.Context, t domain.Template) error {
	r.template = &t
	return nil
}

func (r *stubSettingsRepo) Schedules(_ context.Context) ([]domain.Schedule, error) {
	return append([]domain.Schedule(nil), r.schedules...), nil
}

func (r *stubSettingsRepo) InsertSchedule(_ context.Context, s domain.Schedule) error {
	r.schedules = append(r.schedules, s)
	return nil
}

func (r *stubSettingsRepo) ReplaceSchedule(_ context.Context, s domain.Schedule) error {
	for i := range r.schedules {
		if r.schedules[i].ID == s.ID {
			r.schedules[i] = s
			return nil
		}
	}
	return domain.ErrScheduleNotFound
}

func (r *stubSettingsRepo) DeleteSchedule(_ context.Context, id string) error {
	for i := range r.schedules {
		if r.schedules[i].ID == id {
			r.schedules = append(r.schedules[:i], r.schedules[i+1:]...)
			return nil
		}
	}
	return domain.ErrScheduleNotFound
}

func (r *stubSettingsRepo) FindSchedule(_ context.Context, id string) (*domain.Schedule, error) {
	for i := range r.schedules {
		if r.schedules[i].ID == id {
			clone := r.schedules[i]
			return &clone, nil
		}
	}
	return nil, domain.ErrScheduleNotFound
}

func (r *stubSettingsRepo) ActivePolls(_ context.Context) ([]domain.ActivePoll, error) {
	return append([]domain.ActivePoll(nil), r.polls...), nil
}

func (r *stubSettingsRepo) AdminIDs(_ context.Context) ([]int64, error) {
	return append([]int64(nil), r.adminIDs...), nil
}

func (r *stubSettingsRepo) SetAdminIDs(_ context.Context, ids []int64) error {
	r.adminIDs = append([]int64(nil), ids...)
	return nil
}

type stubAuditSink struct {
	events []ports.AuditEvent
}

func (s *stubAuditSink) Submit(event ports.AuditEvent) {
	s.events = append(s.events, event)
}

func newTestSettingsService(repo *stubSettingsRepo) (*SettingsService, *stubAuditSink) {
	audit := &stubAuditSink{}
	return NewSettingsService(repo, audit, zerolog.Nop()), audit
}

func validScheduleInput() ports.ScheduleInput {
	return ports.ScheduleInput{
		Name:         "Вторник ВГАФК",
		ChatID:       "-100200300",
		TrainingDay:  domain.Tuesday,
		PollDay:      domain.Sunday,
		TrainingTime: "19:00-21:00",
		Enabled:      true,
	}
}

func TestSettingsService_Template_DefaultWhenUnset(t *testing.T) {
	svc, _ := newTestSettingsService(&stubSettingsRepo{})

	tpl, err := svc.Template(context.Background())
	if err != nil {
		t.Fatalf("template failed: %v", err)
	}
	if tpl.TrainingDay != domain.Sunday || tpl.PollDay != domain.Friday {
		t.Fatalf("unexpected default template: %+v", tpl)
	}
	if !tpl.Enabled {
		t.Fatalf("default template must be enabled")
	}
}

func TestSettingsService_SaveTemplate_PinsOptionsAndEnabled(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, audit := newTestSettingsService(repo)

	err := svc.SaveTemplate(context.Background(), 42, ports.TemplateInput{
		Name:         "Опрос",
		Description:  "Волейбол {date} {time}",
		TrainingDay:  domain.Sunday,
		PollDay:      domain.Friday,
		TrainingTime: "18:00-20:00",
	})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	tpl, err := svc.Template(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if tpl.TrainingDay != domain.Sunday || tpl.PollDay != domain.Friday || tpl.TrainingTime != "18:00-20:00" {
		t.Fatalf("saved fields lost: %+v", tpl)
	}
	if !tpl.Enabled {
		t.Fatalf("enabled must be forced true")
	}
	if len(tpl.Options) != len(domain.PollOptions) {
		t.Fatalf("options must be the fixed set, got %v", tpl.Options)
	}
	for i, opt := range domain.PollOptions {
		if tpl.Options[i] != opt {
			t.Fatalf("options must be the fixed set, got %v", tpl.Options)
		}
	}
	if len(audit.events) != 1 || audit.events[0].Action != ports.ActionTemplateSaved {
		t.Fatalf("expected one template_saved audit event, got %+v", audit.events)
	}
}

func TestSettingsService_SaveTemplate_RejectsBadWeekday(t *testing.T) {
	svc, _ := newTestSettingsService(&stubSettingsRepo{})

	err := svc.SaveTemplate(context.Background(), 42, ports.TemplateInput{
		Name:        "Опрос",
		TrainingDay: "caturday",
		PollDay:     domain.Friday,
	})
	if err != domain.ErrInvalidWeekday {
		t.Fatalf("expected ErrInvalidWeekday, got %v", err)
	}
}

func TestSettingsService_AddSchedule_AssignsID(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, audit := newTestSettingsService(repo)

	created, err := svc.AddSchedule(context.Background(), 42, validScheduleInput())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}

	list, _ := svc.Schedules(context.Background())
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("schedule not persisted: %+v", list)
	}
	if len(audit.events) != 1 || audit.events[0].EntityID != created.ID {
		t.Fatalf("expected audit event for %s, got %+v", created.ID, audit.events)
	}
}

func TestSettingsService_AddSchedule_Validation(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := newTestSettingsService(repo)

	missingName := validScheduleInput()
	missingName.Name = ""
	if _, err := svc.AddSchedule(context.Background(), 42, missingName); err != domain.ErrInvalidSchedule {
		t.Fatalf("expected ErrInvalidSchedule for missing name, got %v", err)
	}

	missingChat := validScheduleInput()
	missingChat.ChatID = ""
	if _, err := svc.AddSchedule(context.Background(), 42, missingChat); err != domain.ErrInvalidSchedule {
		t.Fatalf("expected ErrInvalidSchedule for missing chat_id, got %v", err)
	}

	badDay := validScheduleInput()
	badDay.PollDay = "someday"
	if _, err := svc.AddSchedule(context.Background(), 42, badDay); err != domain.ErrInvalidWeekday {
		t.Fatalf("expected ErrInvalidWeekday, got %v", err)
	}

	if len(repo.schedules) != 0 {
		t.Fatalf("invalid input must not reach the repository")
	}
}

func TestSettingsService_UpdateSchedule_FullReplace(t *testing.T) {
	repo := &stubSettingsRepo{}
	svc, _ := newTestSettingsService(repo)

	created, err := svc.AddSchedule(context.Background(), 42, validScheduleInput())
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	update := validScheduleInput()
	update.Name = "Четверг"
	update.TrainingDay = domain.Thursday
	update.Enabled = false
	if err := svc.UpdateSchedule(context.Background(), 42, created.ID, update); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	list, _ := svc.Schedules(context.Background())
	if len(list) != 1 {
		t.Fatalf("disabled schedule must be retained, got %d entries", len(list))
	}
	got := list[0]
	if got.ID != created.ID {
		t.Fatalf("id must be immutable")
	}
	if got.Name != "Четверг" || got.TrainingDay != domain.Thursday || got.Enabled {
		t.Fatalf("fields not replaced: %+v", got)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must be preserved")
	}
}

func TestSettingsService_UpdateSchedule_NotFound(t *testing.T) {
	svc, _ := newTestSettingsService(&stubSettingsRepo{})

	err := svc.UpdateSchedule(context.Background(), 42, "missing", validScheduleInput())
	if err != domain.ErrScheduleNotFound {
		t.Fatalf("expected ErrScheduleNotFound, got %v", err)
	}
}

func TestSettingsService_AddAdminID(t *testing.T) {
	repo := &stubSettingsRepo{adminIDs: []int64{42}}
	svc, _ := newTestSettingsService(repo)

	if err := svc.AddAdminID(context.Background(), 42, 77); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.AddAdminID(context.Background(), 42, 77); err != domain.ErrDuplicateAdmin {
		t.Fatalf("expected ErrDuplicateAdmin, got %v", err)
	}
	if err := svc.AddAdminID(context.Background(), 42, 0); err != domain.ErrAdminIDRequired {
		t.Fatalf("expected ErrAdminIDRequired, got %v", err)
	}
}

func TestSettingsService_RemoveAdminID_NonMemberIsNoop(t *testing.T) {
	repo := &stubSettingsRepo{adminIDs: []int64{42, 77}}
	svc, audit := newTestSettingsService(repo)

	if err := svc.RemoveAdminID(context.Background(), 42, 999); err != nil {
		t.Fatalf("remove of non-member must succeed, got %v", err)
	}
	if len(repo.adminIDs) != 2 {
		t.Fatalf("roster must be unchanged, got %v", repo.adminIDs)
	}
	if len(audit.events) != 0 {
		t.Fatalf("no-op removal must not emit an audit event")
	}
}

func TestSettingsService_RemoveAdminID_LastAdmin(t *testing.T) {
	repo := &stubSettingsRepo{adminIDs: []int64{42}}
	svc, _ := newTestSettingsService(repo)

	if err := svc.RemoveAdminID(context.Background(), 42, 42); err != domain.ErrLastAdmin {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}

func TestSettingsService_RemoveAdminID(t *testing.T) {
	repo := &stubSettingsRepo{adminIDs: []int64{42, 77}}
	svc, _ := newTestSettingsService(repo)

	if err := svc.RemoveAdminID(context.Background(), 42, 77); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(repo.adminIDs) != 1 || repo.adminIDs[0] != 42 {
		t.Fatalf("unexpected roster: %v", repo.adminIDs)
	}
}

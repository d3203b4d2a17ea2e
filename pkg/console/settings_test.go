package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/volleybot/admin-api/internal/core/domain"
)

// settingsBackend is an in-memory stand-in for the admin settings API.
type settingsBackend struct {
	mu        sync.Mutex
	template  domain.Template
	schedules []domain.Schedule
	nextID    int
	requests  int
}

func newSettingsBackend() *settingsBackend {
	return &settingsBackend{template: domain.DefaultTemplate(), nextID: 1}
}

func (b *settingsBackend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/admin/settings/template", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(b.template)
	})
	mux.HandleFunc("PUT /api/admin/settings/template", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		var template domain.Template
		if err := json.NewDecoder(r.Body).Decode(&template); err != nil {
			writeDetail(w, http.StatusBadRequest, "bad template")
			return
		}
		b.mu.Lock()
		b.template = template
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	mux.HandleFunc("GET /api/admin/settings/schedules", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		b.mu.Lock()
		defer b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(b.schedules)
	})
	mux.HandleFunc("POST /api/admin/settings/schedules", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		var schedule domain.Schedule
		if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
			writeDetail(w, http.StatusBadRequest, "bad schedule")
			return
		}
		b.mu.Lock()
		schedule.ID = fmt.Sprintf("srv-%d", b.nextID)
		b.nextID++
		b.schedules = append(b.schedules, schedule)
		b.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})
	mux.HandleFunc("PUT /api/admin/settings/schedules/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		var schedule domain.Schedule
		if err := json.NewDecoder(r.Body).Decode(&schedule); err != nil {
			writeDetail(w, http.StatusBadRequest, "bad schedule")
			return
		}
		id := r.PathValue("id")
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.schedules {
			if b.schedules[i].ID == id {
				schedule.ID = id
				b.schedules[i] = schedule
				_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "schedule not found")
	})
	mux.HandleFunc("DELETE /api/admin/settings/schedules/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		id := r.PathValue("id")
		b.mu.Lock()
		defer b.mu.Unlock()
		for i := range b.schedules {
			if b.schedules[i].ID == id {
				b.schedules = append(b.schedules[:i], b.schedules[i+1:]...)
				_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
				return
			}
		}
		writeDetail(w, http.StatusNotFound, "schedule not found")
	})

	mux.HandleFunc("GET /api/admin/settings/active_polls", func(w http.ResponseWriter, r *http.Request) {
		b.count()
		_ = json.NewEncoder(w).Encode([]domain.ActivePoll{{ID: "p1", ChatID: "-100", MessageID: 42}})
	})

	return mux
}

func (b *settingsBackend) count() {
	b.mu.Lock()
	b.requests++
	b.mu.Unlock()
}

func (b *settingsBackend) requestCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.requests
}

func newTestScheduleRepository(t *testing.T) (*ScheduleRepository, *settingsBackend) {
	t.Helper()
	backend := newSettingsBackend()
	transport, _ := newTestTransport(t, backend.handler())
	return NewScheduleRepository(transport), backend
}

func validFields() ScheduleFields {
	return ScheduleFields{
		Name:         "Sunday training",
		ChatID:       "-100200300",
		TrainingDay:  domain.Sunday,
		PollDay:      domain.Friday,
		TrainingTime: "18:00-20:00",
		Enabled:      true,
	}
}

func TestScheduleRepository_AddScheduleRejectsLocallyWithoutNetwork(t *testing.T) {
	repo, backend := newTestScheduleRepository(t)

	for _, fields := range []ScheduleFields{
		{ChatID: "-1", TrainingDay: domain.Sunday, PollDay: domain.Friday},
		{Name: "x", TrainingDay: domain.Sunday, PollDay: domain.Friday},
	} {
		err := repo.AddSchedule(context.Background(), fields)
		if err == nil {
			t.Fatalf("expected validation error for %+v", fields)
		}
		var consoleErr *Error
		if !errors.As(err, &consoleErr) || consoleErr.Kind != KindValidation {
			t.Fatalf("error = %v, want validation kind", err)
		}
	}

	if got := backend.requestCount(); got != 0 {
		t.Fatalf("backend saw %d requests, want 0 for local validation failures", got)
	}
}

func TestScheduleRepository_AddScheduleReloadsWithServerID(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)
	ctx := context.Background()

	before, err := repo.LoadSchedules(ctx)
	if err != nil {
		t.Fatalf("LoadSchedules: %v", err)
	}

	if err := repo.AddSchedule(ctx, validFields()); err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}

	after := repo.Schedules()
	if len(after) != len(before)+1 {
		t.Fatalf("schedule count = %d, want %d", len(after), len(before)+1)
	}
	added := after[len(after)-1]
	if added.ID == "" {
		t.Fatal("cached schedule must carry the server-assigned id")
	}
	if added.Name != "Sunday training" {
		t.Fatalf("cached schedule name = %q", added.Name)
	}
}

func TestScheduleRepository_UpdateScheduleReloads(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)
	ctx := context.Background()

	if err := repo.AddSchedule(ctx, validFields()); err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	id := repo.Schedules()[0].ID

	fields := validFields()
	fields.Name = "Moved to Saturday"
	fields.TrainingDay = domain.Saturday
	fields.Enabled = false
	if err := repo.UpdateSchedule(ctx, id, fields); err != nil {
		t.Fatalf("UpdateSchedule: %v", err)
	}

	got := repo.Schedules()[0]
	if got.ID != id {
		t.Fatalf("id changed on update: %q -> %q", id, got.ID)
	}
	if got.Name != "Moved to Saturday" || got.TrainingDay != domain.Saturday || got.Enabled {
		t.Fatalf("update not reflected after reload: %+v", got)
	}
}

func TestScheduleRepository_UpdateScheduleNotFound(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)

	err := repo.UpdateSchedule(context.Background(), "missing", validFields())
	var consoleErr *Error
	if !errors.As(err, &consoleErr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if consoleErr.Kind != KindRejection || consoleErr.Status != http.StatusNotFound {
		t.Fatalf("error = %+v, want 404 rejection", consoleErr)
	}
}

func TestScheduleRepository_DeleteScheduleReloads(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)
	ctx := context.Background()

	if err := repo.AddSchedule(ctx, validFields()); err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	id := repo.Schedules()[0].ID

	if err := repo.DeleteSchedule(ctx, id); err != nil {
		t.Fatalf("DeleteSchedule: %v", err)
	}
	if got := repo.Schedules(); len(got) != 0 {
		t.Fatalf("schedules after delete = %d, want 0", len(got))
	}
}

func TestScheduleRepository_TemplateRoundTrip(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)
	ctx := context.Background()

	topic := int64(12)
	err := repo.SaveTemplate(ctx, TemplateFields{
		Name:           "Волейбольный опрос",
		Description:    "Волейбол {date} {time} ВГАФК",
		TrainingDay:    domain.Sunday,
		PollDay:        domain.Friday,
		TrainingTime:   "18:00-20:00",
		DefaultChatID:  "-100200300",
		DefaultTopicID: &topic,
	})
	if err != nil {
		t.Fatalf("SaveTemplate: %v", err)
	}

	template, err := repo.LoadTemplate(ctx)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if template.TrainingDay != domain.Sunday || template.PollDay != domain.Friday {
		t.Fatalf("weekdays not round-tripped: %+v", template)
	}
	if template.TrainingTime != "18:00-20:00" {
		t.Fatalf("training time = %q", template.TrainingTime)
	}
	if !template.Enabled {
		t.Fatal("saved template must come back enabled")
	}
	if len(template.Options) != len(domain.PollOptions) {
		t.Fatalf("options = %v, want the fixed set", template.Options)
	}
	for i, opt := range domain.PollOptions {
		if template.Options[i] != opt {
			t.Fatalf("option[%d] = %q, want %q", i, template.Options[i], opt)
		}
	}

	cached, ok := repo.Template()
	if !ok || cached.Name != "Волейбольный опрос" {
		t.Fatalf("cache not refreshed: ok=%v template=%+v", ok, cached)
	}
}

func TestScheduleRepository_LoadActivePolls(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)

	polls, err := repo.LoadActivePolls(context.Background())
	if err != nil {
		t.Fatalf("LoadActivePolls: %v", err)
	}
	if len(polls) != 1 || polls[0].ID != "p1" {
		t.Fatalf("unexpected polls: %+v", polls)
	}
	if cached := repo.ActivePolls(); len(cached) != 1 {
		t.Fatalf("cache holds %d polls, want 1", len(cached))
	}
}

func TestScheduleRepository_AccessorsReturnCopies(t *testing.T) {
	repo, _ := newTestScheduleRepository(t)
	ctx := context.Background()

	if err := repo.AddSchedule(ctx, validFields()); err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}

	first := repo.Schedules()
	first[0].Name = "mutated"
	if got := repo.Schedules()[0].Name; got == "mutated" {
		t.Fatal("Schedules must return a copy, not the cache")
	}
}

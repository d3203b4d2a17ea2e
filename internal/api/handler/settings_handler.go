package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/volleybot/admin-api/internal/api/metrics"
	"github.com/volleybot/admin-api/internal/core/domain"
	"github.com/volleybot/admin-api/internal/core/ports"
)

// SettingsHandler exposes the template, schedule, active-poll and admin
// roster endpoints consumed by the console repositories.
type SettingsHandler struct {
	service ports.SettingsService
}

func NewSettingsHandler(service ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// Template returns the default poll template.
//
// @Summary      Get the default poll template
// @Tags         settings
// @Produce      json
// @Success      200  {object}  domain.Template
// @Failure      401  {object}  detailResponse
// @Router       /api/admin/settings/template [get]
func (h *SettingsHandler) Template(c echo.Context) error {
	template, err := h.service.Template(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, template)
}

// SaveTemplate replaces the default poll template.
//
// @Summary      Save the default poll template
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      templateRequest  true  "Template fields"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  detailResponse
// @Router       /api/admin/settings/template [put]
func (h *SettingsHandler) SaveTemplate(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err = h.service.SaveTemplate(c.Request().Context(), principal.TelegramID, ports.TemplateInput{
		Name:           req.Name,
		Description:    req.Description,
		TrainingDay:    domain.Weekday(req.TrainingDay),
		PollDay:        domain.Weekday(req.PollDay),
		TrainingTime:   req.TrainingTime,
		DefaultChatID:  req.DefaultChatID,
		DefaultTopicID: req.DefaultTopicID,
	})
	if err != nil {
		return err
	}

	metrics.SettingsMutationsTotal.WithLabelValues("template", "update").Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "template saved"})
}

// Schedules lists all poll schedules.
//
// @Summary      List poll schedules
// @Tags         settings
// @Produce      json
// @Success      200  {array}   domain.Schedule
// @Failure      401  {object}  detailResponse
// @Router       /api/admin/settings/schedules [get]
func (h *SettingsHandler) Schedules(c echo.Context) error {
	schedules, err := h.service.Schedules(c.Request().Context())
	if err != nil {
		return err
	}
	if schedules == nil {
		schedules = []domain.Schedule{}
	}
	return c.JSON(http.StatusOK, schedules)
}

// AddSchedule creates a poll schedule with a server-assigned id.
//
// @Summary      Create a poll schedule
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      scheduleRequest  true  "Schedule fields"
// @Success      201   {object}  domain.Schedule
// @Failure      400   {object}  detailResponse
// @Router       /api/admin/settings/schedules [post]
func (h *SettingsHandler) AddSchedule(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	schedule, err := h.service.AddSchedule(c.Request().Context(), principal.TelegramID, scheduleInput(req))
	if err != nil {
		return err
	}

	metrics.SettingsMutationsTotal.WithLabelValues("schedule", "create").Inc()
	return c.JSON(http.StatusCreated, schedule)
}

// UpdateSchedule replaces every mutable field of a schedule.
//
// @Summary      Update a poll schedule
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        id    path      string           true  "Schedule id"
// @Param        body  body      scheduleRequest  true  "Schedule fields"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  detailResponse
// @Failure      404   {object}  detailResponse
// @Router       /api/admin/settings/schedules/{id} [put]
func (h *SettingsHandler) UpdateSchedule(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateSchedule(c.Request().Context(), principal.TelegramID, c.Param("id"), scheduleInput(req)); err != nil {
		return err
	}

	metrics.SettingsMutationsTotal.WithLabelValues("schedule", "update").Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "schedule updated"})
}

// DeleteSchedule removes a schedule.
//
// @Summary      Delete a poll schedule
// @Tags         settings
// @Produce      json
// @Param        id  path      string  true  "Schedule id"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  detailResponse
// @Router       /api/admin/settings/schedules/{id} [delete]
func (h *SettingsHandler) DeleteSchedule(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSchedule(c.Request().Context(), principal.TelegramID, c.Param("id")); err != nil {
		return err
	}

	metrics.SettingsMutationsTotal.WithLabelValues("schedule", "delete").Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "schedule deleted"})
}

// ActivePolls lists the currently open polls.
//
// @Summary      List active polls
// @Tags         settings
// @Produce      json
// @Success      200  {array}   domain.ActivePoll
// @Failure      401  {object}  detailResponse
// @Router       /api/admin/settings/active_polls [get]
func (h *SettingsHandler) ActivePolls(c echo.Context) error {
	polls, err := h.service.ActivePolls(c.Request().Context())
	if err != nil {
		return err
	}
	if polls == nil {
		polls = []domain.ActivePoll{}
	}
	return c.JSON(http.StatusOK, polls)
}

// AdminIDs lists the admin roster.
//
// @Summary      List administrator ids
// @Tags         settings
// @Produce      json
// @Success      200  {object}  adminIDsResponse
// @Failure      401  {object}  detailResponse
// @Router       /api/admin/settings/admin_ids [get]
func (h *SettingsHandler) AdminIDs(c echo.Context) error {
	ids, err := h.service.AdminIDs(c.Request().Context())
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []int64{}
	}
	return c.JSON(http.StatusOK, adminIDsResponse{AdminIDs: ids})
}

// AddAdminID grants administrative capability to a Telegram id.
//
// @Summary      Add an administrator
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body      addAdminRequest  true  "Admin id"
// @Success      200   {object}  statusResponse
// @Failure      400   {object}  detailResponse
// @Router       /api/admin/settings/admin_ids [post]
func (h *SettingsHandler) AddAdminID(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req addAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddAdminID(c.Request().Context(), principal.TelegramID, req.AdminID); err != nil {
		return err
	}

	metrics.SettingsMutationsTotal.WithLabelValues("admin_id", "create").Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "administrator added"})
}

// RemoveAdminID revokes administrative capability. Removing an id that is
// not on the roster reports success.
//
// @Summary      Remove an administrator
// @Tags         settings
// @Produce      json
// @Param        id  path      int  true  "Admin id"
// @Success      200  {object}  statusResponse
// @Failure      400  {object}  detailResponse
// @Router       /api/admin/settings/admin_ids/{id} [delete]
func (h *SettingsHandler) RemoveAdminID(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	adminID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "admin id must be an integer")
	}

	if err := h.service.RemoveAdminID(c.Request().Context(), principal.TelegramID, adminID); err != nil {
		return err
	}

	metrics.SettingsMutationsTotal.WithLabelValues("admin_id", "delete").Inc()
	return c.JSON(http.StatusOK, statusResponse{Success: true, Message: "administrator removed"})
}

func scheduleInput(req scheduleRequest) ports.ScheduleInput {
	return ports.ScheduleInput{
		Name:            req.Name,
		ChatID:          req.ChatID,
		MessageThreadID: req.MessageThreadID,
		TrainingDay:     domain.Weekday(req.TrainingDay),
		PollDay:         domain.Weekday(req.PollDay),
		TrainingTime:    req.TrainingTime,
		Enabled:         req.Enabled,
	}
}

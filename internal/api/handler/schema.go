package handler

import "github.com/volleybot/admin-api/internal/core/domain"

// detailResponse is the standard error envelope returned on 4xx/5xx
// responses. The console client keys off the "detail" field.
type detailResponse struct {
	Detail string `json:"detail"`
}

// statusResponse is returned by mutations that have no body of their own.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Auth ---

type telegramLoginRequest struct {
	ID        int64  `json:"id"         validate:"required"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
	AuthDate  int64  `json:"auth_date"  validate:"required"`
	Hash      string `json:"hash"       validate:"required"`
}

type loginResponse struct {
	Success bool             `json:"success"`
	User    *domain.Principal `json:"user"`
}

type widgetConfigResponse struct {
	BotUsername string `json:"bot_username"`
	ButtonSize  string `json:"button_size"`
	Lang        string `json:"lang"`
}

// --- Settings ---

type templateRequest struct {
	Name           string `json:"name"             validate:"required"`
	Description    string `json:"description"`
	TrainingDay    string `json:"training_day"     validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	PollDay        string `json:"poll_day"         validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TrainingTime   string `json:"training_time"    validate:"required"`
	DefaultChatID  string `json:"default_chat_id"`
	DefaultTopicID *int64 `json:"default_topic_id"`
}

type scheduleRequest struct {
	Name            string `json:"name"              validate:"required"`
	ChatID          string `json:"chat_id"           validate:"required"`
	MessageThreadID *int64 `json:"message_thread_id"`
	TrainingDay     string `json:"training_day"      validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	PollDay         string `json:"poll_day"          validate:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	TrainingTime    string `json:"training_time"     validate:"required"`
	Enabled         bool   `json:"enabled"`
}

type adminIDsResponse struct {
	AdminIDs []int64 `json:"admin_ids"`
}

type addAdminRequest struct {
	AdminID int64 `json:"admin_id" validate:"required"`
}

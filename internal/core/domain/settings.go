package domain

import "time"

// Weekday is a lowercase weekday token as stored in templates and schedules.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

var weekdays = map[Weekday]struct{}{
	Monday: {}, Tuesday: {}, Wednesday: {}, Thursday: {},
	Friday: {}, Saturday: {}, Sunday: {},
}

// IsValid reports whether w is one of the seven weekday tokens.
func (w Weekday) IsValid() bool {
	_, ok := weekdays[w]
	return ok
}

// PollOptions is the system-wide answer set attached to every poll.
// It is not operator-editable; SaveTemplate always overwrites whatever the
// caller sends with this exact slice.
var PollOptions = []string{"Буду", "50/50", "Не буду"}

// Template is the default recurring-poll configuration used to seed new
// schedules. Exactly one template exists; editing it never touches schedules
// created from it.
type Template struct {
	Name           string   `json:"name" bson:"name"`
	Description    string   `json:"description" bson:"description"`
	TrainingDay    Weekday  `json:"training_day" bson:"training_day"`
	PollDay        Weekday  `json:"poll_day" bson:"poll_day"`
	TrainingTime   string   `json:"training_time" bson:"training_time"`
	Options        []string `json:"options" bson:"options"`
	Enabled        bool     `json:"enabled" bson:"enabled"`
	DefaultChatID  string   `json:"default_chat_id" bson:"default_chat_id"`
	DefaultTopicID *int64   `json:"default_topic_id" bson:"default_topic_id,omitempty"`
}

// DefaultTemplate returns the template used before an operator has saved one.
func DefaultTemplate() Template {
	return Template{
		Name:         "Волейбольный опрос",
		Description:  "Волейбол {date} {time} ВГАФК",
		TrainingDay:  Sunday,
		PollDay:      Friday,
		TrainingTime: "18:00",
		Options:      append([]string(nil), PollOptions...),
		Enabled:      true,
	}
}

// Schedule is a concrete recurring poll instruction targeting one chat.
// ID is assigned by the server on creation and never changes afterwards.
// A disabled schedule is retained and simply skipped by the poll worker.
type Schedule struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	ChatID          string    `json:"chat_id" bson:"chat_id"`
	MessageThreadID *int64    `json:"message_thread_id" bson:"message_thread_id,omitempty"`
	TrainingDay     Weekday   `json:"training_day" bson:"training_day"`
	PollDay         Weekday   `json:"poll_day" bson:"poll_day"`
	TrainingTime    string    `json:"training_time" bson:"training_time"`
	Enabled         bool      `json:"enabled" bson:"enabled"`
	CreatedAt       time.Time `json:"created_at,omitempty" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at,omitempty" bson:"updated_at"`
}

// ActivePoll is a read-only snapshot of a poll that is currently open in a
// chat. The admin surface never mutates these; the bot worker owns them.
type ActivePoll struct {
	ID              string    `json:"id" bson:"_id"`
	ChatID          string    `json:"chat_id" bson:"chat_id"`
	MessageID       int64     `json:"message_id" bson:"message_id"`
	MessageThreadID *int64    `json:"message_thread_id" bson:"message_thread_id,omitempty"`
	TemplateID      string    `json:"template_id,omitempty" bson:"template_id,omitempty"`
	CreatedAt       time.Time `json:"created_at,omitempty" bson:"created_at"`
}

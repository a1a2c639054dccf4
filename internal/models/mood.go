package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for mood log dates.
const DateLayout = "2006-01-02"

// Mood tags a log or journal entry can carry.
const (
	MoodHappy   = "happy"
	MoodContent = "content"
	MoodOkay    = "okay"
	MoodSad     = "sad"
	MoodAnxious = "anxious"
)

// Moods lists the five fixed mood categories in display order.
var Moods = []string{MoodHappy, MoodContent, MoodOkay, MoodSad, MoodAnxious}

// ValidMood reports whether mood is one of the fixed categories.
func ValidMood(mood string) bool {
	for _, m := range Moods {
		if m == mood {
			return true
		}
	}
	return false
}

// MoodLog is a one-per-day record of a user's mood plus an optional note.
// At most one log exists per (user, log_date); writes replace.
type MoodLog struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LogDate   string    `json:"log_date"` // DateLayout
	Mood      string    `json:"mood"`
	Note      string    `json:"note,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

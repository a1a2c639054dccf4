package models

import "time"

// AudioRecording is an ephemeral, in-process capture. It is created when a
// recording session stops and destroyed on delete or replacement; it is
// never persisted unless explicitly attached to a journal entry as a
// voice note.
type AudioRecording struct {
	ID         string    `json:"id"`
	Data       []byte    `json:"-"`
	URL        string    `json:"url"` // playable data URI
	DurationMS int64     `json:"duration_ms"`
	CapturedAt time.Time `json:"captured_at"`
}

// Duration returns the capture length.
func (r *AudioRecording) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

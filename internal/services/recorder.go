package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/soulspace-app/soulspace-backend/internal/models"
)

// MaxRecordingBytes caps the in-memory buffer of a recording session.
const MaxRecordingBytes = 10 * 1024 * 1024 // 10MB

// ErrRecordingTooLarge is returned when appended chunks would exceed the
// buffer cap.
var ErrRecordingTooLarge = fmt.Errorf("recording exceeds the %dMB limit", MaxRecordingBytes/(1024*1024))

// ErrNoActiveRecording is returned by Append/Stop when the user has no
// recording in progress.
var ErrNoActiveRecording = fmt.Errorf("no recording in progress")

// recordingSession is one in-flight capture. The buffer is singly owned
// by the session and released when the session ends.
type recordingSession struct {
	id       string
	mimeType string
	buf      []byte
	started  time.Time
}

// Recorder holds per-user recording sessions and finished recordings,
// the server-side rendition of the audio-capture hook: a single
// in-memory buffer per capture, one active capture per user, explicit
// release on delete or replacement. Nothing here is persisted unless a
// recording is later attached to a journal entry as a voice note.
type Recorder struct {
	mu         sync.Mutex
	active     map[string]*recordingSession       // userID -> in-flight session
	recordings map[string][]models.AudioRecording // userID -> finished captures
}

func NewRecorder() *Recorder {
	return &Recorder{
		active:     make(map[string]*recordingSession),
		recordings: make(map[string][]models.AudioRecording),
	}
}

// Start begins a capture for the user. Starting while one is already in
// progress is a no-op that returns the live session's ID.
func (r *Recorder) Start(userID, mimeType string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.active[userID]; ok {
		return s.id
	}

	if mimeType == "" {
		mimeType = "audio/webm"
	}
	s := &recordingSession{
		id:       uuid.New().String(),
		mimeType: mimeType,
		started:  time.Now(),
	}
	r.active[userID] = s
	return s.id
}

// Append adds a chunk to the user's in-flight capture buffer.
func (r *Recorder) Append(userID string, chunk []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.active[userID]
	if !ok {
		return ErrNoActiveRecording
	}
	if len(s.buf)+len(chunk) > MaxRecordingBytes {
		return ErrRecordingTooLarge
	}
	s.buf = append(s.buf, chunk...)
	return nil
}

// Stop ends the user's capture, producing exactly one AudioRecording with
// the elapsed duration and a playable data URI, and releases the session.
func (r *Recorder) Stop(userID string) (*models.AudioRecording, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.active[userID]
	if !ok {
		return nil, ErrNoActiveRecording
	}
	delete(r.active, userID)

	rec := models.AudioRecording{
		ID:         s.id,
		Data:       s.buf,
		URL:        encodeDataURI(s.buf, s.mimeType),
		DurationMS: time.Since(s.started).Milliseconds(),
		CapturedAt: s.started,
	}
	r.recordings[userID] = append(r.recordings[userID], rec)
	return &rec, nil
}

// IsRecording reports whether the user has a capture in progress.
func (r *Recorder) IsRecording(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.active[userID]
	return ok
}

// List returns the user's finished recordings in capture order.
func (r *Recorder) List(userID string) []models.AudioRecording {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.AudioRecording, len(r.recordings[userID]))
	copy(out, r.recordings[userID])
	return out
}

// Delete releases a finished recording. Returns false when the ID is not
// one of the user's recordings.
func (r *Recorder) Delete(userID, recordingID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	recs := r.recordings[userID]
	for i, rec := range recs {
		if rec.ID == recordingID {
			r.recordings[userID] = append(recs[:i], recs[i+1:]...)
			return true
		}
	}
	return false
}

package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soulspace-app/soulspace-backend/internal/models"
	"github.com/soulspace-app/soulspace-backend/internal/services"
)

var recorder = services.NewRecorder()

type RecordingResponse struct {
	Success   bool                   `json:"success"`
	Message   string                 `json:"message,omitempty"`
	Recording *models.AudioRecording `json:"recording,omitempty"`
}

// StartRecording opens a capture session for the user. Starting while a
// session is already open is a no-op that returns the live session's ID.
func StartRecording(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req struct {
		MimeType string `json:"mime_type,omitempty"`
	}
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req) // body is optional
	}

	sessionID := recorder.Start(userID.String(), req.MimeType)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"session_id": sessionID,
		"recording":  true,
	})
}

// AppendRecordingChunk adds raw audio bytes to the open session.
func AppendRecordingChunk(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	chunk, err := io.ReadAll(io.LimitReader(r.Body, services.MaxRecordingBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read chunk")
		return
	}

	if err := recorder.Append(userID.String(), chunk); err != nil {
		switch {
		case errors.Is(err, services.ErrNoActiveRecording):
			writeError(w, http.StatusConflict, "No recording in progress")
		case errors.Is(err, services.ErrRecordingTooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "Failed to append chunk")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// StopRecording closes the session and returns the finished capture.
func StopRecording(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	recording, err := recorder.Stop(userID.String())
	if err != nil {
		if errors.Is(err, services.ErrNoActiveRecording) {
			writeError(w, http.StatusConflict, "No recording in progress")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to stop recording")
		}
		return
	}

	writeJSON(w, http.StatusOK, RecordingResponse{
		Success:   true,
		Message:   "Recording saved",
		Recording: recording,
	})
}

// GetRecordings lists the user's captures, oldest first.
func GetRecordings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"recording":  recorder.IsRecording(userID.String()),
		"recordings": recorder.List(userID.String()),
	})
}

// DeleteRecording discards one capture.
func DeleteRecording(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	if !recorder.Delete(userID.String(), chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "Recording not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Recording deleted",
	})
}

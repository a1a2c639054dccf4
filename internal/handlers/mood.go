package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soulspace-app/soulspace-backend/internal/models"
	"github.com/soulspace-app/soulspace-backend/internal/services"
)

type LogMoodRequest struct {
	LogDate string `json:"log_date,omitempty"` // YYYY-MM-DD, defaults to today
	Mood    string `json:"mood"`
	Note    string `json:"note,omitempty"`
}

type MoodResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Log     *models.MoodLog `json:"log,omitempty"`
}

type MoodListResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Logs    []models.MoodLog `json:"logs"`
}

// LogMood records the user's mood for a day. Logging twice for the same
// day replaces the earlier log.
func LogMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req LogMoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !models.ValidMood(req.Mood) {
		writeError(w, http.StatusBadRequest, "Unknown mood")
		return
	}

	logDate := req.LogDate
	if logDate == "" {
		logDate = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, logDate); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid log date, expected YYYY-MM-DD")
		return
	}

	log, err := services.UpsertMoodLog(userID, logDate, req.Mood, req.Note)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save mood log")
		return
	}

	writeJSON(w, http.StatusOK, MoodResponse{
		Success: true,
		Message: "Mood logged successfully",
		Log:     log,
	})
}

// GetMoods lists the user's mood logs, optionally restricted to an
// inclusive date range via start_date/end_date query parameters.
func GetMoods(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	startDate := r.URL.Query().Get("start_date")
	endDate := r.URL.Query().Get("end_date")
	for _, d := range []string{startDate, endDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(models.DateLayout, d); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
			return
		}
	}

	logs, err := services.ListMoodLogs(userID, startDate, endDate)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch mood logs")
		return
	}

	writeJSON(w, http.StatusOK, MoodListResponse{Success: true, Logs: logs})
}

// DeleteMood removes one mood log by ID.
func DeleteMood(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	logID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid log id")
		return
	}

	if err := services.DeleteMoodLog(userID, logID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Mood log not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to delete mood log")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Mood log deleted successfully",
	})
}

// GetMoodInsights returns the user's current streak and all-time mood
// distribution.
func GetMoodInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	logs, err := services.ListMoodLogs(userID, "", "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch mood logs")
		return
	}

	now := time.Now()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"streak":       services.MoodStreak(logs, now),
		"distribution": services.MoodDistribution(logs),
		"total":        len(logs),
	})
}

// GetWeeklyInsight summarizes the last seven days: entry count plus the
// dominant mood of the window.
func GetWeeklyInsight(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	now := time.Now()
	start := now.AddDate(0, 0, -6).Format(models.DateLayout)
	logs, err := services.ListMoodLogs(userID, start, now.Format(models.DateLayout))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch mood logs")
		return
	}

	insight := services.ComputeWeeklyInsight(logs, now)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"insight": insight,
		"logs":    services.WeeklyWindow(logs, now),
	})
}

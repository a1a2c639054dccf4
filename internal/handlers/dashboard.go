package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/soulspace-app/soulspace-backend/internal/services"
)

// recentEntryWindow caps how many recent entries feed the streak
// computation. Streaks longer than this many entries read as the cap.
const recentEntryWindow = 30

// GetDashboardStats aggregates the headline numbers for the dashboard:
// totals, the journaling streak, and the most recent mood.
func GetDashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	journalCount, err := services.CountJournalEntries(ctx, userID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	recentEntries, err := services.RecentJournalEntryTimes(ctx, userID.String(), recentEntryWindow)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	moodCount, err := services.CountMoodLogs(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	boardCount, err := services.CountVisionBoards(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	recentMood, err := services.RecentMood(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to compute dashboard stats")
		return
	}

	stats := services.ComputeDashboardStats(journalCount, moodCount, boardCount, recentMood, recentEntries, time.Now())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

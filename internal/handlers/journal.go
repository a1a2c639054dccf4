package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/soulspace-app/soulspace-backend/internal/models"
	"github.com/soulspace-app/soulspace-backend/internal/services"
)

func journalNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex)
}

const mongoTimeout = 5 * time.Second

type JournalResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Entry   *models.JournalEntry `json:"entry,omitempty"`
}

type JournalListResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
	Entries []models.JournalEntry `json:"entries"`
	Total   int64                 `json:"total"`
}

// CreateJournal creates a new journal entry for the authenticated user.
func CreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req services.JournalEntryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title == "" && req.Content == "" {
		writeError(w, http.StatusBadRequest, "Title or content is required")
		return
	}
	if req.Mood != "" && !models.ValidMood(req.Mood) {
		writeError(w, http.StatusBadRequest, "Unknown mood")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	entry, err := services.CreateJournalEntry(ctx, userID.String(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create journal entry")
		return
	}

	writeJSON(w, http.StatusCreated, JournalResponse{
		Success: true,
		Message: "Journal entry created successfully",
		Entry:   entry,
	})
}

// GetJournals returns the authenticated user's entries, newest first.
func GetJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	skip := 0
	if v := r.URL.Query().Get("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			skip = parsed
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	entries, total, err := services.ListJournalEntries(ctx, userID.String(), limit, skip)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch journal entries")
		return
	}

	writeJSON(w, http.StatusOK, JournalListResponse{
		Success: true,
		Entries: entries,
		Total:   total,
	})
}

// GetJournal returns a single entry owned by the authenticated user.
func GetJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	entry, err := services.GetJournalEntry(ctx, userID.String(), chi.URLParam(r, "id"))
	if err != nil {
		if journalNotFound(err) {
			writeError(w, http.StatusNotFound, "Journal entry not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to fetch journal entry")
		}
		return
	}

	writeJSON(w, http.StatusOK, JournalResponse{Success: true, Entry: entry})
}

// UpdateJournal replaces the editable fields of an entry.
func UpdateJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req services.JournalEntryInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Mood != "" && !models.ValidMood(req.Mood) {
		writeError(w, http.StatusBadRequest, "Unknown mood")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	entry, err := services.UpdateJournalEntry(ctx, userID.String(), chi.URLParam(r, "id"), req)
	if err != nil {
		if journalNotFound(err) {
			writeError(w, http.StatusNotFound, "Journal entry not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to update journal entry")
		}
		return
	}

	writeJSON(w, http.StatusOK, JournalResponse{
		Success: true,
		Message: "Journal entry updated successfully",
		Entry:   entry,
	})
}

// DeleteJournal removes an entry owned by the authenticated user.
func DeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	err := services.DeleteJournalEntry(ctx, userID.String(), chi.URLParam(r, "id"))
	if err != nil {
		if journalNotFound(err) {
			writeError(w, http.StatusNotFound, "Journal entry not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to delete journal entry")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Journal entry deleted successfully",
	})
}

// SearchJournals finds entries whose title or content matches the query,
// case-insensitively.
func SearchJournals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Search query is required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout)
	defer cancel()

	entries, err := services.SearchJournalEntries(ctx, userID.String(), query)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Search failed")
		return
	}

	writeJSON(w, http.StatusOK, JournalListResponse{
		Success: true,
		Entries: entries,
		Total:   int64(len(entries)),
	})
}

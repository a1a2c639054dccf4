package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/soulspace-app/soulspace-backend/internal/models"
	"github.com/soulspace-app/soulspace-backend/internal/services"
)

type BoardRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type BoardResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Board   *models.VisionBoard `json:"board,omitempty"`
}

type BoardListResponse struct {
	Success bool                 `json:"success"`
	Message string               `json:"message,omitempty"`
	Boards  []models.VisionBoard `json:"boards"`
}

type BoardItemRequest struct {
	ItemType string `json:"item_type"`
	Content  string `json:"content"`
	Title    string `json:"title,omitempty"`
}

type BoardItemResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message,omitempty"`
	Item    *models.VisionBoardItem `json:"item,omitempty"`
}

type BoardItemListResponse struct {
	Success bool                     `json:"success"`
	Message string                   `json:"message,omitempty"`
	Items   []models.VisionBoardItem `json:"items"`
}

func parseBoardParam(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}

// CreateBoard creates a new vision board for the authenticated user.
func CreateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	board, err := services.CreateVisionBoard(userID, req.Title, req.Description)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	writeJSON(w, http.StatusCreated, BoardResponse{
		Success: true,
		Message: "Board created successfully",
		Board:   board,
	})
}

// GetBoards lists the user's boards, newest first, items included.
func GetBoards(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boards, err := services.ListVisionBoards(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch boards")
		return
	}

	writeJSON(w, http.StatusOK, BoardListResponse{Success: true, Boards: boards})
}

// UpdateBoard renames a board or changes its description.
func UpdateBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boardID, err := parseBoardParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	var req BoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}

	board, err := services.UpdateVisionBoard(userID, boardID, req.Title, req.Description)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Board not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to update board")
		}
		return
	}

	writeJSON(w, http.StatusOK, BoardResponse{
		Success: true,
		Message: "Board updated successfully",
		Board:   board,
	})
}

// DeleteBoard removes a board and its items.
func DeleteBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boardID, err := parseBoardParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	if err := services.DeleteVisionBoard(userID, boardID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Board not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to delete board")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Board deleted successfully",
	})
}

// SetFavoriteBoard marks a board as the user's favorite. At most one
// board per user is favorite; marking one clears the others.
func SetFavoriteBoard(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boardID, err := parseBoardParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	var req struct {
		Favorite bool `json:"favorite"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := services.SetFavoriteBoard(userID, boardID, req.Favorite); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Board not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to update board")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Favorite updated successfully",
	})
}

// AddBoardItem appends an item to the end of a board.
func AddBoardItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boardID, err := parseBoardParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	var req BoardItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !models.ValidItemType(req.ItemType) {
		writeError(w, http.StatusBadRequest, "Unknown item type")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	item, err := services.AddBoardItem(userID, boardID, req.ItemType, req.Content, req.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Board not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to add item")
		}
		return
	}

	writeJSON(w, http.StatusCreated, BoardItemResponse{
		Success: true,
		Message: "Item added successfully",
		Item:    item,
	})
}

// GetBoardItems lists a board's items in display order.
func GetBoardItems(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boardID, err := parseBoardParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	items, err := services.ListBoardItems(userID, boardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Board not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to fetch items")
		}
		return
	}

	writeJSON(w, http.StatusOK, BoardItemListResponse{Success: true, Items: items})
}

// UpdateBoardItem changes an item's content or title.
func UpdateBoardItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	itemID, err := parseBoardParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	var req BoardItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Content == "" {
		writeError(w, http.StatusBadRequest, "Content is required")
		return
	}

	item, err := services.UpdateBoardItem(userID, itemID, req.Content, req.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Item not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to update item")
		}
		return
	}

	writeJSON(w, http.StatusOK, BoardItemResponse{
		Success: true,
		Message: "Item updated successfully",
		Item:    item,
	})
}

// DeleteBoardItem removes an item from a board.
func DeleteBoardItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	itemID, err := parseBoardParam(r, "itemID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	if err := services.DeleteBoardItem(userID, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Item not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to delete item")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Item deleted successfully",
	})
}

// ReorderBoardItem moves an item to a new position within its board and
// returns the board's items in their new order. Target positions past
// either end clamp to the nearest valid slot.
func ReorderBoardItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	boardID, err := parseBoardParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid board id")
		return
	}

	var req struct {
		ItemID   string `json:"item_id"`
		Position int    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	itemID, err := uuid.Parse(req.ItemID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	items, err := services.ReorderBoardItem(userID, boardID, itemID, req.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "Board or item not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Failed to reorder items")
		}
		return
	}

	writeJSON(w, http.StatusOK, BoardItemListResponse{
		Success: true,
		Message: "Items reordered successfully",
		Items:   items,
	})
}

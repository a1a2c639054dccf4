package models

import (
	"time"

	"github.com/google/uuid"
)

// Item kinds a vision board item can have.
const (
	ItemTypeImage = "image"
	ItemTypeQuote = "quote"
	ItemTypeColor = "color"
)

// ValidItemType reports whether t is a known board item kind.
func ValidItemType(t string) bool {
	return t == ItemTypeImage || t == ItemTypeQuote || t == ItemTypeColor
}

// VisionBoard is a user-owned collection of visual/textual items.
// At most one board per user may be favorite; the board service enforces
// this by clearing the flag on the user's other boards in the same
// transaction.
type VisionBoard struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	IsFavorite  bool              `json:"is_favorite"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	Items       []VisionBoardItem `json:"items"`
}

// VisionBoardItem is a single element on a board. Content is a URL, data
// URI or color token depending on ItemType. Position is the item's index
// within the board's ordered list.
type VisionBoardItem struct {
	ID        uuid.UUID `json:"id"`
	BoardID   uuid.UUID `json:"board_id"`
	ItemType  string    `json:"item_type"`
	Content   string    `json:"content"`
	Title     string    `json:"title,omitempty"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/soulspace-app/soulspace-backend/internal/database"
	"github.com/soulspace-app/soulspace-backend/internal/models"
	"github.com/soulspace-app/soulspace-backend/pkg/listedit"
)

// CreateVisionBoard inserts a new board owned by userID.
func CreateVisionBoard(userID uuid.UUID, title, description string) (*models.VisionBoard, error) {
	board := models.VisionBoard{Items: []models.VisionBoardItem{}}
	err := database.PostgresDB.QueryRow(`
		INSERT INTO vision_boards (id, user_id, title, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, user_id, title, COALESCE(description, ''), is_favorite, created_at, updated_at
	`, uuid.New(), userID, title, nullableString(description)).
		Scan(&board.ID, &board.UserID, &board.Title, &board.Description, &board.IsFavorite, &board.CreatedAt, &board.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create vision board: %w", err)
	}
	return &board, nil
}

// ListVisionBoards returns the user's boards newest first, each with its
// items ordered by position.
func ListVisionBoards(userID uuid.UUID) ([]models.VisionBoard, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT id, user_id, title, COALESCE(description, ''), is_favorite, created_at, updated_at
		FROM vision_boards
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list vision boards: %w", err)
	}
	defer rows.Close()

	boards := make([]models.VisionBoard, 0)
	for rows.Next() {
		var b models.VisionBoard
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.Description, &b.IsFavorite, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vision board: %w", err)
		}
		b.Items = []models.VisionBoardItem{}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range boards {
		items, err := ListBoardItems(userID, boards[i].ID)
		if err != nil {
			return nil, err
		}
		boards[i].Items = items
	}
	return boards, nil
}

// UpdateVisionBoard updates title/description of the user's board.
func UpdateVisionBoard(userID, boardID uuid.UUID, title, description string) (*models.VisionBoard, error) {
	board := models.VisionBoard{Items: []models.VisionBoardItem{}}
	err := database.PostgresDB.QueryRow(`
		UPDATE vision_boards
		SET title = $3, description = $4, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, COALESCE(description, ''), is_favorite, created_at, updated_at
	`, boardID, userID, title, nullableString(description)).
		Scan(&board.ID, &board.UserID, &board.Title, &board.Description, &board.IsFavorite, &board.CreatedAt, &board.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update vision board: %w", err)
	}
	return &board, nil
}

// DeleteVisionBoard removes the user's board; items cascade.
func DeleteVisionBoard(userID, boardID uuid.UUID) error {
	res, err := database.PostgresDB.Exec(`
		DELETE FROM vision_boards WHERE id = $1 AND user_id = $2
	`, boardID, userID)
	if err != nil {
		return fmt.Errorf("delete vision board: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// SetFavoriteBoard marks one board as favorite and clears the flag on the
// user's other boards in the same transaction, so at most one board per
// user is favorite. Passing favorite=false just clears the one board.
func SetFavoriteBoard(userID, boardID uuid.UUID, favorite bool) error {
	tx, err := database.PostgresDB.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if favorite {
		if _, err := tx.Exec(`
			UPDATE vision_boards SET is_favorite = FALSE, updated_at = NOW()
			WHERE user_id = $1 AND is_favorite = TRUE AND id <> $2
		`, userID, boardID); err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
	}

	res, err := tx.Exec(`
		UPDATE vision_boards SET is_favorite = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`, boardID, userID, favorite)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}

	return tx.Commit()
}

// CountVisionBoards returns how many boards the user has.
func CountVisionBoards(userID uuid.UUID) (int64, error) {
	var count int64
	err := database.PostgresDB.QueryRow(`
		SELECT COUNT(*) FROM vision_boards WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count vision boards: %w", err)
	}
	return count, nil
}

// AddBoardItem appends an item to the user's board. Position is assigned
// at the end of the current order.
func AddBoardItem(userID, boardID uuid.UUID, itemType, content, title string) (*models.VisionBoardItem, error) {
	if err := ensureBoardOwner(userID, boardID); err != nil {
		return nil, err
	}

	var item models.VisionBoardItem
	err := database.PostgresDB.QueryRow(`
		INSERT INTO vision_board_items (id, board_id, item_type, content, title, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM vision_board_items WHERE board_id = $2),
			NOW(), NOW())
		RETURNING id, board_id, item_type, content, COALESCE(title, ''), position, created_at, updated_at
	`, uuid.New(), boardID, itemType, content, nullableString(title)).
		Scan(&item.ID, &item.BoardID, &item.ItemType, &item.Content, &item.Title, &item.Position, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("add board item: %w", err)
	}
	return &item, nil
}

// ListBoardItems returns the items of the user's board ordered by position.
func ListBoardItems(userID, boardID uuid.UUID) ([]models.VisionBoardItem, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT i.id, i.board_id, i.item_type, i.content, COALESCE(i.title, ''), i.position, i.created_at, i.updated_at
		FROM vision_board_items i
		JOIN vision_boards b ON b.id = i.board_id
		WHERE i.board_id = $1 AND b.user_id = $2
		ORDER BY i.position ASC
	`, boardID, userID)
	if err != nil {
		return nil, fmt.Errorf("list board items: %w", err)
	}
	defer rows.Close()

	items := make([]models.VisionBoardItem, 0)
	for rows.Next() {
		var item models.VisionBoardItem
		if err := rows.Scan(&item.ID, &item.BoardID, &item.ItemType, &item.Content, &item.Title, &item.Position, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan board item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateBoardItem updates content/title of an item on the user's board.
func UpdateBoardItem(userID, itemID uuid.UUID, content, title string) (*models.VisionBoardItem, error) {
	var item models.VisionBoardItem
	err := database.PostgresDB.QueryRow(`
		UPDATE vision_board_items i
		SET content = $3, title = $4, updated_at = NOW()
		FROM vision_boards b
		WHERE i.id = $1 AND b.id = i.board_id AND b.user_id = $2
		RETURNING i.id, i.board_id, i.item_type, i.content, COALESCE(i.title, ''), i.position, i.created_at, i.updated_at
	`, itemID, userID, content, nullableString(title)).
		Scan(&item.ID, &item.BoardID, &item.ItemType, &item.Content, &item.Title, &item.Position, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update board item: %w", err)
	}
	return &item, nil
}

// DeleteBoardItem removes an item from the user's board.
func DeleteBoardItem(userID, itemID uuid.UUID) error {
	res, err := database.PostgresDB.Exec(`
		DELETE FROM vision_board_items i
		USING vision_boards b
		WHERE i.id = $1 AND b.id = i.board_id AND b.user_id = $2
	`, itemID, userID)
	if err != nil {
		return fmt.Errorf("delete board item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// boardItemRef adapts a board item to the list editor.
type boardItemRef struct {
	id uuid.UUID
}

func (r boardItemRef) ItemID() string { return r.id.String() }

// ReorderBoardItem moves the item to the target index within its board's
// ordered list (a splice), persisting the resulting positions in one
// transaction.
func ReorderBoardItem(userID, boardID, itemID uuid.UUID, toIndex int) ([]models.VisionBoardItem, error) {
	items, err := ListBoardItems(userID, boardID)
	if err != nil {
		return nil, err
	}

	refs := make([]boardItemRef, 0, len(items))
	for _, it := range items {
		refs = append(refs, boardItemRef{id: it.ID})
	}

	list := listedit.New(refs)
	if !list.MoveID(itemID.String(), toIndex) {
		return nil, sql.ErrNoRows
	}

	tx, err := database.PostgresDB.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for pos, ref := range list.Items() {
		if _, err := tx.Exec(`
			UPDATE vision_board_items SET position = $2, updated_at = NOW()
			WHERE id = $1
		`, ref.id, pos); err != nil {
			return nil, fmt.Errorf("persist position: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return ListBoardItems(userID, boardID)
}

func ensureBoardOwner(userID, boardID uuid.UUID) error {
	var exists bool
	err := database.PostgresDB.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM vision_boards WHERE id = $1 AND user_id = $2)
	`, boardID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check board owner: %w", err)
	}
	if !exists {
		return sql.ErrNoRows
	}
	return nil
}

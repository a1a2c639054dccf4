package services

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/soulspace-app/soulspace-backend/internal/database"
	"github.com/soulspace-app/soulspace-backend/internal/models"
)

// GetUserProfile returns the profile for the given auth identity.
func GetUserProfile(userID uuid.UUID) (*models.UserProfile, error) {
	var p models.UserProfile
	err := database.PostgresDB.QueryRow(`
		SELECT id, username, COALESCE(full_name, ''), created_at, updated_at
		FROM users
		WHERE id = $1 AND is_active
	`, userID).Scan(&p.ID, &p.Username, &p.FullName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return &p, nil
}

// UpdateUserProfile updates the user's full name and bumps updated_at.
func UpdateUserProfile(userID uuid.UUID, fullName string) (*models.UserProfile, error) {
	var p models.UserProfile
	err := database.PostgresDB.QueryRow(`
		UPDATE users
		SET full_name = $2, updated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING id, username, COALESCE(full_name, ''), created_at, updated_at
	`, userID, nullableString(fullName)).
		Scan(&p.ID, &p.Username, &p.FullName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return &p, nil
}

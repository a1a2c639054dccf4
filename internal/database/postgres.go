package database

import (
	"database/sql"
	"log"
	"time"

	_ "github.com/lib/pq"
)

var PostgresDB *sql.DB

// ConnectPostgres connects to PostgreSQL database
func ConnectPostgres(postgresURI string) error {
	var err error

	PostgresDB, err = sql.Open("postgres", postgresURI)
	if err != nil {
		return err
	}

	// Set connection pool settings
	PostgresDB.SetMaxOpenConns(25)
	PostgresDB.SetMaxIdleConns(5)
	PostgresDB.SetConnMaxLifetime(5 * time.Minute)

	// Test connection
	if err = PostgresDB.Ping(); err != nil {
		return err
	}

	log.Println("✅ Connected to PostgreSQL")

	// Initialize tables
	if err = InitPostgresTables(); err != nil {
		return err
	}

	return nil
}

// InitPostgresTables creates all necessary tables if they don't exist
func InitPostgresTables() error {
	queries := []string{
		// Users table (profile data; user id doubles as the auth identity)
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			username VARCHAR(20) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			full_name VARCHAR(255),
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		// Mood logs table: one row per user per calendar date
		`CREATE TABLE IF NOT EXISTS mood_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			log_date DATE NOT NULL,
			mood VARCHAR(20) NOT NULL,
			note TEXT,
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE(user_id, log_date)
		)`,

		// Vision boards table
		`CREATE TABLE IF NOT EXISTS vision_boards (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Vision board items table (image | quote | color), ordered by position
		`CREATE TABLE IF NOT EXISTS vision_board_items (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			board_id UUID NOT NULL REFERENCES vision_boards(id) ON DELETE CASCADE,
			item_type VARCHAR(20) NOT NULL,
			content TEXT NOT NULL,
			title VARCHAR(255),
			position INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`,

		// Create indexes for better performance
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username_lower ON users(LOWER(username))`,
		`CREATE INDEX IF NOT EXISTS idx_mood_logs_user_id ON mood_logs(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_mood_logs_log_date ON mood_logs(log_date)`,
		`CREATE INDEX IF NOT EXISTS idx_vision_boards_user_id ON vision_boards(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_vision_boards_created_at ON vision_boards(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_vision_board_items_board_id ON vision_board_items(board_id)`,
		`CREATE INDEX IF NOT EXISTS idx_vision_board_items_position ON vision_board_items(board_id, position)`,
	}

	for _, query := range queries {
		if _, err := PostgresDB.Exec(query); err != nil {
			return err
		}
	}

	log.Println("✅ PostgreSQL tables initialized")
	return nil
}

// DisconnectPostgres closes the PostgreSQL connection
func DisconnectPostgres() error {
	if PostgresDB != nil {
		return PostgresDB.Close()
	}
	return nil
}

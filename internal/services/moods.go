package services

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/soulspace-app/soulspace-backend/internal/database"
	"github.com/soulspace-app/soulspace-backend/internal/models"
)

// UpsertMoodLog records the user's mood for a calendar date. At most one
// log exists per (user, date): logging twice for the same date is an
// idempotent replace reflecting the second call's values.
func UpsertMoodLog(userID uuid.UUID, logDate, mood, note string) (*models.MoodLog, error) {
	date, err := time.Parse(models.DateLayout, logDate)
	if err != nil {
		return nil, fmt.Errorf("invalid log date %q: %w", logDate, err)
	}

	var log models.MoodLog
	var dbDate time.Time
	err = database.PostgresDB.QueryRow(`
		INSERT INTO mood_logs (id, user_id, log_date, mood, note, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (user_id, log_date) DO UPDATE SET
			mood = EXCLUDED.mood,
			note = EXCLUDED.note,
			updated_at = NOW()
		RETURNING id, user_id, log_date, mood, COALESCE(note, ''), updated_at
	`, uuid.New(), userID, date, mood, nullableString(note)).
		Scan(&log.ID, &log.UserID, &dbDate, &log.Mood, &log.Note, &log.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert mood log: %w", err)
	}

	log.LogDate = dbDate.Format(models.DateLayout)
	return &log, nil
}

// ListMoodLogs returns the user's mood logs, optionally bounded to a date
// range (inclusive). Ranged queries come back ascending by date, unranged
// queries descending (newest first), matching how each is consumed.
func ListMoodLogs(userID uuid.UUID, startDate, endDate string) ([]models.MoodLog, error) {
	query := `
		SELECT id, user_id, log_date, mood, COALESCE(note, ''), updated_at
		FROM mood_logs
		WHERE user_id = $1`
	args := []interface{}{userID}
	ranged := false

	if startDate != "" {
		if _, err := time.Parse(models.DateLayout, startDate); err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", startDate, err)
		}
		args = append(args, startDate)
		query += fmt.Sprintf(" AND log_date >= $%d", len(args))
		ranged = true
	}
	if endDate != "" {
		if _, err := time.Parse(models.DateLayout, endDate); err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
		args = append(args, endDate)
		query += fmt.Sprintf(" AND log_date <= $%d", len(args))
		ranged = true
	}

	if ranged {
		query += " ORDER BY log_date ASC"
	} else {
		query += " ORDER BY log_date DESC"
	}

	rows, err := database.PostgresDB.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mood logs: %w", err)
	}
	defer rows.Close()

	logs := make([]models.MoodLog, 0)
	for rows.Next() {
		var log models.MoodLog
		var dbDate time.Time
		if err := rows.Scan(&log.ID, &log.UserID, &dbDate, &log.Mood, &log.Note, &log.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mood log: %w", err)
		}
		log.LogDate = dbDate.Format(models.DateLayout)
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

// DeleteMoodLog removes one of the user's mood logs by ID.
func DeleteMoodLog(userID, logID uuid.UUID) error {
	res, err := database.PostgresDB.Exec(`
		DELETE FROM mood_logs WHERE id = $1 AND user_id = $2
	`, logID, userID)
	if err != nil {
		return fmt.Errorf("delete mood log: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountMoodLogs returns how many mood logs the user has.
func CountMoodLogs(userID uuid.UUID) (int64, error) {
	var count int64
	err := database.PostgresDB.QueryRow(`
		SELECT COUNT(*) FROM mood_logs WHERE user_id = $1
	`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count mood logs: %w", err)
	}
	return count, nil
}

// RecentMood returns the mood tag of the user's latest log by date, or ""
// when no logs exist.
func RecentMood(userID uuid.UUID) (string, error) {
	var mood string
	err := database.PostgresDB.QueryRow(`
		SELECT mood FROM mood_logs
		WHERE user_id = $1
		ORDER BY log_date DESC
		LIMIT 1
	`, userID).Scan(&mood)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("recent mood: %w", err)
	}
	return mood, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

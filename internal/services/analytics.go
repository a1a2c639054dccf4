package services

import (
	"math"
	"time"

	"github.com/soulspace-app/soulspace-backend/internal/models"
)

// Analytics helpers derive summary statistics from fully-materialized
// result sets. They are pure functions of their inputs and do no I/O;
// callers are responsible for fetching and for surfacing fetch errors.

// DashboardStats is the summary shown on the dashboard.
type DashboardStats struct {
	JournalCount     int64  `json:"journal_count"`
	MoodCount        int64  `json:"mood_count"`
	VisionBoardCount int64  `json:"vision_board_count"`
	RecentMood       string `json:"recent_mood,omitempty"`
	Streak           int    `json:"streak"`
}

// MoodCount is one bucket of a mood distribution.
type MoodCount struct {
	Mood       string `json:"mood"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// WeeklyInsight summarizes the trailing seven days of activity.
type WeeklyInsight struct {
	Entries      int    `json:"entries"`
	DominantMood string `json:"dominant_mood,omitempty"`
}

// dateKey collapses a timestamp to its local calendar date.
func dateKey(t time.Time) string {
	return t.Local().Format(models.DateLayout)
}

// JournalStreak counts consecutive calendar days, walking backward from
// today, for which at least one entry timestamp exists. Multiple entries
// on one day count once. No entry today means a streak of zero regardless
// of older entries.
func JournalStreak(entryTimes []time.Time, today time.Time) int {
	if len(entryTimes) == 0 {
		return 0
	}
	dates := make(map[string]bool, len(entryTimes))
	for _, t := range entryTimes {
		dates[dateKey(t)] = true
	}

	streak := 0
	for i := 0; i < len(dates); i++ {
		if !dates[dateKey(today.AddDate(0, 0, -i))] {
			break
		}
		streak++
	}
	return streak
}

// MoodStreak is the same consecutive-day walk applied to mood-log dates.
// It is not capped: the walk continues until the first gap or the date
// set is exhausted.
func MoodStreak(logs []models.MoodLog, today time.Time) int {
	if len(logs) == 0 {
		return 0
	}
	dates := make(map[string]bool, len(logs))
	for _, l := range logs {
		dates[l.LogDate] = true
	}

	streak := 0
	for i := 0; i < len(dates); i++ {
		if !dates[dateKey(today.AddDate(0, 0, -i))] {
			break
		}
		streak++
	}
	return streak
}

// MoodDistribution computes count and integer-rounded percentage per fixed
// mood category. Categories with no occurrences are still reported with
// zero; with no logs at all every percentage is zero.
func MoodDistribution(logs []models.MoodLog) []MoodCount {
	counts := make(map[string]int, len(models.Moods))
	for _, l := range logs {
		counts[l.Mood]++
	}

	total := len(logs)
	out := make([]MoodCount, 0, len(models.Moods))
	for _, mood := range models.Moods {
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(counts[mood]) / float64(total) * 100))
		}
		out = append(out, MoodCount{Mood: mood, Count: counts[mood], Percentage: pct})
	}
	return out
}

// WeeklyWindow returns the logs whose date falls within the trailing seven
// days inclusive of today (today-6 .. today, local calendar dates). The
// filter is idempotent under re-filtering with the same reference date.
func WeeklyWindow(logs []models.MoodLog, now time.Time) []models.MoodLog {
	start := dateKey(now.AddDate(0, 0, -6))
	end := dateKey(now)

	out := make([]models.MoodLog, 0, len(logs))
	for _, l := range logs {
		if l.LogDate >= start && l.LogDate <= end {
			out = append(out, l)
		}
	}
	return out
}

// ComputeWeeklyInsight summarizes the trailing week: how many logs were
// made and which mood occurred most often (first-listed category wins ties).
func ComputeWeeklyInsight(logs []models.MoodLog, now time.Time) WeeklyInsight {
	week := WeeklyWindow(logs, now)

	counts := make(map[string]int, len(models.Moods))
	for _, l := range week {
		counts[l.Mood]++
	}

	dominant := ""
	best := 0
	for _, mood := range models.Moods {
		if counts[mood] > best {
			best = counts[mood]
			dominant = mood
		}
	}

	return WeeklyInsight{Entries: len(week), DominantMood: dominant}
}

// ComputeDashboardStats assembles the dashboard summary. Counts and the
// recent mood pass through; the streak is derived from the most recent
// entry timestamps the caller fetched.
func ComputeDashboardStats(journalCount, moodCount, boardCount int64, recentMood string, recentEntries []time.Time, today time.Time) DashboardStats {
	return DashboardStats{
		JournalCount:     journalCount,
		MoodCount:        moodCount,
		VisionBoardCount: boardCount,
		RecentMood:       recentMood,
		Streak:           JournalStreak(recentEntries, today),
	}
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulspace-app/soulspace-backend/internal/models"
)

var testToday = time.Date(2024, 5, 15, 14, 30, 0, 0, time.Local)

func daysAgo(n int) time.Time {
	return testToday.AddDate(0, 0, -n)
}

func moodLogOn(daysBack int, mood string) models.MoodLog {
	return models.MoodLog{
		LogDate: daysAgo(daysBack).Format(models.DateLayout),
		Mood:    mood,
	}
}

func TestJournalStreakEmpty(t *testing.T) {
	assert.Equal(t, 0, JournalStreak(nil, testToday))
}

func TestJournalStreakNoEntryToday(t *testing.T) {
	// Older entries alone never produce a streak.
	entries := []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}
	assert.Equal(t, 0, JournalStreak(entries, testToday))
}

func TestJournalStreakStopsAtGap(t *testing.T) {
	// Entries for today, yesterday, and 3 days ago: gap at 2 days ago.
	entries := []time.Time{daysAgo(0), daysAgo(1), daysAgo(3)}
	assert.Equal(t, 2, JournalStreak(entries, testToday))
}

func TestJournalStreakDuplicateDaysCountOnce(t *testing.T) {
	entries := []time.Time{
		daysAgo(0), daysAgo(0).Add(-2 * time.Hour), daysAgo(0).Add(-5 * time.Hour),
		daysAgo(1),
	}
	assert.Equal(t, 2, JournalStreak(entries, testToday))
}

func TestJournalStreakRecurrence(t *testing.T) {
	// streak(D, T) = 1 + streak(D, T-1day) whenever T is in D.
	entries := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(4)}
	require.Equal(t, 3, JournalStreak(entries, testToday))
	assert.Equal(t, JournalStreak(entries, testToday),
		1+JournalStreak(entries, daysAgo(1)))
}

func TestMoodStreakUncapped(t *testing.T) {
	logs := make([]models.MoodLog, 0, 45)
	for i := 0; i < 45; i++ {
		logs = append(logs, moodLogOn(i, models.MoodContent))
	}
	assert.Equal(t, 45, MoodStreak(logs, testToday))
}

func TestMoodStreakGap(t *testing.T) {
	logs := []models.MoodLog{
		moodLogOn(0, models.MoodHappy),
		moodLogOn(1, models.MoodOkay),
		moodLogOn(3, models.MoodSad),
	}
	assert.Equal(t, 2, MoodStreak(logs, testToday))
}

func TestMoodDistributionExample(t *testing.T) {
	// {happy x3, sad x1} over 4 logs -> 75 / 25 / 0.
	logs := []models.MoodLog{
		moodLogOn(0, models.MoodHappy),
		moodLogOn(1, models.MoodHappy),
		moodLogOn(2, models.MoodHappy),
		moodLogOn(3, models.MoodSad),
	}

	dist := MoodDistribution(logs)
	require.Len(t, dist, len(models.Moods))

	byMood := make(map[string]MoodCount)
	totalCount, totalPct := 0, 0
	for _, mc := range dist {
		byMood[mc.Mood] = mc
		totalCount += mc.Count
		totalPct += mc.Percentage
	}

	assert.Equal(t, 75, byMood[models.MoodHappy].Percentage)
	assert.Equal(t, 25, byMood[models.MoodSad].Percentage)
	assert.Equal(t, 0, byMood[models.MoodContent].Percentage)
	assert.Equal(t, 0, byMood[models.MoodOkay].Percentage)
	assert.Equal(t, 0, byMood[models.MoodAnxious].Percentage)
	assert.Equal(t, len(logs), totalCount)
	assert.Equal(t, 100, totalPct)
}

func TestMoodDistributionEmpty(t *testing.T) {
	dist := MoodDistribution(nil)
	require.Len(t, dist, len(models.Moods))
	for _, mc := range dist {
		assert.Zero(t, mc.Count)
		assert.Zero(t, mc.Percentage)
	}
}

func TestMoodDistributionPercentagesSumNear100(t *testing.T) {
	// Three-way split rounds to 33+33+33; the sum stays within rounding error.
	logs := []models.MoodLog{
		moodLogOn(0, models.MoodHappy),
		moodLogOn(1, models.MoodSad),
		moodLogOn(2, models.MoodAnxious),
	}
	sum := 0
	for _, mc := range MoodDistribution(logs) {
		sum += mc.Percentage
	}
	assert.InDelta(t, 100, sum, 2)
}

func TestWeeklyWindowBounds(t *testing.T) {
	logs := []models.MoodLog{
		moodLogOn(0, models.MoodHappy),
		moodLogOn(6, models.MoodOkay),
		moodLogOn(7, models.MoodSad),
		moodLogOn(12, models.MoodAnxious),
	}

	week := WeeklyWindow(logs, testToday)
	require.Len(t, week, 2)
	assert.Equal(t, daysAgo(0).Format(models.DateLayout), week[0].LogDate)
	assert.Equal(t, daysAgo(6).Format(models.DateLayout), week[1].LogDate)
}

func TestWeeklyWindowIdempotent(t *testing.T) {
	logs := []models.MoodLog{
		moodLogOn(1, models.MoodHappy),
		moodLogOn(5, models.MoodOkay),
		moodLogOn(9, models.MoodSad),
	}
	once := WeeklyWindow(logs, testToday)
	twice := WeeklyWindow(once, testToday)
	assert.Equal(t, once, twice)
}

func TestComputeWeeklyInsight(t *testing.T) {
	logs := []models.MoodLog{
		moodLogOn(0, models.MoodHappy),
		moodLogOn(1, models.MoodHappy),
		moodLogOn(2, models.MoodSad),
		moodLogOn(10, models.MoodSad), // outside window
	}

	insight := ComputeWeeklyInsight(logs, testToday)
	assert.Equal(t, 3, insight.Entries)
	assert.Equal(t, models.MoodHappy, insight.DominantMood)
}

func TestComputeDashboardStats(t *testing.T) {
	entries := []time.Time{daysAgo(0), daysAgo(1)}
	stats := ComputeDashboardStats(12, 8, 2, models.MoodContent, entries, testToday)

	assert.Equal(t, int64(12), stats.JournalCount)
	assert.Equal(t, int64(8), stats.MoodCount)
	assert.Equal(t, int64(2), stats.VisionBoardCount)
	assert.Equal(t, models.MoodContent, stats.RecentMood)
	assert.Equal(t, 2, stats.Streak)
}

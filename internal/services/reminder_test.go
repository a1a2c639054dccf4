package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextReminderDelayLaterToday(t *testing.T) {
	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.Local)

	delay, err := NextReminderDelay(now, "20:00")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, delay)
}

func TestNextReminderDelayAlreadyPassed(t *testing.T) {
	// 20:00 already passed: schedule for tomorrow.
	now := time.Date(2024, 5, 15, 21, 30, 0, 0, time.Local)

	delay, err := NextReminderDelay(now, "20:00")
	require.NoError(t, err)
	assert.Equal(t, 22*time.Hour+30*time.Minute, delay)
}

func TestNextReminderDelayExactlyNow(t *testing.T) {
	now := time.Date(2024, 5, 15, 20, 0, 0, 0, time.Local)

	delay, err := NextReminderDelay(now, "20:00")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, delay)
}

func TestNextReminderDelayInvalid(t *testing.T) {
	_, err := NextReminderDelay(time.Now(), "25:99")
	assert.Error(t, err)
}

func TestNotificationSettingsValidate(t *testing.T) {
	settings := DefaultNotificationSettings()
	assert.NoError(t, settings.Validate())

	settings.ReminderTime = "not-a-time"
	assert.Error(t, settings.Validate())

	settings = DefaultNotificationSettings()
	settings.MotivationalQuotes = true
	settings.QuoteInterval = 0
	assert.Error(t, settings.Validate())
}

func TestSchedulerLifecycle(t *testing.T) {
	sched := NewReminderScheduler(func(string, NotificationEvent) {})

	require.NoError(t, sched.Schedule(testUser, DefaultNotificationSettings()))
	assert.True(t, sched.Scheduled(testUser))

	// Re-scheduling replaces the prior timers.
	require.NoError(t, sched.Schedule(testUser, DefaultNotificationSettings()))
	assert.True(t, sched.Scheduled(testUser))

	sched.Cancel(testUser)
	assert.False(t, sched.Scheduled(testUser))

	// Cancelling again is harmless.
	sched.Cancel(testUser)
}

func TestSchedulerRejectsInvalidSettings(t *testing.T) {
	sched := NewReminderScheduler(func(string, NotificationEvent) {})

	bad := DefaultNotificationSettings()
	bad.ReminderTime = "99:99"
	assert.Error(t, sched.Schedule(testUser, bad))
	assert.False(t, sched.Scheduled(testUser))
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/soulspace-app/soulspace-backend/internal/database"
)

// NotificationSettingsKeyPrefix is the Redis namespace for per-user
// notification settings.
const NotificationSettingsKeyPrefix = "soulspace:notifications:"

// NotificationSettings is the explicit, persisted configuration for a
// user's reminders. Loaded at connect, saved on change.
type NotificationSettings struct {
	DailyReminder      bool   `json:"daily_reminder"`
	ReminderTime       string `json:"reminder_time"` // "HH:MM", local clock
	WeeklyInsights     bool   `json:"weekly_insights"`
	MotivationalQuotes bool   `json:"motivational_quotes"`
	QuoteInterval      int    `json:"quote_interval"` // minutes
}

// DefaultNotificationSettings mirrors the app's out-of-the-box behavior.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		DailyReminder:      true,
		ReminderTime:       "20:00",
		WeeklyInsights:     true,
		MotivationalQuotes: false,
		QuoteInterval:      120,
	}
}

// Validate checks the clock time and interval.
func (s NotificationSettings) Validate() error {
	if _, err := time.Parse("15:04", s.ReminderTime); err != nil {
		return fmt.Errorf("invalid reminder time %q", s.ReminderTime)
	}
	if s.MotivationalQuotes && s.QuoteInterval < 1 {
		return fmt.Errorf("quote interval must be at least 1 minute")
	}
	return nil
}

// LoadNotificationSettings reads the user's settings from Redis, falling
// back to defaults when none are stored.
func LoadNotificationSettings(ctx context.Context, userID string) (NotificationSettings, error) {
	val, err := database.RedisClient.Get(ctx, NotificationSettingsKeyPrefix+userID).Result()
	if err != nil {
		return DefaultNotificationSettings(), nil // not stored yet
	}

	var settings NotificationSettings
	if err := json.Unmarshal([]byte(val), &settings); err != nil {
		return DefaultNotificationSettings(), fmt.Errorf("decode notification settings: %w", err)
	}
	return settings, nil
}

// SaveNotificationSettings persists the user's settings to Redis.
func SaveNotificationSettings(ctx context.Context, userID string, settings NotificationSettings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return database.RedisClient.Set(ctx, NotificationSettingsKeyPrefix+userID, data, 0).Err()
}

// NotificationEvent is one reminder pushed to a connected client.
type NotificationEvent struct {
	Type  string `json:"type"` // daily_reminder | motivational_quote | weekly_insight | test
	Title string `json:"title"`
	Body  string `json:"body"`
}

var motivationalQuotes = []string{
	"You are exactly where you need to be. 💫",
	"Your journey is beautiful and unique. 🌸",
	"Gratitude transforms ordinary days into magic. ✨",
	"You have the power to create your reality. 🌟",
	"Every breath is a gift, every moment a blessing. 🙏",
}

// NextReminderDelay computes how long to wait until the next occurrence
// of the "HH:MM" clock time. A time already passed today schedules for
// tomorrow.
func NextReminderDelay(now time.Time, reminderTime string) (time.Duration, error) {
	clock, err := time.Parse("15:04", reminderTime)
	if err != nil {
		return 0, fmt.Errorf("invalid reminder time %q", reminderTime)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(), clock.Hour(), clock.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now), nil
}

// reminderEntry owns the timers for one scheduled user.
type reminderEntry struct {
	dailyTimer   *time.Timer
	weeklyTicker *time.Ticker
	quoteTicker  *time.Ticker
	done         chan struct{}
}

// ReminderScheduler arms per-user reminder timers: a one-shot timer for
// the daily reminder that re-arms itself for the next day after firing,
// plus independent recurring tickers for weekly insights and
// motivational quotes. All of them are best-effort and live only as
// long as the process (and the user's schedule).
type ReminderScheduler struct {
	mu       sync.Mutex
	entries  map[string]*reminderEntry
	dispatch func(userID string, event NotificationEvent)
}

func NewReminderScheduler(dispatch func(userID string, event NotificationEvent)) *ReminderScheduler {
	return &ReminderScheduler{
		entries:  make(map[string]*reminderEntry),
		dispatch: dispatch,
	}
}

// Schedule arms timers for the user according to settings, replacing any
// prior schedule.
func (s *ReminderScheduler) Schedule(userID string, settings NotificationSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.Cancel(userID)

	entry := &reminderEntry{done: make(chan struct{})}

	if settings.DailyReminder {
		delay, err := NextReminderDelay(time.Now(), settings.ReminderTime)
		if err != nil {
			return err
		}
		s.armDaily(userID, entry, delay, settings.ReminderTime)
	}

	if settings.WeeklyInsights {
		entry.weeklyTicker = time.NewTicker(7 * 24 * time.Hour)
		go func(ticker *time.Ticker, done chan struct{}) {
			for {
				select {
				case <-ticker.C:
					s.dispatch(userID, NotificationEvent{
						Type:  "weekly_insight",
						Title: "Your weekly insight is ready 📊",
						Body:  "See how your week went and which mood led the way.",
					})
				case <-done:
					return
				}
			}
		}(entry.weeklyTicker, entry.done)
	}

	if settings.MotivationalQuotes && settings.QuoteInterval > 0 {
		entry.quoteTicker = time.NewTicker(time.Duration(settings.QuoteInterval) * time.Minute)
		go func(ticker *time.Ticker, done chan struct{}) {
			for {
				select {
				case <-ticker.C:
					s.dispatch(userID, NotificationEvent{
						Type:  "motivational_quote",
						Title: "A gentle reminder",
						Body:  motivationalQuotes[rand.Intn(len(motivationalQuotes))],
					})
				case <-done:
					return
				}
			}
		}(entry.quoteTicker, entry.done)
	}

	s.mu.Lock()
	s.entries[userID] = entry
	s.mu.Unlock()
	return nil
}

// armDaily arms the one-shot daily timer. The re-arm after firing runs
// on the timer goroutine, so the dailyTimer field is only touched under
// the scheduler mutex, where Cancel also reads it.
func (s *ReminderScheduler) armDaily(userID string, entry *reminderEntry, delay time.Duration, reminderTime string) {
	timer := time.AfterFunc(delay, func() {
		select {
		case <-entry.done:
			return
		default:
		}

		s.dispatch(userID, NotificationEvent{
			Type:  "daily_reminder",
			Title: "Time for gratitude 🌟",
			Body:  "Take a moment to reflect on what you're grateful for today.",
		})

		// Re-arm for the next day.
		if delay, err := NextReminderDelay(time.Now(), reminderTime); err == nil {
			s.armDaily(userID, entry, delay, reminderTime)
		}
	})

	s.mu.Lock()
	select {
	case <-entry.done:
		// Cancelled between firing and re-arming.
		s.mu.Unlock()
		timer.Stop()
		return
	default:
	}
	entry.dailyTimer = timer
	s.mu.Unlock()
}

// Cancel tears down the user's timers, if any.
func (s *ReminderScheduler) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[userID]
	if !ok {
		return
	}
	delete(s.entries, userID)
	close(entry.done)
	if entry.dailyTimer != nil {
		entry.dailyTimer.Stop()
	}
	if entry.weeklyTicker != nil {
		entry.weeklyTicker.Stop()
	}
	if entry.quoteTicker != nil {
		entry.quoteTicker.Stop()
	}
}

// Scheduled reports whether the user currently has timers armed.
func (s *ReminderScheduler) Scheduled(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[userID]
	return ok
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soulspace-app/soulspace-backend/internal/services"
)

type stubNotificationConn struct{ closed bool }

func (c *stubNotificationConn) WriteJSON(v interface{}) error { return nil }

func (c *stubNotificationConn) Close() error {
	c.closed = true
	return nil
}

// A reconnect replaces the hub slot before the replaced handler unwinds,
// so the stale teardown must not cancel the live connection's schedule.
func TestStaleStreamTeardownKeepsLiveSchedule(t *testing.T) {
	const uid = "ws-teardown-user"
	settings := services.DefaultNotificationSettings()

	first := &stubNotificationConn{}
	services.RegisterNotificationConn(uid, first)
	require.NoError(t, reminderScheduler.Schedule(uid, settings))

	// Reconnect: the new handler takes the slot and re-arms the timers.
	second := &stubNotificationConn{}
	services.RegisterNotificationConn(uid, second)
	require.NoError(t, reminderScheduler.Schedule(uid, settings))
	assert.True(t, first.closed)

	// The replaced handler unwinds last.
	teardownNotificationStream(uid, first)
	assert.True(t, services.IsNotificationConnected(uid))
	assert.True(t, reminderScheduler.Scheduled(uid))

	// The live handler unwinding tears everything down.
	teardownNotificationStream(uid, second)
	assert.False(t, services.IsNotificationConnected(uid))
	assert.False(t, reminderScheduler.Scheduled(uid))
}

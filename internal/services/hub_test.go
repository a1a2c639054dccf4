package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu     sync.Mutex
	events []NotificationEvent
	closed bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if event, ok := v.(NotificationEvent); ok {
		c.events = append(c.events, event)
	}
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() []NotificationEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]NotificationEvent, len(c.events))
	copy(out, c.events)
	return out
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestPushNotificationDeliversToRegisteredConn(t *testing.T) {
	conn := &fakeConn{}
	RegisterNotificationConn("hub-user-1", conn)
	defer UnregisterNotificationConn("hub-user-1", conn)

	PushNotification("hub-user-1", NotificationEvent{Type: "test", Title: "SoulSpace"})

	waitFor(t, func() bool { return len(conn.received()) == 1 })
	assert.Equal(t, "test", conn.received()[0].Type)
}

func TestPushNotificationNoConnIsNoop(t *testing.T) {
	// Must not panic or block.
	PushNotification("hub-user-none", NotificationEvent{Type: "test"})
}

func TestRegisterReplacesAndClosesPrevious(t *testing.T) {
	first := &fakeConn{}
	second := &fakeConn{}

	RegisterNotificationConn("hub-user-2", first)
	RegisterNotificationConn("hub-user-2", second)
	defer UnregisterNotificationConn("hub-user-2", second)

	assert.True(t, first.closed)

	PushNotification("hub-user-2", NotificationEvent{Type: "daily_reminder"})
	waitFor(t, func() bool { return len(second.received()) == 1 })
	assert.Empty(t, first.received())
}

func TestUnregisterOnlyRemovesOwnConn(t *testing.T) {
	stale := &fakeConn{}
	live := &fakeConn{}

	RegisterNotificationConn("hub-user-3", stale)
	RegisterNotificationConn("hub-user-3", live)

	// The stale connection unregistering must not evict the live one.
	assert.False(t, UnregisterNotificationConn("hub-user-3", stale))
	assert.True(t, IsNotificationConnected("hub-user-3"))

	assert.True(t, UnregisterNotificationConn("hub-user-3", live))
	assert.False(t, IsNotificationConnected("hub-user-3"))
}

// serializingConn flags any overlapping WriteJSON calls.
type serializingConn struct {
	mu      sync.Mutex
	active  int
	overlap bool
	writes  int
}

func (c *serializingConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	c.active++
	if c.active > 1 {
		c.overlap = true
	}
	c.mu.Unlock()

	time.Sleep(5 * time.Millisecond)

	c.mu.Lock()
	c.active--
	c.writes++
	c.mu.Unlock()
	return nil
}

func (c *serializingConn) Close() error { return nil }

func TestPushNotificationSerializesWritesPerConn(t *testing.T) {
	conn := &serializingConn{}
	RegisterNotificationConn("hub-user-4", conn)
	defer UnregisterNotificationConn("hub-user-4", conn)

	for i := 0; i < 5; i++ {
		PushNotification("hub-user-4", NotificationEvent{Type: "motivational_quote"})
	}

	waitFor(t, func() bool {
		conn.mu.Lock()
		defer conn.mu.Unlock()
		return conn.writes == 5
	})

	conn.mu.Lock()
	defer conn.mu.Unlock()
	assert.False(t, conn.overlap, "concurrent writes hit the same connection")
}

package services

import (
	"log"
	"sync"
)

// NotificationConn is the minimal interface our WebSocket implementation
// must satisfy.
type NotificationConn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// hubClient pairs a connection with its write lock. Gorilla connections
// allow only one concurrent writer, so every WriteJSON goes through wmu.
type hubClient struct {
	conn NotificationConn
	wmu  sync.Mutex
}

// NotificationHub is a global registry of connected notification clients.
// One connection per user; a new connection replaces the old one.
type NotificationHub struct {
	mu      sync.RWMutex
	clients map[string]*hubClient
}

var notificationHub = &NotificationHub{clients: make(map[string]*hubClient)}

// RegisterNotificationConn registers or replaces a user's connection.
// The previous connection, if any, is closed.
func RegisterNotificationConn(userID string, conn NotificationConn) {
	notificationHub.mu.Lock()
	prev := notificationHub.clients[userID]
	notificationHub.clients[userID] = &hubClient{conn: conn}
	notificationHub.mu.Unlock()

	if prev != nil {
		prev.conn.Close()
	}
}

// UnregisterNotificationConn removes a user's connection if conn is still
// the registered one, and reports whether it removed the entry. A stale
// handler whose slot was taken over by a reconnect gets false back.
func UnregisterNotificationConn(userID string, conn NotificationConn) bool {
	notificationHub.mu.Lock()
	defer notificationHub.mu.Unlock()
	client, ok := notificationHub.clients[userID]
	if !ok || client.conn != conn {
		return false
	}
	delete(notificationHub.clients, userID)
	return true
}

// PushNotification delivers an event to the user's connection, if one is
// open. Delivery is best-effort; a user with no open connection simply
// misses the event.
func PushNotification(userID string, event NotificationEvent) {
	notificationHub.mu.RLock()
	client, ok := notificationHub.clients[userID]
	notificationHub.mu.RUnlock()
	if !ok {
		return
	}

	go func() {
		client.wmu.Lock()
		defer client.wmu.Unlock()
		if err := client.conn.WriteJSON(event); err != nil {
			log.Printf("error writing notification to websocket: %v", err)
		}
	}()
}

// IsNotificationConnected reports whether the user has an open connection.
func IsNotificationConnected(userID string) bool {
	notificationHub.mu.RLock()
	defer notificationHub.mu.RUnlock()
	_, ok := notificationHub.clients[userID]
	return ok
}

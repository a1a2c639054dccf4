package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/soulspace-app/soulspace-backend/internal/services"
)

var reminderScheduler = services.NewReminderScheduler(services.PushNotification)

var notificationUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS for WebSocket is handled at the HTTP layer already.
		return true
	},
}

// GetNotificationSettings returns the user's reminder settings, falling
// back to defaults when nothing is stored.
func GetNotificationSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	settings, err := services.LoadNotificationSettings(r.Context(), userID.String())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load notification settings")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": settings,
	})
}

// UpdateNotificationSettings saves the user's reminder settings and
// re-arms their schedule if they are connected.
func UpdateNotificationSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var settings services.NotificationSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := settings.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := services.SaveNotificationSettings(r.Context(), userID.String(), settings); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save notification settings")
		return
	}

	// Re-arm timers only while the user has a live connection; otherwise
	// the next connect picks the new settings up.
	if services.IsNotificationConnected(userID.String()) {
		if err := reminderScheduler.Schedule(userID.String(), settings); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to schedule reminders")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  "Notification settings saved",
		"settings": settings,
	})
}

// TestNotification pushes a test event to the user's open connection.
func TestNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	if !services.IsNotificationConnected(userID.String()) {
		writeError(w, http.StatusConflict, "No notification connection open")
		return
	}

	services.PushNotification(userID.String(), services.NotificationEvent{
		Type:  "test",
		Title: "SoulSpace",
		Body:  "Notifications are working! 🎉",
	})

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Test notification sent",
	})
}

// NotificationsWebSocket upgrades the connection and streams reminder
// events to the client. Connecting arms the user's reminder timers;
// disconnecting tears them down.
func NotificationsWebSocket(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r.Header.Get("Authorization"))
	if token == "" {
		// Browser WebSocket clients cannot set headers; allow a query token.
		token = r.URL.Query().Get("token")
		if token == "" {
			http.Error(w, "missing session token", http.StatusUnauthorized)
			return
		}
	}

	userID, ok, err := services.ValidateSession(token)
	if err != nil || !ok {
		http.Error(w, "invalid session token", http.StatusUnauthorized)
		return
	}

	conn, err := notificationUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	uid := userID.String()
	services.RegisterNotificationConn(uid, conn)
	defer teardownNotificationStream(uid, conn)

	settings, err := services.LoadNotificationSettings(r.Context(), uid)
	if err == nil {
		if scheduleErr := reminderScheduler.Schedule(uid, settings); scheduleErr != nil {
			log.Printf("⚠️ Could not schedule reminders for connected user: %v", scheduleErr)
		}
	}

	// Drain client frames until the connection closes; inbound messages
	// are ignored, this stream is push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// teardownNotificationStream releases the hub slot and, only when this
// connection still owned it, cancels the reminder schedule. When a
// reconnect has replaced the connection, the stale handler unwinds after
// the new one has already re-armed the timers, so it must leave the
// schedule alone.
func teardownNotificationStream(uid string, conn services.NotificationConn) {
	if services.UnregisterNotificationConn(uid, conn) {
		reminderScheduler.Cancel(uid)
	}
}

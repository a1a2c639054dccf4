package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/soulspace-app/soulspace-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Auth routes
	r.Post("/api/auth/signup", handlers.Signup)
	r.Post("/api/auth/signin", handlers.Signin)
	r.Post("/api/auth/signout", handlers.Signout)
	r.Get("/api/auth/me", handlers.Me)
	r.Post("/api/auth/check-username", handlers.CheckUsernameAvailability)

	// Journaling routes
	r.Post("/api/journals", handlers.CreateJournal)
	r.Get("/api/journals", handlers.GetJournals)
	r.Get("/api/journals/search", handlers.SearchJournals)
	r.Get("/api/journals/{id}", handlers.GetJournal)
	r.Put("/api/journals/{id}", handlers.UpdateJournal)
	r.Delete("/api/journals/{id}", handlers.DeleteJournal)

	// Mood tracking routes
	r.Post("/api/moods", handlers.LogMood)
	r.Get("/api/moods", handlers.GetMoods)
	r.Delete("/api/moods/{id}", handlers.DeleteMood)
	r.Get("/api/moods/insights", handlers.GetMoodInsights)
	r.Get("/api/moods/weekly", handlers.GetWeeklyInsight)

	// Dashboard
	r.Get("/api/dashboard/stats", handlers.GetDashboardStats)

	// Vision board routes
	r.Post("/api/boards", handlers.CreateBoard)
	r.Get("/api/boards", handlers.GetBoards)
	r.Put("/api/boards/{id}", handlers.UpdateBoard)
	r.Delete("/api/boards/{id}", handlers.DeleteBoard)
	r.Put("/api/boards/{id}/favorite", handlers.SetFavoriteBoard)
	r.Post("/api/boards/{id}/items", handlers.AddBoardItem)
	r.Get("/api/boards/{id}/items", handlers.GetBoardItems)
	r.Put("/api/boards/{id}/items/reorder", handlers.ReorderBoardItem)
	r.Put("/api/boards/items/{itemID}", handlers.UpdateBoardItem)
	r.Delete("/api/boards/items/{itemID}", handlers.DeleteBoardItem)

	// Profile routes
	r.Get("/api/profile", handlers.GetProfile)
	r.Put("/api/profile", handlers.UpdateProfile)

	// File upload routes
	r.Post("/api/upload", handlers.UploadFile)

	// Voice recording routes
	r.Post("/api/recordings/start", handlers.StartRecording)
	r.Post("/api/recordings/chunk", handlers.AppendRecordingChunk)
	r.Post("/api/recordings/stop", handlers.StopRecording)
	r.Get("/api/recordings", handlers.GetRecordings)
	r.Delete("/api/recordings/{id}", handlers.DeleteRecording)

	// Text-to-speech routes
	r.Post("/api/speech/speak", handlers.Speak)
	r.Post("/api/speech/stop", handlers.StopSpeech)
	r.Get("/api/speech/status", handlers.SpeechStatus)

	// Notification routes
	r.Get("/api/notifications/settings", handlers.GetNotificationSettings)
	r.Put("/api/notifications/settings", handlers.UpdateNotificationSettings)
	r.Post("/api/notifications/test", handlers.TestNotification)
	r.Get("/ws/notifications", handlers.NotificationsWebSocket)
}

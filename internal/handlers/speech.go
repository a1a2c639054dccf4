package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/soulspace-app/soulspace-backend/internal/config"
	"github.com/soulspace-app/soulspace-backend/internal/services"
)

var (
	speechService  *services.SpeechService
	speechDefaults services.SpeechOptions
)

// InitSpeechService picks the synthesizer stack: ElevenLabs when a key is
// configured, with a local command-line synthesizer as fallback.
func InitSpeechService(cfg *config.Config) {
	var primary services.Synthesizer
	if cfg.ElevenLabsAPIKey != "" {
		primary = services.NewElevenLabsClient(cfg.ElevenLabsAPIKey)
		log.Println("✅ ElevenLabs speech synthesis enabled")
	}

	speechDefaults = services.SpeechOptions{
		Voice: cfg.ElevenLabsVoice,
		Model: cfg.ElevenLabsModel,
	}

	// A nil *LocalSynthesizer must not end up inside the interface.
	var fallback services.Synthesizer
	if local := services.NewLocalSynthesizer(); local != nil {
		fallback = local
		log.Printf("✅ Local speech synthesis available (%s)", local.Tool())
	}
	if primary == nil && fallback == nil {
		log.Println("⚠️  WARNING: no speech synthesizer available; text-to-speech is disabled")
	}

	speechService = services.NewSpeechService(primary, fallback)
}

type SpeakRequest struct {
	Text string `json:"text"`
	services.SpeechOptions
}

// Speak synthesizes text and returns the playable audio. Starting a new
// playback stops the user's previous one.
func Speak(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req SpeakRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	opts := req.SpeechOptions
	if opts.Voice == "" {
		opts.Voice = speechDefaults.Voice
	}
	if opts.Model == "" {
		opts.Model = speechDefaults.Model
	}

	handle, err := speechService.Speak(r.Context(), userID.String(), req.Text, opts)
	if err != nil {
		if errors.Is(err, services.ErrSpeechUnavailable) {
			writeError(w, http.StatusServiceUnavailable, "Speech synthesis is not available")
		} else {
			writeError(w, http.StatusInternalServerError, "Speech synthesis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"playback_id": handle.ID,
		"mime_type":   handle.MimeType,
		"url":         handle.URL,
	})
}

// StopSpeech ends the user's active playback, if any.
func StopSpeech(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	speechService.Stop(userID.String())

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Playback stopped",
	})
}

// SpeechStatus reports whether the user has an active playback.
func SpeechStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"playing": speechService.IsPlaying(userID.String()),
	})
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"
)

// Popular ElevenLabs voices
var Voices = map[string]string{
	"aria":      "9BWtsMINqrJLrRacOk9x",
	"sarah":     "EXAVITQu4vr4xnSDxMaL",
	"laura":     "FGY2WhTYpPnrIDTdsKH5",
	"charlotte": "XB0fDUnXU5powFXDhCwa",
	"alice":     "Xb7hH8MSUJpSbSDYk0k2",
	"matilda":   "XrExE9yKIg1WjnnlVkGX",
}

var SpeechModels = map[string]string{
	"turbo":        "eleven_turbo_v2_5",
	"multilingual": "eleven_multilingual_v2",
}

const (
	defaultVoiceID      = "EXAVITQu4vr4xnSDxMaL" // sarah
	defaultSpeechModel  = "eleven_turbo_v2_5"
	elevenLabsBaseURL   = "https://api.elevenlabs.io"
	speechClientTimeout = 30 * time.Second
)

// ErrSpeechUnavailable is returned when neither the ElevenLabs API nor a
// local synthesizer can serve a request. Callers degrade the feature
// rather than failing the process.
var ErrSpeechUnavailable = fmt.Errorf("speech synthesis is not available")

// SpeechOptions tune a synthesis request. Zero values fall back to
// service defaults.
type SpeechOptions struct {
	Voice           string  `json:"voice"`
	Model           string  `json:"model"`
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesizer turns text into playable audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, opts SpeechOptions) (audio []byte, mimeType string, err error)
}

// --- ElevenLabs client ---

// ElevenLabsClient calls the ElevenLabs text-to-speech HTTP API with a
// caller-supplied key.
type ElevenLabsClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewElevenLabsClient(apiKey string) *ElevenLabsClient {
	return &ElevenLabsClient{
		apiKey:  apiKey,
		baseURL: elevenLabsBaseURL,
		client:  &http.Client{Timeout: speechClientTimeout},
	}
}

type elevenLabsRequest struct {
	Text          string                 `json:"text"`
	ModelID       string                 `json:"model_id"`
	VoiceSettings elevenLabsVoiceSetting `json:"voice_settings"`
}

type elevenLabsVoiceSetting struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func (c *ElevenLabsClient) Synthesize(ctx context.Context, text string, opts SpeechOptions) ([]byte, string, error) {
	voice := opts.Voice
	if id, ok := Voices[voice]; ok {
		voice = id
	}
	if voice == "" {
		voice = defaultVoiceID
	}
	model := opts.Model
	if id, ok := SpeechModels[model]; ok {
		model = id
	}
	if model == "" {
		model = defaultSpeechModel
	}
	stability := opts.Stability
	if stability == 0 {
		stability = 0.5
	}
	similarity := opts.SimilarityBoost
	if similarity == 0 {
		similarity = 0.5
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: model,
		VoiceSettings: elevenLabsVoiceSetting{
			Stability:       stability,
			SimilarityBoost: similarity,
		},
	})
	if err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/text-to-speech/"+voice, bytes.NewReader(body))
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("elevenlabs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("elevenlabs API error: %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("elevenlabs response: %w", err)
	}
	return audio, "audio/mpeg", nil
}

// --- Local fallback ---

// LocalSynthesizer shells out to the platform's speech tool (espeak or
// flite on Linux, say on macOS). It is the fallback when no ElevenLabs
// key is configured.
type LocalSynthesizer struct {
	tool string
}

// NewLocalSynthesizer probes for a usable speech tool. Returns nil when
// the platform has none; callers treat that as a disabled feature.
func NewLocalSynthesizer() *LocalSynthesizer {
	candidates := []string{"espeak", "flite"}
	if runtime.GOOS == "darwin" {
		candidates = []string{"say", "espeak"}
	}
	for _, tool := range candidates {
		if _, err := exec.LookPath(tool); err == nil {
			return &LocalSynthesizer{tool: tool}
		}
	}
	return nil
}

// Tool names the command the synthesizer shells out to.
func (s *LocalSynthesizer) Tool() string {
	return s.tool
}

func (s *LocalSynthesizer) Synthesize(ctx context.Context, text string, _ SpeechOptions) ([]byte, string, error) {
	var cmd *exec.Cmd
	switch s.tool {
	case "espeak":
		cmd = exec.CommandContext(ctx, "espeak", "--stdout", text)
	case "flite":
		cmd = exec.CommandContext(ctx, "flite", "-t", text, "-o", "/dev/stdout")
	case "say":
		cmd = exec.CommandContext(ctx, "say", "-o", "/dev/stdout", "--data-format=LEF32@22050", text)
	default:
		return nil, "", ErrSpeechUnavailable
	}

	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return nil, "", fmt.Errorf("local synthesizer: %w", err)
	}
	return out.Bytes(), "audio/wav", nil
}

// --- Playback slot ---

// PlaybackHandle is one active playback. Releasing it is idempotent.
type PlaybackHandle struct {
	ID       string
	MimeType string
	URL      string // playable data URI

	onStop func()
	once   sync.Once
}

// Stop releases the handle's resources.
func (h *PlaybackHandle) Stop() {
	h.once.Do(func() {
		if h.onStop != nil {
			h.onStop()
		}
	})
}

// Playback is an explicit single-slot holder for the current audio
// handle: acquiring the slot stops and releases any prior playback, so
// only one playback is ever active.
type Playback struct {
	mu      sync.Mutex
	current *PlaybackHandle
}

// Acquire installs handle as the active playback, stopping the previous
// one first.
func (p *Playback) Acquire(handle *PlaybackHandle) {
	p.mu.Lock()
	prev := p.current
	p.current = handle
	p.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
}

// Release stops the active playback and empties the slot.
func (p *Playback) Release() {
	p.mu.Lock()
	prev := p.current
	p.current = nil
	p.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
}

// Current returns the active handle, or nil when the slot is empty.
func (p *Playback) Current() *PlaybackHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// --- Speech service ---

// SpeechService picks a synthesizer (ElevenLabs when a key is configured,
// local tool otherwise) and tracks the single active playback per user.
type SpeechService struct {
	primary  Synthesizer
	fallback Synthesizer

	mu       sync.Mutex
	playback map[string]*Playback // userID -> slot
}

func NewSpeechService(primary, fallback Synthesizer) *SpeechService {
	return &SpeechService{
		primary:  primary,
		fallback: fallback,
		playback: make(map[string]*Playback),
	}
}

// Speak synthesizes text and installs the result as the user's active
// playback, stopping any prior one.
func (s *SpeechService) Speak(ctx context.Context, userID, text string, opts SpeechOptions) (*PlaybackHandle, error) {
	synth := s.primary
	if synth == nil {
		synth = s.fallback
	}
	if synth == nil {
		return nil, ErrSpeechUnavailable
	}

	audio, mimeType, err := synth.Synthesize(ctx, text, opts)
	if err != nil {
		// Primary failed; degrade to the fallback when there is one.
		if synth == s.primary && s.fallback != nil {
			audio, mimeType, err = s.fallback.Synthesize(ctx, text, opts)
		}
		if err != nil {
			return nil, err
		}
	}

	handle := &PlaybackHandle{
		ID:       fmt.Sprintf("speech-%d", time.Now().UnixNano()),
		MimeType: mimeType,
		URL:      encodeDataURI(audio, mimeType),
	}
	s.slot(userID).Acquire(handle)
	return handle, nil
}

// Stop ends the user's active playback, if any.
func (s *SpeechService) Stop(userID string) {
	s.slot(userID).Release()
}

// IsPlaying reports whether the user has an active playback.
func (s *SpeechService) IsPlaying(userID string) bool {
	return s.slot(userID).Current() != nil
}

func (s *SpeechService) slot(userID string) *Playback {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.playback[userID]; ok {
		return p
	}
	p := &Playback{}
	s.playback[userID] = p
	return p
}

// WithBaseURL overrides the API endpoint; used in tests.
func (c *ElevenLabsClient) WithBaseURL(u string) *ElevenLabsClient {
	c.baseURL = u
	return c
}

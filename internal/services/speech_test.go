package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	calls int
	fail  bool
}

func (f *fakeSynth) Synthesize(_ context.Context, text string, _ SpeechOptions) ([]byte, string, error) {
	f.calls++
	if f.fail {
		return nil, "", ErrSpeechUnavailable
	}
	return []byte(text), "audio/wav", nil
}

func TestElevenLabsClientRequest(t *testing.T) {
	var gotPath, gotKey string
	var gotBody elevenLabsRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("xi-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewElevenLabsClient("test-key").WithBaseURL(server.URL)
	audio, mimeType, err := client.Synthesize(context.Background(), "hello there", SpeechOptions{Voice: "sarah", Model: "turbo"})
	require.NoError(t, err)

	assert.Equal(t, "/v1/text-to-speech/EXAVITQu4vr4xnSDxMaL", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "hello there", gotBody.Text)
	assert.Equal(t, "eleven_turbo_v2_5", gotBody.ModelID)
	assert.InDelta(t, 0.5, gotBody.VoiceSettings.Stability, 0.001)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "audio/mpeg", mimeType)
}

func TestElevenLabsClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewElevenLabsClient("bad-key").WithBaseURL(server.URL)
	_, _, err := client.Synthesize(context.Background(), "hello", SpeechOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSpeakFallsBackWhenPrimaryFails(t *testing.T) {
	primary := &fakeSynth{fail: true}
	fallback := &fakeSynth{}
	svc := NewSpeechService(primary, fallback)

	handle, err := svc.Speak(context.Background(), testUser, "hi", SpeechOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
	assert.True(t, strings.HasPrefix(handle.URL, "data:audio/wav;base64,"))
}

func TestSpeakUnavailableWithoutSynthesizers(t *testing.T) {
	svc := NewSpeechService(nil, nil)
	_, err := svc.Speak(context.Background(), testUser, "hi", SpeechOptions{})
	assert.ErrorIs(t, err, ErrSpeechUnavailable)
}

func TestPlaybackSingleSlot(t *testing.T) {
	svc := NewSpeechService(&fakeSynth{}, nil)

	first, err := svc.Speak(context.Background(), testUser, "first", SpeechOptions{})
	require.NoError(t, err)

	firstStopped := false
	first.onStop = func() { firstStopped = true }

	// Starting a new playback stops the prior instance.
	_, err = svc.Speak(context.Background(), testUser, "second", SpeechOptions{})
	require.NoError(t, err)
	assert.True(t, firstStopped)
	assert.True(t, svc.IsPlaying(testUser))

	svc.Stop(testUser)
	assert.False(t, svc.IsPlaying(testUser))
}

func TestPlaybackStopIdempotent(t *testing.T) {
	stops := 0
	h := &PlaybackHandle{onStop: func() { stops++ }}
	h.Stop()
	h.Stop()
	assert.Equal(t, 1, stops)
}

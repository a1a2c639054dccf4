package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "c2c7f685-2c73-4dd9-8a4e-111111111111"

func TestRecorderStartStop(t *testing.T) {
	rec := NewRecorder()

	id := rec.Start(testUser, "audio/webm")
	require.NotEmpty(t, id)
	require.True(t, rec.IsRecording(testUser))

	require.NoError(t, rec.Append(testUser, []byte{0x01, 0x02}))
	require.NoError(t, rec.Append(testUser, []byte{0x03}))

	time.Sleep(20 * time.Millisecond)

	capture, err := rec.Stop(testUser)
	require.NoError(t, err)
	assert.Equal(t, id, capture.ID)
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, capture.Data)
	assert.GreaterOrEqual(t, capture.DurationMS, int64(20))
	assert.True(t, strings.HasPrefix(capture.URL, "data:audio/webm;base64,"))

	// Session is released: the recordings list grew by exactly one and
	// no capture is in flight anymore.
	assert.False(t, rec.IsRecording(testUser))
	assert.Len(t, rec.List(testUser), 1)
}

func TestRecorderStartWhileRecordingIsNoOp(t *testing.T) {
	rec := NewRecorder()

	first := rec.Start(testUser, "")
	second := rec.Start(testUser, "")
	assert.Equal(t, first, second)

	_, err := rec.Stop(testUser)
	require.NoError(t, err)
	assert.Len(t, rec.List(testUser), 1)
}

func TestRecorderAppendWithoutStart(t *testing.T) {
	rec := NewRecorder()
	assert.ErrorIs(t, rec.Append(testUser, []byte{0x01}), ErrNoActiveRecording)

	_, err := rec.Stop(testUser)
	assert.ErrorIs(t, err, ErrNoActiveRecording)
}

func TestRecorderBufferCap(t *testing.T) {
	rec := NewRecorder()
	rec.Start(testUser, "audio/webm")

	big := make([]byte, MaxRecordingBytes+1)
	assert.ErrorIs(t, rec.Append(testUser, big), ErrRecordingTooLarge)
}

func TestRecorderDelete(t *testing.T) {
	rec := NewRecorder()
	rec.Start(testUser, "audio/webm")
	capture, err := rec.Stop(testUser)
	require.NoError(t, err)

	assert.True(t, rec.Delete(testUser, capture.ID))
	assert.Empty(t, rec.List(testUser))
	assert.False(t, rec.Delete(testUser, capture.ID))
}

func TestRecorderUsersAreIndependent(t *testing.T) {
	rec := NewRecorder()
	other := "d9a1e0b2-4f34-4b7c-9a5d-222222222222"

	rec.Start(testUser, "audio/webm")
	assert.False(t, rec.IsRecording(other))

	rec.Start(other, "audio/webm")
	_, err := rec.Stop(testUser)
	require.NoError(t, err)
	assert.True(t, rec.IsRecording(other))
}

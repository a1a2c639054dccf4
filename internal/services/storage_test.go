package services

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeImageAcceptsSmallImage(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 1024) // 1 KB

	uri, err := EncodeImage(data, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))
}

func TestEncodeImageRejectsOversized(t *testing.T) {
	data := make([]byte, 6*1024*1024) // 6 MB

	_, err := EncodeImage(data, "image/jpeg")
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestEncodeImageRejectsWrongMIMERegardlessOfSize(t *testing.T) {
	small := []byte("%PDF-1.4")
	_, err := EncodeImage(small, "application/pdf")
	assert.ErrorIs(t, err, ErrNotImage)

	large := make([]byte, 6*1024*1024)
	_, err = EncodeImage(large, "application/pdf")
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestEncodeImageRejectsEmpty(t *testing.T) {
	_, err := EncodeImage(nil, "image/png")
	assert.ErrorIs(t, err, ErrEmptyPayload)
}

func TestEncodeAudio(t *testing.T) {
	uri, err := EncodeAudio([]byte{0x1A, 0x45, 0xDF, 0xA3}, "audio/webm")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(uri, "data:audio/webm;base64,"))

	_, err = EncodeAudio([]byte("hello"), "text/plain")
	assert.ErrorIs(t, err, ErrNotAudio)
}

func TestDeleteEmbeddedIsNoOp(t *testing.T) {
	assert.NoError(t, DeleteEmbedded("data:image/png;base64,AAAA"))
}

package services

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// MaxEmbeddedFileSize caps media embedded in-band as data URIs.
const MaxEmbeddedFileSize = 5 * 1024 * 1024 // 5MB

// Media validation errors. These are input-contract failures checked
// before any datastore call.
var (
	ErrFileTooLarge = fmt.Errorf("file exceeds the %dMB limit", MaxEmbeddedFileSize/(1024*1024))
	ErrNotImage     = fmt.Errorf("file is not an image")
	ErrNotAudio     = fmt.Errorf("file is not an audio recording")
	ErrEmptyPayload = fmt.Errorf("file is empty")
)

// EncodeImage validates and embeds image bytes as a base64 data URI.
// Rejects payloads over the size cap and MIME types without an image/
// prefix, without touching any datastore.
func EncodeImage(data []byte, mimeType string) (string, error) {
	if err := validatePayload(data, mimeType, "image/", ErrNotImage); err != nil {
		return "", err
	}
	return encodeDataURI(data, mimeType), nil
}

// EncodeAudio validates and embeds audio bytes as a base64 data URI.
func EncodeAudio(data []byte, mimeType string) (string, error) {
	if err := validatePayload(data, mimeType, "audio/", ErrNotAudio); err != nil {
		return "", err
	}
	return encodeDataURI(data, mimeType), nil
}

// DeleteEmbedded is a no-op: data URIs retain nothing external.
func DeleteEmbedded(url string) error {
	return nil
}

func validatePayload(data []byte, mimeType, wantPrefix string, typeErr error) error {
	if len(data) == 0 {
		return ErrEmptyPayload
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(mimeType)), wantPrefix) {
		return typeErr
	}
	if int64(len(data)) > MaxEmbeddedFileSize {
		return ErrFileTooLarge
	}
	return nil
}

func encodeDataURI(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

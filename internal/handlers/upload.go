package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/soulspace-app/soulspace-backend/internal/config"
	"github.com/soulspace-app/soulspace-backend/internal/services"
)

var (
	cloudinaryService *services.CloudinaryService
	maxUploadBytes    int64 = services.MaxEmbeddedFileSize
)

// InitCloudinaryService wires the optional Cloudinary backend. Without
// credentials uploads fall back to in-band data URIs.
func InitCloudinaryService(cfg *config.Config) error {
	maxUploadBytes = cfg.MaxUploadBytes
	if cfg.CloudinaryName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil
	}
	service, err := services.NewCloudinaryService(
		cfg.CloudinaryName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return err
	}
	cloudinaryService = service
	return nil
}

type UploadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url,omitempty"`
}

// UploadFile accepts a multipart image or audio upload. With Cloudinary
// configured the file is stored there and its URL returned; otherwise the
// payload is embedded as a data URI (subject to the size cap).
func UploadFile(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		writeUnauthorized(w)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if cloudinaryService != nil {
		folder := r.URL.Query().Get("folder")
		if folder == "" {
			folder = "soulspace"
		}
		url, err := cloudinaryService.UploadFileFromHeader(r.Context(), fileHeader, folder)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to upload file")
			return
		}
		writeJSON(w, http.StatusOK, UploadResponse{
			Success: true,
			Message: "File uploaded successfully",
			URL:     url,
		})
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	kind := r.URL.Query().Get("kind")
	if kind == "" {
		kind = "image"
	}

	var url string
	switch kind {
	case "image":
		url, err = services.EncodeImage(data, mimeType)
	case "audio":
		url, err = services.EncodeAudio(data, mimeType)
	default:
		writeError(w, http.StatusBadRequest, "Unknown upload kind")
		return
	}
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, services.ErrFileTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{
		Success: true,
		Message: "File stored successfully",
		URL:     url,
	})
}

package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/beiramar/pousada/internal/api/middleware"
	"github.com/beiramar/pousada/internal/api/response"
	"github.com/beiramar/pousada/internal/media"
)

// MediaStore uploads and deletes image objects.
type MediaStore interface {
	Upload(ctx context.Context, prefix, contentType string, body io.Reader) (key, url string, err error)
	Delete(ctx context.Context, key string) error
}

type uploadResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// MediaHandler handles admin image uploads.
type MediaHandler struct {
	store MediaStore
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(store MediaStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Upload handles POST /admin/media. The request is multipart/form-data with
// a single "file" part. Uploads are capped at 10 MiB.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_UPLOAD", "Request must be multipart/form-data under 10 MiB", requestID)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_UPLOAD", "A \"file\" part is required", requestID)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !media.AllowedContentType(contentType) {
		response.Err(w, http.StatusBadRequest, "UNSUPPORTED_MEDIA_TYPE", "Only JPEG, PNG and WebP images are accepted", requestID)
		return
	}

	prefix := r.FormValue("prefix")
	if prefix == "" {
		prefix = "uploads"
	}

	key, url, err := h.store.Upload(r.Context(), prefix, contentType, file)
	if err != nil {
		slog.Error("failed to upload media", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to upload file", requestID)
		return
	}

	slog.Info("media uploaded", "key", key, "size", header.Size)

	response.Success(w, http.StatusCreated, uploadResponse{Key: key, URL: url}, requestID)
}

// Delete handles DELETE /admin/media/{key...}.
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	key := chi.URLParam(r, "*")
	if key == "" {
		response.Err(w, http.StatusBadRequest, "INVALID_KEY", "An object key is required", requestID)
		return
	}

	if err := h.store.Delete(r.Context(), key); err != nil {
		slog.Error("failed to delete media", "error", err, "key", key)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete file", requestID)
		return
	}

	response.NoContent(w)
}

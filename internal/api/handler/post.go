package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/beiramar/pousada/internal/api/middleware"
	"github.com/beiramar/pousada/internal/api/response"
	"github.com/beiramar/pousada/internal/api/validation"
	"github.com/beiramar/pousada/internal/post"
)

type postRequest struct {
	Slug          string  `json:"slug"`
	TitlePT       string  `json:"titlePt"`
	TitleEN       string  `json:"titleEn"`
	BodyPT        string  `json:"bodyPt"`
	BodyEN        string  `json:"bodyEn"`
	CoverImageURL *string `json:"coverImageUrl"`
	Published     *bool   `json:"published"`
}

type postResponse struct {
	ID            string  `json:"id"`
	Slug          string  `json:"slug"`
	TitlePT       string  `json:"titlePt"`
	TitleEN       string  `json:"titleEn"`
	BodyPT        string  `json:"bodyPt"`
	BodyEN        string  `json:"bodyEn"`
	CoverImageURL *string `json:"coverImageUrl,omitempty"`
	Published     bool    `json:"published"`
	PublishedAt   *string `json:"publishedAt,omitempty"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

func toPostResponse(p *post.Post) postResponse {
	out := postResponse{
		ID:            p.ID.String(),
		Slug:          p.Slug,
		TitlePT:       p.TitlePT,
		TitleEN:       p.TitleEN,
		BodyPT:        p.BodyPT,
		BodyEN:        p.BodyEN,
		CoverImageURL: p.CoverImageURL,
		Published:     p.Published,
		CreatedAt:     p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		UpdatedAt:     p.UpdatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if p.PublishedAt != nil {
		s := p.PublishedAt.UTC().Format("2006-01-02T15:04:05Z")
		out.PublishedAt = &s
	}
	return out
}

// PostHandler handles blog post endpoints, public and admin.
type PostHandler struct {
	repo      post.Repository
	sanitizer HTMLSanitizer
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(repo post.Repository, sanitizer HTMLSanitizer) *PostHandler {
	return &PostHandler{repo: repo, sanitizer: sanitizer}
}

// ListPublic handles GET /posts. Only published posts are returned.
func (h *PostHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List handles GET /admin/posts, drafts included.
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *PostHandler) list(w http.ResponseWriter, r *http.Request, publishedOnly bool) {
	requestID := middleware.GetRequestID(r.Context())

	posts, err := h.repo.List(r.Context(), publishedOnly)
	if err != nil {
		slog.Error("failed to list posts", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list posts", requestID)
		return
	}

	out := make([]postResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toPostResponse(&posts[i]))
	}

	response.SuccessList(w, http.StatusOK, out, len(out), 1, 100, requestID)
}

// GetBySlug handles GET /posts/{slug} for the public surface.
func (h *PostHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	slug := chi.URLParam(r, "slug")

	p, err := h.repo.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		slog.Error("failed to get post by slug", "error", err, "slug", slug)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get post", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPostResponse(p), requestID)
}

// GetByID handles GET /admin/posts/{id}.
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		slog.Error("failed to get post", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get post", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPostResponse(p), requestID)
}

// Create handles POST /admin/posts.
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, 4<<20)
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidatePostRequest(validation.PostRequest{
		Slug:    req.Slug,
		TitlePT: req.TitlePT,
		TitleEN: req.TitleEN,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p := &post.Post{
		Slug:          req.Slug,
		TitlePT:       req.TitlePT,
		TitleEN:       req.TitleEN,
		BodyPT:        h.sanitizer.Sanitize(req.BodyPT),
		BodyEN:        h.sanitizer.Sanitize(req.BodyEN),
		CoverImageURL: req.CoverImageURL,
	}
	if req.Published != nil && *req.Published {
		now := time.Now().UTC()
		p.Published = true
		p.PublishedAt = &now
	}

	if err := h.repo.Create(r.Context(), p); err != nil {
		if errors.Is(err, post.ErrDuplicateSlug) {
			response.Err(w, http.StatusConflict, "DUPLICATE_SLUG", "A post with this slug already exists", requestID)
			return
		}
		slog.Error("failed to create post", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create post", requestID)
		return
	}

	response.Success(w, http.StatusCreated, toPostResponse(p), requestID)
}

// Update handles PATCH /admin/posts/{id}.
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	p, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		slog.Error("failed to get post", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update post", requestID)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 4<<20)
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be valid JSON", requestID)
		return
	}

	fieldErrors := validation.ValidatePostRequest(validation.PostRequest{
		Slug:    req.Slug,
		TitlePT: req.TitlePT,
		TitleEN: req.TitleEN,
	})
	if len(fieldErrors) > 0 {
		response.ErrWithDetails(w, http.StatusBadRequest, "VALIDATION_ERROR", "Input validation failed", fieldErrors, requestID)
		return
	}

	p.Slug = req.Slug
	p.TitlePT = req.TitlePT
	p.TitleEN = req.TitleEN
	p.BodyPT = h.sanitizer.Sanitize(req.BodyPT)
	p.BodyEN = h.sanitizer.Sanitize(req.BodyEN)
	p.CoverImageURL = req.CoverImageURL
	if req.Published != nil {
		p.Published = *req.Published
		// PublishedAt is set on first publication and kept thereafter.
		if p.Published && p.PublishedAt == nil {
			now := time.Now().UTC()
			p.PublishedAt = &now
		}
	}

	if err := h.repo.Update(r.Context(), p); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		if errors.Is(err, post.ErrDuplicateSlug) {
			response.Err(w, http.StatusConflict, "DUPLICATE_SLUG", "A post with this slug already exists", requestID)
			return
		}
		slog.Error("failed to update post", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update post", requestID)
		return
	}

	response.Success(w, http.StatusOK, toPostResponse(p), requestID)
}

// Delete handles DELETE /admin/posts/{id}.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_ID", "id must be a valid UUID", requestID)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, post.ErrPostNotFound) {
			response.Err(w, http.StatusNotFound, "NOT_FOUND", "Post not found", requestID)
			return
		}
		slog.Error("failed to delete post", "error", err, "id", id)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete post", requestID)
		return
	}

	response.NoContent(w)
}

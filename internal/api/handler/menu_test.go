package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beiramar/pousada/internal/api/handler"
	"github.com/beiramar/pousada/internal/menu"
)

// --- Helpers ---

func makeChiRequest(method, path string, body []byte, params map[string]string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req, w
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &env)
	require.NoError(t, err, "failed to parse response body")
	return env
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	env := parseEnvelope(t, w)
	require.Equal(t, false, env["success"])
	errObj, ok := env["error"].(map[string]interface{})
	require.True(t, ok, "expected an error object")
	return errObj["code"].(string)
}

// --- Mock Repository ---

type mockMenuRepo struct {
	createFn  func(ctx context.Context, item *menu.MenuItem) error
	getByIDFn func(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error)
	listFn    func(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error)
	updateFn  func(ctx context.Context, item *menu.MenuItem) error
	deleteFn  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockMenuRepo) Create(ctx context.Context, item *menu.MenuItem) error {
	if m.createFn != nil {
		return m.createFn(ctx, item)
	}
	item.ID = uuid.New()
	item.CreatedAt = time.Now().UTC()
	item.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *mockMenuRepo) GetByID(ctx context.Context, id uuid.UUID) (*menu.MenuItem, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, menu.ErrItemNotFound
}

func (m *mockMenuRepo) List(ctx context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return []menu.MenuItem{}, nil
}

func (m *mockMenuRepo) Update(ctx context.Context, item *menu.MenuItem) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, item)
	}
	return menu.ErrItemNotFound
}

func (m *mockMenuRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return menu.ErrItemNotFound
}

func sampleMenuItem(id uuid.UUID) *menu.MenuItem {
	now := time.Now().UTC()
	return &menu.MenuItem{
		ID:            id,
		NamePT:        "Arroz de Marisco",
		NameEN:        "Seafood Rice",
		DescriptionPT: "Arroz cremoso com marisco fresco",
		DescriptionEN: "Creamy rice with fresh seafood",
		Category:      menu.CategoryMains,
		PriceCents:    1850,
		Available:     true,
		Position:      1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// ===== GET /menu =====

func TestMenuListPublic_FiltersAvailable(t *testing.T) {
	t.Parallel()

	var gotFilter menu.ListFilter
	repo := &mockMenuRepo{
		listFn: func(_ context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
			gotFilter = filter
			return []menu.MenuItem{*sampleMenuItem(uuid.New())}, nil
		},
	}
	h := handler.NewMenuHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/menu", nil, nil)
	h.ListPublic(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, gotFilter.AvailableOnly)

	env := parseEnvelope(t, w)
	assert.Equal(t, true, env["success"])
	data := env["data"].([]interface{})
	require.Len(t, data, 1)
	item := data[0].(map[string]interface{})
	assert.Equal(t, "Arroz de Marisco", item["namePt"])
	assert.Equal(t, "Seafood Rice", item["nameEn"])
}

func TestMenuList_AdminSeesAll(t *testing.T) {
	t.Parallel()

	var gotFilter menu.ListFilter
	repo := &mockMenuRepo{
		listFn: func(_ context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
			gotFilter = filter
			return []menu.MenuItem{}, nil
		},
	}
	h := handler.NewMenuHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/admin/menu", nil, nil)
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, gotFilter.AvailableOnly)
}

func TestMenuList_CategoryFilter(t *testing.T) {
	t.Parallel()

	var gotFilter menu.ListFilter
	repo := &mockMenuRepo{
		listFn: func(_ context.Context, filter menu.ListFilter) ([]menu.MenuItem, error) {
			gotFilter = filter
			return []menu.MenuItem{}, nil
		},
	}
	h := handler.NewMenuHandler(repo)

	req, w := makeChiRequest(http.MethodGet, "/menu?category=desserts", nil, nil)
	h.ListPublic(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotFilter.Category)
	assert.Equal(t, "desserts", *gotFilter.Category)
}

func TestMenuList_UnknownCategory(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	req, w := makeChiRequest(http.MethodGet, "/menu?category=sushi", nil, nil)
	h.ListPublic(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CATEGORY", errorCode(t, w))
}

// ===== POST /admin/menu =====

func TestMenuCreate_Success(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"namePt":     "Pastel de Nata",
		"nameEn":     "Custard Tart",
		"category":   "desserts",
		"priceCents": 150,
	})

	req, w := makeChiRequest(http.MethodPost, "/admin/menu", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	env := parseEnvelope(t, w)
	assert.Equal(t, true, env["success"])
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "Pastel de Nata", data["namePt"])
	assert.Equal(t, true, data["available"])
	assert.NotEmpty(t, data["id"])
}

func TestMenuCreate_ValidationError(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	body, _ := json.Marshal(map[string]interface{}{
		"namePt":     "",
		"nameEn":     "",
		"category":   "sushi",
		"priceCents": -5,
	})

	req, w := makeChiRequest(http.MethodPost, "/admin/menu", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
}

func TestMenuCreate_InvalidJSON(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	req, w := makeChiRequest(http.MethodPost, "/admin/menu", []byte("{not json"), nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_JSON", errorCode(t, w))
}

func TestMenuCreate_RepoError(t *testing.T) {
	t.Parallel()

	repo := &mockMenuRepo{
		createFn: func(_ context.Context, _ *menu.MenuItem) error {
			return errors.New("connection refused")
		},
	}
	h := handler.NewMenuHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"namePt":     "Pastel de Nata",
		"nameEn":     "Custard Tart",
		"category":   "desserts",
		"priceCents": 150,
	})

	req, w := makeChiRequest(http.MethodPost, "/admin/menu", body, nil)
	h.Create(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, w))
}

// ===== PATCH /admin/menu/{id} =====

func TestMenuUpdate_Success(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &mockMenuRepo{
		getByIDFn: func(_ context.Context, gotID uuid.UUID) (*menu.MenuItem, error) {
			require.Equal(t, id, gotID)
			return sampleMenuItem(id), nil
		},
		updateFn: func(_ context.Context, _ *menu.MenuItem) error {
			return nil
		},
	}
	h := handler.NewMenuHandler(repo)

	body, _ := json.Marshal(map[string]interface{}{
		"namePt":     "Arroz de Marisco",
		"nameEn":     "Seafood Rice",
		"category":   "mains",
		"priceCents": 1950,
		"available":  false,
	})

	req, w := makeChiRequest(http.MethodPatch, "/admin/menu/"+id.String(), body, map[string]string{"id": id.String()})
	h.Update(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	env := parseEnvelope(t, w)
	data := env["data"].(map[string]interface{})
	assert.Equal(t, float64(1950), data["priceCents"])
	assert.Equal(t, false, data["available"])
}

func TestMenuUpdate_NotFound(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	id := uuid.New()
	body, _ := json.Marshal(map[string]interface{}{
		"namePt":     "x",
		"nameEn":     "x",
		"category":   "mains",
		"priceCents": 100,
	})

	req, w := makeChiRequest(http.MethodPatch, "/admin/menu/"+id.String(), body, map[string]string{"id": id.String()})
	h.Update(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestMenuUpdate_InvalidID(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	req, w := makeChiRequest(http.MethodPatch, "/admin/menu/abc", nil, map[string]string{"id": "abc"})
	h.Update(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", errorCode(t, w))
}

// ===== DELETE /admin/menu/{id} =====

func TestMenuDelete_Success(t *testing.T) {
	t.Parallel()

	repo := &mockMenuRepo{
		deleteFn: func(_ context.Context, _ uuid.UUID) error {
			return nil
		},
	}
	h := handler.NewMenuHandler(repo)

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/admin/menu/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())
}

func TestMenuDelete_NotFound(t *testing.T) {
	t.Parallel()

	h := handler.NewMenuHandler(&mockMenuRepo{})

	id := uuid.New()
	req, w := makeChiRequest(http.MethodDelete, "/admin/menu/"+id.String(), nil, map[string]string{"id": id.String()})
	h.Delete(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

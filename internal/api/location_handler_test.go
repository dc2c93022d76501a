package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleaway/saleaway-api/internal/api"
	authmiddleware "github.com/saleaway/saleaway-api/internal/api/middleware"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/mocks"
	"github.com/saleaway/saleaway-api/internal/store"
)

func newLocationRouter(t *testing.T, locations store.LocationStore) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewLocationHandler(locations, log)
	authMw := authmiddleware.NewAuthMiddleware(newTestVerifier())

	r := chi.NewRouter()
	r.Route("/locations", func(r chi.Router) {
		r.Get("/", handler.List)
		r.Get("/{id}", handler.Get)
		r.Group(func(r chi.Router) {
			r.Use(authMw.Authenticate)
			r.Post("/", handler.Create)
			r.Put("/{id}", handler.Update)
			r.Delete("/{id}", handler.Delete)
		})
	})
	return r
}

func TestLocationCRUD(t *testing.T) {
	t.Parallel()

	existing, err := domain.NewLocation("Garage", "12 Elm St", "Springfield", "IL", "62704")
	require.NoError(t, err)

	var created *domain.Location
	locations := &mocks.LocationStore{
		CreateFn: func(_ context.Context, l *domain.Location) error {
			created = l
			return nil
		},
		GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Location, error) {
			if id == existing.ID {
				return existing, nil
			}
			return nil, store.ErrLocationNotFound
		},
		ListFn: func(_ context.Context) ([]*domain.Location, error) {
			return []*domain.Location{existing}, nil
		},
		UpdateFn: func(_ context.Context, _ *domain.Location) error { return nil },
		DeleteFn: func(_ context.Context, id uuid.UUID) error {
			if id == existing.ID {
				return nil
			}
			return store.ErrLocationNotFound
		},
	}
	router := newLocationRouter(t, locations)

	t.Run("anonymous list succeeds", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/locations", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got []domain.Location
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Garage", got[0].Name)
	})

	t.Run("anonymous create rejected", func(t *testing.T) {
		body := `{"name":"Shed"}`
		req := httptest.NewRequest(http.MethodPost, "/locations", bytes.NewBufferString(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("create", func(t *testing.T) {
		body := `{"name":"Shed","city":"Springfield"}`
		req := httptest.NewRequest(http.MethodPost, "/locations", bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+testToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code, "body: %s", rr.Body.String())
		require.NotNil(t, created)
		assert.Equal(t, "Shed", created.Name)
		assert.NotEqual(t, uuid.Nil, created.ID)
	})

	t.Run("create without name rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/locations", bytes.NewBufferString(`{"city":"Springfield"}`))
		req.Header.Set("Authorization", "Bearer "+testToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/locations/"+uuid.NewString(), nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("update", func(t *testing.T) {
		body := `{"name":"Back garage","address":"12 Elm St","city":"Springfield","state":"IL","postal_code":"62704"}`
		req := httptest.NewRequest(http.MethodPut, "/locations/"+existing.ID.String(), bytes.NewBufferString(body))
		req.Header.Set("Authorization", "Bearer "+testToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
		assert.Equal(t, "Back garage", existing.Name)
	})

	t.Run("delete", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/locations/"+existing.ID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+testToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestListLocationsLogsFailureWithComponent(t *testing.T) {
	t.Parallel()

	locations := &mocks.LocationStore{
		ListFn: func(_ context.Context) ([]*domain.Location, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))
	handler := api.NewLocationHandler(locations, log)

	req := httptest.NewRequest(http.MethodGet, "/locations", nil)
	rr := httptest.NewRecorder()
	handler.List(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, buf.String(), `"component":"location_handler"`)
	assert.Contains(t, buf.String(), "failed to list locations")
}

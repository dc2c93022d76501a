package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleaway/saleaway-api/internal/api"
	authmiddleware "github.com/saleaway/saleaway-api/internal/api/middleware"
	"github.com/saleaway/saleaway-api/internal/mocks"
	"github.com/saleaway/saleaway-api/internal/storage"
)

func newUploadRouter(t *testing.T, objects storage.ObjectStore, ttl time.Duration) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := api.NewUploadHandler(objects, ttl, log)
	authMw := authmiddleware.NewAuthMiddleware(newTestVerifier())

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(authMw.Authenticate)
		r.Post("/uploads/presign", handler.CreateUploadURL)
	})
	return r
}

func TestCreateUploadURL(t *testing.T) {
	t.Parallel()

	var gotFileName, gotContentType string
	var gotTTL time.Duration
	objects := &mocks.ObjectStore{
		CreateUploadURLFn: func(_ context.Context, fileName, contentType string, ttl time.Duration) (*storage.UploadTarget, error) {
			gotFileName = fileName
			gotContentType = contentType
			gotTTL = ttl
			return &storage.UploadTarget{
				PresignedURL: "https://bucket.s3.us-east-1.amazonaws.com/listings/20260826/abc.jpg?X-Amz-Signature=sig",
				Key:          "listings/20260826/abc.jpg",
				URL:          "https://bucket.s3.us-east-1.amazonaws.com/listings/20260826/abc.jpg",
			}, nil
		},
	}
	router := newUploadRouter(t, objects, 30*time.Minute)

	body := `{"file_name":"photo.jpg","content_type":"image/jpeg"}`
	req := httptest.NewRequest(http.MethodPost, "/uploads/presign", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, "body: %s", rr.Body.String())
	assert.Equal(t, "photo.jpg", gotFileName)
	assert.Equal(t, "image/jpeg", gotContentType)
	assert.Equal(t, 30*time.Minute, gotTTL, "handler TTL must reach the store unchanged")

	var got storage.UploadTarget
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Contains(t, got.PresignedURL, "X-Amz-Signature")
	assert.NotEmpty(t, got.Key)
	assert.NotEmpty(t, got.URL)
}

func TestCreateUploadURLValidation(t *testing.T) {
	t.Parallel()

	objects := &mocks.ObjectStore{
		CreateUploadURLFn: func(_ context.Context, _, _ string, _ time.Duration) (*storage.UploadTarget, error) {
			t.Fatal("store must not be called for invalid payloads")
			return nil, nil
		},
	}
	router := newUploadRouter(t, objects, time.Hour)

	tests := []struct {
		name string
		body string
	}{
		{name: "missing file name", body: `{"content_type":"image/png"}`},
		{name: "missing content type", body: `{"file_name":"a.png"}`},
		{name: "malformed json", body: `{"file_name":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/uploads/presign", bytes.NewBufferString(tc.body))
			req.Header.Set("Authorization", "Bearer "+testToken)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestCreateUploadURLRequiresAuth(t *testing.T) {
	t.Parallel()

	objects := &mocks.ObjectStore{}
	router := newUploadRouter(t, objects, time.Hour)

	body := `{"file_name":"photo.jpg","content_type":"image/jpeg"}`
	req := httptest.NewRequest(http.MethodPost, "/uploads/presign", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateUploadURLSigningFailure(t *testing.T) {
	t.Parallel()

	objects := &mocks.ObjectStore{
		CreateUploadURLFn: func(_ context.Context, _, _ string, _ time.Duration) (*storage.UploadTarget, error) {
			return nil, storage.ErrPresignFailed
		},
	}
	router := newUploadRouter(t, objects, time.Hour)

	body := `{"file_name":"photo.jpg","content_type":"image/jpeg"}`
	req := httptest.NewRequest(http.MethodPost, "/uploads/presign", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+testToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

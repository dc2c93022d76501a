// Package mocks provides hand-written mock implementations of the
// application's interfaces for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/generation"
	"github.com/saleaway/saleaway-api/internal/service/auth"
	"github.com/saleaway/saleaway-api/internal/storage"
	"github.com/saleaway/saleaway-api/internal/store"
)

// ListingStore is a configurable mock of store.ListingStore.
type ListingStore struct {
	CreateFn  func(ctx context.Context, listing *domain.Listing) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	ListFn    func(ctx context.Context) ([]*domain.Listing, error)
	UpdateFn  func(ctx context.Context, listing *domain.Listing) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
}

var _ store.ListingStore = (*ListingStore)(nil)

func (m *ListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	return m.CreateFn(ctx, listing)
}

func (m *ListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *ListingStore) List(ctx context.Context) ([]*domain.Listing, error) {
	return m.ListFn(ctx)
}

func (m *ListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	return m.UpdateFn(ctx, listing)
}

func (m *ListingStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

// LocationStore is a configurable mock of store.LocationStore.
type LocationStore struct {
	CreateFn  func(ctx context.Context, location *domain.Location) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	ListFn    func(ctx context.Context) ([]*domain.Location, error)
	UpdateFn  func(ctx context.Context, location *domain.Location) error
	DeleteFn  func(ctx context.Context, id uuid.UUID) error
}

var _ store.LocationStore = (*LocationStore)(nil)

func (m *LocationStore) Create(ctx context.Context, location *domain.Location) error {
	return m.CreateFn(ctx, location)
}

func (m *LocationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	return m.GetByIDFn(ctx, id)
}

func (m *LocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	return m.ListFn(ctx)
}

func (m *LocationStore) Update(ctx context.Context, location *domain.Location) error {
	return m.UpdateFn(ctx, location)
}

func (m *LocationStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.DeleteFn(ctx, id)
}

// TokenVerifier is a configurable mock of auth.TokenVerifier.
type TokenVerifier struct {
	VerifyFn func(ctx context.Context, rawToken string) (*domain.Principal, error)
}

var _ auth.TokenVerifier = (*TokenVerifier)(nil)

func (m *TokenVerifier) Verify(ctx context.Context, rawToken string) (*domain.Principal, error) {
	return m.VerifyFn(ctx, rawToken)
}

// ListingGenerator is a configurable mock of generation.ListingGenerator.
type ListingGenerator struct {
	GenerateListingFn func(ctx context.Context, title string) (*generation.Draft, error)
}

var _ generation.ListingGenerator = (*ListingGenerator)(nil)

func (m *ListingGenerator) GenerateListing(ctx context.Context, title string) (*generation.Draft, error) {
	return m.GenerateListingFn(ctx, title)
}

// ObjectStore is a configurable mock of storage.ObjectStore.
type ObjectStore struct {
	CreateUploadURLFn func(ctx context.Context, fileName, contentType string, ttl time.Duration) (*storage.UploadTarget, error)
	StoreBytesFn      func(ctx context.Context, data []byte, contentType, ext string) (string, error)
}

var _ storage.ObjectStore = (*ObjectStore)(nil)

func (m *ObjectStore) CreateUploadURL(ctx context.Context, fileName, contentType string, ttl time.Duration) (*storage.UploadTarget, error) {
	return m.CreateUploadURLFn(ctx, fileName, contentType, ttl)
}

func (m *ObjectStore) StoreBytes(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	return m.StoreBytesFn(ctx, data, contentType, ext)
}

// Package storage defines the object storage boundary used for listing
// images. Implementations live under internal/platform.
package storage

import (
	"context"
	"errors"
	"time"
)

// Common storage errors.
var (
	// ErrUploadFailed is returned when a server-side upload does not
	// complete. Callers in the generation pipeline treat this as
	// non-fatal and proceed without an image.
	ErrUploadFailed = errors.New("object upload failed")

	// ErrPresignFailed is returned when an upload URL cannot be signed.
	ErrPresignFailed = errors.New("failed to presign upload URL")
)

// UploadTarget describes a presigned upload: the time-limited PUT URL a
// client uploads to, the object key, and the public URL the object will be
// readable at once uploaded.
type UploadTarget struct {
	PresignedURL string `json:"presigned_url"`
	Key          string `json:"key"`
	URL          string `json:"url"`
}

// ObjectStore provides time-limited upload URLs and server-side uploads of
// generated binary content.
type ObjectStore interface {
	// CreateUploadURL derives a unique object key from the file name and
	// returns a PUT URL valid for ttl plus the eventual public read URL.
	// No existence check is performed; this is purely a signing operation.
	CreateUploadURL(ctx context.Context, fileName, contentType string, ttl time.Duration) (*UploadTarget, error)

	// StoreBytes uploads raw bytes synchronously under a freshly derived
	// key and returns the resulting public URL. Returns ErrUploadFailed
	// if the transfer fails.
	StoreBytes(ctx context.Context, data []byte, contentType, ext string) (string, error)
}

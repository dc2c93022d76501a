// Package s3 implements the storage.ObjectStore interface on top of AWS S3,
// using SigV4 presigned PUT URLs for client uploads and PutObject for
// server-side uploads of generated images.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/saleaway/saleaway-api/internal/config"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/storage"
)

// defaultExtension is used when a file name carries no extension.
const defaultExtension = "jpg"

// putObjectAPI is the slice of the S3 client used for server-side uploads.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// presignPutAPI is the slice of the S3 presign client used for upload URLs.
type presignPutAPI interface {
	PresignPutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Gateway implements storage.ObjectStore against a single S3 bucket.
type Gateway struct {
	bucket    string
	region    string
	client    putObjectAPI
	presigner presignPutAPI
	logger    *slog.Logger
}

// Ensure Gateway implements storage.ObjectStore
var _ storage.ObjectStore = (*Gateway)(nil)

// NewGateway creates a Gateway from the storage configuration, using static
// credentials and SigV4 signing. If log is nil, the default logger is used.
func NewGateway(ctx context.Context, cfg config.StorageConfig, log *slog.Logger) (*Gateway, error) {
	if log == nil {
		log = slog.Default()
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	client := awss3.NewFromConfig(awsCfg)
	return &Gateway{
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		client:    client,
		presigner: awss3.NewPresignClient(client),
		logger:    log.With(slog.String("component", "s3_gateway")),
	}, nil
}

// CreateUploadURL implements storage.ObjectStore.CreateUploadURL. The key is
// listings/{date}/{uuid}.{ext}, where the extension is taken from the file
// name and defaults to jpg.
func (g *Gateway) CreateUploadURL(ctx context.Context, fileName, contentType string, ttl time.Duration) (*storage.UploadTarget, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	key := g.objectKey(extensionOf(fileName))

	req, err := g.presigner.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *awss3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		log.Error("failed to presign upload URL",
			slog.String("error", err.Error()),
			slog.String("key", key))
		return nil, fmt.Errorf("%w: %v", storage.ErrPresignFailed, err)
	}

	log.Debug("presigned upload URL created",
		slog.String("key", key),
		slog.Duration("ttl", ttl))

	return &storage.UploadTarget{
		PresignedURL: req.URL,
		Key:          key,
		URL:          g.publicURL(key),
	}, nil
}

// StoreBytes implements storage.ObjectStore.StoreBytes.
func (g *Gateway) StoreBytes(ctx context.Context, data []byte, contentType, ext string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if ext == "" {
		ext = defaultExtension
	}
	key := g.objectKey(ext)

	_, err := g.client.PutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(g.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Error("failed to upload object",
			slog.String("error", err.Error()),
			slog.String("key", key),
			slog.Int("size", len(data)))
		return "", fmt.Errorf("%w: %v", storage.ErrUploadFailed, err)
	}

	log.Info("object uploaded",
		slog.String("key", key),
		slog.Int("size", len(data)))
	return g.publicURL(key), nil
}

// objectKey derives a unique key of the form listings/{YYYYMMDD}/{uuid}.{ext}.
func (g *Gateway) objectKey(ext string) string {
	date := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("listings/%s/%s.%s", date, uuid.New().String(), ext)
}

// publicURL returns the virtual-hosted-style URL the object is readable at
// once uploaded.
func (g *Gateway) publicURL(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", g.bucket, g.region, key)
}

// extensionOf extracts the extension from a file name, defaulting to jpg.
func extensionOf(fileName string) string {
	if idx := strings.LastIndex(fileName, "."); idx >= 0 && idx < len(fileName)-1 {
		return fileName[idx+1:]
	}
	return defaultExtension
}

// Package postgres provides PostgreSQL-backed implementations of the store
// interfaces using the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/store"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode = "23505"
	pgCheckViolationCode  = "23514"
)

// PostgresListingStore implements the store.ListingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresListingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresListingStore creates a new PostgreSQL implementation of the
// ListingStore interface. The database handle must be initialized and
// managed by the caller. If logger is nil, the default logger is used.
func NewPostgresListingStore(db store.DBTX, log *slog.Logger) *PostgresListingStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresListingStore{
		db:     db,
		logger: log.With(slog.String("component", "listing_store")),
	}
}

// Ensure PostgresListingStore implements store.ListingStore
var _ store.ListingStore = (*PostgresListingStore)(nil)

// Create implements store.ListingStore.Create.
func (s *PostgresListingStore) Create(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := listing.Validate(); err != nil {
		log.Warn("listing validation failed during create",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO listings (id, name, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		listing.ID,
		listing.Name,
		listing.Description,
		listing.Price,
		nullableString(listing.ImageURL),
		listing.CreatedAt,
		listing.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgCheckViolationCode {
			log.Warn("check constraint violation during listing creation",
				slog.String("error", err.Error()),
				slog.String("listing_id", listing.ID.String()))
			return fmt.Errorf("%w: %s", store.ErrInvalidEntity, pgErr.ConstraintName)
		}

		log.Error("failed to create listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return err
	}

	log.Info("listing created successfully",
		slog.String("listing_id", listing.ID.String()),
		slog.String("name", listing.Name))
	return nil
}

// GetByID implements store.ListingStore.GetByID.
func (s *PostgresListingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, price, image_url, created_at, updated_at
		FROM listings
		WHERE id = $1
	`

	listing, err := scanListing(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("listing not found", slog.String("listing_id", id.String()))
			return nil, store.ErrListingNotFound
		}
		log.Error("failed to get listing by ID",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return nil, err
	}

	return listing, nil
}

// List implements store.ListingStore.List. Results are always ordered
// newest-first by creation timestamp.
func (s *PostgresListingStore) List(ctx context.Context) ([]*domain.Listing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, price, image_url, created_at, updated_at
		FROM listings
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list listings", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	listings := make([]*domain.Listing, 0)
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			log.Error("failed to scan listing row", slog.String("error", err.Error()))
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating listing rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listings retrieved", slog.Int("count", len(listings)))
	return listings, nil
}

// Update implements store.ListingStore.Update. The created_at column is
// never part of the SET clause, so a stored creation timestamp cannot be
// modified through this method.
func (s *PostgresListingStore) Update(ctx context.Context, listing *domain.Listing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := listing.Validate(); err != nil {
		log.Warn("listing validation failed during update",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	listing.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE listings
		SET name = $1, description = $2, price = $3, image_url = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		listing.Name,
		listing.Description,
		listing.Price,
		nullableString(listing.ImageURL),
		listing.UpdatedAt,
		listing.ID,
	)
	if err != nil {
		log.Error("failed to update listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("listing_id", listing.ID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("listing not found for update", slog.String("listing_id", listing.ID.String()))
		return store.ErrListingNotFound
	}

	log.Info("listing updated successfully", slog.String("listing_id", listing.ID.String()))
	return nil
}

// Delete implements store.ListingStore.Delete.
func (s *PostgresListingStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete listing",
			slog.String("error", err.Error()),
			slog.String("listing_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("listing not found for delete", slog.String("listing_id", id.String()))
		return store.ErrListingNotFound
	}

	log.Info("listing deleted successfully", slog.String("listing_id", id.String()))
	return nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*domain.Listing, error) {
	var listing domain.Listing
	var imageURL sql.NullString

	err := row.Scan(
		&listing.ID,
		&listing.Name,
		&listing.Description,
		&listing.Price,
		&imageURL,
		&listing.CreatedAt,
		&listing.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if imageURL.Valid {
		listing.ImageURL = imageURL.String
	}
	return &listing, nil
}

// nullableString maps an empty string to SQL NULL.
func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/saleaway/saleaway-api/internal/domain"
	"github.com/saleaway/saleaway-api/internal/platform/logger"
	"github.com/saleaway/saleaway-api/internal/store"
)

// PostgresLocationStore implements the store.LocationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresLocationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLocationStore creates a new PostgreSQL implementation of the
// LocationStore interface. The database handle must be initialized and
// managed by the caller. If logger is nil, the default logger is used.
func NewPostgresLocationStore(db store.DBTX, log *slog.Logger) *PostgresLocationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &PostgresLocationStore{
		db:     db,
		logger: log.With(slog.String("component", "location_store")),
	}
}

// Ensure PostgresLocationStore implements store.LocationStore
var _ store.LocationStore = (*PostgresLocationStore)(nil)

// Create implements store.LocationStore.Create.
func (s *PostgresLocationStore) Create(ctx context.Context, location *domain.Location) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := location.Validate(); err != nil {
		log.Warn("location validation failed during create",
			slog.String("error", err.Error()),
			slog.String("location_id", location.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO locations (id, name, address, city, state, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		location.ID,
		location.Name,
		location.Address,
		location.City,
		location.State,
		location.PostalCode,
		location.CreatedAt,
		location.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create location",
			slog.String("error", err.Error()),
			slog.String("location_id", location.ID.String()))
		return err
	}

	log.Info("location created successfully",
		slog.String("location_id", location.ID.String()),
		slog.String("name", location.Name))
	return nil
}

// GetByID implements store.LocationStore.GetByID.
func (s *PostgresLocationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, address, city, state, postal_code, created_at, updated_at
		FROM locations
		WHERE id = $1
	`

	location, err := scanLocation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("location not found", slog.String("location_id", id.String()))
			return nil, store.ErrLocationNotFound
		}
		log.Error("failed to get location by ID",
			slog.String("error", err.Error()),
			slog.String("location_id", id.String()))
		return nil, err
	}

	return location, nil
}

// List implements store.LocationStore.List. Results are always ordered
// newest-first by creation timestamp.
func (s *PostgresLocationStore) List(ctx context.Context) ([]*domain.Location, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, address, city, state, postal_code, created_at, updated_at
		FROM locations
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list locations", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			log.Error("failed to scan location row", slog.String("error", err.Error()))
			return nil, err
		}
		locations = append(locations, location)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating location rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("locations retrieved", slog.Int("count", len(locations)))
	return locations, nil
}

// Update implements store.LocationStore.Update. The created_at column is
// never part of the SET clause.
func (s *PostgresLocationStore) Update(ctx context.Context, location *domain.Location) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := location.Validate(); err != nil {
		log.Warn("location validation failed during update",
			slog.String("error", err.Error()),
			slog.String("location_id", location.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	location.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE locations
		SET name = $1, address = $2, city = $3, state = $4, postal_code = $5, updated_at = $6
		WHERE id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		location.Name,
		location.Address,
		location.City,
		location.State,
		location.PostalCode,
		location.UpdatedAt,
		location.ID,
	)
	if err != nil {
		log.Error("failed to update location",
			slog.String("error", err.Error()),
			slog.String("location_id", location.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("location not found for update", slog.String("location_id", location.ID.String()))
		return store.ErrLocationNotFound
	}

	log.Info("location updated successfully", slog.String("location_id", location.ID.String()))
	return nil
}

// Delete implements store.LocationStore.Delete.
func (s *PostgresLocationStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete location",
			slog.String("error", err.Error()),
			slog.String("location_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		log.Debug("location not found for delete", slog.String("location_id", id.String()))
		return store.ErrLocationNotFound
	}

	log.Info("location deleted successfully", slog.String("location_id", id.String()))
	return nil
}

func scanLocation(row rowScanner) (*domain.Location, error) {
	var location domain.Location
	err := row.Scan(
		&location.ID,
		&location.Name,
		&location.Address,
		&location.City,
		&location.State,
		&location.PostalCode,
		&location.CreatedAt,
		&location.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

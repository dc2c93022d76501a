package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/saleaway/saleaway-api/internal/domain"
)

// Test timeout to prevent long-running tests
const testTimeout = 5 * time.Second

// checkIntegrationTestEnvironment checks if we're running in an environment
// where integration tests can be executed, by checking DATABASE_URL.
func checkIntegrationTestEnvironment() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// getTestDB gets a connection to the test database.
func getTestDB() (*sql.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// withRollbackTx executes a function within a transaction and rolls it back
// afterward so tests never leave rows behind. Temporary copies of the
// schema's tables are created inside the transaction; they shadow the real
// tables for unqualified names, so the tests do not depend on migrations
// having run.
func withRollbackTx(t *testing.T, db *sql.DB, fn func(tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "Failed to begin transaction")
	defer func() {
		err := tx.Rollback()
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Error rolling back transaction: %v", err)
		}
	}()

	_, err = tx.Exec(`
		CREATE TEMP TABLE listings (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL CHECK (name <> ''),
			description TEXT NOT NULL DEFAULT '',
			price NUMERIC(10, 2) NOT NULL DEFAULT 0 CHECK (price >= 0),
			image_url VARCHAR(500),
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		) ON COMMIT DROP
	`)
	require.NoError(t, err, "Failed to create temp listings table")

	_, err = tx.Exec(`
		CREATE TEMP TABLE locations (
			id UUID PRIMARY KEY,
			name VARCHAR(200) NOT NULL CHECK (name <> ''),
			address VARCHAR(300) NOT NULL DEFAULT '',
			city VARCHAR(100) NOT NULL DEFAULT '',
			state VARCHAR(100) NOT NULL DEFAULT '',
			postal_code VARCHAR(20) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		) ON COMMIT DROP
	`)
	require.NoError(t, err, "Failed to create temp locations table")

	fn(tx)
}

// newListingAt builds a valid listing whose creation time is offset from now.
func newListingAt(t *testing.T, name string, offset time.Duration) *domain.Listing {
	t.Helper()

	listing, err := domain.NewListing(name, "a description", decimal.RequireFromString("10.00"), "")
	require.NoError(t, err)
	listing.CreatedAt = time.Now().UTC().Add(offset)
	listing.UpdatedAt = listing.CreatedAt
	return listing
}

func TestPostgresListingStore_ListOrdersNewestFirst(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() { _ = db.Close() }()

	withRollbackTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		listingStore := NewPostgresListingStore(tx, nil)

		oldest := newListingAt(t, "Oldest", -2*time.Hour)
		middle := newListingAt(t, "Middle", -1*time.Hour)
		newest := newListingAt(t, "Newest", 0)

		// Insert out of creation order so the result order can only come
		// from the query.
		for _, l := range []*domain.Listing{middle, newest, oldest} {
			require.NoError(t, listingStore.Create(ctx, l))
		}

		got, err := listingStore.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "Newest", got[0].Name)
		assert.Equal(t, "Middle", got[1].Name)
		assert.Equal(t, "Oldest", got[2].Name)
	})
}

func TestPostgresListingStore_CreateUnboundedDescription(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() { _ = db.Close() }()

	withRollbackTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		listingStore := NewPostgresListingStore(tx, nil)

		// Descriptions have no length bound; well past any VARCHAR limit.
		longDescription := strings.Repeat("a detailed paragraph about the item. ", 200)
		listing, err := domain.NewListing(
			"Verbose listing",
			longDescription,
			decimal.RequireFromString("5.00"),
			"",
		)
		require.NoError(t, err)

		require.NoError(t, listingStore.Create(ctx, listing),
			"a long description must not be rejected by storage")

		got, err := listingStore.GetByID(ctx, listing.ID)
		require.NoError(t, err)
		assert.Equal(t, longDescription, got.Description)
	})
}

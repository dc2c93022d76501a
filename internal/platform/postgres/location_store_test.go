package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleaway/saleaway-api/internal/domain"
)

// newLocationAt builds a valid location whose creation time is offset from
// now.
func newLocationAt(t *testing.T, name string, offset time.Duration) *domain.Location {
	t.Helper()

	location, err := domain.NewLocation(name, "12 Elm St", "Springfield", "IL", "62704")
	require.NoError(t, err)
	location.CreatedAt = time.Now().UTC().Add(offset)
	location.UpdatedAt = location.CreatedAt
	return location
}

func TestPostgresLocationStore_ListOrdersNewestFirst(t *testing.T) {
	if !checkIntegrationTestEnvironment() {
		t.Skip("Skipping integration test - requires DATABASE_URL environment variable")
	}

	db, err := getTestDB()
	require.NoError(t, err, "Failed to connect to test database")
	defer func() { _ = db.Close() }()

	withRollbackTx(t, db, func(tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
		defer cancel()

		locationStore := NewPostgresLocationStore(tx, nil)

		oldest := newLocationAt(t, "Oldest", -2*time.Hour)
		middle := newLocationAt(t, "Middle", -1*time.Hour)
		newest := newLocationAt(t, "Newest", 0)

		for _, l := range []*domain.Location{newest, oldest, middle} {
			require.NoError(t, locationStore.Create(ctx, l))
		}

		got, err := locationStore.List(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "Newest", got[0].Name)
		assert.Equal(t, "Middle", got[1].Name)
		assert.Equal(t, "Oldest", got[2].Name)
	})
}

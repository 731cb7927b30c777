// README: Auction store integration tests, opt-in via TEST_DATABASE_URL.
package auction

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"haulbid/internal/domain"
	"haulbid/migrations"
	"haulbid/testutil"
)

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		panic(err)
	}
	if _, err := provider.Up(context.Background()); err != nil {
		panic(err)
	}
	_ = db.Close()

	os.Exit(m.Run())
}

func dbTerms(pickupAddress string) domain.Terms {
	pickup := domain.NewWaypoint(
		domain.RestoreLocation(pickupAddress, domain.Point{Lat: 30.27, Lng: -97.74}),
		window(testNow.Add(24*time.Hour), 2*time.Hour),
	)
	dropoff := domain.NewWaypoint(
		domain.RestoreLocation("800 Bell St, Houston", domain.Point{Lat: 29.76, Lng: -95.36}),
		window(testNow.Add(48*time.Hour), 2*time.Hour),
	)
	return domain.RestoreTerms(pickup, dropoff, "liftgate required")
}

// dbAuction persists a fresh auction and schedules its rows for
// deletion, keeping tests independent on a shared database.
func dbAuction(t *testing.T, store *Store, pool *pgxpool.Pool) *domain.Auction {
	t.Helper()
	fresh := domain.RestoreAuction(0, 0, dbTerms("100 Congress Ave, Austin"), window(testNow, time.Hour))
	saved, err := store.Create(context.Background(), fresh)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM bids WHERE auction_id = $1`, saved.ID())
		_, _ = pool.Exec(context.Background(), `DELETE FROM auctions WHERE id = $1`, saved.ID())
	})
	return saved
}

func TestStore_CreateAndGetRoundTrip(t *testing.T) {
	pool := testutil.NewPool(t)
	store := NewStore(pool)

	saved := dbAuction(t, store, pool)
	assert.Greater(t, saved.ID(), int64(0), "the database assigns the id")
	assert.Equal(t, int64(0), saved.Version())

	got, err := store.Get(context.Background(), saved.ID())
	require.NoError(t, err)
	assert.Equal(t, saved.ID(), got.ID())
	assert.Equal(t, int64(0), got.Version())
	assert.True(t, got.BuyerTerms().Equal(saved.BuyerTerms()))
	assert.True(t, got.BiddingAllowed().Equal(saved.BiddingAllowed()))
}

func TestStore_Get_NotFound(t *testing.T) {
	store := NewStore(testutil.NewPool(t))

	_, err := store.Get(context.Background(), 1<<60)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Update_BumpsVersion(t *testing.T) {
	pool := testutil.NewPool(t)
	store := NewStore(pool)
	saved := dbAuction(t, store, pool)

	moved := domain.RestoreAuction(saved.ID(), saved.Version(),
		dbTerms("200 Lavaca St, Austin"), saved.BiddingAllowed())
	updated, err := store.Update(context.Background(), moved)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.Version())

	got, err := store.Get(context.Background(), saved.ID())
	require.NoError(t, err)
	assert.Equal(t, "200 Lavaca St, Austin", got.BuyerTerms().Pickup().Place().Address())
	assert.Equal(t, int64(1), got.Version())
}

func TestStore_Update_StaleVersionConflict(t *testing.T) {
	pool := testutil.NewPool(t)
	store := NewStore(pool)
	saved := dbAuction(t, store, pool)

	fresh := domain.RestoreAuction(saved.ID(), saved.Version(),
		dbTerms("200 Lavaca St, Austin"), saved.BiddingAllowed())
	_, err := store.Update(context.Background(), fresh)
	require.NoError(t, err)

	// A second writer still holding the original version loses.
	stale := domain.RestoreAuction(saved.ID(), saved.Version(),
		dbTerms("300 Brazos St, Austin"), saved.BiddingAllowed())
	_, err = store.Update(context.Background(), stale)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestStore_ListRecent_NewestFirst(t *testing.T) {
	pool := testutil.NewPool(t)
	store := NewStore(pool)
	older := dbAuction(t, store, pool)
	newer := dbAuction(t, store, pool)

	listed, err := store.ListRecent(context.Background(), 100)
	require.NoError(t, err)

	position := make(map[int64]int, len(listed))
	for i, a := range listed {
		position[a.ID()] = i
	}
	require.Contains(t, position, older.ID())
	require.Contains(t, position, newer.ID())
	assert.Less(t, position[newer.ID()], position[older.ID()])
}

// README: Bid service tests over a hand-written store mock.
package bid

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"haulbid/internal/domain"
	"haulbid/internal/eventbus"
)

type mockBidStore struct {
	create func(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	get    func(ctx context.Context, id int64) (*domain.Bid, error)
	update func(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
}

func (m *mockBidStore) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	return m.create(ctx, b)
}
func (m *mockBidStore) Get(ctx context.Context, id int64) (*domain.Bid, error) {
	return m.get(ctx, id)
}
func (m *mockBidStore) Update(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	return m.update(ctx, b)
}

var _ BidStore = (*mockBidStore)(nil)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2018, 2, 3, 4, 13, 59, 0, time.UTC)

func testDeps() domain.Deps {
	return domain.Deps{Clock: fixedClock{now: testNow}, Bus: eventbus.NewMemoryBus()}
}

func window(anchor time.Time, d time.Duration) domain.TimeRange {
	return domain.RestoreTimeRange(anchor, anchor.Add(d))
}

func storedBid(id int64, withdrawnAt *time.Time) *domain.Bid {
	return domain.RestoreBid(id, 0, 7,
		window(testNow, time.Hour), window(testNow, 2*time.Hour),
		domain.USD(decimal.NewFromInt(100)), withdrawnAt)
}

func TestService_Get(t *testing.T) {
	store := &mockBidStore{
		get: func(_ context.Context, id int64) (*domain.Bid, error) {
			return storedBid(id, nil), nil
		},
	}
	svc := NewService(store, testDeps(), zap.NewNop())

	b, err := svc.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.EqualValues(t, 9, b.ID())
	assert.True(t, b.IsTendered())
}

func TestService_Get_NotFound(t *testing.T) {
	store := &mockBidStore{
		get: func(context.Context, int64) (*domain.Bid, error) {
			return nil, ErrNotFound
		},
	}
	svc := NewService(store, testDeps(), zap.NewNop())

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Withdraw(t *testing.T) {
	var updated *domain.Bid
	store := &mockBidStore{
		get: func(_ context.Context, id int64) (*domain.Bid, error) {
			return storedBid(id, nil), nil
		},
		update: func(_ context.Context, b *domain.Bid) (*domain.Bid, error) {
			updated = b
			return domain.RestoreBid(b.ID(), b.Version()+1, b.AuctionID(),
				b.PickupTime(), b.DropoffTime(), b.Price(), b.WithdrawnAt()), nil
		},
	}
	svc := NewService(store, testDeps(), zap.NewNop())

	b, err := svc.Withdraw(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.True(t, b.IsWithdrawn())
	require.NotNil(t, b.WithdrawnAt())
	assert.True(t, b.WithdrawnAt().Equal(testNow))
	assert.EqualValues(t, 1, b.Version())
}

func TestService_Withdraw_AlreadyWithdrawnSkipsStore(t *testing.T) {
	stamp := testNow.Add(-time.Hour)
	store := &mockBidStore{
		get: func(_ context.Context, id int64) (*domain.Bid, error) {
			return storedBid(id, &stamp), nil
		},
		update: func(context.Context, *domain.Bid) (*domain.Bid, error) {
			t.Fatal("update must not be called for an already-withdrawn bid")
			return nil, nil
		},
	}
	svc := NewService(store, testDeps(), zap.NewNop())

	b, err := svc.Withdraw(context.Background(), 9)
	require.NoError(t, err)
	require.NotNil(t, b.WithdrawnAt())
	assert.True(t, b.WithdrawnAt().Equal(stamp), "original stamp survives")
}

func TestService_Withdraw_Conflict(t *testing.T) {
	store := &mockBidStore{
		get: func(_ context.Context, id int64) (*domain.Bid, error) {
			return storedBid(id, nil), nil
		},
		update: func(context.Context, *domain.Bid) (*domain.Bid, error) {
			return nil, ErrConflict
		},
	}
	svc := NewService(store, testDeps(), zap.NewNop())

	_, err := svc.Withdraw(context.Background(), 9)
	assert.ErrorIs(t, err, ErrConflict)
}

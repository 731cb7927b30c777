// README: Bid store backed by PostgreSQL.
package bid

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"haulbid/internal/domain"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	var id, version int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO bids (
			auction_id,
			pickup_start, pickup_end, dropoff_start, dropoff_end,
			price_amount, price_currency, withdrawn_at
		) VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8)
		RETURNING id, version`,
		b.AuctionID(),
		b.PickupTime().Start(), b.PickupTime().End(),
		b.DropoffTime().Start(), b.DropoffTime().End(),
		b.Price().Amount().String(), b.Price().Currency(),
		b.WithdrawnAt(),
	).Scan(&id, &version)
	if err != nil {
		return nil, err
	}
	return domain.RestoreBid(id, version, b.AuctionID(),
		b.PickupTime(), b.DropoffTime(), b.Price(), b.WithdrawnAt()), nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Bid, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, version, auction_id,
		       pickup_start, pickup_end, dropoff_start, dropoff_end,
		       price_amount::text, price_currency, withdrawn_at
		FROM bids
		WHERE id = $1`, id)

	var (
		bidID, version, auctionID                        int64
		pickupStart, pickupEnd, dropoffStart, dropoffEnd time.Time
		amountText, currency                             string
		withdrawnAt                                      *time.Time
	)
	err := row.Scan(
		&bidID, &version, &auctionID,
		&pickupStart, &pickupEnd, &dropoffStart, &dropoffEnd,
		&amountText, &currency, &withdrawnAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return nil, err
	}
	price, err := domain.NewMoney(amount, currency)
	if err != nil {
		return nil, err
	}
	return domain.RestoreBid(bidID, version, auctionID,
		domain.RestoreTimeRange(pickupStart, pickupEnd),
		domain.RestoreTimeRange(dropoffStart, dropoffEnd),
		price, withdrawnAt), nil
}

// Update writes the withdrawal stamp and bumps the version, guarded by
// the version the root was loaded with.
func (s *Store) Update(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	var version int64
	err := s.db.QueryRow(ctx, `
		UPDATE bids
		SET version = version + 1,
		    withdrawn_at = $1
		WHERE id = $2 AND version = $3
		RETURNING version`,
		b.WithdrawnAt(), b.ID(), b.Version(),
	).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return domain.RestoreBid(b.ID(), version, b.AuctionID(),
		b.PickupTime(), b.DropoffTime(), b.Price(), b.WithdrawnAt()), nil
}

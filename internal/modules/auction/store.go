// README: Auction store backed by PostgreSQL.
package auction

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"haulbid/internal/domain"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const auctionColumns = `
	id, version,
	pickup_address, pickup_lat, pickup_lng, pickup_start, pickup_end,
	dropoff_address, dropoff_lat, dropoff_lng, dropoff_start, dropoff_end,
	other_terms, bidding_start, bidding_end`

func (s *Store) Create(ctx context.Context, a *domain.Auction) (*domain.Auction, error) {
	pickup := a.BuyerTerms().Pickup()
	dropoff := a.BuyerTerms().Dropoff()
	bidding := a.BiddingAllowed()

	var id, version int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO auctions (
			pickup_address, pickup_lat, pickup_lng, pickup_start, pickup_end,
			dropoff_address, dropoff_lat, dropoff_lng, dropoff_start, dropoff_end,
			other_terms, bidding_start, bidding_end
		) VALUES (
			$1, $2, $3, $4, $5,
			$6, $7, $8, $9, $10,
			$11, $12, $13
		) RETURNING id, version`,
		pickup.Place().Address(), pickup.Place().Point().Lat, pickup.Place().Point().Lng,
		pickup.Time().Start(), pickup.Time().End(),
		dropoff.Place().Address(), dropoff.Place().Point().Lat, dropoff.Place().Point().Lng,
		dropoff.Time().Start(), dropoff.Time().End(),
		a.BuyerTerms().OtherTerms(),
		bidding.Start(), bidding.End(),
	).Scan(&id, &version)
	if err != nil {
		return nil, err
	}
	return domain.RestoreAuction(id, version, a.BuyerTerms(), bidding), nil
}

func (s *Store) Get(ctx context.Context, id int64) (*domain.Auction, error) {
	row := s.db.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id)
	a, err := scanAuction(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return a, err
}

// Update writes the buyer terms and bumps the version. The version the
// root was loaded with guards against concurrent writers; losing the
// race surfaces as ErrConflict.
func (s *Store) Update(ctx context.Context, a *domain.Auction) (*domain.Auction, error) {
	pickup := a.BuyerTerms().Pickup()
	dropoff := a.BuyerTerms().Dropoff()

	var version int64
	err := s.db.QueryRow(ctx, `
		UPDATE auctions
		SET version = version + 1,
		    pickup_address = $1, pickup_lat = $2, pickup_lng = $3,
		    pickup_start = $4, pickup_end = $5,
		    dropoff_address = $6, dropoff_lat = $7, dropoff_lng = $8,
		    dropoff_start = $9, dropoff_end = $10,
		    other_terms = $11
		WHERE id = $12 AND version = $13
		RETURNING version`,
		pickup.Place().Address(), pickup.Place().Point().Lat, pickup.Place().Point().Lng,
		pickup.Time().Start(), pickup.Time().End(),
		dropoff.Place().Address(), dropoff.Place().Point().Lat, dropoff.Place().Point().Lng,
		dropoff.Time().Start(), dropoff.Time().End(),
		a.BuyerTerms().OtherTerms(),
		a.ID(), a.Version(),
	).Scan(&version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrConflict
	}
	if err != nil {
		return nil, err
	}
	return domain.RestoreAuction(a.ID(), version, a.BuyerTerms(), a.BiddingAllowed()), nil
}

func (s *Store) ListRecent(ctx context.Context, limit int) ([]*domain.Auction, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+auctionColumns+`
		FROM auctions
		ORDER BY id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var auctions []*domain.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}

func scanAuction(row pgx.Row) (*domain.Auction, error) {
	var (
		id, version                                      int64
		pickupAddress, dropoffAddress, otherTerms        string
		pickupLat, pickupLng, dropoffLat, dropoffLng     float64
		pickupStart, pickupEnd, dropoffStart, dropoffEnd time.Time
		biddingStart, biddingEnd                         time.Time
	)
	err := row.Scan(
		&id, &version,
		&pickupAddress, &pickupLat, &pickupLng, &pickupStart, &pickupEnd,
		&dropoffAddress, &dropoffLat, &dropoffLng, &dropoffStart, &dropoffEnd,
		&otherTerms, &biddingStart, &biddingEnd,
	)
	if err != nil {
		return nil, err
	}

	terms := domain.RestoreTerms(
		domain.NewWaypoint(
			domain.RestoreLocation(pickupAddress, domain.Point{Lat: pickupLat, Lng: pickupLng}),
			domain.RestoreTimeRange(pickupStart, pickupEnd),
		),
		domain.NewWaypoint(
			domain.RestoreLocation(dropoffAddress, domain.Point{Lat: dropoffLat, Lng: dropoffLng}),
			domain.RestoreTimeRange(dropoffStart, dropoffEnd),
		),
		otherTerms,
	)
	bidding := domain.RestoreTimeRange(biddingStart, biddingEnd)
	return domain.RestoreAuction(id, version, terms, bidding), nil
}

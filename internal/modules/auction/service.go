// README: Auction service; application commands over the auction aggregate.
package auction

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"haulbid/internal/domain"
)

var (
	ErrNotFound          = errors.New("auction not found")
	ErrConflict          = errors.New("auction was modified concurrently")
	ErrBadRequest        = errors.New("bad request")
	ErrUnsupportedChange = errors.New("changing the pickup time is not supported")
)

// AuctionStore persists auction roots. Create and Update return the
// persisted root carrying its store-assigned id and version.
type AuctionStore interface {
	Create(ctx context.Context, a *domain.Auction) (*domain.Auction, error)
	Get(ctx context.Context, id int64) (*domain.Auction, error)
	Update(ctx context.Context, a *domain.Auction) (*domain.Auction, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Auction, error)
}

// BidStore is the slice of the bid module's store this service needs to
// persist freshly placed bids.
type BidStore interface {
	Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
}

type Service struct {
	store   AuctionStore
	bids    BidStore
	deps    domain.Deps
	factory *domain.AuctionFactory
	log     *zap.Logger
}

func NewService(store AuctionStore, bids BidStore, deps domain.Deps, log *zap.Logger) *Service {
	return &Service{
		store:   store,
		bids:    bids,
		deps:    deps,
		factory: domain.NewAuctionFactory(deps),
		log:     log.With(zap.String("service", "auction")),
	}
}

type CreateCommand struct {
	PickupAddress  string
	PickupTime     domain.TimeRange
	DropoffAddress string
	DropoffTime    domain.TimeRange
	OtherTerms     string
	BiddingAllowed domain.TimeRange
}

type AlterPickupCommand struct {
	AuctionID  int64
	Address    string
	PickupTime domain.TimeRange
}

type PlaceBidCommand struct {
	AuctionID   int64
	PickupTime  domain.TimeRange
	DropoffTime domain.TimeRange
	Price       domain.Money
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*domain.Auction, error) {
	a, err := s.factory.New(ctx,
		cmd.PickupAddress, cmd.PickupTime,
		cmd.DropoffAddress, cmd.DropoffTime,
		cmd.OtherTerms,
		cmd.BiddingAllowed,
	)
	if err != nil {
		return nil, err
	}
	saved, err := s.store.Create(ctx, a)
	if err != nil {
		return nil, err
	}
	s.log.Info("auction created", zap.Int64("auction_id", saved.ID()))
	return saved, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Auction, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) ListRecent(ctx context.Context, limit int) ([]*domain.Auction, error) {
	if limit <= 0 {
		return nil, ErrBadRequest
	}
	return s.store.ListRecent(ctx, limit)
}

// AlterPickup moves the pickup of an existing auction to a new address.
// The command echoes the pickup window so a caller attempting to move
// the window as well fails fast instead of having the change silently
// ignored.
func (s *Service) AlterPickup(ctx context.Context, cmd AlterPickupCommand) (*domain.Auction, error) {
	a, err := s.store.Get(ctx, cmd.AuctionID)
	if err != nil {
		return nil, err
	}
	if !cmd.PickupTime.IsNever() && !cmd.PickupTime.Equal(a.BuyerTerms().Pickup().Time()) {
		return nil, ErrUnsupportedChange
	}
	if err := a.AlterPickup(ctx, s.deps, cmd.Address); err != nil {
		return nil, err
	}
	saved, err := s.store.Update(ctx, a)
	if err != nil {
		return nil, err
	}
	s.log.Info("pickup altered", zap.Int64("auction_id", saved.ID()), zap.String("address", cmd.Address))
	return saved, nil
}

func (s *Service) PlaceBid(ctx context.Context, cmd PlaceBidCommand) (*domain.Bid, error) {
	a, err := s.store.Get(ctx, cmd.AuctionID)
	if err != nil {
		return nil, err
	}
	b, err := a.PlaceBid(ctx, s.deps, cmd.PickupTime, cmd.DropoffTime, cmd.Price)
	if err != nil {
		return nil, err
	}
	saved, err := s.bids.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info("bid placed",
		zap.Int64("auction_id", a.ID()),
		zap.Int64("bid_id", saved.ID()),
		zap.String("price", saved.Price().String()),
	)
	return saved, nil
}

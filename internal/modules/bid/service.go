// README: Bid service; lookup and withdrawal over the bid aggregate.
package bid

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"haulbid/internal/domain"
)

var (
	ErrNotFound = errors.New("bid not found")
	ErrConflict = errors.New("bid was modified concurrently")
)

// BidStore persists bid roots. Create and Update return the persisted
// root carrying its store-assigned id and version.
type BidStore interface {
	Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
	Get(ctx context.Context, id int64) (*domain.Bid, error)
	Update(ctx context.Context, b *domain.Bid) (*domain.Bid, error)
}

type Service struct {
	store BidStore
	deps  domain.Deps
	log   *zap.Logger
}

func NewService(store BidStore, deps domain.Deps, log *zap.Logger) *Service {
	return &Service{store: store, deps: deps, log: log.With(zap.String("service", "bid"))}
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Bid, error) {
	return s.store.Get(ctx, id)
}

// Withdraw retracts a tendered bid. Withdrawing an already-withdrawn
// bid is a no-op; the stored row keeps its original stamp.
func (s *Service) Withdraw(ctx context.Context, id int64) (*domain.Bid, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	wasWithdrawn := b.IsWithdrawn()
	if err := b.Withdraw(ctx, s.deps); err != nil {
		return nil, err
	}
	if wasWithdrawn {
		return b, nil
	}
	saved, err := s.store.Update(ctx, b)
	if err != nil {
		return nil, err
	}
	s.log.Info("bid withdrawn", zap.Int64("bid_id", saved.ID()))
	return saved, nil
}

// README: Bid aggregate root, its factory, and the idempotent withdraw command.
package domain

import (
	"context"
	"fmt"
	"time"
)

// Bid is the root entity of the bid aggregate: a seller's offer against
// an auction, referenced by identifier only. A bid is tendered until it
// is withdrawn; withdrawal is one-way and terminal.
type Bid struct {
	id          int64
	version     int64
	auctionID   int64
	pickupTime  TimeRange
	dropoffTime TimeRange
	price       Money
	withdrawnAt *time.Time
}

// ID is zero until the store assigns one.
func (b *Bid) ID() int64 { return b.id }

// Version is the optimistic-concurrency counter owned by the store.
func (b *Bid) Version() int64 { return b.version }

func (b *Bid) AuctionID() int64       { return b.auctionID }
func (b *Bid) PickupTime() TimeRange  { return b.pickupTime }
func (b *Bid) DropoffTime() TimeRange { return b.dropoffTime }
func (b *Bid) Price() Money           { return b.price }

func (b *Bid) IsTendered() bool  { return b.withdrawnAt == nil }
func (b *Bid) IsWithdrawn() bool { return !b.IsTendered() }

// WithdrawnAt returns the withdrawal instant, or nil while tendered.
func (b *Bid) WithdrawnAt() *time.Time {
	if b.withdrawnAt == nil {
		return nil
	}
	t := *b.withdrawnAt
	return &t
}

// BidFactory is the sole construction path for Bid roots. It publishes
// BidCreated for every bid it makes.
type BidFactory struct {
	bus EventBus
}

func NewBidFactory(bus EventBus) *BidFactory {
	return &BidFactory{bus: bus}
}

func (f *BidFactory) New(
	ctx context.Context,
	auctionID int64,
	pickupTime TimeRange,
	dropoffTime TimeRange,
	price Money,
) (*Bid, error) {
	if pickupTime.IsNever() {
		return nil, fmt.Errorf("%w: pickup time", ErrValueRequired)
	}
	if dropoffTime.IsNever() {
		return nil, fmt.Errorf("%w: dropoff time", ErrValueRequired)
	}
	if price.Currency() == "" {
		return nil, fmt.Errorf("%w: price", ErrValueRequired)
	}

	bid := &Bid{
		auctionID:   auctionID,
		pickupTime:  pickupTime,
		dropoffTime: dropoffTime,
		price:       price,
	}
	if err := f.bus.Publish(ctx, BidCreated{BidID: bid.id, AuctionID: auctionID, Price: price}); err != nil {
		return nil, err
	}
	return bid, nil
}

// Withdraw marks the bid withdrawn as of the clock's now and publishes
// BidWithdrawn. Idempotent: withdrawing an already-withdrawn bid returns
// without effect and without publishing.
func (b *Bid) Withdraw(ctx context.Context, deps Deps) error {
	return newWithdraw(deps).run(ctx, b)
}

// withdraw is the single-purpose command behind Bid.Withdraw.
type withdraw struct {
	clock Clock
	bus   EventBus
}

func newWithdraw(deps Deps) withdraw {
	return withdraw{clock: deps.Clock, bus: deps.Bus}
}

func (c withdraw) run(ctx context.Context, b *Bid) error {
	if b.IsWithdrawn() {
		return nil
	}
	now := c.clock.Now()
	b.withdrawnAt = &now
	return c.bus.Publish(ctx, BidWithdrawn{BidID: b.id, Price: b.price})
}

// RestoreBid rebuilds a persisted root with its store-assigned id and
// version. FOR STORE USE ONLY.
func RestoreBid(
	id, version, auctionID int64,
	pickupTime, dropoffTime TimeRange,
	price Money,
	withdrawnAt *time.Time,
) *Bid {
	return &Bid{
		id:          id,
		version:     version,
		auctionID:   auctionID,
		pickupTime:  pickupTime,
		dropoffTime: dropoffTime,
		price:       price,
		withdrawnAt: withdrawnAt,
	}
}

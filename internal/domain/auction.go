// README: Auction aggregate root, its factory, and its two mutating commands.
package domain

import (
	"context"
	"fmt"
)

// Auction is the root entity of the reverse-auction aggregate: a buyer's
// terms plus the window during which sellers may bid. Construct only
// through AuctionFactory; mutate only through the named operations.
type Auction struct {
	id             int64
	version        int64
	buyerTerms     Terms
	biddingAllowed TimeRange
}

// ID is zero until the store assigns one.
func (a *Auction) ID() int64 { return a.id }

// Version is the optimistic-concurrency counter. The store owns it; the
// domain only carries it through, unmodified.
func (a *Auction) Version() int64 { return a.version }

func (a *Auction) BuyerTerms() Terms         { return a.buyerTerms }
func (a *Auction) BiddingAllowed() TimeRange { return a.biddingAllowed }

// AuctionFactory is the sole construction path for Auction roots. All
// validation is delegated down to the value-type factories, which keeps
// this code flat.
type AuctionFactory struct {
	clock     Clock
	locations *LocationFactory
	bus       EventBus
}

func NewAuctionFactory(deps Deps) *AuctionFactory {
	return &AuctionFactory{
		clock:     deps.Clock,
		locations: NewLocationFactory(deps.Geocoder),
		bus:       deps.Bus,
	}
}

// New geocodes both addresses, builds and validates the buyer terms,
// checks that the bidding window has not already ended, and publishes
// AuctionCreated for the new root.
func (f *AuctionFactory) New(
	ctx context.Context,
	pickupAddress string,
	pickupTime TimeRange,
	dropoffAddress string,
	dropoffTime TimeRange,
	otherTerms string,
	biddingAllowed TimeRange,
) (*Auction, error) {
	pickupPlace, err := f.locations.New(ctx, pickupAddress)
	if err != nil {
		return nil, fmt.Errorf("pickup: %w", err)
	}
	dropoffPlace, err := f.locations.New(ctx, dropoffAddress)
	if err != nil {
		return nil, fmt.Errorf("dropoff: %w", err)
	}

	now := f.clock.Now()
	terms, err := newTermsAt(now,
		NewWaypoint(pickupPlace, pickupTime),
		NewWaypoint(dropoffPlace, dropoffTime),
		otherTerms)
	if err != nil {
		return nil, err
	}

	if biddingAllowed.IsNever() {
		return nil, fmt.Errorf("%w: bidding window", ErrValueRequired)
	}
	if biddingAllowed.End().Before(now) {
		return nil, ErrBiddingWindowInPast
	}

	auction := &Auction{buyerTerms: terms, biddingAllowed: biddingAllowed}
	if err := f.bus.Publish(ctx, AuctionCreated{AuctionID: auction.id}); err != nil {
		return nil, err
	}
	return auction, nil
}

// AlterPickup replaces the pickup location of the buyer's terms while
// preserving the pickup time window, then publishes BuyerTermsChanged.
// The method itself is a pass-through; all work lives in the resolved
// command so its collaborators stay independently testable.
func (a *Auction) AlterPickup(ctx context.Context, deps Deps, newPickupAddress string) error {
	return newAlterPickup(deps).run(ctx, a, newPickupAddress)
}

// alterPickup is the single-purpose command behind Auction.AlterPickup.
type alterPickup struct {
	locations *LocationFactory
	bus       EventBus
}

func newAlterPickup(deps Deps) alterPickup {
	return alterPickup{
		locations: NewLocationFactory(deps.Geocoder),
		bus:       deps.Bus,
	}
}

func (c alterPickup) run(ctx context.Context, a *Auction, newPickupAddress string) error {
	place, err := c.locations.New(ctx, newPickupAddress)
	if err != nil {
		return err
	}
	a.buyerTerms = a.buyerTerms.withPickupLocation(place)
	return c.bus.Publish(ctx, BuyerTermsChanged{AuctionID: a.id})
}

// PlaceBid tenders a new bid against this auction. The auction itself is
// unchanged; the returned Bid is a separate aggregate referencing it by
// id only.
func (a *Auction) PlaceBid(
	ctx context.Context,
	deps Deps,
	pickupTime TimeRange,
	dropoffTime TimeRange,
	price Money,
) (*Bid, error) {
	return newPlaceBid(deps).run(ctx, a, pickupTime, dropoffTime, price)
}

// placeBid is the single-purpose command behind Auction.PlaceBid.
type placeBid struct {
	clock Clock
	bids  *BidFactory
}

func newPlaceBid(deps Deps) placeBid {
	return placeBid{
		clock: deps.Clock,
		bids:  NewBidFactory(deps.Bus),
	}
}

func (c placeBid) run(
	ctx context.Context,
	a *Auction,
	pickupTime TimeRange,
	dropoffTime TimeRange,
	price Money,
) (*Bid, error) {
	// one clock read for the whole operation
	now := c.clock.Now()
	if !a.biddingAllowed.Includes(now) {
		return nil, ErrBiddingNotAllowed
	}
	if !a.buyerTerms.pickup.time.IncludesRange(pickupTime) {
		return nil, fmt.Errorf("%w: pickup", ErrBidTimeDisagrees)
	}
	if !a.buyerTerms.dropoff.time.IncludesRange(dropoffTime) {
		return nil, fmt.Errorf("%w: dropoff", ErrBidTimeDisagrees)
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	return c.bids.New(ctx, a.id, pickupTime, dropoffTime, price)
}

// RestoreAuction rebuilds a persisted root with its store-assigned id and
// version. FOR STORE USE ONLY.
func RestoreAuction(id, version int64, buyerTerms Terms, biddingAllowed TimeRange) *Auction {
	return &Auction{
		id:             id,
		version:        version,
		buyerTerms:     buyerTerms,
		biddingAllowed: biddingAllowed,
	}
}

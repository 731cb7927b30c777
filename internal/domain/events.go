// README: Domain events; immutable facts describing committed transitions.
package domain

// Event is a fact about a state change, published through the EventBus
// port at the moment the change commits. The id carried is the
// aggregate's identifier as known at publish time (zero for a transient,
// not-yet-persisted root).
type Event interface {
	Name() string
}

// AuctionCreated is published once per successfully created auction.
type AuctionCreated struct {
	AuctionID int64
}

func (AuctionCreated) Name() string { return "auction.created" }

// BuyerTermsChanged is published when the buyer alters the pickup
// location of an existing auction.
type BuyerTermsChanged struct {
	AuctionID int64
}

func (BuyerTermsChanged) Name() string { return "auction.buyer_terms_changed" }

// BidCreated is published once per successfully placed bid.
type BidCreated struct {
	BidID     int64
	AuctionID int64
	Price     Money
}

func (BidCreated) Name() string { return "bid.created" }

// BidWithdrawn is published the first time a bid is withdrawn; repeated
// withdrawals publish nothing.
type BidWithdrawn struct {
	BidID int64
	Price Money
}

func (BidWithdrawn) Name() string { return "bid.withdrawn" }

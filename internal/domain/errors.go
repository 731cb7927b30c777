// README: Sentinel error kinds for the auction domain.
package domain

import "errors"

// Construction and format errors. Wrap with %w when a field name or an
// already-validated value adds useful detail; never echo raw free text
// (addresses and the like) back through an error.
var (
	// ErrValueRequired is returned when a required value is missing,
	// e.g. a zero TimeRange or a Money with no currency.
	ErrValueRequired = errors.New("required value missing")

	// ErrRangeOverflow is returned by NewTimeRange when the computed
	// endpoint falls outside the representable time bounds.
	ErrRangeOverflow = errors.New("time range exceeds representable bounds")

	// ErrCurrencyFormat is returned when a currency code is not exactly
	// three letters.
	ErrCurrencyFormat = errors.New("currency code must be exactly three letters")

	// ErrUnknownCurrency is returned when a format-valid currency code is
	// not in the recognized ISO 4217 set.
	ErrUnknownCurrency = errors.New("unrecognized ISO 4217 currency code")

	// ErrInvalidAddress is returned when an address is empty or whitespace.
	ErrInvalidAddress = errors.New("address must not be empty")

	// ErrGeocodingFailed is returned (possibly wrapped) by Geocoder
	// implementations when an address cannot be resolved to coordinates.
	ErrGeocodingFailed = errors.New("geocoding failed")
)

// Business-rule violations. Each is a distinct kind so callers can map it
// to its own user-facing message.
var (
	// ErrWindowEndsInPast is returned when a pickup or dropoff window
	// ends at or before the current time.
	ErrWindowEndsInPast = errors.New("window must end in the future")

	// ErrPickupAfterDropoff is returned when the pickup window ends
	// later than the dropoff window.
	ErrPickupAfterDropoff = errors.New("pickup window must end no later than dropoff window")

	// ErrBiddingWindowInPast is returned when an auction is created with
	// a bidding window that has already ended.
	ErrBiddingWindowInPast = errors.New("bidding window has already ended")

	// ErrBiddingNotAllowed is returned by PlaceBid outside the auction's
	// bidding window.
	ErrBiddingNotAllowed = errors.New("bidding not allowed now")

	// ErrBidTimeDisagrees is returned when a bid's pickup or dropoff
	// window is not wholly included in the auction's.
	ErrBidTimeDisagrees = errors.New("bid time disagrees with auction time")

	// ErrNegativePrice is returned when a bid price is negative.
	ErrNegativePrice = errors.New("negative price prohibited")
)

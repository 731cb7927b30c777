// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"haulbid/internal/domain"
	"haulbid/internal/modules/auction"
	"haulbid/internal/modules/bid"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeDomainError maps module and domain errors to HTTP statuses.
// Sentinels arrive wrapped, so match with errors.Is.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auction.ErrNotFound), errors.Is(err, bid.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, auction.ErrConflict), errors.Is(err, bid.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, auction.ErrBadRequest),
		errors.Is(err, domain.ErrValueRequired),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrCurrencyFormat),
		errors.Is(err, domain.ErrUnknownCurrency),
		errors.Is(err, domain.ErrRangeOverflow):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auction.ErrUnsupportedChange),
		errors.Is(err, domain.ErrGeocodingFailed),
		errors.Is(err, domain.ErrWindowEndsInPast),
		errors.Is(err, domain.ErrPickupAfterDropoff),
		errors.Is(err, domain.ErrBiddingWindowInPast),
		errors.Is(err, domain.ErrBiddingNotAllowed),
		errors.Is(err, domain.ErrBidTimeDisagrees),
		errors.Is(err, domain.ErrNegativePrice):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// parseWindow turns a pair of RFC 3339 instants into a TimeRange. Both
// fields empty means "not provided" and yields the Never range.
func parseWindow(earliest, latest, field string) (domain.TimeRange, error) {
	if earliest == "" && latest == "" {
		return domain.Never, nil
	}
	start, err := time.Parse(time.RFC3339, earliest)
	if err != nil {
		return domain.Never, errors.New("invalid " + field + " earliest time")
	}
	end, err := time.Parse(time.RFC3339, latest)
	if err != nil {
		return domain.Never, errors.New("invalid " + field + " latest time")
	}
	return domain.NewTimeRange(start, end.Sub(start))
}

// ---- representations -------------------------------------------------------

type waypointRepr struct {
	Address   string    `json:"address"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Earliest  time.Time `json:"earliest"`
	Latest    time.Time `json:"latest"`
}

type auctionRepr struct {
	ID           int64        `json:"id"`
	Version      int64        `json:"version"`
	Pickup       waypointRepr `json:"pickup"`
	Dropoff      waypointRepr `json:"dropoff"`
	OtherTerms   string       `json:"other_terms,omitempty"`
	BiddingStart time.Time    `json:"bidding_start"`
	BiddingEnd   time.Time    `json:"bidding_end"`
}

type bidRepr struct {
	ID              int64      `json:"id"`
	Version         int64      `json:"version"`
	AuctionID       int64      `json:"auction_id"`
	PickupEarliest  time.Time  `json:"pickup_earliest"`
	PickupLatest    time.Time  `json:"pickup_latest"`
	DropoffEarliest time.Time  `json:"dropoff_earliest"`
	DropoffLatest   time.Time  `json:"dropoff_latest"`
	PriceAmount     string     `json:"price_amount"`
	PriceCurrency   string     `json:"price_currency"`
	Tendered        bool       `json:"tendered"`
	WithdrawnAt     *time.Time `json:"withdrawn_at,omitempty"`
}

func waypointToRepr(w domain.Waypoint) waypointRepr {
	return waypointRepr{
		Address:   w.Place().Address(),
		Latitude:  w.Place().Point().Lat,
		Longitude: w.Place().Point().Lng,
		Earliest:  w.Time().Start(),
		Latest:    w.Time().End(),
	}
}

func auctionToRepr(a *domain.Auction) auctionRepr {
	return auctionRepr{
		ID:           a.ID(),
		Version:      a.Version(),
		Pickup:       waypointToRepr(a.BuyerTerms().Pickup()),
		Dropoff:      waypointToRepr(a.BuyerTerms().Dropoff()),
		OtherTerms:   a.BuyerTerms().OtherTerms(),
		BiddingStart: a.BiddingAllowed().Start(),
		BiddingEnd:   a.BiddingAllowed().End(),
	}
}

func bidToRepr(b *domain.Bid) bidRepr {
	return bidRepr{
		ID:              b.ID(),
		Version:         b.Version(),
		AuctionID:       b.AuctionID(),
		PickupEarliest:  b.PickupTime().Start(),
		PickupLatest:    b.PickupTime().End(),
		DropoffEarliest: b.DropoffTime().Start(),
		DropoffLatest:   b.DropoffTime().End(),
		PriceAmount:     b.Price().Amount().String(),
		PriceCurrency:   b.Price().Currency(),
		Tendered:        b.IsTendered(),
		WithdrawnAt:     b.WithdrawnAt(),
	}
}

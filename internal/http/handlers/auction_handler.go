// README: Auction handlers for create/list/get/alter-pickup/place-bid.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"haulbid/internal/domain"
	"haulbid/internal/modules/auction"
)

type AuctionHandler struct {
	auctions  *auction.Service
	listLimit int
}

func NewAuctionHandler(svc *auction.Service, listLimit int) *AuctionHandler {
	return &AuctionHandler{auctions: svc, listLimit: listLimit}
}

type createAuctionReq struct {
	PickupAddress   string `json:"pickup_address"`
	PickupEarliest  string `json:"pickup_earliest"`
	PickupLatest    string `json:"pickup_latest"`
	DropoffAddress  string `json:"dropoff_address"`
	DropoffEarliest string `json:"dropoff_earliest"`
	DropoffLatest   string `json:"dropoff_latest"`
	OtherTerms      string `json:"other_terms"`
	BiddingStart    string `json:"bidding_start"`
	BiddingEnd      string `json:"bidding_end"`
}

func (h *AuctionHandler) Create(c *gin.Context) {
	var req createAuctionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickupTime, err := parseWindow(req.PickupEarliest, req.PickupLatest, "pickup")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	dropoffTime, err := parseWindow(req.DropoffEarliest, req.DropoffLatest, "dropoff")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	biddingAllowed, err := parseWindow(req.BiddingStart, req.BiddingEnd, "bidding")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.auctions.Create(c.Request.Context(), auction.CreateCommand{
		PickupAddress:  req.PickupAddress,
		PickupTime:     pickupTime,
		DropoffAddress: req.DropoffAddress,
		DropoffTime:    dropoffTime,
		OtherTerms:     req.OtherTerms,
		BiddingAllowed: biddingAllowed,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, auctionToRepr(a))
}

func (h *AuctionHandler) List(c *gin.Context) {
	limit := h.listLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	auctions, err := h.auctions.ListRecent(c.Request.Context(), limit)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	reprs := make([]auctionRepr, 0, len(auctions))
	for _, a := range auctions {
		reprs = append(reprs, auctionToRepr(a))
	}
	writeJSON(c, http.StatusOK, reprs)
}

func (h *AuctionHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := h.auctions.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, auctionToRepr(a))
}

type alterPickupReq struct {
	Address        string `json:"address"`
	PickupEarliest string `json:"pickup_earliest"`
	PickupLatest   string `json:"pickup_latest"`
}

func (h *AuctionHandler) AlterPickup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req alterPickupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickupTime, err := parseWindow(req.PickupEarliest, req.PickupLatest, "pickup")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.auctions.AlterPickup(c.Request.Context(), auction.AlterPickupCommand{
		AuctionID:  id,
		Address:    req.Address,
		PickupTime: pickupTime,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, auctionToRepr(a))
}

type placeBidReq struct {
	PickupEarliest  string `json:"pickup_earliest"`
	PickupLatest    string `json:"pickup_latest"`
	DropoffEarliest string `json:"dropoff_earliest"`
	DropoffLatest   string `json:"dropoff_latest"`
	PriceAmount     string `json:"price_amount"`
	PriceCurrency   string `json:"price_currency"`
}

func (h *AuctionHandler) PlaceBid(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req placeBidReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	pickupTime, err := parseWindow(req.PickupEarliest, req.PickupLatest, "pickup")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	dropoffTime, err := parseWindow(req.DropoffEarliest, req.DropoffLatest, "dropoff")
	if err != nil {
		writeError(c, http.StatusBadRequest, err.Error())
		return
	}
	amount, err := decimal.NewFromString(req.PriceAmount)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid price amount")
		return
	}
	price, err := domain.NewMoney(amount, req.PriceCurrency)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	b, err := h.auctions.PlaceBid(c.Request.Context(), auction.PlaceBidCommand{
		AuctionID:   id,
		PickupTime:  pickupTime,
		DropoffTime: dropoffTime,
		Price:       price,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, bidToRepr(b))
}

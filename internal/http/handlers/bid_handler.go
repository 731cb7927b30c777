// README: Bid handlers for get/withdraw.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"haulbid/internal/modules/bid"
)

type BidHandler struct {
	bids *bid.Service
}

func NewBidHandler(svc *bid.Service) *BidHandler {
	return &BidHandler{bids: svc}
}

func (h *BidHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.bids.Get(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, bidToRepr(b))
}

func (h *BidHandler) Withdraw(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.bids.Withdraw(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, bidToRepr(b))
}

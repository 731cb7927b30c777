// README: HTTP router registration.
package http

import (
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"haulbid/internal/http/handlers"
	"haulbid/internal/http/middleware"
	"haulbid/internal/modules/auction"
	"haulbid/internal/modules/bid"
)

type RouterDeps struct {
	Auctions         *auction.Service
	Bids             *bid.Service
	AuctionListLimit int
	Log              *zap.Logger
}

func NewRouter(deps RouterDeps) nethttp.Handler {
	r := gin.New()
	r.Use(middleware.Logging(deps.Log), middleware.Recovery(deps.Log))

	auctionHandler := handlers.NewAuctionHandler(deps.Auctions, deps.AuctionListLimit)
	r.POST("/api/auctions", auctionHandler.Create)
	r.GET("/api/auctions", auctionHandler.List)
	r.GET("/api/auctions/:id", auctionHandler.Get)
	r.PUT("/api/auctions/:id/pickup", auctionHandler.AlterPickup)
	r.POST("/api/auctions/:id/bids", auctionHandler.PlaceBid)

	bidHandler := handlers.NewBidHandler(deps.Bids)
	r.GET("/api/bids/:id", bidHandler.Get)
	r.POST("/api/bids/:id/withdraw", bidHandler.Withdraw)

	r.GET("/health", func(c *gin.Context) {
		c.String(nethttp.StatusOK, "OK")
	})

	return r
}

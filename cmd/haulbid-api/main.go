// README: Entry point; loads config, runs migrations, wires services, starts HTTP server.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"haulbid/internal/clock"
	"haulbid/internal/config"
	"haulbid/internal/domain"
	"haulbid/internal/eventbus"
	httptransport "haulbid/internal/http"
	"haulbid/internal/infra"
	"haulbid/internal/logger"
	"haulbid/internal/maps"
	"haulbid/internal/modules/auction"
	"haulbid/internal/modules/bid"
	"haulbid/migrations"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zlog, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := migrate(ctx, cfg.DB.DSN); err != nil {
		zlog.Fatal("migrations", zap.Error(err))
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		zlog.Fatal("postgres", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)
	defer func() { _ = redisClient.Close() }()

	geocoder, err := maps.NewGeocodingService(cfg.Maps.APIKey)
	if err != nil {
		zlog.Fatal("maps", zap.Error(err))
	}

	systemClock := clock.System{}
	bus := eventbus.NewRedisBus(zlog, redisClient, cfg.Redis.EventsChannel, systemClock)
	if err := bus.StartForwarder(ctx); err != nil {
		zlog.Fatal("event forwarder", zap.Error(err))
	}
	subscribeAuditLog(bus, zlog)

	deps := domain.Deps{Clock: systemClock, Geocoder: geocoder, Bus: bus}

	bidStore := bid.NewStore(dbPool)
	bidSvc := bid.NewService(bidStore, deps, zlog)

	auctionStore := auction.NewStore(dbPool)
	auctionSvc := auction.NewService(auctionStore, bidStore, deps, zlog)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Auctions:         auctionSvc,
		Bids:             bidSvc,
		AuctionListLimit: cfg.Auctions.ListLimit,
		Log:              zlog,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	zlog.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		zlog.Fatal("server", zap.Error(err))
	}
}

// migrate applies the embedded migrations. goose needs database/sql, so
// it gets its own short-lived connection via the pgx stdlib driver.
func migrate(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return err
	}
	_, err = provider.Up(ctx)
	return err
}

// subscribeAuditLog records every domain event flowing through the bus.
func subscribeAuditLog(bus *eventbus.RedisBus, zlog *zap.Logger) {
	for _, name := range []string{
		"auction.created",
		"auction.buyer_terms_changed",
		"bid.created",
		"bid.withdrawn",
	} {
		bus.Subscribe(name, func(e domain.Event) {
			zlog.Info("event", zap.String("name", e.Name()))
		})
	}
}

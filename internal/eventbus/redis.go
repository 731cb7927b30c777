// README: Redis pub/sub event bus; JSON envelopes on a single channel.
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"haulbid/internal/domain"
)

// envelope is the wire format shared by every event on the channel. The
// payload layout depends on Name.
type envelope struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload"`
}

type auctionEventWire struct {
	AuctionID int64 `json:"auction_id"`
}

type bidEventWire struct {
	BidID         int64  `json:"bid_id"`
	AuctionID     int64  `json:"auction_id,omitempty"`
	PriceAmount   string `json:"price_amount"`
	PriceCurrency string `json:"price_currency"`
}

// RedisBus fans events out across processes. Local subscriptions are
// served by StartForwarder, which feeds incoming envelopes back through
// the in-process handler table.
type RedisBus struct {
	log     *zap.Logger
	rdb     *redis.Client
	channel string
	clock   domain.Clock
	local   *MemoryBus
}

func NewRedisBus(log *zap.Logger, rdb *redis.Client, channel string, clock domain.Clock) *RedisBus {
	return &RedisBus{
		log:     log.With(zap.String("service", "RedisBus")),
		rdb:     rdb,
		channel: channel,
		clock:   clock,
		local:   NewMemoryBus(),
	}
}

func (b *RedisBus) Publish(ctx context.Context, event domain.Event) error {
	payload, err := marshalPayload(event)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(envelope{
		ID:         uuid.New(),
		Name:       event.Name(),
		OccurredAt: b.clock.Now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *RedisBus) Subscribe(name string, handler func(domain.Event)) {
	b.local.Subscribe(name, handler)
}

// StartForwarder subscribes to the channel and dispatches every decoded
// envelope to the local handlers until ctx is cancelled.
func (b *RedisBus) StartForwarder(ctx context.Context) error {
	sub := b.rdb.Subscribe(ctx, b.channel)

	// ensures the subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				event, err := decodeMessage([]byte(m.Payload))
				if err != nil {
					b.log.Warn("bad event payload", zap.Error(err))
					continue
				}
				_ = b.local.Publish(ctx, event)
			}
		}
	}()

	return nil
}

func marshalPayload(event domain.Event) (json.RawMessage, error) {
	switch e := event.(type) {
	case domain.AuctionCreated:
		return json.Marshal(auctionEventWire{AuctionID: e.AuctionID})
	case domain.BuyerTermsChanged:
		return json.Marshal(auctionEventWire{AuctionID: e.AuctionID})
	case domain.BidCreated:
		return json.Marshal(bidEventWire{
			BidID:         e.BidID,
			AuctionID:     e.AuctionID,
			PriceAmount:   e.Price.Amount().String(),
			PriceCurrency: e.Price.Currency(),
		})
	case domain.BidWithdrawn:
		return json.Marshal(bidEventWire{
			BidID:         e.BidID,
			PriceAmount:   e.Price.Amount().String(),
			PriceCurrency: e.Price.Currency(),
		})
	default:
		return nil, fmt.Errorf("unknown event %q", event.Name())
	}
}

func decodeMessage(raw []byte) (domain.Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	switch env.Name {
	case "auction.created":
		var w auctionEventWire
		if err := json.Unmarshal(env.Payload, &w); err != nil {
			return nil, err
		}
		return domain.AuctionCreated{AuctionID: w.AuctionID}, nil
	case "auction.buyer_terms_changed":
		var w auctionEventWire
		if err := json.Unmarshal(env.Payload, &w); err != nil {
			return nil, err
		}
		return domain.BuyerTermsChanged{AuctionID: w.AuctionID}, nil
	case "bid.created":
		w, price, err := decodeBidWire(env.Payload)
		if err != nil {
			return nil, err
		}
		return domain.BidCreated{BidID: w.BidID, AuctionID: w.AuctionID, Price: price}, nil
	case "bid.withdrawn":
		w, price, err := decodeBidWire(env.Payload)
		if err != nil {
			return nil, err
		}
		return domain.BidWithdrawn{BidID: w.BidID, Price: price}, nil
	default:
		return nil, fmt.Errorf("unknown event %q", env.Name)
	}
}

func decodeBidWire(payload json.RawMessage) (bidEventWire, domain.Money, error) {
	var w bidEventWire
	if err := json.Unmarshal(payload, &w); err != nil {
		return w, domain.Money{}, err
	}
	amount, err := decimal.NewFromString(w.PriceAmount)
	if err != nil {
		return w, domain.Money{}, fmt.Errorf("price amount: %w", err)
	}
	price, err := domain.NewMoney(amount, w.PriceCurrency)
	if err != nil {
		return w, domain.Money{}, fmt.Errorf("price currency: %w", err)
	}
	return w, price, nil
}

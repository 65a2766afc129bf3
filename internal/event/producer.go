// Package event publishes seller console domain events to Kafka. The broker
// is best-effort: the console keeps working when it is unreachable and emit
// failures are logged, never surfaced to the seller.
package event

import (
	"context"
	"log/slog"

	"github.com/bazaarly/sellerconsole/pkg/kafka"
	"github.com/bazaarly/sellerconsole/pkg/logger"
)

const (
	TopicListing   = "seller.listing.published"
	TopicInventory = "seller.inventory.stock_toggled"

	aggregateListing   = "listing"
	aggregateInventory = "inventory"

	source = "seller-console"
)

// ListingPublishedData is the payload of a listing publish event.
type ListingPublishedData struct {
	SellerID    string   `json:"seller_id"`
	ProductName string   `json:"product_name"`
	Channels    []string `json:"channels"`
}

// StockToggledData is the payload of a stock toggle event.
type StockToggledData struct {
	SellerID    string `json:"seller_id"`
	ProductName string `json:"product_name"`
	InStock     bool   `json:"in_stock"`
}

// publisher is the slice of pkg/kafka.Producer the domain producer needs.
type publisher interface {
	Publish(ctx context.Context, topic string, event *kafka.Event) error
}

// Producer emits seller console events. A nil underlying publisher makes
// every emit a logged no-op, which is the degraded mode used when brokers
// are down at startup.
type Producer struct {
	pub    publisher
	logger *slog.Logger
}

// NewProducer wraps a Kafka producer. Pass nil to run degraded.
func NewProducer(pub publisher, log *slog.Logger) *Producer {
	return &Producer{pub: pub, logger: log}
}

// ListingPublished emits a seller.listing.published event.
func (p *Producer) ListingPublished(ctx context.Context, sellerID, productName string, channels []string) {
	data := ListingPublishedData{SellerID: sellerID, ProductName: productName, Channels: channels}
	p.emit(ctx, TopicListing, "listing.published", productName, aggregateListing, data)
}

// StockToggled emits a seller.inventory.stock_toggled event.
func (p *Producer) StockToggled(ctx context.Context, sellerID, productName string, inStock bool) {
	data := StockToggledData{SellerID: sellerID, ProductName: productName, InStock: inStock}
	p.emit(ctx, TopicInventory, "inventory.stock_toggled", productName, aggregateInventory, data)
}

func (p *Producer) emit(ctx context.Context, topic, eventType, aggregateID, aggregateType string, data any) {
	log := logger.WithContext(ctx, p.logger)

	if p.pub == nil {
		log.Debug("event producer degraded, dropping event", slog.String("event_type", eventType))
		return
	}

	evt, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, data)
	if err != nil {
		log.Error("build event", slog.String("event_type", eventType), slog.String("error", err.Error()))
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt = evt.WithCorrelationID(cid)
	}

	if err := p.pub.Publish(ctx, topic, evt); err != nil {
		log.Warn("publish event failed",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}

package event

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarly/sellerconsole/pkg/kafka"
	"github.com/bazaarly/sellerconsole/pkg/logger"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

type capturedEvent struct {
	topic string
	event *kafka.Event
}

type fakePublisher struct {
	events []capturedEvent
	err    error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, event *kafka.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, capturedEvent{topic: topic, event: event})
	return nil
}

func TestListingPublished_EmitsEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, newTestLogger())

	p.ListingPublished(context.Background(), "seller-1", "Blue Ceramic Mug", []string{"amazon", "etsy"})

	require.Len(t, pub.events, 1)
	got := pub.events[0]
	assert.Equal(t, TopicListing, got.topic)
	assert.Equal(t, "listing.published", got.event.EventType)
	assert.Equal(t, "Blue Ceramic Mug", got.event.AggregateID)

	var data ListingPublishedData
	require.NoError(t, got.event.UnmarshalData(&data))
	assert.Equal(t, "seller-1", data.SellerID)
	assert.Equal(t, []string{"amazon", "etsy"}, data.Channels)
}

func TestStockToggled_EmitsEnvelope(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, newTestLogger())

	p.StockToggled(context.Background(), "seller-1", "Silk Scarf", true)

	require.Len(t, pub.events, 1)
	assert.Equal(t, TopicInventory, pub.events[0].topic)

	var data StockToggledData
	require.NoError(t, pub.events[0].event.UnmarshalData(&data))
	assert.True(t, data.InStock)
}

func TestEmit_CarriesCorrelationID(t *testing.T) {
	pub := &fakePublisher{}
	p := NewProducer(pub, newTestLogger())

	ctx := logger.WithCorrelationID(context.Background(), "corr-42")
	p.ListingPublished(ctx, "seller-1", "Mug", []string{"amazon"})

	require.Len(t, pub.events, 1)
	assert.Equal(t, "corr-42", pub.events[0].event.CorrelationID)
}

func TestEmit_PublishFailureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	p := NewProducer(pub, newTestLogger())

	assert.NotPanics(t, func() {
		p.ListingPublished(context.Background(), "seller-1", "Mug", []string{"amazon"})
	})
}

func TestNilPublisher_IsDegradedNoOp(t *testing.T) {
	p := NewProducer(nil, newTestLogger())

	assert.NotPanics(t, func() {
		p.StockToggled(context.Background(), "seller-1", "Mug", false)
	})
}

// Package publish is the top-level state machine sequencing draft authoring,
// enrichment, channel selection and the confirmed publish.
package publish

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bazaarly/sellerconsole/internal/channel"
	"github.com/bazaarly/sellerconsole/internal/draft"
	"github.com/bazaarly/sellerconsole/internal/enrich"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/logger"
)

// State names the workflow phases.
type State string

const (
	StateAuthoring     State = "authoring"
	StateEnriching     State = "enriching"
	StateChannelSelect State = "channel_select"
	StateConfirming    State = "confirming"
)

var publishesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "publishes_total",
		Help: "Total number of confirmed publishes by channel",
	},
	[]string{"channel"},
)

func init() {
	prometheus.MustRegister(publishesTotal)
}

// EventSink receives publish-side effects. Implementations must tolerate
// broker outages; a failed emit never fails the publish.
type EventSink interface {
	ListingPublished(ctx context.Context, productName string, channels []string)
}

// Workflow drives one seller session through the publish flow. On a
// confirmed publish the working draft is retained for reuse; only the
// selection and surface state are cleared.
type Workflow struct {
	store    *draft.Store
	selector *channel.Selector
	enricher *enrich.Orchestrator
	events   EventSink
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// NewWorkflow creates a workflow starting in the authoring state.
func NewWorkflow(store *draft.Store, sel *channel.Selector, enricher *enrich.Orchestrator, events EventSink, log *slog.Logger) *Workflow {
	return &Workflow{
		store:    store,
		selector: sel,
		enricher: enricher,
		events:   events,
		logger:   log,
		state:    StateAuthoring,
	}
}

// State returns the current workflow phase.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// RunEnrichment runs the two-way AI enrichment join. It can only start from
// authoring, and the workflow returns to authoring whether the run succeeds
// or fails; a failure never leaves the flow stuck in the enriching phase.
func (w *Workflow) RunEnrichment(ctx context.Context, language string) (*enrich.Result, error) {
	w.mu.Lock()
	if w.state != StateAuthoring {
		w.mu.Unlock()
		return nil, apperr.InvalidInput("enrichment can only start while authoring")
	}
	if cur := w.store.Current(); !cur.ReadyForEnrichment() {
		w.mu.Unlock()
		return nil, apperr.Validation("product name and base price are required before analysis")
	}
	w.state = StateEnriching
	w.mu.Unlock()

	res, err := w.enricher.RunAnalysis(ctx, language)

	w.mu.Lock()
	w.state = StateAuthoring
	w.mu.Unlock()

	return res, err
}

// OpenChannels moves into channel selection. The draft needs a product name;
// price is not required at this gate.
func (w *Workflow) OpenChannels() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateAuthoring {
		return apperr.InvalidInput("channel selection can only open while authoring")
	}
	if cur := w.store.Current(); !cur.ReadyForPublish() {
		return apperr.Validation("add a product name before choosing channels")
	}
	w.state = StateChannelSelect
	w.selector.Open()
	return nil
}

// CloseChannels dismisses the selection surface and returns to authoring.
// The selection itself is kept so reopening resumes the same publish attempt.
func (w *Workflow) CloseChannels() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateChannelSelect && w.state != StateConfirming {
		return
	}
	w.selector.Close()
	w.state = StateAuthoring
}

// Toggle flips a channel in the selection. Only valid while the surface
// is open.
func (w *Workflow) Toggle(channelID string) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateChannelSelect {
		return nil, apperr.InvalidInput("open channel selection before toggling")
	}
	return w.selector.Toggle(channelID)
}

// Selected returns the current channel selection.
func (w *Workflow) Selected() []string {
	return w.selector.Selected()
}

// Confirm publishes the draft to the selected channels: the draft is
// snapshotted into the saved list, the publish event is emitted, the
// selection clears and the workflow returns to authoring with the working
// draft retained. An empty selection rejects the confirm and stays in
// channel selection with the surface open.
func (w *Workflow) Confirm(ctx context.Context) ([]string, error) {
	w.mu.Lock()
	if w.state != StateChannelSelect {
		w.mu.Unlock()
		return nil, apperr.InvalidInput("nothing to confirm, channel selection is not open")
	}
	w.state = StateConfirming
	w.mu.Unlock()

	channels, err := w.selector.Confirm()
	if err != nil {
		w.mu.Lock()
		w.state = StateChannelSelect
		w.mu.Unlock()
		return nil, err
	}

	productName := w.store.Current().ProductDetails.Name
	w.store.Save()
	w.events.ListingPublished(ctx, productName, channels)
	for _, ch := range channels {
		publishesTotal.WithLabelValues(ch).Inc()
	}

	w.mu.Lock()
	w.state = StateAuthoring
	w.mu.Unlock()

	logger.WithContext(ctx, w.logger).Info("listing published",
		slog.String("product", productName),
		slog.Any("channels", channels),
	)
	return channels, nil
}

// Reset is the full workflow reset: fresh draft, empty selection, closed
// surface, and any in-flight enrichment invalidated so its result is
// discarded. Saved drafts survive.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.store.Reset()
	w.selector.Clear()
	w.selector.Close()
	w.enricher.Invalidate()
	w.state = StateAuthoring
}

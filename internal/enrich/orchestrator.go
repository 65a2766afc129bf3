// Package enrich coordinates the two AI enrichment calls for a draft:
// description generation and price analysis run in parallel, and the run
// completes only when both have finished.
package enrich

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/bazaarly/sellerconsole/internal/ai"
	"github.com/bazaarly/sellerconsole/internal/domain"
	"github.com/bazaarly/sellerconsole/internal/draft"
	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/logger"
)

var (
	enrichmentRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_runs_total",
			Help: "Total number of enrichment runs by outcome",
		},
		[]string{"outcome"},
	)

	enrichmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrichment_duration_seconds",
			Help:    "Duration of complete enrichment runs (both AI calls joined)",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 45},
		},
	)
)

func init() {
	prometheus.MustRegister(enrichmentRunsTotal, enrichmentDuration)
}

// Result carries what a completed run produced. The description has already
// been merged into the draft; the price analysis is returned to the caller
// only and never stored.
type Result struct {
	Description string            `json:"description"`
	Analysis    *ai.PriceAnalysis `json:"analysis"`
}

// Orchestrator runs enrichment for one seller session. A session runs at
// most one enrichment at a time; concurrent requests are rejected rather
// than queued.
type Orchestrator struct {
	ai      ai.Client
	store   *draft.Store
	logger  *slog.Logger
	timeout time.Duration

	mu   sync.Mutex
	busy bool
	gen  uint64
}

// NewOrchestrator creates an orchestrator bound to a session's draft store.
func NewOrchestrator(client ai.Client, store *draft.Store, timeout time.Duration, log *slog.Logger) *Orchestrator {
	return &Orchestrator{ai: client, store: store, timeout: timeout, logger: log}
}

// Busy reports whether a run is currently in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// Invalidate bumps the generation counter so any in-flight run merges
// nothing when it completes. Called when the draft is reset or published.
func (o *Orchestrator) Invalidate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.gen++
}

// RunAnalysis executes both enrichment calls in parallel and joins them. The
// draft must have a product name and a base price before any model call is
// made. If either branch fails or the deadline passes, the run fails as a
// whole and the draft keeps its prior description.
func (o *Orchestrator) RunAnalysis(ctx context.Context, language string) (*Result, error) {
	d := o.store.Current()
	if !d.ReadyForEnrichment() {
		enrichmentRunsTotal.WithLabelValues("rejected").Inc()
		return nil, apperr.Validation("product name and base price are required before analysis")
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		enrichmentRunsTotal.WithLabelValues("rejected").Inc()
		return nil, apperr.AnalysisInFlight()
	}
	o.busy = true
	gen := o.gen
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	runCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	log := logger.WithContext(ctx, o.logger)
	start := time.Now()

	var (
		description string
		analysis    *ai.PriceAnalysis
	)

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		media := make([]ai.MediaInput, 0, len(d.Media))
		for _, m := range d.Media {
			if m.Kind != domain.MediaKindImage {
				continue
			}
			media = append(media, ai.MediaInput{ContentType: m.ContentType, Data: m.Data})
		}
		text, err := o.ai.GenerateDescription(gctx, d.DescriptionSeed(), media, language)
		if err != nil {
			return err
		}
		description = text
		return nil
	})
	g.Go(func() error {
		a, err := o.ai.AnalyzePrice(gctx, d.ProductDetails.Name, d.AnalysisCategory(), d.ProductDetails.Price)
		if err != nil {
			return err
		}
		analysis = a
		return nil
	})

	if err := g.Wait(); err != nil {
		enrichmentRunsTotal.WithLabelValues("failure").Inc()
		log.Warn("enrichment run failed",
			slog.String("error", err.Error()),
			slog.Duration("took", time.Since(start)),
		)
		return nil, err
	}

	// A reset or publish that happened mid-run invalidates the merge; the
	// completed results are discarded rather than clobbering a fresh draft.
	o.mu.Lock()
	stale := o.gen != gen
	o.mu.Unlock()
	if stale {
		enrichmentRunsTotal.WithLabelValues("stale").Inc()
		log.Info("enrichment result discarded, draft was reset mid-run")
		return nil, apperr.Validation("draft changed during analysis, run it again")
	}

	o.store.SetTranslatedText(description)

	enrichmentRunsTotal.WithLabelValues("success").Inc()
	enrichmentDuration.Observe(time.Since(start).Seconds())
	log.Info("enrichment run complete",
		slog.Int("references", len(analysis.References)),
		slog.Duration("took", time.Since(start)),
	)
	return &Result{Description: description, Analysis: analysis}, nil
}

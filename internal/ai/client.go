// Package ai talks to the generative model used for listing enrichment:
// description copywriting and grounded market price analysis.
package ai

import (
	"context"
)

// MediaInput is one inline media attachment sent with a generation request.
type MediaInput struct {
	ContentType string
	Data        []byte
}

// Reference is one grounding source cited by the price analysis.
type Reference struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// PriceAnalysis is the market verdict for a proposed base price. It is
// returned to the caller and never persisted into the draft.
type PriceAnalysis struct {
	Verdict    string      `json:"verdict"`
	References []Reference `json:"references"`
}

// Client generates listing copy and price analysis. Implementations must be
// safe for concurrent use; the enrichment orchestrator calls both methods in
// parallel.
type Client interface {
	// GenerateDescription writes marketplace copy in the given language from
	// the seller's product context and media.
	GenerateDescription(ctx context.Context, productInfo string, media []MediaInput, language string) (string, error)

	// AnalyzePrice evaluates the proposed base price against the market for
	// the product and category, returning a verdict with cited sources.
	AnalyzePrice(ctx context.Context, productName, category, basePrice string) (*PriceAnalysis, error)
}

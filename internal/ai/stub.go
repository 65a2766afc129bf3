package ai

import (
	"context"
	"fmt"
	"time"
)

// StubClient returns canned copy without calling any external API. It is
// used in development and tests, and simulates a small amount of model
// latency so concurrent enrichment behaves like production.
type StubClient struct {
	// Delay is applied to each call before returning.
	Delay time.Duration
}

// GenerateDescription implements Client.
func (s *StubClient) GenerateDescription(ctx context.Context, productInfo string, media []MediaInput, language string) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"SIMPLE\n%s, ready to ship.\n\nPROFESSIONAL\nCarefully crafted %s backed by our quality guarantee.\n\nSEO OPTIMIZED\nBuy %s online at the best price. (language: %s, media: %d)",
		productInfo, productInfo, productInfo, language, len(media),
	), nil
}

// AnalyzePrice implements Client.
func (s *StubClient) AnalyzePrice(ctx context.Context, productName, category, basePrice string) (*PriceAnalysis, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	return &PriceAnalysis{
		Verdict: fmt.Sprintf(
			"Market Verdict: the proposed base price of %s for %q (%s) sits within the typical market range.",
			basePrice, productName, category,
		),
		References: []Reference{
			{Title: "Reference Source", URI: "https://example.com/market-data"},
		},
	}, nil
}

func (s *StubClient) wait(ctx context.Context) error {
	if s.Delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.Delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

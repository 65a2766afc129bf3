package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bazaarly/sellerconsole/pkg/apperr"
	"github.com/bazaarly/sellerconsole/pkg/httpclient"
	"github.com/bazaarly/sellerconsole/pkg/logger"
)

const descriptionPrompt = `You are an expert e-commerce copywriter. Analyze this product and generate three distinct versions of descriptions in %s:
1. SIMPLE: A concise, catchy summary.
2. PROFESSIONAL: A detailed, trust-building description.
3. SEO OPTIMIZED: A version with relevant keywords.

Format each clearly with headers and bullet points.`

const priceAnalysisPrompt = `Search for the current market price range for %q in the %q category on major retail sites.
The user is proposing a base price of %q.

Tasks:
1. Provide a detailed breakdown of competitor prices.
2. Determine if the user's base price of %q is competitive, too high, or too low compared to the market.
3. If the user's price is not meeting the range, suggest a specific optimized price or range to maximize sales.

Format the response with a clear "Market Verdict" section at the top.`

// GeminiConfig holds the connection settings for the Gemini REST API.
type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

// GeminiClient calls the Gemini generateContent API over the retrying,
// circuit-breaker-protected HTTP client.
type GeminiClient struct {
	cfg    GeminiConfig
	http   *httpclient.CircuitBreakerClient
	logger *slog.Logger
}

// NewGeminiClient creates a client with default transport settings.
func NewGeminiClient(cfg GeminiConfig, log *slog.Logger) *GeminiClient {
	base := httpclient.New(httpclient.DefaultConfig())
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig("gemini"), log)
	return &GeminiClient{cfg: cfg, http: cb, logger: log}
}

// request/response shapes for the generateContent REST endpoint.

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiTool struct {
	GoogleSearch struct{} `json:"googleSearch"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Tools    []geminiTool    `json:"tools,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []struct {
				Web *struct {
					Title string `json:"title"`
					URI   string `json:"uri"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// GenerateDescription implements Client.
func (c *GeminiClient) GenerateDescription(ctx context.Context, productInfo string, media []MediaInput, language string) (string, error) {
	parts := []geminiPart{
		{Text: fmt.Sprintf(descriptionPrompt, language)},
		{Text: "Context provided by user: " + productInfo},
	}
	for _, m := range media {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: m.ContentType,
			Data:     base64.StdEncoding.EncodeToString(m.Data),
		}})
	}

	start := time.Now()
	resp, err := c.generate(ctx, geminiRequest{Contents: []geminiContent{{Parts: parts}}})
	if err != nil {
		return "", apperr.Generation(err)
	}

	text := firstText(resp)
	if text == "" {
		return "", apperr.Generation(fmt.Errorf("model returned no text"))
	}

	logger.WithContext(ctx, c.logger).Info("description generated",
		slog.String("language", language),
		slog.Int("media_count", len(media)),
		slog.Duration("took", time.Since(start)),
	)
	return text, nil
}

// AnalyzePrice implements Client. Search grounding is enabled so the verdict
// comes back with cited sources.
func (c *GeminiClient) AnalyzePrice(ctx context.Context, productName, category, basePrice string) (*PriceAnalysis, error) {
	prompt := fmt.Sprintf(priceAnalysisPrompt, productName, category, basePrice, basePrice)
	req := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Tools:    []geminiTool{{}},
	}

	start := time.Now()
	resp, err := c.generate(ctx, req)
	if err != nil {
		return nil, apperr.Analysis(err)
	}

	verdict := firstText(resp)
	if verdict == "" {
		return nil, apperr.Analysis(fmt.Errorf("model returned no text"))
	}

	analysis := &PriceAnalysis{Verdict: verdict}
	if len(resp.Candidates) > 0 && resp.Candidates[0].GroundingMetadata != nil {
		for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
			if chunk.Web == nil {
				continue
			}
			ref := Reference{Title: chunk.Web.Title, URI: chunk.Web.URI}
			if ref.Title == "" {
				ref.Title = "Reference Source"
			}
			analysis.References = append(analysis.References, ref)
		}
	}

	logger.WithContext(ctx, c.logger).Info("price analysis complete",
		slog.String("product", productName),
		slog.Int("references", len(analysis.References)),
		slog.Duration("took", time.Since(start)),
	)
	return analysis, nil
}

func (c *GeminiClient) generate(ctx context.Context, req geminiRequest) (*geminiResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.cfg.Model, url.QueryEscape(c.cfg.APIKey))

	resp, err := c.http.Post(ctx, endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gemini returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var out geminiResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

func firstText(resp *geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			return part.Text
		}
	}
	return ""
}

package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/akashent3/redflags-sub001/internal/domain/port"
)

// HTTPClient implements port.TextClassifier against a JSON classification
// endpoint. The caller's context carries the per-call deadline; this adapter
// adds no timeout of its own.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates a classifier client for the given endpoint.
func NewHTTPClient(endpoint string) *HTTPClient {
	return &HTTPClient{
		endpoint: endpoint,
		client:   &http.Client{},
	}
}

type classifyRequest struct {
	CheckID          string `json:"check_id"`
	Excerpt          string `json:"excerpt"`
	PriorYearExcerpt string `json:"prior_year_excerpt,omitempty"`
}

type classifyResponse struct {
	Triggered  bool    `json:"triggered"`
	Confidence float64 `json:"confidence"`
	Rationale  string  `json:"rationale"`
}

// Classify posts the excerpt to the classification endpoint.
func (c *HTTPClient) Classify(ctx context.Context, req port.ClassifyRequest) (port.Classification, error) {
	body, err := json.Marshal(classifyRequest{
		CheckID:          req.CheckID,
		Excerpt:          req.Excerpt,
		PriorYearExcerpt: req.PriorYearExcerpt,
	})
	if err != nil {
		return port.Classification{}, fmt.Errorf("classifier: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return port.Classification{}, fmt.Errorf("classifier: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return port.Classification{}, fmt.Errorf("classifier: call %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return port.Classification{}, fmt.Errorf("classifier: status %d: %s", resp.StatusCode, snippet)
	}

	var out classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return port.Classification{}, fmt.Errorf("classifier: decode response: %w", err)
	}
	if out.Confidence < 0 || out.Confidence > 1 {
		return port.Classification{}, fmt.Errorf("classifier: confidence %g out of [0,1]", out.Confidence)
	}

	return port.Classification{
		Triggered:  out.Triggered,
		Confidence: out.Confidence,
		Rationale:  out.Rationale,
	}, nil
}

package retrieval

import (
	"context"
	"fmt"
	"net/http"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/pipeline"
)

// Weights balance the retrieval ranking signals. The ranking algorithm
// itself lives upstream; these only parametrize it.
type Weights struct {
	Text            float64 `json:"text"`
	DifficultyMatch float64 `json:"difficulty_match"`
	Trickiness      float64 `json:"trickiness"`
}

// DefaultWeights mirror what the tuning UI ships with.
func DefaultWeights() Weights {
	return Weights{Text: 1.0, DifficultyMatch: 0.6, Trickiness: 0.0}
}

// promptPreviewRunes caps how much of the rendered prompt rides along in
// the retrieval query.
const promptPreviewRunes = 400

type retrieveRequest struct {
	Query            string  `json:"query"`
	TopK             int     `json:"top_k"`
	Weights          Weights `json:"weights"`
	TargetDifficulty string  `json:"target_difficulty,omitempty"`
	SubjectFilter    string  `json:"subject_filter,omitempty"`
}

// Client reaches the retrieval/context upstream through the gateway.
type Client struct {
	gw      gateway.Caller
	baseURL string
	weights Weights
	opts    gateway.Options
}

var _ pipeline.Retriever = (*Client)(nil)

func NewClient(gw gateway.Caller, baseURL string, weights Weights, opts gateway.Options) *Client {
	return &Client{gw: gw, baseURL: baseURL, weights: weights, opts: opts}
}

// Retrieve fetches reference snippets for the prompt. chunk_count zero is a
// normal response of a cold index and is passed through untouched. The
// orchestrator decides what a skip means, not this client.
func (c *Client) Retrieve(ctx context.Context, params pipeline.Parameters, prompt string) (*pipeline.RetrievedContext, error) {
	topK := params.TopK
	if topK <= 0 {
		topK = 5
	}

	// Query mirrors what the render upstream sees: subject, difficulty and
	// a short preview of the prompt itself. Truncation must land on a rune
	// boundary or the query ends in a mangled character.
	preview := prompt
	if r := []rune(prompt); len(r) > promptPreviewRunes {
		preview = string(r[:promptPreviewRunes])
	}
	query := params.Subject + " " + params.Difficulty + " " + preview

	resp, err := c.gw.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/search/v1/retrieve",
		JSON: retrieveRequest{
			Query:            query,
			TopK:             topK,
			Weights:          c.weights,
			TargetDifficulty: params.Difficulty,
			SubjectFilter:    params.Subject,
		},
	}, c.opts)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return nil, fmt.Errorf("retrieval upstream returned %d", resp.Status)
	}

	return decodeResult(resp.Data), nil
}

func decodeResult(data map[string]any) *pipeline.RetrievedContext {
	if inner, ok := data["data"].(map[string]any); ok {
		data = inner
	}

	out := &pipeline.RetrievedContext{}
	if n, ok := data["chunk_count"].(float64); ok {
		out.ChunkCount = int(n)
	}
	if p, ok := data["prompt"].(string); ok {
		out.Prompt = p
	}
	items, _ := data["retrieved"].([]any)
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		s := pipeline.Snippet{}
		s.Text, _ = m["text"].(string)
		s.Score, _ = m["score"].(float64)
		if s.Text != "" {
			out.Snippets = append(out.Snippets, s)
		}
	}
	return out
}

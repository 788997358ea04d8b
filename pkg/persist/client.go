package persist

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/pipeline"
	"examgen-be/pkg/problem"
)

// Client stores normalized problems through the problem upstream. Persist is
// not idempotent on the upstream side, so the retry policy only covers
// failures where the request demonstrably never left this process.
type Client struct {
	caller  gateway.Caller
	baseURL string
	timeout time.Duration
}

var _ pipeline.Persister = (*Client)(nil)

func NewClient(caller gateway.Caller, baseURL string) *Client {
	return &Client{
		caller:  caller,
		baseURL: baseURL,
		timeout: 30 * time.Second,
	}
}

type persistRequest struct {
	Stem            string          `json:"stem"`
	StemFormatted   string          `json:"stem_formatted,omitempty"`
	SolutionOutline string          `json:"solution_outline,omitempty"`
	Explanation     string          `json:"explanation,omitempty"`
	AnswerBrief     string          `json:"answer_brief,omitempty"`
	FinalAnswer     string          `json:"final_answer,omitempty"`
	Checks          []problem.Check `json:"checks"`
	Difficulty      *float64        `json:"difficulty,omitempty"`
	Confidence      *float64        `json:"confidence,omitempty"`
	Subject         string          `json:"subject,omitempty"`
	TemplateId      string          `json:"template_id,omitempty"`
	SessionId       string          `json:"session_id,omitempty"`
}

func (c *Client) Persist(ctx context.Context, record *problem.NormalizedProblem, session *pipeline.Session) (string, error) {
	policy := gateway.DefaultPolicy()
	// Never replay a request the upstream may have already applied.
	policy.RetryOn = []gateway.ErrorKind{gateway.KindNetworkError}

	resp, err := c.caller.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/problem/v1/problems",
		JSON: persistRequest{
			Stem:            record.Stem,
			StemFormatted:   record.StemFormatted,
			SolutionOutline: record.SolutionOutline,
			Explanation:     record.Explanation,
			AnswerBrief:     record.AnswerBrief,
			FinalAnswer:     record.FinalAnswer,
			Checks:          record.Checks,
			Difficulty:      record.Difficulty,
			Confidence:      record.Confidence,
			Subject:         session.Parameters.Subject,
			TemplateId:      session.Parameters.TemplateId,
			SessionId:       session.Id.String(),
		},
	}, gateway.Options{Timeout: c.timeout, Policy: policy})
	if err != nil {
		return "", fmt.Errorf("persist request failed: %w", err)
	}

	if resp.Status != http.StatusOK && resp.Status != http.StatusCreated {
		return "", fmt.Errorf("persist error: status %d, body: %s", resp.Status, string(resp.Body))
	}

	if id := idFromJSON(resp.Data); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("persist response carried no inserted id")
}

func idFromJSON(data map[string]any) string {
	if v, ok := data["id"].(string); ok && v != "" {
		return v
	}
	if inner, ok := data["data"].(map[string]any); ok {
		return idFromJSON(inner)
	}
	return ""
}

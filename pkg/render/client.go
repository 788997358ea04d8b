package render

import (
	"context"
	"fmt"
	"net/http"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/pipeline"
)

// Client reaches the template render upstream through the gateway. In the
// default deployment the upstream is this same server's render endpoint;
// the client does not care.
type Client struct {
	gw      gateway.Caller
	baseURL string
	opts    gateway.Options
}

var _ pipeline.Renderer = (*Client)(nil)

func NewClient(gw gateway.Caller, baseURL string, opts gateway.Options) *Client {
	return &Client{gw: gw, baseURL: baseURL, opts: opts}
}

type renderRequest struct {
	TemplateId    string `json:"template_id"`
	Subject       string `json:"subject"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"question_count"`
	RagInject     bool   `json:"rag_inject"`
	SourceText    string `json:"source_text,omitempty"`
	OutputPreset  string `json:"output_preset"`
}

// Render asks the upstream for the fully rendered prompt. Rendering is
// deterministic and side-effect free upstream, so transport failures are
// retried with the default policy.
func (c *Client) Render(ctx context.Context, params pipeline.Parameters) (string, error) {
	resp, err := c.gw.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/template/v1/render",
		JSON: renderRequest{
			TemplateId:    params.TemplateId,
			Subject:       params.Subject,
			Difficulty:    params.Difficulty,
			QuestionCount: params.QuestionCount,
			// Retrieval is a separate pipeline stage; the render upstream
			// must not fold it in twice.
			RagInject:    false,
			SourceText:   params.SourceText,
			OutputPreset: params.OutputPreset,
		},
	}, c.opts)
	if err != nil {
		return "", err
	}
	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("render upstream returned %d", resp.Status)
	}

	prompt := dataString(resp.Data, "rendered_prompt")
	if prompt == "" {
		return "", fmt.Errorf("render upstream returned no prompt")
	}
	return prompt, nil
}

// dataString digs a string out of a decoded JSON payload, looking inside a
// conventional "data" envelope as well.
func dataString(data map[string]any, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	if inner, ok := data["data"].(map[string]any); ok {
		if s, ok := inner[key].(string); ok {
			return s
		}
	}
	return ""
}

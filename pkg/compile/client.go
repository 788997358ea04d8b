package compile

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"examgen-be/pkg/gateway"
)

// Client compiles LaTeX sources into downloadable artifacts via the compile
// upstream. Upstreams answer one of two ways: a JSON body carrying an
// artifact reference, or the compiled document itself as opaque bytes. In
// the byte case we publish the document through the artifact store and hand
// back its token.
type Client struct {
	caller  gateway.Caller
	baseURL string
	store   *ArtifactStore
	timeout time.Duration
}

func NewClient(caller gateway.Caller, baseURL string, store *ArtifactStore) *Client {
	return &Client{
		caller:  caller,
		baseURL: baseURL,
		store:   store,
		timeout: 120 * time.Second,
	}
}

type compileRequest struct {
	Latex  string `json:"latex"`
	Title  string `json:"title,omitempty"`
	Preset string `json:"preset,omitempty"`
}

func (c *Client) Compile(ctx context.Context, source string, title string, preset string) (string, error) {
	resp, err := c.caller.Call(ctx, gateway.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/api/compile/v1/pdf",
		JSON: compileRequest{
			Latex:  StripFences(source),
			Title:  title,
			Preset: preset,
		},
	}, gateway.Options{Timeout: c.timeout})
	if err != nil {
		return "", fmt.Errorf("compile request failed: %w", err)
	}

	if resp.Status != http.StatusOK {
		return "", fmt.Errorf("compile error: status %d, body: %s", resp.Status, string(resp.Body))
	}

	if resp.IsJSON {
		if ref := refFromJSON(resp.Data); ref != "" {
			return ref, nil
		}
		return "", fmt.Errorf("compile response carried no artifact reference")
	}

	// Opaque bytes: the upstream compiled inline. Publish and reference.
	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	token, err := c.store.Put(ctx, resp.Body, contentType)
	if err != nil {
		return "", err
	}
	return "/api/artifact/v1/" + token, nil
}

func refFromJSON(data map[string]any) string {
	for _, key := range []string{"artifact_ref", "pdf_url", "url"} {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
	}
	if inner, ok := data["data"].(map[string]any); ok {
		return refFromJSON(inner)
	}
	return ""
}

// StripFences removes a surrounding markdown code fence from model output.
// Models wrap LaTeX in ```latex blocks despite instructions not to.
func StripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

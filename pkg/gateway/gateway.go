package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// Request describes one outbound call to a remote collaborator.
type Request struct {
	Method string
	URL    string
	Header http.Header
	// JSON, when non-nil, is marshaled as the request body with the
	// matching content type. Body is used verbatim otherwise.
	JSON any
	Body []byte
}

// Response is the normalized result of a successful call. JSON-typed bodies
// are decoded into Data; everything else (e.g. a compiled PDF) stays an
// opaque byte payload in Body with the status and content type preserved.
type Response struct {
	Status      int
	Header      http.Header
	ContentType string
	IsJSON      bool
	Data        map[string]any
	Body        []byte
	// Diagnostics records the failures of earlier attempts when the call
	// eventually succeeded. They are informational only.
	Diagnostics []AttemptError
}

// AttemptError captures why one attempt failed.
type AttemptError struct {
	Attempt int
	Kind    ErrorKind
	Message string
}

// Error is returned once every attempt has been exhausted (or the failure
// was not retryable). Kind lets the orchestrator decide stage-specific
// handling without parsing the message.
type Error struct {
	Kind     ErrorKind
	Status   int
	Attempts []AttemptError
	Message  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s after %d attempt(s): %s", e.Kind, len(e.Attempts), e.Message)
}

// KindOf extracts the gateway error kind from err, or "" if err did not
// come out of the gateway.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// Options tune a single logical call (which may span several attempts).
type Options struct {
	// Timeout bounds one attempt; the in-flight request is cancelled on expiry.
	// The default is generous because several upstreams cold-start.
	Timeout time.Duration
	Policy  Policy
}

// DefaultOptions returns the gateway-wide defaults.
func DefaultOptions() Options {
	return Options{
		Timeout: 45 * time.Second,
		Policy:  DefaultPolicy(),
	}
}

// Gateway performs outbound calls with a bounded, predictable
// failure-handling policy. It is the single chokepoint between the pipeline
// and every remote collaborator.
type Gateway struct {
	client *http.Client
	opts   Options
	logger *log.Logger
}

// Caller is the subset of Gateway the collaborator clients depend on.
type Caller interface {
	Call(ctx context.Context, req Request, opts Options) (*Response, error)
}

func New(opts Options, logger *log.Logger) *Gateway {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultOptions().Timeout
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Gateway{
		// Per-attempt deadlines come from the context, not the client.
		client: &http.Client{},
		opts:   opts,
		logger: logger,
	}
}

// Call performs the request, retrying per the policy in opts. A nil-value
// Options falls back to the gateway defaults field by field.
func (g *Gateway) Call(ctx context.Context, req Request, opts Options) (*Response, error) {
	if opts.Timeout <= 0 {
		opts.Timeout = g.opts.Timeout
	}
	if opts.Policy.RetryOn == nil && opts.Policy.MaxRetries == 0 {
		opts.Policy = g.opts.Policy
	}
	if opts.Policy.BackoffBase <= 0 {
		opts.Policy.BackoffBase = g.opts.Policy.BackoffBase
	}

	var failures []AttemptError
	for attempt := 0; ; attempt++ {
		resp, kind, msg := g.attempt(ctx, req, opts.Timeout)
		if resp != nil {
			resp.Diagnostics = failures
			return resp, nil
		}

		failures = append(failures, AttemptError{Attempt: attempt, Kind: kind, Message: msg})
		decision := opts.Policy.Decide(attempt, kind)
		if !decision.Retry {
			return nil, &Error{Kind: kind, Attempts: failures, Message: msg}
		}

		g.logger.Printf("[WARN] %s %s attempt %d failed (%s), retrying in %s", req.Method, req.URL, attempt+1, kind, decision.Delay)
		select {
		case <-time.After(decision.Delay):
		case <-ctx.Done():
			failures = append(failures, AttemptError{Attempt: attempt + 1, Kind: KindTimeout, Message: ctx.Err().Error()})
			return nil, &Error{Kind: KindTimeout, Attempts: failures, Message: ctx.Err().Error()}
		}
	}
}

// attempt runs exactly one request. It returns either a normalized response
// or a failure classification; a non-transient HTTP status (4xx, plain 500)
// is a response, not a failure, so it is never retried here.
func (g *Gateway) attempt(ctx context.Context, req Request, timeout time.Duration) (*Response, ErrorKind, string) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body := req.Body
	contentType := ""
	if req.JSON != nil {
		encoded, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, KindMalformedResponse, fmt.Sprintf("marshal request: %v", err)
		}
		body = encoded
		contentType = "application/json"
	}

	httpReq, err := http.NewRequestWithContext(attemptCtx, req.Method, req.URL, bytes.NewReader(body))
	if err != nil {
		return nil, KindNetworkError, fmt.Sprintf("create request: %v", err)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	StripHopHeaders(httpReq.Header)
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		if attemptCtx.Err() != nil {
			return nil, KindTimeout, err.Error()
		}
		return nil, KindNetworkError, err.Error()
	}
	defer httpResp.Body.Close()

	switch httpResp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, KindUnavailable, fmt.Sprintf("upstream returned %d", httpResp.StatusCode)
	}

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		if attemptCtx.Err() != nil {
			return nil, KindTimeout, err.Error()
		}
		return nil, KindNetworkError, fmt.Sprintf("read response: %v", err)
	}

	header := httpResp.Header.Clone()
	StripHopHeaders(header)

	resp := &Response{
		Status:      httpResp.StatusCode,
		Header:      header,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        raw,
	}

	if isJSONContentType(resp.ContentType) {
		var data map[string]any
		if err := json.Unmarshal(raw, &data); err != nil {
			// A body that fails to parse as its declared type is a hard
			// failure, never a silent nil.
			return nil, KindMalformedResponse, fmt.Sprintf("declared JSON did not parse: %v", err)
		}
		resp.IsJSON = true
		resp.Data = data
	}

	return resp, "", ""
}

func isJSONContentType(ct string) bool {
	ct = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
	return ct == "application/json" || strings.HasSuffix(ct, "+json")
}

package gateway

import (
	"context"
	"net/http"
	"strings"
)

// hopHeaders are connection-scoped: re-framing the body on the way through
// invalidates them, so they must not be forwarded in either direction.
var hopHeaders = []string{
	"Host",
	"Connection",
	"Keep-Alive",
	"Proxy-Connection",
	"Transfer-Encoding",
	"Content-Length",
	"Content-Encoding",
	"Upgrade",
}

// StripHopHeaders removes connection-scoped headers in place. All other
// headers pass through unchanged.
func StripHopHeaders(h http.Header) {
	for _, k := range hopHeaders {
		h.Del(k)
	}
}

// ForwardRequest is one inbound request to be relayed to an upstream.
type ForwardRequest struct {
	Method   string
	Path     string // path below the upstream base, must start with "/"
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Forward relays the request to base+path and returns the normalized
// upstream response. It applies the gateway's timeout/retry policy, so a
// flapping upstream is absorbed here rather than by every call site.
func (g *Gateway) Forward(ctx context.Context, base string, req ForwardRequest, opts Options) (*Response, error) {
	url := strings.TrimRight(base, "/") + req.Path
	if req.RawQuery != "" {
		url += "?" + req.RawQuery
	}
	return g.Call(ctx, Request{
		Method: req.Method,
		URL:    url,
		Header: req.Header,
		Body:   req.Body,
	}, opts)
}

// StatusFor maps a terminal gateway failure to the HTTP status the proxy
// boundary reports: timeouts are 504-class, everything else that kept the
// upstream out of reach is 502-class.
func StatusFor(kind ErrorKind) int {
	if kind == KindTimeout {
		return http.StatusGatewayTimeout
	}
	return http.StatusBadGateway
}

// ErrorBody is the structured error payload returned from the proxy
// boundary when forwarding fails.
func ErrorBody(err *Error) map[string]any {
	return map[string]any{
		"error": map[string]any{
			"kind":     string(err.Kind),
			"message":  err.Message,
			"attempts": len(err.Attempts),
		},
	}
}

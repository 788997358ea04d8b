package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStripHopHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Connection", "keep-alive")
	h.Set("Content-Length", "42")
	h.Set("Transfer-Encoding", "chunked")
	h.Set("Content-Encoding", "gzip")
	h.Set("Keep-Alive", "timeout=5")
	h.Set("Authorization", "Bearer token")
	h.Set("X-Request-Id", "abc")

	StripHopHeaders(h)

	for _, k := range []string{"Connection", "Content-Length", "Transfer-Encoding", "Content-Encoding", "Keep-Alive"} {
		if h.Get(k) != "" {
			t.Errorf("header %s survived stripping", k)
		}
	}
	for _, k := range []string{"Authorization", "X-Request-Id"} {
		if h.Get(k) == "" {
			t.Errorf("header %s was stripped but should pass through", k)
		}
	}
}

func TestForwardRelaysMethodPathQueryBody(t *testing.T) {
	var gotMethod, gotPath, gotQuery, gotBody, gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		buf, _ := io.ReadAll(r.Body)
		gotBody = string(buf)
		gotHeader = r.Header.Get("X-Custom")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("X-Custom", "yes")
	header.Set("Connection", "close")

	gw := New(fastOptions(), nil)
	resp, err := gw.Forward(context.Background(), srv.URL+"/", ForwardRequest{
		Method:   http.MethodPut,
		Path:     "/v1/things/7",
		RawQuery: "force=true",
		Header:   header,
		Body:     []byte(`{"name": "x"}`),
	}, fastOptions())
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Errorf("Status = %d", resp.Status)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("method = %s", gotMethod)
	}
	if gotPath != "/v1/things/7" {
		t.Errorf("path = %s", gotPath)
	}
	if gotQuery != "force=true" {
		t.Errorf("query = %s", gotQuery)
	}
	if gotBody != `{"name": "x"}` {
		t.Errorf("body = %s", gotBody)
	}
	if gotHeader != "yes" {
		t.Errorf("X-Custom = %q, want forwarded", gotHeader)
	}
}

func TestStatusFor(t *testing.T) {
	if got := StatusFor(KindTimeout); got != http.StatusGatewayTimeout {
		t.Errorf("StatusFor(timeout) = %d, want 504", got)
	}
	for _, kind := range []ErrorKind{KindUnavailable, KindNetworkError, KindMalformedResponse} {
		if got := StatusFor(kind); got != http.StatusBadGateway {
			t.Errorf("StatusFor(%s) = %d, want 502", kind, got)
		}
	}
}

func TestErrorBody(t *testing.T) {
	err := &Error{
		Kind:    KindUnavailable,
		Message: "upstream returned 503",
		Attempts: []AttemptError{
			{Attempt: 0, Kind: KindUnavailable, Message: "upstream returned 503"},
			{Attempt: 1, Kind: KindUnavailable, Message: "upstream returned 503"},
		},
	}

	body := ErrorBody(err)
	inner, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("body = %v, want error envelope", body)
	}
	if inner["kind"] != string(KindUnavailable) {
		t.Errorf("kind = %v", inner["kind"])
	}
	if inner["attempts"] != 2 {
		t.Errorf("attempts = %v, want 2", inner["attempts"])
	}
}

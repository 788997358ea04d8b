package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func fastOptions() Options {
	return Options{
		Timeout: 2 * time.Second,
		Policy: Policy{
			MaxRetries:  2,
			BackoffBase: time.Millisecond,
			RetryOn:     []ErrorKind{KindNetworkError, KindTimeout, KindUnavailable},
		},
	}
}

func TestCallDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "ok", "count": 3}`))
	}))
	defer srv.Close()

	gw := New(fastOptions(), nil)
	resp, err := gw.Call(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}, fastOptions())
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if !resp.IsJSON {
		t.Fatal("IsJSON = false")
	}
	if resp.Data["message"] != "ok" {
		t.Errorf("Data[message] = %v", resp.Data["message"])
	}
}

func TestCallOpaqueBytes(t *testing.T) {
	payload := []byte("%PDF-1.5 fake pdf bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer srv.Close()

	gw := New(fastOptions(), nil)
	resp, err := gw.Call(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}, fastOptions())
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if resp.IsJSON {
		t.Error("IsJSON = true for a PDF body")
	}
	if string(resp.Body) != string(payload) {
		t.Errorf("Body = %q", resp.Body)
	}
	if resp.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q", resp.ContentType)
	}
}

func TestCallRetriesUnavailableThenSucceeds(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	gw := New(fastOptions(), nil)
	resp, err := gw.Call(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}, fastOptions())
	if err != nil {
		t.Fatalf("Call() error = %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("upstream hit %d times, want 3", got)
	}
	if len(resp.Diagnostics) != 2 {
		t.Fatalf("Diagnostics = %d entries, want 2", len(resp.Diagnostics))
	}
	for i, d := range resp.Diagnostics {
		if d.Kind != KindUnavailable {
			t.Errorf("Diagnostics[%d].Kind = %s, want %s", i, d.Kind, KindUnavailable)
		}
	}
}

func TestCallDoesNotRetryClientError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "bad payload"}`))
	}))
	defer srv.Close()

	gw := New(fastOptions(), nil)
	resp, err := gw.Call(context.Background(), Request{Method: http.MethodPost, URL: srv.URL}, fastOptions())
	if err != nil {
		t.Fatalf("Call() error = %v; a 4xx is a response, not a failure", err)
	}
	if resp.Status != http.StatusUnprocessableEntity {
		t.Errorf("Status = %d", resp.Status)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}
}

func TestCallExhaustsRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	gw := New(fastOptions(), nil)
	_, err := gw.Call(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}, fastOptions())
	gwErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gwErr.Kind != KindUnavailable {
		t.Errorf("Kind = %s, want %s", gwErr.Kind, KindUnavailable)
	}
	if len(gwErr.Attempts) != 3 {
		t.Errorf("Attempts = %d, want 3", len(gwErr.Attempts))
	}
	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("upstream hit %d times, want 3", got)
	}
}

func TestCallMalformedJSONNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"broken": `))
	}))
	defer srv.Close()

	gw := New(fastOptions(), nil)
	_, err := gw.Call(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}, fastOptions())
	gwErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gwErr.Kind != KindMalformedResponse {
		t.Errorf("Kind = %s, want %s", gwErr.Kind, KindMalformedResponse)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("upstream hit %d times, want 1", got)
	}
}

func TestCallTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	opts := fastOptions()
	opts.Timeout = 50 * time.Millisecond
	opts.Policy.MaxRetries = 0

	gw := New(opts, nil)
	_, err := gw.Call(context.Background(), Request{Method: http.MethodGet, URL: srv.URL}, opts)
	if KindOf(err) != KindTimeout {
		t.Errorf("KindOf = %s, want %s", KindOf(err), KindTimeout)
	}
}

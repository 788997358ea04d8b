package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"examgen-be/pkg/gateway"
	"examgen-be/pkg/pipeline"
)

func testClient(baseURL string) *Client {
	gw := gateway.New(gateway.Options{Timeout: 2 * time.Second}, nil)
	return NewClient(gw, baseURL, DefaultWeights(), gateway.Options{})
}

func TestRetrieveQueryPreviewRuneSafe(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotQuery = req.Query
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chunk_count": 0, "retrieved": []}`))
	}))
	defer srv.Close()

	prompt := strings.Repeat("二次関数の最小値を求めよ。", 100)
	params := pipeline.Parameters{Subject: "math", Difficulty: "standard"}

	_, err := testClient(srv.URL).Retrieve(context.Background(), params, prompt)
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if !utf8.ValidString(gotQuery) {
		t.Fatalf("query is not valid UTF-8: %q", gotQuery)
	}
	preview := strings.TrimPrefix(gotQuery, "math standard ")
	if got := utf8.RuneCountInString(preview); got != promptPreviewRunes {
		t.Errorf("preview runes = %d, want %d", got, promptPreviewRunes)
	}
	if !strings.HasPrefix(prompt, preview) {
		t.Error("preview must be a prefix of the prompt, not a mangled cut")
	}
}

func TestRetrieveShortPromptUntruncated(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		gotQuery = req.Query
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chunk_count": 1, "retrieved": [{"text": "t", "score": 0.5}]}`))
	}))
	defer srv.Close()

	params := pipeline.Parameters{Subject: "math", Difficulty: "hard"}
	got, err := testClient(srv.URL).Retrieve(context.Background(), params, "頂点の座標を求めよ")
	if err != nil {
		t.Fatalf("Retrieve() error = %v", err)
	}

	if want := "math hard 頂点の座標を求めよ"; gotQuery != want {
		t.Errorf("query = %q, want %q", gotQuery, want)
	}
	if got.ChunkCount != 1 || len(got.Snippets) != 1 {
		t.Errorf("result = %+v, want one snippet", got)
	}
}

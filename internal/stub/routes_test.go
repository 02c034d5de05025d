package stub

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hyperifyio/heurisko/internal/query"
	"github.com/hyperifyio/heurisko/internal/search"
)

func newServer(t *testing.T) (*httptest.Server, *search.Client) {
	t.Helper()
	srv := httptest.NewServer(NewHandler(loadFixture(t)))
	t.Cleanup(srv.Close)
	return srv, &search.Client{BaseURL: srv.URL, HTTPClient: srv.Client()}
}

func TestRoutes_SearchRoundTrip(t *testing.T) {
	_, c := newServer(t)
	resp, err := c.Search(context.Background(), "children of god", query.Params{{Key: "context", Value: "1"}, {Key: "remove_stop_words", Value: "true"}})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result, got %+v", resp.Results)
	}
	if got := resp.Results[0].Text(); got != "the children of God." {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestRoutes_BadParam(t *testing.T) {
	_, c := newServer(t)
	_, err := c.Search(context.Background(), "x", query.Params{{Key: "page", Value: "-1"}})
	var te *search.TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 TransportError, got %v", err)
	}
}

func TestRoutes_SupplementaryEndpoints(t *testing.T) {
	_, c := newServer(t)
	ctx := context.Background()

	ids, err := c.IDs(ctx)
	if err != nil || len(ids) != 2 || ids[0].Path != "sermons/love" {
		t.Fatalf("ids: %+v err=%v", ids, err)
	}
	exact, err := c.SearchExact(ctx, "by this", 0)
	if err != nil || len(exact.Results) != 1 {
		t.Fatalf("exact: %+v err=%v", exact.Results, err)
	}
	d, err := c.Diagnostics(ctx, "the evidence")
	if err != nil || len(d.KeptWords) != 1 || d.KeptWords[0] != "evidence" {
		t.Fatalf("diagnostics: %+v err=%v", d, err)
	}
	words, err := c.Transcript(ctx, "lectures/evidence")
	if err != nil || len(words) != 4 {
		t.Fatalf("transcript: %+v err=%v", words, err)
	}
	if _, err := c.Transcript(ctx, "nope"); !errors.Is(err, search.ErrTranscriptNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRoutes_LargeParamsDoNotPanic(t *testing.T) {
	_, c := newServer(t)
	ctx := context.Background()
	resp, err := c.Search(ctx, "evident", query.Params{{Key: "context", Value: "9223372036854775807"}})
	if err != nil || len(resp.Results) != 2 {
		t.Fatalf("huge context: %+v err=%v", resp.Results, err)
	}
	resp, err = c.Search(ctx, "evident", query.Params{{Key: "page", Value: "1844674407370955161"}})
	if err != nil || len(resp.Results) != 0 {
		t.Fatalf("huge page: %+v err=%v", resp.Results, err)
	}
	exact, err := c.SearchExact(ctx, "evident", 1844674407370955161)
	if err != nil || len(exact.Results) != 0 {
		t.Fatalf("huge exact page: %+v err=%v", exact.Results, err)
	}
}

func TestRoutes_SearchExactUnknownWordIsNull(t *testing.T) {
	srv, c := newServer(t)
	resp, err := srv.Client().Get(srv.URL + "/search_exact?query=zzzunknown")
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(body) != "null" {
		t.Fatalf("expected null body, got %q", body)
	}
	exact, err := c.SearchExact(context.Background(), "zzzunknown", 0)
	if err != nil || len(exact.Results) != 0 {
		t.Fatalf("client should read null as no results: %+v err=%v", exact.Results, err)
	}
}

func TestRoutes_CORS(t *testing.T) {
	srv, _ := newServer(t)
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/ids", nil)
	req.Header.Set("Origin", "http://example.com")
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("expected CORS header")
	}
}

func TestRoutes_APIDocs(t *testing.T) {
	srv, _ := newServer(t)
	resp, err := srv.Client().Get(srv.URL + APIDocsPath)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range []string{"/search", "/search_exact", "/ids", "/diagnostics", "/transcript"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("apidocs missing %s: %v", p, doc.Paths)
		}
	}
}

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/context/ctxhttp"

	"github.com/hyperifyio/heurisko/internal/query"
)

// maxBodyBytes bounds how much of a response body is read.
const maxBodyBytes = 32 << 20

// Client queries a transcript search service. The zero value targets
// query.DefaultBaseURL with http.DefaultClient and no timeout.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string // optional
	// Timeout bounds each request including reading the body. Zero disables it.
	Timeout time.Duration
}

// Search builds the /search URL for q and params and executes it.
func (c *Client) Search(ctx context.Context, q string, params query.Params) (Response, error) {
	return c.Execute(ctx, query.BuildURL(c.BaseURL, q, params))
}

// SearchExact runs a phrase search against /search_exact.
func (c *Client) SearchExact(ctx context.Context, q string, page int) (Response, error) {
	u := query.Endpoint(c.BaseURL, "/search_exact", query.Params{
		{Key: "query", Value: q},
		{Key: "page", Value: strconv.Itoa(page)},
	})
	return c.Execute(ctx, u)
}

// Execute issues a single GET to rawURL and decodes the result list.
func (c *Client) Execute(ctx context.Context, rawURL string) (Response, error) {
	body, reqID, elapsed, err := c.get(ctx, rawURL)
	resp := Response{URL: rawURL, RequestID: reqID, Elapsed: elapsed}
	if err != nil {
		return resp, err
	}
	results, err := DecodeResults(body)
	if err != nil {
		var mr *MalformedResponse
		if errors.As(err, &mr) {
			mr.URL = rawURL
		}
		return resp, err
	}
	resp.Results = results
	log.Debug().Str("request_id", reqID).Int("results", len(results)).Dur("elapsed", elapsed).Msg("search complete")
	return resp, nil
}

// IDs lists the transcripts known to the server ordered by id.
func (c *Client) IDs(ctx context.Context) ([]TranscriptRef, error) {
	var m map[string]string
	if err := c.getJSON(ctx, query.Endpoint(c.BaseURL, "/ids", nil), &m); err != nil {
		return nil, err
	}
	out := make([]TranscriptRef, 0, len(m))
	for id, p := range m {
		out = append(out, TranscriptRef{ID: id, Path: p})
	}
	sort.Slice(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i].ID)
		b, errB := strconv.Atoi(out[j].ID)
		if errA == nil && errB == nil {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Diagnostics asks the server how it splits and matches q.
func (c *Client) Diagnostics(ctx context.Context, q string) (Diagnostics, error) {
	var d Diagnostics
	u := query.Endpoint(c.BaseURL, "/diagnostics", query.Params{{Key: "query", Value: q}})
	err := c.getJSON(ctx, u, &d)
	return d, err
}

// Transcript fetches every word of the transcript stored at path.
func (c *Client) Transcript(ctx context.Context, path string) ([]Word, error) {
	u := query.Endpoint(c.BaseURL, "/transcript", query.Params{{Key: "path", Value: path}})
	var raw *[]*wireWord
	if err := c.getJSON(ctx, u, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", path, ErrTranscriptNotFound)
	}
	words, err := toWords(*raw)
	if err != nil {
		return nil, &MalformedResponse{URL: u, Reason: err.Error()}
	}
	return words, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	body, _, _, err := c.get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &MalformedResponse{URL: rawURL, Err: err}
	}
	return nil
}

// get performs the GET and returns the body, the request id sent with it and
// the wall-clock time spent on the exchange.
func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, time.Duration, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", 0, &TransportError{URL: rawURL, Err: fmt.Errorf("new request: %w", err)}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	logger := log.With().Str("url", rawURL).Str("request_id", reqID).Logger()
	logger.Debug().Msg("GET")

	start := time.Now()
	resp, err := ctxhttp.Do(ctx, c.HTTPClient, req)
	if err != nil {
		return nil, reqID, time.Since(start), &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	elapsed := time.Since(start)
	if err != nil {
		return nil, reqID, elapsed, &TransportError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Debug().Int("status", resp.StatusCode).Msg("unexpected status")
		return nil, reqID, elapsed, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return body, reqID, elapsed, nil
}

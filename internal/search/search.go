package search

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Word is one transcript token as returned by the search service.
type Word struct {
	Text    string   `json:"word"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Matched bool     `json:"matched"`
}

// QueryResult is one matching transcript window. Word order is transcript order.
type QueryResult struct {
	TranscriptID string `json:"transcript_id"`
	Words        []Word `json:"words"`
	UniqueCount  int    `json:"uniqueCount,omitempty"`
	ElementCount int    `json:"elementCount,omitempty"`
}

// Span returns the first known start and the last known end time among the
// result's words. ok is false when no word carries timing.
func (r QueryResult) Span() (start, end float64, ok bool) {
	var haveStart, haveEnd bool
	for _, w := range r.Words {
		if w.Start != nil && !haveStart {
			start, haveStart = *w.Start, true
		}
		if w.End != nil {
			end, haveEnd = *w.End, true
		}
	}
	return start, end, haveStart || haveEnd
}

// Text joins the words of the result with single spaces.
func (r QueryResult) Text() string {
	parts := make([]string, len(r.Words))
	for i, w := range r.Words {
		parts[i] = w.Text
	}
	return strings.Join(parts, " ")
}

// Response is the outcome of a single search call.
type Response struct {
	URL       string
	RequestID string
	Elapsed   time.Duration
	Results   []QueryResult
}

// ElapsedMillis reports the round-trip latency in fractional milliseconds.
func (r Response) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// TranscriptRef pairs a server-side transcript id with its relative path.
type TranscriptRef struct {
	ID   string
	Path string
}

// Diagnostics describes how the server interprets a query.
type Diagnostics struct {
	Words          []string            `json:"words"`
	IgnoredWords   []string            `json:"ignored_words"`
	KeptWords      []string            `json:"kept_words"`
	UnmatchedWords []string            `json:"unmatched_words"`
	SimilarWords   map[string][]string `json:"similar_words"`
}

// wire shapes with pointer fields so that missing members can be told apart
// from zero values during validation.
type wireWord struct {
	Word    *string  `json:"word"`
	Start   *float64 `json:"start"`
	End     *float64 `json:"end"`
	Matched *bool    `json:"matched"`
}

type wireResult struct {
	TranscriptID json.RawMessage `json:"transcript_id"`
	Transcript   json.RawMessage `json:"transcript"`
	Words        *[]*wireWord    `json:"words"`
	UniqueCount  int             `json:"uniqueCount"`
	ElementCount int             `json:"elementCount"`
}

// rawID renders a JSON string or number id as a plain string.
func rawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return ""
}

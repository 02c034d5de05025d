package search

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeResults parses a search response body. The body is either an array
// of result objects or a single object carrying a "words" array. Every result
// must have a words array and every word must carry a "word" string. A
// literal null, sent when no indexed word starts the phrase, means no results.
func DecodeResults(body []byte) ([]QueryResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, &MalformedResponse{Reason: "empty body"}
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return []QueryResult{}, nil
	}
	var raw []*wireResult
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return nil, &MalformedResponse{Reason: "decode result array", Err: err}
		}
	case '{':
		var one wireResult
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, &MalformedResponse{Reason: "decode result object", Err: err}
		}
		raw = []*wireResult{&one}
	default:
		return nil, &MalformedResponse{Reason: "expected JSON array or object"}
	}

	out := make([]QueryResult, 0, len(raw))
	for i, r := range raw {
		qr, err := r.toResult()
		if err != nil {
			return nil, &MalformedResponse{Reason: fmt.Sprintf("result %d: %v", i, err)}
		}
		out = append(out, qr)
	}
	return out, nil
}

func (r *wireResult) toResult() (QueryResult, error) {
	if r == nil {
		return QueryResult{}, fmt.Errorf("null result")
	}
	if r.Words == nil {
		return QueryResult{}, fmt.Errorf("missing words array")
	}
	id := rawID(r.TranscriptID)
	if id == "" {
		id = rawID(r.Transcript)
	}
	words, err := toWords(*r.Words)
	if err != nil {
		return QueryResult{}, err
	}
	return QueryResult{
		TranscriptID: id,
		Words:        words,
		UniqueCount:  r.UniqueCount,
		ElementCount: r.ElementCount,
	}, nil
}

func toWords(in []*wireWord) ([]Word, error) {
	words := make([]Word, 0, len(in))
	for j, w := range in {
		if w == nil {
			return nil, fmt.Errorf("word %d: null entry", j)
		}
		if w.Word == nil {
			return nil, fmt.Errorf("word %d: missing \"word\" field", j)
		}
		words = append(words, Word{
			Text:    *w.Word,
			Start:   w.Start,
			End:     w.End,
			Matched: w.Matched != nil && *w.Matched,
		})
	}
	return words, nil
}

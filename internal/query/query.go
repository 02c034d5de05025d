package query

import (
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultBaseURL is the address of a locally hosted search service.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Param is a single query-string key/value pair.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Serialization follows
// insertion order so that built URLs are deterministic.
type Params []Param

// Set replaces the value of an existing key in place or appends a new pair.
// It returns the updated list; the receiver's backing array is never shared
// with the result when a pair is appended.
func (p Params) Set(key, value string) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

// Get returns the value for key and whether it was present.
func (p Params) Get(key string) (string, bool) {
	for _, kv := range p {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Encode serializes the pairs as key=value joined by '&'.
func (p Params) Encode() string {
	var b strings.Builder
	for i, kv := range p {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(Escape(kv.Key))
		b.WriteByte('=')
		b.WriteString(Escape(kv.Value))
	}
	return b.String()
}

// Escape percent-encodes s for use in a query string. Spaces become %20
// rather than '+'.
func Escape(s string) string {
	// QueryEscape encodes a literal '+' as %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Endpoint joins baseURL and path and appends params as the query string.
func Endpoint(baseURL, path string, params Params) string {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	u := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	if len(params) == 0 {
		return u
	}
	return u + "?" + params.Encode()
}

// BuildURL returns the /search URL for query followed by params in order.
func BuildURL(baseURL, query string, params Params) string {
	all := make(Params, 0, len(params)+1)
	all = append(all, Param{Key: "query", Value: query})
	all = append(all, params...)
	return Endpoint(baseURL, "/search", all)
}

// Normalize applies Unicode NFC, trims, and collapses whitespace runs.
func Normalize(q string) string {
	return strings.Join(strings.Fields(norm.NFC.String(q)), " ")
}

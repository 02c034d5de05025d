package stub

import (
	"encoding/json"
	"errors"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/hyperifyio/heurisko/internal/search"
)

// DefaultPageSize is the number of results per page.
const DefaultPageSize = 10

// defaultStopWords is used when a store is loaded without its own list.
var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "he", "in",
	"is", "it", "of", "on", "that", "the", "this", "to", "was", "were", "with",
}

// Transcript is one fixture document: a relative path and its timed words.
type Transcript struct {
	Path  string        `json:"path"`
	Words []search.Word `json:"words"`
}

// Store answers search requests from an in-memory set of transcripts.
// Transcript ids are their positions in Transcripts.
type Store struct {
	Transcripts []Transcript
	PageSize    int
	StopWords   []string
}

// LoadFile reads a JSON array of transcripts for offline development and tests.
func LoadFile(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("fixture path is empty")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ts []Transcript
	if err := json.Unmarshal(b, &ts); err != nil {
		return nil, err
	}
	return &Store{Transcripts: ts}, nil
}

// NormalizeWord keeps letters and digits, lowercased.
func NormalizeWord(w string) string {
	var b strings.Builder
	for _, r := range w {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

func (s *Store) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}

func (s *Store) stopWords() []string {
	if s.StopWords != nil {
		return s.StopWords
	}
	return defaultStopWords
}

func (s *Store) isStopWord(w string) bool {
	for _, sw := range s.stopWords() {
		if sw == w {
			return true
		}
	}
	return false
}

// terms splits q on whitespace and normalizes each word, dropping empties.
func terms(q string) []string {
	fields := strings.Fields(q)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if n := NormalizeWord(f); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Search returns the page of result windows for q. Each window spans context
// words either side of the matched positions it covers; overlapping windows
// are merged. Windows matching more distinct terms rank first.
func (s *Store) Search(q string, context, page int, removeStopWords bool) []search.QueryResult {
	want := map[string]bool{}
	for _, t := range terms(q) {
		if removeStopWords && s.isStopWord(t) {
			continue
		}
		want[t] = true
	}
	if len(want) == 0 {
		return paginate(nil, page, s.pageSize())
	}
	var all []search.QueryResult
	for _, tr := range s.Transcripts {
		var hits []int
		for i, w := range tr.Words {
			if want[NormalizeWord(w.Text)] {
				hits = append(hits, i)
			}
		}
		all = append(all, windows(tr, hits, context)...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].UniqueCount != all[j].UniqueCount {
			return all[i].UniqueCount > all[j].UniqueCount
		}
		return all[i].ElementCount > all[j].ElementCount
	})
	return paginate(all, page, s.pageSize())
}

// SearchExact returns windows where the query terms appear consecutively.
// It returns nil, served as JSON null, when the phrase is empty or one of its
// words never occurs in any transcript.
func (s *Store) SearchExact(q string, context, page int) []search.QueryResult {
	phrase := terms(q)
	if len(phrase) == 0 {
		return nil
	}
	vocab := s.vocabulary()
	for _, t := range phrase {
		if !inVocabulary(vocab, t) {
			return nil
		}
	}
	var all []search.QueryResult
	for _, tr := range s.Transcripts {
		var hits []int
		for i := 0; i+len(phrase) <= len(tr.Words); i++ {
			ok := true
			for k, t := range phrase {
				if NormalizeWord(tr.Words[i+k].Text) != t {
					ok = false
					break
				}
			}
			if ok {
				for k := range phrase {
					hits = append(hits, i+k)
				}
			}
		}
		all = append(all, windows(tr, hits, context)...)
	}
	return paginate(all, page, s.pageSize())
}

// windows groups sorted hit positions into merged context windows.
func windows(tr Transcript, hits []int, context int) []search.QueryResult {
	if len(hits) == 0 {
		return nil
	}
	if context < 0 {
		context = 0
	}
	if context > len(tr.Words) {
		context = len(tr.Words)
	}
	var out []search.QueryResult
	lo, hi := hits[0]-context, hits[0]+context
	group := []int{hits[0]}
	flush := func() {
		out = append(out, window(tr, max(lo, 0), min(hi, len(tr.Words)-1), group))
	}
	for _, h := range hits[1:] {
		if h-context <= hi+1 {
			hi = h + context
			group = append(group, h)
			continue
		}
		flush()
		lo, hi = h-context, h+context
		group = []int{h}
	}
	flush()
	return out
}

func window(tr Transcript, lo, hi int, hits []int) search.QueryResult {
	matched := make(map[int]bool, len(hits))
	unique := map[string]bool{}
	for _, h := range hits {
		matched[h] = true
		unique[NormalizeWord(tr.Words[h].Text)] = true
	}
	words := make([]search.Word, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		w := tr.Words[i]
		w.Matched = matched[i]
		words = append(words, w)
	}
	return search.QueryResult{
		TranscriptID: tr.Path,
		Words:        words,
		UniqueCount:  len(unique),
		ElementCount: len(hits),
	}
}

func paginate(all []search.QueryResult, page, size int) []search.QueryResult {
	out := make([]search.QueryResult, 0, min(size, len(all)))
	// Compare before multiplying so huge page numbers cannot overflow.
	if len(all) == 0 || page < 0 || page > (len(all)-1)/size {
		return out
	}
	start := page * size
	end := start + min(size, len(all)-start)
	return append(out, all[start:end]...)
}

// IDs maps transcript ids to their paths.
func (s *Store) IDs() map[string]string {
	out := make(map[string]string, len(s.Transcripts))
	for i, tr := range s.Transcripts {
		out[strconv.Itoa(i)] = tr.Path
	}
	return out
}

// Transcript returns the words stored at path.
func (s *Store) Transcript(path string) ([]search.Word, bool) {
	for _, tr := range s.Transcripts {
		if tr.Path == path {
			return tr.Words, true
		}
	}
	return nil, false
}

// Diagnose reports how q would be matched. Stop words are ignored; the other
// words are kept when they occur in some transcript and unmatched otherwise.
// Every query word lists the vocabulary words it is a prefix of.
func (s *Store) Diagnose(q string) search.Diagnostics {
	words := terms(q)
	d := search.Diagnostics{
		Words:          words,
		IgnoredWords:   []string{},
		KeptWords:      []string{},
		UnmatchedWords: []string{},
		SimilarWords:   map[string][]string{},
	}
	vocab := s.vocabulary()
	for _, w := range words {
		switch {
		case s.isStopWord(w):
			d.IgnoredWords = append(d.IgnoredWords, w)
		case inVocabulary(vocab, w):
			d.KeptWords = append(d.KeptWords, w)
		default:
			d.UnmatchedWords = append(d.UnmatchedWords, w)
		}
		similar := []string{}
		for i := sort.SearchStrings(vocab, w); i < len(vocab) && strings.HasPrefix(vocab[i], w); i++ {
			if vocab[i] != w {
				similar = append(similar, vocab[i])
			}
		}
		d.SimilarWords[w] = similar
	}
	return d
}

// inVocabulary reports whether w is in the sorted vocab.
func inVocabulary(vocab []string, w string) bool {
	i := sort.SearchStrings(vocab, w)
	return i < len(vocab) && vocab[i] == w
}

func (s *Store) vocabulary() []string {
	seen := map[string]bool{}
	var out []string
	for _, tr := range s.Transcripts {
		for _, w := range tr.Words {
			n := NormalizeWord(w.Text)
			if n != "" && !seen[n] {
				seen[n] = true
				out = append(out, n)
			}
		}
	}
	sort.Strings(out)
	return out
}

package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hyperifyio/heurisko/internal/search"
)

func words(pairs ...any) []search.Word {
	out := make([]search.Word, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, search.Word{Text: pairs[i].(string), Matched: pairs[i+1].(bool)})
	}
	return out
}

func TestLine_HighlightsMatchedWord(t *testing.T) {
	r := &Renderer{Color: "red"}
	got, err := r.Line(search.QueryResult{TranscriptID: "t1", Words: words("hello", true, "world", false)})
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	want := "\x1b[31mhello\x1b[0m world"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

func TestLine_EmptyResultIsEmptyLine(t *testing.T) {
	r := &Renderer{Color: "green"}
	got, err := r.Line(search.QueryResult{TranscriptID: "t"})
	if err != nil || got != "" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestLine_UnmatchedIsPlain(t *testing.T) {
	r := &Renderer{Color: "blue"}
	got, err := r.Line(search.QueryResult{Words: words("by", false, "this", false, "it", false)})
	if err != nil {
		t.Fatalf("line: %v", err)
	}
	if got != "by this it" || strings.Contains(got, "\x1b") {
		t.Fatalf("unexpected %q", got)
	}
}

func TestLine_InvalidColor(t *testing.T) {
	r := &Renderer{Color: "chartreuse"}
	got, err := r.Line(search.QueryResult{Words: words("a", true)})
	var ice *InvalidColorName
	if !errors.As(err, &ice) || ice.Name != "chartreuse" {
		t.Fatalf("expected InvalidColorName, got %v", err)
	}
	if strings.Contains(got, "\x1b") {
		t.Fatalf("escape codes emitted on error: %q", got)
	}
	for _, name := range Palette() {
		if !strings.Contains(err.Error(), name) {
			t.Fatalf("diagnostic does not list %q: %s", name, err)
		}
	}
}

func TestPalette_SixteenColors(t *testing.T) {
	names := Palette()
	if len(names) != 16 {
		t.Fatalf("expected 16 colors, got %d", len(names))
	}
	for _, n := range names {
		if _, err := Escape(n); err != nil {
			t.Fatalf("palette name %q rejected: %v", n, err)
		}
	}
	if esc, _ := Escape("Bright_Cyan"); esc != "\x1b[96m" {
		t.Fatalf("case-insensitive lookup failed: %q", esc)
	}
}

func TestLine_NoColorSkipsValidation(t *testing.T) {
	r := &Renderer{Color: "nope", NoColor: true}
	got, err := r.Line(search.QueryResult{Words: words("a", true, "b", false)})
	if err != nil || got != "a b" {
		t.Fatalf("got %q err=%v", got, err)
	}
}

func TestLine_TimingPrefix(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	r := &Renderer{NoColor: true, ShowTiming: true}
	res := search.QueryResult{TranscriptID: "s/1", Words: []search.Word{
		{Text: "in", Start: f(1.5), End: f(1.7)},
		{Text: "him", Start: f(1.7), End: f(2)},
	}}
	got, _ := r.Line(res)
	if got != "[s/1: 1.5..2] in him" {
		t.Fatalf("got %q", got)
	}
}

func TestRender_Limit(t *testing.T) {
	results := make([]search.QueryResult, 15)
	for i := range results {
		results[i] = search.QueryResult{Words: words("w", false)}
	}
	r := &Renderer{Color: "red", Limit: 10}
	lines, err := r.Render(results)
	if err != nil || len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d err=%v", len(lines), err)
	}
	r.Limit = 0
	lines, _ = r.Render(results)
	if len(lines) != 15 {
		t.Fatalf("expected all 15 lines, got %d", len(lines))
	}
}

func TestPrint_WritesNothingOnError(t *testing.T) {
	var buf bytes.Buffer
	r := &Renderer{Color: "mauve"}
	if err := r.Print(&buf, []search.QueryResult{{Words: words("x", true)}}); err == nil {
		t.Fatalf("expected error")
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestHTML_MarksMatchedWords(t *testing.T) {
	var buf bytes.Buffer
	err := HTML(&buf, []search.QueryResult{{TranscriptID: "t1", Words: words("hello", true, "<world>", false)}})
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	want := `<div class="results"><div class="result" data-transcript="t1"><mark>hello</mark> &lt;world&gt;</div></div>`
	if buf.String() != want {
		t.Fatalf("got %s\nwant %s", buf.String(), want)
	}
}

func TestPDF_WritesDocument(t *testing.T) {
	var buf bytes.Buffer
	err := PDF(&buf, "by this it is evident", []search.QueryResult{{TranscriptID: "t1", Words: words("by", true, "this", false)}})
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

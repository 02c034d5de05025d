package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hyperifyio/heurisko/internal/search"
)

// Reset ends any active SGR styling.
const Reset = "\x1b[0m"

// palette maps the supported color names to their SGR foreground codes.
var palette = map[string]int{
	"black":          30,
	"red":            31,
	"green":          32,
	"yellow":         33,
	"blue":           34,
	"magenta":        35,
	"cyan":           36,
	"white":          37,
	"bright_black":   90,
	"bright_red":     91,
	"bright_green":   92,
	"bright_yellow":  93,
	"bright_blue":    94,
	"bright_magenta": 95,
	"bright_cyan":    96,
	"bright_white":   97,
}

// paletteOrder lists palette names in code order for diagnostics.
var paletteOrder = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white",
	"bright_black", "bright_red", "bright_green", "bright_yellow",
	"bright_blue", "bright_magenta", "bright_cyan", "bright_white",
}

// Palette returns the supported color names.
func Palette() []string {
	return append([]string(nil), paletteOrder...)
}

// InvalidColorName is returned when a highlight color is not in the palette.
type InvalidColorName struct {
	Name string
}

func (e *InvalidColorName) Error() string {
	return fmt.Sprintf("invalid color name %q: supported colors are %s", e.Name, strings.Join(paletteOrder, ", "))
}

// Escape returns the SGR sequence that sets the named foreground color.
func Escape(name string) (string, error) {
	code, ok := palette[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", &InvalidColorName{Name: name}
	}
	return fmt.Sprintf("\x1b[%dm", code), nil
}

// Colorize wraps text in the named color followed by a reset.
func Colorize(text, name string) (string, error) {
	esc, err := Escape(name)
	if err != nil {
		return "", err
	}
	return esc + text + Reset, nil
}

// Renderer formats query results as terminal lines.
type Renderer struct {
	// Color names the palette entry used for matched words.
	Color string
	// NoColor emits matched words as plain text.
	NoColor bool
	// Limit caps how many results are rendered. Zero renders all.
	Limit int
	// ShowTiming prefixes each line with the transcript id and time span.
	ShowTiming bool
}

// Line renders one result: its words joined by single spaces with matched
// words highlighted.
func (r *Renderer) Line(res search.QueryResult) (string, error) {
	var esc string
	if !r.NoColor {
		var err error
		if esc, err = Escape(r.Color); err != nil {
			return "", err
		}
	}
	var b strings.Builder
	if r.ShowTiming {
		b.WriteString(timingPrefix(res))
	}
	for i, w := range res.Words {
		if i > 0 {
			b.WriteByte(' ')
		}
		if w.Matched && esc != "" {
			b.WriteString(esc)
			b.WriteString(w.Text)
			b.WriteString(Reset)
			continue
		}
		b.WriteString(w.Text)
	}
	return b.String(), nil
}

// Render renders up to Limit results, one line each.
func (r *Renderer) Render(results []search.QueryResult) ([]string, error) {
	results = Cap(results, r.Limit)
	lines := make([]string, 0, len(results))
	for _, res := range results {
		line, err := r.Line(res)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// Print writes the rendered lines to w. Nothing is written when rendering fails.
func (r *Renderer) Print(w io.Writer, results []search.QueryResult) error {
	lines, err := r.Render(results)
	if err != nil {
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// Cap returns at most limit results; limit <= 0 means no cap.
func Cap(results []search.QueryResult, limit int) []search.QueryResult {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

func timingPrefix(res search.QueryResult) string {
	start, end, ok := res.Span()
	if !ok {
		return fmt.Sprintf("[%s] ", res.TranscriptID)
	}
	return fmt.Sprintf("[%s: %s..%s] ", res.TranscriptID, seconds(start), seconds(end))
}

func seconds(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/heurisko/internal/query"
	"github.com/hyperifyio/heurisko/internal/render"
	"github.com/hyperifyio/heurisko/internal/rewrite"
	"github.com/hyperifyio/heurisko/internal/search"
)

//go:generate mockgen -destination=mocks/mock_searcher.go -package=mocks github.com/hyperifyio/heurisko/internal/app Searcher

// Searcher is the search service as seen by the driver loops.
type Searcher interface {
	Search(ctx context.Context, q string, params query.Params) (search.Response, error)
	SearchExact(ctx context.Context, q string, page int) (search.Response, error)
	IDs(ctx context.Context) ([]search.TranscriptRef, error)
	Diagnostics(ctx context.Context, q string) (search.Diagnostics, error)
	Transcript(ctx context.Context, path string) ([]search.Word, error)
}

// ErrMissingArgument is returned when a one-shot mode has no positional argument.
var ErrMissingArgument = errors.New("missing argument")

// App runs one of the CLI modes against a Searcher.
type App struct {
	cfg      Config
	searcher Searcher
	renderer *render.Renderer
	rewriter *rewrite.Rewriter
	out      io.Writer

	// exported collects rendered results for the HTML/PDF exports.
	exported []search.QueryResult
}

// Option customizes an App.
type Option func(*App)

// WithSearcher replaces the HTTP search client.
func WithSearcher(s Searcher) Option { return func(a *App) { a.searcher = s } }

// WithOutput redirects result output, which defaults to stdout.
func WithOutput(w io.Writer) Option { return func(a *App) { a.out = w } }

// New validates cfg and wires the search client, renderer and optional rewriter.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	a := &App{
		cfg: cfg,
		searcher: &search.Client{
			BaseURL:    cfg.BaseURL,
			HTTPClient: newHTTPClient(),
			UserAgent:  cfg.UserAgent,
			Timeout:    cfg.Timeout,
		},
		renderer: &render.Renderer{
			Color:      cfg.Color,
			NoColor:    cfg.NoColor,
			ShowTiming: cfg.ShowTiming,
		},
		out: os.Stdout,
	}
	if cfg.Rewrite {
		a.rewriter = rewrite.NewOpenAI(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	}
	for _, o := range opts {
		o(a)
	}
	return a, nil
}

// Close writes any configured exports of the results seen during the run.
func (a *App) Close() error {
	var errs []error
	if a.cfg.HTMLPath != "" {
		if err := a.writeHTML(a.cfg.HTMLPath); err != nil {
			errs = append(errs, fmt.Errorf("html export: %w", err))
		}
	}
	if a.cfg.PDFPath != "" {
		if err := render.PDFFile(a.cfg.PDFPath, "heurisko results", a.exported); err != nil {
			errs = append(errs, fmt.Errorf("pdf export: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (a *App) writeHTML(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render.HTML(f, a.exported); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Run dispatches on cfg.Mode. in is only read in interactive mode.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	switch a.cfg.Mode {
	case ModeInteractive, "":
		return a.RunInteractive(ctx, in)
	case ModeBatch:
		return a.RunBatch(ctx)
	case ModeExact:
		return a.runExact(ctx)
	case ModeIDs:
		return a.runIDs(ctx)
	case ModeDiagnostics:
		return a.runDiagnostics(ctx)
	case ModeTranscript:
		return a.runTranscript(ctx)
	default:
		return fmt.Errorf("%w %q", ErrInvalidMode, a.cfg.Mode)
	}
}

// RunBatch pages through the configured batch query. A failed page is
// reported and the loop moves on.
func (a *App) RunBatch(ctx context.Context) error {
	a.renderer.Limit = a.cfg.BatchLimit
	for i := 0; i < a.cfg.Pages; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Page %d\n", i)
		params := query.Params{
			{Key: "page", Value: strconv.Itoa(i)},
			{Key: "context", Value: strconv.Itoa(a.cfg.BatchContext)},
		}
		_ = a.runQuery(ctx, a.cfg.BatchQuery, params)
	}
	return nil
}

// RunInteractive prompts for queries until "exit", end of input, or ctx is
// cancelled. A failed query is reported and the prompt re-displays.
func (a *App) RunInteractive(ctx context.Context, in io.Reader) error {
	a.renderer.Limit = a.cfg.Limit
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, errc := readLines(ctx, in)
	for {
		fmt.Fprint(a.out, "\nSearch: ")
		var line string
		var ok bool
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.out)
			return nil
		case line, ok = <-lines:
		}
		if !ok {
			fmt.Fprintln(a.out)
			select {
			case err := <-errc:
				return err
			default:
				return nil
			}
		}
		line = strings.TrimSuffix(line, "\r")
		if line == "exit" {
			return nil
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fmt.Fprintln(a.out)
		params := query.Params{
			{Key: "context", Value: strconv.Itoa(a.cfg.Context)},
			{Key: "remove_stop_words", Value: strconv.FormatBool(a.cfg.RemoveStopWords)},
		}
		_ = a.runQuery(ctx, a.prepare(ctx, line), params)
	}
}

// readLines feeds scanned lines to a channel so the prompt loop can also
// watch for cancellation.
func readLines(ctx context.Context, r io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()
	return lines, errc
}

// prepare applies the optional normalization and rewrite steps to raw input.
func (a *App) prepare(ctx context.Context, raw string) string {
	q := raw
	if a.cfg.Normalize {
		q = query.Normalize(q)
	}
	if a.rewriter != nil {
		q = a.rewriter.Rewrite(ctx, q)
	}
	return q
}

// runQuery executes one search and prints its timing and results. Errors are
// printed and returned for the caller to ignore or count.
func (a *App) runQuery(ctx context.Context, q string, params query.Params) error {
	resp, err := a.searcher.Search(ctx, q, params)
	return a.show(resp, err)
}

func (a *App) show(resp search.Response, err error) error {
	if err != nil {
		log.Warn().Err(err).Str("url", resp.URL).Str("request_id", resp.RequestID).Msg("query failed")
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "In %.2fms\n", resp.ElapsedMillis())
	if err := a.renderer.Print(a.out, resp.Results); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return err
	}
	a.exported = append(a.exported, render.Cap(resp.Results, a.renderer.Limit)...)
	return nil
}

func (a *App) arg() (string, error) {
	if len(a.cfg.Args) == 0 || strings.TrimSpace(a.cfg.Args[0]) == "" {
		return "", fmt.Errorf("mode %s: %w", a.cfg.Mode, ErrMissingArgument)
	}
	return strings.Join(a.cfg.Args, " "), nil
}

func (a *App) runExact(ctx context.Context) error {
	q, err := a.arg()
	if err != nil {
		return err
	}
	a.renderer.Limit = a.cfg.Limit
	resp, err := a.searcher.SearchExact(ctx, a.prepare(ctx, q), 0)
	return a.show(resp, err)
}

func (a *App) runIDs(ctx context.Context) error {
	refs, err := a.searcher.IDs(ctx)
	if err != nil {
		return err
	}
	for _, r := range refs {
		fmt.Fprintf(a.out, "%s\t%s\n", r.ID, r.Path)
	}
	return nil
}

func (a *App) runDiagnostics(ctx context.Context) error {
	q, err := a.arg()
	if err != nil {
		return err
	}
	d, err := a.searcher.Diagnostics(ctx, q)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "words:     %s\n", strings.Join(d.Words, " "))
	fmt.Fprintf(a.out, "kept:      %s\n", strings.Join(d.KeptWords, " "))
	fmt.Fprintf(a.out, "ignored:   %s\n", strings.Join(d.IgnoredWords, " "))
	fmt.Fprintf(a.out, "unmatched: %s\n", strings.Join(d.UnmatchedWords, " "))
	for _, w := range d.Words {
		if sim := d.SimilarWords[w]; len(sim) > 0 {
			fmt.Fprintf(a.out, "similar %s: %s\n", w, strings.Join(sim, " "))
		}
	}
	return nil
}

func (a *App) runTranscript(ctx context.Context) error {
	path, err := a.arg()
	if err != nil {
		return err
	}
	words, err := a.searcher.Transcript(ctx, path)
	if err != nil {
		return err
	}
	res := search.QueryResult{TranscriptID: path, Words: words}
	a.renderer.Limit = 0
	if err := a.renderer.Print(a.out, []search.QueryResult{res}); err != nil {
		return err
	}
	a.exported = append(a.exported, res)
	return nil
}

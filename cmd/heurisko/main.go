package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/heurisko/internal/app"
	"github.com/hyperifyio/heurisko/internal/render"
)

// Exit codes.
const (
	exitOK     = 0
	exitConfig = 1
	exitFailed = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, nil, os.Stderr)
	stop()
	os.Exit(code)
}

// options is the result of command-line parsing.
type options struct {
	cfg        app.Config
	configPath string
	// colorSet reports whether a color was requested explicitly, which keeps
	// highlighting on even when stdout is not a terminal.
	colorSet bool
}

// run parses args, runs the selected mode and returns the process exit code.
// A nil stdout means the real, color-capable terminal.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	setupLogging(stderr, false)

	if err := app.LoadEnvFiles(".env"); err != nil {
		log.Warn().Err(err).Msg("load .env")
	}
	opts, err := parseConfig(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "heurisko: %v\n", err)
		return exitConfig
	}
	setupLogging(stderr, opts.cfg.Verbose)

	cfg := opts.cfg
	appOpts := []app.Option{}
	if stdout == nil {
		if !opts.colorSet && !render.IsTerminal(os.Stdout) {
			cfg.NoColor = true
		}
		appOpts = append(appOpts, app.WithOutput(render.Stdout()))
	} else {
		appOpts = append(appOpts, app.WithOutput(stdout))
	}

	a, err := app.New(cfg, appOpts...)
	if err != nil {
		fmt.Fprintf(stderr, "heurisko: %v\n", err)
		return exitConfig
	}
	log.Debug().
		Str("version", app.BuildVersion).
		Str("commit", app.BuildCommit).
		Str("built", app.BuildDate).
		Str("mode", cfg.Mode).
		Str("url", cfg.BaseURL).
		Msg("starting")

	code := exitOK
	if err := a.Run(ctx, stdin); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Str("mode", cfg.Mode).Msg("run failed")
		fmt.Fprintf(stderr, "heurisko: %v\n", err)
		code = exitFailed
	}
	if err := a.Close(); err != nil {
		log.Error().Err(err).Msg("export failed")
		code = exitFailed
	}
	return code
}

func setupLogging(w io.Writer, verbose bool) {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// parseConfig layers defaults, the config file, the environment and flags, in
// increasing precedence. Flags are parsed twice: once to find -config, and
// again on top of the merged file and environment values so that only flags
// given explicitly override them.
func parseConfig(args []string, stderr io.Writer) (options, error) {
	var opts options

	probe := app.DefaultConfig()
	pre := flag.NewFlagSet("heurisko", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	bindFlags(pre, &probe, &opts.configPath)
	// Errors are reported by the second pass, which prints usage.
	_ = pre.Parse(args)

	cfg := app.DefaultConfig()
	if opts.configPath == "" {
		opts.configPath = os.Getenv("HEURISKO_CONFIG")
	}
	if opts.configPath != "" {
		fc, err := app.LoadConfigFile(opts.configPath)
		if err != nil {
			return opts, fmt.Errorf("config file: %w", err)
		}
		app.ApplyFileConfig(&cfg, fc)
		opts.colorSet = fc.Display.Color != ""
	}
	app.ApplyEnvOverrides(&cfg)
	if os.Getenv("HEURISKO_COLOR") != "" {
		opts.colorSet = true
	}

	fs := flag.NewFlagSet("heurisko", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: heurisko [flags] [query | path]\n\nModes: %s\n\nFlags:\n",
			strings.Join([]string{app.ModeInteractive, app.ModeBatch, app.ModeExact, app.ModeIDs, app.ModeDiagnostics, app.ModeTranscript}, ", "))
		fs.PrintDefaults()
	}
	bindFlags(fs, &cfg, &opts.configPath)
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "color" {
			opts.colorSet = true
		}
	})
	cfg.Args = fs.Args()
	opts.cfg = cfg
	return opts, nil
}

// bindFlags registers every flag against cfg, using cfg's current values as
// the defaults.
func bindFlags(fs *flag.FlagSet, cfg *app.Config, configPath *string) {
	fs.StringVar(configPath, "config", *configPath, "Path to a YAML or JSON config file")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Run mode: interactive, batch, exact, ids, diagnostics or transcript")
	fs.StringVar(&cfg.BaseURL, "base", cfg.BaseURL, "Search server base URL (HEURISKO_URL)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Per-request timeout; 0 disables")
	fs.StringVar(&cfg.UserAgent, "ua", cfg.UserAgent, "User-Agent for search requests")

	fs.StringVar(&cfg.Color, "color", cfg.Color, "Highlight color for matched words (HEURISKO_COLOR)")
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "Disable ANSI highlighting")
	fs.IntVar(&cfg.Limit, "limit", cfg.Limit, "Maximum results shown per interactive query; 0 shows all")
	fs.BoolVar(&cfg.ShowTiming, "timing", cfg.ShowTiming, "Prefix each result with its transcript and time span")

	fs.IntVar(&cfg.Pages, "pages", cfg.Pages, "Number of pages fetched in batch mode")
	fs.StringVar(&cfg.BatchQuery, "query", cfg.BatchQuery, "Query used in batch mode")
	fs.IntVar(&cfg.BatchContext, "batch.context", cfg.BatchContext, "Context window used in batch mode")
	fs.IntVar(&cfg.BatchLimit, "batch.limit", cfg.BatchLimit, "Maximum results shown per batch page; 0 shows all")

	fs.IntVar(&cfg.Context, "context", cfg.Context, "Context window used in interactive mode")
	fs.BoolVar(&cfg.RemoveStopWords, "remove-stop-words", cfg.RemoveStopWords, "Ask the server to drop stop words from interactive queries")
	fs.BoolVar(&cfg.Normalize, "normalize", cfg.Normalize, "Unicode-normalize and collapse whitespace in queries")

	fs.StringVar(&cfg.HTMLPath, "html", cfg.HTMLPath, "Write shown results to this HTML file on exit")
	fs.StringVar(&cfg.PDFPath, "pdf", cfg.PDFPath, "Write shown results to this PDF file on exit")

	fs.BoolVar(&cfg.Rewrite, "rewrite", cfg.Rewrite, "Rewrite queries with an OpenAI-compatible model")
	fs.StringVar(&cfg.LLMBaseURL, "llm.base", cfg.LLMBaseURL, "OpenAI-compatible base URL (LLM_BASE_URL)")
	fs.StringVar(&cfg.LLMModel, "llm.model", cfg.LLMModel, "Model name (LLM_MODEL)")
	fs.StringVar(&cfg.LLMAPIKey, "llm.key", cfg.LLMAPIKey, "API key (LLM_API_KEY)")

	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging")
}

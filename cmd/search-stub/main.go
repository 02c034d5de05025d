package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/heurisko/internal/stub"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = "127.0.0.1:8000"
	}
	var (
		fixture  string
		pageSize int
		verbose  bool
	)
	flag.StringVar(&addr, "addr", addr, "Listen address (ADDR)")
	flag.StringVar(&fixture, "fixture", os.Getenv("STUB_FIXTURE"), "JSON file of transcripts to serve (STUB_FIXTURE)")
	flag.IntVar(&pageSize, "page-size", stub.DefaultPageSize, "Results per page")
	flag.BoolVar(&verbose, "v", false, "Log every request")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	if fixture == "" {
		log.Fatal().Msg("a fixture file is required (-fixture or STUB_FIXTURE)")
	}
	store, err := stub.LoadFile(fixture)
	if err != nil {
		log.Fatal().Err(err).Str("fixture", fixture).Msg("load fixture")
	}
	store.PageSize = pageSize

	srv := &http.Server{
		Addr:              addr,
		Handler:           stub.NewHandler(store),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Info().Str("addr", addr).Int("transcripts", len(store.Transcripts)).Msg("serving")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("listen")
	}
}

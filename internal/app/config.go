package app

import (
	"time"

	"github.com/hyperifyio/heurisko/internal/query"
)

// Modes accepted by Config.Mode.
const (
	ModeInteractive = "interactive"
	ModeBatch       = "batch"
	ModeExact       = "exact"
	ModeIDs         = "ids"
	ModeDiagnostics = "diagnostics"
	ModeTranscript  = "transcript"
)

// Config holds runtime configuration for the application.
type Config struct {
	Mode string `validate:"oneof=interactive batch exact ids diagnostics transcript"`

	// Server
	BaseURL   string        `validate:"required,url"`
	Timeout   time.Duration `validate:"gte=0"`
	UserAgent string

	// Display
	Color      string `validate:"palette"`
	NoColor    bool
	Limit      int `validate:"gte=0"`
	ShowTiming bool

	// Batch
	BatchQuery   string `validate:"required_if=Mode batch"`
	Pages        int    `validate:"gte=0"`
	BatchContext int    `validate:"gte=0"`
	BatchLimit   int    `validate:"gte=0"`

	// Interactive
	Context         int `validate:"gte=0"`
	RemoveStopWords bool
	Normalize       bool

	// Export
	HTMLPath string
	PDFPath  string

	// Query rewriting
	Rewrite    bool
	LLMBaseURL string
	LLMModel   string `validate:"required_if=Rewrite true"`
	LLMAPIKey  string

	Verbose bool

	// Args holds positional arguments; one-shot modes read their query or
	// transcript path from Args[0].
	Args []string
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Mode:         ModeInteractive,
		BaseURL:      query.DefaultBaseURL,
		Timeout:      10 * time.Second,
		UserAgent:    "heurisko/" + BuildVersion,
		Color:        "red",
		Limit:        10,
		BatchQuery:   "by this it is evident",
		Pages:        20,
		BatchContext: 3,
		Context:      20,
	}
}

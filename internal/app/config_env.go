package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables that are
// set. It runs after the config file so env takes precedence over the file
// while flags remain highest precedence.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("HEURISKO_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("HEURISKO_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("HEURISKO_UA"); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv("HEURISKO_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv("HEURISKO_HTML"); v != "" {
		cfg.HTMLPath = v
	}
	if v := os.Getenv("HEURISKO_PDF"); v != "" {
		cfg.PDFPath = v
	}

	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}

	setInt := func(dst *int, envKey string) {
		if s := strings.TrimSpace(os.Getenv(envKey)); s != "" {
			if n, err := strconv.Atoi(s); err == nil && n >= 0 {
				*dst = n
			}
		}
	}
	setInt(&cfg.Limit, "HEURISKO_LIMIT")
	setInt(&cfg.Context, "HEURISKO_CONTEXT")
	setInt(&cfg.Pages, "HEURISKO_PAGES")

	if s := os.Getenv("HEURISKO_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.Timeout = d
		}
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.NoColor, "HEURISKO_NO_COLOR")
	setBool(&cfg.ShowTiming, "HEURISKO_TIMING")
	setBool(&cfg.RemoveStopWords, "HEURISKO_REMOVE_STOP_WORDS")
	setBool(&cfg.Normalize, "HEURISKO_NORMALIZE")
	setBool(&cfg.Rewrite, "HEURISKO_REWRITE")
	setBool(&cfg.Verbose, "VERBOSE")

	// https://no-color.org: any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}
}

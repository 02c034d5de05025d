package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema. Pointer fields
// tell an explicit zero or false apart from an absent key.
type FileConfig struct {
	Mode    string `yaml:"mode" json:"mode"`
	Verbose *bool  `yaml:"verbose" json:"verbose"`

	Server struct {
		URL string `yaml:"url" json:"url"`
		// Timeout is a Go duration string such as "10s"; "0" disables it.
		Timeout   string `yaml:"timeout" json:"timeout"`
		UserAgent string `yaml:"userAgent" json:"userAgent"`
	} `yaml:"server" json:"server"`

	Display struct {
		Color   string `yaml:"color" json:"color"`
		NoColor *bool  `yaml:"noColor" json:"noColor"`
		Limit   *int   `yaml:"limit" json:"limit"`
		Timing  *bool  `yaml:"timing" json:"timing"`
	} `yaml:"display" json:"display"`

	Batch struct {
		Query   string `yaml:"query" json:"query"`
		Pages   *int   `yaml:"pages" json:"pages"`
		Context *int   `yaml:"context" json:"context"`
		Limit   *int   `yaml:"limit" json:"limit"`
	} `yaml:"batch" json:"batch"`

	Interactive struct {
		Context         *int  `yaml:"context" json:"context"`
		RemoveStopWords *bool `yaml:"removeStopWords" json:"removeStopWords"`
		Normalize       *bool `yaml:"normalize" json:"normalize"`
	} `yaml:"interactive" json:"interactive"`

	Export struct {
		HTML string `yaml:"html" json:"html"`
		PDF  string `yaml:"pdf" json:"pdf"`
	} `yaml:"export" json:"export"`

	Rewrite struct {
		Enable *bool  `yaml:"enable" json:"enable"`
		Base   string `yaml:"base" json:"base"`
		Model  string `yaml:"model" json:"model"`
		Key    string `yaml:"key" json:"key"`
	} `yaml:"rewrite" json:"rewrite"`
}

// timeout parses Server.Timeout. ok is false when the key is absent.
func (fc FileConfig) timeout() (d time.Duration, ok bool, err error) {
	s := strings.TrimSpace(fc.Server.Timeout)
	if s == "" {
		return 0, false, nil
	}
	d, err = time.ParseDuration(s)
	if err != nil {
		return 0, false, fmt.Errorf("server.timeout: %w", err)
	}
	return d, true, nil
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	if _, _, err := fc.timeout(); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig overlays every value set in fc onto cfg, including explicit
// zeros and false.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	setStr := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	setBool := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}

	setStr(&cfg.Mode, fc.Mode)
	setBool(&cfg.Verbose, fc.Verbose)

	setStr(&cfg.BaseURL, fc.Server.URL)
	if d, ok, err := fc.timeout(); err == nil && ok {
		cfg.Timeout = d
	}
	setStr(&cfg.UserAgent, fc.Server.UserAgent)

	setStr(&cfg.Color, fc.Display.Color)
	setBool(&cfg.NoColor, fc.Display.NoColor)
	setInt(&cfg.Limit, fc.Display.Limit)
	setBool(&cfg.ShowTiming, fc.Display.Timing)

	setStr(&cfg.BatchQuery, fc.Batch.Query)
	setInt(&cfg.Pages, fc.Batch.Pages)
	setInt(&cfg.BatchContext, fc.Batch.Context)
	setInt(&cfg.BatchLimit, fc.Batch.Limit)

	setInt(&cfg.Context, fc.Interactive.Context)
	setBool(&cfg.RemoveStopWords, fc.Interactive.RemoveStopWords)
	setBool(&cfg.Normalize, fc.Interactive.Normalize)

	setStr(&cfg.HTMLPath, fc.Export.HTML)
	setStr(&cfg.PDFPath, fc.Export.PDF)

	setBool(&cfg.Rewrite, fc.Rewrite.Enable)
	setStr(&cfg.LLMBaseURL, fc.Rewrite.Base)
	setStr(&cfg.LLMModel, fc.Rewrite.Model)
	setStr(&cfg.LLMAPIKey, fc.Rewrite.Key)
}

package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hyperifyio/heurisko/internal/render"
)

// ErrInvalidMode is returned for an unknown -mode value.
var ErrInvalidMode = errors.New("invalid mode")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("palette", func(fl validator.FieldLevel) bool {
		_, err := render.Escape(fl.Field().String())
		return err == nil
	})
	return v
}

// ValidateConfig checks cfg before any request is made. Color errors are
// reported as *render.InvalidColorName unless color output is disabled.
func ValidateConfig(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Mode":
			return fmt.Errorf("config: %w %q (want one of %s)", ErrInvalidMode, cfg.Mode,
				strings.Join([]string{ModeInteractive, ModeBatch, ModeExact, ModeIDs, ModeDiagnostics, ModeTranscript}, ", "))
		case "Color":
			if cfg.NoColor {
				continue
			}
			return &render.InvalidColorName{Name: cfg.Color}
		}
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	if len(msgs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

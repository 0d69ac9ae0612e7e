package pipeline

import (
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/FuelLabs/sway-sub007/internal/config"
	"github.com/FuelLabs/sway-sub007/internal/diagnostics"
)

// Session is one compilation run: a correlation id, the loaded configuration
// and the run logger every stage writes through.
type Session struct {
	ID      uuid.UUID
	Config  config.Config
	Log     zerolog.Logger
	started time.Time
}

// NewSession builds a session logging to w at the configured level. An
// unknown level disables logging rather than failing the run.
func NewSession(cfg config.Config, w io.Writer) *Session {
	id := uuid.New()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.Disabled
	}
	log := zerolog.New(w).Level(level).With().Timestamp().Str("session", id.String()).Logger()
	return &Session{
		ID:      id,
		Config:  cfg,
		Log:     log,
		started: time.Now(),
	}
}

// Finish logs the run summary and fans the accumulated hard errors into one
// error value. A nil return means the program checked cleanly; consumers
// that generate code must not proceed otherwise.
func (s *Session) Finish(h *diagnostics.Handler) error {
	errs := h.Errors()
	s.Log.Info().
		Dur("elapsed", time.Since(s.started)).
		Int("errors", len(errs)).
		Int("warnings", len(h.Warnings())).
		Msg("session finished")

	var result *multierror.Error
	for _, d := range errs {
		result = multierror.Append(result, d)
	}
	return result.ErrorOrNil()
}

// Report renders the accumulated diagnostics to w, colorized when the
// configuration allows and w is a terminal.
func (s *Session) Report(w io.Writer, h *diagnostics.Handler) {
	diagnostics.Render(w, h.All(), s.Config.Color)
}

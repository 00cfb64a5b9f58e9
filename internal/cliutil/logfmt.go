package cliutil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/Paintersrp/launcher/internal/config"
	"github.com/Paintersrp/launcher/internal/launch"
)

// NewLogger builds the launcher's diagnostic logger on w. With the auto format
// a terminal gets zerolog's console output and anything else gets JSON lines.
func NewLogger(w io.Writer, cfg config.LogConfig, invocation string) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("log level: %w", err)
	}

	out := w
	tty := isTerminal(w)
	switch cfg.Format {
	case config.LogFormatConsole:
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: !tty}
	case config.LogFormatJSON:
	case config.LogFormatAuto, "":
		if tty {
			out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
		}
	default:
		return zerolog.Nop(), fmt.Errorf("log format: unsupported format %q", cfg.Format)
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if invocation != "" {
		ctx = ctx.Str("invocation", invocation)
	}
	return ctx.Logger(), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LogEvents returns a launch observer that records lifecycle transitions.
// Failures are logged at debug level only; the CLI reports them itself.
func LogEvents(logger zerolog.Logger) launch.Observer {
	return func(evt launch.Event) {
		switch evt.State {
		case launch.StateSpawning:
			logger.Debug().Strs("argv", RedactArgs(evt.Spec)).Msg("spawning child")
		case launch.StateRunning:
			logger.Debug().Int("pid", evt.PID).Msg("child running")
		case launch.StateAwaited:
			logger.Info().
				Int("pid", evt.PID).
				Bool("success", evt.Outcome.Success()).
				Str("outcome", evt.Outcome.String()).
				Msg("child terminated")
		case launch.StateFailed:
			logger.Debug().Err(evt.Err).Int("pid", evt.PID).Msg("invocation failed")
		default:
			logger.Trace().Str("state", string(evt.State)).Msg("lifecycle")
		}
	}
}

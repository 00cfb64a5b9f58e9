package launch

import (
	"fmt"
	"io"
	"os"
)

// DefaultCompletionMessage is announced once the child has terminated.
const DefaultCompletionMessage = "Voila !!!"

// Reporter announces that an invocation has completed.
type Reporter interface {
	Report(outcome ExitOutcome) error
}

// TextReporter writes a blank line followed by Message. The blank line keeps
// the announcement apart from child output that did not end in a newline.
type TextReporter struct {
	Out         io.Writer
	Message     string
	ShowOutcome bool
}

// Report writes the completion line whatever the outcome was.
func (r TextReporter) Report(outcome ExitOutcome) error {
	out := r.Out
	if out == nil {
		out = os.Stdout
	}
	msg := r.Message
	if msg == "" {
		msg = DefaultCompletionMessage
	}
	if r.ShowOutcome {
		msg = fmt.Sprintf("%s (%s)", msg, outcome)
	}
	if _, err := fmt.Fprintf(out, "\n%s\n", msg); err != nil {
		return fmt.Errorf("write completion message: %w", err)
	}
	return nil
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(outcome ExitOutcome) error

// Report calls f(outcome).
func (f ReporterFunc) Report(outcome ExitOutcome) error {
	return f(outcome)
}

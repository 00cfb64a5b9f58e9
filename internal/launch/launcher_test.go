package launch

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

type recorder struct {
	events []Event
}

func (r *recorder) observe(evt Event) {
	r.events = append(r.events, evt)
}

func (r *recorder) states() []State {
	states := make([]State, 0, len(r.events))
	for _, evt := range r.events {
		states = append(states, evt.State)
	}
	return states
}

func TestRunWithoutArgsFailsBeforeSpawning(t *testing.T) {
	rec := &recorder{}
	var stdout bytes.Buffer
	l := New(WithStdio(Stdio{Stdout: &stdout}), WithObserver(rec.observe))

	_, err := l.Run(nil)
	var usageErr *UsageError
	if !errors.As(err, &usageErr) {
		t.Fatalf("expected *UsageError, got %v", err)
	}

	want := []State{StateValidating, StateFailed}
	if got := rec.states(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected states: got %v want %v", got, want)
	}
	if stdout.Len() != 0 {
		t.Fatalf("completion must not be announced on usage errors, got %q", stdout.String())
	}
}

func TestRunEchoReportsAfterChildOutput(t *testing.T) {
	skipOnWindows(t)

	rec := &recorder{}
	var stdout, stderr bytes.Buffer
	l := New(WithStdio(Stdio{Stdout: &stdout, Stderr: &stderr}), WithObserver(rec.observe))

	outcome, err := l.Run([]string{"echo", "hello"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !outcome.Success() {
		t.Fatalf("expected success, got %s", outcome)
	}
	if got, want := stdout.String(), "hello\n\nVoila !!!\n"; got != want {
		t.Fatalf("unexpected stdout: got %q want %q", got, want)
	}

	want := []State{StateValidating, StateSpawning, StateRunning, StateAwaited, StateDone}
	if got := rec.states(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected states: got %v want %v", got, want)
	}

	running := 0
	for _, evt := range rec.events {
		if evt.State == StateRunning {
			running++
			if evt.PID <= 0 {
				t.Fatalf("running event without pid: %+v", evt)
			}
		}
	}
	if running != 1 {
		t.Fatalf("expected exactly one child, saw %d running events", running)
	}
}

func TestRunReportsOnlyAfterChildTerminates(t *testing.T) {
	skipOnWindows(t)

	marker := filepath.Join(t.TempDir(), "finished")
	reported := false
	reporter := ReporterFunc(func(outcome ExitOutcome) error {
		reported = true
		if _, err := os.Stat(marker); err != nil {
			t.Errorf("completion reported before the child finished: %v", err)
		}
		return nil
	})

	l := New(WithStdio(Stdio{Stdout: &bytes.Buffer{}}), WithReporter(reporter))
	if _, err := l.Run([]string{"/bin/sh", "-c", "sleep 0.2; touch " + marker}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !reported {
		t.Fatalf("expected completion to be reported")
	}
}

func TestRunMissingBinaryStillReports(t *testing.T) {
	skipOnWindows(t)

	var stdout, stderr bytes.Buffer
	l := New(WithStdio(Stdio{Stdout: &stdout, Stderr: &stderr}))

	outcome, err := l.Run([]string{"/no/such/binary"})
	if err != nil {
		t.Fatalf("a missing binary is a child failure, not a launcher error: %v", err)
	}
	if outcome.Code != ChildFailureStatus {
		t.Fatalf("expected child status %d, got %s", ChildFailureStatus, outcome)
	}
	if !strings.Contains(stderr.String(), "/no/such/binary") {
		t.Fatalf("expected a diagnostic naming the binary, got %q", stderr.String())
	}
	if stdout.String() != "\nVoila !!!\n" {
		t.Fatalf("expected completion line, got %q", stdout.String())
	}
}

func TestRunReportFailureEndsInFailedState(t *testing.T) {
	skipOnWindows(t)

	rec := &recorder{}
	reportErr := errors.New("stdout closed")
	l := New(
		WithStdio(Stdio{Stdout: &bytes.Buffer{}}),
		WithReporter(ReporterFunc(func(ExitOutcome) error { return reportErr })),
		WithObserver(rec.observe),
	)

	_, err := l.Run([]string{"true"})
	if !errors.Is(err, reportErr) {
		t.Fatalf("expected report error, got %v", err)
	}
	last := rec.events[len(rec.events)-1]
	if last.State != StateFailed || !errors.Is(last.Err, reportErr) {
		t.Fatalf("unexpected final event: %+v", last)
	}
}

func TestTextReporterShowsOutcome(t *testing.T) {
	var out bytes.Buffer
	r := TextReporter{Out: &out, Message: "done", ShowOutcome: true}
	if err := r.Report(ExitOutcome{Code: 3}); err != nil {
		t.Fatalf("Report returned error: %v", err)
	}
	if got, want := out.String(), "\ndone (exit status 3)\n"; got != want {
		t.Fatalf("unexpected report: got %q want %q", got, want)
	}
}

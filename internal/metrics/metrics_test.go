package metrics_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/Paintersrp/launcher/internal/launch"
	"github.com/Paintersrp/launcher/internal/metrics"
)

func invocationCount(t *testing.T, result string) float64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != "launcher_invocations_total" {
			continue
		}
		for _, m := range family.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "result" && label.GetValue() == result {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRecorderCountsCompletedInvocation(t *testing.T) {
	before := invocationCount(t, metrics.ResultCompleted)

	rec := metrics.NewRecorder()
	start := time.Now()
	rec.Observe(launch.Event{Timestamp: start, State: launch.StateRunning, PID: 42})
	rec.Observe(launch.Event{Timestamp: start.Add(50 * time.Millisecond), State: launch.StateAwaited, Outcome: launch.ExitOutcome{Code: 3}})
	rec.Observe(launch.Event{Timestamp: start.Add(60 * time.Millisecond), State: launch.StateDone})

	if got := invocationCount(t, metrics.ResultCompleted); got != before+1 {
		t.Fatalf("expected completed count %v, got %v", before+1, got)
	}

	count, err := testutil.GatherAndCount(metrics.Registry(), "launcher_child_runtime_seconds")
	if err != nil {
		t.Fatalf("count runtime histogram: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one runtime histogram, got %d", count)
	}
}

func TestRecorderTracksSignaledExitStatus(t *testing.T) {
	rec := metrics.NewRecorder()
	rec.Observe(launch.Event{Timestamp: time.Now(), State: launch.StateAwaited, Outcome: launch.ExitOutcome{Signaled: true, Signal: syscall.Signal(15)}})

	families, err := metrics.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() == "launcher_child_exit_status" {
			if got := family.GetMetric()[0].GetGauge().GetValue(); got != 143 {
				t.Fatalf("expected exit status 143, got %v", got)
			}
			return
		}
	}
	t.Fatalf("launcher_child_exit_status not exported")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, metrics.ResultCompleted},
		{&launch.UsageError{}, metrics.ResultUsageError},
		{&launch.SpawnError{Err: syscall.EAGAIN}, metrics.ResultSpawnError},
		{fmt.Errorf("run: %w", &launch.WaitError{Err: launch.ErrHandleConsumed}), metrics.ResultWaitError},
		{errors.New("write completion message: broken pipe"), metrics.ResultReportError},
	}
	for _, tc := range tests {
		if got := metrics.Classify(tc.err); got != tc.want {
			t.Fatalf("Classify(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	metrics.EmitBuildInfo()
	metrics.NewRecorder().Observe(launch.Event{State: launch.StateFailed, Err: &launch.UsageError{}})

	path := filepath.Join(t.TempDir(), "launcher.prom")
	if err := metrics.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	body := string(data)
	if !strings.Contains(body, `launcher_invocations_total{result="usage_error"}`) {
		t.Fatalf("expected usage error counter in textfile:\n%s", body)
	}
	if !strings.Contains(body, "launcher_build_info{") || !strings.Contains(body, "go_version=") {
		t.Fatalf("expected build info in textfile:\n%s", body)
	}
}

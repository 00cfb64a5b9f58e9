package metrics

import (
	"errors"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Paintersrp/launcher/internal/launch"
)

// Invocation results recorded by the invocations counter.
const (
	ResultCompleted   = "completed"
	ResultUsageError  = "usage_error"
	ResultSpawnError  = "spawn_error"
	ResultWaitError   = "wait_error"
	ResultReportError = "report_error"
)

var (
	registry = prometheus.NewRegistry()

	invocations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "launcher",
		Name:      "invocations_total",
		Help:      "Launcher invocations by final result.",
	}, []string{"result"})

	childExits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "launcher",
		Name:      "child_exits_total",
		Help:      "Terminated children by how they ended (exited or signaled).",
	}, []string{"kind"})

	childExitStatus = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "launcher",
		Name:      "child_exit_status",
		Help:      "Exit status of the most recent child, 128+signal when signaled.",
	})

	childRuntime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "launcher",
		Name:      "child_runtime_seconds",
		Help:      "Wall time between spawning a child and observing its termination.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 4, 10),
	})

	buildInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "launcher",
		Name:      "build_info",
		Help:      "Build metadata for the running launcher binary.",
	}, []string{"go_version", "vcs", "vcs_revision", "vcs_time", "vcs_modified"})

	buildInfoOnce sync.Once
)

func init() {
	registry.MustRegister(invocations, childExits, childExitStatus, childRuntime, buildInfo)
}

// Registry returns the Prometheus registry containing all launcher metrics.
func Registry() *prometheus.Registry {
	return registry
}

// WriteTextfile writes the registry in the text exposition format to path,
// for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, registry)
}

// Recorder turns launch lifecycle events into metrics.
type Recorder struct {
	mu      sync.Mutex
	running time.Time
}

// NewRecorder returns a Recorder ready to be registered as a launch observer.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Observe implements launch.Observer.
func (r *Recorder) Observe(evt launch.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch evt.State {
	case launch.StateRunning:
		r.running = evt.Timestamp
	case launch.StateAwaited:
		if !r.running.IsZero() {
			childRuntime.Observe(evt.Timestamp.Sub(r.running).Seconds())
		}
		kind := "exited"
		if evt.Outcome.Signaled {
			kind = "signaled"
		}
		childExits.WithLabelValues(kind).Inc()
		childExitStatus.Set(float64(evt.Outcome.ExitStatus()))
	case launch.StateDone:
		invocations.WithLabelValues(ResultCompleted).Inc()
	case launch.StateFailed:
		invocations.WithLabelValues(Classify(evt.Err)).Inc()
	}
}

// Classify maps an invocation error to its result label.
func Classify(err error) string {
	var (
		usageErr *launch.UsageError
		spawnErr *launch.SpawnError
		waitErr  *launch.WaitError
	)
	switch {
	case err == nil:
		return ResultCompleted
	case errors.As(err, &usageErr):
		return ResultUsageError
	case errors.As(err, &spawnErr):
		return ResultSpawnError
	case errors.As(err, &waitErr):
		return ResultWaitError
	default:
		return ResultReportError
	}
}

// EmitBuildInfo publishes build metadata about the running binary.
func EmitBuildInfo() {
	buildInfoOnce.Do(func() {
		labels := prometheus.Labels{
			"go_version":   runtime.Version(),
			"vcs":          "",
			"vcs_revision": "",
			"vcs_time":     "",
			"vcs_modified": "",
		}
		if info, ok := debug.ReadBuildInfo(); ok {
			if info.GoVersion != "" {
				labels["go_version"] = info.GoVersion
			}
			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs":
					labels["vcs"] = setting.Value
				case "vcs.revision":
					labels["vcs_revision"] = setting.Value
				case "vcs.time":
					labels["vcs_time"] = setting.Value
				case "vcs.modified":
					labels["vcs_modified"] = setting.Value
				}
			}
		}
		buildInfo.With(labels).Set(1)
	})
}

package launch

// Launcher runs one command per call to Run through the lifecycle
// validate, spawn, await, report.
type Launcher struct {
	stdio     Stdio
	reporter  Reporter
	observers []Observer
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithStdio sets the streams the child inherits.
func WithStdio(stdio Stdio) Option {
	return func(l *Launcher) {
		l.stdio = stdio
	}
}

// WithReporter replaces the default completion reporter.
func WithReporter(r Reporter) Option {
	return func(l *Launcher) {
		if r != nil {
			l.reporter = r
		}
	}
}

// WithObserver registers a callback for lifecycle events.
func WithObserver(o Observer) Option {
	return func(l *Launcher) {
		if o != nil {
			l.observers = append(l.observers, o)
		}
	}
}

// New constructs a Launcher. Without options the child inherits the parent's
// standard streams and completion is announced on stdout.
func New(opts ...Option) *Launcher {
	l := &Launcher{}
	for _, opt := range opts {
		opt(l)
	}
	if l.reporter == nil {
		l.reporter = TextReporter{Out: l.stdio.withDefaults().Stdout}
	}
	return l
}

// Run launches args as a child process, waits for it and reports completion.
// The child's own exit status is returned as an outcome; the error is non-nil
// only when the invocation itself failed (*UsageError, *SpawnError,
// *WaitError, or a failed completion report).
func (l *Launcher) Run(args []string) (ExitOutcome, error) {
	inv := &invocation{state: StateIdle, observers: l.observers}

	inv.enter(StateValidating, ExitOutcome{}, nil)
	spec, err := Validate(args)
	if err != nil {
		inv.enter(StateFailed, ExitOutcome{}, err)
		return ExitOutcome{}, err
	}
	inv.spec = spec

	inv.enter(StateSpawning, ExitOutcome{}, nil)
	child, err := Spawn(spec, l.stdio)
	if err != nil {
		inv.enter(StateFailed, ExitOutcome{}, err)
		return ExitOutcome{}, err
	}
	inv.pid = child.PID()
	inv.enter(StateRunning, ExitOutcome{}, nil)

	outcome, err := child.Wait()
	if err != nil {
		inv.enter(StateFailed, outcome, err)
		return outcome, err
	}
	inv.enter(StateAwaited, outcome, nil)

	if err := l.reporter.Report(outcome); err != nil {
		inv.enter(StateFailed, outcome, err)
		return outcome, err
	}
	inv.enter(StateDone, outcome, nil)
	return outcome, nil
}

package launch

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/docker/docker/pkg/reexec"
)

// Stdio holds the streams handed to the child. Nil fields fall back to the
// parent's own standard streams, which the child then inherits directly.
type Stdio struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (s Stdio) withDefaults() Stdio {
	if s.Stdin == nil {
		s.Stdin = os.Stdin
	}
	if s.Stdout == nil {
		s.Stdout = os.Stdout
	}
	if s.Stderr == nil {
		s.Stderr = os.Stderr
	}
	return s
}

// Child is the parent's handle on a spawned process. It is consumed by the
// first call to Wait.
type Child struct {
	spec    CommandSpec
	cmd     *exec.Cmd
	started time.Time

	mu       sync.Mutex
	consumed bool
}

// Spawn creates the child execution context for spec and returns its handle.
// Failure to resolve or execute spec's program is not detected here; the child
// reports it and exits with ChildFailureStatus.
func Spawn(spec CommandSpec, stdio Stdio) (*Child, error) {
	if len(spec) == 0 {
		return nil, &UsageError{}
	}

	args := append([]string{ChildInitName}, spec...)
	cmd := reexec.Command(args...)
	if cmd == nil {
		return nil, &SpawnError{Spec: spec, Err: errors.New("re-executing the launcher is not supported on this platform")}
	}

	stdio = stdio.withDefaults()
	cmd.Stdin = stdio.Stdin
	cmd.Stdout = stdio.Stdout
	cmd.Stderr = stdio.Stderr

	if err := cmd.Start(); err != nil {
		return nil, &SpawnError{Spec: spec, Err: err}
	}

	return &Child{
		spec:    spec,
		cmd:     cmd,
		started: time.Now(),
	}, nil
}

// PID returns the operating system process id of the child.
func (c *Child) PID() int {
	if c == nil || c.cmd == nil || c.cmd.Process == nil {
		return 0
	}
	return c.cmd.Process.Pid
}

// Spec returns the command the child was spawned for.
func (c *Child) Spec() CommandSpec {
	return c.spec
}

// Started returns when the child was created.
func (c *Child) Started() time.Time {
	return c.started
}

// Wait blocks until the child has terminated and returns how it ended. A
// non-zero exit or a signal is an outcome, not an error. Wait consumes the
// handle: any later call fails with ErrHandleConsumed.
func (c *Child) Wait() (ExitOutcome, error) {
	c.mu.Lock()
	if c.consumed {
		c.mu.Unlock()
		return ExitOutcome{}, &WaitError{PID: c.PID(), Err: ErrHandleConsumed}
	}
	c.consumed = true
	c.mu.Unlock()

	err := c.cmd.Wait()
	state := c.cmd.ProcessState
	if state == nil {
		if err == nil {
			err = errors.New("no process state")
		}
		return ExitOutcome{}, &WaitError{PID: c.PID(), Err: err}
	}

	outcome := outcomeFromState(state)
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		// The child is gone but copying one of its streams failed.
		return outcome, &WaitError{PID: c.PID(), Err: fmt.Errorf("child stdio: %w", err)}
	}
	return outcome, nil
}

package launch

import (
	"fmt"
	"os"
	"syscall"
)

// signalExitBase is added to the signal number when a signalled child's
// outcome has to be expressed as an exit status.
const signalExitBase = 128

// ExitOutcome is how a child terminated: a normal exit with Code, or
// termination by Signal when Signaled is set.
type ExitOutcome struct {
	Code     int
	Signaled bool
	Signal   syscall.Signal
}

// Success reports whether the child exited normally with status zero.
func (o ExitOutcome) Success() bool {
	return !o.Signaled && o.Code == 0
}

// ExitStatus folds the outcome into a single process exit status using the
// shell convention of 128+signal for signalled children.
func (o ExitOutcome) ExitStatus() int {
	if o.Signaled {
		return signalExitBase + int(o.Signal)
	}
	return o.Code
}

func (o ExitOutcome) String() string {
	if o.Signaled {
		return fmt.Sprintf("signal: %v", o.Signal)
	}
	return fmt.Sprintf("exit status %d", o.Code)
}

func outcomeFromState(state *os.ProcessState) ExitOutcome {
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitOutcome{Signaled: true, Signal: ws.Signal()}
	}
	return ExitOutcome{Code: state.ExitCode()}
}

//go:build !unix

package launch

import (
	"errors"
	"os"
	"os/exec"
)

// Replace runs the program named by spec and exits with its status. Without
// execve the child cannot swap its own image, so it runs the target with the
// same streams and mirrors its exit instead.
//
// Replace only returns when the program could not be started, so the returned
// error is never nil.
func Replace(spec CommandSpec) *ReplaceError {
	path, err := lookPath(spec.Name())
	if err != nil {
		return &ReplaceError{Name: spec.Name(), Err: err}
	}

	cmd := exec.Command(path, spec.Args()...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return &ReplaceError{Name: spec.Name(), Err: err}
	}
	if err := cmd.Wait(); err != nil && cmd.ProcessState == nil {
		return &ReplaceError{Name: spec.Name(), Err: err}
	}
	os.Exit(cmd.ProcessState.ExitCode())
	return &ReplaceError{Name: spec.Name(), Err: errors.New("exit returned")}
}

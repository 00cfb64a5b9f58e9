//go:build unix

package launch

import (
	"os"

	"golang.org/x/sys/unix"
)

// Replace swaps the calling process image for the program named by spec.
// Standard streams and the environment are inherited unchanged.
//
// Replace only returns when the swap failed, so the returned error is never
// nil. The caller is expected to report it and exit immediately.
func Replace(spec CommandSpec) *ReplaceError {
	path, err := lookPath(spec.Name())
	if err != nil {
		return &ReplaceError{Name: spec.Name(), Err: err}
	}
	err = unix.Exec(path, spec.Argv(), os.Environ())
	return &ReplaceError{Name: spec.Name(), Err: err}
}

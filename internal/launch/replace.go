package launch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/docker/docker/pkg/reexec"
)

const (
	// ChildInitName is the reexec name under which the launcher binary runs
	// as the child execution context.
	ChildInitName = "launcher-exec"

	// ChildFailureStatus is the exit status of a child that could not become
	// the requested program.
	ChildFailureStatus = 1

	diagnosticPrefix = "launcher"
)

func init() {
	reexec.Register(ChildInitName, childMain)
}

// childMain is the entire life of the child before its image is replaced.
// It must never return into the caller of reexec.Init.
func childMain() {
	spec, err := Validate(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", diagnosticPrefix, err)
		os.Exit(ChildFailureStatus)
	}

	failure := Replace(spec)
	fmt.Fprintf(os.Stderr, "%s: %v\n", diagnosticPrefix, failure)
	os.Exit(ChildFailureStatus)
}

// lookPath resolves name the way execvp does. A match found through a
// relative PATH entry is accepted rather than rejected with exec.ErrDot.
func lookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err == nil {
		return path, nil
	}
	if errors.Is(err, exec.ErrDot) {
		return path, nil
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return "", execErr.Err
	}
	return "", err
}

// Package launch runs a single command as a child process and waits for it.
//
// The parent never forks its own image the way a C launcher would. Spawn
// re-executes the current binary under a registered reexec name; that helper
// process is the child execution context, and it replaces itself with the
// requested program via Replace. A missing or non-executable target is
// therefore only discovered inside the child, which reports it on its own
// stderr and exits with ChildFailureStatus. The parent sees that as an
// ordinary non-zero exit.
//
// Binaries that use this package must call reexec.Init before doing anything
// else in main, and test binaries must do the same in TestMain.
package launch

package launch

import "strings"

// CommandSpec is the program to run followed by its arguments. The first
// element is resolved through PATH unless it contains a slash.
type CommandSpec []string

// Validate turns the launcher's own arguments, without its program name, into
// a CommandSpec.
func Validate(args []string) (CommandSpec, error) {
	if len(args) == 0 {
		return nil, &UsageError{}
	}
	spec := make(CommandSpec, len(args))
	copy(spec, args)
	return spec, nil
}

// Name returns the executable name or path.
func (s CommandSpec) Name() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

// Args returns the arguments that follow the executable name.
func (s CommandSpec) Args() []string {
	if len(s) < 2 {
		return nil
	}
	return s[1:]
}

// Argv returns the full argument vector handed to the new program image,
// argv[0] included.
func (s CommandSpec) Argv() []string {
	return append([]string(nil), s...)
}

func (s CommandSpec) String() string {
	return strings.Join(s, " ")
}

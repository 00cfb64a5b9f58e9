package cliutil

import (
	"regexp"
	"strings"
)

const redactedPlaceholder = "[redacted]"

var secretNamePattern = regexp.MustCompile(`(?i)(passw(or)?d|secret|token|api[_-]?key|access[_-]?key|private[_-]?key|credentials?)$`)

// RedactArgs returns a copy of a command line with secret values masked so it
// can be logged. It recognizes KEY=VALUE assignments, --flag=value pairs and a
// secret flag followed by its value as the next argument.
func RedactArgs(args []string) []string {
	if len(args) == 0 {
		return nil
	}
	out := make([]string, len(args))
	maskNext := false
	for i, arg := range args {
		if maskNext {
			out[i] = redactedPlaceholder
			maskNext = false
			continue
		}
		if name, _, ok := strings.Cut(arg, "="); ok && isSecretName(name) {
			out[i] = name + "=" + redactedPlaceholder
			continue
		}
		out[i] = arg
		if strings.HasPrefix(arg, "-") && isSecretName(arg) {
			maskNext = true
		}
	}
	return out
}

func isSecretName(name string) bool {
	name = strings.TrimLeft(name, "-")
	if name == "" {
		return false
	}
	return secretNamePattern.MatchString(name)
}

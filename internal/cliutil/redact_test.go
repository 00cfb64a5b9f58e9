package cliutil

import (
	"reflect"
	"testing"
)

func TestRedactArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "plain", args: []string{"echo", "hello"}, want: []string{"echo", "hello"}},
		{name: "assignment", args: []string{"env", "DB_PASSWORD=hunter2", "run"}, want: []string{"env", "DB_PASSWORD=[redacted]", "run"}},
		{name: "flagEquals", args: []string{"cli", "--api-key=abc123"}, want: []string{"cli", "--api-key=[redacted]"}},
		{name: "flagSeparate", args: []string{"cli", "--token", "abc123", "--verbose"}, want: []string{"cli", "--token", "[redacted]", "--verbose"}},
		{name: "nonSecretAssignment", args: []string{"make", "TARGET=all"}, want: []string{"make", "TARGET=all"}},
		{name: "secretLookingCommand", args: []string{"token"}, want: []string{"token"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := RedactArgs(tc.args); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("RedactArgs(%q) = %q, want %q", tc.args, got, tc.want)
			}
		})
	}
}

func TestRedactArgsDoesNotMutateInput(t *testing.T) {
	args := []string{"cli", "--password", "secret"}
	RedactArgs(args)
	if args[2] != "secret" {
		t.Fatalf("input was modified: %q", args)
	}
}

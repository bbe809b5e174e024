package shell

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result is the outcome of a finished command.
type Result struct {
	Command string
	Args    []string
	Output  string
	// ExitCode is -1 when the process never ran.
	ExitCode int
	Err      error
}

// OK reports whether the command ran and exited with status 0.
func (r Result) OK() bool {
	return r.Err == nil && r.ExitCode == 0
}

// Run executes command synchronously with stdin closed and captures stdout
// and stderr together.
func Run(command string, args []string) Result {
	res := Result{Command: command, Args: args}

	out, err := exec.Command(command, args...).CombinedOutput()
	res.Output = string(out)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.ExitCode = 0
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		res.Err = err
	default:
		res.ExitCode = -1
		res.Err = fmt.Errorf("cannot run %s: %w", command, err)
	}
	return res
}

// String renders the result as one log line.
func (r Result) String() string {
	var b strings.Builder
	b.WriteString(r.Command)
	switch {
	case r.ExitCode == -1 && r.Err != nil:
		b.WriteString(": ")
		b.WriteString(r.Err.Error())
		return b.String()
	case r.OK():
		b.WriteString(": ok")
	default:
		fmt.Fprintf(&b, ": exit status %d", r.ExitCode)
	}
	if out := foldLines(r.Output); out != "" {
		b.WriteString(": ")
		b.WriteString(out)
	}
	return b.String()
}

func foldLines(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, "\r \t")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " | ")
}

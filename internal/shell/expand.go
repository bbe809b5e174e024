// Package shell substitutes variables in configured command arguments and
// runs the resulting commands.
package shell

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	FocusedVar = "FOCUSED"
	InputVar   = "INPUT"
)

// Vars are the substitution sources for one command.
type Vars struct {
	Home    string
	Focused string
	// Input is only consulted when HasInput is set, so an empty prompt still
	// substitutes as "".
	Input    string
	HasInput bool
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// CurrentVars fills Home from the user's home directory.
func CurrentVars(focused string) Vars {
	home, _ := os.UserHomeDir()
	return Vars{Home: home, Focused: focused}
}

// WithInput returns a copy carrying captured prompt text.
func (v Vars) WithInput(text string) Vars {
	v.Input = text
	v.HasInput = true
	return v
}

func (v Vars) lookup(name string) (string, bool) {
	switch name {
	case FocusedVar:
		return v.Focused, true
	case InputVar:
		if v.HasInput {
			return v.Input, true
		}
	}
	lookupEnv := v.LookupEnv
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}
	return lookupEnv(name)
}

// Expand substitutes a leading ~ and $NAME / ${NAME} references in arg.
// Unknown names are left as written.
func Expand(arg string, vars Vars) string {
	return expandVariables(expandHome(arg, vars.Home), vars)
}

// ExpandAll expands every argument.
func ExpandAll(args []string, vars Vars) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		out[i] = Expand(arg, vars)
	}
	return out
}

func expandHome(path, home string) string {
	if home == "" || path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}
	return filepath.Join(home, path[2:])
}

func expandVariables(s string, vars Vars) string {
	if !strings.Contains(s, "$") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '$' {
			b.WriteByte(s[i])
			i++
			continue
		}

		name, width := scanName(s[i+1:])
		if name == "" {
			b.WriteByte('$')
			i++
			continue
		}
		if value, ok := vars.lookup(name); ok {
			b.WriteString(value)
		} else {
			b.WriteString(s[i : i+1+width])
		}
		i += 1 + width
	}
	return b.String()
}

// scanName reads NAME or {NAME} from the start of s and returns the name
// and the number of bytes consumed. An unterminated brace is not a name.
func scanName(s string) (string, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return "", 0
		}
		name := s[1:end]
		if n := nameLength(name); n == 0 || n != len(name) {
			return "", 0
		}
		return name, end + 1
	}
	n := nameLength(s)
	return s[:n], n
}

func nameLength(s string) int {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return i
		}
	}
	return len(s)
}

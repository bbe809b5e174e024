// Package shellsetup prints the shell function that lets idex change the
// calling shell's working directory on exit.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strconv"
	"strings"
)

// ParentShellFunc reports the name or path of the parent shell, or "".
type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the idex path baked into the wrapper.
	Executable string
}

// ResultFileName is the file idex leaves in the temp dir when it quits with
// the cd action. The wrapper reads it, removes it and changes directory.
func ResultFileName(pid int) string {
	return fmt.Sprintf("idex_result_%d.txt", pid)
}

// PrintSetup writes the wrapper function for the requested shell, or for
// the detected one when shellOverride is empty.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShell(parent)
	}
	shell = canonicalShellName(shell)

	exe := cfg.Executable
	if exe == "" {
		var err error
		if exe, err = os.Executable(); err != nil {
			exe = "idex"
		}
	}
	quoted := strconv.Quote(exe)

	var err error
	switch shell {
	case "bash", "zsh", "sh", "ksh", "dash":
		_, err = fmt.Fprintf(w, posixWrapper, quoted)
	case "fish":
		_, err = fmt.Fprintf(w, fishWrapper, quoted)
	case "pwsh":
		_, err = fmt.Fprintf(w, pwshWrapper, quoted)
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, sh, ksh, fish, pwsh)", shell)
	}
	return err
}

const posixWrapper = `idex() {
    command %s "$@" &
    idex_pid=$!
    wait $idex_pid
    idex_status=$?

    result_file="${TMPDIR:-/tmp}/idex_result_$idex_pid.txt"
    if [ -f "$result_file" ] && [ ! -L "$result_file" ] && [ -O "$result_file" ]; then
        dest=$(cat "$result_file" 2>/dev/null)
        rm -f "$result_file"
        if [ -d "$dest" ] 2>/dev/null; then
            cd "$dest"
        fi
    else
        rm -f "$result_file" 2>/dev/null
    fi
    return $idex_status
}
`

const fishWrapper = `function idex
    command %s $argv &
    set -l idex_pid $last_pid
    wait $idex_pid
    set -l idex_status $status

    set -l tmp /tmp
    set -q TMPDIR; and set tmp $TMPDIR
    set -l result_file "$tmp/idex_result_$idex_pid.txt"
    if test -f "$result_file" -a ! -L "$result_file" -a -O "$result_file"
        set -l dest (cat "$result_file" 2>/dev/null)
        if test -d "$dest" 2>/dev/null
            builtin cd "$dest"
        end
    end
    rm -f "$result_file" 2>/dev/null
    return $idex_status
end
`

const pwshWrapper = `function idex {
    param([Parameter(ValueFromRemainingArguments=$true)][string[]]$Rest)
    $argList = @()
    if ($Rest) { $argList = $Rest }
    $process = Start-Process -FilePath %s -ArgumentList $argList -NoNewWindow -PassThru
    $process.WaitForExit()

    $resultFile = Join-Path ([System.IO.Path]::GetTempPath()) "idex_result_$($process.Id).txt"
    try {
        if (Test-Path $resultFile -PathType Leaf) {
            $dest = Get-Content $resultFile -Raw -ErrorAction SilentlyContinue | ForEach-Object { $_.Trim() }
            if ((-not [string]::IsNullOrEmpty($dest)) -and (Test-Path $dest -PathType Container)) {
                Set-Location $dest
            }
        }
    } finally {
        Remove-Item $resultFile -ErrorAction SilentlyContinue
    }
}
`

func detectShell(parent ParentShellFunc) string {
	return detectShellInternal(runtime.GOOS, os.Getenv, parent)
}

func detectShellInternal(goos string, getenv func(string) string, parent ParentShellFunc) string {
	sources := []func() string{func() string { return getenv("SHELL") }}
	if parent != nil {
		sources = append(sources, parent)
	}
	for _, source := range sources {
		if shell := canonicalShellName(normalizeShellName(source())); shell != "" {
			return shell
		}
	}

	if strings.EqualFold(goos, "windows") {
		// cmd is reported so PrintSetup can reject it with a clear message.
		if shell := canonicalShellName(normalizeShellName(getenv("COMSPEC"))); shell == "cmd" || shell == "pwsh" {
			return shell
		}
		return "pwsh"
	}
	return "bash"
}

func canonicalShellName(name string) string {
	if name == "powershell" {
		return "pwsh"
	}
	return name
}

// normalizeShellName reduces $SHELL, COMSPEC or a whole command line to a
// lowercase executable name: `"C:\Tools\pwsh.exe" -NoLogo` gives "pwsh".
func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if q := value[0]; q == '"' || q == '\'' {
		value = value[1:]
		if end := strings.IndexByte(value, q); end >= 0 {
			value = value[:end]
		}
	} else if end := strings.IndexAny(value, " \t"); end >= 0 {
		value = value[:end]
	}
	if value == "" {
		return ""
	}

	base := path.Base(strings.ReplaceAll(value, `\`, "/"))
	base = strings.TrimSuffix(strings.ToLower(base), ".exe")
	return strings.TrimSpace(base)
}

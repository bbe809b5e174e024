package main

import (
	"bytes"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSetupWithShellArgument(t *testing.T) {
	for _, args := range [][]string{{"--setup", "fish"}, {"--setup=fish"}, {"-s", "fish"}} {
		out, err := execute(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.HasPrefix(out, "function idex") {
			t.Fatalf("%v: expected fish wrapper, got:\n%s", args, out)
		}
	}
}

func TestSetupDetectsShell(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")
	out, err := execute(t, "--setup")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if !strings.HasPrefix(out, "idex() {") {
		t.Fatalf("expected posix wrapper, got:\n%s", out)
	}
}

func TestSetupUnsupportedShell(t *testing.T) {
	if _, err := execute(t, "--setup=tcsh"); err == nil {
		t.Fatalf("expected error for tcsh")
	}
}

func TestTooManyArguments(t *testing.T) {
	if _, err := execute(t, "a", "b"); err == nil {
		t.Fatalf("expected an argument count error")
	}
}

func TestMissingConfigFile(t *testing.T) {
	_, err := execute(t, "--no-log", "--config", t.TempDir()+"/nope.toml")
	if err == nil || !strings.Contains(err.Error(), "cannot read config") {
		t.Fatalf("expected config error, got %v", err)
	}
}

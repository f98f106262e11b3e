package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

// cliResult holds the captured streams of one command run.
type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

// setupTestEnvironment points the config lookup at an empty temp dir and
// disables color so output can be compared as plain text.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")

	originalNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		color.NoColor = originalNoColor
	})

	return configHome
}

// runCLI runs a fresh root command in-process with the given stdin.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()

	var stdout, stderr bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd, err)
	}

	return cliResult{Stdout: stdout.String(), Stderr: stderr.String(), Err: err}
}

// mustRun runs the CLI and fails the test on error, returning trimmed stdout.
func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()

	result := runCLI(t, stdin, args...)
	if result.Err != nil {
		t.Fatalf("seedtool %s failed: %v\nstderr: %s", strings.Join(args, " "), result.Err, result.Stderr)
	}
	return strings.TrimSpace(result.Stdout)
}

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCLI(t *testing.T, configHome string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

func TestConfigSetThenShow(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "set", "refresh-interval", "30")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "refresh-interval:   30 minutes")
	// Untouched settings keep their defaults.
	assert.Contains(t, stdout, "under-budget:       85%")
}

func TestConfigSetRejectsInvalidValue(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "config", "set", "refresh-interval", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh interval")
}

func TestConfigSetUnknownKey(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "config", "set", "frobnicate", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown setting")
}

func TestConfigSetToolPaths(t *testing.T) {
	home := t.TempDir()

	_, _, err := executeCLI(t, home, "config", "set", "claude-path", "/opt/bin/claude")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, home, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "claude-path:        /opt/bin/claude")
	assert.Contains(t, stdout, "codex-path:         (codex from PATH)")
}

func writeSnapshot(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseClaudeSnapshot(t *testing.T) {
	path := writeSnapshot(t, "usage.txt", "\x1b[2J\x1b[H"+
		"Current session\n"+
		"\x1b[32m12% used\x1b[0m\n"+
		"Resets 6:59pm (America/Sao_Paulo)\n"+
		"Current week (all models)\n"+
		"3% used\n"+
		"Extra usage: not enabled\n")

	stdout, _, err := executeCLI(t, t.TempDir(), "parse", "--tool", "claude", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Claude")
	assert.Contains(t, stdout, "Session:")
	assert.Contains(t, stdout, "12% used")
	assert.Contains(t, stdout, "Week (all models):")
}

func TestParseCodexSnapshot(t *testing.T) {
	path := writeSnapshot(t, "status.txt",
		"5h limit:         [████████████████████] 99% left (resets 13:35)\n"+
			"Weekly limit:     [████████████████░░░░] 80% left (resets 13:17)\n")

	stdout, _, err := executeCLI(t, t.TempDir(), "parse", "--tool", "codex", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Codex")
	assert.Contains(t, stdout, "5h limit:")
	assert.Contains(t, stdout, "1% used")
	assert.Contains(t, stdout, "(resets 13:35)")
}

func TestParseJSONOutput(t *testing.T) {
	path := writeSnapshot(t, "status.txt", "5h limit: 40% left (resets 09:00)\n")

	stdout, _, err := executeCLI(t, t.TempDir(), "parse", "--tool", "codex", "--json", path)
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"five_hour\"")
	assert.Contains(t, stdout, "\"used_percent\": 60")
}

func TestParseUnknownTool(t *testing.T) {
	path := writeSnapshot(t, "out.txt", "whatever\n")

	_, _, err := executeCLI(t, t.TempDir(), "parse", "--tool", "gemini", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestFetchWithMissingBinariesReportsPerTool(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	t.Setenv("CLAUDE_PATH", missing)
	t.Setenv("CODEX_PATH", missing)

	stdout, _, err := executeCLI(t, t.TempDir(), "fetch")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Claude")
	assert.Contains(t, stdout, "Codex")
	assert.Contains(t, stdout, "fetch failed")
}

func TestFetchRejectsUnknownToolFilter(t *testing.T) {
	_, _, err := executeCLI(t, t.TempDir(), "fetch", "--tool", "gemini")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestWatchCycleReloadsSettings(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	t.Setenv("CLAUDE_PATH", missing)
	t.Setenv("CODEX_PATH", missing)

	app, err := wireApp()
	require.NoError(t, err)
	app.log.SetOutput(io.Discard)

	cmd := &cobra.Command{}
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	interval, err := app.watchCycle(context.Background(), cmd, true)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, interval)

	// Edit the interval between cycles; the next cycle must pick it up
	// without restarting the watcher.
	cfg, err := app.store.Load()
	require.NoError(t, err)
	cfg.RefreshIntervalMinutes = 30
	require.NoError(t, app.store.Save(cfg))

	interval, err = app.watchCycle(context.Background(), cmd, true)
	require.NoError(t, err)
	assert.Equal(t, 30*time.Minute, interval)
}

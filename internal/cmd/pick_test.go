package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points the XDG locations at temp dirs so tests never touch the
// user's real config or history.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
}

// writeMenuStub drops an executable shell script acting as the selector.
func writeMenuStub(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are not portable to windows")
	}
	path := filepath.Join(t.TempDir(), "menu-stub")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

// runCLI executes the root command with the given stdin and args.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestPickPrintsSelection(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")

	stdout, _, err := runCLI(t, "foo\nbar\n", "pick", "--menu", stub)
	require.NoError(t, err)
	assert.Equal(t, "foo\n", stdout)
}

func TestPickRecordsHistory(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")

	_, _, err := runCLI(t, "foo\nbar\n", "pick", "--menu", stub, "--prompt", "run: ")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "history", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "foo")
	assert.Contains(t, stdout, "run:")
}

func TestPickNoHistoryFlag(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")

	_, _, err := runCLI(t, "foo\n", "pick", "--menu", stub, "--no-history")
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "history", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no selections recorded")
}

func TestPickNoCandidates(t *testing.T) {
	isolateEnv(t)

	_, _, err := runCLI(t, "", "pick", "--menu", "true")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestPickDismissedMenuPrintsNothing(t *testing.T) {
	isolateEnv(t)
	// Selector that consumes stdin and exits like an escaped dmenu.
	stub := writeMenuStub(t, "#!/bin/sh\ncat > /dev/null\nexit 1\n")

	stdout, _, err := runCLI(t, "foo\nbar\n", "pick", "--menu", stub)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestPickUsageFailure(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\necho 'usage: dmenu [-b]' >&2\nexit 1\n")

	_, _, err := runCLI(t, "foo\n", "pick", "--menu", stub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usage")
}

func TestPickFromMarkdown(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")

	mdPath := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(mdPath, []byte("# Notes\n\n- first\n- second\n"), 0o644))

	stdout, _, err := runCLI(t, "", "pick", "--menu", stub, "--from-markdown", mdPath)
	require.NoError(t, err)
	assert.Equal(t, "Notes\n", stdout)
}

func TestPickHistoryRanking(t *testing.T) {
	isolateEnv(t)
	// Picks the first line every time.
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")
	// Picks the second line, so we can record "bar" first.
	second := writeMenuStub(t, "#!/bin/sh\nsed -n 2p\n")

	stdout, _, err := runCLI(t, "foo\nbar\n", "pick", "--menu", second)
	require.NoError(t, err)
	require.Equal(t, "bar\n", stdout)

	// "bar" is now the frequent pick and floats to the top, so the
	// first-line selector returns it.
	stdout, _, err = runCLI(t, "foo\nbar\n", "pick", "--menu", stub)
	require.NoError(t, err)
	assert.Equal(t, "bar\n", stdout)
}

func TestCollectOverrides(t *testing.T) {
	cmd := NewPickCommand()
	require.NoError(t, cmd.Flags().Set("bottom", "true"))
	require.NoError(t, cmd.Flags().Set("lines", "5"))
	require.NoError(t, cmd.Flags().Set("prompt", "> "))
	require.NoError(t, cmd.Flags().Set("opacity", "0.5"))

	overrides, err := collectOverrides(cmd)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"bottom":  true,
		"lines":   5,
		"prompt":  "> ",
		"opacity": 0.5,
	}, overrides)
}

func TestCollectOverridesUnchangedFlagsExcluded(t *testing.T) {
	cmd := NewPickCommand()

	overrides, err := collectOverrides(cmd)
	require.NoError(t, err)
	assert.Empty(t, overrides)
}

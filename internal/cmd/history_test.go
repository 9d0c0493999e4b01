package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryShowEmpty(t *testing.T) {
	isolateEnv(t)

	stdout, _, err := runCLI(t, "", "history", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no selections recorded")
}

func TestHistoryClear(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")

	_, _, err := runCLI(t, "foo\n", "pick", "--menu", stub)
	require.NoError(t, err)

	stdout, _, err := runCLI(t, "", "history", "clear")
	require.NoError(t, err)
	assert.Contains(t, stdout, "history cleared")

	stdout, _, err = runCLI(t, "", "history", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "no selections recorded")
}

func TestHistoryPrune(t *testing.T) {
	isolateEnv(t)
	stub := writeMenuStub(t, "#!/bin/sh\nhead -n 1\n")

	_, _, err := runCLI(t, "foo\n", "pick", "--menu", stub)
	require.NoError(t, err)

	// Fresh entries survive any sane retention window.
	stdout, _, err := runCLI(t, "", "history", "prune", "--keep-days", "30")
	require.NoError(t, err)
	assert.Contains(t, stdout, "pruned 0 selection(s)")
}

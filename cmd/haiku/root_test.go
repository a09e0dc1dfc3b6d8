package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCorpus(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	// One-syllable words in a cycle, so every line length is reachable.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pond.txt"),
		[]byte("cat dog sun moon frog cat dog sun moon frog\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.bin"), []byte("xx"), 0o644))
	return dir
}

func TestCorporaCommand(t *testing.T) {
	dir := writeCorpus(t)

	out, err := runCLI(t, "corpora", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "pond.txt")
	assert.NotContains(t, out, "notes")
}

func TestWriteCommand(t *testing.T) {
	dir := writeCorpus(t)

	out, err := runCLI(t, "write", "--dir", dir, "--count", "2", "--seed", "9")
	require.NoError(t, err)

	poems := strings.Split(strings.TrimSpace(out), "\n\n")
	require.Len(t, poems, 2)
	for _, p := range poems {
		lines := strings.Split(p, "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasSuffix(lines[0], "..."), lines[0])
		assert.True(t, strings.HasSuffix(lines[1], "..."), lines[1])
		assert.True(t, strings.HasSuffix(lines[2], "."), lines[2])
		assert.Len(t, strings.Fields(lines[1]), 7)
	}
}

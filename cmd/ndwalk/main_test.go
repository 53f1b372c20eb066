package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qri-io/ndarray-go/internal/config"
	"github.com/qri-io/ndarray-go/internal/walkthrough"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSectionsCommand(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "ndwalk.yaml")
	out, err := execute(t, "sections", "--config", cfgPath)
	require.NoError(t, err)
	for _, s := range walkthrough.Sections() {
		assert.Contains(t, out, s.Name)
		assert.Contains(t, out, s.Title)
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "run", "shape", "--memory", "--config", filepath.Join(dir, "ndwalk.yaml"))
	require.NoError(t, err)
	assert.Contains(t, out, walkthrough.Banner)
	assert.Contains(t, out, "(3, 2, 4)\n")
	assert.NotContains(t, out, "Array fundamentals")

	_, err = execute(t, "run", "nope", "--memory", "--config", filepath.Join(dir, "ndwalk.yaml"))
	assert.ErrorIs(t, err, walkthrough.ErrUnknownSection)
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "conf", "ndwalk.yaml")
	_, err := execute(t, "config", "init", "--config", cfgPath, "--seed", "9", "--output-dir", dir)
	require.NoError(t, err)

	got, err := config.Load(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), got.Seed)
	assert.Equal(t, dir, got.OutputDir)
}

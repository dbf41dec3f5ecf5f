package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/arvidan/pycx/internal/logging"
)

// captureExit replaces the urfave exit hook so exit codes can be asserted.
func captureExit(t *testing.T) *int {
	t.Helper()
	code := -1
	prev := cli.OsExiter
	cli.OsExiter = func(c int) { code = c }
	t.Cleanup(func() { cli.OsExiter = prev })
	return &code
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	logging.SetOutput(&buf)
	t.Cleanup(func() { logging.SetOutput(os.Stderr) })
	return &buf
}

// gnarlySource returns a function with cyclomatic complexity 12.
func gnarlySource() string {
	var b strings.Builder
	b.WriteString("def gnarly(a):\n")
	for i := 0; i < 11; i++ {
		fmt.Fprintf(&b, "    if a == %d:\n        return %d\n", i, i)
	}
	b.WriteString("    return -1\n")
	return b.String()
}

func TestRun_InvalidThreshold(t *testing.T) {
	t.Chdir(t.TempDir())

	tests := []struct {
		name      string
		threshold string
	}{
		{"zero", "0"},
		{"negative", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := captureExit(t)
			logs := captureLogs(t)

			err := newApp().Run([]string{"pycx", "--threshold", tt.threshold, "whatever.py"})
			require.Error(t, err)
			assert.Equal(t, 1, *code)
			assert.Contains(t, logs.String(), "ERROR - Complexity threshold must be a positive integer.")
		})
	}
}

func TestRun_MissingFilepath(t *testing.T) {
	t.Chdir(t.TempDir())
	code := captureExit(t)

	err := newApp().Run([]string{"pycx"})
	require.Error(t, err)
	assert.Equal(t, 2, *code)
}

func TestRun_NonexistentFile(t *testing.T) {
	t.Chdir(t.TempDir())
	logs := captureLogs(t)

	err := newApp().Run([]string{"pycx", "missing.py"})
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "ERROR - File not found: missing.py")
	assert.Contains(t, out, "INFO - No results to display.")
}

func TestRun_ComplexFunctionWarns(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	src := filepath.Join(dir, "gnarly.py")
	require.NoError(t, os.WriteFile(src, []byte(gnarlySource()), 0o644))
	out := filepath.Join(dir, "report.txt")

	err := newApp().Run([]string{"pycx", "--output", out, src})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)

	report := string(content)
	assert.Contains(t, report, "gnarly")
	assert.Contains(t, report, "12")
	assert.Contains(t, report, "complexity 12 exceeds threshold 10")
	// Raw metrics only appear with --report-raw.
	assert.NotContains(t, report, "Raw Metrics")
}

func TestRun_ReportRaw(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	src := filepath.Join(dir, "simple.py")
	require.NoError(t, os.WriteFile(src, []byte("def f():\n    return 1\n"), 0o644))
	out := filepath.Join(dir, "report.txt")

	err := newApp().Run([]string{"pycx", "--report-raw", "--output", out, src})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)

	report := string(content)
	assert.Contains(t, report, "Complexity Analysis for")
	assert.Contains(t, report, "Raw Metrics")
	assert.Contains(t, report, "sloc")
}

func TestRun_ThresholdBoundaryNoWarning(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	src := filepath.Join(dir, "gnarly.py")
	require.NoError(t, os.WriteFile(src, []byte(gnarlySource()), 0o644))
	out := filepath.Join(dir, "report.txt")

	// Complexity 12 with threshold 12 is not a violation.
	err := newApp().Run([]string{"pycx", "--threshold", "12", "--output", out, src})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "exceeds threshold")
}

func TestRun_JSONFormat(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	src := filepath.Join(dir, "simple.py")
	require.NoError(t, os.WriteFile(src, []byte("def f(x):\n    if x:\n        return 1\n    return 0\n"), 0o644))
	out := filepath.Join(dir, "report.json")

	err := newApp().Run([]string{"pycx", "--format", "json", "--output", out, src})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)

	report := string(content)
	assert.Contains(t, report, `"name": "f"`)
	assert.Contains(t, report, `"complexity": 2`)
	assert.Contains(t, report, `"threshold": 10`)
}

func TestRun_ConfigThreshold(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "pycx.toml"), []byte("threshold = 11\n"), 0o644))
	src := filepath.Join(dir, "gnarly.py")
	require.NoError(t, os.WriteFile(src, []byte(gnarlySource()), 0o644))
	out := filepath.Join(dir, "report.txt")

	err := newApp().Run([]string{"pycx", "--output", out, src})
	require.NoError(t, err)

	content, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(content), "complexity 12 exceeds threshold 11")
}

func TestInit_WritesConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	err := newApp().Run([]string{"pycx", "init"})
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(dir, "pycx.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "threshold = 10")

	// Second run without --force refuses to overwrite.
	err = newApp().Run([]string{"pycx", "init"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

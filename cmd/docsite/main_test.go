package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLI_InitValidateBuild(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "docsite.yaml")
	out := filepath.Join(dir, "public")
	history := filepath.Join(dir, "history.db")
	metricsFile := filepath.Join(dir, "docsite.prom")

	code, stdout, stderr := runCLI(t, "--config", cfg, "init")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "wrote")
	require.FileExists(t, filepath.Join(dir, "docs", "intro.md"))

	code, stdout, stderr = runCLI(t, "--config", cfg, "validate")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "is valid")

	code, stdout, stderr = runCLI(t, "--config", cfg, "build", "-o", out, "--history", history, "--metrics-file", metricsFile)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "outcome=success")
	require.FileExists(t, filepath.Join(out, "docs", "intro", "index.html"))
	require.FileExists(t, filepath.Join(out, "index.html"))

	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(metrics), "docsite_build_outcomes_total")

	code, stdout, stderr = runCLI(t, "history", "--history", history)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "success")
}

func TestCLI_InitRefusesOverwrite(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "docsite.yaml")
	code, _, stderr := runCLI(t, "--config", cfg, "init")
	require.Equal(t, 0, code, stderr)

	code, _, stderr = runCLI(t, "--config", cfg, "init")
	require.Equal(t, 7, code)
	require.Contains(t, stderr, "already exists")

	code, _, stderr = runCLI(t, "--config", cfg, "init", "--force")
	require.Equal(t, 0, code, stderr)
}

func TestCLI_ExitCodes(t *testing.T) {
	dir := t.TempDir()

	code, _, _ := runCLI(t, "--config", filepath.Join(dir, "missing.yaml"), "validate")
	require.Equal(t, 3, code)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("title: \"\"\nurl: ftp://x\n"), 0o600))
	code, _, stderr := runCLI(t, "--config", invalid, "validate")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "url")

	cfg := filepath.Join(dir, "docsite.yaml")
	code, _, stderr = runCLI(t, "--config", cfg, "init")
	require.Equal(t, 0, code, stderr)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "broken.md"), []byte("# Broken\n\n[gone](./gone.md)\n"), 0o600))
	code, stdout, _ := runCLI(t, "--config", cfg, "build", "-o", filepath.Join(dir, "public"))
	require.Equal(t, 11, code)
	require.Contains(t, stdout, "outcome=failed")

	code, _, _ = runCLI(t, "no-such-command")
	require.Equal(t, 2, code)
}

func TestCLI_Coderef(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "pkg"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "pkg", "a.go"), []byte("package pkg\n\nfunc A() {}\n"), 0o600))

	code, stdout, stderr := runCLI(t, "coderef", "--root", root, "pkg")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "generated=1 skipped=0")
	require.FileExists(t, filepath.Join(root, "docs", "reference", "code", "pkg", "a.mdx"))
}

func TestCLI_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "--version")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "docsite")
}

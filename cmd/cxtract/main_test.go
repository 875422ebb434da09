package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgs_ClassifiesFlagsAndFiles(t *testing.T) {
	cfg := parseArgs([]string{"--main-only", "-Iinclude", "a.c", "--with-source", "b.c", "-std=c11"})
	assert.True(t, cfg.mainOnly)
	assert.True(t, cfg.withSource)
	assert.False(t, cfg.noSizes)
	assert.Equal(t, []string{"a.c", "b.c"}, cfg.files)
}

func TestParseArgs_Help(t *testing.T) {
	cfg := parseArgs([]string{"--help"})
	assert.True(t, cfg.help)
}

func TestParseArgs_NoArgs(t *testing.T) {
	cfg := parseArgs(nil)
	assert.False(t, cfg.help)
	assert.Empty(t, cfg.files)
}

func captureRun(t *testing.T, args []string) (stdout, stderr string, code int) {
	t.Helper()
	dir := t.TempDir()
	outFile, err := os.Create(filepath.Join(dir, "out"))
	assert.NoError(t, err)
	errFile, err := os.Create(filepath.Join(dir, "err"))
	assert.NoError(t, err)

	code = run(args, outFile, errFile)

	outFile.Close()
	errFile.Close()
	outBytes, err := os.ReadFile(outFile.Name())
	assert.NoError(t, err)
	errBytes, err := os.ReadFile(errFile.Name())
	assert.NoError(t, err)
	return string(outBytes), string(errBytes), code
}

func TestRun_NoInputFilesIsFatal(t *testing.T) {
	stdout, stderr, code := captureRun(t, []string{"--no-sizes"})
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no input files")
}

func TestRun_NoArgsPrintsUsageAndExitsZero(t *testing.T) {
	stdout, _, code := captureRun(t, nil)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "cxtract [flags] file...")
}

func TestRun_HelpPrintsUsageAndExitsZero(t *testing.T) {
	stdout, _, code := captureRun(t, []string{"--help"})
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "--no-structs")
}

func TestRun_ExtractsStructsAndFunctionsFromFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "t.cpp")
	assert.NoError(t, os.WriteFile(src, []byte(
		"struct S { int a; };\nint f(int x) { return x; }"), 0o644))

	stdout, stderr, code := captureRun(t, []string{src})
	assert.Equal(t, 0, code)
	assert.Empty(t, stderr)

	var decoded map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Contains(t, decoded, "structs")
	assert.Contains(t, decoded, "functions")
}

func TestRun_MissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.cpp")

	stdout, stderr, code := captureRun(t, []string{missing})
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing.cpp")
	assert.Empty(t, stdout)
}

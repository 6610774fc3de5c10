package main_test

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grammarops/grammarops/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "grammarops-e2e")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(dir, "grammarops")
	cmd := exec.Command("go", "build", "-o", binaryPath, ".")
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		panic("build failed: " + string(out))
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/webapp", name))
	return abs
}

// run returns stdout and the exit code; stderr carries logs and errors.
func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var stdout bytes.Buffer
	cmd := exec.Command(binaryPath, args...)
	cmd.Stdout = &stdout
	cmd.Env = append(os.Environ(), "CI=1")
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return stdout.String(), exitErr.ExitCode()
	}
	require.NoError(t, err)
	return stdout.String(), 0
}

func TestE2E_CleanProjectPasses(t *testing.T) {
	out, code := run(t, "audit", fixturePath("clean"), "--no-color")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "100.0% passing")
}

func TestE2E_MessyProjectExitsOne(t *testing.T) {
	out, code := run(t, "audit", fixturePath("messy"), "--format", "json")
	assert.Equal(t, 1, code)

	var report domain.AuditReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 6, report.FilesFailed)
	assert.Len(t, report.Violations, 13)
}

func TestE2E_StrictFailsOnWarnings(t *testing.T) {
	_, code := run(t, "audit", fixturePath("messy"), "--single", "src/constants/config.ts")
	assert.Equal(t, 0, code)

	_, code = run(t, "audit", fixturePath("messy"), "--single", "src/constants/config.ts", "--strict")
	assert.Equal(t, 1, code)
}

func TestE2E_ConfigErrorExitsTwo(t *testing.T) {
	_, code := run(t, "audit", fixturePath("clean"), "--profile", "spelling")
	assert.Equal(t, 2, code)

	_, code = run(t, "audit", fixturePath("clean"), "--no-such-flag")
	assert.Equal(t, 2, code)
}

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "grammarops")
}

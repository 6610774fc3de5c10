package gitinfo_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/grammarops/grammarops/internal/adapters/outbound/gitinfo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitInfo_CommitHash_ReturnsHash(t *testing.T) {
	dir := initRepo(t)

	hash, err := gitinfo.New().CommitHash(dir)
	require.NoError(t, err)
	assert.Len(t, hash, 40, "should be a full SHA-1 hash")
}

func TestGitInfo_CommitHash_NotGitRepo(t *testing.T) {
	dir := t.TempDir()
	_, err := gitinfo.New().CommitHash(dir)
	assert.Error(t, err)
}

func TestGitInfo_ChangedFiles(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "src/components/Card.tsx", "export function Card() {}\n")
	writeFile(t, dir, "README.md", "changed\n")

	files, err := gitinfo.New().ChangedFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "src/components/Card.tsx"}, files)
}

func TestGitInfo_ChangedFiles_Subdirectory(t *testing.T) {
	dir := initRepo(t)
	writeFile(t, dir, "web/src/hooks/useAuth.ts", "export function useAuth() {}\n")
	writeFile(t, dir, "other.txt", "x\n")

	files, err := gitinfo.New().ChangedFiles(filepath.Join(dir, "web"))
	require.NoError(t, err)
	assert.Equal(t, []string{"src/hooks/useAuth.ts"}, files)
}

func TestGitInfo_ChangedFiles_NotGitRepo(t *testing.T) {
	_, err := gitinfo.New().ChangedFiles(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening git repo")
}

func TestGitInfo_ChangedFiles_Clean(t *testing.T) {
	dir := initRepo(t)
	files, err := gitinfo.New().ChangedFiles(dir)
	require.NoError(t, err)
	assert.Empty(t, files)
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@test.com")
	runGit(t, dir, "config", "user.name", "Test")
	writeFile(t, dir, "README.md", "hello\n")
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "init")
	return dir
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %v: %s", args, string(out))
}

package fixlog_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grammarops/grammarops/internal/adapters/outbound/fixlog"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func logPath(dir string) string {
	return filepath.Join(dir, ".grammarops", "fix-log.jsonl")
}

func TestFixLog_AppendAndLoad(t *testing.T) {
	dir := t.TempDir()
	l := fixlog.New()

	require.NoError(t, l.Append(dir, domain.FixEntry{
		RunID:     "r1",
		Timestamp: "2026-10-19T10:00:00Z",
		Injector:  domain.InjectorMetadata,
		Files:     []string{"src/components/Card.tsx"},
	}))
	require.NoError(t, l.Append(dir, domain.FixEntry{RunID: "r2", Injector: domain.InjectorLLMDirectives}))

	entries, err := l.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "r1", entries[0].RunID)
	assert.Equal(t, []string{"src/components/Card.tsx"}, entries[0].Files)
	assert.Equal(t, domain.InjectorLLMDirectives, entries[1].Injector)
}

func TestFixLog_OneEntryPerLine(t *testing.T) {
	dir := t.TempDir()
	l := fixlog.New()
	require.NoError(t, l.Append(dir, domain.FixEntry{RunID: "r1"}))
	require.NoError(t, l.Append(dir, domain.FixEntry{RunID: "r2"}))

	data, err := os.ReadFile(logPath(dir))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], `"r2"`)
}

func TestFixLog_KeepsNewestEntries(t *testing.T) {
	dir := t.TempDir()
	l := fixlog.NewWithLimit(3)
	for i := 1; i <= 5; i++ {
		require.NoError(t, l.Append(dir, domain.FixEntry{RunID: fmt.Sprintf("r%d", i)}))
	}

	entries, err := l.Load(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "r3", entries[0].RunID)
	assert.Equal(t, "r5", entries[2].RunID)
}

func TestFixLog_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, fixlog.New().Append(dir, domain.FixEntry{RunID: "r1"}))

	names, err := os.ReadDir(filepath.Join(dir, ".grammarops"))
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "fix-log.jsonl", names[0].Name())
}

func TestFixLog_LoadEmpty(t *testing.T) {
	entries, err := fixlog.New().Load(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestFixLog_CorruptLine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath(dir)), 0755))
	require.NoError(t, os.WriteFile(logPath(dir), []byte("{\"run_id\":\"r1\"}\n{not json\n"), 0644))

	_, err := fixlog.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fix-log.jsonl:2")
}

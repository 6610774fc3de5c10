// Package fixlog keeps a bounded, newline-delimited record of applied fixes
// under the project's .grammarops directory.
package fixlog

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/grammarops/grammarops/internal/domain"
)

const (
	logFile = ".grammarops/fix-log.jsonl"

	// DefaultMaxEntries is how many runs are kept before the oldest are dropped.
	DefaultMaxEntries = 50
)

// FileLog implements domain.FixLog. Each entry is one JSON line; the file
// is rewritten through a temp file and rename so a crash never leaves a
// truncated log behind.
type FileLog struct {
	maxEntries int
}

func New() *FileLog {
	return &FileLog{maxEntries: DefaultMaxEntries}
}

// NewWithLimit returns a log that keeps at most limit entries. A limit of
// zero or less keeps every entry.
func NewWithLimit(limit int) *FileLog {
	return &FileLog{maxEntries: limit}
}

func (l *FileLog) Append(projectPath string, entry domain.FixEntry) error {
	entries, err := l.Load(projectPath)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	if l.maxEntries > 0 && len(entries) > l.maxEntries {
		entries = entries[len(entries)-l.maxEntries:]
	}

	var buf bytes.Buffer
	for _, e := range entries {
		line, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encoding fix entry %s: %w", e.RunID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return writeAtomic(filepath.Join(projectPath, logFile), buf.Bytes())
}

// Load returns the recorded entries, oldest first. A missing log is empty.
func (l *FileLog) Load(projectPath string) ([]domain.FixEntry, error) {
	f, err := os.Open(filepath.Join(projectPath, logFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []domain.FixEntry
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var e domain.FixEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", logFile, n, err)
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func writeAtomic(fp string, data []byte) error {
	dir := filepath.Dir(fp)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".fix-log-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", logFile, err)
	}
	defer tmp.Close()
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", logFile, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", logFile, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), fp)
}

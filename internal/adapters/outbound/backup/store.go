package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/grammarops/grammarops/internal/domain"
)

// manifest records which files a backup holds.
type manifest struct {
	RunID string   `json:"run_id"`
	Files []string `json:"files"`
}

// Store is a file-based implementation of domain.BackupStore. Backups live
// under .grammarops/backup/<run-id>/ and a "latest" file names the most
// recent one.
type Store struct{}

// New creates a new file-based backup store.
func New() *Store {
	return &Store{}
}

// Save copies files (relative to projectPath) into a backup for runID.
func (s *Store) Save(projectPath, runID string, files []string) error {
	dir := runDir(projectPath, runID)
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(projectPath, filepath.FromSlash(rel)))
		if err != nil {
			return fmt.Errorf("backing up %s: %w", rel, err)
		}
		dst := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("backing up %s: %w", rel, err)
		}
	}

	data, err := json.MarshalIndent(manifest{RunID: runID, Files: files}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.json"), data, 0644); err != nil {
		return err
	}
	return os.WriteFile(latestPath(projectPath), []byte(runID), 0644)
}

// Restore copies the latest backup back over the project and removes it.
// It returns the restored files, or domain.ErrNoBackup.
func (s *Store) Restore(projectPath string) ([]string, error) {
	runID, err := os.ReadFile(latestPath(projectPath))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNoBackup
		}
		return nil, err
	}

	dir := runDir(projectPath, string(runID))
	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNoBackup
		}
		return nil, err
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("reading backup manifest: %w", err)
	}

	for _, rel := range m.Files {
		saved, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
		if err != nil {
			return nil, fmt.Errorf("restoring %s: %w", rel, err)
		}
		if err := os.WriteFile(filepath.Join(projectPath, filepath.FromSlash(rel)), saved, 0644); err != nil {
			return nil, fmt.Errorf("restoring %s: %w", rel, err)
		}
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, err
	}
	if err := os.Remove(latestPath(projectPath)); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	return m.Files, nil
}

func backupDir(projectPath string) string {
	return filepath.Join(projectPath, ".grammarops", "backup")
}

func runDir(projectPath, runID string) string {
	return filepath.Join(backupDir(projectPath), runID)
}

func latestPath(projectPath string) string {
	return filepath.Join(backupDir(projectPath), "latest")
}

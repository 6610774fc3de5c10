// Package report writes audit reports as JSON.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/grammarops/grammarops/internal/domain"
)

// WriteJSON encodes r as indented JSON.
func WriteJSON(w io.Writer, r *domain.AuditReport) error {
	return Encode(w, r)
}

// Encode writes any value as indented JSON.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile saves r to path, creating parent directories.
func WriteFile(path string, r *domain.AuditReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	if err := WriteJSON(f, r); err != nil {
		f.Close()
		return fmt.Errorf("writing report: %w", err)
	}
	return f.Close()
}

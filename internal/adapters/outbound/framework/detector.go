// Package framework detects the JavaScript frameworks a project depends on
// from its package.json.
package framework

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"

	"github.com/grammarops/grammarops/internal/domain"
)

const manifest = "package.json"

type packageJSON struct {
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
}

// PackageDetector implements domain.FrameworkDetector.
type PackageDetector struct{}

func New() *PackageDetector {
	return &PackageDetector{}
}

// Detect returns the known frameworks listed in projectPath/package.json.
// A project without a package.json has none.
func (d *PackageDetector) Detect(projectPath string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, manifest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifest, err)
	}

	var deps []string
	for _, group := range []map[string]string{pkg.Dependencies, pkg.DevDependencies, pkg.PeerDependencies} {
		for name := range group {
			deps = append(deps, name)
		}
	}
	return domain.FrameworksForPackages(deps), nil
}

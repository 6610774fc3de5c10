package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grammarops/grammarops/internal/domain"
	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file looked up in the audited root.
const FileName = ".grammarops.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .grammarops.yaml.
// An optional base file (shared across projects) is loaded first and the
// project file is overlaid on it.
type YAMLLoader struct {
	basePath string
}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// NewWithBase creates a YAMLLoader that layers the project file over the
// config at basePath.
func NewWithBase(basePath string) *YAMLLoader { return &YAMLLoader{basePath: basePath} }

// Load reads .grammarops.yaml from projectPath.
// Returns DefaultConfig if neither the base nor the project file exists.
func (l *YAMLLoader) Load(projectPath string) (domain.ProjectConfig, error) {
	cfg := domain.DefaultConfig()

	if l.basePath != "" {
		base, found, err := readFile(l.basePath)
		if err != nil {
			return domain.ProjectConfig{}, err
		}
		if !found {
			return domain.ProjectConfig{}, fmt.Errorf("config file %s: %w", l.basePath, os.ErrNotExist)
		}
		cfg = base
	}

	project, found, err := readFile(filepath.Join(projectPath, FileName))
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	if found {
		cfg = mergeConfig(cfg, project)
	}

	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func readFile(path string) (domain.ProjectConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ProjectConfig{}, false, nil
		}
		return domain.ProjectConfig{}, false, err
	}

	var cfg domain.ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.ProjectConfig{}, false, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	// Validate before merging; catches typos in the user's raw input.
	if err := cfg.Validate(); err != nil {
		return domain.ProjectConfig{}, false, fmt.Errorf("invalid %s: %w", filepath.Base(path), err)
	}
	return cfg, true, nil
}

// mergeConfig overlays explicit overrides on top of base.
// Explicit (non-zero) values always win; maps merge key by key.
func mergeConfig(base, override domain.ProjectConfig) domain.ProjectConfig {
	result := base

	if len(override.Include) > 0 {
		result.Include = override.Include
	}
	if len(override.Exclude) > 0 {
		result.Exclude = override.Exclude
	}
	if override.RespectGitignore != nil {
		result.RespectGitignore = override.RespectGitignore
	}
	if override.HeaderLines > 0 {
		result.HeaderLines = override.HeaderLines
	}
	if override.Concurrency > 0 {
		result.Concurrency = override.Concurrency
	}

	result.Verbs.Add = append(append([]string(nil), base.Verbs.Add...), override.Verbs.Add...)
	result.Verbs.Remove = append(append([]string(nil), base.Verbs.Remove...), override.Verbs.Remove...)
	result.AllowNames = append(append([]string(nil), base.AllowNames...), override.AllowNames...)
	result.Frameworks = domain.MergeFrameworks(base.Frameworks, override.Frameworks)
	result.DisableRules = append(append([]string(nil), base.DisableRules...), override.DisableRules...)

	if len(override.Severity) > 0 {
		result.Severity = make(map[string]string, len(base.Severity)+len(override.Severity))
		for k, v := range base.Severity {
			result.Severity[k] = v
		}
		for k, v := range override.Severity {
			result.Severity[k] = v
		}
	}
	if len(override.Categories) > 0 {
		result.Categories = make(map[string]domain.CategoryOverride, len(base.Categories)+len(override.Categories))
		for k, v := range base.Categories {
			result.Categories[k] = v
		}
		for k, v := range override.Categories {
			result.Categories[k] = v
		}
	}

	// Project injectors replace base injectors of the same name.
	if len(override.Injectors) > 0 {
		byName := make(map[string]int)
		result.Injectors = append([]domain.InjectorConfig(nil), base.Injectors...)
		for i, inj := range result.Injectors {
			byName[inj.Name] = i
		}
		for _, inj := range override.Injectors {
			if i, ok := byName[inj.Name]; ok {
				result.Injectors[i] = inj
				continue
			}
			result.Injectors = append(result.Injectors, inj)
		}
	}

	return result
}

// Write serializes cfg to .grammarops.yaml in projectPath. It refuses to
// overwrite an existing file unless force is set.
func Write(projectPath string, cfg domain.ProjectConfig, force bool) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", fmt.Errorf("invalid configuration: %w", err)
	}
	target := filepath.Join(projectPath, FileName)
	if !force {
		if _, err := os.Stat(target); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", target)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", FileName, err)
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", err
	}
	return target, nil
}

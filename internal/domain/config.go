package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	DefaultHeaderLines = 20
	maxHeaderLines     = 200
)

// ProjectConfig holds project-level configuration loaded from .grammarops.yaml.
// Zero values mean "keep the built-in default".
type ProjectConfig struct {
	Include          []string                    `yaml:"include,omitempty"           json:"include,omitempty"`
	Exclude          []string                    `yaml:"exclude,omitempty"           json:"exclude,omitempty"`
	RespectGitignore *bool                       `yaml:"respect_gitignore,omitempty" json:"respect_gitignore,omitempty"`
	HeaderLines      int                         `yaml:"header_lines,omitempty"      json:"header_lines,omitempty"`
	Concurrency      int                         `yaml:"concurrency,omitempty"       json:"concurrency,omitempty"`
	Verbs            VerbConfig                  `yaml:"verbs,omitempty"             json:"verbs,omitempty"`
	AllowNames       []string                    `yaml:"allow_names,omitempty"       json:"allow_names,omitempty"`
	Frameworks       []string                    `yaml:"frameworks,omitempty"        json:"frameworks,omitempty"`
	DisableRules     []string                    `yaml:"disable_rules,omitempty"     json:"disable_rules,omitempty"`
	Severity         map[string]string           `yaml:"severity,omitempty"          json:"severity,omitempty"`
	Categories       map[string]CategoryOverride `yaml:"categories,omitempty"        json:"categories,omitempty"`
	Injectors        []InjectorConfig            `yaml:"injectors,omitempty"         json:"injectors,omitempty"`
}

// VerbConfig extends or trims the built-in verb taxonomy.
type VerbConfig struct {
	Add    []string `yaml:"add,omitempty"    json:"add,omitempty"`
	Remove []string `yaml:"remove,omitempty" json:"remove,omitempty"`
}

// CategoryOverride replaces parts of a built-in category rule. Nil slices
// and empty strings leave the default in place.
type CategoryOverride struct {
	Paths            []string `yaml:"paths,omitempty"             json:"paths,omitempty"`
	FilenamePattern  string   `yaml:"filename_pattern,omitempty"  json:"filename_pattern,omitempty"`
	RequiredFields   []string `yaml:"required_fields,omitempty"   json:"required_fields,omitempty"`
	Layers           []string `yaml:"layers,omitempty"            json:"layers,omitempty"`
	ForbiddenImports []string `yaml:"forbidden_imports,omitempty" json:"forbidden_imports,omitempty"`
}

// InjectorConfig declares a project-specific metadata injector.
type InjectorConfig struct {
	Name       string   `yaml:"name"                 json:"name"`
	Keys       []string `yaml:"keys"                 json:"keys"`
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
	Template   string   `yaml:"template"             json:"template"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// GitignoreEnabled reports whether discovery honors .gitignore.
func (c ProjectConfig) GitignoreEnabled() bool {
	return c.RespectGitignore == nil || *c.RespectGitignore
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c ProjectConfig) Validate() error {
	if c.HeaderLines < 0 || c.HeaderLines > maxHeaderLines {
		return fmt.Errorf("header_lines must be between 0 and %d (got %d)", maxHeaderLines, c.HeaderLines)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must be >= 0 (got %d)", c.Concurrency)
	}

	for _, r := range c.DisableRules {
		if !IsValidRule(r) {
			return fmt.Errorf("unknown rule %q in disable_rules", r)
		}
	}
	for r, sev := range c.Severity {
		if !IsValidRule(r) {
			return fmt.Errorf("unknown rule %q in severity", r)
		}
		if !isValidSeverity(sev) {
			return fmt.Errorf("severity[%q] = %q (valid: error, warning, info)", r, sev)
		}
	}

	if err := validateGlobs("include", c.Include); err != nil {
		return err
	}
	if err := validateGlobs("exclude", c.Exclude); err != nil {
		return err
	}

	for i, pattern := range c.AllowNames {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("allow_names[%d]: %w", i, err)
		}
	}

	for _, name := range c.Frameworks {
		if _, ok := LookupFramework(name); !ok {
			return fmt.Errorf("unknown framework %q in frameworks (valid: %s)", name, strings.Join(KnownFrameworks(), ", "))
		}
	}

	for name, ov := range c.Categories {
		if !IsBuiltinCategory(name) {
			return fmt.Errorf("unknown category %q in categories", name)
		}
		if err := validateGlobs("categories."+name+".paths", ov.Paths); err != nil {
			return err
		}
		if ov.FilenamePattern != "" {
			if _, err := regexp.Compile(ov.FilenamePattern); err != nil {
				return fmt.Errorf("categories.%s.filename_pattern: %w", name, err)
			}
		}
		for _, target := range ov.ForbiddenImports {
			if !IsBuiltinCategory(target) {
				return fmt.Errorf("categories.%s.forbidden_imports: unknown category %q", name, target)
			}
		}
	}

	seen := make(map[string]bool)
	for i, inj := range c.Injectors {
		if inj.Name == "" {
			return fmt.Errorf("injectors[%d].name must not be empty", i)
		}
		if isBuiltinInjector(inj.Name) || seen[inj.Name] {
			return fmt.Errorf("injectors[%d]: duplicate injector name %q", i, inj.Name)
		}
		seen[inj.Name] = true
		if len(inj.Keys) == 0 {
			return fmt.Errorf("injectors[%d].keys must not be empty", i)
		}
		if inj.Template == "" {
			return fmt.Errorf("injectors[%d].template must not be empty", i)
		}
		for _, cat := range inj.Categories {
			if !IsBuiltinCategory(cat) {
				return fmt.Errorf("injectors[%d]: unknown category %q", i, cat)
			}
		}
	}

	return nil
}

func isValidSeverity(s string) bool {
	return s == SeverityError || s == SeverityWarning || s == SeverityInfo
}

func validateGlobs(field string, patterns []string) error {
	for i, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("%s[%d]: malformed glob %q", field, i, p)
		}
	}
	return nil
}

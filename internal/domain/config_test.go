package domain_test

import (
	"testing"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_ChangesNothing(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Empty(t, cfg.Include)
	assert.Empty(t, cfg.Exclude)
	assert.Nil(t, cfg.Severity)
	assert.Nil(t, cfg.Categories)
	assert.Zero(t, cfg.HeaderLines)
	assert.True(t, cfg.GitignoreEnabled())
}

func TestGitignoreEnabled_ExplicitFalse(t *testing.T) {
	off := false
	cfg := domain.ProjectConfig{RespectGitignore: &off}
	assert.False(t, cfg.GitignoreEnabled())
}

// --- Validation tests ---

func TestValidate_EmptyConfigIsValid(t *testing.T) {
	assert.NoError(t, domain.DefaultConfig().Validate())
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := domain.ProjectConfig{
		HeaderLines:  30,
		Concurrency:  4,
		Verbs:        domain.VerbConfig{Add: []string{"hydrate"}, Remove: []string{"do"}},
		AllowNames:   []string{"^legacy", "Deprecated$"},
		DisableRules: []string{domain.RuleOrphanStyle},
		Severity:     map[string]string{domain.RuleFunctionVerb: domain.SeverityWarning},
		Categories: map[string]domain.CategoryOverride{
			domain.CategoryComponent: {
				RequiredFields:   []string{"layer"},
				ForbiddenImports: []string{domain.CategoryPage, domain.CategoryService},
			},
		},
		Injectors: []domain.InjectorConfig{
			{Name: "owner", Keys: []string{"owner"}, Template: "/** @owner web */\n"},
		},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  domain.ProjectConfig
		want string
	}{
		{"negative header lines", domain.ProjectConfig{HeaderLines: -1}, "header_lines"},
		{"huge header lines", domain.ProjectConfig{HeaderLines: 500}, "header_lines"},
		{"negative concurrency", domain.ProjectConfig{Concurrency: -2}, "concurrency"},
		{"unknown disabled rule", domain.ProjectConfig{DisableRules: []string{"spelling"}}, `unknown rule "spelling"`},
		{"unknown severity rule", domain.ProjectConfig{Severity: map[string]string{"spelling": "error"}}, `unknown rule "spelling"`},
		{"bad severity", domain.ProjectConfig{Severity: map[string]string{domain.RuleOrphanStyle: "fatal"}}, "valid: error, warning, info"},
		{"bad allow regex", domain.ProjectConfig{AllowNames: []string{"("}}, "allow_names[0]"},
		{"unknown category", domain.ProjectConfig{Categories: map[string]domain.CategoryOverride{"widgets": {}}}, `unknown category "widgets"`},
		{
			"bad filename pattern",
			domain.ProjectConfig{Categories: map[string]domain.CategoryOverride{"style": {FilenamePattern: "[a-"}}},
			"categories.style.filename_pattern",
		},
		{
			"unknown forbidden target",
			domain.ProjectConfig{Categories: map[string]domain.CategoryOverride{"hook": {ForbiddenImports: []string{"widgets"}}}},
			"categories.hook.forbidden_imports",
		},
		{"bad include glob", domain.ProjectConfig{Include: []string{"src/**/*.{ts,tsx"}}, "include[0]: malformed glob"},
		{"bad exclude glob", domain.ProjectConfig{Exclude: []string{"**/*.ts", "dist/[**"}}, "exclude[1]: malformed glob"},
		{
			"bad category glob",
			domain.ProjectConfig{Categories: map[string]domain.CategoryOverride{"hook": {Paths: []string{"src/hooks/[**/*.ts"}}}},
			`categories.hook.paths[0]: malformed glob "src/hooks/[**/*.ts"`,
		},
		{"unknown framework", domain.ProjectConfig{Frameworks: []string{"angular"}}, `unknown framework "angular"`},
		{"injector without name", domain.ProjectConfig{Injectors: []domain.InjectorConfig{{Keys: []string{"a"}, Template: "x"}}}, "name must not be empty"},
		{
			"injector shadowing builtin",
			domain.ProjectConfig{Injectors: []domain.InjectorConfig{{Name: "metadata", Keys: []string{"a"}, Template: "x"}}},
			"duplicate injector name",
		},
		{"injector without keys", domain.ProjectConfig{Injectors: []domain.InjectorConfig{{Name: "x", Template: "x"}}}, "keys must not be empty"},
		{"injector without template", domain.ProjectConfig{Injectors: []domain.InjectorConfig{{Name: "x", Keys: []string{"a"}}}}, "template must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

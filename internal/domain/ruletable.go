package domain

import (
	"fmt"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Rule IDs. Each check in the evaluator reports under exactly one of these.
const (
	RuleFilenameCasing   = "filename-casing"
	RuleExportShape      = "export-shape"
	RuleFunctionCasing   = "function-casing"
	RuleFunctionVerb     = "function-verb"
	RuleComponentCasing  = "component-casing"
	RuleBooleanPrefix    = "boolean-prefix"
	RuleConstantCasing   = "constant-casing"
	RuleClassCasing      = "class-casing"
	RuleCSSClassCasing   = "css-class-casing"
	RuleMetadataBlock    = "metadata-block"
	RuleRequiredField    = "required-field"
	RuleFieldValue       = "field-value"
	RuleMissingCompanion = "missing-companion"
	RuleOrphanStyle      = "orphan-style"
	RuleImportDirection  = "import-direction"
)

// ValidRules enumerates every rule ID in evaluation order.
var ValidRules = []string{
	RuleFilenameCasing, RuleExportShape, RuleFunctionCasing, RuleFunctionVerb,
	RuleComponentCasing, RuleBooleanPrefix, RuleConstantCasing, RuleClassCasing,
	RuleCSSClassCasing, RuleMetadataBlock, RuleRequiredField, RuleFieldValue,
	RuleMissingCompanion, RuleOrphanStyle, RuleImportDirection,
}

var defaultSeverity = map[string]string{
	RuleFilenameCasing:   SeverityError,
	RuleExportShape:      SeverityError,
	RuleFunctionCasing:   SeverityError,
	RuleFunctionVerb:     SeverityError,
	RuleComponentCasing:  SeverityError,
	RuleBooleanPrefix:    SeverityWarning,
	RuleConstantCasing:   SeverityWarning,
	RuleClassCasing:      SeverityError,
	RuleCSSClassCasing:   SeverityWarning,
	RuleMetadataBlock:    SeverityError,
	RuleRequiredField:    SeverityError,
	RuleFieldValue:       SeverityError,
	RuleMissingCompanion: SeverityError,
	RuleOrphanStyle:      SeverityWarning,
	RuleImportDirection:  SeverityError,
}

// IsValidRule reports whether id names a known rule.
func IsValidRule(id string) bool {
	_, ok := defaultSeverity[id]
	return ok
}

// Category names.
const (
	CategoryStyle     = "style"
	CategoryComponent = "component"
	CategoryPage      = "page"
	CategoryHook      = "hook"
	CategoryService   = "service"
	CategoryUtility   = "utility"
	CategoryType      = "type"
	CategoryConstant  = "constant"
	CategoryError     = "error"
)

// Casing patterns shared by the rule checks.
var (
	CamelCasePattern  = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
	PascalCasePattern = regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*$`)
	UpperSnakePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*(_[A-Z0-9]+)*$`)
	KebabClassPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*(__[a-z0-9]+(-[a-z0-9]+)*)?(--[a-z0-9]+(-[a-z0-9]+)*)?$`)
)

// DefaultBooleanPrefixes are the allowed leading words of boolean names.
var DefaultBooleanPrefixes = []string{"is", "has", "can", "should", "will", "did"}

// DefaultVerbs is the approved leading-verb taxonomy for function names.
var DefaultVerbs = []string{
	"add", "apply", "build", "calculate", "can", "check", "clear", "close",
	"compare", "compute", "convert", "count", "create", "delete", "did",
	"emit", "ensure", "execute", "extract", "fetch", "filter", "find",
	"format", "generate", "get", "handle", "has", "hide", "init", "is",
	"load", "log", "map", "merge", "must", "normalize", "on", "open",
	"parse", "perform", "process", "read", "receive", "register", "remove",
	"render", "reset", "resolve", "run", "sanitize", "save", "select",
	"send", "set", "should", "show", "sort", "start", "stop", "submit",
	"subscribe", "toggle", "track", "transform", "unsubscribe", "update",
	"use", "validate", "verify", "will", "write",
}

// CategoryRule is the static rule set for one file category.
type CategoryRule struct {
	Name     string
	Paths    []string
	Language Language
	// Filename is matched against the base name including extension.
	Filename     *regexp.Regexp
	FilenameHint string
	// ExportMatchesFilename requires a declaration named like the file.
	ExportMatchesFilename bool
	// PascalDeclarations allows PascalCase functions (React components).
	PascalDeclarations bool
	Layers             []string
	RequiredFields     []string
	PairsWithStyle     bool
	// MustBeReferenced marks style files that need a referencing component.
	MustBeReferenced bool
	ForbiddenImports []string
	LLMRole          string
}

// Forbids reports whether importing target is forbidden for this category.
func (c CategoryRule) Forbids(target string) bool {
	for _, f := range c.ForbiddenImports {
		if f == target {
			return true
		}
	}
	return false
}

// Requires reports whether key is one of the category's required fields.
func (c CategoryRule) Requires(key string) bool {
	for _, f := range c.RequiredFields {
		if f == key {
			return true
		}
	}
	return false
}

// AllowsLayer reports whether layer is one of the category's layers.
func (c CategoryRule) AllowsLayer(layer string) bool {
	if len(c.Layers) == 0 {
		return true
	}
	for _, l := range c.Layers {
		if l == layer {
			return true
		}
	}
	return false
}

func builtinCategories() []CategoryRule {
	scriptAll := []string{CategoryHook, CategoryComponent, CategoryPage, CategoryService, CategoryUtility, CategoryError, CategoryStyle}
	return []CategoryRule{
		{
			Name:             CategoryStyle,
			Paths:            []string{"src/styles/components/**/*.{css,scss}"},
			Language:         LanguageStyle,
			Filename:         regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*\.(css|scss)$`),
			FilenameHint:     "kebab-case.css",
			MustBeReferenced: true,
			LLMRole:          "styling",
		},
		{
			Name:                  CategoryComponent,
			Paths:                 []string{"src/components/**/*.{tsx,jsx}"},
			Language:              LanguageScript,
			Filename:              regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*\.(tsx|jsx)$`),
			FilenameHint:          "PascalCase.tsx",
			ExportMatchesFilename: true,
			PascalDeclarations:    true,
			Layers:                []string{"primitive", "composed", "feature", "layout"},
			RequiredFields:        []string{"layer", "cssFile"},
			PairsWithStyle:        true,
			ForbiddenImports:      []string{CategoryPage},
			LLMRole:               "presentation",
		},
		{
			Name:               CategoryPage,
			Paths:              []string{"src/pages/**/*.{tsx,jsx}"},
			Language:           LanguageScript,
			Filename:           regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*\.(tsx|jsx)$`),
			FilenameHint:       "PascalCase.tsx",
			PascalDeclarations: true,
			Layers:             []string{"page"},
			RequiredFields:     []string{"layer"},
			LLMRole:            "route",
		},
		{
			Name:                  CategoryHook,
			Paths:                 []string{"src/hooks/**/*.{ts,tsx}"},
			Language:              LanguageScript,
			Filename:              regexp.MustCompile(`^use[A-Z][a-zA-Z0-9]*\.(ts|tsx)$`),
			FilenameHint:          "useCamelCase.ts",
			ExportMatchesFilename: true,
			Layers:                []string{"hook"},
			RequiredFields:        []string{"layer", "dependencies"},
			ForbiddenImports:      []string{CategoryPage, CategoryComponent},
			LLMRole:               "state",
		},
		{
			Name:             CategoryService,
			Paths:            []string{"src/services/**/*.ts"},
			Language:         LanguageScript,
			Filename:         regexp.MustCompile(`^[a-z][a-zA-Z0-9]*\.ts$`),
			FilenameHint:     "camelCase.ts",
			Layers:           []string{"service"},
			RequiredFields:   []string{"layer", "dependencies"},
			ForbiddenImports: []string{CategoryHook, CategoryComponent, CategoryPage},
			LLMRole:          "io",
		},
		{
			Name:             CategoryUtility,
			Paths:            []string{"src/utils/**/*.ts", "src/lib/**/*.ts"},
			Language:         LanguageScript,
			Filename:         regexp.MustCompile(`^[a-z][a-zA-Z0-9]*\.ts$`),
			FilenameHint:     "camelCase.ts",
			Layers:           []string{"utility"},
			RequiredFields:   []string{"layer"},
			ForbiddenImports: []string{CategoryHook, CategoryComponent, CategoryPage, CategoryService},
			LLMRole:          "pure-function",
		},
		{
			Name:             CategoryType,
			Paths:            []string{"src/types/**/*.ts"},
			Language:         LanguageScript,
			Filename:         regexp.MustCompile(`^[a-z][a-zA-Z0-9]*(\.types|\.d)?\.ts$`),
			FilenameHint:     "camelCase.types.ts",
			Layers:           []string{"type"},
			RequiredFields:   []string{"layer"},
			ForbiddenImports: scriptAll,
			LLMRole:          "contract",
		},
		{
			Name:             CategoryConstant,
			Paths:            []string{"src/constants/**/*.ts"},
			Language:         LanguageScript,
			Filename:         regexp.MustCompile(`^[a-z][a-zA-Z0-9]*\.ts$`),
			FilenameHint:     "camelCase.ts",
			Layers:           []string{"constant"},
			RequiredFields:   []string{"layer"},
			ForbiddenImports: scriptAll,
			LLMRole:          "configuration",
		},
		{
			Name:                  CategoryError,
			Paths:                 []string{"src/errors/**/*.ts"},
			Language:              LanguageScript,
			Filename:              regexp.MustCompile(`^[A-Z][a-zA-Z0-9]*Error\.ts$`),
			FilenameHint:          "PascalCaseError.ts",
			ExportMatchesFilename: true,
			Layers:                []string{"error"},
			RequiredFields:        []string{"layer"},
			ForbiddenImports:      []string{CategoryHook, CategoryComponent, CategoryPage, CategoryService},
			LLMRole:               "error",
		},
	}
}

// IsBuiltinCategory reports whether name is a known category.
func IsBuiltinCategory(name string) bool {
	for _, c := range builtinCategories() {
		if c.Name == name {
			return true
		}
	}
	return false
}

// RuleTable is the immutable rule configuration for a run. It is built once
// and only read afterwards; accessors hand out copies.
type RuleTable struct {
	categories      []CategoryRule
	verbs           map[string]bool
	booleanPrefixes []string
	allow           []*regexp.Regexp
	frameworks      []string
	singletons      map[string]bool
	disabled        map[string]bool
	severity        map[string]string
	headerLines     int
	concurrency     int
	injectors       []Injector
}

// DefaultRuleTable returns the built-in rule table.
func DefaultRuleTable() *RuleTable {
	t, err := NewRuleTable(DefaultConfig())
	if err != nil {
		panic(fmt.Sprintf("built-in rule table is invalid: %v", err))
	}
	return t
}

// NewRuleTable builds a rule table from the built-in defaults overlaid with cfg.
func NewRuleTable(cfg ProjectConfig) (*RuleTable, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	t := &RuleTable{
		categories:      builtinCategories(),
		verbs:           make(map[string]bool),
		singletons:      make(map[string]bool),
		booleanPrefixes: append([]string(nil), DefaultBooleanPrefixes...),
		disabled:        make(map[string]bool),
		severity:        make(map[string]string, len(defaultSeverity)),
		headerLines:     DefaultHeaderLines,
		injectors:       builtinInjectors(),
	}

	for _, v := range DefaultVerbs {
		t.verbs[v] = true
	}
	for _, v := range cfg.Verbs.Add {
		t.verbs[strings.ToLower(v)] = true
	}
	for _, v := range cfg.Verbs.Remove {
		delete(t.verbs, strings.ToLower(v))
	}

	for _, p := range cfg.AllowNames {
		t.allow = append(t.allow, regexp.MustCompile(p))
	}
	for _, s := range baseSingletons {
		t.singletons[s] = true
	}
	t.frameworks = MergeFrameworks(nil, cfg.Frameworks)
	for _, name := range t.frameworks {
		fw, _ := LookupFramework(name)
		for _, p := range fw.AllowNames {
			t.allow = append(t.allow, regexp.MustCompile(p))
		}
		for _, s := range fw.Singletons {
			t.singletons[s] = true
		}
	}
	for _, r := range cfg.DisableRules {
		t.disabled[r] = true
	}
	for r, s := range defaultSeverity {
		t.severity[r] = s
	}
	for r, s := range cfg.Severity {
		t.severity[r] = s
	}
	if cfg.HeaderLines > 0 {
		t.headerLines = cfg.HeaderLines
	}
	t.concurrency = cfg.Concurrency

	for i := range t.categories {
		ov, ok := cfg.Categories[t.categories[i].Name]
		if !ok {
			continue
		}
		applyOverride(&t.categories[i], ov)
	}

	for _, ic := range cfg.Injectors {
		t.injectors = append(t.injectors, Injector{
			Name:       ic.Name,
			Keys:       append([]string(nil), ic.Keys...),
			Categories: append([]string(nil), ic.Categories...),
			Template:   ic.Template,
		})
	}

	return t, nil
}

func applyOverride(c *CategoryRule, ov CategoryOverride) {
	if len(ov.Paths) > 0 {
		c.Paths = append([]string(nil), ov.Paths...)
	}
	if ov.FilenamePattern != "" {
		c.Filename = regexp.MustCompile(ov.FilenamePattern)
		c.FilenameHint = ov.FilenamePattern
	}
	if ov.RequiredFields != nil {
		c.RequiredFields = append([]string(nil), ov.RequiredFields...)
	}
	if ov.Layers != nil {
		c.Layers = append([]string(nil), ov.Layers...)
	}
	if ov.ForbiddenImports != nil {
		c.ForbiddenImports = append([]string(nil), ov.ForbiddenImports...)
	}
}

// Categorize assigns a category from the path alone. The first category
// whose globs match wins; ok is false for unrecognized locations.
func (t *RuleTable) Categorize(relPath string) (CategoryRule, bool) {
	p := path.Clean(strings.ReplaceAll(relPath, "\\", "/"))
	for _, c := range t.categories {
		for _, pattern := range c.Paths {
			if ok, _ := doublestar.Match(pattern, p); ok {
				return copyCategory(c), true
			}
		}
	}
	return CategoryRule{}, false
}

// CategorizeImport resolves a module specifier found in fromFile to the
// category of its target. Extensionless targets are tried with the usual
// script and style extensions and as directory index files.
func (t *RuleTable) CategorizeImport(fromFile, specifier string) (CategoryRule, bool) {
	if !IsLocalImport(specifier) {
		return CategoryRule{}, false
	}
	target := ResolveProjectPath(fromFile, specifier)
	if path.Ext(target) != "" {
		if c, ok := t.Categorize(target); ok {
			return c, true
		}
	}
	for _, suffix := range []string{".ts", ".tsx", ".js", ".jsx", ".css", "/index.ts", "/index.tsx"} {
		if c, ok := t.Categorize(target + suffix); ok {
			return c, true
		}
	}
	return CategoryRule{}, false
}

// Category returns the named category rule.
func (t *RuleTable) Category(name string) (CategoryRule, bool) {
	for _, c := range t.categories {
		if c.Name == name {
			return copyCategory(c), true
		}
	}
	return CategoryRule{}, false
}

// Categories returns all category rules in matching order.
func (t *RuleTable) Categories() []CategoryRule {
	out := make([]CategoryRule, len(t.categories))
	for i, c := range t.categories {
		out[i] = copyCategory(c)
	}
	return out
}

// IncludeGlobs returns the union of all category path globs.
func (t *RuleTable) IncludeGlobs() []string {
	var globs []string
	for _, c := range t.categories {
		globs = append(globs, c.Paths...)
	}
	return globs
}

// IsVerb reports whether word is in the verb taxonomy.
func (t *RuleTable) IsVerb(word string) bool {
	return t.verbs[strings.ToLower(word)]
}

// Verbs returns the verb taxonomy sorted alphabetically.
func (t *RuleTable) Verbs() []string {
	out := make([]string, 0, len(t.verbs))
	for v := range t.verbs {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// BooleanPrefixes returns the allowed boolean prefixes.
func (t *RuleTable) BooleanPrefixes() []string {
	return append([]string(nil), t.booleanPrefixes...)
}

// IsAllowed reports whether name matches a configured exemption.
func (t *RuleTable) IsAllowed(name string) bool {
	for _, re := range t.allow {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

// Frameworks returns the frameworks whose idioms are active.
func (t *RuleTable) Frameworks() []string {
	return append([]string(nil), t.frameworks...)
}

// IsSingletonFactory reports whether a const initialized by calling callee
// holds a long-lived instance. Both the full callee ("axios.create") and
// its last segment are looked up.
func (t *RuleTable) IsSingletonFactory(callee string) bool {
	if callee == "" {
		return false
	}
	if t.singletons[callee] {
		return true
	}
	if i := strings.LastIndex(callee, "."); i >= 0 {
		return t.singletons[callee[i+1:]]
	}
	return false
}

// Enabled reports whether a rule runs.
func (t *RuleTable) Enabled(rule string) bool {
	return !t.disabled[rule]
}

// Severity returns the configured severity for a rule.
func (t *RuleTable) Severity(rule string) string {
	if s, ok := t.severity[rule]; ok {
		return s
	}
	return SeverityError
}

// HeaderLines is the number of leading lines searched for a metadata block.
func (t *RuleTable) HeaderLines() int {
	return t.headerLines
}

// Concurrency is the configured worker count; zero means one per CPU.
func (t *RuleTable) Concurrency() int {
	return t.concurrency
}

// Injector returns the named metadata injector.
func (t *RuleTable) Injector(name string) (Injector, bool) {
	for _, inj := range t.injectors {
		if inj.Name == name {
			return inj.clone(), true
		}
	}
	return Injector{}, false
}

// Injectors returns all injectors, built-ins first.
func (t *RuleTable) Injectors() []Injector {
	out := make([]Injector, len(t.injectors))
	for i, inj := range t.injectors {
		out[i] = inj.clone()
	}
	return out
}

func copyCategory(c CategoryRule) CategoryRule {
	c.Paths = append([]string(nil), c.Paths...)
	c.Layers = append([]string(nil), c.Layers...)
	c.RequiredFields = append([]string(nil), c.RequiredFields...)
	c.ForbiddenImports = append([]string(nil), c.ForbiddenImports...)
	return c
}

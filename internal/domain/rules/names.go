package rules

import (
	"fmt"
	"path"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/naming"
)

const verbMessage = "functions must start with an approved verb"

func checkFunctionName(t *domain.RuleTable, name string) *finding {
	if !domain.CamelCasePattern.MatchString(name) {
		return &finding{
			rule:       domain.RuleFunctionCasing,
			kind:       domain.KindMalformedPattern,
			expected:   "camelCase",
			message:    "functions must be camelCase",
			suggestion: naming.ToCamel(name),
		}
	}
	if naming.Exemption(name) != "" || naming.HasVerbPrefix(name, t.IsVerb) {
		return nil
	}
	return &finding{
		rule:       domain.RuleFunctionVerb,
		kind:       domain.KindMalformedPattern,
		expected:   "verbNoun",
		message:    verbMessage,
		suggestion: naming.SuggestVerbFirst(name, t.IsVerb),
	}
}

func checkComponentName(name string) *finding {
	if domain.PascalCasePattern.MatchString(name) {
		return nil
	}
	return &finding{
		rule:       domain.RuleComponentCasing,
		kind:       domain.KindMalformedPattern,
		expected:   "PascalCase",
		message:    "components must be PascalCase",
		suggestion: naming.ToPascal(name),
	}
}

func checkBooleanName(t *domain.RuleTable, name string) *finding {
	prefixes := t.BooleanPrefixes()
	if naming.HasPrefixWord(name, prefixes) {
		return nil
	}
	return &finding{
		rule:       domain.RuleBooleanPrefix,
		kind:       domain.KindMalformedPattern,
		expected:   strings.Join(prefixes, "|") + " prefix",
		message:    "booleans must start with " + strings.Join(prefixes, ", "),
		suggestion: naming.SuggestBoolean(name),
	}
}

func checkConstantName(name, what string) *finding {
	if domain.UpperSnakePattern.MatchString(name) {
		return nil
	}
	return &finding{
		rule:       domain.RuleConstantCasing,
		kind:       domain.KindMalformedPattern,
		expected:   "UPPER_SNAKE_CASE",
		message:    what + " must be UPPER_SNAKE_CASE",
		suggestion: naming.ToUpperSnake(name),
	}
}

// checkInstanceName requires singleton and logger instances to read like
// variables.
func checkInstanceName(name string) *finding {
	if domain.CamelCasePattern.MatchString(name) {
		return nil
	}
	words := name
	if strings.ToUpper(name) == name {
		words = strings.ToLower(name)
	}
	return &finding{
		rule:       domain.RuleConstantCasing,
		kind:       domain.KindMalformedPattern,
		expected:   "camelCase",
		message:    "singleton instances must be camelCase",
		suggestion: naming.ToCamel(words),
	}
}

func checkClassName(name string, errorCategory bool) *finding {
	if !domain.PascalCasePattern.MatchString(name) {
		fd := &finding{
			rule:       domain.RuleClassCasing,
			kind:       domain.KindMalformedPattern,
			expected:   "PascalCase",
			message:    "classes must be PascalCase",
			suggestion: naming.ToPascal(name),
		}
		if errorCategory && !strings.HasSuffix(fd.suggestion, "Error") {
			fd.suggestion += "Error"
		}
		return fd
	}
	if errorCategory && !strings.HasSuffix(name, "Error") {
		return &finding{
			rule:       domain.RuleClassCasing,
			kind:       domain.KindMalformedPattern,
			expected:   "PascalCaseError",
			message:    "error classes must end with Error",
			suggestion: name + "Error",
		}
	}
	return nil
}

func checkCSSClassName(name string) *finding {
	if domain.KebabClassPattern.MatchString(name) {
		return nil
	}
	fd := &finding{
		rule:     domain.RuleCSSClassCasing,
		kind:     domain.KindMalformedPattern,
		expected: "kebab-case",
		message:  "CSS classes must be kebab-case (BEM __element and --modifier allowed)",
	}
	if s := naming.ToKebab(name); domain.KebabClassPattern.MatchString(s) {
		fd.suggestion = s
	}
	return fd
}

func checkFilename(cat domain.CategoryRule, base string) *finding {
	if cat.Filename == nil || cat.Filename.MatchString(base) {
		return nil
	}
	fd := &finding{
		rule:     domain.RuleFilenameCasing,
		kind:     domain.KindMalformedPattern,
		expected: cat.FilenameHint,
		message:  fmt.Sprintf("%s filenames must look like %s", cat.Name, cat.FilenameHint),
	}
	if s := SuggestFilename(cat, base); s != "" && s != base {
		fd.suggestion = s
	}
	return fd
}

// SuggestFilename proposes a base name that satisfies the category's
// filename pattern, or "" when no conversion does.
func SuggestFilename(cat domain.CategoryRule, base string) string {
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	inner := ""
	if i := strings.Index(stem, "."); i > 0 {
		stem, inner = stem[:i], stem[i:]
	}

	var out string
	switch cat.Name {
	case domain.CategoryStyle:
		out = naming.ToKebab(stem)
	case domain.CategoryComponent, domain.CategoryPage:
		out = naming.ToPascal(stem)
	case domain.CategoryHook:
		out = "use" + strings.TrimPrefix(naming.ToPascal(stem), "Use")
	case domain.CategoryError:
		out = naming.ToPascal(stem)
		if !strings.HasSuffix(out, "Error") {
			out += "Error"
		}
	default:
		out = naming.ToCamel(stem)
	}
	out += inner + ext
	if cat.Filename != nil && !cat.Filename.MatchString(out) {
		return ""
	}
	return out
}

// Name kinds accepted by CheckName.
const (
	NameFunction  = "function"
	NameComponent = "component"
	NameBoolean   = "boolean"
	NameConstant  = "constant"
	NameInstance  = "instance"
	NameClass     = "class"
	NameCSSClass  = "css-class"
)

// NameKinds lists the identifier kinds CheckName understands.
var NameKinds = []string{NameFunction, NameComponent, NameBoolean, NameConstant, NameInstance, NameClass, NameCSSClass}

// NameVerdict is the outcome of checking a single identifier.
type NameVerdict struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Valid      bool   `json:"valid"`
	Exempt     string `json:"exempt,omitempty"`
	Rule       string `json:"rule,omitempty"`
	Expected   string `json:"expected,omitempty"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CheckName checks an identifier of the given kind against the rule table.
func CheckName(t *domain.RuleTable, name, kind string) (NameVerdict, error) {
	v := NameVerdict{Name: name, Kind: kind}
	if t.IsAllowed(name) {
		v.Valid, v.Exempt = true, "allow_names"
		return v, nil
	}

	var fd *finding
	switch kind {
	case NameFunction, "":
		v.Kind = NameFunction
		v.Exempt = naming.Exemption(name)
		fd = checkFunctionName(t, name)
	case NameComponent:
		fd = checkComponentName(name)
	case NameBoolean:
		fd = checkBooleanName(t, name)
	case NameConstant:
		fd = checkConstantName(name, "literal constants")
	case NameInstance:
		fd = checkInstanceName(name)
	case NameClass:
		fd = checkClassName(name, false)
	case NameCSSClass:
		fd = checkCSSClassName(name)
	default:
		return v, fmt.Errorf("unknown name kind %q (valid: %s)", kind, strings.Join(NameKinds, ", "))
	}
	return fd.verdict(v), nil
}

// CheckFilename checks a base file name against a category's filename rule.
func CheckFilename(t *domain.RuleTable, base, category string) (NameVerdict, error) {
	cat, ok := t.Category(category)
	if !ok {
		return NameVerdict{}, fmt.Errorf("unknown category %q", category)
	}
	v := NameVerdict{Name: base, Kind: "filename:" + category}
	return checkFilename(cat, base).verdict(v), nil
}

func (fd *finding) verdict(v NameVerdict) NameVerdict {
	if fd == nil {
		v.Valid = true
		return v
	}
	v.Exempt = ""
	v.Rule = fd.rule
	v.Expected = fd.expected
	v.Message = fd.message
	v.Suggestion = fd.suggestion
	return v
}

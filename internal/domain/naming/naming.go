// Package naming splits identifiers into words and rebuilds them in the
// casings the rule checks ask for.
package naming

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
)

// Words splits an identifier into its words. snake_case and kebab-case are
// split on their separators, everything else on camel humps.
func Words(name string) []string {
	if strings.ContainsAny(name, "_-") {
		var out []string
		for _, part := range strings.FieldsFunc(name, func(r rune) bool { return r == '_' || r == '-' }) {
			out = append(out, camelcase.Split(part)...)
		}
		return out
	}
	var out []string
	for _, w := range camelcase.Split(name) {
		if strings.TrimSpace(w) != "" {
			out = append(out, w)
		}
	}
	return out
}

// FirstWord returns the lowercased leading word of name.
func FirstWord(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0])
}

// HasVerbPrefix reports whether the leading word of name is a verb.
func HasVerbPrefix(name string, isVerb func(string) bool) bool {
	first := FirstWord(name)
	return first != "" && isVerb(first)
}

// SuggestVerbFirst moves the first verb found after the leading word to the
// front: emailValidate becomes validateEmail. It returns "" when name holds
// no verb at all.
func SuggestVerbFirst(name string, isVerb func(string) bool) string {
	words := Words(name)
	for i := 1; i < len(words); i++ {
		if !isVerb(strings.ToLower(words[i])) {
			continue
		}
		rest := make([]string, 0, len(words)-1)
		rest = append(rest, words[:i]...)
		rest = append(rest, words[i+1:]...)
		return strings.ToLower(words[i]) + joinTitled(rest)
	}
	return ""
}

// HasPrefixWord reports whether the leading word of name is one of prefixes.
func HasPrefixWord(name string, prefixes []string) bool {
	first := FirstWord(name)
	for _, p := range prefixes {
		if first == p {
			return true
		}
	}
	return false
}

// ToCamel rebuilds name as camelCase.
func ToCamel(name string) string {
	words := Words(name)
	if len(words) == 0 {
		return ""
	}
	return strings.ToLower(words[0]) + joinTitled(words[1:])
}

// ToPascal rebuilds name as PascalCase.
func ToPascal(name string) string {
	return joinTitled(Words(name))
}

// ToUpperSnake rebuilds name as UPPER_SNAKE_CASE.
func ToUpperSnake(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToUpper(w)
	}
	return strings.Join(words, "_")
}

// ToKebab rebuilds name as kebab-case.
func ToKebab(name string) string {
	words := Words(name)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-")
}

// SuggestBoolean prefixes name with "is" in the name's own casing.
func SuggestBoolean(name string) string {
	if name != "" && strings.ToUpper(name) == name {
		return "IS_" + ToUpperSnake(name)
	}
	return "is" + ToPascal(name)
}

func joinTitled(words []string) string {
	var b strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		if isAcronym(w) && len(r) > 1 {
			r = []rune(w)
		}
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}

func isAcronym(w string) bool {
	for _, r := range w {
		if !unicode.IsUpper(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

var testHelpers = map[string]bool{
	"describe": true, "it": true, "test": true, "expect": true,
	"beforeEach": true, "afterEach": true, "beforeAll": true, "afterAll": true,
}

// Exemption returns why name is exempt from the leading-verb rule, or "".
func Exemption(name string) string {
	switch {
	case testHelpers[name] || strings.HasPrefix(name, "test") && len(name) > 4 && unicode.IsUpper(rune(name[4])):
		return "test helper"
	case hasHumpPrefix(name, "on"), hasHumpPrefix(name, "handle"):
		return "event handler"
	case hasHumpPrefix(name, "use"):
		return "hook"
	}
	return ""
}

func hasHumpPrefix(name, prefix string) bool {
	if !strings.HasPrefix(name, prefix) || len(name) <= len(prefix) {
		return false
	}
	return unicode.IsUpper(rune(name[len(prefix)]))
}

package extract

import (
	"regexp"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
)

const ident = `[A-Za-z_$][\w$]*`

var (
	funcDeclPattern  = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(` + ident + `)\s*[<(]`)
	arrowPattern     = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+(` + ident + `)\s*(?::[^=]+)?=\s*(?:async\s+)?(?:function\b|(?:<[^>]*>\s*)?\([^)]*\)\s*(?::[^=]+)?=>|` + ident + `\s*=>)`)
	classPattern     = regexp.MustCompile(`^\s*(export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+(` + ident + `)`)
	constPattern     = regexp.MustCompile(`^(export\s+)?const\s+(` + ident + `)\s*(?::[^=]+)?=\s*(.+)$`)
	boolTypedPattern = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+(` + ident + `)\s*:\s*boolean\b`)
	boolInitPattern  = regexp.MustCompile(`^\s*(export\s+)?(?:const|let|var)\s+(` + ident + `)\s*=\s*(?:true|false)\s*;?\s*$`)
	boolStatePattern = regexp.MustCompile(`^\s*const\s+\[\s*(` + ident + `)\s*,\s*set[A-Z][\w$]*\s*\]\s*=\s*(?:React\.)?useState(?:<boolean>)?\(\s*(?:true|false)\s*\)`)
	literalPattern   = regexp.MustCompile("^(['\"`]|-?\\d|true\\b|false\\b|null\\b|\\[|\\{)")
	regexInitPattern = regexp.MustCompile(`^(?:/[^/*]|(?:new\s+)?RegExp\s*\()`)
	callInitPattern  = regexp.MustCompile(`^(?:new\s+)?(` + ident + `(?:\.` + ident + `)*)\s*(?:<[^>]*>)?\s*\(`)

	importPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\s*import\s+(?:type\s+)?(?:[\w$*{}\s,]+\s+from\s+)?['"]([^'"]+)['"]`),
		regexp.MustCompile(`^\s*export\s+(?:type\s+)?(?:\*(?:\s+as\s+` + ident + `)?|\{[^}]*\})\s+from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`^\s*\}\s*from\s+['"]([^'"]+)['"]`),
		regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`),
		regexp.MustCompile(`\bimport\(\s*['"]([^'"]+)['"]\s*\)`),
	}

	selectorPattern  = regexp.MustCompile(`([^{}]+)\{`)
	cssClassPattern  = regexp.MustCompile(`\.(-?[_a-zA-Z][_a-zA-Z0-9-]*)`)
	cssCommentPatten = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// ExtractIdentifiers returns the structural names found in content.
func ExtractIdentifiers(content string, lang domain.Language) domain.Identifiers {
	if lang == domain.LanguageStyle {
		return domain.Identifiers{CSSClasses: extractCSSClasses(content)}
	}
	return extractScript(content)
}

func extractScript(content string) domain.Identifiers {
	var ids domain.Identifiers
	seenImport := make(map[string]bool)

	for i, line := range codeLines(content) {
		n := i + 1
		if strings.TrimSpace(line) == "" {
			continue
		}

		for _, re := range importPatterns {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				if !seenImport[m[1]] {
					seenImport[m[1]] = true
					ids.Imports = append(ids.Imports, domain.Identifier{Name: m[1], Line: n})
				}
			}
		}

		switch {
		case funcDeclPattern.MatchString(line):
			m := funcDeclPattern.FindStringSubmatch(line)
			ids.Functions = append(ids.Functions, domain.Identifier{Name: m[2], Line: n, Exported: m[1] != ""})
		case arrowPattern.MatchString(line):
			m := arrowPattern.FindStringSubmatch(line)
			ids.Functions = append(ids.Functions, domain.Identifier{Name: m[2], Line: n, Exported: m[1] != ""})
		case classPattern.MatchString(line):
			m := classPattern.FindStringSubmatch(line)
			ids.Classes = append(ids.Classes, domain.Identifier{Name: m[2], Line: n, Exported: m[1] != ""})
		case constPattern.MatchString(line):
			m := constPattern.FindStringSubmatch(line)
			kind, callee := classifyInit(m[3])
			ids.Constants = append(ids.Constants, domain.Identifier{
				Name:     m[2],
				Line:     n,
				Exported: m[1] != "",
				Init:     kind,
				Callee:   callee,
			})
		}

		for _, re := range []*regexp.Regexp{boolTypedPattern, boolInitPattern} {
			if m := re.FindStringSubmatch(line); m != nil {
				ids.Booleans = append(ids.Booleans, domain.Identifier{Name: m[2], Line: n, Exported: m[1] != ""})
				break
			}
		}
		if m := boolStatePattern.FindStringSubmatch(line); m != nil {
			ids.Booleans = append(ids.Booleans, domain.Identifier{Name: m[1], Line: n})
		}
	}

	return ids
}

// classifyInit tells plain values, regular expressions and calls apart in a
// const initializer. callee is set for calls and constructors.
func classifyInit(value string) (kind, callee string) {
	v := strings.TrimSpace(value)
	switch {
	case regexInitPattern.MatchString(v):
		return domain.InitRegex, ""
	case literalPattern.MatchString(v):
		return domain.InitLiteral, ""
	}
	if m := callInitPattern.FindStringSubmatch(v); m != nil {
		return domain.InitCall, m[1]
	}
	return "", ""
}

// codeLines returns the lines of content with comments blanked out so that
// line numbers stay aligned with the original text.
func codeLines(content string) []string {
	lines := SplitLines(content)
	inBlock := false
	for i, line := range lines {
		var b strings.Builder
		rest := line
		for rest != "" {
			if inBlock {
				end := strings.Index(rest, "*/")
				if end < 0 {
					rest = ""
					break
				}
				rest = rest[end+2:]
				inBlock = false
				continue
			}
			start := strings.Index(rest, "/*")
			lineComment := strings.Index(rest, "//")
			if lineComment >= 0 && (start < 0 || lineComment < start) && !insideString(rest, lineComment) {
				b.WriteString(rest[:lineComment])
				rest = ""
				break
			}
			if start < 0 || insideString(rest, start) {
				b.WriteString(rest)
				rest = ""
				break
			}
			b.WriteString(rest[:start])
			rest = rest[start+2:]
			inBlock = true
		}
		lines[i] = b.String()
	}
	return lines
}

// insideString reports whether position idx of line falls inside a quoted
// string. Only single-line strings are considered.
func insideString(line string, idx int) bool {
	var quote byte
	for i := 0; i < idx; i++ {
		c := line[i]
		switch {
		case quote != 0 && c == '\\':
			i++
		case quote != 0 && c == quote:
			quote = 0
		case quote == 0 && (c == '\'' || c == '"' || c == '`'):
			quote = c
		}
	}
	return quote != 0
}

func extractCSSClasses(content string) []domain.Identifier {
	stripped := cssCommentPatten.ReplaceAllStringFunc(content, func(s string) string {
		return strings.Map(func(r rune) rune {
			if r == '\n' {
				return r
			}
			return ' '
		}, s)
	})

	var out []domain.Identifier
	seen := make(map[string]bool)
	for _, loc := range selectorPattern.FindAllStringSubmatchIndex(stripped, -1) {
		selStart, selEnd := loc[2], loc[3]
		selector := stripped[selStart:selEnd]
		if strings.HasPrefix(strings.TrimSpace(selector), "@") {
			continue
		}
		for _, m := range cssClassPattern.FindAllStringSubmatchIndex(selector, -1) {
			name := selector[m[2]:m[3]]
			if seen[name] {
				continue
			}
			seen[name] = true
			line := 1 + strings.Count(stripped[:selStart+m[0]], "\n")
			out = append(out, domain.Identifier{Name: name, Line: line})
		}
	}
	return out
}

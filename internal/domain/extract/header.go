// Package extract pulls metadata blocks and identifiers out of source text
// with line-oriented regular expressions. Nothing here touches the filesystem.
package extract

import (
	"regexp"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
)

var (
	tagPattern       = regexp.MustCompile(`^@([A-Za-z][\w.-]*)(?:\s+(.*))?$`)
	directivePattern = regexp.MustCompile(`^['"]use [a-z]+['"];?$`)
)

// SplitLines splits text into lines without trailing carriage returns.
func SplitLines(content string) []string {
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, "\r")
	}
	return lines
}

// ParseHeader finds the leading comment blocks that start within the first
// maxLines lines and parses their @tag lines. A shebang, blank lines and
// "use ..." directives may precede them. Adjacent blocks separated only by
// blank lines are merged, the first occurrence of a tag winning. Tags on
// lines past maxLines are ignored. Tags without a value are kept with an
// empty value so callers can tell a malformed tag from an absent one.
func ParseHeader(content string, maxLines int) domain.Header {
	if maxLines <= 0 {
		maxLines = domain.DefaultHeaderLines
	}
	lines := SplitLines(content)
	limit := min(maxLines, len(lines))

	i := 0
	if limit > 0 && strings.HasPrefix(lines[0], "#!") {
		i = 1
	}
	i = skipBlank(lines, i, limit, true)

	var h domain.Header
	for i < limit {
		first := strings.TrimSpace(lines[i])
		if !strings.HasPrefix(first, "/*") && !strings.HasPrefix(first, "//") {
			break
		}
		if !h.Present {
			h = domain.Header{Present: true, StartLine: i + 1, Fields: map[string]domain.Field{}}
		}
		if strings.HasPrefix(first, "/*") {
			i = parseBlockComment(&h, lines, i, limit)
		} else {
			i = parseLineComments(&h, lines, i, limit)
		}
		i = skipBlank(lines, i, limit, false)
	}
	return h
}

func skipBlank(lines []string, i, limit int, directives bool) int {
	for i < limit {
		t := strings.TrimSpace(lines[i])
		if t == "" || (directives && directivePattern.MatchString(t)) {
			i++
			continue
		}
		break
	}
	return i
}

// parseBlockComment reads a /* */ comment starting at start and returns the
// index of the line after it.
func parseBlockComment(h *domain.Header, lines []string, start, limit int) int {
	for j := start; j < limit; j++ {
		text := strings.TrimSpace(lines[j])
		if j == start {
			text = strings.TrimPrefix(text, "/**")
			text = strings.TrimPrefix(text, "/*")
		}
		closed := false
		if idx := strings.Index(text, "*/"); idx >= 0 {
			rest := strings.TrimSpace(text[idx+2:])
			text = text[:idx]
			closed = true
			if rest != "" {
				addTag(h, strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(text), "*")), j+1)
				return limit
			}
		}
		text = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(text), "*"))
		addTag(h, text, j+1)
		if closed {
			return j + 1
		}
	}
	return limit
}

func parseLineComments(h *domain.Header, lines []string, start, limit int) int {
	j := start
	for ; j < limit; j++ {
		text := strings.TrimSpace(lines[j])
		if !strings.HasPrefix(text, "//") {
			break
		}
		text = strings.TrimSpace(strings.TrimLeft(text, "/"))
		addTag(h, text, j+1)
	}
	return j
}

func addTag(h *domain.Header, text string, line int) {
	m := tagPattern.FindStringSubmatch(text)
	if m == nil {
		return
	}
	key := m[1]
	if _, dup := h.Fields[key]; dup {
		return
	}
	h.Fields[key] = domain.Field{Value: strings.TrimSpace(m[2]), Line: line}
}

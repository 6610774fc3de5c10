package extract

import (
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
)

// HasAnyTag reports whether the header carries at least one of keys.
func HasAnyTag(h domain.Header, keys []string) bool {
	for _, k := range keys {
		if h.Has(k) {
			return true
		}
	}
	return false
}

// InjectHeader inserts block into content unless the leading metadata block
// already carries one of the recognized keys. The block goes immediately
// after a shebang line when there is one, otherwise at the very top.
// Existing content is never removed. The second result reports whether the
// content changed.
func InjectHeader(content, block string, recognized []string, maxLines int) (string, bool) {
	if HasAnyTag(ParseHeader(content, maxLines), recognized) {
		return content, false
	}
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}

	if strings.HasPrefix(content, "#!") {
		nl := strings.IndexByte(content, '\n')
		if nl < 0 {
			return content + "\n" + block, true
		}
		return content[:nl+1] + block + content[nl+1:], true
	}
	return block + content, true
}

package parser

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"unicode/utf8"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/extract"
)

// maxFileSize caps the files read for extraction; larger files are generated
// bundles, not hand-written sources.
const maxFileSize = 2 << 20

// SourceParser implements domain.SourceAnalyzer with the regex extractors.
type SourceParser struct{}

func New() *SourceParser {
	return &SourceParser{}
}

func (p *SourceParser) AnalyzeFile(root, relPath, category string, headerLines int) (*domain.SourceFile, error) {
	full := filepath.Join(root, filepath.FromSlash(relPath))
	info, err := os.Stat(full)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("reading %s: file larger than %d bytes", relPath, maxFileSize)
	}

	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", relPath, err)
	}
	if bytes.IndexByte(data, 0) >= 0 || !utf8.Valid(data) {
		return nil, fmt.Errorf("reading %s: not a text file", relPath)
	}

	content := string(data)
	lang := LanguageOf(relPath)
	return &domain.SourceFile{
		Path:        relPath,
		Category:    category,
		Language:    lang,
		Content:     content,
		Header:      extract.ParseHeader(content, headerLines),
		Identifiers: extract.ExtractIdentifiers(content, lang),
	}, nil
}

// LanguageOf picks the extractor for a file by extension.
func LanguageOf(relPath string) domain.Language {
	switch path.Ext(relPath) {
	case ".css", ".scss":
		return domain.LanguageStyle
	default:
		return domain.LanguageScript
	}
}

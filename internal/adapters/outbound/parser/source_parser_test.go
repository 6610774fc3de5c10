package parser_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/grammarops/grammarops/internal/adapters/outbound/parser"
	"github.com/grammarops/grammarops/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureRoot = "../../../../testdata/webapp/clean"

func TestSourceParser_Component(t *testing.T) {
	p := parser.New()
	f, err := p.AnalyzeFile(fixtureRoot, "src/components/Button.tsx", domain.CategoryComponent, 20)
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageScript, f.Language)
	assert.Equal(t, domain.CategoryComponent, f.Category)
	assert.True(t, f.Header.Present)
	assert.Equal(t, "primitive", f.Header.Fields["layer"].Value)
	assert.True(t, f.Identifiers.Declares("Button"))
	assert.NotEmpty(t, f.Content)
}

func TestSourceParser_Style(t *testing.T) {
	p := parser.New()
	f, err := p.AnalyzeFile(fixtureRoot, "src/styles/components/button.css", domain.CategoryStyle, 20)
	require.NoError(t, err)

	assert.Equal(t, domain.LanguageStyle, f.Language)
	assert.NotEmpty(t, f.Identifiers.CSSClasses)
	assert.Empty(t, f.Identifiers.Functions)
}

func TestSourceParser_MissingFile(t *testing.T) {
	_, err := parser.New().AnalyzeFile(t.TempDir(), "src/utils/nope.ts", domain.CategoryUtility, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading src/utils/nope.ts")
}

func TestSourceParser_BinaryFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "utils"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "utils", "blob.ts"), []byte{0x00, 0xff, 0x10}, 0644))

	_, err := parser.New().AnalyzeFile(root, "src/utils/blob.ts", domain.CategoryUtility, 20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a text file")
}

func TestLanguageOf(t *testing.T) {
	assert.Equal(t, domain.LanguageStyle, parser.LanguageOf("a/b.scss"))
	assert.Equal(t, domain.LanguageStyle, parser.LanguageOf("a/b.css"))
	assert.Equal(t, domain.LanguageScript, parser.LanguageOf("a/b.tsx"))
}

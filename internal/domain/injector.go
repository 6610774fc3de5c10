package domain

import (
	"fmt"
	"path"
	"strings"
	"text/template"

	"github.com/grammarops/grammarops/internal/domain/naming"
)

const (
	InjectorMetadata      = "metadata"
	InjectorLLMDirectives = "llm-directives"
)

// Injector generates a leading metadata block for files that lack one.
type Injector struct {
	Name        string
	Description string
	// Keys are the recognized tags; a file carrying any of them is left
	// untouched. Empty means the category's required fields.
	Keys []string
	// Categories limits the injector; empty means every category.
	Categories []string
	Template   string
}

// HeaderData is the template input for an injector.
type HeaderData struct {
	Name         string
	Path         string
	Category     string
	Layer        string
	CSSFile      string
	Role         string
	Dependencies string
	Fields       []string
	PairsWith    bool
}

const metadataTemplate = `/**
{{- range .Fields}}
{{- if eq . "layer"}}
 * @layer {{$.Layer}}
{{- else if eq . "cssFile"}}
 * @cssFile {{if $.PairsWith}}{{$.CSSFile}}{{else}}none{{end}}
{{- else if eq . "dependencies"}}
 * @dependencies {{$.Dependencies}}
{{- else}}
 * @{{.}} TODO
{{- end}}
{{- end}}
 */
`

const llmDirectivesTemplate = `/**
 * @llm-read true
 * @llm-write full-edit
 * @llm-role {{.Role}}
 */
`

func builtinInjectors() []Injector {
	return []Injector{
		{
			Name:        InjectorMetadata,
			Description: "Insert the category's required @tags",
			Template:    metadataTemplate,
		},
		{
			Name:        InjectorLLMDirectives,
			Description: "Insert @llm-read/@llm-write/@llm-role directives",
			Keys:        []string{"llm-read", "llm-write", "llm-role"},
			Template:    llmDirectivesTemplate,
		},
	}
}

func isBuiltinInjector(name string) bool {
	for _, inj := range builtinInjectors() {
		if inj.Name == name {
			return true
		}
	}
	return false
}

// AppliesTo reports whether the injector handles the category.
func (inj Injector) AppliesTo(category CategoryRule) bool {
	if len(inj.Keys) == 0 && len(category.RequiredFields) == 0 {
		return false
	}
	if len(inj.Categories) == 0 {
		return true
	}
	for _, c := range inj.Categories {
		if c == category.Name {
			return true
		}
	}
	return false
}

// RecognizedKeys returns the tags whose presence makes injection a no-op.
func (inj Injector) RecognizedKeys(category CategoryRule) []string {
	if len(inj.Keys) > 0 {
		return append([]string(nil), inj.Keys...)
	}
	return append([]string(nil), category.RequiredFields...)
}

// Render produces the header block for relPath.
func (inj Injector) Render(category CategoryRule, relPath string) (string, error) {
	tmpl, err := template.New(inj.Name).Parse(inj.Template)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", inj.Name, err)
	}

	name := StripExt(path.Base(relPath))
	data := HeaderData{
		Name:         name,
		Path:         relPath,
		Category:     category.Name,
		Layer:        InferLayer(category, relPath),
		CSSFile:      DefaultStylePath(name),
		Role:         category.LLMRole,
		Dependencies: "none",
		Fields:       category.RequiredFields,
		PairsWith:    category.PairsWithStyle,
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", inj.Name, err)
	}
	out := b.String()
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out, nil
}

func (inj Injector) clone() Injector {
	inj.Keys = append([]string(nil), inj.Keys...)
	inj.Categories = append([]string(nil), inj.Categories...)
	return inj
}

// InferLayer derives a layer from the file's directories. A directory named
// after an allowed layer (singular or plural) wins; otherwise the category's
// first layer is used.
func InferLayer(category CategoryRule, relPath string) string {
	if len(category.Layers) == 0 {
		return category.Name
	}
	for _, seg := range strings.Split(path.Dir(relPath), "/") {
		seg = strings.ToLower(seg)
		for _, l := range category.Layers {
			if seg == l || seg == l+"s" {
				return l
			}
		}
	}
	return category.Layers[0]
}

// DefaultStylePath is the conventional style file for a component name.
func DefaultStylePath(componentName string) string {
	return "/src/styles/components/" + naming.ToKebab(componentName) + ".css"
}

package rules

import (
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
)

const (
	tagLayer        = "layer"
	tagCSSFile      = "cssFile"
	tagDependencies = "dependencies"

	// cssFileNone opts a component out of style pairing.
	cssFileNone = "none"
)

// MetadataCheck validates the leading @tag block against the category's
// required fields and allowed values.
type MetadataCheck struct{}

func (MetadataCheck) Name() string { return "metadata" }

func (MetadataCheck) Rules() []string {
	return []string{domain.RuleMetadataBlock, domain.RuleRequiredField, domain.RuleFieldValue}
}

func (MetadataCheck) CheckFile(f *domain.SourceFile, cat domain.CategoryRule, t *domain.RuleTable) []domain.Violation {
	h := f.Header
	required := cat.RequiredFields

	if len(required) > 0 && (!h.Present || len(h.Fields) == 0) {
		fd := finding{
			rule:     domain.RuleMetadataBlock,
			kind:     domain.KindMissingField,
			expected: tagList(required),
			message:  fmt.Sprintf("missing all required fields (%s)", tagList(required)),
		}
		return []domain.Violation{fd.at(t, f, max(h.StartLine, 1), "")}
	}

	var out []domain.Violation
	for _, key := range required {
		if h.Has(key) {
			continue
		}
		fd := finding{
			rule:     domain.RuleRequiredField,
			kind:     domain.KindMissingField,
			expected: "@" + key,
			message:  fmt.Sprintf("missing required field @%s", key),
		}
		out = append(out, fd.at(t, f, h.StartLine, ""))
	}

	for _, key := range checkedTags(required, h) {
		field := h.Fields[key]
		if fd := checkFieldValue(cat, key, field.Value); fd != nil {
			out = append(out, fd.at(t, f, field.Line, field.Value))
		}
	}
	return out
}

// checkedTags returns the present tags whose values are validated, sorted.
func checkedTags(required []string, h domain.Header) []string {
	set := map[string]bool{}
	for _, k := range append([]string{tagLayer, tagCSSFile, tagDependencies}, required...) {
		if h.Has(k) {
			set[k] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func checkFieldValue(cat domain.CategoryRule, key, value string) *finding {
	fd := &finding{rule: domain.RuleFieldValue, kind: domain.KindMalformedPattern}
	switch {
	case value == "":
		fd.expected = "@" + key + " <value>"
		fd.message = fmt.Sprintf("@%s has no value", key)
	case key == tagLayer && !cat.AllowsLayer(value):
		fd.expected = strings.Join(cat.Layers, "|")
		fd.message = fmt.Sprintf("@layer must be one of %s", strings.Join(cat.Layers, ", "))
	case key == tagCSSFile && value != cssFileNone && !isStylePath(value):
		fd.expected = "path to a .css file"
		fd.message = "@cssFile must point to a .css or .scss file"
	default:
		return nil
	}
	return fd
}

func isStylePath(p string) bool {
	switch path.Ext(p) {
	case ".css", ".scss":
		return true
	}
	return false
}

func tagList(keys []string) string {
	tags := make([]string, len(keys))
	for i, k := range keys {
		tags[i] = "@" + k
	}
	return strings.Join(tags, ", ")
}

// PairingCheck links components to style files. A component names its style
// file through @cssFile; one without the tag is paired with the
// conventional path derived from its filename. A paired style file that
// does not exist is a missing companion; a style file no component pairs
// with is an orphan.
type PairingCheck struct{}

func (PairingCheck) Name() string { return "pairing" }

func (PairingCheck) Rules() []string {
	return []string{domain.RuleMissingCompanion, domain.RuleOrphanStyle}
}

func (PairingCheck) CheckProject(p Project, t *domain.RuleTable) []domain.Violation {
	var out []domain.Violation
	referenced := make(map[string]bool)

	for _, f := range p.Files {
		field, ok := f.Header.Fields[tagCSSFile]
		if !ok {
			if fd, target := derivedCompanion(p, t, f); target != "" {
				referenced[target] = true
				if fd != nil {
					out = append(out, fd.at(t, f, 0, ""))
				}
			}
			continue
		}
		if field.Value == "" || field.Value == cssFileNone || !isStylePath(field.Value) {
			continue
		}
		target := domain.ResolveProjectPath(f.Path, field.Value)
		referenced[target] = true
		if p.exists(target) {
			continue
		}
		fd := finding{
			rule:     domain.RuleMissingCompanion,
			kind:     domain.KindPairing,
			expected: target,
			message:  "@cssFile points to a style file that does not exist",
		}
		out = append(out, fd.at(t, f, field.Line, field.Value))
	}

	for _, f := range p.Files {
		cat, ok := t.Category(f.Category)
		if !ok || !cat.MustBeReferenced || referenced[f.Path] {
			continue
		}
		fd := finding{
			rule:       domain.RuleOrphanStyle,
			kind:       domain.KindPairing,
			expected:   "a component with @cssFile /" + f.Path,
			message:    "style file is not referenced by any component",
			suggestion: "reference it from a component's @cssFile or delete it",
		}
		out = append(out, fd.at(t, f, 0, ""))
	}
	return out
}

// derivedCompanion pairs a style-paired file that carries no @cssFile with
// the path derived from its filename. When the category requires @cssFile
// the missing tag is already reported, so only the pairing is returned.
func derivedCompanion(p Project, t *domain.RuleTable, f *domain.SourceFile) (*finding, string) {
	cat, ok := t.Category(f.Category)
	if !ok || !cat.PairsWithStyle {
		return nil, ""
	}
	target := domain.ResolveProjectPath(f.Path, domain.DefaultStylePath(f.BaseName()))
	if p.exists(target) || cat.Requires(tagCSSFile) {
		return nil, target
	}
	return &finding{
		rule:       domain.RuleMissingCompanion,
		kind:       domain.KindPairing,
		expected:   target,
		message:    cat.Name + " has no style file at the conventional path",
		suggestion: "create /" + target + " or add @cssFile none",
	}, target
}

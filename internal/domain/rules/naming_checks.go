package rules

import (
	"fmt"
	"path"
	"strings"

	"github.com/grammarops/grammarops/internal/domain"
)

// FilenameCheck matches a file's base name against its category pattern and
// requires export-shaped categories to declare the name they are filed under.
type FilenameCheck struct{}

func (FilenameCheck) Name() string { return "filename" }

func (FilenameCheck) Rules() []string {
	return []string{domain.RuleFilenameCasing, domain.RuleExportShape}
}

func (FilenameCheck) CheckFile(f *domain.SourceFile, cat domain.CategoryRule, t *domain.RuleTable) []domain.Violation {
	var out []domain.Violation
	base := path.Base(f.Path)
	if fd := checkFilename(cat, base); fd != nil {
		out = append(out, fd.at(t, f, 0, base))
	}

	if cat.ExportMatchesFilename && cat.Language == domain.LanguageScript {
		name := f.BaseName()
		if !f.Identifiers.Declares(name) {
			fd := finding{
				rule:     domain.RuleExportShape,
				kind:     domain.KindMalformedPattern,
				expected: name,
				message:  fmt.Sprintf("%s files must declare %s, matching the filename", cat.Name, name),
			}
			out = append(out, fd.at(t, f, 0, strings.Join(declaredNames(f.Identifiers), ", ")))
		}
	}
	return out
}

func declaredNames(ids domain.Identifiers) []string {
	var names []string
	for _, group := range [][]domain.Identifier{ids.Functions, ids.Classes, ids.Constants} {
		for _, id := range group {
			if id.Exported {
				names = append(names, id.Name)
			}
		}
	}
	return names
}

// IdentifierCheck applies the casing and prefix conventions to every
// declaration extracted from a file.
type IdentifierCheck struct{}

func (IdentifierCheck) Name() string { return "identifiers" }

func (IdentifierCheck) Rules() []string {
	return []string{
		domain.RuleFunctionCasing, domain.RuleFunctionVerb, domain.RuleComponentCasing,
		domain.RuleBooleanPrefix, domain.RuleConstantCasing, domain.RuleClassCasing,
		domain.RuleCSSClassCasing,
	}
}

func (IdentifierCheck) CheckFile(f *domain.SourceFile, cat domain.CategoryRule, t *domain.RuleTable) []domain.Violation {
	var out []domain.Violation
	add := func(fd *finding, id domain.Identifier) {
		if fd != nil {
			out = append(out, fd.at(t, f, id.Line, id.Name))
		}
	}

	ids := f.Identifiers
	for _, fn := range ids.Functions {
		if t.IsAllowed(fn.Name) {
			continue
		}
		switch {
		case cat.PascalDeclarations && fn.Exported && namesFile(fn.Name, f.BaseName()):
			add(checkComponentName(fn.Name), fn)
		case cat.PascalDeclarations && domain.PascalCasePattern.MatchString(fn.Name):
			// components
		default:
			add(checkFunctionName(t, fn.Name), fn)
		}
	}

	for _, b := range ids.Booleans {
		if !t.IsAllowed(b.Name) {
			add(checkBooleanName(t, b.Name), b)
		}
	}

	for _, c := range ids.Constants {
		if t.IsAllowed(c.Name) {
			continue
		}
		switch {
		case c.Init == domain.InitLiteral && cat.Name == domain.CategoryConstant:
			add(checkConstantName(c.Name, "literal constants"), c)
		case c.Init == domain.InitRegex:
			add(checkConstantName(c.Name, "regex constants"), c)
		case c.Init == domain.InitCall && t.IsSingletonFactory(c.Callee):
			add(checkInstanceName(c.Name), c)
		}
	}

	for _, cl := range ids.Classes {
		if !t.IsAllowed(cl.Name) {
			add(checkClassName(cl.Name, cat.Name == domain.CategoryError), cl)
		}
	}

	for _, c := range ids.CSSClasses {
		if !t.IsAllowed(c.Name) {
			add(checkCSSClassName(c.Name), c)
		}
	}
	return out
}

var separators = strings.NewReplacer("-", "", "_", "", ".", "")

// namesFile reports whether name is the declaration a file is named after,
// ignoring casing and separators.
func namesFile(name, base string) bool {
	return strings.EqualFold(name, separators.Replace(base))
}

// ImportCheck flags imports whose target category is forbidden for the
// importing file's category. Only direct imports are considered.
type ImportCheck struct{}

func (ImportCheck) Name() string { return "imports" }

func (ImportCheck) Rules() []string { return []string{domain.RuleImportDirection} }

func (ImportCheck) CheckFile(f *domain.SourceFile, cat domain.CategoryRule, t *domain.RuleTable) []domain.Violation {
	if len(cat.ForbiddenImports) == 0 {
		return nil
	}
	var out []domain.Violation
	for _, imp := range f.Identifiers.Imports {
		target, ok := t.CategorizeImport(f.Path, imp.Name)
		if !ok || !cat.Forbids(target.Name) {
			continue
		}
		fd := finding{
			rule:     domain.RuleImportDirection,
			kind:     domain.KindImportDirection,
			expected: "no " + target.Name + " imports",
			message:  fmt.Sprintf("%s files must not import from %s files", cat.Name, target.Name),
		}
		out = append(out, fd.at(t, f, imp.Line, imp.Name))
	}
	return out
}

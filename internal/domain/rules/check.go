// Package rules holds the convention checks and the evaluator that runs them
// against extracted source files. Every check is a pure function of its
// inputs and the injected rule table.
package rules

import (
	"github.com/grammarops/grammarops/internal/domain"
)

// FileCheck evaluates one file in isolation.
type FileCheck interface {
	Name() string
	// Rules lists the rule IDs the check can report.
	Rules() []string
	CheckFile(f *domain.SourceFile, cat domain.CategoryRule, t *domain.RuleTable) []domain.Violation
}

// ProjectCheck evaluates relations across the whole scanned file set.
type ProjectCheck interface {
	Name() string
	Rules() []string
	CheckProject(p Project, t *domain.RuleTable) []domain.Violation
}

// Project is the input to project-level checks.
type Project struct {
	Files []*domain.SourceFile
	// Exists reports whether a project-relative path exists on disk. Files
	// excluded from the scan still count.
	Exists func(relPath string) bool
}

func (p Project) exists(relPath string) bool {
	for _, f := range p.Files {
		if f.Path == relPath {
			return true
		}
	}
	if p.Exists == nil {
		return false
	}
	return p.Exists(relPath)
}

// finding is a rule outcome for a single name before it is tied to a file.
type finding struct {
	rule       string
	kind       domain.ViolationKind
	expected   string
	message    string
	suggestion string
}

func (fd finding) at(t *domain.RuleTable, f *domain.SourceFile, line int, actual string) domain.Violation {
	return domain.Violation{
		File:       f.Path,
		Line:       line,
		Rule:       fd.rule,
		Kind:       fd.kind,
		Category:   f.Category,
		Severity:   t.Severity(fd.rule),
		Expected:   fd.expected,
		Actual:     actual,
		Message:    fd.message,
		Suggestion: fd.suggestion,
	}
}

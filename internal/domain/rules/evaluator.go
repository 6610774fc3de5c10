package rules

import (
	"sort"

	"github.com/grammarops/grammarops/internal/domain"
)

// Evaluator runs the checks selected by a profile against a rule table.
// It holds no mutable state and is safe for concurrent use.
type Evaluator struct {
	table         *domain.RuleTable
	profile       string
	selected      map[string]bool
	fileChecks    []FileCheck
	projectChecks []ProjectCheck
}

// NewEvaluator builds an evaluator for profile. Rules disabled in the table
// are never reported.
func NewEvaluator(t *domain.RuleTable, profile string) (*Evaluator, error) {
	if profile == "" {
		profile = ProfileAll
	}
	ids, err := ProfileRules(profile)
	if err != nil {
		return nil, err
	}
	selected := make(map[string]bool, len(ids))
	for _, id := range ids {
		if t.Enabled(id) {
			selected[id] = true
		}
	}
	return &Evaluator{
		table:    t,
		profile:  profile,
		selected: selected,
		fileChecks: []FileCheck{
			FilenameCheck{}, IdentifierCheck{}, MetadataCheck{}, ImportCheck{},
		},
		projectChecks: []ProjectCheck{PairingCheck{}},
	}, nil
}

// Profile returns the profile name the evaluator was built for.
func (e *Evaluator) Profile() string { return e.profile }

// Table returns the injected rule table.
func (e *Evaluator) Table() *domain.RuleTable { return e.table }

// Rules returns the active rule IDs in table order.
func (e *Evaluator) Rules() []string {
	var out []string
	for _, id := range domain.ValidRules {
		if e.selected[id] {
			out = append(out, id)
		}
	}
	return out
}

// EvaluateFile runs every file-level check on f. Files without a known
// category yield nothing.
func (e *Evaluator) EvaluateFile(f *domain.SourceFile) []domain.Violation {
	cat, ok := e.table.Category(f.Category)
	if !ok {
		return nil
	}
	var out []domain.Violation
	for _, c := range e.fileChecks {
		if !e.wants(c.Rules()) {
			continue
		}
		out = append(out, e.keep(c.CheckFile(f, cat, e.table))...)
	}
	return out
}

// EvaluateProject runs the cross-file checks.
func (e *Evaluator) EvaluateProject(p Project) []domain.Violation {
	var out []domain.Violation
	for _, c := range e.projectChecks {
		if !e.wants(c.Rules()) {
			continue
		}
		out = append(out, e.keep(c.CheckProject(p, e.table))...)
	}
	return out
}

func (e *Evaluator) wants(ids []string) bool {
	for _, id := range ids {
		if e.selected[id] {
			return true
		}
	}
	return false
}

func (e *Evaluator) keep(vs []domain.Violation) []domain.Violation {
	out := vs[:0]
	for _, v := range vs {
		if e.selected[v.Rule] {
			out = append(out, v)
		}
	}
	return out
}

// SortViolations orders violations by file, line and rule.
func SortViolations(vs []domain.Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := vs[i], vs[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Rule < b.Rule
	})
}

package domain

import (
	"math"
	"time"
)

const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// ViolationKind is the error taxonomy a violation belongs to.
type ViolationKind string

const (
	KindMissingField     ViolationKind = "missing-field"
	KindMalformedPattern ViolationKind = "malformed-pattern"
	KindPairing          ViolationKind = "pairing"
	KindImportDirection  ViolationKind = "import-direction"
)

// Language selects which extractor applies to a file.
type Language string

const (
	LanguageScript Language = "script"
	LanguageStyle  Language = "style"
)

// Violation is a single deviation from a rule.
type Violation struct {
	File       string        `json:"file"`
	Line       int           `json:"line,omitempty"`
	Rule       string        `json:"rule"`
	Kind       ViolationKind `json:"kind"`
	Category   string        `json:"category"`
	Severity   string        `json:"severity"`
	Expected   string        `json:"expected,omitempty"`
	Actual     string        `json:"actual,omitempty"`
	Message    string        `json:"message"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// SourceFile is the per-file record built during a scan.
type SourceFile struct {
	Path        string      `json:"path"`
	Category    string      `json:"category"`
	Language    Language    `json:"language"`
	Content     string      `json:"-"`
	Header      Header      `json:"header"`
	Identifiers Identifiers `json:"identifiers"`
}

// BaseName returns the file name without directory and extension.
func (f *SourceFile) BaseName() string {
	return StripExt(baseOf(f.Path))
}

// Header is the parsed leading documentation block of a file.
type Header struct {
	Present   bool             `json:"present"`
	StartLine int              `json:"start_line,omitempty"`
	Fields    map[string]Field `json:"fields,omitempty"`
}

// Field is a single @tag found in a header.
type Field struct {
	Value string `json:"value"`
	Line  int    `json:"line"`
}

// Has reports whether the header carries the given tag (value may be empty).
func (h Header) Has(key string) bool {
	_, ok := h.Fields[key]
	return ok
}

// Value returns the tag value and whether the tag was present.
func (h Header) Value(key string) (string, bool) {
	f, ok := h.Fields[key]
	return f.Value, ok
}

// Const initializer kinds.
const (
	InitLiteral = "literal"
	InitRegex   = "regex"
	InitCall    = "call"
)

// Identifier is a named declaration found in a file.
type Identifier struct {
	Name string `json:"name"`
	Line int    `json:"line"`
	// Init classifies a top-level const initializer: InitLiteral, InitRegex
	// or InitCall. Empty for anything else.
	Init string `json:"init,omitempty"`
	// Callee is the function or constructor an InitCall const calls.
	Callee string `json:"callee,omitempty"`
	// Exported marks declarations prefixed with export.
	Exported bool `json:"exported,omitempty"`
}

// Identifiers groups the structural names extracted from a file.
type Identifiers struct {
	Functions  []Identifier `json:"functions,omitempty"`
	Classes    []Identifier `json:"classes,omitempty"`
	Constants  []Identifier `json:"constants,omitempty"`
	Booleans   []Identifier `json:"booleans,omitempty"`
	Imports    []Identifier `json:"imports,omitempty"`
	CSSClasses []Identifier `json:"css_classes,omitempty"`
}

// Declares reports whether a function, class or constant has the given name.
func (ids Identifiers) Declares(name string) bool {
	for _, group := range [][]Identifier{ids.Functions, ids.Classes, ids.Constants} {
		for _, id := range group {
			if id.Name == name {
				return true
			}
		}
	}
	return false
}

// SkippedFile is a file the run could not evaluate.
type SkippedFile struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// AuditReport is the aggregate output of one run. JSON keys follow the
// report contract consumed by CI wrappers.
type AuditReport struct {
	RunID        string         `json:"runId"`
	Timestamp    time.Time      `json:"timestamp"`
	Root         string         `json:"root"`
	Profile      string         `json:"profile"`
	Frameworks   []string       `json:"frameworks,omitempty"`
	CommitHash   string         `json:"commit,omitempty"`
	Strict       bool           `json:"strict"`
	FilesScanned int            `json:"filesScanned"`
	FilesPassed  int            `json:"filesPassed"`
	FilesFailed  int            `json:"filesFailed"`
	Skipped      []SkippedFile  `json:"skipped"`
	Violations   []Violation    `json:"violations"`
	Counts       map[string]int `json:"counts"`
	PassRate     float64        `json:"passRate"`
	Fixed        []string       `json:"fixed,omitempty"`
}

// Summarize fills counters and pass rate from the scanned file list and
// the collected violations.
func (r *AuditReport) Summarize(scanned []string) {
	failed := make(map[string]bool)
	r.Counts = map[string]int{SeverityError: 0, SeverityWarning: 0, SeverityInfo: 0}
	for _, v := range r.Violations {
		failed[v.File] = true
		r.Counts[v.Severity]++
	}

	r.FilesScanned = len(scanned)
	r.FilesFailed = 0
	for _, f := range scanned {
		if failed[f] {
			r.FilesFailed++
		}
	}
	r.FilesPassed = r.FilesScanned - r.FilesFailed
	r.PassRate = PassRate(r.FilesPassed, r.FilesScanned)

	if r.Skipped == nil {
		r.Skipped = []SkippedFile{}
	}
	if r.Violations == nil {
		r.Violations = []Violation{}
	}
}

// Failed reports whether the run should exit non-zero. Strict runs fail on
// any violation; default runs fail only on error severity.
func (r *AuditReport) Failed() bool {
	if r.Strict {
		return len(r.Violations) > 0
	}
	return r.Counts[SeverityError] > 0
}

// PassRate returns the percentage of passing files, rounded to one decimal.
// An empty run passes fully.
func PassRate(passed, scanned int) float64 {
	if scanned == 0 {
		return 100
	}
	return math.Round(float64(passed)*1000/float64(scanned)) / 10
}

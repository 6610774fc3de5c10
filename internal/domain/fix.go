package domain

import "errors"

// ErrNoBackup is returned by a rollback when no fix backup exists.
var ErrNoBackup = errors.New("no fix backup to restore")

// FixPlan is the outcome of a metadata injection run.
type FixPlan struct {
	RunID    string       `json:"run_id"`
	Injector string       `json:"injector"`
	DryRun   bool         `json:"dry_run"`
	Applied  []AppliedFix `json:"applied"`
	Skipped  []AppliedFix `json:"skipped"`
}

// AppliedFix describes one file touched (or left alone) by an injector.
type AppliedFix struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

const (
	FixInsertHeader   = "insert_header"
	FixAlreadyPresent = "already_has_metadata"
	FixDeclined       = "declined"
	FixNotApplicable  = "not_applicable"
	FixUnreadable     = "unreadable"
)

// FixOptions controls an injection run.
type FixOptions struct {
	Injector string   `json:"injector"`
	DryRun   bool     `json:"dry_run"`
	Files    []string `json:"files,omitempty"`
}

// FixEntry is one record in the fix log.
type FixEntry struct {
	RunID     string   `json:"run_id"`
	Timestamp string   `json:"timestamp"`
	Injector  string   `json:"injector"`
	Files     []string `json:"files"`
}

package domain

import "context"

// FileDiscoverer enumerates candidate files under a project root.
type FileDiscoverer interface {
	Discover(ctx context.Context, root string, opts DiscoverOptions) (*Discovery, error)
}

// DiscoverOptions filters a discovery walk. Globs are doublestar patterns
// matched against slash-separated paths relative to the root. An empty
// Include matches every file.
type DiscoverOptions struct {
	Include          []string
	Exclude          []string
	RespectGitignore bool
}

// Discovery holds the result of walking a project directory. Files are
// slash-separated paths relative to Root, sorted lexicographically.
type Discovery struct {
	Root    string        `json:"root"`
	Files   []string      `json:"files"`
	Skipped []SkippedFile `json:"skipped,omitempty"`
}

// SourceAnalyzer reads a file and extracts its header and identifiers.
type SourceAnalyzer interface {
	AnalyzeFile(root, relPath, category string, headerLines int) (*SourceFile, error)
}

// ConfigLoader loads project configuration from a directory.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// FrameworkDetector reports the known frameworks a project depends on.
type FrameworkDetector interface {
	Detect(projectPath string) ([]string, error)
}

// GitInfo exposes repository details used to annotate and scope runs.
type GitInfo interface {
	CommitHash(projectPath string) (string, error)
	ChangedFiles(projectPath string) ([]string, error)
}

// Progress reports per-file progress of a long-running scan.
type Progress interface {
	StartTask(description string, total int) TaskProgress
	Close()
}

// TaskProgress tracks a single task started by Progress.
type TaskProgress interface {
	Increment(n int)
	Complete()
}

// BackupStore keeps copies of files before they are rewritten.
type BackupStore interface {
	Save(projectPath, runID string, files []string) error
	Restore(projectPath string) ([]string, error)
}

// FixLog records applied fixes across runs.
type FixLog interface {
	Append(projectPath string, entry FixEntry) error
	Load(projectPath string) ([]FixEntry, error)
}

// NoopProgress discards all progress updates.
type NoopProgress struct{}

func (NoopProgress) StartTask(string, int) TaskProgress { return noopTask{} }
func (NoopProgress) Close()                              {}

type noopTask struct{}

func (noopTask) Increment(int) {}
func (noopTask) Complete()     {}

package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/rules"
	"github.com/grammarops/grammarops/internal/logging"
)

// ErrNotAuditable is returned when --single names a file outside every
// category or excluded from discovery.
var ErrNotAuditable = errors.New("file is not auditable")

// AuditOptions scopes one audit run.
type AuditOptions struct {
	Profile string
	// Single limits evaluation to one file, given relative to the project
	// root or as an absolute path.
	Single string
	// Changed limits evaluation to files reported as changed by git.
	Changed bool
	Strict  bool
}

// AuditService orchestrates the audit pipeline:
// load config -> discover -> extract in parallel -> evaluate -> report.
type AuditService struct {
	discoverer domain.FileDiscoverer
	analyzer   domain.SourceAnalyzer
	config     domain.ConfigLoader
	git        domain.GitInfo
	frameworks domain.FrameworkDetector
	progress   domain.Progress
	logger     *zap.Logger
}

func NewAuditService(
	discoverer domain.FileDiscoverer,
	analyzer domain.SourceAnalyzer,
	config domain.ConfigLoader,
	git domain.GitInfo,
	frameworks domain.FrameworkDetector,
	progress domain.Progress,
	logger *zap.Logger,
) *AuditService {
	if progress == nil {
		progress = domain.NoopProgress{}
	}
	return &AuditService{
		discoverer: discoverer,
		analyzer:   analyzer,
		config:     config,
		git:        git,
		frameworks: frameworks,
		progress:   progress,
		logger:     logging.OrNop(logger),
	}
}

// Setup loads the project config and builds the rule table and evaluator.
// Frameworks found in package.json are added to the configured ones.
func (s *AuditService) Setup(projectPath, profile string) (*domain.RuleTable, *rules.Evaluator, domain.ProjectConfig, error) {
	cfg, err := s.config.Load(projectPath)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("loading config: %w", err)
	}
	if s.frameworks != nil {
		detected, err := s.frameworks.Detect(projectPath)
		if err != nil {
			s.logger.Warn("framework detection failed", zap.String("path", projectPath), zap.Error(err))
		} else if len(detected) > 0 {
			s.logger.Debug("frameworks detected", zap.Strings("frameworks", detected))
			cfg.Frameworks = domain.MergeFrameworks(cfg.Frameworks, detected)
		}
	}
	table, err := domain.NewRuleTable(cfg)
	if err != nil {
		return nil, nil, cfg, fmt.Errorf("building rule table: %w", err)
	}
	ev, err := rules.NewEvaluator(table, profile)
	if err != nil {
		return nil, nil, cfg, err
	}
	return table, ev, cfg, nil
}

// Audit runs one audit over projectPath. Per-file read failures are recorded
// as skipped files; only configuration and discovery failures are errors.
func (s *AuditService) Audit(ctx context.Context, projectPath string, opts AuditOptions) (*domain.AuditReport, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	table, ev, cfg, err := s.Setup(absPath, opts.Profile)
	if err != nil {
		return nil, err
	}

	discovery, err := s.discoverer.Discover(ctx, absPath, DiscoverOptionsFor(table, cfg))
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}

	report := &domain.AuditReport{
		RunID:      uuid.NewString(),
		Timestamp:  time.Now().UTC(),
		Root:       absPath,
		Profile:    ev.Profile(),
		Frameworks: table.Frameworks(),
		Strict:     opts.Strict,
		Skipped:    append([]domain.SkippedFile(nil), discovery.Skipped...),
	}
	if s.git != nil {
		if hash, err := s.git.CommitHash(absPath); err == nil {
			report.CommitHash = hash
		} else {
			s.logger.Debug("no commit hash", zap.Error(err))
		}
	}

	scope, err := s.scope(absPath, discovery.Files, opts)
	if err != nil {
		return nil, err
	}

	files, skipped, err := s.analyze(ctx, absPath, table, discovery.Files)
	if err != nil {
		return nil, err
	}
	report.Skipped = append(report.Skipped, skipped...)

	var scanned []string
	var project []*domain.SourceFile
	for _, f := range files {
		if f == nil {
			continue
		}
		project = append(project, f)
		if scope[f.Path] {
			scanned = append(scanned, f.Path)
			report.Violations = append(report.Violations, ev.EvaluateFile(f)...)
		}
	}

	for _, v := range ev.EvaluateProject(rules.Project{Files: project, Exists: existsUnder(absPath)}) {
		if scope[v.File] {
			report.Violations = append(report.Violations, v)
		}
	}
	rules.SortViolations(report.Violations)
	report.Summarize(scanned)

	s.logger.Info("audit finished",
		zap.String("run_id", report.RunID),
		zap.Int("files", report.FilesScanned),
		zap.Int("violations", len(report.Violations)))
	return report, nil
}

// DiscoverOptionsFor derives discovery filters from the rule table and config.
// A configured include list replaces the category globs.
func DiscoverOptionsFor(table *domain.RuleTable, cfg domain.ProjectConfig) domain.DiscoverOptions {
	include := table.IncludeGlobs()
	if len(cfg.Include) > 0 {
		include = append([]string(nil), cfg.Include...)
	}
	return domain.DiscoverOptions{
		Include:          include,
		Exclude:          append([]string(nil), cfg.Exclude...),
		RespectGitignore: cfg.GitignoreEnabled(),
	}
}

// scope returns the set of discovered files whose violations are reported.
func (s *AuditService) scope(root string, discovered []string, opts AuditOptions) (map[string]bool, error) {
	known := make(map[string]bool, len(discovered))
	for _, f := range discovered {
		known[f] = true
	}

	switch {
	case opts.Single != "":
		rel := RelativeTo(root, opts.Single)
		if !known[rel] {
			if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err != nil {
				return nil, fmt.Errorf("--single %s: %w", opts.Single, err)
			}
			return nil, fmt.Errorf("--single %s: %w (excluded or outside every category)", rel, ErrNotAuditable)
		}
		return map[string]bool{rel: true}, nil

	case opts.Changed:
		if s.git == nil {
			return nil, errors.New("--changed requires git information")
		}
		changed, err := s.git.ChangedFiles(root)
		if err != nil {
			return nil, fmt.Errorf("--changed: %w", err)
		}
		scope := make(map[string]bool)
		for _, f := range changed {
			if known[f] {
				scope[f] = true
			}
		}
		s.logger.Debug("changed files in scope", zap.Int("changed", len(changed)), zap.Int("audited", len(scope)))
		return scope, nil
	}
	return known, nil
}

// analyze extracts every discovered file on a bounded worker pool. Results
// keep discovery order.
func (s *AuditService) analyze(ctx context.Context, root string, table *domain.RuleTable, paths []string) ([]*domain.SourceFile, []domain.SkippedFile, error) {
	files := make([]*domain.SourceFile, len(paths))
	reasons := make([]string, len(paths))

	task := s.progress.StartTask("Auditing", len(paths))
	defer task.Complete()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency(table))
	for i, rel := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer task.Increment(1)

			cat, ok := table.Categorize(rel)
			if !ok {
				reasons[i] = "no matching category"
				return nil
			}
			f, err := s.analyzer.AnalyzeFile(root, rel, cat.Name, table.HeaderLines())
			if err != nil {
				reasons[i] = unwrapReason(err)
				return nil
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var skipped []domain.SkippedFile
	for i, reason := range reasons {
		if reason == "" {
			continue
		}
		s.logger.Warn("skipping file", zap.String("path", paths[i]), zap.String("reason", reason))
		skipped = append(skipped, domain.SkippedFile{Path: paths[i], Reason: reason})
	}
	return files, skipped, nil
}

func concurrency(table *domain.RuleTable) int {
	if n := table.Concurrency(); n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// unwrapReason strips the "reading <path>: " prefix the analyzer adds.
func unwrapReason(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && strings.HasPrefix(msg, "reading ") {
		return msg[i+2:]
	}
	return msg
}

// RelativeTo turns p into a slash path relative to root. Relative inputs are
// taken as root-relative when they exist there, otherwise as relative to the
// working directory.
func RelativeTo(root, p string) string {
	if !filepath.IsAbs(p) {
		if _, err := os.Stat(filepath.Join(root, p)); err == nil {
			return filepath.ToSlash(filepath.Clean(p))
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
	}
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func existsUnder(root string) func(string) bool {
	return func(rel string) bool {
		_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
		return err == nil
	}
}

package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/domain/extract"
	"github.com/grammarops/grammarops/internal/logging"
)

// ErrUnknownInjector is returned for an injector name not in the rule table.
var ErrUnknownInjector = errors.New("unknown injector")

// ConfirmFunc asks whether a file may be rewritten. A nil ConfirmFunc
// approves every file.
type ConfirmFunc func(relPath, block string) bool

// FixService orchestrates metadata injection:
// load config -> select files -> render headers -> back up -> write -> log.
type FixService struct {
	discoverer domain.FileDiscoverer
	config     domain.ConfigLoader
	backups    domain.BackupStore
	fixLog     domain.FixLog
	logger     *zap.Logger
}

func NewFixService(
	discoverer domain.FileDiscoverer,
	config domain.ConfigLoader,
	backups domain.BackupStore,
	fixLog domain.FixLog,
	logger *zap.Logger,
) *FixService {
	return &FixService{
		discoverer: discoverer,
		config:     config,
		backups:    backups,
		fixLog:     fixLog,
		logger:     logging.OrNop(logger),
	}
}

type pendingWrite struct {
	rel     string
	content string
}

// Apply inserts the injector's header into every selected file that lacks
// it. Files that already carry a recognized tag are left byte-for-byte
// unchanged. Identifiers are never renamed.
func (s *FixService) Apply(ctx context.Context, projectPath string, opts domain.FixOptions, confirm ConfirmFunc) (*domain.FixPlan, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := s.config.Load(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	table, err := domain.NewRuleTable(cfg)
	if err != nil {
		return nil, fmt.Errorf("building rule table: %w", err)
	}

	name := opts.Injector
	if name == "" {
		name = domain.InjectorMetadata
	}
	inj, ok := table.Injector(name)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownInjector, name)
	}

	explicit := len(opts.Files) > 0
	files := make([]string, 0, len(opts.Files))
	for _, f := range opts.Files {
		files = append(files, RelativeTo(absPath, f))
	}
	if !explicit {
		discovery, err := s.discoverer.Discover(ctx, absPath, DiscoverOptionsFor(table, cfg))
		if err != nil {
			return nil, fmt.Errorf("discovering files: %w", err)
		}
		files = discovery.Files
	}

	plan := &domain.FixPlan{
		RunID:    uuid.NewString(),
		Injector: inj.Name,
		DryRun:   opts.DryRun,
		Applied:  []domain.AppliedFix{},
		Skipped:  []domain.AppliedFix{},
	}
	skip := func(rel, typ, desc string) {
		plan.Skipped = append(plan.Skipped, domain.AppliedFix{Type: typ, Path: rel, Description: desc})
	}

	var writes []pendingWrite
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cat, ok := table.Categorize(rel)
		if !ok || !inj.AppliesTo(cat) {
			if explicit {
				skip(rel, domain.FixNotApplicable, fmt.Sprintf("%s does not apply here", inj.Name))
			}
			continue
		}

		data, err := os.ReadFile(filepath.Join(absPath, filepath.FromSlash(rel)))
		if err != nil {
			s.logger.Warn("cannot read file for fix", zap.String("path", rel), zap.Error(err))
			skip(rel, domain.FixUnreadable, err.Error())
			continue
		}

		block, err := inj.Render(cat, rel)
		if err != nil {
			return nil, err
		}
		updated, changed := extract.InjectHeader(string(data), block, inj.RecognizedKeys(cat), table.HeaderLines())
		if !changed {
			skip(rel, domain.FixAlreadyPresent, "already has metadata")
			continue
		}
		if confirm != nil && !confirm(rel, block) {
			skip(rel, domain.FixDeclined, "declined")
			continue
		}

		writes = append(writes, pendingWrite{rel: rel, content: updated})
		plan.Applied = append(plan.Applied, domain.AppliedFix{
			Type:        domain.FixInsertHeader,
			Path:        rel,
			Description: fmt.Sprintf("insert %s header", inj.Name),
		})
	}

	if opts.DryRun || len(writes) == 0 {
		return plan, nil
	}

	paths := make([]string, len(writes))
	for i, w := range writes {
		paths[i] = w.rel
	}
	if err := s.backups.Save(absPath, plan.RunID, paths); err != nil {
		return nil, fmt.Errorf("saving backup: %w", err)
	}

	for _, w := range writes {
		full := filepath.Join(absPath, filepath.FromSlash(w.rel))
		info, err := os.Stat(full)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", w.rel, err)
		}
		if err := os.WriteFile(full, []byte(w.content), info.Mode().Perm()); err != nil {
			return nil, fmt.Errorf("writing %s: %w", w.rel, err)
		}
	}

	entry := domain.FixEntry{
		RunID:     plan.RunID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Injector:  inj.Name,
		Files:     paths,
	}
	if err := s.fixLog.Append(absPath, entry); err != nil {
		s.logger.Warn("failed to record fix", zap.Error(err))
	}

	s.logger.Info("fix applied", zap.String("run_id", plan.RunID), zap.Int("files", len(writes)))
	return plan, nil
}

// Rollback restores the files saved by the most recent fix run.
func (s *FixService) Rollback(projectPath string) ([]string, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	files, err := s.backups.Restore(absPath)
	if err != nil {
		return nil, err
	}
	s.logger.Info("rollback restored files", zap.Int("files", len(files)))
	return files, nil
}

// History returns the recorded fix runs, oldest first.
func (s *FixService) History(projectPath string) ([]domain.FixEntry, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	return s.fixLog.Load(absPath)
}

// AuditAndFix audits, injects metadata into files reported for missing
// fields, then audits again. The returned report is the second audit, with
// Fixed listing the rewritten files.
func AuditAndFix(ctx context.Context, audit *AuditService, fix *FixService, projectPath string, opts AuditOptions) (*domain.AuditReport, error) {
	first, err := audit.Audit(ctx, projectPath, opts)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var targets []string
	for _, v := range first.Violations {
		if v.Kind == domain.KindMissingField && !seen[v.File] {
			seen[v.File] = true
			targets = append(targets, v.File)
		}
	}
	if len(targets) == 0 {
		return first, nil
	}

	plan, err := fix.Apply(ctx, projectPath, domain.FixOptions{Injector: domain.InjectorMetadata, Files: targets}, nil)
	if err != nil {
		return nil, fmt.Errorf("fixing metadata: %w", err)
	}

	second, err := audit.Audit(ctx, projectPath, opts)
	if err != nil {
		return nil, err
	}
	for _, a := range plan.Applied {
		second.Fixed = append(second.Fixed, a.Path)
	}
	return second, nil
}

package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/grammarops/grammarops/internal/domain"
	"github.com/grammarops/grammarops/internal/logging"
)

var skipDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"dist":         true,
	"build":        true,
	"coverage":     true,
	"__pycache__":  true,
	".next":        true,
	".grammarops":  true,
	"vendor":       true,
}

// defaultExcludes keeps tests, stories and mocks out of every audit.
var defaultExcludes = []string{
	"**/*.test.*",
	"**/*.spec.*",
	"**/*.stories.*",
	"**/__tests__/**",
	"**/__mocks__/**",
}

// FileScanner implements domain.FileDiscoverer by walking the filesystem.
// Symlinked directories are never followed.
type FileScanner struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *FileScanner {
	return &FileScanner{logger: logging.OrNop(logger)}
}

func (s *FileScanner) Discover(ctx context.Context, root string, opts domain.DiscoverOptions) (*domain.Discovery, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "discover", Path: root, Err: fs.ErrInvalid}
	}

	var gi *ignore.GitIgnore
	if opts.RespectGitignore {
		gi = s.loadGitignore(absRoot)
	}

	result := &domain.Discovery{Root: absRoot, Files: []string{}}
	skip := func(rel, reason string) {
		s.logger.Warn("skipping file", zap.String("path", rel), zap.String("reason", reason))
		result.Skipped = append(result.Skipped, domain.SkippedFile{Path: rel, Reason: reason})
	}

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		relPath := relSlash(absRoot, path)
		if err != nil {
			if path == absRoot {
				return err
			}
			skip(relPath, err.Error())
			return nil
		}

		if d.IsDir() {
			if path == absRoot {
				return nil
			}
			if skipDirs[d.Name()] || (gi != nil && gi.MatchesPath(relPath+"/")) {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&fs.ModeSymlink != 0 {
			target, statErr := os.Stat(path)
			if statErr != nil {
				if matches(opts.Include, relPath) {
					skip(relPath, "broken symlink")
				}
				return nil
			}
			if target.IsDir() {
				s.logger.Debug("not following symlinked directory", zap.String("path", relPath))
				return nil
			}
		} else if !d.Type().IsRegular() {
			return nil
		}

		if gi != nil && gi.MatchesPath(relPath) {
			return nil
		}
		if !matches(opts.Include, relPath) || matchesAny(opts.Exclude, relPath) || matchesAny(defaultExcludes, relPath) {
			return nil
		}
		result.Files = append(result.Files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(result.Files)
	s.logger.Debug("discovery finished",
		zap.String("root", absRoot),
		zap.Int("files", len(result.Files)),
		zap.Int("skipped", len(result.Skipped)))
	return result, nil
}

func (s *FileScanner) loadGitignore(absRoot string) *ignore.GitIgnore {
	path := filepath.Join(absRoot, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		s.logger.Warn("ignoring unreadable .gitignore", zap.Error(err))
		return nil
	}
	return gi
}

func relSlash(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// matches reports whether relPath matches one of include, or true when
// include is empty.
func matches(include []string, relPath string) bool {
	return len(include) == 0 || matchesAny(include, relPath)
}

func matchesAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

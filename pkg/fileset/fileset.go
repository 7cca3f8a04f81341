// Package fileset decides which files a scan analyzes: full discovery of
// the repository tree, or the incremental change set reported by git.
package fileset

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/config"
)

// Resolver enumerates the files to analyze for a scan.
type Resolver struct {
	rootDir string
	cfg     config.ScanConfig
	logger  *slog.Logger
}

// New creates a Resolver rooted at rootDir.
func New(rootDir string, cfg config.ScanConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{rootDir: rootDir, cfg: cfg, logger: logger}
}

// Resolve returns the ordered file set for a scan. In incremental mode the
// git change set is used; whenever that set is empty — clean working tree
// or change detection unavailable — the resolver falls back to a full scan.
func (r *Resolver) Resolve(incremental bool) ([]string, error) {
	if incremental {
		changed := r.changedFiles()
		if len(changed) > 0 {
			return changed, nil
		}
		r.logger.Info("no changed files detected, falling back to full scan")
	}
	return r.FullScan()
}

// FullScan walks the repository root and returns all files matching the
// target extensions, minus the ignore patterns. Output is sorted absolute
// paths, deterministic for a fixed file-system state.
func (r *Resolver) FullScan() ([]string, error) {
	for _, pattern := range r.cfg.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid ignore pattern: %s", pattern)
		}
	}

	absRoot, err := filepath.Abs(r.rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Continue walking on errors.
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		// Check ignores (directories and files).
		for _, pattern := range r.cfg.IgnorePatterns {
			matched, _ := doublestar.PathMatch(pattern, relPath)
			if matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		if d.IsDir() {
			return nil
		}

		if r.matchesExtension(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// changedFiles queries git for files changed relative to HEAD. Any failure
// — no repository, no git binary, a git error — is logged and reported as
// zero changed files; the caller's fallback policy takes over.
func (r *Resolver) changedFiles() []string {
	relPaths, err := gitChangedFiles(r.rootDir)
	if err != nil {
		r.logger.Warn("change detection unavailable, treating as no changes", "error", err)
		return nil
	}

	absRoot, err := filepath.Abs(r.rootDir)
	if err != nil {
		r.logger.Warn("failed to resolve root path", "error", err)
		return nil
	}

	var files []string
	for _, rel := range relPaths {
		if !r.matchesExtension(rel) || r.ignored(rel) {
			continue
		}
		files = append(files, filepath.Join(absRoot, filepath.FromSlash(rel)))
	}
	sort.Strings(files)
	return files
}

// ignored reports whether a slash-separated relative path matches any
// configured ignore pattern.
func (r *Resolver) ignored(relPath string) bool {
	for _, pattern := range r.cfg.IgnorePatterns {
		if matched, _ := doublestar.PathMatch(pattern, filepath.ToSlash(relPath)); matched {
			return true
		}
	}
	return false
}

func (r *Resolver) matchesExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range r.cfg.Extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}

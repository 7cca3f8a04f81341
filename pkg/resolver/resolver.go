// Package resolver maps import specifiers to canonical module identities.
//
// Relative specifiers resolve by pure path arithmetic against the importing
// file's directory; non-relative specifiers go through the project's path
// aliases and baseUrl. A specifier that cannot be resolved is returned
// unchanged so downstream prefix matching still has a best-effort value.
package resolver

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheSize bounds the resolution cache. Specifier/directory pairs repeat
// heavily across a codebase, so even a modest cache removes most path work.
const cacheSize = 4096

// Resolver resolves import specifiers to canonical module identities.
// Safe for concurrent use.
type Resolver struct {
	cfg    ModuleResolutionConfig
	cache  *lru.Cache[string, string]
	logger *slog.Logger
}

// New creates a Resolver with the given resolution settings.
func New(cfg ModuleResolutionConfig, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		// Only reachable with a non-positive size constant.
		panic(err)
	}
	return &Resolver{cfg: cfg, cache: cache, logger: logger}
}

// Resolve maps a specifier found in importingFile to a module identity.
//
// Relative specifiers ("./button", "../shared/button") become absolute
// paths relative to the importing file's directory; no file-system check
// is performed. Non-relative specifiers are matched against the alias
// table and baseUrl; when nothing applies, the raw specifier is returned.
func (r *Resolver) Resolve(specifier, importingFile string) string {
	key := filepath.Dir(importingFile) + "\x00" + specifier
	if identity, ok := r.cache.Get(key); ok {
		return identity
	}

	identity := r.resolve(specifier, importingFile)
	r.cache.Add(key, identity)
	return identity
}

func (r *Resolver) resolve(specifier, importingFile string) string {
	if isRelative(specifier) {
		return filepath.Clean(filepath.Join(filepath.Dir(importingFile), specifier))
	}
	if identity, ok := r.resolveAlias(specifier); ok {
		return identity
	}
	if identity, ok := r.resolveBaseURL(specifier); ok {
		return identity
	}
	return specifier
}

// resolveAlias applies tsconfig "paths" patterns. Wildcard patterns like
// "@app/*" capture the specifier suffix and substitute it into the first
// target; exact patterns map directly.
func (r *Resolver) resolveAlias(specifier string) (string, bool) {
	for pattern, targets := range r.cfg.Paths {
		if len(targets) == 0 {
			continue
		}
		target := targets[0]

		if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
			suffix, matched := strings.CutPrefix(specifier, prefix)
			if !matched {
				continue
			}
			return filepath.Clean(filepath.Join(r.cfg.BaseDir,
				strings.Replace(target, "*", suffix, 1))), true
		}
		if specifier == pattern {
			return filepath.Clean(filepath.Join(r.cfg.BaseDir, target)), true
		}
	}
	return "", false
}

// resolveBaseURL resolves a bare specifier against baseUrl. Unlike alias
// substitution this probes the file system: without the probe every
// package import would be wrongly rewritten to a baseUrl path.
func (r *Resolver) resolveBaseURL(specifier string) (string, bool) {
	if r.cfg.BaseDir == "" {
		return "", false
	}
	candidate := filepath.Clean(filepath.Join(r.cfg.BaseDir, specifier))
	for _, probe := range []string{candidate, candidate + ".ts", candidate + ".tsx", candidate + ".js"} {
		if _, err := os.Stat(probe); err == nil {
			return candidate, true
		}
	}
	return "", false
}

// isRelative reports whether the specifier starts with a path-relative marker.
func isRelative(specifier string) bool {
	return strings.HasPrefix(specifier, "./") || strings.HasPrefix(specifier, "../") ||
		specifier == "." || specifier == ".."
}

// Package scan orchestrates the adoption pipeline: file-set resolution,
// bounded-concurrency analysis, and score aggregation.
package scan

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/analyzer"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/batch"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/config"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/fileset"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/parser"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/report"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/resolver"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/util"
)

// Runner executes adoption scans. The parser manager is shared across
// runs; everything else is per-scan state.
type Runner struct {
	cfg     config.ScanConfig
	parsers *parser.Manager
	logger  *slog.Logger
}

// NewRunner creates a Runner. Close() must be called to release parser
// resources.
func NewRunner(cfg config.ScanConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg: cfg,
		// At most cfg.Concurrency files are parsed at once, so the parser
		// pools never need to grow past that.
		parsers: parser.NewManagerWithPoolSize(logger, cfg.Concurrency),
		logger:  logger,
	}
}

// Close releases the parser pools.
func (r *Runner) Close() error {
	return r.parsers.Close()
}

// Scan runs one adoption scan over rootDir and returns the report.
//
// A missing or non-directory root is the only fatal condition; every
// other failure is absorbed with the documented fallback.
func (r *Runner) Scan(rootDir string, incremental bool) (*report.Report, error) {
	start := time.Now()

	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("repository root %q does not exist: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("repository root %q is not a directory", absRoot)
	}

	files, err := fileset.New(absRoot, r.cfg, r.logger).Resolve(incremental)
	if err != nil {
		return nil, fmt.Errorf("file discovery failed: %w", err)
	}
	discoveryMs := time.Since(start).Milliseconds()

	sources := util.NewSourceCache(r.logger)
	defer sources.Close()

	res := resolver.New(resolver.LoadModuleResolutionConfig(absRoot, r.logger), r.logger)
	an := analyzer.New(r.parsers, res, r.cfg, sources, r.logger)

	analysisStart := time.Now()
	grouped := batch.Run(files, r.cfg.Concurrency, an.AnalyzeFile, r.logger)
	records := batch.Flatten(grouped)
	analysisMs := time.Since(analysisStart).Milliseconds()

	rep := report.New(absRoot, incremental, records)

	r.logger.Info("scan complete",
		"root", absRoot,
		"incremental", incremental,
		"files", len(files),
		"components", rep.Summary.TotalComponents,
		"adoption_pct", rep.Summary.AdoptionPercentage,
		"discovery_ms", discoveryMs,
		"analysis_ms", analysisMs,
		"total_ms", time.Since(start).Milliseconds())

	return rep, nil
}

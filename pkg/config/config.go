// Package config defines the scan configuration value and its fallback
// defaults. The configuration is an immutable value threaded into the
// scan pipeline as a parameter; there is no global configuration object.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// ScanConfig configures a single adoption scan.
type ScanConfig struct {
	// DesignSystemPrefixes are package-name prefixes that mark an import
	// as design-system-derived (e.g. "@ui-kit").
	DesignSystemPrefixes []string `yaml:"design_system_prefixes"`
	// IgnorePatterns are doublestar globs excluded from discovery.
	IgnorePatterns []string `yaml:"ignore_patterns"`
	// Extensions are the target file extensions (with leading dot).
	Extensions []string `yaml:"extensions"`
	// Concurrency bounds how many files are analyzed at once.
	Concurrency int `yaml:"concurrency"`
	// AnnotationNames are decorator names that mark a class as a UI
	// component, matched bare ("Component") or qualified ("core.Component").
	AnnotationNames []string `yaml:"annotation_names"`
	// LazyEntryPoint is the callee identifier recognized as a lazy-loading
	// boundary. The default "import" matches dynamic import() expressions.
	LazyEntryPoint string `yaml:"lazy_entry_point"`
}

// Default returns the documented fallback configuration, used whenever a
// supplied configuration is missing, unreadable, or fails validation.
func Default() ScanConfig {
	return ScanConfig{
		DesignSystemPrefixes: []string{"@ui-kit", "@ds"},
		IgnorePatterns:       []string{"**/*.spec.ts", "**/*.stories.ts"},
		Extensions:           []string{".ts"},
		Concurrency:          10,
		AnnotationNames:      []string{"Component"},
		LazyEntryPoint:       "import",
	}
}

// Load reads a ScanConfig from a YAML file, falling back to Default() on
// any failure. The fallback is logged, never returned as an error: an
// unusable config file must not abort a scan.
func Load(path string, logger *slog.Logger) ScanConfig {
	if logger == nil {
		logger = slog.Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("config file unreadable, using defaults", "path", path, "error", err)
		}
		return Default()
	}

	var cfg ScanConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logger.Warn("config file invalid, using defaults", "path", path, "error", err)
		return Default()
	}

	cfg = withDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Warn("config failed validation, using defaults", "path", path, "error", err)
		return Default()
	}
	return cfg
}

// withDefaults fills unset fields from Default(). A partial config file is
// valid; only the fields it names are overridden.
func withDefaults(cfg ScanConfig) ScanConfig {
	def := Default()
	if len(cfg.DesignSystemPrefixes) == 0 {
		cfg.DesignSystemPrefixes = def.DesignSystemPrefixes
	}
	if len(cfg.IgnorePatterns) == 0 {
		cfg.IgnorePatterns = def.IgnorePatterns
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = def.Extensions
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if len(cfg.AnnotationNames) == 0 {
		cfg.AnnotationNames = def.AnnotationNames
	}
	if cfg.LazyEntryPoint == "" {
		cfg.LazyEntryPoint = def.LazyEntryPoint
	}
	return cfg
}

// Validate checks structural validity: glob syntax, extension shape, and a
// positive concurrency bound.
func (c ScanConfig) Validate() error {
	for _, pattern := range c.IgnorePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern: %s", pattern)
		}
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension must start with a dot: %s", ext)
		}
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.LazyEntryPoint == "" {
		return fmt.Errorf("lazy entry point must not be empty")
	}
	return nil
}

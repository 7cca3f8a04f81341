package resolver

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
)

// ModuleResolutionConfig holds the read-only resolution settings derived
// from the host project's tsconfig.json: the base directory for
// non-relative lookups and the path-alias table.
type ModuleResolutionConfig struct {
	// BaseDir is the absolute directory baseUrl resolves against.
	// Empty when no baseUrl is configured.
	BaseDir string
	// Paths maps alias patterns ("@app/*") to substitution targets
	// relative to BaseDir ("src/app/*"). Only the first target of each
	// pattern is consulted.
	Paths map[string][]string
}

// tsconfigFile mirrors the subset of tsconfig.json the resolver needs.
type tsconfigFile struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// LoadModuleResolutionConfig reads <rootDir>/tsconfig.json. A missing or
// unparsable file yields empty options and a warning: resolution then
// degrades to raw-specifier passthrough rather than aborting the scan.
func LoadModuleResolutionConfig(rootDir string, logger *slog.Logger) ModuleResolutionConfig {
	if logger == nil {
		logger = slog.Default()
	}

	path := filepath.Join(rootDir, "tsconfig.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("tsconfig unreadable, using empty resolution options",
				"path", path, "error", err)
		}
		return ModuleResolutionConfig{}
	}

	var tc tsconfigFile
	if err := json.Unmarshal(data, &tc); err != nil {
		logger.Warn("tsconfig invalid, using empty resolution options",
			"path", path, "error", err)
		return ModuleResolutionConfig{}
	}

	cfg := ModuleResolutionConfig{Paths: tc.CompilerOptions.Paths}
	if tc.CompilerOptions.BaseURL != "" {
		base := tc.CompilerOptions.BaseURL
		if !filepath.IsAbs(base) {
			base = filepath.Join(rootDir, base)
		}
		cfg.BaseDir = filepath.Clean(base)
	} else if len(cfg.Paths) > 0 {
		// Path aliases without an explicit baseUrl resolve against the
		// tsconfig directory.
		cfg.BaseDir = rootDir
	}
	return cfg
}

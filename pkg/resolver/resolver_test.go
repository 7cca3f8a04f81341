package resolver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RelativeSpecifiers(t *testing.T) {
	r := New(ModuleResolutionConfig{}, nil)
	importing := filepath.Join("/repo", "src", "app", "hero.ts")

	assert.Equal(t, filepath.Join("/repo", "src", "app", "button"),
		r.Resolve("./button", importing))
	assert.Equal(t, filepath.Join("/repo", "src", "shared", "button"),
		r.Resolve("../shared/button", importing))
}

func TestResolve_UnresolvableReturnsRawSpecifier(t *testing.T) {
	r := New(ModuleResolutionConfig{}, nil)

	assert.Equal(t, "@ui-kit/button",
		r.Resolve("@ui-kit/button", "/repo/src/app.ts"),
		"prefix matching needs the raw specifier when resolution has nothing to apply")
}

func TestResolve_WildcardAlias(t *testing.T) {
	r := New(ModuleResolutionConfig{
		BaseDir: "/repo",
		Paths:   map[string][]string{"@app/*": {"src/app/*"}},
	}, nil)

	assert.Equal(t, filepath.Join("/repo", "src", "app", "hero", "hero.component"),
		r.Resolve("@app/hero/hero.component", "/repo/src/main.ts"))
}

func TestResolve_ExactAlias(t *testing.T) {
	r := New(ModuleResolutionConfig{
		BaseDir: "/repo",
		Paths:   map[string][]string{"env": {"src/environments/environment"}},
	}, nil)

	assert.Equal(t, filepath.Join("/repo", "src", "environments", "environment"),
		r.Resolve("env", "/repo/src/main.ts"))
}

func TestResolve_BaseURLProbesFileSystem(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shared"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "shared", "util.ts"), []byte("export {}"), 0644))

	r := New(ModuleResolutionConfig{BaseDir: root}, nil)

	assert.Equal(t, filepath.Join(root, "shared", "util"),
		r.Resolve("shared/util", filepath.Join(root, "main.ts")))
	// A package specifier with no file under baseUrl stays untouched.
	assert.Equal(t, "rxjs", r.Resolve("rxjs", filepath.Join(root, "main.ts")))
}

func TestResolve_Cached(t *testing.T) {
	r := New(ModuleResolutionConfig{}, nil)
	first := r.Resolve("./button", "/repo/src/app.ts")
	second := r.Resolve("./button", "/repo/src/app.ts")
	assert.Equal(t, first, second)
}

func TestLoadModuleResolutionConfig(t *testing.T) {
	t.Run("missing tsconfig yields empty options", func(t *testing.T) {
		cfg := LoadModuleResolutionConfig(t.TempDir(), nil)
		assert.Empty(t, cfg.BaseDir)
		assert.Empty(t, cfg.Paths)
	})

	t.Run("invalid tsconfig yields empty options", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "tsconfig.json"),
			[]byte("{not json"), 0644))
		cfg := LoadModuleResolutionConfig(root, nil)
		assert.Empty(t, cfg.BaseDir)
	})

	t.Run("baseUrl and paths are read", func(t *testing.T) {
		root := t.TempDir()
		tsconfig := `{
  "compilerOptions": {
    "baseUrl": "src",
    "paths": {"@app/*": ["app/*"]}
  }
}`
		require.NoError(t, os.WriteFile(filepath.Join(root, "tsconfig.json"),
			[]byte(tsconfig), 0644))

		cfg := LoadModuleResolutionConfig(root, nil)
		assert.Equal(t, filepath.Join(root, "src"), cfg.BaseDir)
		assert.Equal(t, []string{"app/*"}, cfg.Paths["@app/*"])
	})

	t.Run("paths without baseUrl resolve against the root", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, "tsconfig.json"),
			[]byte(`{"compilerOptions": {"paths": {"@app/*": ["src/app/*"]}}}`), 0644))

		cfg := LoadModuleResolutionConfig(root, nil)
		assert.Equal(t, root, cfg.BaseDir)
	})
}

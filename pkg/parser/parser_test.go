package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTypeScript(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	source := []byte("const x: number = 1;")
	tree, err := manager.Parse(source, LanguageTypeScript, false)
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, tree, "Tree should not be nil")
	defer tree.Close()

	root := tree.RootNode()
	assert.NotNil(t, root, "Root node should not be nil")
	assert.Equal(t, "program", root.Kind(), "Root should be a program node")
}

func TestParseTSX(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	source := []byte("const el = <div>Hello</div>;")
	tree, err := manager.Parse(source, LanguageTypeScript, true)
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, tree, "Tree should not be nil")
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind(), "Root should be a program node")

	// TSX should parse JSX elements
	assert.Contains(t, root.ToSexp(), "jsx_element", "Should contain JSX elements")
}

func TestParseJavaScript(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	source := []byte("const x = 1;")
	tree, err := manager.Parse(source, LanguageJavaScript, false)
	require.NoError(t, err, "Parse should succeed")
	require.NotNil(t, tree, "Tree should not be nil")
	defer tree.Close()

	assert.Equal(t, "program", tree.RootNode().Kind(), "Root should be a program node")
}

func TestParseFile(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	testCases := []struct {
		fileName string
		source   string
	}{
		{"app.ts", "const x: number = 1;"},
		{"widget.tsx", "const el = <span>hi</span>;"},
		{"util.js", "const x = 1;"},
		{"legacy.mjs", "export const x = 1;"},
	}

	for _, tc := range testCases {
		t.Run(tc.fileName, func(t *testing.T) {
			tree, err := manager.ParseFile([]byte(tc.source), tc.fileName)
			require.NoError(t, err, "ParseFile should succeed for %s", tc.fileName)
			require.NotNil(t, tree, "Tree should not be nil")
			defer tree.Close()

			assert.Equal(t, "program", tree.RootNode().Kind(), "Root node kind should match")
		})
	}
}

func TestParseFileUnsupportedExtension(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	tree, err := manager.ParseFile([]byte("just text"), "notes.txt")
	assert.Error(t, err, "Should return error for unsupported extension")
	assert.Nil(t, tree, "Tree should be nil for unsupported extension")
}

func TestParseUnknownLanguage(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	tree, err := manager.Parse([]byte("some random text"), LanguageUnknown, false)
	assert.Error(t, err, "Should return error for unknown language")
	assert.Nil(t, tree, "Tree should be nil for unknown language")
}

func TestParseInvalidSyntax(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	source := []byte("const x: = ;")
	tree, err := manager.Parse(source, LanguageTypeScript, false)
	require.NoError(t, err, "Parse should not return error even for invalid syntax")
	require.NotNil(t, tree, "Tree should not be nil")
	defer tree.Close()

	assert.True(t, tree.RootNode().HasError(), "Root should have errors for invalid syntax")
}

func TestLazyInitialization(t *testing.T) {
	manager := NewManager(nil)
	defer manager.Close()

	// Initially, no parsers should be created
	stats := manager.Stats()
	assert.Equal(t, 0, stats.ParsersCreated, "Should start with 0 parsers")

	// Parse TypeScript
	source := []byte("const x: number = 1;")
	tree, err := manager.Parse(source, LanguageTypeScript, false)
	require.NoError(t, err)
	tree.Close()

	stats = manager.Stats()
	assert.Equal(t, 1, stats.ParsersCreated, "Should have created 1 parser")
	assert.Equal(t, 1, stats.ParsesCalled, "Should have called Parse once")

	// Parse TypeScript again - should reuse the pooled parser
	tree, err = manager.Parse(source, LanguageTypeScript, false)
	require.NoError(t, err)
	tree.Close()

	stats = manager.Stats()
	assert.Equal(t, 1, stats.ParsersCreated, "Should still have 1 parser (reused)")
	assert.Equal(t, 2, stats.ParsesCalled, "Should have called Parse twice")

	// Parse JavaScript - should create a parser in a new pool
	tree, err = manager.Parse([]byte("const y = 2;"), LanguageJavaScript, false)
	require.NoError(t, err)
	tree.Close()

	stats = manager.Stats()
	assert.Equal(t, 2, stats.ParsersCreated, "Should have created 2 parsers")
	assert.Equal(t, 3, stats.ParsesCalled, "Should have called Parse 3 times")
}

func TestMemoryCleanup(t *testing.T) {
	manager := NewManager(nil)

	for _, lang := range []Language{LanguageTypeScript, LanguageJavaScript} {
		tree, err := manager.Parse([]byte("const x = 1;"), lang, false)
		if err == nil && tree != nil {
			tree.Close()
		}
	}

	err := manager.Close()
	assert.NoError(t, err, "Close should succeed")
	assert.Empty(t, manager.pools, "Pools map should be empty after Close")
}

func TestDetectLanguage(t *testing.T) {
	testCases := []struct {
		filePath string
		expected Language
	}{
		{"file.ts", LanguageTypeScript},
		{"file.tsx", LanguageTypeScript},
		{"file.mts", LanguageTypeScript},
		{"file.cts", LanguageTypeScript},
		{"file.js", LanguageJavaScript},
		{"file.jsx", LanguageJavaScript},
		{"file.mjs", LanguageJavaScript},
		{"file.cjs", LanguageJavaScript},
		{"file.txt", LanguageUnknown},
		{"file.md", LanguageUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.filePath, func(t *testing.T) {
			assert.Equal(t, tc.expected, DetectLanguage(tc.filePath), "Language detection should match")
		})
	}
}

func TestIsTSXFile(t *testing.T) {
	testCases := []struct {
		filePath string
		expected bool
	}{
		{"file.tsx", true},
		{"file.TSX", true}, // Case insensitive
		{"file.ts", false},
		{"file.js", false},
		{"file.jsx", false},
	}

	for _, tc := range testCases {
		t.Run(tc.filePath, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsTSXFile(tc.filePath), "TSX detection should match")
		})
	}
}

func TestLanguageString(t *testing.T) {
	testCases := []struct {
		lang     Language
		expected string
	}{
		{LanguageTypeScript, "typescript"},
		{LanguageJavaScript, "javascript"},
		{LanguageUnknown, "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.lang.String(), "String() should match")
		})
	}
}

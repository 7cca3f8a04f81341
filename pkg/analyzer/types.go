// Package analyzer classifies UI component declarations and references in
// TypeScript/JavaScript source files.
package analyzer

// Classification partitions every record into exactly one category.
type Classification string

const (
	// ClassDesignSystemImport marks a binding imported from a configured
	// design-system package.
	ClassDesignSystemImport Classification = "design-system-import"
	// ClassCustomComponent marks a locally declared, annotated component.
	ClassCustomComponent Classification = "custom-component"
	// ClassDynamicImport marks a lazily loaded module boundary.
	ClassDynamicImport Classification = "dynamic-import-reference"
)

// OriginCustom is the origin sentinel for locally declared components.
const OriginCustom = "custom"

// LazyLoadedName is the name sentinel for dynamic import references.
const LazyLoadedName = "lazy-loaded"

// UsageShape records how a custom component's template is declared.
// Zeroed for non-custom records and for components without a template.
type UsageShape struct {
	Inline   int `json:"inline"`
	External int `json:"external"`
}

// ComponentRecord is one classified UI declaration or reference.
// Records are transient: produced during a scan, folded into the summary,
// then discarded.
type ComponentRecord struct {
	// Name is the identifier as declared or imported; LazyLoadedName for
	// dynamic references.
	Name string `json:"name"`
	// Classification is the record's category.
	Classification Classification `json:"classification"`
	// Origin is the resolved module identity for imports, the literal
	// reference string for dynamic references, or OriginCustom for
	// locally declared components.
	Origin string `json:"origin"`
	// FilePath is the owning file; exactly one per record.
	FilePath string `json:"filePath"`
	// CompositionFlag is meaningful only for custom components: true iff
	// a design-system import appeared earlier in the same file's
	// declaration order.
	CompositionFlag bool `json:"compositionFlag"`
	// Selector is the component's annotation selector, when declared.
	Selector string `json:"selector,omitempty"`
	// UsageShape reflects the template kind of a custom component.
	UsageShape UsageShape `json:"usageShape"`
}

package analyzer

import (
	"log/slog"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/config"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/parser"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/resolver"
	"github.com/Sabadzma/Design-system-adoption-scanner-CLI/pkg/util"
)

// nodeKind is the closed set of syntax shapes the analyzer recognizes.
// Classification is an exhaustive switch over this enumeration, one
// handler per variant.
type nodeKind int

const (
	kindOther nodeKind = iota
	kindImportDecl
	kindClassDecl
	kindCallExpr
)

// classifyNode tags a syntax node with its recognized shape.
func classifyNode(node *ts.Node) nodeKind {
	switch node.Kind() {
	case "import_statement":
		return kindImportDecl
	case "class_declaration", "abstract_class_declaration":
		return kindClassDecl
	case "call_expression":
		return kindCallExpr
	default:
		return kindOther
	}
}

// fileState is the accumulator threaded through one file's traversal.
// dsSeen flips to true at the first design-system import and stays true;
// it never leaks across files.
type fileState struct {
	dsSeen  bool
	records []ComponentRecord
}

// Analyzer parses one file at a time and emits classified component
// records. Safe for concurrent use across files.
type Analyzer struct {
	parsers  *parser.Manager
	resolver *resolver.Resolver
	cfg      config.ScanConfig
	matcher  AnnotationMatcher
	sources  *util.SourceCache
	logger   *slog.Logger
}

// New creates an Analyzer.
func New(
	parsers *parser.Manager,
	res *resolver.Resolver,
	cfg config.ScanConfig,
	sources *util.SourceCache,
	logger *slog.Logger,
) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		parsers:  parsers,
		resolver: res,
		cfg:      cfg,
		matcher:  NewAnnotationMatcher(cfg.AnnotationNames),
		sources:  sources,
		logger:   logger,
	}
}

// AnalyzeFile reads, parses, and walks one file, returning its records.
//
// An unreadable or unparsable file yields a warning and an empty list;
// the failure never affects any other file.
func (a *Analyzer) AnalyzeFile(filePath string) []ComponentRecord {
	source, err := a.sources.Read(filePath)
	if err != nil {
		a.logger.Warn("skipping unreadable file", "file", filePath, "error", err)
		return nil
	}

	tree, err := a.parsers.ParseFile(source, filePath)
	if err != nil {
		a.logger.Warn("skipping unparsable file", "file", filePath, "error", err)
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		a.logger.Warn("skipping file with syntax errors", "file", filePath)
		return nil
	}

	st := a.walk(root, source, filePath, fileState{})
	return st.records
}

// walk is a pre-order fold over the syntax tree. The accumulator is
// passed forward through every step, making the declaration-order
// dependence of compositionFlag explicit.
func (a *Analyzer) walk(node *ts.Node, source []byte, filePath string, st fileState) fileState {
	switch classifyNode(node) {
	case kindImportDecl:
		// Import statements are consumed whole; no descent.
		return a.visitImport(node, source, filePath, st)
	case kindClassDecl:
		// The class record is emitted before descending so nested lazy
		// calls observe declaration order.
		st = a.visitClass(node, source, filePath, st)
	case kindCallExpr:
		var handled bool
		st, handled = a.visitLazyCall(node, source, filePath, st)
		if handled {
			return st
		}
	case kindOther:
	}

	for i := uint(0); i < uint(node.ChildCount()); i++ {
		st = a.walk(node.Child(i), source, filePath, st)
	}
	return st
}

// visitImport resolves the import specifier and, when the resolved module
// identity carries a design-system prefix, flips the accumulator and
// emits one record per introduced binding.
func (a *Analyzer) visitImport(node *ts.Node, source []byte, filePath string, st fileState) fileState {
	srcNode := node.ChildByFieldName("source")
	if srcNode == nil {
		return st
	}
	specifier := trimStringLiteral(srcNode.Utf8Text(source))
	identity := a.resolver.Resolve(specifier, filePath)
	if !a.isDesignSystem(identity) {
		return st
	}

	st.dsSeen = true
	for _, name := range importBindings(node, source) {
		st.records = append(st.records, ComponentRecord{
			Name:           name,
			Classification: ClassDesignSystemImport,
			Origin:         identity,
			FilePath:       filePath,
		})
	}
	return st
}

// visitClass emits a custom-component record when the class carries a
// recognized component annotation. compositionFlag snapshots the
// accumulator at this point in declaration order.
func (a *Analyzer) visitClass(node *ts.Node, source []byte, filePath string, st fileState) fileState {
	payload, annotated := a.componentAnnotation(node, source)
	if !annotated {
		return st
	}

	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return st
	}

	selector, shape := annotationPayload(payload, source)
	st.records = append(st.records, ComponentRecord{
		Name:            nameNode.Utf8Text(source),
		Classification:  ClassCustomComponent,
		Origin:          OriginCustom,
		FilePath:        filePath,
		CompositionFlag: st.dsSeen,
		Selector:        selector,
		UsageShape:      shape,
	})
	return st
}

// visitLazyCall emits a dynamic-import-reference record for calls to the
// configured lazy-loading entry point with a string-literal argument.
// Returns handled=true when the callee matched, whether or not a literal
// was found.
func (a *Analyzer) visitLazyCall(node *ts.Node, source []byte, filePath string, st fileState) (fileState, bool) {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Utf8Text(source) != a.cfg.LazyEntryPoint {
		return st, false
	}

	origin, ok := firstStringArgument(node, source)
	if !ok {
		return st, true
	}

	st.records = append(st.records, ComponentRecord{
		Name:           LazyLoadedName,
		Classification: ClassDynamicImport,
		Origin:         origin,
		FilePath:       filePath,
	})
	return st, true
}

// componentAnnotation finds a recognized component decorator on the class.
// Decorators attach either to the class node itself or to a wrapping
// export statement. Returns the decorator's configuration object, which
// may be nil for a bare annotation.
func (a *Analyzer) componentAnnotation(class *ts.Node, source []byte) (*ts.Node, bool) {
	if payload, ok := a.matchDecorators(class, source); ok {
		return payload, true
	}
	if parent := class.Parent(); parent != nil && parent.Kind() == "export_statement" {
		return a.matchDecorators(parent, source)
	}
	return nil, false
}

// matchDecorators scans a node's immediate decorator children.
func (a *Analyzer) matchDecorators(node *ts.Node, source []byte) (*ts.Node, bool) {
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		deco := node.Child(i)
		if deco.Kind() != "decorator" {
			continue
		}
		for j := uint(0); j < uint(deco.ChildCount()); j++ {
			inner := deco.Child(j)
			switch inner.Kind() {
			case "call_expression":
				fn := inner.ChildByFieldName("function")
				if fn != nil && a.matcher.Matches(fn.Utf8Text(source)) {
					return firstObjectArgument(inner), true
				}
			case "identifier", "member_expression":
				if a.matcher.Matches(inner.Utf8Text(source)) {
					return nil, true
				}
			}
		}
	}
	return nil, false
}

// annotationPayload extracts the optional selector and the template kind
// from a decorator configuration object. An absent payload or template
// leaves the usage shape zeroed.
func annotationPayload(payload *ts.Node, source []byte) (string, UsageShape) {
	var selector string
	var shape UsageShape
	if payload == nil {
		return selector, shape
	}

	for i := uint(0); i < uint(payload.ChildCount()); i++ {
		pair := payload.Child(i)
		if pair.Kind() != "pair" {
			continue
		}
		keyNode := pair.ChildByFieldName("key")
		if keyNode == nil {
			continue
		}
		switch trimStringLiteral(keyNode.Utf8Text(source)) {
		case "selector":
			if val := pair.ChildByFieldName("value"); val != nil {
				selector = trimStringLiteral(val.Utf8Text(source))
			}
		case "template":
			shape.Inline = 1
		case "templateUrl":
			shape.External = 1
		}
	}
	return selector, shape
}

// importBindings collects the local names introduced by an import
// statement: default, named (alias wins), and namespace bindings.
func importBindings(node *ts.Node, source []byte) []string {
	var names []string
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		clause := node.Child(i)
		if clause.Kind() != "import_clause" {
			continue
		}
		for j := uint(0); j < uint(clause.ChildCount()); j++ {
			child := clause.Child(j)
			switch child.Kind() {
			case "identifier":
				names = append(names, child.Utf8Text(source))
			case "namespace_import":
				for k := uint(0); k < uint(child.ChildCount()); k++ {
					if id := child.Child(k); id.Kind() == "identifier" {
						names = append(names, id.Utf8Text(source))
					}
				}
			case "named_imports":
				for k := uint(0); k < uint(child.ChildCount()); k++ {
					spec := child.Child(k)
					if spec.Kind() != "import_specifier" {
						continue
					}
					if alias := spec.ChildByFieldName("alias"); alias != nil {
						names = append(names, alias.Utf8Text(source))
						continue
					}
					if name := spec.ChildByFieldName("name"); name != nil {
						names = append(names, name.Utf8Text(source))
					}
				}
			}
		}
	}
	return names
}

// firstObjectArgument returns the first object literal in a call's
// argument list.
func firstObjectArgument(call *ts.Node) *ts.Node {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	for i := uint(0); i < uint(args.ChildCount()); i++ {
		if arg := args.Child(i); arg.Kind() == "object" {
			return arg
		}
	}
	return nil
}

// firstStringArgument returns the first string-literal argument of a call.
func firstStringArgument(call *ts.Node, source []byte) (string, bool) {
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return "", false
	}
	for i := uint(0); i < uint(args.ChildCount()); i++ {
		if arg := args.Child(i); arg.Kind() == "string" {
			return trimStringLiteral(arg.Utf8Text(source)), true
		}
	}
	return "", false
}

func (a *Analyzer) isDesignSystem(identity string) bool {
	for _, prefix := range a.cfg.DesignSystemPrefixes {
		if strings.HasPrefix(identity, prefix) {
			return true
		}
	}
	return false
}

func trimStringLiteral(text string) string {
	return strings.Trim(text, "\"'`")
}

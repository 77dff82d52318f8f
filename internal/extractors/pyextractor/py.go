// Package pyextractor is the deep, syntax-tree-based extractor for Python
// source files. It produces a compressed semantic summary: imports with an
// alias->origin map, class/function declarations with signatures and doc
// summaries, a __main__-guard flag, and call sites classified by
// external-usage category.
package pyextractor

import (
	"fmt"
	"log"
	"path/filepath"

	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"srcfacts/internal/config"
	"srcfacts/internal/facts"
)

// PyExtractor extracts facts from Python sources using tree-sitter.
type PyExtractor struct {
	categories  config.CategoryPrefixes
	maxSamples  int
	maxDocChars int
}

// New creates a PyExtractor with category prefixes and caps from the config.
func New(cfg *config.Config) *PyExtractor {
	return &PyExtractor{
		categories:  cfg.Categories,
		maxSamples:  cfg.Limits.CallSamples,
		maxDocChars: cfg.Limits.DocChars,
	}
}

func (e *PyExtractor) Language() string { return "python" }

func (e *PyExtractor) Handles() []string { return []string{".py", ".pyw"} }

// Extract parses the file and builds its structures and signals. Individual
// malformed declarations are skipped and counted; a tree with syntax errors
// fails with facts.ErrParseFailure so the caller can skip the file.
func (e *PyExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(sitter.NewLanguage(python.Language()))

	tree := parser.Parse(src, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return facts.FileFact{}, fmt.Errorf("%w: %s", facts.ErrParseFailure, path)
	}

	imports := newImportSet()
	collectImports(root, src, imports)

	structures, skipped := e.extractStructures(root, src)
	if skipped > 0 {
		log.Printf("[py-extractor] %s: skipped %d malformed declarations", path, skipped)
	}

	signals := &Signals{
		Imports:    imports.roots,
		EntryPoint: detectEntryPoint(root, src),
	}
	signals.ExternalUsage, signals.CallsSample = e.analyzeCalls(root, src, imports)

	fact := facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "python",
		Structures: structures,
		Signals:    signals,
	}

	if doc, docLine := moduleDoc(root, src, e.maxDocChars); doc != "" {
		signals.ModuleDoc = doc
		signals.ModuleDocLine = docLine
		fact.Evidence = append(fact.Evidence, facts.Evidence{
			Location:   fmt.Sprintf("%s:%d", path, docLine),
			Snippet:    doc,
			SignalType: "module_docstring",
			Weight:     1.0,
		})
	}

	return fact, nil
}

// extractStructures walks the tree for class definitions and scans the
// module body for top-level functions and globals.
func (e *PyExtractor) extractStructures(root *sitter.Node, src []byte) (*Structures, int) {
	var classNodes []*sitter.Node
	walk(root, func(n *sitter.Node) bool {
		if n.Kind() == "class_definition" {
			classNodes = append(classNodes, n)
		}
		return true
	})

	classes, classFailures := collect(classNodes, func(n *sitter.Node) (Class, error) {
		return e.extractClass(n, src)
	})

	var funcNodes []*sitter.Node
	for i := range root.NamedChildCount() {
		child := root.NamedChild(i)
		if fn := definitionNode(child, "function_definition"); fn != nil {
			funcNodes = append(funcNodes, fn)
		}
	}

	functions, funcFailures := collect(funcNodes, func(n *sitter.Node) (Func, error) {
		return e.extractFunc(n, src)
	})

	return &Structures{
		Classes:   classes,
		Functions: functions,
		Globals:   extractGlobals(root, src),
	}, classFailures + funcFailures
}

// definitionNode unwraps decorated definitions and returns the node when it
// is of the wanted kind.
func definitionNode(n *sitter.Node, kind string) *sitter.Node {
	if n.Kind() == "decorated_definition" {
		if def := n.ChildByFieldName("definition"); def != nil {
			n = def
		}
	}
	if n.Kind() == kind {
		return n
	}
	return nil
}

func (e *PyExtractor) extractClass(n *sitter.Node, src []byte) (Class, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return Class{}, fmt.Errorf("class definition without name at line %d", line(n))
	}

	cls := Class{
		Name: nodeText(nameNode, src),
		Line: line(n),
	}

	if supers := n.ChildByFieldName("superclasses"); supers != nil {
		for i := range supers.NamedChildCount() {
			cls.Bases = append(cls.Bases, nodeText(supers.NamedChild(i), src))
		}
	}

	body := n.ChildByFieldName("body")
	if body != nil {
		if doc, _ := docstringOf(body, src); doc != "" {
			cls.Doc = shortDocSummary(doc, e.maxDocChars)
		}

		var methodNodes []*sitter.Node
		for i := range body.NamedChildCount() {
			if fn := definitionNode(body.NamedChild(i), "function_definition"); fn != nil {
				methodNodes = append(methodNodes, fn)
			}
		}
		methods, _ := collect(methodNodes, func(m *sitter.Node) (Func, error) {
			return e.extractFunc(m, src)
		})
		cls.Methods = methods
	}

	return cls, nil
}

func (e *PyExtractor) extractFunc(n *sitter.Node, src []byte) (Func, error) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return Func{}, fmt.Errorf("function definition without name at line %d", line(n))
	}

	fn := Func{
		Name:      nodeText(nameNode, src),
		Line:      line(n),
		Signature: signature(n, src),
	}

	if body := n.ChildByFieldName("body"); body != nil {
		if doc, _ := docstringOf(body, src); doc != "" {
			fn.Doc = shortDocSummary(doc, e.maxDocChars)
		}
	}

	return fn, nil
}

// signature renders "(a, b: int, *args, **kw) -> ret" from the parameters
// and return_type fields. Defaults are dropped, annotations kept.
func signature(fn *sitter.Node, src []byte) string {
	var parts []string

	if params := fn.ChildByFieldName("parameters"); params != nil {
		for i := range params.NamedChildCount() {
			p := params.NamedChild(i)
			switch p.Kind() {
			case "identifier", "typed_parameter", "list_splat_pattern", "dictionary_splat_pattern", "tuple_pattern":
				parts = append(parts, nodeText(p, src))
			case "default_parameter":
				if name := p.ChildByFieldName("name"); name != nil {
					parts = append(parts, nodeText(name, src))
				}
			case "typed_default_parameter":
				name := p.ChildByFieldName("name")
				typ := p.ChildByFieldName("type")
				if name != nil && typ != nil {
					parts = append(parts, nodeText(name, src)+": "+nodeText(typ, src))
				} else if name != nil {
					parts = append(parts, nodeText(name, src))
				}
			}
		}
	}

	sig := "(" + joinComma(parts) + ")"
	if ret := fn.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + nodeText(ret, src)
	}
	return sig
}

// extractGlobals collects top-level simple assignment targets, excluding
// underscore-prefixed names.
func extractGlobals(root *sitter.Node, src []byte) []string {
	var globals []string
	for i := range root.NamedChildCount() {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "expression_statement" || stmt.NamedChildCount() == 0 {
			continue
		}
		assign := stmt.NamedChild(0)
		if assign.Kind() != "assignment" {
			continue
		}
		left := assign.ChildByFieldName("left")
		if left == nil || left.Kind() != "identifier" {
			continue
		}
		name := nodeText(left, src)
		if len(name) > 0 && name[0] == '_' {
			continue
		}
		globals = append(globals, name)
	}
	return globals
}

// detectEntryPoint reports whether the tree contains a top-level
// `if __name__ == "__main__":` guard.
func detectEntryPoint(root *sitter.Node, src []byte) bool {
	found := false
	walk(root, func(n *sitter.Node) bool {
		if found {
			return false
		}
		if n.Kind() != "if_statement" {
			return true
		}
		cond := n.ChildByFieldName("condition")
		if cond == nil || cond.Kind() != "comparison_operator" {
			return true
		}

		eq := false
		for i := range cond.ChildCount() {
			if cond.Child(i).Kind() == "==" {
				eq = true
				break
			}
		}
		if !eq {
			return true
		}

		hasName, hasMain := false, false
		for i := range cond.NamedChildCount() {
			operand := cond.NamedChild(i)
			switch operand.Kind() {
			case "identifier":
				if nodeText(operand, src) == "__name__" {
					hasName = true
				}
			case "string":
				if stringContent(operand, src) == "__main__" {
					hasMain = true
				}
			}
		}
		if hasName && hasMain {
			found = true
			return false
		}
		return true
	})
	return found
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

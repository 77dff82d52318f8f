package pyextractor

import (
	"fmt"
	"sort"
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// analyzeCalls walks all call expressions, reconstructs dotted call chains,
// filters noise roots, classifies the remainder by external-usage category,
// and keeps a bounded sample of call sites deduplicated by (chain, line).
func (e *PyExtractor) analyzeCalls(root *sitter.Node, src []byte, imports *importSet) ([]string, []CallSample) {
	categories := make(map[string]bool)
	seen := make(map[string]bool)
	var samples []CallSample

	walk(root, func(n *sitter.Node) bool {
		if n.Kind() != "call" {
			return true
		}

		chain := callChain(n.ChildByFieldName("function"), src)
		if len(chain) == 0 {
			return true
		}
		chainRoot := chain[0]

		if containsString(e.categories.CallBlacklist, chainRoot) {
			return true
		}
		if containsString(e.categories.LoggingRoots, chainRoot) {
			return true
		}

		full := strings.Join(chain, ".")
		callLine := line(n)
		key := fmt.Sprintf("%s:%d", full, callLine)
		if seen[key] {
			return true
		}
		seen[key] = true

		if category := e.classify(chainRoot, imports); category != "" {
			categories[category] = true
		}

		if len(samples) < e.maxSamples {
			samples = append(samples, CallSample{
				Call:   full,
				Line:   callLine,
				Sample: firstLine(nodeText(n, src)),
			})
		}
		return true
	})

	usage := make([]string, 0, len(categories))
	for c := range categories {
		usage = append(usage, c)
	}
	sort.Strings(usage)
	return usage, samples
}

// classify resolves a call root through the alias map and prefix-matches the
// origin against the category lists. A bare, unresolved file-open primitive
// is classified as io.
func (e *PyExtractor) classify(root string, imports *importSet) string {
	origin, ok := imports.Resolve(root)
	if !ok {
		if containsString(e.categories.IORoots, root) {
			return "io"
		}
		return ""
	}

	switch {
	case hasAnyPrefix(origin, e.categories.Network):
		return "network"
	case hasAnyPrefix(origin, e.categories.Database):
		return "database"
	case hasAnyPrefix(origin, e.categories.Subprocess):
		return "subprocess"
	}
	return ""
}

// callChain follows attribute/name chains to reconstruct the dotted call
// target, e.g. requests.get -> ["requests", "get"]. Exotic callees (lambdas,
// subscripts) yield an empty chain and are skipped.
func callChain(fn *sitter.Node, src []byte) []string {
	var chain []string
	for fn != nil {
		switch fn.Kind() {
		case "attribute":
			attr := fn.ChildByFieldName("attribute")
			if attr == nil {
				return nil
			}
			chain = append([]string{nodeText(attr, src)}, chain...)
			fn = fn.ChildByFieldName("object")
		case "identifier":
			return append([]string{nodeText(fn, src)}, chain...)
		case "call":
			inner := fn.ChildByFieldName("function")
			if inner != nil && inner.Kind() == "identifier" {
				return append([]string{nodeText(inner, src)}, chain...)
			}
			return chain
		default:
			return nil
		}
	}
	return chain
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

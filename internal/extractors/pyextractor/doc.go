package pyextractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// walk visits node and its subtree depth-first. Returning false from fn
// prunes the subtree.
func walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if !fn(node) {
		return
	}
	for i := range node.ChildCount() {
		walk(node.Child(i), fn)
	}
}

func nodeText(node *sitter.Node, src []byte) string {
	return string(src[node.StartByte():node.EndByte()])
}

func line(node *sitter.Node) int {
	return int(node.StartPosition().Row) + 1
}

// stringContent returns the unquoted contents of a string node.
func stringContent(node *sitter.Node, src []byte) string {
	if node == nil || node.Kind() != "string" {
		return ""
	}
	var sb strings.Builder
	for i := range node.ChildCount() {
		child := node.Child(i)
		if child.Kind() == "string_content" {
			sb.WriteString(nodeText(child, src))
		}
	}
	return sb.String()
}

// docstringOf returns the raw docstring of a block node (the leading
// expression statement holding a string literal), with its line number.
func docstringOf(body *sitter.Node, src []byte) (string, int) {
	if body == nil || body.NamedChildCount() == 0 {
		return "", 0
	}
	first := body.NamedChild(0)
	if first.Kind() != "expression_statement" || first.NamedChildCount() == 0 {
		return "", 0
	}
	str := first.NamedChild(0)
	if str.Kind() != "string" {
		return "", 0
	}
	return stringContent(str, src), line(first)
}

// moduleDoc returns the summarized leading module docstring, if present.
func moduleDoc(root *sitter.Node, src []byte, maxChars int) (string, int) {
	raw, docLine := docstringOf(root, src)
	if raw == "" {
		return "", 0
	}
	return shortDocSummary(raw, maxChars), docLine
}

// shortDocSummary reduces a docstring to its first paragraph, truncated to
// maxChars with an ellipsis. A short multi-line first paragraph keeps its
// first two lines instead.
func shortDocSummary(doc string, maxChars int) string {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return ""
	}

	first := doc
	for _, p := range strings.Split(doc, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			first = p
			break
		}
	}

	if strings.Contains(first, "\n") && len(first) < 120 {
		lines := strings.Split(first, "\n")
		if len(lines) > 2 {
			lines = lines[:2]
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}

	if len(first) > maxChars {
		return strings.TrimRight(first[:maxChars-3], " \t") + "..."
	}
	return first
}

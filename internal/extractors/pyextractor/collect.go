package pyextractor

import sitter "github.com/tree-sitter/go-tree-sitter"

// collect applies fn to each node, keeping successes and counting failures.
// A single malformed declaration never aborts the whole extraction.
func collect[T any](nodes []*sitter.Node, fn func(*sitter.Node) (T, error)) ([]T, int) {
	out := make([]T, 0, len(nodes))
	failed := 0
	for _, n := range nodes {
		v, err := fn(n)
		if err != nil {
			failed++
			continue
		}
		out = append(out, v)
	}
	return out, failed
}

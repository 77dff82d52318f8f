package pyextractor

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// importSet is the alias->origin map plus the ordered, deduplicated list of
// top-level origin roots built from a file's import statements.
type importSet struct {
	aliases map[string]string // local name -> fully qualified origin
	roots   []string          // top-level origin roots, source order
	seen    map[string]bool
}

func newImportSet() *importSet {
	return &importSet{
		aliases: make(map[string]string),
		seen:    make(map[string]bool),
	}
}

func (s *importSet) addAlias(local, origin string) {
	if local != "" {
		s.aliases[local] = origin
	}
}

func (s *importSet) addRoot(root string) {
	if root == "" || s.seen[root] {
		return
	}
	s.seen[root] = true
	s.roots = append(s.roots, root)
}

// Resolve maps a local name to its import origin. Resolution is a pure map
// lookup, so resolving the same name twice always yields the same origin.
func (s *importSet) Resolve(local string) (string, bool) {
	origin, ok := s.aliases[local]
	return origin, ok
}

// collectImports walks the tree for import statements and fills the set.
func collectImports(root *sitter.Node, src []byte, set *importSet) {
	walk(root, func(n *sitter.Node) bool {
		switch n.Kind() {
		case "import_statement":
			collectPlainImport(n, src, set)
		case "import_from_statement":
			collectFromImport(n, src, set)
		}
		return true
	})
}

// collectPlainImport handles `import a.b` and `import a.b as c`.
func collectPlainImport(n *sitter.Node, src []byte, set *importSet) {
	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "dotted_name":
			origin := nodeText(child, src)
			set.addAlias(rootSegment(origin), origin)
			set.addRoot(rootSegment(origin))
		case "aliased_import":
			name := child.ChildByFieldName("name")
			alias := child.ChildByFieldName("alias")
			if name == nil {
				continue
			}
			origin := nodeText(name, src)
			local := rootSegment(origin)
			if alias != nil {
				local = nodeText(alias, src)
			}
			set.addAlias(local, origin)
			set.addRoot(rootSegment(origin))
		}
	}
}

// collectFromImport handles `from m import a as b` and relative forms.
// Relative origins keep their leading dots so the dependency filter can
// drop them later.
func collectFromImport(n *sitter.Node, src []byte, set *importSet) {
	moduleNode := n.ChildByFieldName("module_name")
	if moduleNode == nil {
		return
	}

	moduleText := nodeText(moduleNode, src)
	relative := strings.HasPrefix(moduleText, ".")
	if relative {
		set.addRoot(moduleText)
	} else {
		set.addRoot(rootSegment(moduleText))
	}

	prefix := strings.TrimLeft(moduleText, ".")

	for i := range n.NamedChildCount() {
		child := n.NamedChild(i)
		if child.StartByte() == moduleNode.StartByte() {
			continue
		}
		switch child.Kind() {
		case "dotted_name":
			name := nodeText(child, src)
			set.addAlias(name, qualify(prefix, name))
		case "aliased_import":
			nameNode := child.ChildByFieldName("name")
			aliasNode := child.ChildByFieldName("alias")
			if nameNode == nil {
				continue
			}
			name := nodeText(nameNode, src)
			local := name
			if aliasNode != nil {
				local = nodeText(aliasNode, src)
			}
			set.addAlias(local, qualify(prefix, name))
		}
	}
}

func qualify(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}

// rootSegment returns the first dotted component of an origin.
func rootSegment(origin string) string {
	if i := strings.IndexByte(origin, '.'); i >= 0 {
		return origin[:i]
	}
	return origin
}

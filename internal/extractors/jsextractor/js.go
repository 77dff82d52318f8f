// Package jsextractor holds the shallow, regex-based extractors for
// JavaScript and TypeScript files.
package jsextractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"srcfacts/internal/facts"
)

var (
	jsImportRe  = regexp.MustCompile(`import\s+[\w\s{},*]+from\s+['"]([^'"]+)['"]`)
	jsRequireRe = regexp.MustCompile(`require\(['"]([^'"]+)['"]\)`)
	jsFuncRe    = regexp.MustCompile(`function\s+(\w+)\s*\(`)
	jsClassRe   = regexp.MustCompile(`class\s+(\w+)`)
)

// JSExtractor is the shallow extractor for .js/.jsx files.
type JSExtractor struct{}

// NewJavaScript creates a JSExtractor.
func NewJavaScript() *JSExtractor {
	return &JSExtractor{}
}

func (e *JSExtractor) Language() string { return "javascript" }

func (e *JSExtractor) Handles() []string { return []string{".js", ".jsx"} }

// JSStructures lists function and class declarations found by scanning.
type JSStructures struct {
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
}

func (s *JSStructures) DeclCounts() (classes, functions int) {
	return len(s.Classes), len(s.Functions)
}

func (s *JSStructures) FunctionNames() []string { return s.Functions }

// JSSignals records module-system and framework evidence.
type JSSignals struct {
	Imports  []string `json:"imports"`
	CommonJS bool     `json:"commonjs"`
	ESM      bool     `json:"esm"`
	Express  bool     `json:"express"`
	React    bool     `json:"react"`
}

func (s *JSSignals) ImportList() []string { return s.Imports }

func (s *JSSignals) IsEntryPoint() bool { return false }

// UsageCategories reports network capability when a server framework is in use.
func (s *JSSignals) UsageCategories() []string {
	if s.Express {
		return []string{facts.UsageNetwork}
	}
	return nil
}

func (s *JSSignals) FrameworkTags() []string {
	var tags []string
	if s.React {
		tags = append(tags, "react")
	}
	if s.Express {
		tags = append(tags, "express")
	}
	return tags
}

// Extract scans the source with regular expressions; it never fails.
func (e *JSExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	text := string(src)

	var imports []string
	for _, m := range jsImportRe.FindAllStringSubmatch(text, -1) {
		imports = append(imports, m[1])
	}
	for _, m := range jsRequireRe.FindAllStringSubmatch(text, -1) {
		imports = append(imports, m[1])
	}

	structures := &JSStructures{
		Functions: submatches(jsFuncRe, text),
		Classes:   submatches(jsClassRe, text),
	}

	signals := &JSSignals{
		Imports:  imports,
		CommonJS: strings.Contains(text, "module.exports") || strings.Contains(text, "exports."),
		ESM:      strings.Contains(text, "import "),
		Express:  strings.Contains(text, "express"),
		React:    strings.Contains(strings.ToLower(text), "react"),
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "javascript",
		Structures: structures,
		Signals:    signals,
	}, nil
}

func submatches(re *regexp.Regexp, text string) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		out = append(out, m[1])
	}
	return out
}

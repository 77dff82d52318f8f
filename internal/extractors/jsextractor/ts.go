package jsextractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"srcfacts/internal/facts"
)

var (
	tsImportRe = regexp.MustCompile(`import\s+.*?from\s+['"]([^'"]+)['"]`)
	tsTypesRe  = regexp.MustCompile(`:\s*\w+<|interface|type\s+\w+`)
)

// TSExtractor is the shallow extractor for .ts/.tsx files.
type TSExtractor struct{}

// NewTypeScript creates a TSExtractor.
func NewTypeScript() *TSExtractor {
	return &TSExtractor{}
}

func (e *TSExtractor) Language() string { return "typescript" }

func (e *TSExtractor) Handles() []string { return []string{".ts", ".tsx"} }

// TSStructures lists declarations found by scanning.
type TSStructures struct {
	Functions []string `json:"functions"`
	Classes   []string `json:"classes"`
}

func (s *TSStructures) DeclCounts() (classes, functions int) {
	return len(s.Classes), len(s.Functions)
}

func (s *TSStructures) FunctionNames() []string { return s.Functions }

// TSSignals records typing and JSX evidence.
type TSSignals struct {
	Imports    []string `json:"imports"`
	TypeScript bool     `json:"typescript"`
	JSX        bool     `json:"jsx"`
}

func (s *TSSignals) ImportList() []string      { return s.Imports }
func (s *TSSignals) IsEntryPoint() bool        { return false }
func (s *TSSignals) UsageCategories() []string { return nil }

// Extract scans the source with regular expressions; it never fails.
func (e *TSExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	text := string(src)

	structures := &TSStructures{
		Functions: submatches(jsFuncRe, text),
		Classes:   submatches(jsClassRe, text),
	}

	signals := &TSSignals{
		Imports:    submatches(tsImportRe, text),
		TypeScript: tsTypesRe.MatchString(text),
		JSX: strings.Contains(text, "<") && strings.Contains(text, ">") &&
			(strings.Contains(text, "React") || strings.Contains(strings.ToLower(text), "jsx")),
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "typescript",
		Structures: structures,
		Signals:    signals,
	}, nil
}

// Package javaextractor is the shallow, regex-based extractor for Java files.
package javaextractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"srcfacts/internal/facts"
)

var (
	classRe  = regexp.MustCompile(`class\s+(\w+)`)
	methodRe = regexp.MustCompile(`(?:public|private|protected)\s+[\w<>]+\s+(\w+)\(`)
	importRe = regexp.MustCompile(`import\s+([\w.]+);`)
)

// JavaExtractor scans .java files for classes, methods, and imports.
type JavaExtractor struct{}

// New creates a JavaExtractor.
func New() *JavaExtractor {
	return &JavaExtractor{}
}

func (e *JavaExtractor) Language() string { return "java" }

func (e *JavaExtractor) Handles() []string { return []string{".java"} }

// JavaStructures lists class and method declarations.
type JavaStructures struct {
	Classes []string `json:"classes"`
	Methods []string `json:"methods"`
}

func (s *JavaStructures) DeclCounts() (classes, functions int) {
	return len(s.Classes), len(s.Methods)
}

func (s *JavaStructures) FunctionNames() []string { return s.Methods }

// JavaSignals records imports and the static-main entry idiom.
type JavaSignals struct {
	Imports    []string `json:"imports"`
	EntryPoint bool     `json:"entry_point"`
}

func (s *JavaSignals) ImportList() []string      { return s.Imports }
func (s *JavaSignals) IsEntryPoint() bool        { return s.EntryPoint }
func (s *JavaSignals) UsageCategories() []string { return nil }

// Extract scans the source with regular expressions; it never fails.
func (e *JavaExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	text := string(src)

	var classes, methods, imports []string
	for _, m := range classRe.FindAllStringSubmatch(text, -1) {
		classes = append(classes, m[1])
	}
	for _, m := range methodRe.FindAllStringSubmatch(text, -1) {
		methods = append(methods, m[1])
	}
	for _, m := range importRe.FindAllStringSubmatch(text, -1) {
		imports = append(imports, m[1])
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "java",
		Structures: &JavaStructures{Classes: classes, Methods: methods},
		Signals: &JavaSignals{
			Imports:    imports,
			EntryPoint: strings.Contains(text, "public static void main"),
		},
	}, nil
}

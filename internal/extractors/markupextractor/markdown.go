// Package markupextractor holds the shallow extractors for documentation
// formats: Markdown and HTML.
package markupextractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"srcfacts/internal/facts"
)

var (
	headingRe  = regexp.MustCompile(`(?m)^#+\s+(.+)$`)
	fenceRe    = regexp.MustCompile("```")
	usageishRe = regexp.MustCompile(`(?i)install|usage|run`)
)

const maxHeadings = 10

// MarkdownExtractor scans .md files for headings and code blocks.
type MarkdownExtractor struct{}

// NewMarkdown creates a MarkdownExtractor.
func NewMarkdown() *MarkdownExtractor {
	return &MarkdownExtractor{}
}

func (e *MarkdownExtractor) Language() string { return "markdown" }

func (e *MarkdownExtractor) Handles() []string { return []string{".md"} }

// MarkdownStructures lists the document outline.
type MarkdownStructures struct {
	Headings       []string `json:"headings"`
	CodeBlockCount int      `json:"code_block_count"`
}

func (s *MarkdownStructures) DeclCounts() (classes, functions int) { return 0, 0 }

// MarkdownSignals flags docs that explain how to install or run something.
type MarkdownSignals struct {
	HasInstallSteps bool `json:"has_install_steps"`
}

func (s *MarkdownSignals) ImportList() []string      { return nil }
func (s *MarkdownSignals) IsEntryPoint() bool        { return false }
func (s *MarkdownSignals) UsageCategories() []string { return nil }

// Extract scans the document; it never fails.
func (e *MarkdownExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	text := string(src)

	var headings []string
	for _, m := range headingRe.FindAllStringSubmatch(text, -1) {
		headings = append(headings, strings.TrimSpace(m[1]))
		if len(headings) == maxHeadings {
			break
		}
	}

	return facts.FileFact{
		Path:     path,
		Filename: filepath.Base(path),
		Language: "markdown",
		Structures: &MarkdownStructures{
			Headings:       headings,
			CodeBlockCount: len(fenceRe.FindAllString(text, -1)),
		},
		Signals: &MarkdownSignals{
			HasInstallSteps: usageishRe.MatchString(text),
		},
	}, nil
}

package markupextractor

import (
	"path/filepath"
	"regexp"
	"sort"

	"srcfacts/internal/facts"
)

var (
	tagRe    = regexp.MustCompile(`<([a-zA-Z0-9]+)`)
	scriptRe = regexp.MustCompile(`(?i)<script`)
	formRe   = regexp.MustCompile(`(?i)<form`)
)

// HTMLExtractor scans .html files for tags, scripts, and forms.
type HTMLExtractor struct{}

// NewHTML creates an HTMLExtractor.
func NewHTML() *HTMLExtractor {
	return &HTMLExtractor{}
}

func (e *HTMLExtractor) Language() string { return "html" }

func (e *HTMLExtractor) Handles() []string { return []string{".html"} }

// HTMLStructures lists the distinct tags and block counts.
type HTMLStructures struct {
	Tags         []string `json:"tags"`
	ScriptBlocks int      `json:"script_blocks"`
	Forms        int      `json:"forms"`
}

func (s *HTMLStructures) DeclCounts() (classes, functions int) { return 0, 0 }

// HTMLSignals flags pages carrying client logic or user input.
type HTMLSignals struct {
	ClientLogic bool `json:"client_logic"`
	UserInput   bool `json:"user_input"`
}

func (s *HTMLSignals) ImportList() []string      { return nil }
func (s *HTMLSignals) IsEntryPoint() bool        { return false }
func (s *HTMLSignals) UsageCategories() []string { return nil }

// Extract scans the document; it never fails.
func (e *HTMLExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	text := string(src)

	tagSet := make(map[string]bool)
	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		tagSet[m[1]] = true
	}
	tags := make([]string, 0, len(tagSet))
	for t := range tagSet {
		tags = append(tags, t)
	}
	sort.Strings(tags)

	scripts := len(scriptRe.FindAllString(text, -1))
	forms := len(formRe.FindAllString(text, -1))

	return facts.FileFact{
		Path:     path,
		Filename: filepath.Base(path),
		Language: "html",
		Structures: &HTMLStructures{
			Tags:         tags,
			ScriptBlocks: scripts,
			Forms:        forms,
		},
		Signals: &HTMLSignals{
			ClientLogic: scripts > 0,
			UserInput:   forms > 0,
		},
	}, nil
}

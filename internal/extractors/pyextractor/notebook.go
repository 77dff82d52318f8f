package pyextractor

import (
	"encoding/json"
	"path/filepath"

	"srcfacts/internal/facts"
)

// NotebookExtractor is a shallow extractor for Jupyter notebooks. It only
// counts cell types; the embedded code is not parsed.
type NotebookExtractor struct{}

// NewNotebook creates a NotebookExtractor.
func NewNotebook() *NotebookExtractor {
	return &NotebookExtractor{}
}

func (e *NotebookExtractor) Language() string { return "notebook" }

func (e *NotebookExtractor) Handles() []string { return []string{".ipynb"} }

// NotebookStructures holds the cell counts of a notebook.
type NotebookStructures struct {
	CodeCells     int `json:"code_cells"`
	MarkdownCells int `json:"markdown_cells"`
}

func (s *NotebookStructures) DeclCounts() (classes, functions int) { return 0, 0 }

// NotebookSignals flags whether a notebook looks runnable end to end.
type NotebookSignals struct {
	Reproducible bool `json:"is_reproducible"`
}

func (s *NotebookSignals) ImportList() []string      { return nil }
func (s *NotebookSignals) IsEntryPoint() bool        { return false }
func (s *NotebookSignals) UsageCategories() []string { return nil }

// Extract counts code and markdown cells. A notebook that fails to decode
// yields zero counts rather than an error.
func (e *NotebookExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	var doc struct {
		Cells []struct {
			CellType string `json:"cell_type"`
		} `json:"cells"`
	}

	structures := &NotebookStructures{}
	if err := json.Unmarshal(src, &doc); err == nil {
		for _, c := range doc.Cells {
			switch c.CellType {
			case "code":
				structures.CodeCells++
			case "markdown":
				structures.MarkdownCells++
			}
		}
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "notebook",
		Structures: structures,
		Signals:    &NotebookSignals{Reproducible: structures.CodeCells > structures.MarkdownCells},
	}, nil
}

package buildextractor

import (
	"path/filepath"
	"regexp"

	"srcfacts/internal/facts"
)

var targetRe = regexp.MustCompile(`(?m)^([a-zA-Z0-9_\-]+)\s*:`)

const maxTargets = 20

// MakefileExtractor scans Makefiles for targets.
type MakefileExtractor struct{}

// NewMakefile creates a MakefileExtractor.
func NewMakefile() *MakefileExtractor {
	return &MakefileExtractor{}
}

func (e *MakefileExtractor) Language() string { return "makefile" }

func (e *MakefileExtractor) Handles() []string { return []string{"Makefile", "makefile"} }

// MakefileStructures lists the declared targets.
type MakefileStructures struct {
	Targets []string `json:"targets"`
}

func (s *MakefileStructures) DeclCounts() (classes, functions int) { return 0, 0 }

// MakefileSignals flags Makefiles with a conventional default target.
type MakefileSignals struct {
	HasDefaultTarget bool `json:"has_default_target"`
}

func (s *MakefileSignals) ImportList() []string      { return nil }
func (s *MakefileSignals) IsEntryPoint() bool        { return false }
func (s *MakefileSignals) UsageCategories() []string { return nil }

// Extract scans the file; it never fails.
func (e *MakefileExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	var targets []string
	hasDefault := false
	for _, m := range targetRe.FindAllStringSubmatch(string(src), -1) {
		if m[1] == "all" {
			hasDefault = true
		}
		if len(targets) < maxTargets {
			targets = append(targets, m[1])
		}
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "makefile",
		Structures: &MakefileStructures{Targets: targets},
		Signals:    &MakefileSignals{HasDefaultTarget: hasDefault},
	}, nil
}

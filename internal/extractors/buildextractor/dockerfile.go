// Package buildextractor holds the shallow extractors for build files:
// Dockerfile and Makefile.
package buildextractor

import (
	"path/filepath"
	"regexp"
	"strings"

	"srcfacts/internal/facts"
)

var (
	fromRe   = regexp.MustCompile(`(?m)^FROM\s+(.+)$`)
	exposeRe = regexp.MustCompile(`(?m)^EXPOSE\s+(.+)$`)
)

// DockerfileExtractor scans Dockerfiles for base images and ports.
type DockerfileExtractor struct{}

// NewDockerfile creates a DockerfileExtractor.
func NewDockerfile() *DockerfileExtractor {
	return &DockerfileExtractor{}
}

func (e *DockerfileExtractor) Language() string { return "dockerfile" }

func (e *DockerfileExtractor) Handles() []string { return []string{"Dockerfile"} }

// DockerfileStructures lists base images and exposed ports.
type DockerfileStructures struct {
	From   []string `json:"from"`
	Expose []string `json:"expose"`
}

func (s *DockerfileStructures) DeclCounts() (classes, functions int) { return 0, 0 }

// DockerfileSignals flags images that define a runnable command.
type DockerfileSignals struct {
	HasEntrypoint bool `json:"has_entrypoint"`
}

func (s *DockerfileSignals) ImportList() []string      { return nil }
func (s *DockerfileSignals) IsEntryPoint() bool        { return false }
func (s *DockerfileSignals) UsageCategories() []string { return nil }

// Extract scans the file; it never fails.
func (e *DockerfileExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	text := string(src)

	var froms, exposes []string
	for _, m := range fromRe.FindAllStringSubmatch(text, -1) {
		froms = append(froms, strings.TrimSpace(m[1]))
	}
	for _, m := range exposeRe.FindAllStringSubmatch(text, -1) {
		exposes = append(exposes, strings.TrimSpace(m[1]))
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "dockerfile",
		Structures: &DockerfileStructures{From: froms, Expose: exposes},
		Signals: &DockerfileSignals{
			HasEntrypoint: strings.Contains(text, "ENTRYPOINT") || strings.Contains(text, "CMD"),
		},
	}, nil
}

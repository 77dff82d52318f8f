// Package configextractor holds the shallow extractors for structured
// configuration formats: YAML and JSON.
package configextractor

import (
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"srcfacts/internal/facts"
)

const maxKeys = 10

// YAMLExtractor scans .yml/.yaml files.
type YAMLExtractor struct{}

// NewYAML creates a YAMLExtractor.
func NewYAML() *YAMLExtractor {
	return &YAMLExtractor{}
}

func (e *YAMLExtractor) Language() string { return "yaml" }

func (e *YAMLExtractor) Handles() []string { return []string{".yml", ".yaml"} }

// KeyValueStructures names the top-level shape of a structured document.
type KeyValueStructures struct {
	Top string `json:"top"`
}

func (s *KeyValueStructures) DeclCounts() (classes, functions int) { return 0, 0 }

// YAMLSignals records the top-level keys and recognizable document shapes.
type YAMLSignals struct {
	Keys             []string `json:"keys,omitempty"`
	LooksLikeK8s     bool     `json:"looks_like_k8s"`
	LooksLikeCompose bool     `json:"looks_like_compose"`
}

func (s *YAMLSignals) ImportList() []string      { return nil }
func (s *YAMLSignals) IsEntryPoint() bool        { return false }
func (s *YAMLSignals) UsageCategories() []string { return nil }

// Extract decodes the document best-effort; undecodable input yields an
// empty fact rather than an error.
func (e *YAMLExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	var data any
	top := "none"
	signals := &YAMLSignals{}

	if err := yaml.Unmarshal(src, &data); err == nil && data != nil {
		top = fmt.Sprintf("%T", data)
		if m, ok := data.(map[string]any); ok {
			top = "mapping"
			signals.Keys = topKeys(m)
			_, hasAPIVersion := m["apiVersion"]
			_, hasKind := m["kind"]
			_, hasServices := m["services"]
			signals.LooksLikeK8s = hasAPIVersion || hasKind
			signals.LooksLikeCompose = hasServices
		}
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "yaml",
		Structures: &KeyValueStructures{Top: top},
		Signals:    signals,
	}, nil
}

// topKeys returns the document's keys, sorted for determinism, capped.
func topKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxKeys {
		keys = keys[:maxKeys]
	}
	return keys
}

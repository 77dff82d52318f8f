package configextractor

import (
	"encoding/json"
	"path/filepath"

	"srcfacts/internal/facts"
)

// JSONExtractor scans .json files.
type JSONExtractor struct{}

// NewJSON creates a JSONExtractor.
func NewJSON() *JSONExtractor {
	return &JSONExtractor{}
}

func (e *JSONExtractor) Language() string { return "json" }

func (e *JSONExtractor) Handles() []string { return []string{".json"} }

// JSONSignals records the top-level keys and package.json detection.
type JSONSignals struct {
	Keys          []string `json:"keys,omitempty"`
	IsPackageJSON bool     `json:"is_package_json"`
}

func (s *JSONSignals) ImportList() []string      { return nil }
func (s *JSONSignals) IsEntryPoint() bool        { return false }
func (s *JSONSignals) UsageCategories() []string { return nil }

// Extract decodes the document best-effort; undecodable input yields an
// empty fact rather than an error.
func (e *JSONExtractor) Extract(path string, src []byte) (facts.FileFact, error) {
	var data any
	top := "none"
	signals := &JSONSignals{}

	if err := json.Unmarshal(src, &data); err == nil && data != nil {
		top = "value"
		if m, ok := data.(map[string]any); ok {
			top = "object"
			signals.Keys = topKeys(m)
			_, hasName := m["name"]
			_, hasDeps := m["dependencies"]
			_, hasScripts := m["scripts"]
			signals.IsPackageJSON = hasName && (hasDeps || hasScripts)
		}
	}

	return facts.FileFact{
		Path:       path,
		Filename:   filepath.Base(path),
		Language:   "json",
		Structures: &KeyValueStructures{Top: top},
		Signals:    signals,
	}, nil
}

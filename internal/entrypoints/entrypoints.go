// Package entrypoints detects how a project is started: runnable files
// found by name and content heuristics, plus run commands parsed from
// build and packaging files. It is a sibling pipeline to the analyzer and
// shares its fact model.
package entrypoints

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"srcfacts/internal/config"
	"srcfacts/internal/facts"
)

// Conventional entry filenames, matched against basenames anywhere in
// the tree.
var commonEntryNames = map[string]bool{
	"main.py":          true,
	"app.py":           true,
	"server.py":        true,
	"run.py":           true,
	"__main__.py":      true,
	"index.js":         true,
	"app.js":           true,
	"server.js":        true,
	"main.js":          true,
	"main.go":          true,
	"Main.java":        true,
	"Application.java": true,
	"main.rs":          true,
}

var mainGuardRe = regexp.MustCompile(`if\s+__name__\s*==\s*['"]__main__['"]`)

// Detector scans one project tree for entry points.
type Detector struct {
	cfg *config.Config
}

// NewDetector creates a Detector using the config's ignore list.
func NewDetector(cfg *config.Config) *Detector {
	return &Detector{cfg: cfg}
}

// Detect walks the tree under root and returns the full run configuration.
func (d *Detector) Detect(root string) (*RunConfig, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", facts.ErrInvalidRoot, root)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", facts.ErrInvalidRoot, root)
	}

	rc := &RunConfig{
		EntryPoints:     d.findEntryPoints(absRoot),
		MakefileTargets: parseMakefile(absRoot),
		PackageScripts:  parsePackageJSON(absRoot),
		DockerfileCmds:  parseDockerfile(absRoot),
	}
	d.inferRuntimeDeps(absRoot, rc)
	return rc, nil
}

// findEntryPoints collects name-pattern and main-guard candidates, then
// deduplicates them per path.
func (d *Detector) findEntryPoints(root string) []facts.EntryPoint {
	var candidates []facts.EntryPoint

	filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if entry.IsDir() {
			if path != root && d.cfg.IsIgnoredDir(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = entry.Name()
		}
		if !likelyEntryPoint(rel) {
			return nil
		}

		if commonEntryNames[entry.Name()] {
			candidates = append(candidates, facts.EntryPoint{
				FilePath:   rel,
				EntryType:  guessEntryType(entry.Name()),
				Command:    guessCommand(rel),
				Confidence: 0.7,
			})
		}

		// Python main guard is a stronger signal than the filename.
		if strings.HasSuffix(entry.Name(), ".py") {
			src, err := os.ReadFile(path)
			if err == nil && mainGuardRe.Match(src) {
				candidates = append(candidates, facts.EntryPoint{
					FilePath:   rel,
					EntryType:  facts.EntryMain,
					Command:    "python " + rel,
					Confidence: 0.8,
				})
			}
		}
		return nil
	})

	return dedupe(candidates)
}

// dedupe merges candidates per file path, keeping the higher-confidence
// one; on a tie the main-typed candidate wins. The result is sorted by
// path.
func dedupe(candidates []facts.EntryPoint) []facts.EntryPoint {
	byPath := make(map[string]facts.EntryPoint)
	for _, c := range candidates {
		prev, ok := byPath[c.FilePath]
		if !ok {
			byPath[c.FilePath] = c
			continue
		}
		if c.Confidence > prev.Confidence {
			byPath[c.FilePath] = c
		} else if c.Confidence == prev.Confidence && c.EntryType == facts.EntryMain {
			byPath[c.FilePath] = c
		}
	}

	merged := make([]facts.EntryPoint, 0, len(byPath))
	for _, ep := range byPath {
		merged = append(merged, ep)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].FilePath < merged[j].FilePath })
	return merged
}

// likelyEntryPoint filters out tests, examples, and tool caches. It takes
// the path relative to the project root so unrelated parent directory
// names never match.
func likelyEntryPoint(rel string) bool {
	lower := strings.ToLower(rel)
	for _, skip := range []string{"test", "example", "demo", "__pycache__"} {
		if strings.Contains(lower, skip) {
			return false
		}
	}
	return true
}

func guessEntryType(name string) string {
	stem := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	switch {
	case strings.Contains(stem, "server") || strings.Contains(stem, "app"):
		return facts.EntryServer
	case strings.Contains(stem, "cli") || strings.Contains(stem, "cmd"):
		return facts.EntryCLI
	case strings.Contains(stem, "main"):
		return facts.EntryMain
	default:
		return facts.EntryScript
	}
}

func guessCommand(rel string) string {
	switch filepath.Ext(rel) {
	case ".py":
		return "python " + rel
	case ".js":
		return "node " + rel
	case ".go":
		return "go run " + rel
	case ".java":
		stem := strings.TrimSuffix(filepath.Base(rel), ".java")
		return "java " + stem
	}
	return ""
}

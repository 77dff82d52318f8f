// Package analyzer aggregates per-file facts into a directory-level
// ModuleSummary: it walks a folder, dispatches files through the extractor
// registry, clusters the results by role, and derives the directory's
// primary role, core files, capabilities, and external dependencies.
package analyzer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"srcfacts/internal/config"
	"srcfacts/internal/extractors"
	"srcfacts/internal/facts"
)

// Core-file selection order. Roles outside this list never contribute
// core files.
var rolePriority = []facts.Role{
	facts.RoleEntryPoint,
	facts.RoleService,
	facts.RoleCLI,
	facts.RoleLibrary,
}

// Canonical role order used to make score ties deterministic.
var roleOrder = []facts.Role{
	facts.RoleEntryPoint,
	facts.RoleService,
	facts.RoleCLI,
	facts.RoleLibrary,
	facts.RoleUtility,
	facts.RoleTest,
	facts.RoleConfig,
	facts.RoleBuild,
	facts.RoleDocumentation,
	facts.RoleUnknown,
}

// Analyzer analyzes one folder. Recursion uses a fresh Analyzer per
// subdirectory; no state is shared across file extractions.
type Analyzer struct {
	cfg   *config.Config
	reg   *extractors.Registry
	store *facts.Store

	collected []facts.FileFact
	subs      []*facts.ModuleSummary
}

// New creates an Analyzer using the given config and registry.
func New(cfg *config.Config, reg *extractors.Registry) *Analyzer {
	return &Analyzer{
		cfg:   cfg,
		reg:   reg,
		store: facts.NewStore(),
	}
}

// Store returns the fact store filled during Analyze, including facts from
// recursed subdirectories.
func (a *Analyzer) Store() *facts.Store {
	return a.store
}

// Analyze scans the folder and builds its ModuleSummary. The summary is a
// snapshot: it is not mutated after this returns. Per-file failures are
// logged and skipped; only an invalid root is an error.
func (a *Analyzer) Analyze(root string) (*facts.ModuleSummary, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", facts.ErrInvalidRoot, root)
	}
	info, err := os.Stat(absRoot)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", facts.ErrInvalidRoot, root)
	}

	if err := a.scan(absRoot); err != nil {
		return nil, err
	}

	clusters := clusterByRole(a.collected)
	caps := a.capabilities()
	log.Printf("[analyzer] %s: %d files across %d languages, %d classes, %d functions",
		filepath.Base(absRoot), len(a.collected), len(caps.languages), caps.classes, caps.functions)

	summary := &facts.ModuleSummary{
		Path:         absRoot,
		Name:         filepath.Base(absRoot),
		Files:        a.filePaths(),
		CoreFiles:    a.coreFiles(clusters),
		PrimaryRole:  a.primaryRole(clusters),
		Capabilities: caps.tags(),
		ExternalDeps: a.externalDeps(),
		Confidence:   meanConfidence(a.collected),
		Subfolders:   a.subs,
	}
	return summary, nil
}

// scan processes the folder's immediate children: supported files go
// through the registry, subdirectories recurse into fresh analyzers.
func (a *Analyzer) scan(root string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("%w: %s", facts.ErrInvalidRoot, root)
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(root, name)

		if entry.IsDir() {
			if a.cfg.IsIgnoredDir(name) || !a.cfg.Recursive {
				continue
			}
			sub := New(a.cfg, a.reg)
			subSummary, err := sub.Analyze(path)
			if err != nil {
				log.Printf("[analyzer] warning: failed to analyze subfolder %s: %v", name, err)
				continue
			}
			// Child facts feed the run-wide store, but the child's file
			// list stays on its own summary.
			a.store.Add(sub.store.All()...)
			a.subs = append(a.subs, subSummary)
			continue
		}

		if !a.reg.Supports(path) {
			continue
		}
		fact, err := a.reg.Analyze(path)
		if err != nil {
			log.Printf("[analyzer] warning: skipping %s: %v", name, err)
			continue
		}
		a.collected = append(a.collected, fact)
		a.store.Add(fact)
	}
	return nil
}

func (a *Analyzer) filePaths() []string {
	paths := make([]string, 0, len(a.collected))
	for i := range a.collected {
		paths = append(paths, a.collected[i].Path)
	}
	return paths
}

// clusterByRole groups facts by their first role.
func clusterByRole(ff []facts.FileFact) map[facts.Role][]facts.FileFact {
	clusters := make(map[facts.Role][]facts.FileFact)
	for _, f := range ff {
		clusters[f.PrimaryRole()] = append(clusters[f.PrimaryRole()], f)
	}
	return clusters
}

// coreFiles selects up to Limits.CoreFiles filenames by role priority,
// taking the highest-confidence files within each role. Ties sort by
// filename so the result is stable regardless of scan order.
func (a *Analyzer) coreFiles(clusters map[facts.Role][]facts.FileFact) []string {
	var core []string
	for _, role := range rolePriority {
		cluster := clusters[role]
		if len(cluster) == 0 {
			continue
		}
		sorted := make([]facts.FileFact, len(cluster))
		copy(sorted, cluster)
		sort.SliceStable(sorted, func(i, j int) bool {
			if sorted[i].Confidence != sorted[j].Confidence {
				return sorted[i].Confidence > sorted[j].Confidence
			}
			return sorted[i].Filename < sorted[j].Filename
		})
		for i := 0; i < len(sorted) && i < a.cfg.Limits.CoreFilesPerRole; i++ {
			core = append(core, sorted[i].Filename)
		}
	}
	if len(core) > a.cfg.Limits.CoreFiles {
		core = core[:a.cfg.Limits.CoreFiles]
	}
	return core
}

// primaryRole scores every cluster as size x role weight x mean confidence
// and returns the best one. An empty folder has no primary role.
func (a *Analyzer) primaryRole(clusters map[facts.Role][]facts.FileFact) facts.Role {
	best := facts.Role("")
	bestScore := -1.0

	for _, role := range roleOrder {
		cluster := clusters[role]
		if len(cluster) == 0 {
			continue
		}
		score := float64(len(cluster)) * float64(a.cfg.RoleWeight(role)) * meanConfidence(cluster)
		if score > bestScore {
			best = role
			bestScore = score
		}
	}

	if best == facts.RoleUnknown {
		return ""
	}
	return best
}

func meanConfidence(ff []facts.FileFact) float64 {
	if len(ff) == 0 {
		return 0
	}
	total := 0.0
	for i := range ff {
		total += ff[i].Confidence
	}
	return total / float64(len(ff))
}

// capabilitySet accumulates directory-wide capability evidence.
type capabilitySet struct {
	languages  map[string]int
	hasNetwork bool
	hasIO      bool
	hasTests   bool
	frameworks map[string]bool
	classes    int
	functions  int
}

func (a *Analyzer) capabilities() *capabilitySet {
	caps := &capabilitySet{
		languages:  make(map[string]int),
		frameworks: make(map[string]bool),
	}

	for i := range a.collected {
		f := &a.collected[i]
		caps.languages[f.Language]++

		if f.Signals != nil {
			for _, c := range f.Signals.UsageCategories() {
				switch c {
				case facts.UsageNetwork:
					caps.hasNetwork = true
				case facts.UsageIO:
					caps.hasIO = true
				}
			}
			if ft, ok := f.Signals.(facts.FrameworkTagger); ok {
				for _, tag := range ft.FrameworkTags() {
					caps.frameworks[tag] = true
				}
			}
		}

		if f.HasRole(facts.RoleTest) {
			caps.hasTests = true
		}

		if f.Structures != nil {
			classes, functions := f.Structures.DeclCounts()
			caps.classes += classes
			caps.functions += functions
		}
	}
	return caps
}

// tags flattens the capability set into the summary's tag list.
func (c *capabilitySet) tags() []string {
	var tags []string
	for fw := range c.frameworks {
		tags = append(tags, fw)
	}
	if c.hasNetwork {
		tags = append(tags, "network")
	}
	if c.hasIO {
		tags = append(tags, "io")
	}
	if c.hasTests {
		tags = append(tags, "tests")
	}
	sort.Strings(tags)
	return tags
}

// externalDeps unions the import roots of all files, drops relative imports
// and standard-library names, and returns a sorted, capped list.
func (a *Analyzer) externalDeps() []string {
	seen := make(map[string]bool)
	for i := range a.collected {
		if a.collected[i].Signals == nil {
			continue
		}
		for _, imp := range a.collected[i].Signals.ImportList() {
			if imp == "" || strings.HasPrefix(imp, ".") {
				continue
			}
			if containsString(a.cfg.StdlibExcludes, imp) {
				continue
			}
			seen[imp] = true
		}
	}

	deps := make([]string, 0, len(seen))
	for d := range seen {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	if len(deps) > a.cfg.Limits.ExternalDeps {
		deps = deps[:a.cfg.Limits.ExternalDeps]
	}
	return deps
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

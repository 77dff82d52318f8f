package extractors

import (
	"strings"

	"srcfacts/internal/config"
	"srcfacts/internal/facts"
)

// Ruleset is the shared role and confidence inference applied to every
// extractor's output. Rules are evaluated in a fixed order and are
// non-exclusive; a file that matches nothing falls back to the unknown
// role. Confidence is additive and clamped, never decreased.
type Ruleset struct {
	testPatterns    []string
	configFilenames []string
	cliImports      []string
	weights         config.ConfidenceWeights
}

// NewRuleset builds a Ruleset from the config's pattern lists and weights.
func NewRuleset(cfg *config.Config) *Ruleset {
	return &Ruleset{
		testPatterns:    cfg.TestPatterns,
		configFilenames: cfg.ConfigFilenames,
		cliImports:      cfg.CLIImports,
		weights:         cfg.Confidence,
	}
}

// Apply fills in roles, confidence, and rule evidence on the fact.
func (r *Ruleset) Apply(f *facts.FileFact) {
	f.Roles = r.inferRoles(f)
	f.Confidence = r.score(f)
}

func (r *Ruleset) inferRoles(f *facts.FileFact) []facts.Role {
	var roles []facts.Role
	lower := strings.ToLower(f.Filename)

	for _, pat := range r.testPatterns {
		if strings.Contains(lower, pat) {
			roles = append(roles, facts.RoleTest)
			f.Evidence = append(f.Evidence, facts.Evidence{
				Location: f.Path, Snippet: pat, SignalType: "filename_pattern", Weight: 1.0,
			})
			break
		}
	}

	for _, name := range r.configFilenames {
		if lower == name {
			roles = append(roles, facts.RoleConfig)
			f.Evidence = append(f.Evidence, facts.Evidence{
				Location: f.Path, Snippet: name, SignalType: "config_filename", Weight: 1.0,
			})
			break
		}
	}

	entry := f.Signals != nil && f.Signals.IsEntryPoint()
	if !entry {
		if fn, ok := f.Structures.(facts.FunctionNamer); ok {
			for _, name := range fn.FunctionNames() {
				if name == "main" {
					entry = true
					break
				}
			}
		}
	}
	if entry {
		roles = append(roles, facts.RoleEntryPoint)
		f.Evidence = append(f.Evidence, facts.Evidence{
			Location: f.Path, Snippet: "main", SignalType: "entry_point", Weight: 1.0,
		})
	}

	if !entry && f.Signals != nil && hasCategory(f.Signals, facts.UsageNetwork) {
		roles = append(roles, facts.RoleService)
		f.Evidence = append(f.Evidence, facts.Evidence{
			Location: f.Path, Snippet: facts.UsageNetwork, SignalType: "network_call", Weight: 1.0,
		})
	}

	if f.Signals != nil {
		for _, imp := range f.Signals.ImportList() {
			if containsString(r.cliImports, imp) {
				roles = append(roles, facts.RoleCLI)
				f.Evidence = append(f.Evidence, facts.Evidence{
					Location: f.Path, Snippet: imp, SignalType: "cli_import", Weight: 1.0,
				})
				break
			}
		}
	}

	if len(roles) == 0 {
		roles = append(roles, facts.RoleUnknown)
	}
	return roles
}

func (r *Ruleset) score(f *facts.FileFact) float64 {
	c := r.weights.Base
	if f.Structures != nil {
		classes, functions := f.Structures.DeclCounts()
		if classes > 0 {
			c += r.weights.Classes
		}
		if functions > 0 {
			c += r.weights.Functions
		}
	}
	if f.Signals != nil {
		if len(f.Signals.ImportList()) > 0 {
			c += r.weights.Imports
		}
		if f.Signals.IsEntryPoint() {
			c += r.weights.EntryPoint
		}
	}
	if c > r.weights.Max {
		c = r.weights.Max
	}
	return c
}

func hasCategory(sg facts.Signals, category string) bool {
	for _, c := range sg.UsageCategories() {
		if c == category {
			return true
		}
	}
	return false
}

func containsString(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

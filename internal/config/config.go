package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"srcfacts/internal/facts"
)

// Config represents the srcfacts.yaml configuration. The heuristic tuning
// values (pattern lists, weights, caps) ship with defaults matching the
// historical behavior; overriding them changes scoring, not its shape.
type Config struct {
	Recursive       bool              `yaml:"recursive"`
	IgnoreDirs      []string          `yaml:"ignore_dirs"`
	StdlibExcludes  []string          `yaml:"stdlib_excludes"`
	TestPatterns    []string          `yaml:"test_patterns"`
	ConfigFilenames []string          `yaml:"config_filenames"`
	CLIImports      []string          `yaml:"cli_imports"`
	Categories      CategoryPrefixes  `yaml:"categories"`
	Confidence      ConfidenceWeights `yaml:"confidence"`
	RoleWeights     map[string]int    `yaml:"role_weights"`
	Limits          Limits            `yaml:"limits"`
	Output          OutputConfig      `yaml:"output"`
}

// CategoryPrefixes classifies call origins into external-usage categories
// by prefix match, and lists call roots excluded as noise.
type CategoryPrefixes struct {
	Network       []string `yaml:"network"`
	Database      []string `yaml:"database"`
	Subprocess    []string `yaml:"subprocess"`
	IORoots       []string `yaml:"io_roots"`
	CallBlacklist []string `yaml:"call_blacklist"`
	LoggingRoots  []string `yaml:"logging_roots"`
}

// ConfidenceWeights are the additive per-signal confidence increments.
type ConfidenceWeights struct {
	Base       float64 `yaml:"base"`
	Classes    float64 `yaml:"classes"`
	Functions  float64 `yaml:"functions"`
	Imports    float64 `yaml:"imports"`
	EntryPoint float64 `yaml:"entry_point"`
	Max        float64 `yaml:"max"`
}

// Limits caps the bounded output lists so downstream prompt payloads stay finite.
type Limits struct {
	CoreFiles        int `yaml:"core_files"`
	CoreFilesPerRole int `yaml:"core_files_per_role"`
	ExternalDeps     int `yaml:"external_deps"`
	CallSamples      int `yaml:"call_samples"`
	DocChars         int `yaml:"doc_chars"`
}

// OutputConfig controls where artifacts are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// Default returns a Config with the shipped heuristic constants.
func Default() *Config {
	return &Config{
		Recursive: true,
		IgnoreDirs: []string{
			"__pycache__", ".git", "node_modules", ".venv", "venv", "dist", "build",
		},
		StdlibExcludes: []string{
			"__future__", "sys", "os", "json", "re", "time", "datetime",
			"collections", "typing", "pathlib", "subprocess",
		},
		TestPatterns:    []string{"test_", "_test", "spec_"},
		ConfigFilenames: []string{"config.py", "settings.py", "config.json", "config.yml", "config.yaml"},
		CLIImports:      []string{"argparse", "click", "typer"},
		Categories: CategoryPrefixes{
			Network:       []string{"requests", "urllib", "http", "aiohttp", "socket", "httpx"},
			Database:      []string{"sqlalchemy", "psycopg2", "pymongo", "django.db", "sqlite3"},
			Subprocess:    []string{"subprocess"},
			IORoots:       []string{"open"},
			CallBlacklist: []string{"print", "repr", "str", "len", "format", "pprint"},
			LoggingRoots:  []string{"logging", "loguru"},
		},
		Confidence: ConfidenceWeights{
			Base:       0.5,
			Classes:    0.1,
			Functions:  0.1,
			Imports:    0.1,
			EntryPoint: 0.2,
			Max:        1.0,
		},
		RoleWeights: map[string]int{
			string(facts.RoleEntryPoint):    10,
			string(facts.RoleService):       8,
			string(facts.RoleCLI):           7,
			string(facts.RoleLibrary):       5,
			string(facts.RoleUtility):       4,
			string(facts.RoleTest):          3,
			string(facts.RoleConfig):        2,
			string(facts.RoleBuild):         2,
			string(facts.RoleDocumentation): 1,
			string(facts.RoleUnknown):       0,
		},
		Limits: Limits{
			CoreFiles:        5,
			CoreFilesPerRole: 3,
			ExternalDeps:     20,
			CallSamples:      20,
			DocChars:         160,
		},
		Output: OutputConfig{
			Dir: ".srcfacts",
		},
	}
}

// Load reads a configuration file from the given path.
// Missing fields are filled with defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Ensure required defaults
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = ".srcfacts"
	}
	if cfg.Limits.CoreFiles == 0 {
		cfg.Limits.CoreFiles = 5
	}
	if cfg.Limits.ExternalDeps == 0 {
		cfg.Limits.ExternalDeps = 20
	}
	if cfg.Limits.CallSamples == 0 {
		cfg.Limits.CallSamples = 20
	}
	if cfg.Limits.DocChars == 0 {
		cfg.Limits.DocChars = 160
	}

	return cfg, nil
}

// RoleWeight returns the aggregation weight for a role, defaulting to 1
// for roles absent from the table.
func (c *Config) RoleWeight(r facts.Role) int {
	if w, ok := c.RoleWeights[string(r)]; ok {
		return w
	}
	return 1
}

// IsIgnoredDir reports whether a directory name is on the ignore list.
func (c *Config) IsIgnoredDir(name string) bool {
	for _, d := range c.IgnoreDirs {
		if d == name {
			return true
		}
	}
	return false
}

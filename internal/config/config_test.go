package config

import (
	"os"
	"path/filepath"
	"testing"

	"srcfacts/internal/facts"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if !cfg.Recursive {
		t.Error("Recursive = false")
	}
	if cfg.Limits.CoreFiles != 5 || cfg.Limits.ExternalDeps != 20 {
		t.Errorf("limits = %+v", cfg.Limits)
	}
	if cfg.Confidence.Base != 0.5 || cfg.Confidence.Max != 1.0 {
		t.Errorf("confidence = %+v", cfg.Confidence)
	}
	if cfg.RoleWeight(facts.RoleEntryPoint) != 10 {
		t.Errorf("entry_point weight = %d", cfg.RoleWeight(facts.RoleEntryPoint))
	}
	if cfg.RoleWeight(facts.RoleUnknown) != 0 {
		t.Errorf("unknown weight = %d", cfg.RoleWeight(facts.RoleUnknown))
	}
}

func TestRoleWeightFallback(t *testing.T) {
	cfg := Default()
	cfg.RoleWeights = map[string]int{}
	if cfg.RoleWeight(facts.RoleService) != 1 {
		t.Errorf("fallback weight = %d, want 1", cfg.RoleWeight(facts.RoleService))
	}
}

func TestIsIgnoredDir(t *testing.T) {
	cfg := Default()
	for _, name := range []string{"__pycache__", ".git", "node_modules", ".venv"} {
		if !cfg.IsIgnoredDir(name) {
			t.Errorf("IsIgnoredDir(%s) = false", name)
		}
	}
	if cfg.IsIgnoredDir("src") {
		t.Error("IsIgnoredDir(src) = true")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "srcfacts.yaml")
	content := `recursive: false
limits:
  core_files: 2
confidence:
  base: 0.4
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Recursive {
		t.Error("Recursive not overridden")
	}
	if cfg.Limits.CoreFiles != 2 {
		t.Errorf("CoreFiles = %d, want 2", cfg.Limits.CoreFiles)
	}
	if cfg.Confidence.Base != 0.4 {
		t.Errorf("Base = %v, want 0.4", cfg.Confidence.Base)
	}
	// Untouched fields keep their defaults.
	if cfg.Limits.ExternalDeps != 20 {
		t.Errorf("ExternalDeps = %d, want default 20", cfg.Limits.ExternalDeps)
	}
	if len(cfg.Categories.Network) == 0 {
		t.Error("Network prefixes lost on load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing config")
	}
}

package extractors

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"srcfacts/internal/config"
	"srcfacts/internal/facts"
)

func defaultRegistry() *Registry {
	return Default(config.Default())
}

func TestRegistryMatching(t *testing.T) {
	reg := defaultRegistry()

	cases := []struct {
		path     string
		language string
	}{
		{"pkg/app.py", "python"},
		{"pkg/APP.PY", "python"},
		{"notebook.ipynb", "notebook"},
		{"web/index.js", "javascript"},
		{"web/index.tsx", "typescript"},
		{"src/Main.java", "java"},
		{"README.md", "markdown"},
		{"site/index.html", "html"},
		{"deploy/app.yaml", "yaml"},
		{"package.json", "json"},
		{"Dockerfile", "dockerfile"},
		{"Makefile", "makefile"},
	}

	for _, tc := range cases {
		ext, err := reg.Lookup(tc.path)
		if err != nil {
			t.Errorf("Lookup(%s): %v", tc.path, err)
			continue
		}
		if ext.Language() != tc.language {
			t.Errorf("Lookup(%s) = %s, want %s", tc.path, ext.Language(), tc.language)
		}
	}
}

func TestRegistryUnsupported(t *testing.T) {
	reg := defaultRegistry()

	_, err := reg.Lookup("binary.exe")
	if !errors.Is(err, facts.ErrUnsupportedFileType) {
		t.Fatalf("err = %v, want ErrUnsupportedFileType", err)
	}
	if reg.Supports("binary.exe") {
		t.Error("Supports(binary.exe) = true")
	}
}

func TestRegistryBasenameIsExact(t *testing.T) {
	reg := defaultRegistry()
	if reg.Supports("Dockerfile.bak") {
		t.Error("Dockerfile.bak must not match the Dockerfile extractor")
	}
}

func TestAnalyzeAppliesInference(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.py")
	src := `import os

def main():
    pass

if __name__ == "__main__":
    main()
`
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	fact, err := defaultRegistry().Analyze(path)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if fact.PrimaryRole() != facts.RoleEntryPoint {
		t.Errorf("primary role = %s, want entry_point", fact.PrimaryRole())
	}
	if fact.Confidence < 0.8 {
		t.Errorf("confidence = %v, want >= 0.8", fact.Confidence)
	}
	if fact.Language != "python" {
		t.Errorf("language = %s", fact.Language)
	}
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := defaultRegistry().Analyze(filepath.Join(t.TempDir(), "absent.py"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

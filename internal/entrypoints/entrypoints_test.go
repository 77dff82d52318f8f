package entrypoints

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"srcfacts/internal/config"
	"srcfacts/internal/facts"
)

// --- helpers ---

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func detect(t *testing.T, files map[string]string) *RunConfig {
	t.Helper()
	det := NewDetector(config.Default())
	rc, err := det.Detect(writeTree(t, files))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	return rc
}

func findEntry(eps []facts.EntryPoint, path string) (facts.EntryPoint, bool) {
	for _, ep := range eps {
		if ep.FilePath == path {
			return ep, true
		}
	}
	return facts.EntryPoint{}, false
}

// --- dedup ---

func TestDedupKeepsHigherConfidence(t *testing.T) {
	candidates := []facts.EntryPoint{
		{FilePath: "main.py", EntryType: facts.EntryMain, Confidence: 0.7},
		{FilePath: "main.py", EntryType: facts.EntryMain, Confidence: 0.8},
	}
	merged := dedupe(candidates)
	if len(merged) != 1 {
		t.Fatalf("merged = %v, want one entry", merged)
	}
	if merged[0].Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", merged[0].Confidence)
	}
}

func TestDedupTiePrefersMain(t *testing.T) {
	candidates := []facts.EntryPoint{
		{FilePath: "app.py", EntryType: facts.EntryServer, Confidence: 0.7},
		{FilePath: "app.py", EntryType: facts.EntryMain, Confidence: 0.7},
	}
	merged := dedupe(candidates)
	if len(merged) != 1 || merged[0].EntryType != facts.EntryMain {
		t.Errorf("merged = %v, want single main entry", merged)
	}
}

// --- detection ---

func TestNamePatternAndGuardMerge(t *testing.T) {
	rc := detect(t, map[string]string{
		"main.py": "if __name__ == \"__main__\":\n    pass\n",
	})

	ep, ok := findEntry(rc.EntryPoints, "main.py")
	if !ok {
		t.Fatalf("entry_points = %v, want main.py", rc.EntryPoints)
	}
	// Name pattern yields 0.7; the guard scan upgrades it to 0.8.
	if ep.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", ep.Confidence)
	}
	if ep.EntryType != facts.EntryMain {
		t.Errorf("entry_type = %s, want main", ep.EntryType)
	}
	if ep.Command != "python main.py" {
		t.Errorf("command = %q", ep.Command)
	}
}

func TestEntryTypeGuesses(t *testing.T) {
	rc := detect(t, map[string]string{
		"server.py": "print(1)\n",
		"app.js":    "console.log(1)\n",
		"run.py":    "print(1)\n",
	})

	cases := map[string]string{
		"server.py": facts.EntryServer,
		"app.js":    facts.EntryServer,
		"run.py":    facts.EntryScript,
	}
	for path, wantType := range cases {
		ep, ok := findEntry(rc.EntryPoints, path)
		if !ok {
			t.Errorf("missing entry for %s: %v", path, rc.EntryPoints)
			continue
		}
		if ep.EntryType != wantType {
			t.Errorf("%s entry_type = %s, want %s", path, ep.EntryType, wantType)
		}
		if ep.Confidence != 0.7 {
			t.Errorf("%s confidence = %v, want 0.7", path, ep.Confidence)
		}
	}
}

func TestTestFilesSkipped(t *testing.T) {
	rc := detect(t, map[string]string{
		"tests/main.py":   "if __name__ == \"__main__\":\n    pass\n",
		"examples/app.py": "print(1)\n",
		"demo/server.py":  "print(1)\n",
	})
	if len(rc.EntryPoints) != 0 {
		t.Errorf("entry_points = %v, want none", rc.EntryPoints)
	}
}

func TestIgnoredDirsSkipped(t *testing.T) {
	rc := detect(t, map[string]string{
		"node_modules/pkg/index.js": "console.log(1)\n",
		".venv/bin/app.py":          "print(1)\n",
	})
	if len(rc.EntryPoints) != 0 {
		t.Errorf("entry_points = %v, want none", rc.EntryPoints)
	}
}

func TestInvalidRoot(t *testing.T) {
	det := NewDetector(config.Default())
	_, err := det.Detect(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, facts.ErrInvalidRoot) {
		t.Fatalf("err = %v, want ErrInvalidRoot", err)
	}
}

// --- run configuration ---

func TestRunConfigSources(t *testing.T) {
	rc := detect(t, map[string]string{
		"Makefile":     "all: build\n\nbuild:\n\tgo build ./...\n",
		"package.json": `{"name": "x", "scripts": {"start": "node app.js"}}`,
		"Dockerfile":   "FROM alpine\nENTRYPOINT [\"/app\"]\n",
	})

	if len(rc.MakefileTargets) != 2 || rc.MakefileTargets[0] != "all" || rc.MakefileTargets[1] != "build" {
		t.Errorf("makefile_targets = %v", rc.MakefileTargets)
	}
	if rc.PackageScripts["start"] != "node app.js" {
		t.Errorf("package_scripts = %v", rc.PackageScripts)
	}
	if len(rc.DockerfileCmds) != 1 || rc.DockerfileCmds[0] != `ENTRYPOINT ["/app"]` {
		t.Errorf("dockerfile_cmds = %v", rc.DockerfileCmds)
	}
}

func TestRuntimeDepsFromCompose(t *testing.T) {
	compose := `services:
  db:
    image: postgres:16
  cache:
    image: redis:7
  broker:
    image: rabbitmq:3
`
	rc := detect(t, map[string]string{"docker-compose.yml": compose})

	if !rc.RequiresDB || !rc.RequiresCache || !rc.RequiresQueue {
		t.Errorf("runtime deps = db:%v cache:%v queue:%v, want all true",
			rc.RequiresDB, rc.RequiresCache, rc.RequiresQueue)
	}
}

func TestRuntimeDepsFromDirs(t *testing.T) {
	dir := writeTree(t, nil)
	if err := os.MkdirAll(filepath.Join(dir, "migrations"), 0o755); err != nil {
		t.Fatal(err)
	}

	det := NewDetector(config.Default())
	rc, err := det.Detect(dir)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if !rc.RequiresDB {
		t.Error("requires_db = false, want true")
	}
}

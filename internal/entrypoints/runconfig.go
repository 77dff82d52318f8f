package entrypoints

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"srcfacts/internal/facts"
)

// RunConfig describes how to run a project: detected entry points, run
// commands parsed from build files, and inferred runtime dependencies.
type RunConfig struct {
	EntryPoints     []facts.EntryPoint `json:"entry_points"`
	MakefileTargets []string           `json:"makefile_targets,omitempty"`
	PackageScripts  map[string]string  `json:"package_scripts,omitempty"`
	DockerfileCmds  []string           `json:"dockerfile_cmds,omitempty"`
	RequiresDB      bool               `json:"requires_db"`
	RequiresCache   bool               `json:"requires_cache"`
	RequiresQueue   bool               `json:"requires_queue"`
}

var makeTargetRe = regexp.MustCompile(`(?m)^([a-zA-Z0-9_\-]+)\s*:`)

func parseMakefile(root string) []string {
	src, err := os.ReadFile(filepath.Join(root, "Makefile"))
	if err != nil {
		return nil
	}
	var targets []string
	for _, m := range makeTargetRe.FindAllStringSubmatch(string(src), -1) {
		targets = append(targets, m[1])
	}
	return targets
}

func parsePackageJSON(root string) map[string]string {
	src, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return nil
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(src, &pkg); err != nil {
		return nil
	}
	return pkg.Scripts
}

func parseDockerfile(root string) []string {
	src, err := os.ReadFile(filepath.Join(root, "Dockerfile"))
	if err != nil {
		return nil
	}
	var cmds []string
	for _, line := range strings.Split(string(src), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "CMD ") || strings.HasPrefix(line, "ENTRYPOINT ") {
			cmds = append(cmds, line)
		}
	}
	return cmds
}

// Service images that imply a backing store, keyed by the flag they set.
var (
	dbImages    = []string{"postgres", "mysql", "mongodb", "mongo", "mariadb"}
	cacheImages = []string{"redis", "memcached"}
	queueImages = []string{"rabbitmq", "kafka", "nats"}
)

// inferRuntimeDeps sets the requires_* flags from filesystem hints and
// docker-compose service definitions.
func (d *Detector) inferRuntimeDeps(root string, rc *RunConfig) {
	for _, dir := range []string{"db", "database", "migrations"} {
		if dirExists(filepath.Join(root, dir)) {
			rc.RequiresDB = true
			break
		}
	}
	for _, dir := range []string{"cache", ".redis"} {
		if dirExists(filepath.Join(root, dir)) {
			rc.RequiresCache = true
			break
		}
	}

	for _, name := range []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"} {
		src, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		scanCompose(src, rc)
		break
	}
}

// scanCompose decodes a compose file and flags runtime dependencies by
// service name and image.
func scanCompose(src []byte, rc *RunConfig) {
	var doc struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return
	}

	for name, svc := range doc.Services {
		probe := strings.ToLower(name + " " + svc.Image)
		if containsAny(probe, dbImages) {
			rc.RequiresDB = true
		}
		if containsAny(probe, cacheImages) {
			rc.RequiresCache = true
		}
		if containsAny(probe, queueImages) {
			rc.RequiresQueue = true
		}
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

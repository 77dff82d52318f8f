package extractors

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"srcfacts/internal/config"
	"srcfacts/internal/extractors/buildextractor"
	"srcfacts/internal/extractors/configextractor"
	"srcfacts/internal/extractors/javaextractor"
	"srcfacts/internal/extractors/jsextractor"
	"srcfacts/internal/extractors/markupextractor"
	"srcfacts/internal/extractors/pyextractor"
	"srcfacts/internal/facts"
)

// Extractor parses a single source file and emits a FileFact.
// Handles entries are either lowercase extensions (".py") or exact
// basenames ("Dockerfile").
type Extractor interface {
	// Language returns the tag recorded on facts this extractor produces.
	Language() string
	// Handles returns the static list of extensions/basenames it accepts.
	Handles() []string
	// Extract parses the file contents and returns raw structures and
	// signals. Roles and confidence are filled in afterwards by the
	// shared inference step.
	Extract(path string, src []byte) (facts.FileFact, error)
}

// Matcher may be implemented by extractors that need a custom path
// predicate instead of the static handle list.
type Matcher interface {
	Match(path string) bool
}

type entry struct {
	match func(path string) bool
	ext   Extractor
}

// Registry maps file paths to extractors. It is a fixed table built at
// startup and passed to the aggregator; there is no runtime discovery.
type Registry struct {
	entries []entry
	rules   *Ruleset
}

// NewRegistry creates an empty registry using the given inference rules.
func NewRegistry(rules *Ruleset) *Registry {
	return &Registry{rules: rules}
}

// Default builds a registry with all built-in extractors registered and
// rules derived from the config.
func Default(cfg *config.Config) *Registry {
	r := NewRegistry(NewRuleset(cfg))
	r.Register(pyextractor.New(cfg))
	r.Register(pyextractor.NewNotebook())
	r.Register(jsextractor.NewJavaScript())
	r.Register(jsextractor.NewTypeScript())
	r.Register(javaextractor.New())
	r.Register(markupextractor.NewMarkdown())
	r.Register(markupextractor.NewHTML())
	r.Register(configextractor.NewYAML())
	r.Register(configextractor.NewJSON())
	r.Register(buildextractor.NewDockerfile())
	r.Register(buildextractor.NewMakefile())
	return r
}

// Register adds an extractor. Extractors implementing Matcher use their
// own predicate; otherwise one matcher per declared handle is installed.
// Registration order only decides which extractor wins when handle sets
// overlap.
func (r *Registry) Register(ext Extractor) {
	if m, ok := ext.(Matcher); ok {
		r.entries = append(r.entries, entry{match: m.Match, ext: ext})
		return
	}
	for _, h := range ext.Handles() {
		r.entries = append(r.entries, entry{match: makeMatch(h), ext: ext})
	}
}

// makeMatch builds a path predicate for a handle: extensions match
// case-insensitively, anything else matches the exact basename.
func makeMatch(handle string) func(string) bool {
	if strings.HasPrefix(handle, ".") {
		return func(path string) bool {
			return strings.EqualFold(filepath.Ext(path), handle)
		}
	}
	return func(path string) bool {
		return filepath.Base(path) == handle
	}
}

// Lookup returns the first extractor matching the path, or an error
// wrapping facts.ErrUnsupportedFileType.
func (r *Registry) Lookup(path string) (Extractor, error) {
	for _, e := range r.entries {
		if e.match(path) {
			return e.ext, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", facts.ErrUnsupportedFileType, path)
}

// Supports reports whether any registered extractor matches the path.
func (r *Registry) Supports(path string) bool {
	_, err := r.Lookup(path)
	return err == nil
}

// Analyze dispatches the file to its extractor and applies the shared
// role/confidence inference to the result.
func (r *Registry) Analyze(path string) (facts.FileFact, error) {
	ext, err := r.Lookup(path)
	if err != nil {
		return facts.FileFact{}, err
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return facts.FileFact{}, fmt.Errorf("reading %s: %w", path, err)
	}

	fact, err := ext.Extract(path, src)
	if err != nil {
		return facts.FileFact{}, err
	}
	r.rules.Apply(&fact)
	return fact, nil
}

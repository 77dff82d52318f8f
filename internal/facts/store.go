package facts

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store provides in-memory storage and querying of FileFacts collected
// during an analysis run, with JSONL export for downstream consumers.
type Store struct {
	mu    sync.RWMutex
	facts []FileFact

	// Indexes for fast lookups
	byRole     map[Role][]int   // primary role -> indices into facts
	byLanguage map[string][]int // language tag -> indices into facts
	byPath     map[string]int   // path -> index into facts
}

// NewStore creates an empty fact store.
func NewStore() *Store {
	return &Store{
		byRole:     make(map[Role][]int),
		byLanguage: make(map[string][]int),
		byPath:     make(map[string]int),
	}
}

// Add adds facts to the store.
func (s *Store) Add(ff ...FileFact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range ff {
		idx := len(s.facts)
		s.facts = append(s.facts, f)
		role := f.PrimaryRole()
		s.byRole[role] = append(s.byRole[role], idx)
		s.byLanguage[f.Language] = append(s.byLanguage[f.Language], idx)
		if f.Path != "" {
			s.byPath[f.Path] = idx
		}
	}
}

// All returns all facts in the store.
func (s *Store) All() []FileFact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]FileFact, len(s.facts))
	copy(result, s.facts)
	return result
}

// Count returns the number of facts in the store.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.facts)
}

// ByRole returns all facts whose primary role matches.
func (s *Store) ByRole(role Role) []FileFact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectByIndex(s.byRole[role])
}

// ByLanguage returns all facts produced by the named extractor.
func (s *Store) ByLanguage(language string) []FileFact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collectByIndex(s.byLanguage[language])
}

// ByPath returns the fact for the given path, if present.
func (s *Store) ByPath(path string) (FileFact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byPath[path]
	if !ok {
		return FileFact{}, false
	}
	return s.facts[idx], true
}

// Query returns facts matching all provided filter criteria.
// Empty filter values are ignored (match all). The name filter is a
// case-insensitive substring match on the filename.
func (s *Store) Query(role Role, language, name string) []FileFact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []FileFact
	for i := range s.facts {
		f := &s.facts[i]
		if role != "" && !f.HasRole(role) {
			continue
		}
		if language != "" && f.Language != language {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(f.Filename), strings.ToLower(name)) {
			continue
		}
		result = append(result, *f)
	}
	return result
}

// Clear removes all facts and resets the indexes.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.facts = nil
	s.byRole = make(map[Role][]int)
	s.byLanguage = make(map[string][]int)
	s.byPath = make(map[string]int)
}

// WriteJSONL writes all facts as newline-delimited JSON.
func (s *Store) WriteJSONL(w io.Writer) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range s.facts {
		if err := enc.Encode(&s.facts[i]); err != nil {
			return fmt.Errorf("encoding fact %s: %w", s.facts[i].Path, err)
		}
	}
	return bw.Flush()
}

// WriteJSONLFile writes all facts to a JSONL file, creating the parent
// directory if needed.
func (s *Store) WriteJSONLFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := s.WriteJSONL(f); err != nil {
		return err
	}
	return f.Close()
}

func (s *Store) collectByIndex(indices []int) []FileFact {
	result := make([]FileFact, 0, len(indices))
	for _, idx := range indices {
		result = append(result, s.facts[idx])
	}
	return result
}

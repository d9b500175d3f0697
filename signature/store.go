package signature

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Store - The loaded signature database. Loaded once at process startup and
// read-only afterwards, so it can be shared freely across concurrent analyses.
type Store struct {
	triggers       []*TriggerSignature
	dangerPatterns []*DangerPattern
	metadata       []*MetadataSignature
	categories     map[string]Category
}

// NewStore - Loads signatures from the given directory (*.json, *.yaml, *.yml)
// and categories from the categories file. Missing files fall back to the
// embedded defaults; a file that fails to parse is logged and skipped.
func NewStore(signaturesDir string, categoriesFile string) (*Store, error) {
	s := &Store{}

	s.categories = loadCategories(categoriesFile)

	entries, err := os.ReadDir(signaturesDir)
	if err != nil {
		log.Printf("[signatures] Cannot read %s (%s) - using embedded default signatures", signaturesDir, err)
		s.loadDefaults()
		return s, nil
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(signaturesDir, entry.Name())
		b, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[signatures] Error reading %s: %s", path, err)
			continue
		}
		raws, err := decodeSignatureFile(entry.Name(), b)
		if err != nil {
			log.Printf("[signatures] Error decoding %s: %s", path, err)
			continue
		}
		for i := range raws {
			raws[i].resolve(s)
		}
	}

	if s.Empty() {
		log.Printf("[signatures] No signatures loaded from %s - using embedded defaults", signaturesDir)
		s.loadDefaults()
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	log.Printf("[signatures] Loaded %d trigger, %d danger-pattern, %d metadata signatures, %d categories",
		len(s.triggers), len(s.dangerPatterns), len(s.metadata), len(s.categories))
	return s, nil
}

// NewDefaultStore - A store containing only the embedded defaults. Used in tests
// and when running without a signature directory.
func NewDefaultStore() *Store {
	s := &Store{categories: defaultCategories()}
	s.loadDefaults()
	return s
}

func (s *Store) loadDefaults() {
	for i := range defaultSignatures {
		defaultSignatures[i].resolve(s)
	}
	if len(s.categories) == 0 {
		s.categories = defaultCategories()
	}
}

func (s *Store) validate() error {
	seen := make(map[string]bool, len(s.triggers))
	for _, sig := range s.triggers {
		if sig.Id == "" {
			continue
		}
		if seen[sig.Id] {
			return errors.New("duplicate trigger signature id: " + sig.Id)
		}
		seen[sig.Id] = true
	}
	return nil
}

func (s *Store) Empty() bool {
	return len(s.triggers) == 0 && len(s.dangerPatterns) == 0 && len(s.metadata) == 0
}

func (s *Store) TriggerSignatures() []*TriggerSignature {
	return s.triggers
}

func (s *Store) DangerPatterns() []*DangerPattern {
	return s.dangerPatterns
}

func (s *Store) MetadataSignatures() []*MetadataSignature {
	return s.metadata
}

func (s *Store) Categories() map[string]Category {
	return s.categories
}

// Revision - A stable fingerprint of the loaded signature database. Persisted
// analyses carry the revision they were produced with so stale results can be
// recomputed after a signature update.
func (s *Store) Revision() string {
	ids := make([]string, 0, len(s.triggers)+len(s.dangerPatterns)+len(s.metadata))
	for _, sig := range s.triggers {
		ids = append(ids, "t:"+sig.Id)
	}
	for _, p := range s.dangerPatterns {
		ids = append(ids, "d:"+p.Id)
	}
	for _, m := range s.metadata {
		ids = append(ids, "m:"+m.Category)
	}
	sort.Strings(ids)

	h := sha256.New()
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// CategoryName - Display name for a category id, falling back to a title-cased
// version of the id for categories without an entry.
func (s *Store) CategoryName(id string) string {
	if cat, ok := s.categories[id]; ok {
		return cat.Name
	}
	return titleCase(id)
}

func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// CategoryEmoji - Emoji for a category id, or empty when unknown.
func (s *Store) CategoryEmoji(id string) string {
	return s.categories[id].Emoji
}

// CategoryDescription - Human-readable description for a category id.
func (s *Store) CategoryDescription(id string) string {
	return s.categories[id].Description
}

func loadCategories(path string) map[string]Category {
	if path == "" {
		return defaultCategories()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("[signatures] Cannot read categories file %s (%s) - using defaults", path, err)
		return defaultCategories()
	}
	categories := make(map[string]Category)
	if err := json.Unmarshal(b, &categories); err != nil {
		log.Printf("[signatures] Error decoding categories file %s: %s - using defaults", path, err)
		return defaultCategories()
	}
	return categories
}

package slides

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed decks/*.json
var builtinFS embed.FS

// Registry holds the static decks shipped with the binary, keyed by lesson slug.
type Registry struct {
	decks map[string]*Deck
}

// NewRegistry loads every *.json file under dir of fsys. The file name
// without extension is the lesson slug. Each deck must pass Validate.
func NewRegistry(fsys fs.FS, dir string) (*Registry, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck directory %s: %w", dir, err)
	}

	reg := &Registry{decks: make(map[string]*Deck, len(entries))}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read deck %s: %w", entry.Name(), err)
		}
		deck, err := ParseDeck(raw)
		if err != nil {
			return nil, fmt.Errorf("deck %s: %w", entry.Name(), err)
		}
		if err := Validate(deck); err != nil {
			return nil, fmt.Errorf("deck %s: %w", entry.Name(), err)
		}
		deck.LessonSlug = strings.TrimSuffix(entry.Name(), ".json")
		reg.decks[deck.LessonSlug] = deck
	}
	return reg, nil
}

// LoadBuiltin returns the registry of decks embedded in this package.
func LoadBuiltin() (*Registry, error) {
	return NewRegistry(builtinFS, "decks")
}

// BuiltinFS exposes the embedded deck files, e.g. for linting.
func BuiltinFS() fs.FS {
	return builtinFS
}

// Get returns the deck for a lesson slug.
func (r *Registry) Get(slug string) (*Deck, bool) {
	if r == nil {
		return nil, false
	}
	d, ok := r.decks[slug]
	return d, ok
}

// Slugs returns the registered lesson slugs in sorted order.
func (r *Registry) Slugs() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.decks))
	for slug := range r.decks {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

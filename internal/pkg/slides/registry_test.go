package slides

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuiltin(t *testing.T) {
	reg, err := LoadBuiltin()
	require.NoError(t, err)

	slugs := reg.Slugs()
	assert.Equal(t, []string{"cognitive-biases", "sleep-and-memory", "what-is-psychology"}, slugs)

	r := MustRenderer()
	for _, slug := range slugs {
		deck, ok := reg.Get(slug)
		require.True(t, ok)
		assert.Equal(t, slug, deck.LessonSlug)
		for i, s := range deck.Slides {
			_, err := r.Render(s)
			assert.NoError(t, err, "%s slide %d", slug, i)
		}
	}
}

func TestNewRegistry_RejectsInvalidDeck(t *testing.T) {
	fsys := fstest.MapFS{
		"decks/good.json": {Data: []byte(`[{"type":"title","content":{"title":"ok"}}]`)},
		"decks/bad.json":  {Data: []byte(`[{"type":"image","content":{}}]`)},
	}
	_, err := NewRegistry(fsys, "decks")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.json")
}

func TestRegistryGetMissing(t *testing.T) {
	fsys := fstest.MapFS{
		"decks/only.json": {Data: []byte(`[{"type":"title","content":{"title":"ok"}}]`)},
		"decks/README.md": {Data: []byte("not a deck")},
	}
	reg, err := NewRegistry(fsys, "decks")
	require.NoError(t, err)

	_, ok := reg.Get("missing")
	assert.False(t, ok)
	assert.Equal(t, []string{"only"}, reg.Slugs())

	var nilReg *Registry
	_, ok = nilReg.Get("only")
	assert.False(t, ok)
}

package slides

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeck_Array(t *testing.T) {
	deck, err := ParseDeck([]byte(`[{"type":"title","content":{"title":"Hello"}},{"type":"bullets","content":{"items":["a","b"]}}]`))
	require.NoError(t, err)
	require.Equal(t, 2, deck.Len())
	assert.Equal(t, TypeTitle, deck.Slides[0].Type)
	assert.Equal(t, "Hello", deck.Slides[0].Title())
	assert.Equal(t, []string{"a", "b"}, deck.Slides[1].Strings("items"))
}

func TestParseDeck_Object(t *testing.T) {
	deck, err := ParseDeck([]byte(`  {"title":"Intro","slides":[{"type":"section","content":{"title":"Part 1","background":"#000"}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Intro", deck.Title)
	require.Equal(t, 1, deck.Len())
	assert.Equal(t, "#000", deck.Slides[0].Background())
}

func TestParseDeck_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", `"slides"`, `[{"type":`, `{"slides": 3}`} {
		_, err := ParseDeck([]byte(raw))
		assert.True(t, errors.Is(err, ErrInvalidDeck), "input %q: %v", raw, err)
	}
}

func TestDeckAtClampsIndex(t *testing.T) {
	deck := &Deck{Slides: []Slide{
		{Type: TypeTitle, Content: map[string]any{"title": "one"}},
		{Type: TypeTitle, Content: map[string]any{"title": "two"}},
	}}

	s, i, ok := deck.At(5)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "two", s.Title())

	_, _, ok = (&Deck{}).At(0)
	assert.False(t, ok)

	var nilDeck *Deck
	assert.Equal(t, 0, nilDeck.Len())
}

func TestSlideStringsIgnoresNonStrings(t *testing.T) {
	s := Slide{Content: map[string]any{"items": []any{"x", 3, "  ", "y"}, "single": "z"}}
	assert.Equal(t, []string{"x", "y"}, s.Strings("items"))
	assert.Equal(t, []string{"z"}, s.Strings("single"))
	assert.Nil(t, s.Strings("missing"))
}

func TestMarshalSlidesRoundTripsThroughParse(t *testing.T) {
	deck := &Deck{Title: "ignored", Slides: []Slide{{Type: TypeText, Content: map[string]any{"text": "body"}}}}
	raw, err := deck.MarshalSlides()
	require.NoError(t, err)

	parsed, err := ParseDeck(raw)
	require.NoError(t, err)
	assert.Empty(t, parsed.Title)
	assert.Equal(t, "body", parsed.Slides[0].String("text"))
}

package slides

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptyDeck(t *testing.T) {
	assert.True(t, errors.Is(Validate(&Deck{}), ErrEmptyDeck))
	assert.True(t, errors.Is(Validate(nil), ErrEmptyDeck))
}

func TestValidate_ReportsEveryBadSlide(t *testing.T) {
	deck := &Deck{Slides: []Slide{
		{Type: TypeTitle, Content: map[string]any{"title": "ok"}},
		{Type: "carousel", Content: map[string]any{}},
		{Type: TypeBullets, Content: map[string]any{"items": []any{}}},
		{Content: map[string]any{"title": "no type"}},
		{Type: TypeTwoColumn, Content: map[string]any{"left": "only left"}},
	}}

	err := Validate(deck)
	require.Error(t, err)

	problems := SlideErrors(err)
	require.Len(t, problems, 4)
	assert.Equal(t, 1, problems[0].Index)
	assert.Equal(t, ErrUnknownSlideType.Error(), problems[0].Problem)
	assert.Equal(t, 2, problems[1].Index)
	assert.Equal(t, "content.items is required", problems[1].Problem)
	assert.Equal(t, 3, problems[2].Index)
	assert.Equal(t, "missing type", problems[2].Problem)
	assert.Equal(t, 4, problems[3].Index)
	assert.Equal(t, "content.right is required", problems[3].Problem)
}

func TestValidate_AcceptsEveryTypeWithRequiredKeys(t *testing.T) {
	deck := &Deck{}
	for _, typ := range AllTypes {
		content := map[string]any{}
		for _, key := range requiredKeys[typ] {
			if listKeys[key] {
				content[key] = []any{"item"}
			} else {
				content[key] = "value"
			}
		}
		deck.Slides = append(deck.Slides, Slide{Type: typ, Content: content})
	}
	assert.NoError(t, Validate(deck))
}

func TestSlideErrorMessage(t *testing.T) {
	assert.Equal(t, "slide 2 (image): content.src is required", (&SlideError{Index: 2, Type: TypeImage, Problem: "content.src is required"}).Error())
	assert.Equal(t, "slide 0: missing type", (&SlideError{Index: 0, Problem: "missing type"}).Error())
}

package slides

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidDeck is returned when deck JSON is neither a slide array nor a deck object.
	ErrInvalidDeck = errors.New("invalid slide deck")
	// ErrEmptyDeck is returned when a deck has no slides.
	ErrEmptyDeck = errors.New("slide deck has no slides")
	// ErrUnknownSlideType is returned when no layout exists for a slide type.
	ErrUnknownSlideType = errors.New("unknown slide type")
)

// Deck is the ordered slide array of one lesson.
type Deck struct {
	LessonSlug string  `json:"lessonSlug,omitempty"`
	Title      string  `json:"title,omitempty"`
	Slides     []Slide `json:"slides"`
}

// ParseDeck decodes deck JSON. Both a bare array of slides and an object
// with "title" and "slides" keys are accepted.
func ParseDeck(raw []byte) (*Deck, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidDeck)
	}

	switch trimmed[0] {
	case '[':
		var list []Slide
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
		}
		return &Deck{Slides: list}, nil
	case '{':
		var deck Deck
		if err := json.Unmarshal(trimmed, &deck); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDeck, err)
		}
		return &deck, nil
	default:
		return nil, fmt.Errorf("%w: expected array or object", ErrInvalidDeck)
	}
}

// Len returns the number of slides; a nil deck has none.
func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Slides)
}

// At returns the slide at the clamped index together with that index.
// The second return is false for an empty deck.
func (d *Deck) At(index int) (Slide, int, bool) {
	n := d.Len()
	if n == 0 {
		return Slide{}, 0, false
	}
	i := Clamp(index, n)
	return d.Slides[i], i, true
}

// MarshalSlides encodes only the slide array, the form stored on lessons.
func (d *Deck) MarshalSlides() ([]byte, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Slides)
}

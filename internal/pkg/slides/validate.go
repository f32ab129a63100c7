package slides

import (
	"errors"
	"fmt"
)

// requiredKeys lists the content keys each slide type cannot render without.
var requiredKeys = map[SlideType][]string{
	TypeTitle:      {"title"},
	TypeSection:    {"title"},
	TypeText:       {"text"},
	TypeBullets:    {"items"},
	TypeQuote:      {"text"},
	TypeImage:      {"src"},
	TypeVideo:      {"src"},
	TypeTwoColumn:  {"left", "right"},
	TypeReflection: {"prompt"},
	TypeSummary:    {"items"},
}

// listKeys are required keys whose value is a list rather than a string.
var listKeys = map[string]bool{
	"items": true,
}

// SlideError describes one invalid slide within a deck.
type SlideError struct {
	Index   int
	Type    SlideType
	Problem string
}

func (e *SlideError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("slide %d: %s", e.Index, e.Problem)
	}
	return fmt.Sprintf("slide %d (%s): %s", e.Index, e.Type, e.Problem)
}

// Validate checks every slide of the deck and reports all problems at once.
// The returned error wraps one *SlideError per problem, or ErrEmptyDeck.
func Validate(d *Deck) error {
	if d.Len() == 0 {
		return ErrEmptyDeck
	}

	var errs []error
	for i, s := range d.Slides {
		errs = append(errs, validateSlide(i, s)...)
	}
	return errors.Join(errs...)
}

func validateSlide(index int, s Slide) []error {
	if s.Type == "" {
		return []error{&SlideError{Index: index, Problem: "missing type"}}
	}
	if !s.Type.Valid() {
		return []error{&SlideError{Index: index, Type: s.Type, Problem: ErrUnknownSlideType.Error()}}
	}

	var errs []error
	for _, key := range requiredKeys[s.Type] {
		present := s.String(key) != ""
		if listKeys[key] {
			present = len(s.Strings(key)) > 0
		}
		if !present {
			errs = append(errs, &SlideError{Index: index, Type: s.Type, Problem: fmt.Sprintf("content.%s is required", key)})
		}
	}
	return errs
}

// SlideErrors extracts the per-slide problems from an error returned by Validate.
func SlideErrors(err error) []*SlideError {
	if err == nil {
		return nil
	}
	var out []*SlideError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var se *SlideError
			if errors.As(e, &se) {
				out = append(out, se)
			}
		}
		return out
	}
	var se *SlideError
	if errors.As(err, &se) {
		out = append(out, se)
	}
	return out
}

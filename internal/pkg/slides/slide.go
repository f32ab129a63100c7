// Package slides holds the lesson presentation model: decks of typed slides,
// their validation, navigation over a deck and rendering of each slide type
// through its layout template.
package slides

import (
	"fmt"
	"strings"
)

// SlideType is the tag that selects a slide's layout.
type SlideType string

const (
	TypeTitle      SlideType = "title"
	TypeSection    SlideType = "section"
	TypeText       SlideType = "text"
	TypeBullets    SlideType = "bullets"
	TypeQuote      SlideType = "quote"
	TypeImage      SlideType = "image"
	TypeVideo      SlideType = "video"
	TypeTwoColumn  SlideType = "two-column"
	TypeReflection SlideType = "reflection"
	TypeSummary    SlideType = "summary"
)

// AllTypes lists every supported slide type in a stable order.
var AllTypes = []SlideType{
	TypeTitle,
	TypeSection,
	TypeText,
	TypeBullets,
	TypeQuote,
	TypeImage,
	TypeVideo,
	TypeTwoColumn,
	TypeReflection,
	TypeSummary,
}

// Valid reports whether t is one of the supported slide types.
func (t SlideType) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Slide is a single screen of a lesson presentation. Content is free-form and
// its shape depends on Type.
type Slide struct {
	Type    SlideType      `json:"type"`
	Content map[string]any `json:"content"`
}

// String returns a trimmed string value from the content, or "" when the key
// is missing or not a string.
func (s Slide) String(key string) string {
	if s.Content == nil {
		return ""
	}
	switch v := s.Content[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return ""
	}
}

// Strings returns a list of non-empty strings from the content. A single
// string value is treated as a one-element list.
func (s Slide) Strings(key string) []string {
	if s.Content == nil {
		return nil
	}
	switch v := s.Content[key].(type) {
	case []string:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if item = strings.TrimSpace(item); item != "" {
				out = append(out, item)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			str, ok := item.(string)
			if !ok {
				continue
			}
			if str = strings.TrimSpace(str); str != "" {
				out = append(out, str)
			}
		}
		return out
	case string:
		if v = strings.TrimSpace(v); v != "" {
			return []string{v}
		}
	}
	return nil
}

// Bool returns a boolean flag from the content.
func (s Slide) Bool(key string) bool {
	if s.Content == nil {
		return false
	}
	b, _ := s.Content[key].(bool)
	return b
}

// Title is the shared "title" convention.
func (s Slide) Title() string { return s.String("title") }

// Background is the shared "background" colour convention.
func (s Slide) Background() string { return s.String("background") }

// BackgroundImage is the shared "backgroundImage" URL convention.
func (s Slide) BackgroundImage() string { return s.String("backgroundImage") }

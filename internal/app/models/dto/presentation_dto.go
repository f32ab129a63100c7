package dto

import "github.com/yigit/psychcourse/internal/pkg/slides"

// Deck sources
const (
	DeckSourceLesson  = "lesson"
	DeckSourceBuiltin = "builtin"
)

// DeckResponse is a lesson's slide deck
type DeckResponse struct {
	LessonSlug  string         `json:"lessonSlug" example:"what-is-psychology"`
	Title       string         `json:"title" example:"What is psychology?"`
	CourseSlug  string         `json:"courseSlug" example:"intro-to-psychology"`
	CourseTitle string         `json:"courseTitle" example:"Introduction to Psychology"`
	Source      string         `json:"source" example:"builtin" enums:"lesson,builtin"`
	Slides      []slides.Slide `json:"slides"`
}

// Deck returns the slides as a navigable deck
func (r *DeckResponse) Deck() *slides.Deck {
	return &slides.Deck{LessonSlug: r.LessonSlug, Title: r.Title, Slides: r.Slides}
}

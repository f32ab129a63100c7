package slides

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.tmpl
var layoutFS embed.FS

// slideView is the data every layout template receives.
type slideView struct {
	Type            SlideType
	Title           string
	Subtitle        string
	Background      string
	BackgroundImage string
	Body            template.HTML
	Items           []string
	Src             string
	Alt             string
	Caption         string
	Poster          string
	Embed           bool
	Attribution     string
	LeftTitle       string
	Left            template.HTML
	RightTitle      string
	Right           template.HTML
	Prompt          template.HTML
	Placeholder     string
}

// Renderer maps slide types to their layout templates.
type Renderer struct {
	layouts *template.Template
}

// NewRenderer parses the embedded layout set. Every type in AllTypes must
// have a layout of the same name.
func NewRenderer() (*Renderer, error) {
	layouts, err := template.New("slides").ParseFS(layoutFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse slide layouts: %w", err)
	}
	for _, t := range AllTypes {
		if layouts.Lookup(string(t)) == nil {
			return nil, fmt.Errorf("missing layout for slide type %q", t)
		}
	}
	return &Renderer{layouts: layouts}, nil
}

// MustRenderer is NewRenderer for package-level initialisation.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render produces the markup for one slide.
func (r *Renderer) Render(s Slide) (template.HTML, error) {
	view, err := viewFor(s)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.layouts.ExecuteTemplate(&buf, string(s.Type), view); err != nil {
		return "", fmt.Errorf("failed to render %s slide: %w", s.Type, err)
	}
	return template.HTML(buf.String()), nil
}

// viewFor builds the layout data for a slide from its free-form content.
func viewFor(s Slide) (*slideView, error) {
	view := &slideView{
		Type:            s.Type,
		Title:           s.Title(),
		Subtitle:        s.String("subtitle"),
		Background:      s.Background(),
		BackgroundImage: s.BackgroundImage(),
	}

	var err error
	switch s.Type {
	case TypeTitle, TypeSection:
	case TypeText:
		view.Body, err = Markdown(s.String("text"))
	case TypeBullets, TypeSummary:
		view.Items = s.Strings("items")
	case TypeQuote:
		view.Body, err = Markdown(s.String("text"))
		view.Attribution = s.String("attribution")
	case TypeImage:
		view.Src = s.String("src")
		view.Alt = s.String("alt")
		view.Caption = s.String("caption")
	case TypeVideo:
		view.Src = s.String("src")
		view.Poster = s.String("poster")
		view.Caption = s.String("caption")
		view.Embed = s.Bool("embed")
	case TypeTwoColumn:
		view.LeftTitle = s.String("leftTitle")
		view.RightTitle = s.String("rightTitle")
		if view.Left, err = Markdown(s.String("left")); err != nil {
			break
		}
		view.Right, err = Markdown(s.String("right"))
	case TypeReflection:
		view.Prompt, err = Markdown(s.String("prompt"))
		view.Placeholder = s.String("placeholder")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSlideType, s.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to render markdown for %s slide: %w", s.Type, err)
	}
	return view, nil
}

// Package views renders the server-side HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"github.com/yigit/psychcourse/internal/app/editor"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"cents": func(v int64) string {
		return fmt.Sprintf("%d.%02d", v/100, v%100)
	},
}

// Pages renders the presentation and editor pages
type Pages struct {
	tmpl     *template.Template
	renderer *slides.Renderer
}

// NewPages parses the embedded page templates
func NewPages(renderer *slides.Renderer) (*Pages, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}
	for _, tab := range editor.Tabs {
		if tmpl.Lookup(panelName(tab)) == nil {
			return nil, fmt.Errorf("missing editor panel for tab %q", tab)
		}
	}
	return &Pages{tmpl: tmpl, renderer: renderer}, nil
}

func panelName(tab editor.Tab) string {
	return "panel-" + string(tab)
}

type deckView struct {
	PageTitle   string
	Title       string
	CourseSlug  string
	CourseTitle string
	Slide       template.HTML
	Position    slides.Position
	PrevURL     string
	NextURL     string
}

func slideURL(index int) string {
	return "?i=" + strconv.Itoa(index)
}

// RenderDeck renders slide index of the deck, clamped into range
func (p *Pages) RenderDeck(w io.Writer, deck *dto.DeckResponse, index int) error {
	pos := slides.PositionOf(index, len(deck.Slides))
	if pos.Total == 0 {
		return slides.ErrEmptyDeck
	}

	html, err := p.renderer.Render(deck.Slides[pos.Index])
	if err != nil {
		return err
	}

	return p.tmpl.ExecuteTemplate(w, "deck", deckView{
		PageTitle:   fmt.Sprintf("%s (%d/%d)", deck.Title, pos.Number(), pos.Total),
		Title:       deck.Title,
		CourseSlug:  deck.CourseSlug,
		CourseTitle: deck.CourseTitle,
		Slide:       html,
		Position:    pos,
		PrevURL:     slideURL(pos.PrevIndex),
		NextURL:     slideURL(pos.NextIndex),
	})
}

type tabView struct {
	Label  string
	Href   string
	Active bool
}

type editorView struct {
	*editor.State
	PageTitle string
	Tabs      []tabView
	Panel     template.HTML
	token     string
}

// EditorHref builds an editor link that keeps the access token
func EditorHref(courseID int64, tab editor.Tab, lessonID int64, token string) string {
	q := url.Values{}
	q.Set("tab", string(tab))
	if lessonID > 0 {
		q.Set("lesson", strconv.FormatInt(lessonID, 10))
	}
	if token != "" {
		q.Set("token", token)
	}
	return fmt.Sprintf("/admin/courses/%d?%s", courseID, q.Encode())
}

func (v editorView) courseID() int64 {
	if v.Course == nil {
		return 0
	}
	return v.Course.ID
}

// LessonHref links to the current tab with lessonID selected
func (v editorView) LessonHref(lessonID int64) string {
	return EditorHref(v.courseID(), v.State.Tab, lessonID, v.token)
}

// RenderEditor renders the editor page with exactly the panel of st.Tab
func (p *Pages) RenderEditor(w io.Writer, st *editor.State, token string) error {
	view := editorView{State: st, PageTitle: "Course editor", token: token}
	if st.Course != nil {
		view.PageTitle = st.Course.Title + " - Course editor"
	}

	for _, link := range st.TabLinks() {
		view.Tabs = append(view.Tabs, tabView{
			Label:  link.Label,
			Href:   EditorHref(view.courseID(), link.Tab, st.SelectedID(), token),
			Active: link.Active,
		})
	}

	var panel bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&panel, panelName(st.Tab), view); err != nil {
		return fmt.Errorf("failed to render %s panel: %w", st.Tab, err)
	}
	view.Panel = template.HTML(panel.String())

	return p.tmpl.ExecuteTemplate(w, "editor", view)
}

type errorView struct {
	PageTitle string
	Message   string
}

// RenderError renders a page holding only the banner message
func (p *Pages) RenderError(w io.Writer, message string) error {
	return p.tmpl.ExecuteTemplate(w, "error", errorView{PageTitle: "Error", Message: message})
}

// Package editor holds the view state of the admin course editor.
package editor

import (
	"html/template"
	"strconv"
	"strings"

	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/slides"
)

// Tab is one of the editor panels
type Tab string

// Editor tabs
const (
	TabCourse  Tab = "course"
	TabWeeks   Tab = "weeks"
	TabLessons Tab = "lessons"
	TabScripts Tab = "scripts"
	TabAssets  Tab = "assets"
)

// Tabs lists the panels in display order
var Tabs = []Tab{TabCourse, TabWeeks, TabLessons, TabScripts, TabAssets}

var tabLabels = map[Tab]string{
	TabCourse:  "Course",
	TabWeeks:   "Weeks",
	TabLessons: "Lessons",
	TabScripts: "Scripts",
	TabAssets:  "Assets",
}

// ParseTab maps a query value to a tab; anything unknown is the course tab
func ParseTab(s string) Tab {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := tabLabels[t]; ok {
		return t
	}
	return TabCourse
}

// Label is the human-readable tab name
func (t Tab) Label() string {
	return tabLabels[t]
}

// UsesSelection reports whether the panel works on the selected lesson
func (t Tab) UsesSelection() bool {
	return t == TabLessons || t == TabScripts
}

// State is everything one editor page render needs
type State struct {
	Tab           Tab
	Course        *dto.CourseDetailResponse
	Selected      *dto.LessonResponse
	ScriptPreview template.HTML
	Banner        string
}

// ParseLessonID reads the lesson query value; zero means no selection
func ParseLessonID(s string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// NewState builds the editor state from the request values and the fetched
// course tree. A lesson id missing from the tree leaves the selection empty.
func NewState(tab Tab, lessonID int64, course *dto.CourseDetailResponse, banner string) *State {
	st := &State{Tab: tab, Course: course, Banner: banner}
	if course == nil || !tab.UsesSelection() || lessonID == 0 {
		return st
	}

	lesson, ok := course.FindLesson(lessonID)
	if !ok {
		return st
	}
	st.Selected = lesson

	if tab == TabScripts && lesson.Script != nil {
		preview, err := slides.Markdown(*lesson.Script)
		if err != nil {
			st.Banner = "Script preview failed: " + err.Error()
		} else {
			st.ScriptPreview = preview
		}
	}
	return st
}

// TabLink is a rendered tab header
type TabLink struct {
	Tab    Tab
	Label  string
	Active bool
}

// TabLinks returns the header entries with the current tab marked
func (s *State) TabLinks() []TabLink {
	links := make([]TabLink, 0, len(Tabs))
	for _, t := range Tabs {
		links = append(links, TabLink{Tab: t, Label: t.Label(), Active: t == s.Tab})
	}
	return links
}

// SelectedID returns the selected lesson id, or zero
func (s *State) SelectedID() int64 {
	if s.Selected == nil {
		return 0
	}
	return s.Selected.ID
}

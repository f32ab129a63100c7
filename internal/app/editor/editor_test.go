package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models/dto"
)

func strPtr(s string) *string { return &s }

func testCourse() *dto.CourseDetailResponse {
	return &dto.CourseDetailResponse{
		CourseSummaryResponse: dto.CourseSummaryResponse{ID: 1, Slug: "intro", Title: "Intro"},
		Weeks: []dto.WeekResponse{
			{ID: 10, Position: 1, Title: "Foundations", Lessons: []dto.LessonResponse{
				{ID: 100, Position: 1, Slug: "what-is-psychology", Title: "What is psychology", Script: strPtr("# Welcome\n\nHello <b>there</b>")},
				{ID: 101, Position: 2, Slug: "methods", Title: "Methods"},
			}},
		},
	}
}

func TestParseTab(t *testing.T) {
	for _, tab := range Tabs {
		assert.Equal(t, tab, ParseTab(string(tab)))
	}
	assert.Equal(t, TabScripts, ParseTab(" Scripts "))
	assert.Equal(t, TabCourse, ParseTab(""))
	assert.Equal(t, TabCourse, ParseTab("settings"))
}

func TestParseLessonID(t *testing.T) {
	assert.Equal(t, int64(42), ParseLessonID("42"))
	assert.Zero(t, ParseLessonID(""))
	assert.Zero(t, ParseLessonID("-3"))
	assert.Zero(t, ParseLessonID("abc"))
}

func TestNewState_Selection(t *testing.T) {
	course := testCourse()

	st := NewState(TabLessons, 101, course, "")
	require.NotNil(t, st.Selected)
	assert.Equal(t, "Methods", st.Selected.Title)
	assert.Equal(t, int64(101), st.SelectedID())

	st = NewState(TabLessons, 999, course, "")
	assert.Nil(t, st.Selected)
	assert.Zero(t, st.SelectedID())

	st = NewState(TabWeeks, 101, course, "")
	assert.Nil(t, st.Selected)
}

func TestNewState_ScriptPreview(t *testing.T) {
	st := NewState(TabScripts, 100, testCourse(), "")

	require.NotNil(t, st.Selected)
	assert.Contains(t, string(st.ScriptPreview), "<h1>Welcome</h1>")
	assert.NotContains(t, string(st.ScriptPreview), "<b>there</b>")
	assert.Empty(t, st.Banner)

	st = NewState(TabScripts, 101, testCourse(), "")
	assert.Empty(t, st.ScriptPreview)
}

func TestNewState_FetchFailure(t *testing.T) {
	st := NewState(TabLessons, 100, nil, "Course not found")
	assert.Nil(t, st.Selected)
	assert.Equal(t, "Course not found", st.Banner)
}

func TestTabLinks_OneActive(t *testing.T) {
	links := NewState(ParseTab("assets"), 0, testCourse(), "").TabLinks()
	require.Len(t, links, len(Tabs))

	active := 0
	for _, l := range links {
		if l.Active {
			active++
			assert.Equal(t, TabAssets, l.Tab)
		}
	}
	assert.Equal(t, 1, active)
}

package controllers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/editor"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/app/views"
	"github.com/yigit/psychcourse/internal/middleware"
)

// EditorController serves the server-rendered course editor
type EditorController struct {
	courseService services.CourseService
	pages         *views.Pages
}

// NewEditorController creates a new EditorController
func NewEditorController(courseService services.CourseService, pages *views.Pages) *EditorController {
	return &EditorController{
		courseService: courseService,
		pages:         pages,
	}
}

// ShowEditor renders the editor with the tab and lesson from the query string.
// Fetch failures still render the page, with the error reduced to a banner.
func (c *EditorController) ShowEditor(ctx *gin.Context) {
	tab := editor.ParseTab(ctx.Query("tab"))
	lessonID := editor.ParseLessonID(ctx.Query("lesson"))

	courseID, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	status := http.StatusOK
	var state *editor.State
	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		status, _ = middleware.ErrorDetailFor(err)
		state = editor.NewState(tab, lessonID, nil, middleware.ErrorMessage(err))
	} else {
		state = editor.NewState(tab, lessonID, course, "")
	}

	token := ctx.GetString(middleware.ContextToken)
	if ctx.Query("token") == "" {
		// Only tokens that arrived in the query are carried into page links
		token = ""
	}

	writeHTML(ctx, status, func(buf *bytes.Buffer) error {
		return c.pages.RenderEditor(buf, state, token)
	})
}

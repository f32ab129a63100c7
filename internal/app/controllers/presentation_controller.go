package controllers

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/app/services"
	"github.com/yigit/psychcourse/internal/app/views"
	"github.com/yigit/psychcourse/internal/middleware"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// PresentationController serves lesson slide decks
type PresentationController struct {
	presentationService services.PresentationService
	pages               *views.Pages
}

// NewPresentationController creates a new PresentationController
func NewPresentationController(presentationService services.PresentationService, pages *views.Pages) *PresentationController {
	return &PresentationController{
		presentationService: presentationService,
		pages:               pages,
	}
}

// writeHTML renders into a buffer first so a template error never leaves a half-written page
func writeHTML(ctx *gin.Context, status int, render func(buf *bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("Failed to render page")
		ctx.Data(http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Internal server error"))
		return
	}
	ctx.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// ShowSlide renders one slide of a lesson deck as a page
func (c *PresentationController) ShowSlide(ctx *gin.Context) {
	deck, err := c.presentationService.GetDeck(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		status, _ := middleware.ErrorDetailFor(err)
		message := middleware.ErrorMessage(err)
		if services.IsHiddenLesson(err) {
			status, message = http.StatusNotFound, "Lesson not found"
		}
		writeHTML(ctx, status, func(buf *bytes.Buffer) error {
			return c.pages.RenderError(buf, message)
		})
		return
	}

	// Malformed or missing indexes clamp to the first slide
	index, _ := strconv.Atoi(ctx.Query("i"))
	writeHTML(ctx, http.StatusOK, func(buf *bytes.Buffer) error {
		return c.pages.RenderDeck(buf, deck, index)
	})
}

// GetDeck returns a lesson deck as JSON
// @Summary Get a lesson's slide deck
// @Description Returns the slides of a published lesson: its own stored deck, or the built-in deck of the same slug
// @Tags presentations
// @Produce json
// @Param slug path string true "Lesson slug"
// @Success 200 {object} dto.APIResponse{data=dto.DeckResponse} "Deck retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Lesson or deck not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /lessons/{slug}/slides [get]
func (c *PresentationController) GetDeck(ctx *gin.Context) {
	deck, err := c.presentationService.GetDeck(ctx.Request.Context(), ctx.Param("slug"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(deck))
}

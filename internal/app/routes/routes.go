package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/psychcourse/internal/app/controllers"
	"github.com/yigit/psychcourse/internal/middleware"
)

// Controllers groups every handler the router mounts
type Controllers struct {
	Auth         *controllers.AuthController
	Course       *controllers.CourseController
	Week         *controllers.WeekController
	Lesson       *controllers.LessonController
	Asset        *controllers.AssetController
	Presentation *controllers.PresentationController
	Editor       *controllers.EditorController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, c *Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")
	api.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// --- Public delivery routes ---
	api.GET("/courses/:slug", c.Course.GetOutline)
	api.GET("/lessons/:slug/slides", c.Presentation.GetDeck)
	router.GET("/lessons/:slug/slides", c.Presentation.ShowSlide)

	// --- Admin API ---
	admin := api.Group("/admin")
	admin.POST("/auth/login", c.Auth.Login)
	admin.GET("/auth/me", authMiddleware.JWTAuth(), authMiddleware.AdminRequired(), c.Auth.GetProfile)

	courses := admin.Group("/courses")
	courses.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
	{
		courses.GET("", c.Course.ListCourses)
		courses.POST("", c.Course.CreateCourse)
		courses.GET("/:id", c.Course.GetCourse)
		courses.PATCH("/:id", c.Course.UpdateCourse)
		courses.DELETE("/:id", c.Course.DeleteCourse)

		courses.POST("/:id/weeks", c.Week.CreateWeek)
		courses.PATCH("/weeks/:weekId", c.Week.UpdateWeek)
		courses.DELETE("/weeks/:weekId", c.Week.DeleteWeek)

		courses.POST("/weeks/:weekId/lessons", c.Lesson.CreateLesson)
		courses.GET("/lessons/:id", c.Lesson.GetLesson)
		courses.PATCH("/lessons/:id", c.Lesson.UpdateLesson)
		courses.DELETE("/lessons/:id", c.Lesson.DeleteLesson)

		courses.GET("/:id/assets", c.Asset.ListAssets)
		courses.POST("/:id/assets", c.Asset.UploadAsset)
		courses.DELETE("/assets/:assetId", c.Asset.DeleteAsset)
	}

	// --- Admin pages ---
	pages := router.Group("/admin")
	pages.Use(authMiddleware.JWTAuth(), authMiddleware.AdminRequired())
	{
		pages.GET("/courses/:id", c.Editor.ShowEditor)
	}
}

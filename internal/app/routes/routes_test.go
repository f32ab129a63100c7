package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/psychcourse/internal/app/controllers"
	"github.com/yigit/psychcourse/internal/middleware"
	"github.com/yigit/psychcourse/internal/pkg/auth"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	assert.NotPanics(t, func() {
		SetupRouter(router, &Controllers{
			Auth:         controllers.NewAuthController(nil),
			Course:       controllers.NewCourseController(nil),
			Week:         controllers.NewWeekController(nil),
			Lesson:       controllers.NewLessonController(nil),
			Asset:        controllers.NewAssetController(nil),
			Presentation: controllers.NewPresentationController(nil, nil),
			Editor:       controllers.NewEditorController(nil, nil),
		}, middleware.NewAuthMiddleware(jwtService))
		SetupSwagger(router)
	})
	return router
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/admin/courses"},
		{http.MethodPatch, "/api/admin/courses/1"},
		{http.MethodPost, "/api/admin/courses/1/weeks"},
		{http.MethodDelete, "/api/admin/courses/weeks/2"},
		{http.MethodPost, "/api/admin/courses/weeks/2/lessons"},
		{http.MethodPatch, "/api/admin/courses/lessons/3"},
		{http.MethodPost, "/api/admin/courses/1/assets"},
		{http.MethodDelete, "/api/admin/courses/assets/4"},
		{http.MethodGet, "/admin/courses/1?tab=weeks"},
		{http.MethodGet, "/api/admin/auth/me"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestSwaggerDocServed(t *testing.T) {
	w := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/admin/courses/{id}")
}

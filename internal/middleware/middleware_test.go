package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/psychcourse/internal/app/models"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/apperrors"
	"github.com/yigit/psychcourse/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{fmt.Errorf("error getting course: %w", apperrors.ErrCourseNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{fmt.Errorf("%w: %w", apperrors.ErrLessonNotFound, apperrors.ErrLessonNotPublished), http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrCourseSlugExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{apperrors.ErrWeekHasLessons, http.StatusConflict, dto.ErrorCodeConflict},
		{apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{fmt.Errorf("%w: title is required", apperrors.ErrValidationFailed), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/admin/courses/1", nil)

			HandleAPIError(c, tc.err)

			assert.Equal(t, tc.status, w.Code)
			resp := decodeError(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.code, resp.Error.Code)
		})
	}
}

func TestErrorDetailFor_CustomErrorDetails(t *testing.T) {
	err := apperrors.NewValidationError("invalid lesson order", map[string]interface{}{"missing": []int64{3}})

	status, detail := ErrorDetailFor(fmt.Errorf("week 2: %w", err))
	assert.Equal(t, http.StatusBadRequest, status)
	details, ok := detail.Details.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []int64{3}, details["missing"])
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "", ErrorMessage(nil))
	assert.Equal(t, "Course not found", ErrorMessage(fmt.Errorf("x: %w", apperrors.ErrCourseNotFound)))
	assert.Equal(t, "Internal server error", ErrorMessage(errors.New("dial tcp: refused")))
	assert.Contains(t, ErrorMessage(fmt.Errorf("%w: bad slug", apperrors.ErrValidationFailed)), "bad slug")
}

func newAuthRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
	m := NewAuthMiddleware(jwtService)

	r := gin.New()
	r.GET("/protected", m.JWTAuth(), m.AdminRequired(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetInt64(ContextUserID)})
	})
	return r, jwtService
}

func TestJWTAuth(t *testing.T) {
	r, jwtService := newAuthRouter(t)
	token, _, err := jwtService.GenerateAccessToken(&models.AdminUser{ID: 7, Email: "admin@psychcourse.local"})
	require.NoError(t, err)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"userID": 7}`, w.Body.String())
	})

	t.Run("query token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeUnauthorized, decodeError(t, w).Error.Code)
	})

	t.Run("foreign signature", func(t *testing.T) {
		other := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Hour, TokenIssuer: "test"})
		forged, _, err := other.GenerateAccessToken(&models.AdminUser{ID: 7, Email: "admin@psychcourse.local"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+forged)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, w).Error.Code)
	})
}

func TestBindJSON_ReportsFields(t *testing.T) {
	RegisterValidators()

	r := gin.New()
	r.POST("/courses", func(c *gin.Context) {
		var req dto.CreateCourseRequest
		if !BindJSON(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	body := `{"title": "Intro", "slug": "Not A Slug", "currency": "usd"}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "slug must be lower-case words joined by hyphens")
	assert.Contains(t, w.Body.String(), "currency must be a 3-letter upper-case currency code")

	w = httptest.NewRecorder()
	body = `{"title": "Intro", "slug": "intro", "currency": "EUR"}`
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/courses", strings.NewReader(body)))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

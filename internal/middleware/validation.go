package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/psychcourse/internal/app/models/dto"
	"github.com/yigit/psychcourse/internal/pkg/validation"
)

var registerOnce sync.Once

// RegisterValidators adds the slug and currency tags to gin's validator
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return validation.IsSlug(fl.Field().String())
		})
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return validation.IsCurrency(fl.Field().String())
		})
	})
}

// BindJSON binds the request body and writes a VAL_001 response on failure
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

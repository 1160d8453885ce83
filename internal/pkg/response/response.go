package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tourpricing/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// FromError renders err using the status that matches its apperr type.
// Internal errors are attached to the context for the error logger and
// reported with a generic message.
func FromError(c *gin.Context, err error) {
	e, ok := apperr.As(err)
	if !ok || e.Type == apperr.TypeInternal {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, string(apperr.TypeInternal), "Internal server error")
		return
	}

	status := StatusFor(e.Type)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	if len(e.Context) > 0 {
		ErrorWithDetails(c, status, string(e.Type), e.Message, e.Context)
		return
	}
	Error(c, status, string(e.Type), e.Message)
}

func StatusFor(t apperr.Type) int {
	switch t {
	case apperr.TypeValidation:
		return http.StatusBadRequest
	case apperr.TypeNotFound:
		return http.StatusNotFound
	case apperr.TypeConcurrencyConflict:
		return http.StatusConflict
	case apperr.TypeDataInconsistency:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

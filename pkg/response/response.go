package response

import (
	"errors"
	"net/http"

	"blogcore/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`    // business code
	Message string      `json:"message"` // human-readable detail
	Data    interface{} `json:"data"`
}

// Success writes a 200 envelope with data.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Error writes an error envelope with an explicit HTTP status.
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	c.JSON(httpCode, Response{
		Code:    errCode,
		Message: msg,
		Data:    nil,
	})
}

// FromError maps the service error taxonomy onto HTTP + business codes.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		Error(c, http.StatusBadRequest, ErrInvalidParam, err.Error())
	case errors.Is(err, apperrors.ErrNotFound):
		Error(c, http.StatusNotFound, ErrPostNotFound, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		Error(c, http.StatusForbidden, ErrNoPermission, err.Error())
	case errors.Is(err, apperrors.ErrInvalidState):
		Error(c, http.StatusConflict, ErrSubmissionDecided, err.Error())
	case errors.Is(err, apperrors.ErrDuplicateTitle):
		Error(c, http.StatusConflict, ErrDuplicateTitle, err.Error())
	case errors.Is(err, apperrors.ErrLockContention):
		Error(c, http.StatusTooManyRequests, ErrRegenInProgress, err.Error())
	default:
		Error(c, http.StatusInternalServerError, ErrServerInternal, err.Error())
	}
}

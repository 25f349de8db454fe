package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "github.com/yungbote/studygroup-backend/internal/pkg/errors"
)

var errInternal = errors.New("internal server error")

// StatusFor maps a service error onto an HTTP status and error code.
func StatusFor(err error) (int, string) {
	switch {
	case apperr.Is(err, apperr.ErrValidation), apperr.Is(err, apperr.ErrInvalidArgument):
		return http.StatusBadRequest, "validation_error"
	case apperr.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case apperr.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// RespondServiceError writes err with its mapped status. Internal failures are
// reported with an opaque message; the cause is kept on the gin context for the
// request logger.
func RespondServiceError(c *gin.Context, err error) {
	status, code := StatusFor(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		RespondError(c, status, code, errInternal)
		return
	}
	RespondError(c, status, code, err)
}

package response

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kovalchuka569/taskflow/internal/pkg/result"
)

// RespondErrors writes errs as a JSON array with the status StatusFor picks.
func RespondErrors(c *gin.Context, errs []result.Error) {
	if errs == nil {
		errs = []result.Error{}
	}
	c.JSON(StatusFor(errs), errs)
}

// RespondResult writes the failure of r, or status with no body on success.
func RespondResult(c *gin.Context, r result.Result, status int) {
	if r.IsFailure() {
		RespondErrors(c, r.Errors())
		return
	}
	c.Status(status)
}

// StatusFor maps the first error code to an HTTP status. Later errors in the
// list never change the status.
func StatusFor(errs []result.Error) int {
	if len(errs) == 0 {
		return http.StatusBadRequest
	}
	code := errs[0].Code
	switch {
	case strings.HasSuffix(code, "NotFound"), strings.HasSuffix(code, "NotExists"):
		return http.StatusNotFound
	case strings.Contains(code, "Unauthorized"):
		return http.StatusUnauthorized
	case strings.Contains(code, "Conflict"), strings.Contains(code, "AlreadyExists"):
		return http.StatusConflict
	case strings.HasPrefix(code, "Database"):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

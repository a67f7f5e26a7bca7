package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/twitsnap/twits/internal/domain"
)

// Problem is the RFC 7807 error body the service emits.
type Problem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// NewProblem creates a problem body for the given occurrence.
func NewProblem(title string, status int, detail, instance string) Problem {
	return Problem{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: instance,
	}
}

// statusFor maps the domain error taxonomy onto HTTP statuses.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict, domain.KindValidationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the problem response for a domain error. Unclassified
// errors surface as 500 without leaking store internals.
func (r *Router) respondError(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := statusFor(kind)

	detail := err.Error()
	if kind == domain.KindStoreFailure {
		r.logger.Error("Store failure", zap.String("path", c.Request.URL.Path), zap.Error(err))
		detail = "internal error"
	}

	c.JSON(status, NewProblem(kind.String(), status, detail, c.Request.URL.Path))
}

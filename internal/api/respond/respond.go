// Package respond writes error responses in the API's {"error": ...} shape.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"cradle-api/internal/domain/apperr"

	"github.com/gin-gonic/gin"
)

func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotAuthenticated:
		return http.StatusUnauthorized
	case apperr.KindInsufficientRole:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindReferentialViolation:
		return http.StatusConflict
	case apperr.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// Error aborts the request with the status for err's kind. Upstream
// failures are logged and their cause is not echoed to the client.
func Error(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	msg := err.Error()

	if kind == apperr.KindUpstreamFailure {
		slog.Error("Request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()))

		var e *apperr.Error
		if errors.As(err, &e) && e.Msg != "" {
			msg = "failed to " + e.Msg
		} else {
			msg = "upstream failure"
		}
	}

	c.AbortWithStatusJSON(Status(kind), gin.H{"error": msg, "code": kind})
}

// BadRequest reports a binding or parsing error.
func BadRequest(c *gin.Context, err error) {
	Error(c, apperr.Invalid("%s", err.Error()))
}

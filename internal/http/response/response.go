package response

import (
	"net/http"

	"tavern_bot/internal/domain"

	"github.com/gin-gonic/gin"
)

const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAlreadyDone:
		return http.StatusConflict
	case domain.KindPermission:
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

// Abort writes an error body and stops the handler chain.
func Abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// FromError renders typed failures with their kind's status; anything else is a 500
// and is attached to the context for the request logger.
func FromError(c *gin.Context, err error) {
	if de, ok := domain.AsError(err); ok {
		Abort(c, StatusFor(de.Kind), de.Code, de.Message)
		return
	}
	_ = c.Error(err)
	Abort(c, http.StatusInternalServerError, CodeInternal, "Something went wrong. Try again later.")
}

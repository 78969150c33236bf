package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ronei-rcm/rare-toy-admin/internal/domain"
	"github.com/Ronei-rcm/rare-toy-admin/internal/http/middleware"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps the error taxonomy to HTTP responses. Backend
// trouble maps to gateway statuses; the previously rendered list stays valid
// on the client, these responses only drive the transient notification.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConcurrentAction(err):
		respondError(c, http.StatusConflict, "concurrent_action", err.Error())
	case domain.IsTimeout(err):
		respondError(c, http.StatusGatewayTimeout, "backend_timeout", err.Error())
	case domain.IsNetwork(err):
		respondError(c, http.StatusBadGateway, "backend_unreachable", err.Error())
	case domain.IsServer(err):
		respondError(c, http.StatusBadGateway, "backend_error", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}

package handlers

import (
	"errors"
	"net/http"

	"pet_discovery/internal/discovery"
	"pet_discovery/internal/repository"
	"pet_discovery/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errInternal        = "internal error"
	errInvalidBodyPref = "invalid body: "
)

// statusFor maps service sentinels to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, service.ErrMarkerNotFound),
		errors.Is(err, repository.ErrCompanyNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnknownService),
		errors.Is(err, service.ErrInvalidCompany),
		errors.Is(err, discovery.ErrInvalidPageSize):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError writes err with its mapped status. Only unexpected errors are logged, and their
// message is not exposed.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		h.logAndJSONError(c, code, errInternal, logKey, err, kv...)
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

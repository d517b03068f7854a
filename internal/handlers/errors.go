package handlers

import (
	"errors"
	"net/http"

	"smarthub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInvalidBodyPref  = "invalid body: "
	errNotConfigured    = "settings not configured"
	errUpstreamFailure  = "sunset service unavailable"
	errInternal         = "internal error"
	errInvalidSize      = "size must be a positive integer"
	errInvalidReadingID = "id must be a positive integer"
)

// statusFor maps service error classes onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSettingsNotConfigured):
		return http.StatusConflict
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err under logKey and writes a JSON error. Client errors
// echo the message; server-side failures do not.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	fields := append([]interface{}{"err", err, "status", code, "request_id", requestIDFrom(c)}, kv...)

	msg := err.Error()
	switch code {
	case http.StatusConflict:
		msg = errNotConfigured
		h.log.Infow(logKey, fields...)
	case http.StatusBadGateway:
		msg = errUpstreamFailure
		h.log.Warnw(logKey, fields...)
	case http.StatusInternalServerError:
		msg = errInternal
		h.log.Errorw(logKey, fields...)
	default:
		h.log.Infow(logKey, fields...)
	}
	c.JSON(code, gin.H{"error": msg})
}

package handlers

import (
	"errors"
	"net/http"

	"trading_dashboard/internal/binance"
	"trading_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternal       = "internal server error"
	errInvalidBody    = "invalid body: "
	errInvalidID      = "invalid id"
	errResetToken     = "Invalid or expired reset token"
	errNotConfigured  = "Binance API is not configured"
	errExchangeFailed = "failed to fetch data from Binance"
)

// fail maps a service or exchange error to a status and a stable body.
// Internal details only go to the log.
func (h *Handler) fail(c *gin.Context, logKey string, err error, kv ...interface{}) {
	var (
		ve *service.ValidationError
		ue *binance.UpstreamError
		te *binance.TransportError
	)
	fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)

	switch {
	case errors.As(err, &ve):
		h.log.Infow(logKey, fields...)
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Message, "field": ve.Field})
	case errors.Is(err, service.ErrConflict):
		h.log.Infow(logKey, fields...)
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrAuthentication):
		h.log.Infow(logKey, fields...)
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrAuthentication.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		h.log.Infow(logKey, fields...)
		c.JSON(http.StatusBadRequest, gin.H{"error": errResetToken})
	case errors.Is(err, service.ErrNotFound):
		h.log.Infow(logKey, fields...)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, binance.ErrMissingCredentials):
		h.log.Warnw(logKey, fields...)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errNotConfigured})
	case errors.As(err, &ue):
		h.log.Errorw(logKey, append(fields, "upstream_status", ue.StatusCode, "upstream_body", ue.Body)...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errExchangeFailed})
	case errors.As(err, &te):
		h.log.Errorw(logKey, fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errExchangeFailed})
	default:
		h.log.Errorw(logKey, fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternal})
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody + err.Error()})
		return false
	}
	return true
}

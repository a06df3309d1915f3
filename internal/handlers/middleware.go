package handlers

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey       = "userId"
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-ID"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		h.log.Infow("auth_token_rejected", "err", err, "request_id", c.GetString(requestIDKey))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(userIDKey, userId)
	c.Next()
}

// callerID returns the user id set by userIdMiddleware.
func callerID(c *gin.Context) int {
	return c.GetInt(userIDKey)
}

// requestID reuses an incoming X-Request-ID or generates one.
func (h *Handler) requestID(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
		"ip", c.ClientIP(),
		"request_id", c.GetString(requestIDKey),
	)
}

// recovery answers 500 on panic and reports it to Sentry (a no-op when Sentry is not initialized).
func (h *Handler) recovery(c *gin.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("request_id", c.GetString(requestIDKey))
				scope.SetExtra("panic", rec)
				scope.SetExtra("stack", string(debug.Stack()))
				sentry.CaptureMessage("panic in request")
			})
			h.log.Errorw("panic_recovered",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"panic", rec,
				"request_id", c.GetString(requestIDKey),
			)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": errInternal})
		}
	}()
	c.Next()
}

// cors allows every origin, method and header.
func cors(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Header("Access-Control-Allow-Headers", "*")
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

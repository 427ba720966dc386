package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id and logs it once completed.
func (h *Handler) requestLogger(c *gin.Context) {
	reqID := uuid.NewString()
	start := time.Now()

	c.Set("requestID", reqID)
	c.Header(requestIDHeader, reqID)

	c.Next()

	h.log.Infow("request",
		"request_id", reqID,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"size", c.Writer.Size(),
		"duration", time.Since(start),
	)
}

// requirePageSession redirects callers without a valid session to the entry page.
func (h *Handler) requirePageSession(c *gin.Context) {
	// protected pages must not be served from cache after logout
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")

	username := h.sessionUser(c)
	if username == "" {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}
	c.Set(ctxUsernameKey, username)
	c.Next()
}

// requireAPISession is the JSON flavour of the gate: 401 instead of a redirect.
func (h *Handler) requireAPISession(c *gin.Context) {
	username := h.sessionUser(c)
	if username == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing or invalid session",
		})
		return
	}
	c.Set(ctxUsernameKey, username)
	c.Next()
}

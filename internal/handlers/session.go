package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName = "session"
	ctxUsernameKey    = "username"
)

// setSessionCookie stores the signed session token.
func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// startSession issues a token for username and sets the cookie.
func (h *Handler) startSession(c *gin.Context, username string) error {
	token, err := h.services.IssueSession(username)
	if err != nil {
		return err
	}
	h.setSessionCookie(c, token)
	return nil
}

// sessionUser returns the username of a valid session cookie, or "".
func (h *Handler) sessionUser(c *gin.Context) string {
	token, err := c.Cookie(sessionCookieName)
	if err != nil || token == "" {
		return ""
	}
	username, err := h.services.ParseSession(token)
	if err != nil {
		h.log.Debugw("session_rejected", "err", err)
		return ""
	}
	return username
}

func currentUser(c *gin.Context) string {
	return c.GetString(ctxUsernameKey)
}

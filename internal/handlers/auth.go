package handlers

import (
	"errors"
	"net/http"

	"crop_forecast/internal/service"

	"github.com/gin-gonic/gin"
)

// User-facing messages; each carries a manual link back to the entry page.
const (
	msgUserExists         = "User already registered. <a href='/'>Go back</a>"
	msgEmailTaken         = "Email already registered. <a href='/'>Go back</a>"
	msgInvalidCredentials = "Invalid credentials. <a href='/'>Go back</a>"
	msgEmptyField         = "Username and password must not be empty. <a href='/'>Go back</a>"
	msgBadForm            = "Bad request: missing or malformed form fields. <a href='/'>Go back</a>"
	msgServerError        = "Internal Server Error"
)

type registerForm struct {
	Username string `form:"username" binding:"required"`
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required"`
	Phone    string `form:"phone" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// plainText writes msg as a bare HTML fragment, the way user errors are shown.
func plainText(c *gin.Context, code int, msg string) {
	c.Data(code, "text/html; charset=utf-8", []byte(msg))
}

// bindFormOrBadRequest binds the form into dst and writes a 400 on failure.
// Returns false if the request was already handled.
func (h *Handler) bindFormOrBadRequest(c *gin.Context, dst any, event string) bool {
	if err := c.ShouldBind(dst); err != nil {
		h.log.Infow(event, "err", err)
		plainText(c, http.StatusBadRequest, msgBadForm)
		return false
	}
	return true
}

// serverError logs err under event and answers a generic 500.
func (h *Handler) serverError(c *gin.Context, event string, err error, kv ...interface{}) {
	fields := append([]interface{}{"err", err, "request_id", c.GetString("requestID")}, kv...)
	h.log.Errorw(event, fields...)
	plainText(c, http.StatusInternalServerError, msgServerError)
}

func (h *Handler) register(c *gin.Context) {
	var form registerForm
	if ok := h.bindFormOrBadRequest(c, &form, "auth_register_bad_form"); !ok {
		return
	}

	err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: form.Username,
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
	switch {
	case err == nil:
	case errors.Is(err, service.ErrUserExists):
		h.log.Infow("auth_register_duplicate", "username", form.Username)
		plainText(c, http.StatusOK, msgUserExists)
		return
	case errors.Is(err, service.ErrEmailTaken):
		h.log.Infow("auth_register_duplicate_email", "username", form.Username)
		plainText(c, http.StatusOK, msgEmailTaken)
		return
	case errors.Is(err, service.ErrEmptyPassword), errors.Is(err, service.ErrEmptyUsername):
		plainText(c, http.StatusOK, msgEmptyField)
		return
	default:
		h.serverError(c, "auth_register_failed", err, "username", form.Username)
		return
	}

	if err := h.startSession(c, form.Username); err != nil {
		h.serverError(c, "auth_session_issue_failed", err, "username", form.Username)
		return
	}
	h.log.Infow("auth_registered", "username", form.Username)
	c.Redirect(http.StatusFound, "/registered")
}

func (h *Handler) login(c *gin.Context) {
	var form loginForm
	if ok := h.bindFormOrBadRequest(c, &form, "auth_login_bad_form"); !ok {
		return
	}

	if err := h.services.Authenticate(c.Request.Context(), form.Username, form.Password); err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.log.Infow("auth_login_failed", "username", form.Username)
			plainText(c, http.StatusOK, msgInvalidCredentials)
			return
		}
		h.serverError(c, "auth_login_error", err, "username", form.Username)
		return
	}

	if err := h.startSession(c, form.Username); err != nil {
		h.serverError(c, "auth_session_issue_failed", err, "username", form.Username)
		return
	}
	c.Redirect(http.StatusFound, "/input")
}

func (h *Handler) logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

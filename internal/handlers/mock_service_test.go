package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"crop_forecast/internal/models"
	"crop_forecast/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerErr error
	authErr     error
	issueErr    error
	// sessions maps token -> username; tokens are "tok-<username>"
	sessions map[string]string

	lastRegister service.RegisterInput
	lastAuthUser string
	lastAuthPass string
}

func newMockAuth() *mockAuth {
	return &mockAuth{sessions: map[string]string{}}
}

func (m *mockAuth) Register(ctx context.Context, in service.RegisterInput) error {
	m.lastRegister = in
	return m.registerErr
}

func (m *mockAuth) Authenticate(ctx context.Context, username, password string) error {
	m.lastAuthUser = username
	m.lastAuthPass = password
	return m.authErr
}

func (m *mockAuth) IssueSession(username string) (string, error) {
	if m.issueErr != nil {
		return "", m.issueErr
	}
	tok := "tok-" + username
	m.sessions[tok] = username
	return tok, nil
}

func (m *mockAuth) ParseSession(token string) (string, error) {
	u, ok := m.sessions[token]
	if !ok {
		return "", service.ErrInvalidToken
	}
	return u, nil
}

type mockPredictor struct {
	resp   models.Prediction
	err    error
	calls  int
	lastIn service.PredictInput
}

func (m *mockPredictor) Predict(ctx context.Context, in service.PredictInput) (models.Prediction, error) {
	m.calls++
	m.lastIn = in
	if m.err != nil {
		return models.Prediction{}, m.err
	}
	return m.resp, nil
}

type mockResults struct {
	latest     *models.Prediction
	latestErr  error
	history    []models.Prediction
	historyErr error
	lastFilter service.HistoryFilter
}

func (m *mockResults) Latest(ctx context.Context) (*models.Prediction, error) {
	return m.latest, m.latestErr
}

func (m *mockResults) History(ctx context.Context, f service.HistoryFilter) ([]models.Prediction, error) {
	m.lastFilter = f
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return nil, service.ErrInvalidDateRange
	}
	return m.history, nil
}

var errMockDown = errors.New("mock backend down")

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil, Options{}).InitRoutes()
}

// sessionCookie returns a cookie the mockAuth accepts for username.
func sessionCookie(auth *mockAuth, username string) *http.Cookie {
	tok, _ := auth.IssueSession(username)
	return &http.Cookie{Name: sessionCookieName, Value: tok}
}

func formRequest(method, target string, form url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func getRequest(target string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// responseCookie finds the named cookie set by the response, or nil.
func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func ginTestContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

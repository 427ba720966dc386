package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"crop_forecast/internal/forecast"
	"crop_forecast/internal/repository"
	"crop_forecast/internal/repository/db"
	"crop_forecast/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// newAppRouter wires the real stack on temp files: sqlite, spreadsheet, chart.
func newAppRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()

	wb := excelize.NewFile()
	rows := [][]any{
		{"Year", "Price (₹/ton)"},
		{2018, 1700.0}, {2019, 1810.0}, {2020, 1900.0}, {2021, 2050.0}, {2022, 2200.0},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	dataset := filepath.Join(dir, "AgriData.xlsx")
	if err := wb.SaveAs(dataset); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	_ = wb.Close()

	conn, err := db.InitDB(filepath.Join(dir, "app.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })

	chart := filepath.Join(dir, "prediction_plot.png")
	engine := forecast.NewEngine(forecast.Config{DatasetPath: dataset, ChartPath: chart, Trees: 20})
	services := service.NewService(repository.NewRepository(conn), engine, service.SessionConfig{
		SigningKey: "flow-test-key",
		TTL:        time.Hour,
	})

	gin.SetMode(gin.TestMode)
	return NewHandler(services, nil, Options{ChartPath: chart, SessionTTL: time.Hour}).InitRoutes(), chart
}

func resultCell(id string) *regexp.Regexp {
	return regexp.MustCompile(`<td id="` + id + `">([^<]*)</td>`)
}

func TestFlow_RegisterLoginPredictLogout(t *testing.T) {
	r, chart := newAppRouter(t)

	reg := url.Values{
		"username": {"farmer1"}, "name": {"Ravi"}, "email": {"ravi@example.com"},
		"phone": {"9000000000"}, "password": {"p1"},
	}
	w := serve(r, formRequest(http.MethodPost, "/register", reg))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/registered" {
		t.Fatalf("register: status=%d location=%q body=%s", w.Code, w.Header().Get("Location"), w.Body.String())
	}

	w = serve(r, formRequest(http.MethodPost, "/register", reg))
	if w.Code != http.StatusOK || w.Body.String() != msgUserExists {
		t.Fatalf("duplicate register: status=%d body=%q", w.Code, w.Body.String())
	}

	w = serve(r, formRequest(http.MethodPost, "/login", url.Values{"username": {"farmer1"}, "password": {"wrong"}}))
	if w.Body.String() != msgInvalidCredentials || responseCookie(w, sessionCookieName) != nil {
		t.Fatalf("wrong password must not log in: status=%d body=%q", w.Code, w.Body.String())
	}

	w = serve(r, formRequest(http.MethodPost, "/login", url.Values{"username": {"farmer1"}, "password": {"p1"}}))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/input" {
		t.Fatalf("login: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
	session := responseCookie(w, sessionCookieName)
	if session == nil {
		t.Fatalf("login did not set a session cookie")
	}

	if w = serve(r, getRequest("/input", session)); w.Code != http.StatusOK {
		t.Fatalf("/input with session: status=%d", w.Code)
	}

	form := url.Values{"crop_type": {"Wheat"}, "district": {"X"}, "year": {"2026"}}
	w = serve(r, formRequest(http.MethodPost, "/predict", form, session))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/prediction_result" {
		t.Fatalf("predict: status=%d body=%s", w.Code, w.Body.String())
	}
	if info, err := os.Stat(chart); err != nil || info.Size() == 0 {
		t.Fatalf("chart not written: %v", err)
	}

	w = serve(r, getRequest("/prediction_result", session))
	if w.Code != http.StatusOK {
		t.Fatalf("result: status=%d", w.Code)
	}
	body := w.Body.String()
	for id, want := range map[string]string{"crop_type": "Wheat", "district": "X", "year": "2026"} {
		m := resultCell(id).FindStringSubmatch(body)
		if m == nil || m[1] != want {
			t.Errorf("%s: got %v, want %q", id, m, want)
		}
	}
	for _, id := range []string{"predicted_price", "current_price"} {
		m := resultCell(id).FindStringSubmatch(body)
		if m == nil {
			t.Fatalf("%s missing from result page", id)
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil || v < 1500 || v > 2500 {
			t.Errorf("%s: %q is not a plausible price", id, m[1])
		}
	}

	if w = serve(r, getRequest(chartURL)); w.Code != http.StatusOK {
		t.Fatalf("chart route: status=%d", w.Code)
	}

	w = serve(r, getRequest("/logout", session))
	cleared := responseCookie(w, sessionCookieName)
	if w.Code != http.StatusFound || cleared == nil || cleared.MaxAge >= 0 {
		t.Fatalf("logout: status=%d cookie=%+v", w.Code, cleared)
	}

	// a browser drops the cookie after logout
	w = serve(r, getRequest("/prediction_result"))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/" {
		t.Fatalf("after logout: status=%d location=%q", w.Code, w.Header().Get("Location"))
	}
}

func TestFlow_APIReflectsRecordedPrediction(t *testing.T) {
	r, _ := newAppRouter(t)

	w := serve(r, formRequest(http.MethodPost, "/register", url.Values{
		"username": {"farmer2"}, "name": {"Asha"}, "email": {"asha@example.com"},
		"phone": {"9000000001"}, "password": {"p2"},
	}))
	session := responseCookie(w, sessionCookieName)
	if session == nil {
		t.Fatalf("register did not set a session: status=%d", w.Code)
	}

	for _, year := range []string{"2025", "2026"} {
		w = serve(r, formRequest(http.MethodPost, "/predict",
			url.Values{"crop_type": {"Rice"}, "district": {"Y"}, "year": {year}}, session))
		if w.Code != http.StatusFound {
			t.Fatalf("predict %s: status=%d body=%s", year, w.Code, w.Body.String())
		}
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, getRequest("/api/v1/predictions/latest", session))
	if rec.Code != http.StatusOK || !regexp.MustCompile(`"year":2026`).MatchString(rec.Body.String()) {
		t.Fatalf("latest: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, getRequest("/api/v1/predictions?crop=Rice", session))
	if rec.Code != http.StatusOK || !regexp.MustCompile(`"count":2`).MatchString(rec.Body.String()) {
		t.Fatalf("list: status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestFlow_LongPasswordRegistersAndLogsIn(t *testing.T) {
	r, _ := newAppRouter(t)
	long := strings.Repeat("x", 100)

	w := serve(r, formRequest(http.MethodPost, "/register", url.Values{
		"username": {"farmer3"}, "name": {"Meera"}, "email": {"meera@example.com"},
		"phone": {"9000000002"}, "password": {long},
	}))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/registered" {
		t.Fatalf("register: status=%d body=%q", w.Code, w.Body.String())
	}

	w = serve(r, formRequest(http.MethodPost, "/login", url.Values{"username": {"farmer3"}, "password": {long}}))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/input" {
		t.Fatalf("login: status=%d body=%q", w.Code, w.Body.String())
	}
}

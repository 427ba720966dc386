package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"time"

	"crop_forecast/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const indexPage = "index.html"

// pageData drives the single index template; exactly one view flag is set.
type pageData struct {
	Title      string
	User       string
	Registered bool
	Input      bool
	Result     bool
	Prediction *models.Prediction
	ChartURL   string
}

var templateFuncs = template.FuncMap{
	"price": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02")
	},
}

func loadTemplates() *template.Template {
	return template.Must(template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"))
}

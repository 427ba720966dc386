package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const (
	pageTitle = "Agri Insights"
	chartURL  = "/static/prediction_plot.png"
)

func (h *Handler) render(c *gin.Context, data pageData) {
	data.Title = pageTitle
	if data.User == "" {
		data.User = currentUser(c)
	}
	c.HTML(http.StatusOK, indexPage, data)
}

func (h *Handler) home(c *gin.Context) {
	h.render(c, pageData{User: h.sessionUser(c)})
}

func (h *Handler) registered(c *gin.Context) {
	h.render(c, pageData{Registered: true})
}

func (h *Handler) input(c *gin.Context) {
	h.render(c, pageData{Input: true})
}

func (h *Handler) predictionResult(c *gin.Context) {
	p, err := h.services.Latest(c.Request.Context())
	if err != nil {
		h.serverError(c, "result_load_failed", err)
		return
	}
	h.render(c, pageData{Result: true, Prediction: p, ChartURL: chartURL})
}

// chart serves the most recently rendered trajectory image.
func (h *Handler) chart(c *gin.Context) {
	if h.opts.ChartPath == "" {
		c.Status(http.StatusNotFound)
		return
	}
	if _, err := os.Stat(h.opts.ChartPath); err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.File(h.opts.ChartPath)
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

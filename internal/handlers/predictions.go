package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"crop_forecast/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errFromInvalid  = "invalid 'from' date; use RFC3339 or YYYY-MM-DD"
	errToInvalid    = "invalid 'to' date; use RFC3339 or YYYY-MM-DD"
	errLimitInvalid = "invalid 'limit'; use a positive integer"
	errNoPrediction = "no prediction recorded yet"
	errLoadFailed   = "failed to load predictions"

	layoutDateTime = "2006-01-02 15:04:05"
	layoutDate     = "2006-01-02"
)

// @Summary      List predictions
// @Description  Stored predictions, newest first. Dates filter on prediction_date (inclusive).
// @Tags         predictions
// @Produce      json
// @Param        crop      query   string  false  "Crop type"  example(Wheat)
// @Param        district  query   string  false  "District"
// @Param        from      query   string  false  "Start date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-01-01)
// @Param        to        query   string  false  "End date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2026-12-31)
// @Param        limit     query   int     false  "Max rows (default 100, max 1000)"
// @Success      200   {object}  map[string]interface{}  "count, predictions"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/predictions [get]
func (h *Handler) listPredictions(c *gin.Context) {
	var (
		filter = service.HistoryFilter{
			CropType: c.Query("crop"),
			District: c.Query("district"),
		}
		err error
	)
	if qs := c.Query("from"); qs != "" {
		if filter.From, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errFromInvalid})
			return
		}
	}
	if qs := c.Query("to"); qs != "" {
		if filter.To, err = parseQueryTime(qs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": errToInvalid})
			return
		}
	}
	if qs := c.Query("limit"); qs != "" {
		n, err := strconv.Atoi(qs)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": errLimitInvalid})
			return
		}
		filter.Limit = n
	}

	predictions, err := h.services.History(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'from' must be <= 'to'"})
			return
		}
		h.log.Errorw("predictions_list_failed", "err", err, "crop", filter.CropType, "from", filter.From, "to", filter.To)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadFailed})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(predictions),
		"predictions": predictions,
	})
}

// @Summary      Latest prediction
// @Tags         predictions
// @Produce      json
// @Success      200  {object}  models.Prediction
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/predictions/latest [get]
func (h *Handler) latestPrediction(c *gin.Context) {
	p, err := h.services.Latest(c.Request.Context())
	if err != nil {
		h.log.Errorw("predictions_latest_failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errLoadFailed})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": errNoPrediction})
		return
	}
	c.JSON(http.StatusOK, p)
}

func parseQueryTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, layoutDateTime, layoutDate} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf(
		"invalid time format %q, expected one of: "+
			"RFC3339 (e.g. 2026-08-27T15:04:05Z), "+
			"'YYYY-MM-DD HH:MM:SS', "+
			"'YYYY-MM-DD'",
		s,
	)
}

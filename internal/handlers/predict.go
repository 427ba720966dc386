package handlers

import (
	"net/http"

	"crop_forecast/internal/service"

	"github.com/gin-gonic/gin"
)

type predictForm struct {
	CropType string `form:"crop_type" binding:"required"`
	District string `form:"district" binding:"required"`
	// pointer so that year=0 counts as present
	Year *int `form:"year" binding:"required"`
}

func (h *Handler) predict(c *gin.Context) {
	var form predictForm
	if ok := h.bindFormOrBadRequest(c, &form, "predict_bad_form"); !ok {
		return
	}

	p, err := h.services.Predict(c.Request.Context(), service.PredictInput{
		CropType: form.CropType,
		District: form.District,
		Year:     *form.Year,
	})
	if err != nil {
		h.serverError(c, "predict_failed", err,
			"crop_type", form.CropType, "district", form.District, "year", *form.Year)
		return
	}

	h.log.Infow("predict_recorded",
		"id", p.ID,
		"user", currentUser(c),
		"crop_type", p.CropType,
		"year", p.Year,
		"predicted_price", p.PredictedPrice,
	)
	c.Redirect(http.StatusFound, "/prediction_result")
}

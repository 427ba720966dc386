package service

import (
	"context"
	"fmt"
	"strings"

	"crop_forecast/internal/forecast"
	"crop_forecast/internal/models"
	"crop_forecast/internal/repository"
)

type PredictionService struct {
	engine Forecaster
	repo   repository.PredictionRepo
}

func NewPredictionService(engine Forecaster, repo repository.PredictionRepo) *PredictionService {
	return &PredictionService{engine: engine, repo: repo}
}

// Predict forecasts the price for in.Year and appends the result to the
// store. Insert and forecast are not in one transaction; a failed insert
// leaves only the chart file behind.
func (s *PredictionService) Predict(ctx context.Context, in PredictInput) (models.Prediction, error) {
	in.CropType = strings.TrimSpace(in.CropType)
	in.District = strings.TrimSpace(in.District)

	res, err := s.engine.Forecast(ctx, forecast.Request{
		CropType: in.CropType,
		District: in.District,
		Year:     in.Year,
	})
	if err != nil {
		return models.Prediction{}, fmt.Errorf("forecast %s/%s/%d: %w", in.CropType, in.District, in.Year, err)
	}

	p := models.Prediction{
		CropType:       in.CropType,
		District:       in.District,
		Year:           in.Year,
		PredictedPrice: res.PredictedPrice,
		CurrentPrice:   res.CurrentPrice,
		PredictionDate: res.Date,
	}
	id, err := s.repo.Record(ctx, p)
	if err != nil {
		return models.Prediction{}, err
	}
	p.ID = id
	return p, nil
}

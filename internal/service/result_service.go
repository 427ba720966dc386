package service

import (
	"context"
	"errors"
	"strings"

	"crop_forecast/internal/models"
	"crop_forecast/internal/repository"
)

type ResultService struct {
	repo repository.PredictionRepo
}

func NewResultService(repo repository.PredictionRepo) *ResultService {
	return &ResultService{repo: repo}
}

var ErrInvalidDateRange = errors.New("invalid date range: from must be <= to")

// Latest returns the most recent prediction, nil if none was stored yet.
func (s *ResultService) Latest(ctx context.Context) (*models.Prediction, error) {
	return s.repo.Latest(ctx)
}

func (s *ResultService) History(ctx context.Context, f HistoryFilter) ([]models.Prediction, error) {
	from, to := normalizeToUTC(f.From), normalizeToUTC(f.To)
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, ErrInvalidDateRange
	}
	return s.repo.List(ctx, repository.PredictionFilter{
		CropType: strings.TrimSpace(f.CropType),
		District: strings.TrimSpace(f.District),
		From:     from,
		To:       to,
		Limit:    f.Limit,
	})
}

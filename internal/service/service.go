package service

import (
	"context"
	"time"

	"crop_forecast/internal/forecast"
	"crop_forecast/internal/models"
	"crop_forecast/internal/repository"
)

// Authorization covers the credential store and the signed session cookie.
type Authorization interface {
	Register(ctx context.Context, in RegisterInput) error
	Authenticate(ctx context.Context, username, password string) error
	IssueSession(username string) (string, error)
	ParseSession(token string) (string, error)
}

// Forecaster is satisfied by *forecast.Engine.
type Forecaster interface {
	Forecast(ctx context.Context, req forecast.Request) (forecast.Result, error)
}

// Predictor runs a forecast and records it.
type Predictor interface {
	Predict(ctx context.Context, in PredictInput) (models.Prediction, error)
}

// Results exposes stored predictions read-only.
type Results interface {
	Latest(ctx context.Context) (*models.Prediction, error)
	History(ctx context.Context, f HistoryFilter) ([]models.Prediction, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Predictor
	Results
}

// SessionConfig holds the cookie signing settings.
type SessionConfig struct {
	SigningKey string
	TTL        time.Duration
}

func NewService(repos *repository.Repository, engine Forecaster, sessions SessionConfig) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Auth, sessions),
		Predictor:     NewPredictionService(engine, repos.Predictions),
		Results:       NewResultService(repos.Predictions),
	}
}

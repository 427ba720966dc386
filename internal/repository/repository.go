package repository

import (
	"context"
	"time"

	"crop_forecast/internal/models"

	"github.com/jmoiron/sqlx"
)

type Authorization interface {
	Create(ctx context.Context, u models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type PredictionRepo interface {
	Record(ctx context.Context, p models.Prediction) (int64, error)
	Latest(ctx context.Context) (*models.Prediction, error)
	List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error)
}

// PredictionFilter narrows a history query. Zero values mean "no bound".
type PredictionFilter struct {
	CropType string
	District string
	From     time.Time // inclusive, compared against prediction_date
	To       time.Time // inclusive
	Limit    int
}

type Repository struct {
	Auth        Authorization
	Predictions PredictionRepo
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Auth:        NewUserRepository(db),
		Predictions: NewPredictionSQLite(db),
	}
}

package models

import "time"

// Prediction is one stored forecast. Rows are append-only and not linked to a user.
type Prediction struct {
	ID             int64     `json:"id" db:"id"`
	CropType       string    `json:"crop_type" db:"crop_type"`
	District       string    `json:"district" db:"district"`
	Year           int       `json:"year" db:"year"`
	PredictedPrice float64   `json:"predicted_price" db:"predicted_price"` // ₹/ton
	CurrentPrice   float64   `json:"current_price" db:"current_price"`     // ₹/ton, synthetic
	PredictionDate time.Time `json:"prediction_date" db:"prediction_date"`
}

// PricePoint is a single (year, price) pair, used both for the historical
// dataset and for the synthesized trajectory.
type PricePoint struct {
	Year  int     `json:"year"`
	Price float64 `json:"price"`
}

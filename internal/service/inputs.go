package service

import "time"

// RegisterInput mirrors the registration form.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Phone    string
	Password string
}

// PredictInput mirrors the forecast form.
type PredictInput struct {
	CropType string
	District string
	Year     int
}

// HistoryFilter narrows the prediction history by crop, district and date.
type HistoryFilter struct {
	CropType string
	District string
	From     time.Time // inclusive; zero means no lower bound
	To       time.Time // inclusive; zero means no upper bound
	Limit    int
}

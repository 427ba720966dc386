package forecast

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"crop_forecast/internal/models"
)

// Noise bands applied around the point estimate.
const (
	DefaultHorizon         = 5
	DefaultCurrentNoise    = 0.10
	DefaultTrajectoryNoise = 0.05
)

// Config locates the dataset and chart and tunes the regressor.
type Config struct {
	DatasetPath string
	YearColumn  string
	PriceColumn string
	ChartPath   string
	Trees       int
}

// Request is one forecast query. Year is not checked against the dataset range.
type Request struct {
	CropType string
	District string
	Year     int
}

// Result carries the point estimate and the synthetic values derived from it.
type Result struct {
	PredictedPrice float64
	// CurrentPrice is the prediction perturbed by ±10%; a placeholder, not a market quote.
	CurrentPrice float64
	// Trajectory is the prediction perturbed independently by ±5% for each of
	// the following years, not a per-year model output.
	Trajectory []models.PricePoint
	ChartPath  string
	Date       time.Time
}

// Engine fits a fresh forest on every call; the dataset is re-read each time.
type Engine struct {
	cfg     Config
	newRand func() *rand.Rand
	now     func() time.Time
}

func NewEngine(cfg Config) *Engine {
	if cfg.YearColumn == "" {
		cfg.YearColumn = DefaultYearColumn
	}
	if cfg.PriceColumn == "" {
		cfg.PriceColumn = DefaultPriceColumn
	}
	return &Engine{
		cfg: cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
}

// Forecast runs load → fit → predict → perturb → chart.
func (e *Engine) Forecast(ctx context.Context, req Request) (Result, error) {
	series, err := LoadSeries(e.cfg.DatasetPath, e.cfg.YearColumn, e.cfg.PriceColumn)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	xs := make([]float64, len(series))
	ys := make([]float64, len(series))
	for i, pt := range series {
		xs[i] = float64(pt.Year)
		ys[i] = pt.Price
	}

	rng := e.newRand()
	forest := NewForest(e.cfg.Trees)
	if err := forest.Fit(xs, ys, rng); err != nil {
		return Result{}, fmt.Errorf("fit forest on %q: %w", e.cfg.DatasetPath, err)
	}
	predicted := forest.Predict(float64(req.Year))

	res := Result{
		PredictedPrice: predicted,
		CurrentPrice:   jitter(rng, predicted, DefaultCurrentNoise),
		Trajectory:     Trajectory(rng, req.Year, predicted, DefaultHorizon, DefaultTrajectoryNoise),
		ChartPath:      e.cfg.ChartPath,
		Date:           e.now(),
	}

	if e.cfg.ChartPath != "" {
		if err := RenderChart(e.cfg.ChartPath, req.CropType, res.Trajectory); err != nil {
			return Result{}, err
		}
	}
	return res, nil
}

// Trajectory returns horizon points for year+1..year+horizon, each an
// independent ±band perturbation of price. Years saturate at the int range.
func Trajectory(rng *rand.Rand, year int, price float64, horizon int, band float64) []models.PricePoint {
	out := make([]models.PricePoint, horizon)
	for i := range out {
		out[i] = models.PricePoint{Year: addYears(year, i+1), Price: jitter(rng, price, band)}
	}
	return out
}

// jitter scales v by a factor drawn uniformly from [1-band, 1+band).
func jitter(rng *rand.Rand, v, band float64) float64 {
	return v * (1 + (rng.Float64()*2-1)*band)
}

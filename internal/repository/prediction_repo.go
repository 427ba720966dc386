package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"crop_forecast/internal/models"

	"github.com/jmoiron/sqlx"
)

type PredictionSQLite struct {
	db *sqlx.DB
}

func NewPredictionSQLite(db *sqlx.DB) *PredictionSQLite { return &PredictionSQLite{db: db} }

var _ PredictionRepo = (*PredictionSQLite)(nil)

const (
	insertPredictionSQL = `
		INSERT INTO crop_predictions (crop_type, district, year, predicted_price, current_price, prediction_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	selectPredictionColumns = `SELECT id, crop_type, district, year, predicted_price, current_price, prediction_date FROM crop_predictions`

	selectLatestPredictionSQL = selectPredictionColumns + ` ORDER BY id DESC LIMIT 1`

	defaultListLimit = 100
	maxListLimit     = 1000
)

// truncateToDate keeps only the calendar day in UTC; prediction_date is a DATE column.
func truncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Record appends one prediction row and returns its id.
func (r *PredictionSQLite) Record(ctx context.Context, p models.Prediction) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertPredictionSQL,
		p.CropType,
		p.District,
		p.Year,
		p.PredictedPrice,
		p.CurrentPrice,
		truncateToDate(p.PredictionDate),
	)
	if err != nil {
		return 0, fmt.Errorf("insert prediction for %q: %w", p.CropType, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for prediction: %w", err)
	}
	return id, nil
}

// Latest returns the most recently inserted row (highest id), or (nil, nil) when empty.
func (r *PredictionSQLite) Latest(ctx context.Context) (*models.Prediction, error) {
	var p models.Prediction
	if err := r.db.GetContext(ctx, &p, selectLatestPredictionSQL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select latest prediction: %w", err)
	}
	p.PredictionDate = p.PredictionDate.UTC()
	return &p, nil
}

// List returns predictions matching f, newest first.
func (r *PredictionSQLite) List(ctx context.Context, f PredictionFilter) ([]models.Prediction, error) {
	var (
		conds []string
		args  []any
	)

	if crop := strings.TrimSpace(f.CropType); crop != "" {
		conds = append(conds, "crop_type = ?")
		args = append(args, crop)
	}
	if district := strings.TrimSpace(f.District); district != "" {
		conds = append(conds, "district = ?")
		args = append(args, district)
	}
	if !f.From.IsZero() {
		conds = append(conds, "prediction_date >= ?")
		args = append(args, truncateToDate(f.From))
	}
	if !f.To.IsZero() {
		conds = append(conds, "prediction_date <= ?")
		args = append(args, truncateToDate(f.To))
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	q := selectPredictionColumns
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id DESC LIMIT ?"
	args = append(args, limit)

	out := make([]models.Prediction, 0, 16)
	if err := r.db.SelectContext(ctx, &out, q, args...); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	for i := range out {
		out[i].PredictionDate = out[i].PredictionDate.UTC()
	}
	return out, nil
}

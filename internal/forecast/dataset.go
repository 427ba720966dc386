package forecast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"crop_forecast/internal/models"

	"github.com/xuri/excelize/v2"
)

// Default header names of the historical price workbook.
const (
	DefaultYearColumn  = "Year"
	DefaultPriceColumn = "Price (₹/ton)"
)

var (
	ErrNoSheet       = errors.New("dataset has no worksheet")
	ErrMissingColumn = errors.New("dataset header is missing a required column")
)

// LoadSeries reads (year, price) pairs from the first worksheet of an .xlsx
// file. The first non-empty row is the header; columns are located by name.
// Blank rows are skipped, any other malformed row is an error.
func LoadSeries(path, yearColumn, priceColumn string) ([]models.PricePoint, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: %q", ErrNoSheet, path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return parseRows(rows, yearColumn, priceColumn)
}

func parseRows(rows [][]string, yearColumn, priceColumn string) ([]models.PricePoint, error) {
	header := -1
	for i, row := range rows {
		if !isBlank(row) {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, fmt.Errorf("%w: %q, %q (empty sheet)", ErrMissingColumn, yearColumn, priceColumn)
	}

	yearIdx := columnIndex(rows[header], yearColumn)
	if yearIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, yearColumn)
	}
	priceIdx := columnIndex(rows[header], priceColumn)
	if priceIdx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingColumn, priceColumn)
	}

	series := make([]models.PricePoint, 0, len(rows)-header)
	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		// spreadsheet rows are 1-based
		line := i + 1

		year, err := parseYear(cell(row, yearIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		price, err := parseNumber(cell(row, priceIdx))
		if err != nil {
			return nil, fmt.Errorf("row %d: price: %w", line, err)
		}
		series = append(series, models.PricePoint{Year: year, Price: price})
	}
	return series, nil
}

func columnIndex(header []string, name string) int {
	want := strings.TrimSpace(name)
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, errors.New("empty cell")
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// parseYear accepts "2015" as well as the "2015.0" excel sometimes stores.
func parseYear(s string) (int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return 0, fmt.Errorf("year: %w", err)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("year: not an integer: %q", s)
	}
	return int(v), nil
}

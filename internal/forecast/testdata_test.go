package forecast

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook saves rows into Sheet1 of a fresh .xlsx under t.TempDir().
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "AgriData.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func priceRows() [][]any {
	return [][]any{
		{"Year", "Price (₹/ton)"},
		{2015, 1500.0},
		{2016, 1550.0},
		{2017, 1620.0},
		{2018, 1700.0},
		{2019, 1810.0},
		{2020, 1900.0},
		{2021, 2050.0},
		{2022, 2200.0},
	}
}

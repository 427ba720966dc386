package forecast

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowTree_FullDepthReproducesTrainingPoints(t *testing.T) {
	xs := []float64{2019, 2015, 2017, 2016, 2018}
	ys := []float64{50, 10, 30, 20, 40}

	root := growTree(xs, ys, defaultMinSamplesSplit)
	for i := range xs {
		assert.Equal(t, ys[i], root.predict(xs[i]), "x=%v", xs[i])
	}
	// beyond the data the tree stays on the edge leaves
	assert.Equal(t, 50.0, root.predict(2030))
	assert.Equal(t, 10.0, root.predict(1990))
}

func TestGrowTree_DuplicateXAveraged(t *testing.T) {
	root := growTree([]float64{1, 1, 2}, []float64{4, 6, 9}, defaultMinSamplesSplit)
	assert.Equal(t, 5.0, root.predict(1))
	assert.Equal(t, 9.0, root.predict(2))
}

func TestForest_ConstantSeries(t *testing.T) {
	f := NewForest(20)
	require.NoError(t, f.Fit([]float64{1, 2, 3}, []float64{7, 7, 7}, rand.New(rand.NewPCG(1, 1))))
	assert.Equal(t, 7.0, f.Predict(99))
}

func TestForest_PredictionStaysWithinObservedRange(t *testing.T) {
	var xs, ys []float64
	for _, row := range priceRows()[1:] {
		xs = append(xs, float64(row[0].(int)))
		ys = append(ys, row[1].(float64))
	}

	f := NewForest(0)
	require.Equal(t, DefaultTrees, f.Trees)
	require.NoError(t, f.Fit(xs, ys, rand.New(rand.NewPCG(42, 7))))

	for _, year := range []float64{1990, 2015, 2018.5, 2026, 2100} {
		p := f.Predict(year)
		assert.GreaterOrEqual(t, p, 1500.0, "year %v", year)
		assert.LessOrEqual(t, p, 2200.0, "year %v", year)
	}
	// later years should not forecast below earlier ones on a rising series
	assert.GreaterOrEqual(t, f.Predict(2026), f.Predict(2015))
}

func TestForest_Errors(t *testing.T) {
	f := NewForest(5)
	assert.ErrorIs(t, f.Fit(nil, nil, rand.New(rand.NewPCG(1, 1))), ErrEmptySeries)
	assert.ErrorIs(t, f.Fit([]float64{1}, []float64{1, 2}, rand.New(rand.NewPCG(1, 1))), ErrEmptySeries)
	assert.Equal(t, 0.0, f.Predict(1))
}

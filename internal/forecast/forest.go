package forecast

import (
	"errors"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Regressor defaults, matching the usual random-forest settings.
const (
	DefaultTrees           = 100
	defaultMinSamplesSplit = 2
)

var ErrEmptySeries = errors.New("cannot fit on an empty series")

// Forest is a bagged ensemble of regression trees over a single feature.
// Each tree is grown to full depth on a bootstrap sample; the prediction is
// the mean of the trees.
type Forest struct {
	Trees           int
	MinSamplesSplit int

	roots []*treeNode
}

// NewForest returns an unfitted forest with n trees (DefaultTrees if n <= 0).
func NewForest(n int) *Forest {
	if n <= 0 {
		n = DefaultTrees
	}
	return &Forest{Trees: n, MinSamplesSplit: defaultMinSamplesSplit}
}

type treeNode struct {
	leaf      bool
	value     float64
	threshold float64
	left      *treeNode
	right     *treeNode
}

// Fit grows the ensemble. rng drives the bootstrap sampling.
func (f *Forest) Fit(xs, ys []float64, rng *rand.Rand) error {
	if len(xs) == 0 || len(xs) != len(ys) {
		return ErrEmptySeries
	}
	minSplit := f.MinSamplesSplit
	if minSplit < 2 {
		minSplit = defaultMinSamplesSplit
	}

	n := len(xs)
	f.roots = make([]*treeNode, 0, f.Trees)
	bx := make([]float64, n)
	by := make([]float64, n)
	for t := 0; t < f.Trees; t++ {
		for i := 0; i < n; i++ {
			j := rng.IntN(n)
			bx[i], by[i] = xs[j], ys[j]
		}
		f.roots = append(f.roots, growTree(bx, by, minSplit))
	}
	return nil
}

// Predict returns the ensemble mean at x. An unfitted forest predicts 0.
func (f *Forest) Predict(x float64) float64 {
	if len(f.roots) == 0 {
		return 0
	}
	preds := make([]float64, len(f.roots))
	for i, root := range f.roots {
		preds[i] = root.predict(x)
	}
	return stat.Mean(preds, nil)
}

func (n *treeNode) predict(x float64) float64 {
	for !n.leaf {
		if x <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type sample struct{ x, y float64 }

// growTree copies its inputs, so callers may reuse the slices.
func growTree(xs, ys []float64, minSplit int) *treeNode {
	samples := make([]sample, len(xs))
	for i := range xs {
		samples[i] = sample{xs[i], ys[i]}
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].x < samples[j].x })
	return split(samples, minSplit)
}

// split expects samples sorted by x.
func split(samples []sample, minSplit int) *treeNode {
	ys := make([]float64, len(samples))
	for i, s := range samples {
		ys[i] = s.y
	}
	mean := stat.Mean(ys, nil)

	if len(samples) < minSplit || samples[0].x == samples[len(samples)-1].x || floats.Max(ys) == floats.Min(ys) {
		return &treeNode{leaf: true, value: mean}
	}

	// prefix sums give the squared error of each candidate split in O(n)
	n := len(samples)
	prefix := make([]float64, n+1)
	prefixSq := make([]float64, n+1)
	for i, y := range ys {
		prefix[i+1] = prefix[i] + y
		prefixSq[i+1] = prefixSq[i] + y*y
	}
	sse := func(lo, hi int) float64 {
		cnt := float64(hi - lo)
		s := prefix[hi] - prefix[lo]
		return (prefixSq[hi] - prefixSq[lo]) - s*s/cnt
	}

	best, bestErr := -1, 0.0
	for i := 1; i < n; i++ {
		if samples[i].x == samples[i-1].x {
			continue
		}
		e := sse(0, i) + sse(i, n)
		if best < 0 || e < bestErr {
			best, bestErr = i, e
		}
	}
	if best < 0 {
		return &treeNode{leaf: true, value: mean}
	}

	return &treeNode{
		threshold: (samples[best-1].x + samples[best].x) / 2,
		left:      split(samples[:best], minSplit),
		right:     split(samples[best:], minSplit),
	}
}

package pitch

import (
	"math"
	"sort"
)

// Estimator recovers the dominant 1-D repeat distance from a set of scalar
// coordinates. Implementations return a structured Error (code
// INSUFFICIENT_UNIQUE_COORDS) when the sample is too small to say anything.
type Estimator interface {
	Estimate(values []float64) (float64, error)
}

// ValidEstimators is the set of recognized estimator names.
// Shared by Config.Validate() and NewEstimator() to avoid duplication.
var ValidEstimators = map[string]bool{"": true, "mode-bin": true, "nearest-gap": true}

// NewEstimator creates an X-axis estimator by name. An empty string defaults
// to the robust mode-bin strategy.
func NewEstimator(name string, cfg EstimateConfig) (Estimator, error) {
	switch name {
	case "", "mode-bin":
		return &ModeBinEstimator{MaxGap: cfg.MaxGap, BinFrac: cfg.BinFracX}, nil
	case "nearest-gap":
		return &NearestGapEstimator{}, nil
	default:
		return nil, NewError(CodeInvalidPolicy, "unknown estimator %q; valid estimators: [mode-bin, nearest-gap]", name)
	}
}

// ModeBinEstimator finds the dominant recurring spacing via histogram-mode
// plus median. Pairwise differences up to MaxGap neighbors apart cluster
// tightly around the true pitch even when overlapping sub-arrays introduce
// rarer alternate gaps; summarizing the winning bucket by its median keeps a
// single skewed pair from dragging the estimate.
type ModeBinEstimator struct {
	MaxGap  int     // how many sorted neighbors ahead each coordinate pairs with
	BinFrac float64 // bucket width as a fraction of the coordinate range
}

// Estimate returns the pitch of the dominant spacing cluster. At least 3
// distinct coordinates are required.
func (e *ModeBinEstimator) Estimate(values []float64) (float64, error) {
	if e.MaxGap < 1 {
		return 0, NewError(CodeInvalidConfig, "mode-bin max gap must be >= 1, got %d", e.MaxGap)
	}
	u := uniqueSorted(values)
	n := len(u)
	if n < 3 {
		return 0, NewError(CodeInsufficientUniqueCoords,
			"mode-bin estimation needs at least 3 distinct coordinates, got %d", n)
	}
	var diffs []float64
	for i := 0; i < n; i++ {
		for j := i + 1; j < min(i+1+e.MaxGap, n); j++ {
			diffs = append(diffs, u[j]-u[i])
		}
	}
	return modeBinMedian(diffs, u[n-1]-u[0], e.BinFrac), nil
}

// NearestGapEstimator is the simple strategy: the smallest positive gap
// between adjacent distinct coordinates. Exact for clean single-array grids,
// fooled by noise and by multi-array captures; prefer ModeBinEstimator for
// anything measured rather than generated.
type NearestGapEstimator struct{}

// Estimate returns the minimum adjacent spacing of the distinct coordinates.
func (e *NearestGapEstimator) Estimate(values []float64) (float64, error) {
	u := uniqueSorted(values)
	if len(u) < 2 {
		return 0, NewError(CodeInsufficientUniqueCoords,
			"nearest-gap estimation needs at least 2 distinct coordinates, got %d", len(u))
	}
	minGap := math.Inf(1)
	for i := 1; i < len(u); i++ {
		if gap := u[i] - u[i-1]; gap < minGap {
			minGap = gap
		}
	}
	return minGap, nil
}

// modeBinMedian buckets diffs by round(d/binWidth), picks the most populated
// bucket (first-seen wins ties), and returns the median of its members.
// rng scales the bucket width; epsFloor keeps it positive for zero-range
// samples.
func modeBinMedian(diffs []float64, rng, binFrac float64) float64 {
	binW := max(rng*binFrac, epsFloor)
	bins := make(map[int][]float64)
	var order []int
	for _, d := range diffs {
		k := int(math.Round(d / binW))
		if _, seen := bins[k]; !seen {
			order = append(order, k)
		}
		bins[k] = append(bins[k], d)
	}
	bestK := order[0]
	for _, k := range order[1:] {
		if len(bins[k]) > len(bins[bestK]) {
			bestK = k
		}
	}
	return median(bins[bestK])
}

// uniqueSorted returns the distinct values in ascending order.
func uniqueSorted(values []float64) []float64 {
	u := make([]float64, len(values))
	copy(u, values)
	sort.Float64s(u)
	out := u[:0]
	for i, v := range u {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// median of a non-empty sample; averages the middle pair for even sizes.
func median(values []float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 0 {
		return (s[n/2-1] + s[n/2]) / 2
	}
	return s[n/2]
}

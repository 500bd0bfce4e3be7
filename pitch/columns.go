package pitch

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ColumnAssignment partitions point indices into array columns under one
// pitch + phase parameterization of the X axis. Rebuilt per Y-pitch
// computation; not persisted across runs.
type ColumnAssignment struct {
	Columns map[int][]int // column index -> indices into the input slice
	Phase   float64       // the x reference that produced the winning map
}

// AssignColumns partitions xs into columns of width pitchX. The first
// phaseCandidates distinct sorted X values are tried as phase references;
// for each, a point lands in column n = round((x-ref)/pitchX) only when its
// reconstruction error stays within pitchX*tolFrac, and out-of-tolerance
// points stay unassigned rather than being forced into the nearest column.
// The candidate producing the most, most evenly populated columns wins:
// score = (non-empty column count, -population stdev of column sizes),
// compared lexicographically, first candidate winning ties.
func AssignColumns(xs []float64, pitchX, tolFrac float64, phaseCandidates int) ColumnAssignment {
	refs := uniqueSorted(xs)
	if len(refs) > phaseCandidates {
		refs = refs[:phaseCandidates]
	}
	tol := max(pitchX*tolFrac, epsFloor)

	best := ColumnAssignment{}
	var bestCount int
	var bestSpread float64
	for ci, ref := range refs {
		cmap := make(map[int][]int)
		for i, x := range xs {
			n := int(math.Round((x - ref) / pitchX))
			xHat := ref + float64(n)*pitchX
			if math.Abs(x-xHat) <= tol {
				cmap[n] = append(cmap[n], i)
			}
		}
		// Sum the stdev in sorted key order so equivalent candidates score
		// bit-identically and the strict comparison below really ties.
		keys := make([]int, 0, len(cmap))
		for n := range cmap {
			keys = append(keys, n)
		}
		sort.Ints(keys)
		var sizes []float64
		for _, n := range keys {
			if len(cmap[n]) > 0 {
				sizes = append(sizes, float64(len(cmap[n])))
			}
		}
		count := len(sizes)
		spread := 0.0
		if count > 1 {
			spread = stat.PopStdDev(sizes, nil)
		}
		if ci == 0 || count > bestCount || (count == bestCount && spread < bestSpread) {
			best = ColumnAssignment{Columns: cmap, Phase: ref}
			bestCount, bestSpread = count, spread
		}
	}
	return best
}

// ColumnwiseYPitch estimates the Y pitch from within-column consecutive
// spacings only, so sub-arrays offset in Y across columns cannot contaminate
// the estimate. Columns are visited in index order to keep bucket tie-breaks
// deterministic.
func ColumnwiseYPitch(points []Point, pitchX float64, cfg EstimateConfig) (float64, error) {
	xs := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
	}
	assign := AssignColumns(xs, pitchX, cfg.PhaseTolFrac, cfg.PhaseCandidates)
	return columnSpacingPitch(points, assign, cfg)
}

// columnSpacingPitch pools consecutive Y spacings within each assigned
// column and applies the mode-bin + median procedure with the looser Y bin
// width, tuned for the sparser within-column gap population.
func columnSpacingPitch(points []Point, assign ColumnAssignment, cfg EstimateConfig) (float64, error) {
	cols := make([]int, 0, len(assign.Columns))
	for n := range assign.Columns {
		cols = append(cols, n)
	}
	sort.Ints(cols)

	var dyAll []float64
	for _, n := range cols {
		idxs := assign.Columns[n]
		ys := make([]float64, len(idxs))
		for i, idx := range idxs {
			ys[i] = points[idx].Y
		}
		colY := uniqueSorted(ys)
		for i := 1; i < len(colY); i++ {
			dyAll = append(dyAll, colY[i]-colY[i-1])
		}
	}
	if len(dyAll) == 0 {
		return 0, NewError(CodeInsufficientColumnSpacings,
			"no column has 2 or more distinct Y values; cannot estimate Y pitch")
	}

	rng := 0.0
	if len(dyAll) > 1 {
		s := uniqueSorted(dyAll)
		rng = s[len(s)-1] - s[0]
	}
	return modeBinMedian(dyAll, rng, cfg.BinFracY), nil
}

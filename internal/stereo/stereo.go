// Package stereo implements the stereoscopic comparator: the two "eyes" are
// the extended temporal-semantic capital (value channel) and the SCAV health
// (state channel). Agreement between the channels across the candidate set
// is rank-based; disagreement per candidate is measured in z-score units so
// the two channels compare on a common scale.
package stereo

import (
	"math"
	"sort"

	"semgate/internal/metrics"
)

const stdFloor = 1e-9

// #region result
// Result is the comparator output over one candidate set.
type Result struct {
	// BestIndex selects the chosen candidate: highest extended capital among
	// executable candidates, falling back to the overall maximum when
	// nothing is executable. Ties resolve to the lower index.
	BestIndex int
	// Alignment is rank agreement for the chosen candidate: 1 when both
	// channels rank it identically, 0 when they rank it at opposite ends.
	Alignment float64
	// Gaps holds per-candidate channel disagreement in z-score units.
	Gaps []float64
	// GapMax is the largest per-candidate gap.
	GapMax float64
}

// #endregion result

// #region compare
// Compare runs the comparator over the evaluated candidate set.
func Compare(reports []*metrics.Report) Result {
	n := len(reports)
	if n == 0 {
		return Result{BestIndex: -1}
	}

	best := bestIndex(reports)
	if n == 1 {
		return Result{BestIndex: best, Alignment: 1.0, Gaps: []float64{0}}
	}

	value := make([]float64, n)
	health := make([]float64, n)
	for i, r := range reports {
		value[i] = r.TSCExtended
		health[i] = r.Health
	}

	valueRank := ranks(value)
	healthRank := ranks(health)
	alignment := 1.0 - math.Abs(float64(valueRank[best]-healthRank[best]))/float64(n-1)

	zValue := zscores(value)
	zHealth := zscores(health)
	gaps := make([]float64, n)
	gapMax := 0.0
	for i := range gaps {
		gaps[i] = math.Abs(zValue[i] - zHealth[i])
		if gaps[i] > gapMax {
			gapMax = gaps[i]
		}
	}
	return Result{BestIndex: best, Alignment: alignment, Gaps: gaps, GapMax: gapMax}
}

func bestIndex(reports []*metrics.Report) int {
	best, bestScore := -1, math.Inf(-1)
	for i, r := range reports {
		if r.Executable && r.TSCExtended > bestScore {
			best, bestScore = i, r.TSCExtended
		}
	}
	if best >= 0 {
		return best
	}
	for i, r := range reports {
		if r.TSCExtended > bestScore {
			best, bestScore = i, r.TSCExtended
		}
	}
	return best
}

// #endregion compare

// #region ranking
// ranks returns each candidate's descending rank (0 = highest). Ties keep
// input order so the result is deterministic.
func ranks(vals []float64) []int {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return vals[idx[a]] > vals[idx[b]]
	})
	rank := make([]int, len(vals))
	for pos, i := range idx {
		rank[i] = pos
	}
	return rank
}

// zscores standardizes the values. A degenerate channel (all values equal)
// maps to all zeros rather than dividing by nothing.
func zscores(vals []float64) []float64 {
	var mean float64
	for _, v := range vals {
		mean += v
	}
	mean /= float64(len(vals))
	var variance float64
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(vals))
	std := math.Sqrt(variance)
	out := make([]float64, len(vals))
	if std < stdFloor {
		return out
	}
	for i, v := range vals {
		out[i] = (v - mean) / std
	}
	return out
}

// #endregion ranking

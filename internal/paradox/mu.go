package paradox

import (
	"semgate/internal/candidate"
	"semgate/internal/graph"
)

// #region assign-mu
// AssignMu marks the chosen vector's untestable or negatively aligned atoms
// as MU while the trackers sit in Paradox, and returns one marker per
// affected node. MU constrains what the ethics layer and claim stances may assert;
// it never blocks execution.
func AssignMu(v *candidate.Vector, ts Trackers, cycle int) []Marker {
	if !ts.Sustained() {
		return nil
	}
	q := ts.quantity()
	var markers []Marker
	for _, a := range v.Atoms {
		indeterminate := a.Status == graph.StatusFloating
		conflicted := a.Scored && a.IdentityAlignment < 0
		if !indeterminate && !conflicted {
			continue
		}
		a.Status = graph.StatusMu
		markers = append(markers, Marker{NodeID: a.ID, Quantity: q, Cycle: cycle})
	}
	return markers
}

// MuDensity returns the fraction of MU atoms among the vector's members.
func MuDensity(v *candidate.Vector) float64 {
	if len(v.Atoms) == 0 {
		return 0
	}
	mu := 0
	for _, a := range v.Atoms {
		if a.Status == graph.StatusMu {
			mu++
		}
	}
	return float64(mu) / float64(len(v.Atoms))
}

// #endregion assign-mu

package session

import (
	"semgate/internal/paradox"
	"semgate/internal/vecspace"
)

// #region history
// History is a fixed-capacity FIFO of float64 samples. Oldest samples fall
// off the front once the capacity is reached.
type History struct {
	Cap    int       `json:"cap"`
	Values []float64 `json:"values"`
}

// Push appends a sample, evicting the oldest when full.
func (h *History) Push(v float64) {
	h.Values = append(h.Values, v)
	if h.Cap > 0 && len(h.Values) > h.Cap {
		h.Values = h.Values[len(h.Values)-h.Cap:]
	}
}

// Last returns up to k most recent samples, oldest first.
func (h *History) Last(k int) []float64 {
	if k <= 0 || len(h.Values) == 0 {
		return nil
	}
	if k > len(h.Values) {
		k = len(h.Values)
	}
	return h.Values[len(h.Values)-k:]
}

// Mean returns the mean of all retained samples, or fallback when empty.
func (h *History) Mean(fallback float64) float64 {
	if len(h.Values) == 0 {
		return fallback
	}
	var sum float64
	for _, v := range h.Values {
		sum += v
	}
	return sum / float64(len(h.Values))
}

// Len returns the number of retained samples.
func (h *History) Len() int { return len(h.Values) }

// #endregion history

// #region caps
// Caps sets the bounded history capacities.
type Caps struct {
	Metrics    int `yaml:"metrics"`    // alignment/gap/flow/mu windows
	Chosen     int `yaml:"chosen"`     // chosen-vector id window
	Directions int `yaml:"directions"` // direction autocorrelation window
}

// DefaultCaps returns the standard history capacities.
func DefaultCaps() Caps {
	return Caps{Metrics: 10, Chosen: 20, Directions: 10}
}

// #endregion caps

// #region adaptive-params
// Param is one adaptive parameter value with its update provenance.
type Param struct {
	Value  float64 `json:"value"`
	Cycle  int     `json:"cycle"`  // cycle that produced this value
	Source string  `json:"source"` // update rule identifier
}

// AdaptiveParams holds the learned coefficients. Beta and Delta are derived
// complements of Alpha and Gamma and are never stored independently.
type AdaptiveParams struct {
	Alpha     Param `json:"alpha"`
	Gamma     Param `json:"gamma"`
	Lambda    Param `json:"lambda"`
	BetaRetro Param `json:"beta_retro"`
}

// Beta returns 1 - alpha.
func (p AdaptiveParams) Beta() float64 { return 1.0 - p.Alpha.Value }

// Delta returns 1 - gamma.
func (p AdaptiveParams) Delta() float64 { return 1.0 - p.Gamma.Value }

// DefaultParams returns the cycle-zero coefficients.
func DefaultParams() AdaptiveParams {
	return AdaptiveParams{
		Alpha:     Param{Value: 0.5, Source: "init"},
		Gamma:     Param{Value: 0.4, Source: "init"},
		Lambda:    Param{Value: 0.8, Source: "init"},
		BetaRetro: Param{Value: 0.2, Source: "init"},
	}
}

// #endregion adaptive-params

// #region state
// State is the only object whose lifetime exceeds one measurement cycle. It
// is owned by the caller, passed by pointer, and mutated exactly once per
// completed cycle. The engine performs no locking; concurrent cycles against
// one State must be serialized externally.
type State struct {
	Cycle int `json:"cycle"`

	Alignment  History `json:"alignment"`
	GapMax     History `json:"gap_max"`
	Flow       History `json:"flow"`
	MuDensity  History `json:"mu_density"`
	Difficulty History `json:"difficulty"` // chosen-candidate difficulty, executable cycles only

	Chosen     []string       `json:"chosen"`
	Directions []vecspace.Vec `json:"directions"`

	Params   AdaptiveParams   `json:"params"`
	Trackers paradox.Trackers `json:"trackers"`
	Markers  []paradox.Marker `json:"markers"`

	caps Caps
}

// New creates an empty state with the given history capacities.
func New(caps Caps) *State {
	return &State{
		Alignment:  History{Cap: caps.Metrics},
		GapMax:     History{Cap: caps.Metrics},
		Flow:       History{Cap: caps.Metrics},
		MuDensity:  History{Cap: caps.Metrics},
		Difficulty: History{Cap: caps.Metrics},
		Params:     DefaultParams(),
		caps:       caps,
	}
}

// SetCaps restores capacities after deserialization.
func (s *State) SetCaps(caps Caps) {
	s.caps = caps
	s.Alignment.Cap = caps.Metrics
	s.GapMax.Cap = caps.Metrics
	s.Flow.Cap = caps.Metrics
	s.MuDensity.Cap = caps.Metrics
	s.Difficulty.Cap = caps.Metrics
}

// ResetParadox is the explicit Paradox → Clear transition: trackers return
// to Clear and accumulated markers are dropped.
func (s *State) ResetParadox() {
	s.Trackers.Reset()
	s.Markers = nil
}

// #endregion state

// Package paradox tracks sustained cross-cycle divergence. Each watched
// quantity runs a three-phase machine: Clear → Watching → Paradox. A single
// violating cycle only arms the watcher; Paradox requires the same condition
// to hold for three consecutive cycles, and is left only by explicit reset.
// MU is a stable indeterminate state, not a ternary average.
package paradox

// #region phase
// Phase is the detector phase for one tracked quantity.
type Phase string

const (
	PhaseClear    Phase = "clear"
	PhaseWatching Phase = "watching"
	PhaseParadox  Phase = "paradox"
)

// #endregion phase

// #region config
// Config holds the divergence thresholds.
type Config struct {
	AlignmentFloor float64 `yaml:"alignment_floor"` // violating when stereoscopic alignment drops below
	GapCeiling     float64 `yaml:"gap_ceiling"`     // violating when stereoscopic gap_max rises above
	SustainCycles  int     `yaml:"sustain_cycles"`  // consecutive violating cycles required for Paradox
}

// DefaultConfig returns the standard divergence thresholds.
func DefaultConfig() Config {
	return Config{
		AlignmentFloor: 0.3,
		GapCeiling:     1.5,
		SustainCycles:  3,
	}
}

// #endregion config

// #region tracker
// Tracker is the machine state for one quantity. Streak counts consecutive
// violating cycles; a single clean cycle resets the streak and disarms a
// watcher, but never clears an established Paradox.
type Tracker struct {
	Phase      Phase `json:"phase"`
	Streak     int   `json:"streak"`
	SinceCycle int   `json:"since_cycle"` // cycle at which Paradox was entered
}

// next returns the tracker state after observing one cycle.
func (t Tracker) next(violating bool, cycle int, sustain int) Tracker {
	if t.Phase == "" {
		t.Phase = PhaseClear
	}
	if !violating {
		t.Streak = 0
		if t.Phase == PhaseWatching {
			t.Phase = PhaseClear
		}
		return t
	}
	t.Streak++
	if t.Phase == PhaseClear {
		t.Phase = PhaseWatching
	}
	if t.Phase == PhaseWatching && t.Streak >= sustain {
		t.Phase = PhaseParadox
		t.SinceCycle = cycle
	}
	return t
}

// #endregion tracker

// #region trackers
// Trackers bundles the two watched quantities.
type Trackers struct {
	Alignment Tracker `json:"alignment"`
	Gap       Tracker `json:"gap"`
}

// Next returns the trackers after observing this cycle's stereoscopic
// alignment and gap, plus whether any quantity is in Paradox afterward.
// Pure: the receiver is not mutated.
func (ts Trackers) Next(alignment, gapMax float64, cycle int, cfg Config) (Trackers, bool) {
	out := Trackers{
		Alignment: ts.Alignment.next(alignment < cfg.AlignmentFloor, cycle, cfg.SustainCycles),
		Gap:       ts.Gap.next(gapMax > cfg.GapCeiling, cycle, cfg.SustainCycles),
	}
	return out, out.Sustained()
}

// Sustained reports whether any tracked quantity sits in Paradox.
func (ts Trackers) Sustained() bool {
	return ts.Alignment.Phase == PhaseParadox || ts.Gap.Phase == PhaseParadox
}

// Reset clears both trackers. This is the only Paradox → Clear transition.
func (ts *Trackers) Reset() {
	*ts = Trackers{
		Alignment: Tracker{Phase: PhaseClear},
		Gap:       Tracker{Phase: PhaseClear},
	}
}

// #endregion trackers

// #region marker
// Marker records a node marked indeterminate and the cycle at which the
// sustained divergence was first observed. Cleared only by explicit reset.
type Marker struct {
	NodeID   string `json:"node_id"`
	Quantity string `json:"quantity"` // "alignment" | "gap" | "both"
	Cycle    int    `json:"cycle"`
}

// Quantity name for the marker given the tracker phases.
func (ts Trackers) quantity() string {
	a := ts.Alignment.Phase == PhaseParadox
	g := ts.Gap.Phase == PhaseParadox
	switch {
	case a && g:
		return "both"
	case g:
		return "gap"
	default:
		return "alignment"
	}
}

// #endregion marker

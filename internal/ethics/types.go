package ethics

// #region config
// Config holds the ethics gate thresholds.
type Config struct {
	// Threshold is the minimum ethical coefficient for a candidate to stay
	// executable.
	Threshold float64 `yaml:"threshold"`
	// BlockingPenalty is added to an atom's harm probability when it is
	// graph-connected to a BLOCKING atom.
	BlockingPenalty float64 `yaml:"blocking_penalty"`
}

// DefaultConfig returns the standard gate thresholds.
func DefaultConfig() Config {
	return Config{
		Threshold:       0.4,
		BlockingPenalty: 0.2,
	}
}

// #endregion config

// #region set-result
// SetResult aggregates the gate verdict over a full candidate set.
type SetResult struct {
	Coefficients []float64 // per candidate, index-aligned
	Executable   []bool    // per candidate
	MeanScore    float64   // Ethical_score_candidates
	Blocked      float64   // Blocked_fraction
	ActiveCount  int
}

// #endregion set-result

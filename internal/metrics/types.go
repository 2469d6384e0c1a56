package metrics

import "semgate/internal/vecspace"

// #region config
// Config holds the metric engine constants.
type Config struct {
	// NodeCap scales the semantic-quality proxy (node count saturates here).
	NodeCap int `yaml:"node_cap"`
	// FlowNodeCap scales candidate difficulty for the flow computation.
	FlowNodeCap int `yaml:"flow_node_cap"`
	// DefaultSkill is used until difficulty history accumulates.
	DefaultSkill float64 `yaml:"default_skill"`
	// ChallengeSigma is the width of the flow challenge Gaussian.
	ChallengeSigma float64 `yaml:"challenge_sigma"`
	// PositionDecay is the per-position attention decay rate.
	PositionDecay float64 `yaml:"position_decay"`
	// ConsistencyWindow is how many recent directions feed autocorrelation.
	ConsistencyWindow int `yaml:"consistency_window"`
}

// DefaultConfig returns the standard metric constants.
func DefaultConfig() Config {
	return Config{
		NodeCap:           50,
		FlowNodeCap:       60,
		DefaultSkill:      0.6,
		ChallengeSigma:    0.2,
		PositionDecay:     0.3,
		ConsistencyWindow: 3,
	}
}

// #endregion config

// #region report
// Report is the full derived metric set for one candidate vector.
type Report struct {
	// Structural proxies.
	TI  float64 // temporal integrity: inverted variance of the temporality axis
	CI  float64 // coherence index: edge density
	AR  float64 // anchoring ratio
	SQ  float64 // semantic-quality proxy
	Phi float64 // integral-information proxy
	GBI float64 // broadcast proxy: clarity x coherence
	GNS float64 // novelty proxy
	RI  float64 // resonance index

	// Capital chain.
	SC          float64
	FP          float64
	TSCBase     float64
	TSCExtended float64

	// Attention shape.
	Direction       vecspace.Vec // normalized weighted sum of member vectors
	Magnitude       float64      // norm of the raw (un-normalized) direction
	Consistency     float64
	Resonance       float64
	Shadow          vecspace.Vec // normalized shadow sum
	Entropy         float64
	ShadowMagnitude float64
	Health          float64 // SCAV health

	// Alignment to the intent's ideal direction (cosine). Distinct from the
	// rank-based stereoscopic alignment; the two are not numerically related.
	IntentAlignment float64

	Flow       float64
	Difficulty float64

	EthicalCoefficient float64
	Executable         bool
}

// #endregion report

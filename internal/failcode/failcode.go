// Package failcode maps measured conditions to machine-readable fail codes.
// Every code carries a diagnosed cause and a concrete next step so a FAIL
// contract is actionable, not just a refusal. Codes are checked in a fixed
// severity order and the first hit becomes the primary diagnosis.
package failcode

import "fmt"

// #region codes
// Code identifies one failure condition.
type Code string

const (
	// OperationalizationMissing fires when no semantic graph could be built.
	OperationalizationMissing Code = "OPERATIONALIZATION_MISSING"
	// EthicalCollapse fires when the candidate set's mean ethical score is low.
	EthicalCollapse Code = "ETHICAL_COLLAPSE"
	// EthicalStall fires when most of the candidate set is blocked.
	EthicalStall Code = "ETHICAL_STALL"
	// ParadoxOverload fires in sustained paradox with heavy MU saturation.
	ParadoxOverload Code = "PARADOX_OVERLOAD"
	// StereoscopicMismatch fires in sustained paradox without MU saturation.
	StereoscopicMismatch Code = "STEREOSCOPIC_MISMATCH"
	// ShadowAvoidanceCritical fires when the shadow channel dominates while
	// SCAV health sits below the viability floor.
	ShadowAvoidanceCritical Code = "SHADOW_AVOIDANCE_CRITICAL"
	// FlowImpossible fires when flow has been pinned near zero for a full
	// observation window.
	FlowImpossible Code = "FLOW_IMPOSSIBLE"
	// VectorDecoherence fires when the chosen candidate has almost no
	// internal edge structure.
	VectorDecoherence Code = "VECTOR_DECOHERENCE"
	// TemporalCollapse fires when the temporal axis has lost integrity.
	TemporalCollapse Code = "TEMPORAL_COLLAPSE"
)

// Diagnosis is one resolved fail code with cause and remediation.
type Diagnosis struct {
	Code     Code   `json:"code"`
	Cause    string `json:"cause"`
	NextStep string `json:"next_step"`
}

// #endregion codes

// #region config
// Config holds the resolver thresholds.
type Config struct {
	EthicalFloor   float64 `yaml:"ethical_floor"`   // mean ethics score below this collapses
	BlockedCeiling float64 `yaml:"blocked_ceiling"` // blocked fraction above this stalls
	MuCeiling      float64 `yaml:"mu_ceiling"`      // MU density above this overloads a paradox
	ShadowCritical float64 `yaml:"shadow_critical"` // shadow magnitude above this is critical
	HealthFloor    float64 `yaml:"health_floor"`    // SCAV health below this is critical
	FlowFloor      float64 `yaml:"flow_floor"`      // flow below this counts toward impossibility
	FlowWindow     int     `yaml:"flow_window"`     // consecutive low-flow cycles required
	CoherenceFloor float64 `yaml:"coherence_floor"` // chosen CI below this decoheres
	TemporalFloor  float64 `yaml:"temporal_floor"`  // chosen TI below this collapses
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		EthicalFloor:   0.4,
		BlockedCeiling: 0.6,
		MuCeiling:      0.3,
		ShadowCritical: 0.7,
		HealthFloor:    0.3,
		FlowFloor:      0.1,
		FlowWindow:     5,
		CoherenceFloor: 0.05,
		TemporalFloor:  0.2,
	}
}

// #endregion config

// #region input
// Input is the condition snapshot the resolver inspects. All values refer to
// the current cycle and the chosen candidate unless noted.
type Input struct {
	EmptyGraph bool

	EthicalMean     float64 // mean coefficient over active candidates
	BlockedFraction float64

	Sustained bool // paradox trackers in sustained state
	MuDensity float64

	ShadowMagnitude float64
	Health          float64

	Flow        float64
	FlowHistory []float64 // prior cycles, oldest first

	CI float64
	TI float64
}

// #endregion input

// #region resolve
// Resolve evaluates every condition and returns the primary diagnosis plus
// any secondary ones, ordered by severity. A nil primary means no failure.
func Resolve(in Input, cfg Config) (primary *Diagnosis, secondary []Diagnosis) {
	var hits []Diagnosis

	if in.EmptyGraph {
		hits = append(hits, Diagnosis{
			Code:     OperationalizationMissing,
			Cause:    "no semantic atoms could be extracted from the input",
			NextStep: "restate the request with at least one concrete, observable claim",
		})
	}
	if in.EthicalMean < cfg.EthicalFloor {
		hits = append(hits, Diagnosis{
			Code:     EthicalCollapse,
			Cause:    fmt.Sprintf("mean ethical coefficient %.2f is below the %.2f execution floor", in.EthicalMean, cfg.EthicalFloor),
			NextStep: "remove the harmful or manipulative framing and re-measure",
		})
	}
	if in.BlockedFraction > cfg.BlockedCeiling {
		hits = append(hits, Diagnosis{
			Code:     EthicalStall,
			Cause:    fmt.Sprintf("%.0f%% of candidate vectors are ethically blocked", in.BlockedFraction*100),
			NextStep: "rework or drop the blocked atoms until an executable candidate remains",
		})
	}
	if in.Sustained {
		if in.MuDensity > cfg.MuCeiling {
			hits = append(hits, Diagnosis{
				Code:     ParadoxOverload,
				Cause:    fmt.Sprintf("sustained paradox with MU density %.2f above the %.2f ceiling", in.MuDensity, cfg.MuCeiling),
				NextStep: "resolve or discard the MU-marked atoms, then reset the paradox trackers",
			})
		} else {
			hits = append(hits, Diagnosis{
				Code:     StereoscopicMismatch,
				Cause:    "value and state channels have disagreed for the full sustain window",
				NextStep: "inspect the gap-dominant candidates and re-anchor the divergent atoms",
			})
		}
	}
	if in.ShadowMagnitude > cfg.ShadowCritical && in.Health < cfg.HealthFloor {
		hits = append(hits, Diagnosis{
			Code:     ShadowAvoidanceCritical,
			Cause:    fmt.Sprintf("shadow magnitude %.2f, health %.2f", in.ShadowMagnitude, in.Health),
			NextStep: "surface the avoided atoms explicitly instead of routing around them",
		})
	}
	if lowFlowSustained(in, cfg) {
		hits = append(hits, Diagnosis{
			Code:     FlowImpossible,
			Cause:    fmt.Sprintf("flow has stayed below %.2f for %d consecutive cycles", cfg.FlowFloor, cfg.FlowWindow),
			NextStep: "reduce candidate difficulty or raise presence density before re-measuring",
		})
	}
	if in.CI < cfg.CoherenceFloor {
		hits = append(hits, Diagnosis{
			Code:     VectorDecoherence,
			Cause:    fmt.Sprintf("chosen vector coherence %.3f is below the %.3f floor", in.CI, cfg.CoherenceFloor),
			NextStep: "connect the isolated atoms with explicit relations",
		})
	}
	if in.TI < cfg.TemporalFloor {
		hits = append(hits, Diagnosis{
			Code:     TemporalCollapse,
			Cause:    fmt.Sprintf("temporal integrity %.2f is below the %.2f floor", in.TI, cfg.TemporalFloor),
			NextStep: "separate past observations from future speculation in the input",
		})
	}

	if len(hits) == 0 {
		return nil, nil
	}
	return &hits[0], hits[1:]
}

// lowFlowSustained requires the current cycle plus the last FlowWindow-1
// recorded cycles to all sit below the floor. Too little history never fires.
func lowFlowSustained(in Input, cfg Config) bool {
	need := cfg.FlowWindow - 1
	if need < 0 || len(in.FlowHistory) < need {
		return false
	}
	if in.Flow >= cfg.FlowFloor {
		return false
	}
	for _, f := range in.FlowHistory[len(in.FlowHistory)-need:] {
		if f >= cfg.FlowFloor {
			return false
		}
	}
	return true
}

// #endregion resolve

// Package session owns the bounded cross-cycle state and the adaptive
// parameter learning. All learning rules are smoothed: exponential moving
// average for alpha, momentum damping for gamma, a learning-rate bounded
// step for lambda, and an exponentially weighted share for beta_retro.
package session

import (
	"math"

	"semgate/internal/paradox"
	"semgate/internal/vecspace"
)

// #region learning-constants
const (
	emaDecayAlpha  = 0.15 // lower = more smoothing
	momentumFactor = 0.9
	learningRate   = 0.1
	retroWindow    = 5
	retroCeiling   = 0.5
)

// #endregion learning-constants

// #region observation
// Observation carries one completed cycle's outputs into the state update.
type Observation struct {
	Alignment    float64 // stereoscopic (rank) alignment
	GapMax       float64
	Flow         float64
	MuDensity    float64
	Difficulty   float64 // chosen candidate's difficulty
	Executable   bool    // whether the chosen candidate passed the gate
	ChosenID     string
	Direction    vecspace.Vec // chosen candidate's normalized direction
	Health       float64      // SCAV health, drives alpha
	EthicalScore float64      // drives gamma urgency
	Trackers     paradox.Trackers
	Markers      []paradox.Marker
}

// #endregion observation

// #region update
// Update applies one completed cycle to the state: histories, trackers,
// markers, adaptive parameters, and the cycle counter. Called exactly once
// per cycle, after the verdict is computed.
func (s *State) Update(obs Observation) {
	s.Cycle++

	s.Alignment.Push(obs.Alignment)
	s.GapMax.Push(obs.GapMax)
	s.Flow.Push(obs.Flow)
	s.MuDensity.Push(obs.MuDensity)
	// Only successful cycles feed the skill estimate.
	if obs.Executable {
		s.Difficulty.Push(obs.Difficulty)
	}

	s.Chosen = append(s.Chosen, obs.ChosenID)
	if s.caps.Chosen > 0 && len(s.Chosen) > s.caps.Chosen {
		s.Chosen = s.Chosen[len(s.Chosen)-s.caps.Chosen:]
	}
	s.Directions = append(s.Directions, obs.Direction)
	if s.caps.Directions > 0 && len(s.Directions) > s.caps.Directions {
		s.Directions = s.Directions[len(s.Directions)-s.caps.Directions:]
	}

	s.Trackers = obs.Trackers
	for _, m := range obs.Markers {
		if !s.hasMarker(m.NodeID) {
			s.Markers = append(s.Markers, m)
		}
	}

	s.updateParams(obs)
}

// hasMarker reports whether the node already carries a paradox marker. A
// paradox sustained over many cycles keeps its original marker instead of
// accumulating duplicates.
func (s *State) hasMarker(nodeID string) bool {
	for _, m := range s.Markers {
		if m.NodeID == nodeID {
			return true
		}
	}
	return false
}

// AdvanceEmpty advances the cycle counter without touching the metric
// histories. Used for empty-input cycles: nothing was measured, and
// appending zeros would poison the sustained-condition windows.
func (s *State) AdvanceEmpty() {
	s.Cycle++
}

// #endregion update

// #region param-learning
// updateParams runs the per-cycle learning step. Every new value is tagged
// with the producing cycle and its rule name.
func (s *State) updateParams(obs Observation) {
	cycle := s.Cycle

	// Alpha: EMA of resonance-index impact, proxied by SCAV health.
	alpha := emaDecayAlpha*obs.Health + (1.0-emaDecayAlpha)*s.Params.Alpha.Value
	s.Params.Alpha = Param{Value: clamp(alpha, 0, 1), Cycle: cycle, Source: "ema_resonance_impact"}

	// Gamma: momentum-damped step toward the urgency signal.
	urgency := 1.0 - obs.EthicalScore
	target := clamp(0.2+0.6*urgency, 0.2, 0.8)
	gamma := momentumFactor*s.Params.Gamma.Value + (1.0-momentumFactor)*target
	s.Params.Gamma = Param{Value: gamma, Cycle: cycle, Source: "momentum_urgency"}

	// Lambda: learning-rate bounded step based on observed effect.
	lambda := s.Params.Lambda.Value + learningRate*(obs.Alignment-0.5)
	s.Params.Lambda = Param{Value: clamp(lambda, 0.5, 1.0), Cycle: cycle, Source: "lr_observed_effect"}

	// BetaRetro: exponentially weighted share of recent gap magnitude,
	// clamped to [0, 0.5].
	retro := s.Params.BetaRetro.Value
	if s.GapMax.Len() > 0 {
		recent := s.GapMax.Last(retroWindow)
		maxGap := 0.0
		for _, g := range s.GapMax.Values {
			if g > maxGap {
				maxGap = g
			}
		}
		var wsum, vsum float64
		for i, g := range recent {
			w := math.Pow(0.5, float64(len(recent)-1-i))
			wsum += w
			vsum += w * g
		}
		retro = clamp((vsum/wsum)/math.Max(1.0, maxGap+1.0), 0, retroCeiling)
	}
	s.Params.BetaRetro = Param{Value: retro, Cycle: cycle, Source: "ewma_retro_effect"}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// #endregion param-learning

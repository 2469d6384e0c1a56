// Package ethics scores atoms for harm and identity alignment and decides
// which candidate vectors are admissible. Scoring is rule-based over closed
// tag and status sets. The fallback rule is conservative: an atom missing a
// required field scores as worst-case (harm=1, alignment=-1) — missing data
// is never assumed safe.
package ethics

import (
	"math"
	"strings"

	"semgate/internal/graph"
)

// #region harm-table
// tagHarm is the fixed tag → maximum-harm table.
var tagHarm = map[graph.Tag]float64{
	graph.TagHarm:         0.9,
	graph.TagManipulation: 0.7,
	graph.TagDeception:    0.6,
	graph.TagBlocking:     0.5,
	graph.TagIntent:       0.2,
	graph.TagEmotion:      0.1,
	graph.TagWitness:      0.0,
}

// #endregion harm-table

// #region gate
// Gate performs atom scoring and candidate admission.
type Gate struct {
	cfg Config
}

// NewGate creates a gate with the given configuration.
func NewGate(cfg Config) *Gate {
	return &Gate{cfg: cfg}
}

// harmBlockFloor is the per-atom harm probability at which the atom's status
// becomes ETHICALLY_BLOCKED. The status is terminal for the cycle and vetoes
// every candidate containing the atom.
const harmBlockFloor = 0.85

// ScoreGraph fills harm probability and identity alignment for every atom
// in the graph, marking each as scored. Atoms are scored exactly once per
// cycle, right after building; the rest of the pipeline reads them as
// immutable. Alignment is computed before the block status is applied so a
// blocked atom keeps the alignment its original status earned.
func (g *Gate) ScoreGraph(gr *graph.Graph) {
	for i := range gr.Atoms {
		a := &gr.Atoms[i]
		a.HarmProbability = g.harmProbability(a, gr.Neighbors(a.ID))
		a.IdentityAlignment = identityAlignment(a)
		a.Scored = true
		if a.HarmProbability >= harmBlockFloor {
			a.Status = graph.StatusEthicallyBlocked
		}
	}
}

// #endregion gate

// #region harm
// harmProbability computes the harm scalar for one atom: maximum harm over
// its tags, plus the blocking penalty when connected to a BLOCKING atom,
// clamped to [0, 1]. Unscorable atoms return worst-case 1.
func (g *Gate) harmProbability(a *graph.Atom, neighbors []*graph.Atom) float64 {
	if a.Status == graph.StatusUnknown || a.Label == "" {
		return 1.0
	}
	var base float64
	for _, t := range a.Tags {
		if h, ok := tagHarm[t]; ok && h > base {
			base = h
		}
	}
	for _, n := range neighbors {
		if n.Status == graph.StatusBlocking {
			base += g.cfg.BlockingPenalty
			break
		}
	}
	return math.Min(1.0, math.Max(0.0, base))
}

// #endregion harm

// #region alignment
// identityAlignment sums fixed positive and negative indicators, clamped to
// [-1, 1]. Unscorable atoms return worst-case -1.
func identityAlignment(a *graph.Atom) float64 {
	if a.Status == graph.StatusUnknown || a.Label == "" {
		return -1.0
	}
	var pos, neg float64
	if a.HasTag(graph.TagWitness) {
		pos += 0.3
	}
	if a.HasTag(graph.TagIntent) && !a.HasTag(graph.TagManipulation) {
		pos += 0.2
	}
	if a.Status == graph.StatusAnchored {
		pos += 0.3
	}
	low := strings.ToLower(a.Label)
	if strings.Contains(low, "respect") || strings.Contains(low, "boundary") {
		pos += 0.2
	}
	if a.HasTag(graph.TagManipulation) {
		neg += 0.5
	}
	if a.HasTag(graph.TagDeception) {
		neg += 0.6
	}
	if a.Status == graph.StatusBlocking {
		neg += 0.4
	}
	if a.Avoided {
		neg += 0.3
	}
	return math.Max(-1.0, math.Min(1.0, pos-neg))
}

// #endregion alignment

// #region coefficient
// Coefficient computes the per-candidate ethical coefficient:
// clamp(mean(alignment) * (1 - max(harm)), 0.1, 1.0). Empty member sets and
// unscored atoms collapse to the conservative floor.
func (g *Gate) Coefficient(members []*graph.Atom) float64 {
	if len(members) == 0 {
		return 0.1
	}
	var alignSum, maxHarm float64
	for _, a := range members {
		harm, align := a.HarmProbability, a.IdentityAlignment
		if !a.Scored {
			harm, align = 1.0, -1.0
		}
		alignSum += align
		if harm > maxHarm {
			maxHarm = harm
		}
	}
	coeff := (alignSum / float64(len(members))) * (1.0 - maxHarm)
	return math.Max(0.1, math.Min(1.0, coeff))
}

// Executable reports whether a member set passes the gate: coefficient at or
// above the threshold and no ETHICALLY_BLOCKED member. MU members never
// block execution.
func (g *Gate) Executable(members []*graph.Atom) bool {
	if g.Coefficient(members) < g.cfg.Threshold {
		return false
	}
	for _, a := range members {
		if a.Status == graph.StatusEthicallyBlocked {
			return false
		}
	}
	return true
}

// #endregion coefficient

// #region evaluate-set
// EvaluateSet scores every candidate member set and derives the set-level
// mean score and blocked fraction.
func (g *Gate) EvaluateSet(candidates [][]*graph.Atom) SetResult {
	res := SetResult{
		Coefficients: make([]float64, len(candidates)),
		Executable:   make([]bool, len(candidates)),
	}
	if len(candidates) == 0 {
		return res
	}
	var sum float64
	blocked := 0
	for i, members := range candidates {
		res.Coefficients[i] = g.Coefficient(members)
		res.Executable[i] = g.Executable(members)
		sum += res.Coefficients[i]
		if res.Executable[i] {
			res.ActiveCount++
		} else {
			blocked++
		}
	}
	res.MeanScore = sum / float64(len(candidates))
	res.Blocked = float64(blocked) / float64(len(candidates))
	return res
}

// #endregion evaluate-set

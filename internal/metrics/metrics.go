// Package metrics computes the derived scalar and vector metrics for each
// candidate attention vector. Everything here is a pure function of the
// candidate, the intent, the adaptive parameters, and the state histories;
// numeric edge cases (empty sets, log(0), negative bases under fractional
// exponents) are clamped or defined by convention rather than raised.
package metrics

import (
	"math"

	"semgate/internal/candidate"
	"semgate/internal/graph"
	"semgate/internal/session"
	"semgate/internal/vecspace"
)

const epsilon = 1e-9

// #region engine
// Engine evaluates candidates against one intent and state.
type Engine struct {
	cfg Config
}

// NewEngine creates a metric engine.
func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Evaluate computes the full report for one candidate. ethCoeff and
// executable come from the ethics gate; a non-executable candidate has its
// extended capital forced to exactly zero.
func (e *Engine) Evaluate(
	v *candidate.Vector,
	intent vecspace.Intent,
	params session.AdaptiveParams,
	st *session.State,
	ethCoeff float64,
	executable bool,
) *Report {
	rep := &Report{EthicalCoefficient: ethCoeff, Executable: executable}
	n := len(v.Atoms)
	if n == 0 {
		return rep
	}

	vecs := make([]vecspace.Vec, n)
	for i, a := range v.Atoms {
		vecs[i] = vecspace.ForAtom(a)
	}

	// Structural proxies.
	rep.AR = anchoredRatio(v.Atoms)
	rep.CI = edgeDensity(n, len(v.Edges))
	rep.TI = temporalIntegrity(vecs)
	rep.SQ = math.Min(1.0, float64(n)/float64(e.cfg.NodeCap))
	if n > 1 {
		rep.Phi = math.Min(1.0, 1.5*rep.CI)
	} else {
		rep.Phi = 0.5
	}
	rep.GBI = (meanAxis(vecs, vecspace.AxisClarity) + meanAxis(vecs, vecspace.AxisCoherence)) / 2.0
	rep.GNS = meanAxis(vecs, vecspace.AxisNovelty)
	rep.RI = meanAxis(vecs, vecspace.AxisResonance)

	ideal := vecspace.Normalize(vecspace.IdealDirection(intent))

	// Attention weights: anchor factor, positional decay, intent affinity,
	// alignment lift. Floored so no member fully vanishes.
	weights := make([]float64, n)
	var wsum float64
	for j, a := range v.Atoms {
		anchor := 0.3
		if a.Status == graph.StatusAnchored {
			anchor = 1.0
		}
		pos := math.Exp(-e.cfg.PositionDecay * float64(j))
		affinity := math.Max(0.1, (vecspace.Cosine(vecs[j], ideal)+1.0)/2.0)
		lift := math.Max(0.1, a.IdentityAlignment+1.0)
		w := math.Max(0.001, anchor*pos*affinity*lift)
		weights[j] = w
		wsum += w
	}
	for j := range weights {
		weights[j] /= wsum
	}

	// Direction and shadow are accumulated from the raw weighted sums first;
	// normalizing too early would destroy the magnitude information the
	// shadow ratio needs.
	var rawDir, rawShadow vecspace.Vec
	for j, a := range v.Atoms {
		rawDir = vecspace.Add(rawDir, vecspace.Scale(vecs[j], weights[j]))
		if (a.Scored && a.IdentityAlignment < 0) || a.Avoided {
			rawShadow = vecspace.Add(rawShadow, vecspace.Scale(vecs[j], -weights[j]))
		}
	}
	shadowNorm := vecspace.Norm(rawShadow)
	rep.Magnitude = vecspace.Norm(rawDir)
	rep.Direction = vecspace.Normalize(rawDir)
	rep.Shadow = vecspace.Normalize(rawShadow)
	rep.ShadowMagnitude = shadowNorm / (rep.Magnitude + shadowNorm + epsilon)

	// Attention entropy: zero by convention at a single active atom.
	if n <= 1 {
		rep.Entropy = 0
	} else {
		var h float64
		for _, p := range weights {
			if p > 0 {
				h -= p * math.Log(p)
			}
		}
		rep.Entropy = math.Min(1.0, h/math.Log(float64(n)))
	}

	rep.Consistency = e.consistency(rep.Direction, st, rep.CI)
	rep.Resonance = rep.RI

	// SCAV health: fourth root of the component product, clamped at zero so
	// a negative base never meets a fractional exponent.
	base := rep.Consistency * rep.Resonance * (1.0 - rep.Entropy) * (1.0 - rep.ShadowMagnitude)
	if base < 0 {
		base = 0
	}
	rep.Health = math.Pow(base, 0.25)

	rep.Difficulty, rep.Flow = e.flow(v.Atoms, rep.CI, st)
	rep.IntentAlignment = vecspace.Cosine(rep.Direction, ideal)

	// Capital chain.
	rep.SC = rep.AR * rep.CI * rep.TI * (params.Alpha.Value + params.Beta()*rep.RI) * rep.Phi
	rep.FP = e.futurePotential(v, vecs, params)
	rep.TSCBase = rep.SC * (params.Gamma.Value + params.Delta()*rep.FP)
	rep.TSCExtended = rep.TSCBase * (1.0 + params.Lambda.Value*rep.Consistency*rep.IntentAlignment) * ethCoeff
	if !executable {
		rep.TSCExtended = 0
	}
	return rep
}

// #endregion engine

// #region structural
func anchoredRatio(atoms []*graph.Atom) float64 {
	anchored := 0
	for _, a := range atoms {
		if a.Status == graph.StatusAnchored {
			anchored++
		}
	}
	return float64(anchored) / float64(len(atoms))
}

// edgeDensity is actual edges over possible unordered pairs, capped at 1.
// A single node is trivially coherent.
func edgeDensity(n, edges int) float64 {
	if n <= 1 {
		return 1.0
	}
	possible := float64(n*(n-1)) / 2.0
	return math.Min(1.0, float64(edges)/possible)
}

// temporalIntegrity inverts the variance of the temporality axis. The axis
// lives in [-1, 1], so variance is bounded by 1 and the inversion stays in
// [0, 1].
func temporalIntegrity(vecs []vecspace.Vec) float64 {
	if len(vecs) <= 1 {
		return 1.0
	}
	var mean float64
	for _, v := range vecs {
		mean += v[vecspace.AxisTemporality]
	}
	mean /= float64(len(vecs))
	var variance float64
	for _, v := range vecs {
		d := v[vecspace.AxisTemporality] - mean
		variance += d * d
	}
	variance /= float64(len(vecs))
	return clamp01(1.0 - variance)
}

func meanAxis(vecs []vecspace.Vec, axis int) float64 {
	if len(vecs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vecs {
		sum += v[axis]
	}
	return sum / float64(len(vecs))
}

// #endregion structural

// #region consistency
// consistency measures autocorrelation of the attention direction across
// recent cycles. With no direction history yet it degrades to the structural
// edge density, never to an optimistic constant.
func (e *Engine) consistency(dir vecspace.Vec, st *session.State, ci float64) float64 {
	if st == nil || len(st.Directions) == 0 {
		return math.Min(1.0, ci)
	}
	window := e.cfg.ConsistencyWindow
	if window > len(st.Directions) {
		window = len(st.Directions)
	}
	var sum float64
	for i := len(st.Directions) - window; i < len(st.Directions); i++ {
		sum += clamp01(vecspace.Cosine(dir, st.Directions[i]))
	}
	return sum / float64(window)
}

// #endregion consistency

// #region flow
var presenceTags = []graph.Tag{graph.TagWitness, graph.TagEmotion, graph.TagIntent}

// flow computes candidate difficulty and the flow rate: the cube root of
// skill match, challenge balance, and presence density. Current skill is the
// moving average of difficulties mastered on prior executable cycles,
// falling back to a fixed default.
func (e *Engine) flow(atoms []*graph.Atom, ci float64, st *session.State) (difficulty, flow float64) {
	n := len(atoms)
	base := clamp01(0.2 + 0.8*float64(n)/float64(e.cfg.FlowNodeCap))
	difficulty = clamp01(base + 0.2*ci)

	skill := e.cfg.DefaultSkill
	if st != nil {
		skill = st.Difficulty.Mean(e.cfg.DefaultSkill)
	}
	skillMatch := 1.0 - math.Abs(difficulty-skill)

	optimal := skill + 0.1
	sigma := e.cfg.ChallengeSigma
	challenge := math.Exp(-((difficulty - optimal) * (difficulty - optimal)) / (2.0 * sigma * sigma))

	present := 0
	for _, a := range atoms {
		for _, t := range presenceTags {
			if a.HasTag(t) {
				present++
				break
			}
		}
	}
	presence := float64(present) / float64(n)

	product := skillMatch * challenge * presence
	if product < 0 {
		product = 0
	}
	flow = math.Cbrt(product)
	return difficulty, flow
}

// #endregion flow

// #region future-potential
// futurePotential is the temporal recursion term: novelty x generativity x
// temporal horizon, plus the retrocausal share of the expected influence a
// hypothesized future graph exerts on the present. Clamped to [0, 1].
func (e *Engine) futurePotential(v *candidate.Vector, vecs []vecspace.Vec, params session.AdaptiveParams) float64 {
	n := len(v.Atoms)
	if n == 0 {
		return 0
	}
	novelty := meanAxis(vecs, vecspace.AxisNovelty)

	types := map[graph.EdgeType]bool{}
	for _, edge := range v.Edges {
		types[edge.Type] = true
	}
	generativity := float64(len(types)) / float64(graph.NumEdgeTypes)

	horizon := 0.1
	if n > 1 {
		lo, hi := vecs[0][vecspace.AxisTemporality], vecs[0][vecspace.AxisTemporality]
		for _, vec := range vecs {
			t := vec[vecspace.AxisTemporality]
			if t < lo {
				lo = t
			}
			if t > hi {
				hi = t
			}
		}
		horizon = math.Max(0.1, hi-lo)
	}

	influence := e.expectedInfluence(v, vecs)
	return clamp01(novelty*generativity*horizon + params.BetaRetro.Value*influence)
}

// expectedInfluence hypothesizes a future graph by dropping the most
// uncertain member and measures its distance from the present graph.
func (e *Engine) expectedInfluence(v *candidate.Vector, vecs []vecspace.Vec) float64 {
	n := len(v.Atoms)
	if n < 2 {
		return 0
	}
	dropIdx, maxU := 0, -1.0
	for i, vec := range vecs {
		if vec[vecspace.AxisUncertainty] > maxU {
			maxU = vec[vecspace.AxisUncertainty]
			dropIdx = i
		}
	}
	dropID := v.Atoms[dropIdx].ID

	curNodes := v.MemberIDs()
	futNodes := make([]string, 0, n-1)
	for _, id := range curNodes {
		if id != dropID {
			futNodes = append(futNodes, id)
		}
	}
	var futEdges []graph.Edge
	for _, edge := range v.Edges {
		if edge.From != dropID && edge.To != dropID {
			futEdges = append(futEdges, edge)
		}
	}
	return GEDProxy(curNodes, v.Edges, futNodes, futEdges)
}

// #endregion future-potential

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Package vecspace maps semantic atoms and intent labels into a fixed
// 12-dimensional vector space. The mapping is a pure function of the atom's
// identity: a stable hash of id/label per axis, adjusted by tag rules.
// Reproducibility is a hard contract, not an optimization.
package vecspace

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"math"

	"semgate/internal/graph"
)

// #region axes
// Dim is the dimensionality of the semantic vector space.
const Dim = 12

// Axis indices. Most axes live in [0, 1]; agency and temporality in [-1, 1].
const (
	AxisClarity = iota
	AxisHarm
	AxisEmpathy
	AxisAgency
	AxisUncertainty
	AxisNovelty
	AxisCoherence
	AxisPracticality
	AxisTemporality
	AxisBoundary
	AxisResonance
	AxisShadow
)

// Vec is a point in the semantic space.
type Vec [Dim]float64

// #endregion axes

// #region intent
// Intent is the closed set of caller intents.
type Intent string

const (
	IntentImplement      Intent = "implement"
	IntentExplain        Intent = "explain"
	IntentAudit          Intent = "audit"
	IntentExploreParadox Intent = "explore_paradox"
	IntentCompress       Intent = "compress"
)

// ParseIntent maps a raw label to an Intent. Unrecognized labels default to
// implement.
func ParseIntent(s string) Intent {
	switch Intent(s) {
	case IntentExplain, IntentAudit, IntentExploreParadox, IntentCompress:
		return Intent(s)
	default:
		return IntentImplement
	}
}

var intentProfiles = map[Intent]Vec{
	IntentImplement:      {0.8, 0.0, 0.4, 0.5, 0.3, 0.2, 0.8, 0.9, 0.2, 0.9, 0.6, 0.2},
	IntentExplain:        {1.0, 0.0, 0.5, 0.4, 0.3, 0.2, 0.7, 0.6, 0.0, 0.8, 0.6, 0.0},
	IntentAudit:          {0.9, 0.0, 0.3, 0.4, 0.5, 0.1, 0.9, 0.7, 0.0, 0.9, 0.4, 0.1},
	IntentExploreParadox: {0.6, 0.0, 0.7, 0.2, 0.9, 0.8, 0.5, 0.3, 0.0, 0.9, 0.8, 0.4},
	IntentCompress:       {0.8, 0.0, 0.3, 0.4, 0.4, 0.1, 0.8, 0.8, 0.0, 0.8, 0.4, 0.1},
}

// IdealDirection returns the target vector for an intent. Unrecognized
// intents fall back to the implement profile.
func IdealDirection(intent Intent) Vec {
	if v, ok := intentProfiles[intent]; ok {
		return v
	}
	return intentProfiles[IntentImplement]
}

// #endregion intent

// #region for-atom
// ForAtom computes the semantic vector for one atom. Harm takes the scored
// harm probability directly; agency and temporality are hash-derived in
// [-1, 1]; the remaining axes are hash-derived in [0, 1] and then shifted by
// tag rules, clamped back to their documented ranges.
func ForAtom(a *graph.Atom) Vec {
	var v Vec
	for i := 0; i < Dim; i++ {
		switch i {
		case AxisHarm:
			v[i] = clamp01(a.HarmProbability)
		case AxisAgency, AxisTemporality:
			v[i] = 2.0*hashUnit(fmt.Sprintf("%s:%s:%d", a.ID, a.Label, i)) - 1.0
		default:
			v[i] = hashUnit(fmt.Sprintf("%s:%s:%d", a.ID, a.Label, i))
		}
	}

	if a.HasTag(graph.TagEmotion) {
		v[AxisEmpathy] = clamp01(v[AxisEmpathy] + 0.2)
	}
	if a.HasTag(graph.TagIntent) {
		v[AxisAgency] = clampSym(v[AxisAgency] + 0.3)
		v[AxisPracticality] = clamp01(v[AxisPracticality] + 0.1)
	}
	if a.HasTag(graph.TagHarm) || a.HasTag(graph.TagManipulation) {
		v[AxisShadow] = clamp01(v[AxisShadow] + 0.3)
	}
	if a.Evidence.Observability == graph.Untestable {
		v[AxisUncertainty] = math.Max(v[AxisUncertainty], 0.7)
		v[AxisClarity] = clamp01(v[AxisClarity] - 0.2)
	}
	if a.Evidence.Observability == graph.Observed {
		v[AxisClarity] = clamp01(v[AxisClarity] + 0.2)
	}
	return v
}

// #endregion for-atom

// #region vector-math
const normEpsilon = 1e-9

// Normalize divides by the Euclidean norm plus a small epsilon. A
// near-zero vector is returned unchanged.
func Normalize(v Vec) Vec {
	n := Norm(v)
	if n < normEpsilon {
		return v
	}
	var out Vec
	for i, x := range v {
		out[i] = x / (n + normEpsilon)
	}
	return out
}

// Norm returns the Euclidean norm of v.
func Norm(v Vec) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Cosine returns the cosine similarity of a and b, 0 when either norm
// vanishes, clamped to [-1, 1].
func Cosine(a, b Vec) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	denom := math.Sqrt(na) * math.Sqrt(nb)
	if denom < normEpsilon {
		return 0
	}
	return clampSym(dot / denom)
}

// Add returns a + b.
func Add(a, b Vec) Vec {
	var out Vec
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// Scale returns v scaled by k.
func Scale(v Vec, k float64) Vec {
	var out Vec
	for i := range v {
		out[i] = v[i] * k
	}
	return out
}

// #endregion vector-math

// #region hash
// hashUnit maps a string to a deterministic float in [0, 1] using the first
// eight hex digits of its MD5 digest. This is a documented pseudo-feature
// extractor, not an embedding model.
func hashUnit(s string) float64 {
	sum := md5.Sum([]byte(s))
	u := binary.BigEndian.Uint32(sum[:4])
	return float64(u) / float64(math.MaxUint32)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func clampSym(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}
	return x
}

// #endregion hash

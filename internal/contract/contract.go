// Package contract defines the measurement cycle's output surface: the fixed
// metric map, per-atom claims with explicit stances, the evidence trace, and
// the PASS/FAIL verdict. A contract is a plain value; everything it reports
// was already computed upstream.
package contract

import (
	"fmt"

	"semgate/internal/failcode"
	"semgate/internal/graph"
	"semgate/internal/session"
)

// #region verdict
// Verdict is the binary cycle outcome.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictFail Verdict = "FAIL"
)

// #endregion verdict

// #region stance
// Stance is the closed set of positions a claim may take. There is no open
// "maybe" value; indeterminacy is either Agnostic (insufficient evidence) or
// Paradox (actively contradictory under a sustained paradox).
type Stance string

const (
	StanceAffirmed Stance = "affirmed"
	StanceDenied   Stance = "denied"
	StanceAgnostic Stance = "agnostic"
	StanceParadox  Stance = "paradox"
)

// Scope places a claim inside or outside the chosen attention contour.
type Scope string

const (
	ScopeInContour    Scope = "in_contour"
	ScopeOutOfContour Scope = "out_of_contour"
)

// Claim is one atom-level assertion the contract is willing to stand behind.
type Claim struct {
	Topic         string              `json:"topic"`
	Scope         Scope               `json:"scope"`
	Observability graph.Observability `json:"observability"`
	Stance        Stance              `json:"stance"`
	Reason        string              `json:"reason"`
	LinkedAtoms   []string            `json:"linked_atoms"`
}

// #endregion stance

// #region metrics
// MetricKeys is the fixed key set of the contract metric map. Every contract
// carries every key, zero-valued when nothing was measured.
var MetricKeys = []string{
	"TI",
	"CI",
	"AR",
	"SQ_proxy",
	"Phi_proxy",
	"GBI_proxy",
	"GNS_proxy",
	"flow_rate",
	"TSC_score",
	"SCAV_health",
	"Stereoscopic_alignment",
	"Stereoscopic_gap_max",
	"Ethical_score_candidates",
	"Mu_density",
	"Blocked_fraction",
}

// Metrics is the contract's scalar metric map, keyed by MetricKeys.
type Metrics map[string]float64

// EmptyMetrics returns a map with every fixed key present and zero.
func EmptyMetrics() Metrics {
	m := make(Metrics, len(MetricKeys))
	for _, k := range MetricKeys {
		m[k] = 0
	}
	return m
}

// #endregion metrics

// #region trace
// Trace is the evidence ledger backing the claims: what was directly
// observed, what was inferred, and what remains assumed.
type Trace struct {
	Observations []string `json:"observations"`
	Inferences   []string `json:"inferences"`
	Assumptions  []string `json:"assumptions"`
	Cycle        int      `json:"cycle"`
}

// BuildTrace collects the evidence records of all atoms in graph order.
func BuildTrace(atoms []*graph.Atom, cycle int) Trace {
	tr := Trace{Cycle: cycle}
	for _, a := range atoms {
		tr.Observations = append(tr.Observations, a.Evidence.Observed...)
		tr.Inferences = append(tr.Inferences, a.Evidence.Inferred...)
		tr.Assumptions = append(tr.Assumptions, a.Evidence.Assumptions...)
	}
	return tr
}

// #endregion trace

// #region contract
// Contract is the complete cycle output.
type Contract struct {
	Verdict        Verdict                 `json:"verdict"`
	CandidateCount int                     `json:"candidate_count"`
	ActiveCount    int                     `json:"active_count"`
	ChosenID       string                  `json:"chosen_id"`
	Claims         []Claim                 `json:"claims"`
	Metrics        Metrics                 `json:"metrics"`
	Params         session.AdaptiveParams  `json:"params"`
	FailCodes      []failcode.Diagnosis    `json:"fail_codes,omitempty"`
	NextStep       string                  `json:"next_step,omitempty"`
	Trace          Trace                   `json:"trace"`
}

// #endregion contract

// #region claims
// harmDenialFloor is the per-atom harm probability above which a claim is
// denied outright, independent of the set-level gate.
const harmDenialFloor = 0.6

// ClaimsFor derives one claim per atom. chosen holds the member IDs of the
// selected vector; sustained reports whether the paradox trackers are in
// their sustained state.
func ClaimsFor(atoms []*graph.Atom, chosen map[string]bool, sustained bool) []Claim {
	claims := make([]Claim, 0, len(atoms))
	for _, a := range atoms {
		c := Claim{
			Topic:         a.Label,
			Scope:         ScopeOutOfContour,
			Observability: a.Evidence.Observability,
			LinkedAtoms:   []string{a.ID},
		}
		if chosen[a.ID] {
			c.Scope = ScopeInContour
		}
		c.Stance, c.Reason = stanceFor(a, sustained)
		claims = append(claims, c)
	}
	return claims
}

func stanceFor(a *graph.Atom, sustained bool) (Stance, string) {
	switch {
	case a.Status == graph.StatusEthicallyBlocked:
		return StanceDenied, "atom is ethically blocked"
	case a.Scored && a.HarmProbability >= harmDenialFloor:
		return StanceDenied, fmt.Sprintf("harm probability %.2f exceeds the denial floor", a.HarmProbability)
	case a.Status == graph.StatusMu && sustained:
		return StanceParadox, "atom carries a MU marker under a sustained paradox"
	case a.Evidence.Observability == graph.Untestable:
		return StanceAgnostic, "no observable consequence distinguishes the claim"
	case a.Evidence.Observability == graph.Observed:
		return StanceAffirmed, "directly evidenced in the input"
	default:
		return StanceAgnostic, "inferred only; no direct observation"
	}
}

// #endregion claims

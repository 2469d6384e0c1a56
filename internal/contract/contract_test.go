package contract

import (
	"testing"

	"semgate/internal/graph"
)

func claimAtom(id string, status graph.Status, obs graph.Observability) *graph.Atom {
	return &graph.Atom{
		ID:       id,
		Label:    "topic-" + id,
		Status:   status,
		Scored:   true,
		Evidence: graph.Evidence{Observability: obs},
	}
}

func TestEmptyMetricsCarriesEveryKey(t *testing.T) {
	m := EmptyMetrics()
	if len(m) != len(MetricKeys) {
		t.Fatalf("expected %d keys, got %d", len(MetricKeys), len(m))
	}
	for _, k := range MetricKeys {
		if v, ok := m[k]; !ok || v != 0 {
			t.Fatalf("key %s missing or nonzero: %v", k, v)
		}
	}
}

func TestStanceDeniedOnBlockedStatus(t *testing.T) {
	a := claimAtom("n0", graph.StatusEthicallyBlocked, graph.Observed)
	stance, _ := stanceFor(a, false)
	if stance != StanceDenied {
		t.Fatalf("expected denied, got %s", stance)
	}
}

func TestStanceDeniedOnHighHarm(t *testing.T) {
	a := claimAtom("n0", graph.StatusAnchored, graph.Observed)
	a.HarmProbability = 0.7
	stance, _ := stanceFor(a, false)
	if stance != StanceDenied {
		t.Fatalf("expected denied, got %s", stance)
	}
}

func TestStanceParadoxRequiresSustainedMu(t *testing.T) {
	a := claimAtom("n0", graph.StatusMu, graph.Untestable)
	stance, _ := stanceFor(a, true)
	if stance != StanceParadox {
		t.Fatalf("expected paradox, got %s", stance)
	}
	// Without a sustained paradox the MU atom degrades to agnostic.
	stance, _ = stanceFor(a, false)
	if stance != StanceAgnostic {
		t.Fatalf("expected agnostic, got %s", stance)
	}
}

func TestStanceByObservability(t *testing.T) {
	observed := claimAtom("n0", graph.StatusAnchored, graph.Observed)
	inferred := claimAtom("n1", graph.StatusAnchored, graph.Inferred)
	untestable := claimAtom("n2", graph.StatusFloating, graph.Untestable)

	if s, _ := stanceFor(observed, false); s != StanceAffirmed {
		t.Fatalf("expected affirmed, got %s", s)
	}
	if s, _ := stanceFor(inferred, false); s != StanceAgnostic {
		t.Fatalf("expected agnostic for inferred, got %s", s)
	}
	if s, _ := stanceFor(untestable, false); s != StanceAgnostic {
		t.Fatalf("expected agnostic for untestable, got %s", s)
	}
}

func TestClaimsScopeFollowsContour(t *testing.T) {
	atoms := []*graph.Atom{
		claimAtom("n0", graph.StatusAnchored, graph.Observed),
		claimAtom("n1", graph.StatusAnchored, graph.Observed),
	}
	claims := ClaimsFor(atoms, map[string]bool{"n0": true}, false)
	if claims[0].Scope != ScopeInContour {
		t.Fatalf("expected in_contour for chosen member, got %s", claims[0].Scope)
	}
	if claims[1].Scope != ScopeOutOfContour {
		t.Fatalf("expected out_of_contour for excluded atom, got %s", claims[1].Scope)
	}
	if claims[0].LinkedAtoms[0] != "n0" {
		t.Fatalf("claim must link its atom, got %v", claims[0].LinkedAtoms)
	}
	for _, c := range claims {
		if c.Reason == "" {
			t.Fatalf("claim %s missing reason", c.Topic)
		}
	}
}

func TestBuildTraceAggregatesEvidence(t *testing.T) {
	atoms := []*graph.Atom{
		{ID: "n0", Evidence: graph.Evidence{Observed: []string{"seen"}}},
		{ID: "n1", Evidence: graph.Evidence{Inferred: []string{"deduced"}}},
		{ID: "n2", Evidence: graph.Evidence{Assumptions: []string{"assumed"}}},
	}
	tr := BuildTrace(atoms, 7)
	if tr.Cycle != 7 {
		t.Fatalf("expected cycle 7, got %d", tr.Cycle)
	}
	if len(tr.Observations) != 1 || tr.Observations[0] != "seen" {
		t.Fatalf("observations wrong: %v", tr.Observations)
	}
	if len(tr.Inferences) != 1 || len(tr.Assumptions) != 1 {
		t.Fatalf("evidence lists wrong: %+v", tr)
	}
}

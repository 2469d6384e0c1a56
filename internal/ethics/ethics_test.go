package ethics

import (
	"testing"

	"semgate/internal/graph"
)

func scoredAtom(id string, harm, align float64) *graph.Atom {
	return &graph.Atom{
		ID:                id,
		Label:             id,
		Status:            graph.StatusAnchored,
		Tags:              []graph.Tag{graph.TagWitness},
		HarmProbability:   harm,
		IdentityAlignment: align,
		Scored:            true,
	}
}

func TestScoreGraphMarksEveryAtom(t *testing.T) {
	g := graph.Build("implement the parser")
	NewGate(DefaultConfig()).ScoreGraph(g)
	for _, a := range g.Atoms {
		if !a.Scored {
			t.Fatalf("atom %s not scored", a.ID)
		}
	}
}

func TestNeutralAtomAlignment(t *testing.T) {
	g := graph.Build("ordinary neutral words")
	NewGate(DefaultConfig()).ScoreGraph(g)
	for _, a := range g.Atoms {
		// WITNESS tag plus ANCHORED status.
		if a.IdentityAlignment != 0.6 {
			t.Fatalf("atom %s: expected alignment 0.6, got %v", a.ID, a.IdentityAlignment)
		}
		if a.HarmProbability != 0 {
			t.Fatalf("atom %s: expected zero harm, got %v", a.ID, a.HarmProbability)
		}
	}
}

func TestHarmTagScoring(t *testing.T) {
	g := graph.Build("nothing but violence everywhere")
	NewGate(DefaultConfig()).ScoreGraph(g)
	a := g.AtomByID("n2")
	if a.HarmProbability != 0.9 {
		t.Fatalf("expected harm 0.9 for HARM tag, got %v", a.HarmProbability)
	}
	if a.Status != graph.StatusEthicallyBlocked {
		t.Fatalf("expected ETHICALLY_BLOCKED above the block floor, got %s", a.Status)
	}
}

func TestBlockingNeighborPenalty(t *testing.T) {
	g := graph.Build("refuse help")
	NewGate(DefaultConfig()).ScoreGraph(g)
	helper := g.AtomByID("n1")
	if helper.HarmProbability != 0.2 {
		t.Fatalf("expected blocking penalty 0.2 on neighbor, got %v", helper.HarmProbability)
	}
}

func TestAvoidedAtomAlignmentPenalty(t *testing.T) {
	g := graph.Build("ignore everything")
	NewGate(DefaultConfig()).ScoreGraph(g)
	avoided := g.AtomByID("n0")
	plain := g.AtomByID("n1")
	if !avoided.Avoided {
		t.Fatalf("expected avoided flag on %q", avoided.Label)
	}
	if avoided.IdentityAlignment >= plain.IdentityAlignment {
		t.Fatalf("avoidance must lower alignment: %v >= %v",
			avoided.IdentityAlignment, plain.IdentityAlignment)
	}
}

func TestCoefficientEmptyMembers(t *testing.T) {
	if c := NewGate(DefaultConfig()).Coefficient(nil); c != 0.1 {
		t.Fatalf("expected floor 0.1 for empty set, got %v", c)
	}
}

func TestCoefficientUnscoredWorstCase(t *testing.T) {
	a := scoredAtom("n0", 0, 0.9)
	a.Scored = false
	if c := NewGate(DefaultConfig()).Coefficient([]*graph.Atom{a}); c != 0.1 {
		t.Fatalf("unscored atom should collapse to the floor, got %v", c)
	}
}

func TestCoefficientHarmMonotonic(t *testing.T) {
	gate := NewGate(DefaultConfig())
	clean := []*graph.Atom{scoredAtom("n0", 0, 0.8), scoredAtom("n1", 0, 0.7)}
	dirty := append(clean, scoredAtom("n2", 0.9, 0.7))

	if gate.Coefficient(dirty) > gate.Coefficient(clean) {
		t.Fatalf("adding a harmful atom raised the coefficient: %v > %v",
			gate.Coefficient(dirty), gate.Coefficient(clean))
	}
}

func TestCoefficientClampRange(t *testing.T) {
	gate := NewGate(DefaultConfig())
	worst := []*graph.Atom{scoredAtom("n0", 1.0, -1.0)}
	best := []*graph.Atom{scoredAtom("n0", 0, 1.0)}
	if c := gate.Coefficient(worst); c != 0.1 {
		t.Fatalf("expected clamp to 0.1, got %v", c)
	}
	if c := gate.Coefficient(best); c != 1.0 {
		t.Fatalf("expected 1.0, got %v", c)
	}
}

func TestExecutableThreshold(t *testing.T) {
	gate := NewGate(DefaultConfig())
	passing := []*graph.Atom{scoredAtom("n0", 0, 0.6)}
	failing := []*graph.Atom{scoredAtom("n0", 0, 0.3)}
	if !gate.Executable(passing) {
		t.Fatal("coefficient 0.6 should be executable")
	}
	if gate.Executable(failing) {
		t.Fatal("coefficient 0.3 should not be executable")
	}
}

func TestEthicallyBlockedMemberVetoes(t *testing.T) {
	gate := NewGate(DefaultConfig())
	blocked := scoredAtom("n1", 0, 0.9)
	blocked.Status = graph.StatusEthicallyBlocked
	members := []*graph.Atom{scoredAtom("n0", 0, 0.9), blocked}
	if gate.Executable(members) {
		t.Fatal("ETHICALLY_BLOCKED member must veto execution")
	}
}

func TestMuMemberNeverBlocks(t *testing.T) {
	gate := NewGate(DefaultConfig())
	mu := scoredAtom("n1", 0, 0.9)
	mu.Status = graph.StatusMu
	members := []*graph.Atom{scoredAtom("n0", 0, 0.9), mu}
	if !gate.Executable(members) {
		t.Fatal("MU member must not block execution")
	}
}

func TestEvaluateSetAggregates(t *testing.T) {
	gate := NewGate(DefaultConfig())
	good := []*graph.Atom{scoredAtom("n0", 0, 0.8)}
	bad := []*graph.Atom{scoredAtom("n1", 0.95, -0.5)}
	res := gate.EvaluateSet([][]*graph.Atom{good, bad})

	if res.ActiveCount != 1 {
		t.Fatalf("expected 1 active candidate, got %d", res.ActiveCount)
	}
	if res.Blocked != 0.5 {
		t.Fatalf("expected blocked fraction 0.5, got %v", res.Blocked)
	}
	if res.Coefficients[0] != 0.8 || res.Coefficients[1] != 0.1 {
		t.Fatalf("unexpected coefficients: %v", res.Coefficients)
	}
	if res.MeanScore != 0.45 {
		t.Fatalf("expected mean score 0.45, got %v", res.MeanScore)
	}
}

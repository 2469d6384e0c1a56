package vecspace

import (
	"math"
	"testing"

	"semgate/internal/graph"
)

func testAtom() *graph.Atom {
	return &graph.Atom{
		ID:     "n0",
		Label:  "parser",
		Status: graph.StatusAnchored,
		Tags:   []graph.Tag{graph.TagWitness},
	}
}

func TestForAtomDeterministic(t *testing.T) {
	a := ForAtom(testAtom())
	b := ForAtom(testAtom())
	if a != b {
		t.Fatalf("vectors differ for identical atoms: %v vs %v", a, b)
	}
}

func TestForAtomHarmAxis(t *testing.T) {
	at := testAtom()
	at.HarmProbability = 0.8
	at.Scored = true
	v := ForAtom(at)
	if v[AxisHarm] != 0.8 {
		t.Fatalf("expected harm axis 0.8, got %v", v[AxisHarm])
	}
}

func TestForAtomAxisRanges(t *testing.T) {
	v := ForAtom(testAtom())
	for i := 0; i < Dim; i++ {
		lo := 0.0
		if i == AxisAgency || i == AxisTemporality {
			lo = -1.0
		}
		if v[i] < lo || v[i] > 1.0 {
			t.Fatalf("axis %d out of range: %v", i, v[i])
		}
	}
}

func TestUntestableRaisesUncertainty(t *testing.T) {
	at := testAtom()
	at.Evidence.Observability = graph.Untestable
	v := ForAtom(at)
	if v[AxisUncertainty] < 0.7 {
		t.Fatalf("expected uncertainty >= 0.7, got %v", v[AxisUncertainty])
	}
}

func TestHarmTagRaisesShadow(t *testing.T) {
	plain := ForAtom(testAtom())
	harmful := testAtom()
	harmful.Tags = append(harmful.Tags, graph.TagHarm)
	v := ForAtom(harmful)
	if v[AxisShadow] < plain[AxisShadow] {
		t.Fatalf("harm tag should not lower shadow: %v < %v", v[AxisShadow], plain[AxisShadow])
	}
}

func TestNormalizeUnitNorm(t *testing.T) {
	v := Normalize(ForAtom(testAtom()))
	n := Norm(v)
	if math.Abs(n-1.0) > 1e-6 {
		t.Fatalf("expected unit norm, got %v", n)
	}
}

func TestNormalizeZeroVector(t *testing.T) {
	var zero Vec
	if Normalize(zero) != zero {
		t.Fatal("normalizing the zero vector should return it unchanged")
	}
}

func TestCosineSelf(t *testing.T) {
	v := ForAtom(testAtom())
	if c := Cosine(v, v); math.Abs(c-1.0) > 1e-9 {
		t.Fatalf("expected self-cosine 1, got %v", c)
	}
}

func TestCosineZeroNorm(t *testing.T) {
	var zero Vec
	if c := Cosine(zero, ForAtom(testAtom())); c != 0 {
		t.Fatalf("expected cosine 0 against zero vector, got %v", c)
	}
}

func TestParseIntentDefault(t *testing.T) {
	if got := ParseIntent("nonsense"); got != IntentImplement {
		t.Fatalf("expected implement fallback, got %s", got)
	}
	if got := ParseIntent("audit"); got != IntentAudit {
		t.Fatalf("expected audit, got %s", got)
	}
}

func TestIdealDirectionClosedSet(t *testing.T) {
	for _, in := range []Intent{IntentImplement, IntentExplain, IntentAudit, IntentExploreParadox, IntentCompress} {
		v := IdealDirection(in)
		if Norm(v) == 0 {
			t.Fatalf("intent %s has a zero ideal direction", in)
		}
	}
	if IdealDirection(Intent("bogus")) != IdealDirection(IntentImplement) {
		t.Fatal("unknown intent should fall back to the implement profile")
	}
}

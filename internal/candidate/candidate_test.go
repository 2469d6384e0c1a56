package candidate

import (
	"reflect"
	"testing"

	"semgate/internal/graph"
)

func TestGenerateEmptyGraph(t *testing.T) {
	if got := Generate(graph.Build(""), DefaultConfig()); got != nil {
		t.Fatalf("expected nil for empty graph, got %d candidates", len(got))
	}
}

func TestGenerateDeterministic(t *testing.T) {
	text := "implement the parser and measure the graph metrics"
	a := Generate(graph.Build(text), DefaultConfig())
	b := Generate(graph.Build(text), DefaultConfig())

	if len(a) != len(b) {
		t.Fatalf("candidate counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i].MemberIDs(), b[i].MemberIDs()) {
			t.Fatalf("candidate %d members differ: %v vs %v", i, a[i].MemberIDs(), b[i].MemberIDs())
		}
	}
}

func TestGenerateBaselineFirst(t *testing.T) {
	g := graph.Build("alpha beta gamma delta")
	cands := Generate(g, DefaultConfig())
	if cands[0].ID != "V0" {
		t.Fatalf("expected first candidate V0, got %s", cands[0].ID)
	}
	if len(cands[0].Atoms) != len(g.Atoms) {
		t.Fatalf("baseline should contain all %d atoms, got %d", len(g.Atoms), len(cands[0].Atoms))
	}
}

func TestGenerateSetSize(t *testing.T) {
	g := graph.Build("one two three four five six seven")
	cands := Generate(g, DefaultConfig())
	if len(cands) < 3 || len(cands) > 5 {
		t.Fatalf("expected 3..5 candidates, got %d", len(cands))
	}
}

func TestGenerateNoDuplicateMemberSets(t *testing.T) {
	g := graph.Build("measure the graph and test the metrics again")
	cands := Generate(g, DefaultConfig())
	seen := map[string]bool{}
	for _, c := range cands {
		key := ""
		for _, id := range c.MemberIDs() {
			key += id + ","
		}
		if seen[key] {
			t.Fatalf("duplicate member set in candidate %s", c.ID)
		}
		seen[key] = true
	}
}

func TestHashPickReturnsMember(t *testing.T) {
	for _, text := range []string{"one", "one two", "measure the graph and test the metrics again"} {
		g := graph.Build(text)
		id := hashPick(g)
		if g.AtomByID(id) == nil {
			t.Fatalf("hash pick for %q returned unknown atom %s", text, id)
		}
	}
}

func TestExpandRespectsBounds(t *testing.T) {
	g := graph.Build("a b c d e f g h i j k l m n o p")
	cfg := DefaultConfig()
	cfg.MaxNodes = 4
	cands := Generate(g, cfg)
	for _, c := range cands[1:] {
		if len(c.Atoms) > cfg.MaxNodes {
			t.Fatalf("candidate %s exceeds node bound: %d > %d", c.ID, len(c.Atoms), cfg.MaxNodes)
		}
	}
}

func TestSubEdgesInduced(t *testing.T) {
	g := graph.Build("alpha beta gamma")
	cands := Generate(g, DefaultConfig())
	for _, c := range cands {
		in := map[string]bool{}
		for _, id := range c.MemberIDs() {
			in[id] = true
		}
		for _, e := range c.Edges {
			if !in[e.From] || !in[e.To] {
				t.Fatalf("candidate %s has edge %s->%s outside its member set", c.ID, e.From, e.To)
			}
		}
	}
}

package stereo

import (
	"testing"

	"semgate/internal/metrics"
)

func report(tsc, health float64, executable bool) *metrics.Report {
	return &metrics.Report{TSCExtended: tsc, Health: health, Executable: executable}
}

func TestCompareEmptySet(t *testing.T) {
	res := Compare(nil)
	if res.BestIndex != -1 {
		t.Fatalf("expected BestIndex -1 for empty set, got %d", res.BestIndex)
	}
}

func TestCompareSingleCandidate(t *testing.T) {
	res := Compare([]*metrics.Report{report(0.4, 0.6, true)})
	if res.BestIndex != 0 {
		t.Fatalf("expected BestIndex 0, got %d", res.BestIndex)
	}
	if res.Alignment != 1.0 {
		t.Fatalf("single candidate alignment must be 1, got %v", res.Alignment)
	}
	if res.GapMax != 0 {
		t.Fatalf("single candidate gap must be 0, got %v", res.GapMax)
	}
}

func TestBestPrefersExecutable(t *testing.T) {
	res := Compare([]*metrics.Report{
		report(0.2, 0.5, true),
		report(0.9, 0.9, false),
	})
	if res.BestIndex != 0 {
		t.Fatalf("expected executable candidate chosen, got index %d", res.BestIndex)
	}
}

func TestBestFallsBackWhenNothingExecutable(t *testing.T) {
	res := Compare([]*metrics.Report{
		report(0.2, 0.5, false),
		report(0.9, 0.9, false),
	})
	if res.BestIndex != 1 {
		t.Fatalf("expected overall maximum as fallback, got index %d", res.BestIndex)
	}
}

func TestBestTieKeepsLowerIndex(t *testing.T) {
	res := Compare([]*metrics.Report{
		report(0.5, 0.4, true),
		report(0.5, 0.8, true),
	})
	if res.BestIndex != 0 {
		t.Fatalf("tie must resolve to lower index, got %d", res.BestIndex)
	}
}

func TestPerfectRankAgreement(t *testing.T) {
	res := Compare([]*metrics.Report{
		report(0.9, 0.9, true),
		report(0.5, 0.5, true),
		report(0.1, 0.1, true),
	})
	if res.Alignment != 1.0 {
		t.Fatalf("identical rankings must align at 1, got %v", res.Alignment)
	}
}

func TestFullRankDisagreement(t *testing.T) {
	// Best by value (index 0) ranks last by health across three candidates.
	res := Compare([]*metrics.Report{
		report(0.9, 0.1, true),
		report(0.5, 0.5, true),
		report(0.1, 0.9, true),
	})
	if res.BestIndex != 0 {
		t.Fatalf("expected index 0 chosen, got %d", res.BestIndex)
	}
	if res.Alignment != 0 {
		t.Fatalf("opposite rankings must align at 0, got %v", res.Alignment)
	}
	if res.GapMax <= 0 {
		t.Fatalf("disagreeing channels must produce a positive gap, got %v", res.GapMax)
	}
}

func TestDegenerateChannelZeroesZScores(t *testing.T) {
	// All healths equal: the health channel carries no signal and must not
	// manufacture gaps on its own.
	res := Compare([]*metrics.Report{
		report(0.9, 0.5, true),
		report(0.1, 0.5, true),
	})
	for i, g := range res.Gaps {
		if g < 0 {
			t.Fatalf("gap %d negative: %v", i, g)
		}
	}
	if res.Gaps[0] != res.Gaps[1] {
		t.Fatalf("symmetric values must produce symmetric gaps: %v", res.Gaps)
	}
}

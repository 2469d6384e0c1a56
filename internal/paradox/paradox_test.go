package paradox

import "testing"

func TestTwoViolationsDoNotSustain(t *testing.T) {
	cfg := DefaultConfig()
	var ts Trackers
	var sustained bool
	for cycle := 1; cycle <= 2; cycle++ {
		ts, sustained = ts.Next(0.1, 0, cycle, cfg)
	}
	if sustained {
		t.Fatal("two violating cycles must not sustain a paradox")
	}
	if ts.Alignment.Phase != PhaseWatching {
		t.Fatalf("expected watching phase, got %s", ts.Alignment.Phase)
	}
}

func TestThreeViolationsSustain(t *testing.T) {
	cfg := DefaultConfig()
	var ts Trackers
	var sustained bool
	for cycle := 1; cycle <= 3; cycle++ {
		ts, sustained = ts.Next(0.1, 0, cycle, cfg)
	}
	if !sustained {
		t.Fatal("three consecutive violations must sustain a paradox")
	}
	if ts.Alignment.SinceCycle != 3 {
		t.Fatalf("expected paradox entered at cycle 3, got %d", ts.Alignment.SinceCycle)
	}
}

func TestBreakResetsStreak(t *testing.T) {
	cfg := DefaultConfig()
	var ts Trackers
	var sustained bool
	ts, _ = ts.Next(0.1, 0, 1, cfg)
	ts, _ = ts.Next(0.1, 0, 2, cfg)
	ts, _ = ts.Next(0.9, 0, 3, cfg) // clean cycle
	ts, _ = ts.Next(0.1, 0, 4, cfg)
	ts, sustained = ts.Next(0.1, 0, 5, cfg)
	if sustained {
		t.Fatal("a clean cycle must reset the violation streak")
	}
}

func TestParadoxPersistsThroughCleanCycles(t *testing.T) {
	cfg := DefaultConfig()
	var ts Trackers
	for cycle := 1; cycle <= 3; cycle++ {
		ts, _ = ts.Next(0.1, 0, cycle, cfg)
	}
	ts, sustained := ts.Next(0.9, 0, 4, cfg)
	if !sustained {
		t.Fatal("an established paradox must survive clean cycles")
	}
	ts.Reset()
	if ts.Sustained() {
		t.Fatal("explicit reset must clear the paradox")
	}
}

func TestGapChannelIndependent(t *testing.T) {
	cfg := DefaultConfig()
	var ts Trackers
	var sustained bool
	for cycle := 1; cycle <= 3; cycle++ {
		ts, sustained = ts.Next(0.9, 2.0, cycle, cfg) // alignment fine, gap violating
	}
	if !sustained {
		t.Fatal("gap channel alone must be able to sustain a paradox")
	}
	if ts.Alignment.Phase == PhaseParadox {
		t.Fatal("alignment channel should stay clear")
	}
	if got := ts.quantity(); got != "gap" {
		t.Fatalf("expected gap quantity, got %s", got)
	}
}

func TestNextIsPure(t *testing.T) {
	cfg := DefaultConfig()
	var ts Trackers
	before := ts
	ts.Next(0.1, 0, 1, cfg)
	if ts != before {
		t.Fatal("Next must not mutate the receiver")
	}
}

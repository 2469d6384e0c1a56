package replay

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"semgate/internal/engine"
	"semgate/internal/failcode"
	"semgate/internal/session"
	"semgate/internal/vecspace"
)

// floatTolerance absorbs formatting round-trips through fixture JSON. The
// engine itself is bit-exact; the tolerance only covers decimal encoding.
const floatTolerance = 1e-9

// #region verify
// Result is the outcome of one fixture verification.
type Result struct {
	Pass bool
	Diff string // empty when Pass
}

// Verify re-runs the fixture's measurement against a fresh engine and diffs
// the output essentials against the pinned expectation.
func Verify(f *Fixture, cfg engine.Config, caps session.Caps) Result {
	got := run(f, cfg, caps)
	diff := cmp.Diff(f.Expected, got, cmpopts.EquateApprox(0, floatTolerance))
	return Result{Pass: diff == "", Diff: diff}
}

// Record runs the fixture's input and pins the current output as expected.
func Record(f *Fixture, cfg engine.Config, caps session.Caps) {
	f.Expected = run(f, cfg, caps)
}

func run(f *Fixture, cfg engine.Config, caps session.Caps) Expected {
	st := session.New(caps)
	if f.StartState != nil {
		copied := *f.StartState
		st = &copied
		st.SetCaps(caps)
	}
	eng := engine.New(cfg, nil)
	m, ctr := eng.Measure(f.Text, vecspace.ParseIntent(f.Intent), st)
	return Expected{
		Verdict:   string(ctr.Verdict),
		ChosenID:  ctr.ChosenID,
		FailCodes: codeNames(ctr.FailCodes),
		Metrics:   m,
	}
}

func codeNames(diags []failcode.Diagnosis) []string {
	if len(diags) == 0 {
		return nil
	}
	names := make([]string, len(diags))
	for i, d := range diags {
		names[i] = string(d.Code)
	}
	return names
}

// #endregion verify

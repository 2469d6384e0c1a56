// Package engine wires the full measurement cycle: build the semantic graph,
// score it, generate and gate candidates, run the metric battery, compare
// stereoscopically, update the paradox trackers, resolve fail codes, and emit
// the contract. One Measure call performs exactly one state mutation.
package engine

import (
	"go.uber.org/zap"

	"semgate/internal/candidate"
	"semgate/internal/contract"
	"semgate/internal/ethics"
	"semgate/internal/failcode"
	"semgate/internal/graph"
	"semgate/internal/metrics"
	"semgate/internal/paradox"
	"semgate/internal/session"
	"semgate/internal/stereo"
	"semgate/internal/vecspace"
)

// #region config
// Config bundles the subsystem configurations.
type Config struct {
	Candidates candidate.Config `yaml:"candidates"`
	Ethics     ethics.Config    `yaml:"ethics"`
	Metrics    metrics.Config   `yaml:"metrics"`
	Paradox    paradox.Config   `yaml:"paradox"`
	FailCodes  failcode.Config  `yaml:"fail_codes"`
}

// DefaultConfig returns the standard configuration for every subsystem.
func DefaultConfig() Config {
	return Config{
		Candidates: candidate.DefaultConfig(),
		Ethics:     ethics.DefaultConfig(),
		Metrics:    metrics.DefaultConfig(),
		Paradox:    paradox.DefaultConfig(),
		FailCodes:  failcode.DefaultConfig(),
	}
}

// #endregion config

// #region engine
// Engine runs measurement cycles. Safe for sequential use; concurrent cycles
// against one State must be serialized by the caller.
type Engine struct {
	cfg     Config
	gate    *ethics.Gate
	metrics *metrics.Engine
	log     *zap.Logger
}

// New creates an engine. A nil logger disables logging.
func New(cfg Config, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		gate:    ethics.NewGate(cfg.Ethics),
		metrics: metrics.NewEngine(cfg.Metrics),
		log:     log,
	}
}

// #endregion engine

// #region measure
// Measure runs one full cycle over the input text and mutates the state
// exactly once. Determinism holds: identical text, intent, and state always
// produce identical output.
func (e *Engine) Measure(text string, intent vecspace.Intent, st *session.State) (contract.Metrics, contract.Contract) {
	cycle := st.Cycle + 1

	g := graph.Build(text)
	if g.Empty() {
		return e.measureEmpty(st, cycle)
	}

	e.gate.ScoreGraph(g)

	cands := candidate.Generate(g, e.cfg.Candidates)
	memberSets := make([][]*graph.Atom, len(cands))
	for i, c := range cands {
		memberSets[i] = c.Atoms
	}
	setRes := e.gate.EvaluateSet(memberSets)
	for i, c := range cands {
		c.Executable = setRes.Executable[i]
	}

	reports := make([]*metrics.Report, len(cands))
	for i, c := range cands {
		reports[i] = e.metrics.Evaluate(c, intent, st.Params, st, setRes.Coefficients[i], setRes.Executable[i])
	}

	cmp := stereo.Compare(reports)
	chosen := cands[cmp.BestIndex]
	chosenRep := reports[cmp.BestIndex]

	// Trackers advance purely first so MU assignment and the fail-code
	// resolver see this cycle's sustained status before the state mutation.
	trackers, sustained := st.Trackers.Next(cmp.Alignment, cmp.GapMax, cycle, e.cfg.Paradox)
	markers := paradox.AssignMu(chosen, trackers, cycle)
	muDensity := paradox.MuDensity(chosen)

	primary, secondary := failcode.Resolve(failcode.Input{
		EthicalMean:     setRes.MeanScore,
		BlockedFraction: setRes.Blocked,
		Sustained:       sustained,
		MuDensity:       muDensity,
		ShadowMagnitude: chosenRep.ShadowMagnitude,
		Health:          chosenRep.Health,
		Flow:            chosenRep.Flow,
		FlowHistory:     st.Flow.Values,
		CI:              chosenRep.CI,
		TI:              chosenRep.TI,
	}, e.cfg.FailCodes)

	m := buildMetrics(chosenRep, cmp, setRes, muDensity)

	st.Update(session.Observation{
		Alignment:    cmp.Alignment,
		GapMax:       cmp.GapMax,
		Flow:         chosenRep.Flow,
		MuDensity:    muDensity,
		Difficulty:   chosenRep.Difficulty,
		Executable:   chosenRep.Executable,
		ChosenID:     chosen.ID,
		Direction:    chosenRep.Direction,
		Health:       chosenRep.Health,
		EthicalScore: setRes.MeanScore,
		Trackers:     trackers,
		Markers:      markers,
	})

	atoms := make([]*graph.Atom, len(g.Atoms))
	for i := range g.Atoms {
		atoms[i] = &g.Atoms[i]
	}
	chosenSet := make(map[string]bool, len(chosen.Atoms))
	for _, a := range chosen.Atoms {
		chosenSet[a.ID] = true
	}

	ctr := contract.Contract{
		Verdict:        contract.VerdictPass,
		CandidateCount: len(cands),
		ActiveCount:    setRes.ActiveCount,
		ChosenID:       chosen.ID,
		Claims:         contract.ClaimsFor(atoms, chosenSet, sustained),
		Metrics:        m,
		Params:         st.Params,
		Trace:          contract.BuildTrace(atoms, st.Cycle),
	}
	if primary != nil {
		ctr.Verdict = contract.VerdictFail
		ctr.FailCodes = append([]failcode.Diagnosis{*primary}, secondary...)
		ctr.NextStep = primary.NextStep
	}

	e.log.Info("cycle measured",
		zap.Int("cycle", st.Cycle),
		zap.String("verdict", string(ctr.Verdict)),
		zap.String("chosen", chosen.ID),
		zap.Int("candidates", len(cands)),
		zap.Int("active", setRes.ActiveCount),
		zap.Float64("tsc", chosenRep.TSCExtended),
		zap.Float64("health", chosenRep.Health),
	)
	return m, ctr
}

// measureEmpty handles the no-atoms cycle: the counter still advances, but
// no metric history is recorded and the contract carries an all-zero map.
func (e *Engine) measureEmpty(st *session.State, cycle int) (contract.Metrics, contract.Contract) {
	primary, _ := failcode.Resolve(failcode.Input{EmptyGraph: true}, e.cfg.FailCodes)
	st.AdvanceEmpty()

	m := contract.EmptyMetrics()
	ctr := contract.Contract{
		Verdict:   contract.VerdictFail,
		Metrics:   m,
		Params:    st.Params,
		FailCodes: []failcode.Diagnosis{*primary},
		NextStep:  primary.NextStep,
		Trace:     contract.Trace{Cycle: st.Cycle},
	}
	e.log.Info("cycle measured",
		zap.Int("cycle", cycle),
		zap.String("verdict", string(ctr.Verdict)),
		zap.String("fail_code", string(primary.Code)),
	)
	return m, ctr
}

// #endregion measure

// #region metrics-map
func buildMetrics(rep *metrics.Report, cmp stereo.Result, set ethics.SetResult, muDensity float64) contract.Metrics {
	m := contract.EmptyMetrics()
	m["TI"] = rep.TI
	m["CI"] = rep.CI
	m["AR"] = rep.AR
	m["SQ_proxy"] = rep.SQ
	m["Phi_proxy"] = rep.Phi
	m["GBI_proxy"] = rep.GBI
	m["GNS_proxy"] = rep.GNS
	m["flow_rate"] = rep.Flow
	m["TSC_score"] = rep.TSCExtended
	m["SCAV_health"] = rep.Health
	m["Stereoscopic_alignment"] = cmp.Alignment
	m["Stereoscopic_gap_max"] = cmp.GapMax
	m["Ethical_score_candidates"] = set.MeanScore
	m["Mu_density"] = muDensity
	m["Blocked_fraction"] = set.Blocked
	return m
}

// #endregion metrics-map

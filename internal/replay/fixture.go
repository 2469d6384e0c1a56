// Package replay records and verifies measurement fixtures. A fixture pins
// one input, an optional starting state, and the output essentials; Verify
// re-runs the engine and diffs. Because the engine is deterministic, any
// non-empty diff means behavior changed.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"semgate/internal/contract"
	"semgate/internal/session"
)

// #region fixture-types
// Expected is the pinned output surface of one measurement.
type Expected struct {
	Verdict   string           `json:"verdict"`
	ChosenID  string           `json:"chosen_id"`
	FailCodes []string         `json:"fail_codes,omitempty"`
	Metrics   contract.Metrics `json:"metrics"`
}

// Fixture is the top-level JSON structure for one recorded measurement.
type Fixture struct {
	Description string         `json:"description"`
	Text        string         `json:"text"`
	Intent      string         `json:"intent"`
	StartState  *session.State `json:"start_state,omitempty"`
	Expected    Expected       `json:"expected"`
}

// #endregion fixture-types

// #region fixture-io
// Load reads and parses a JSON fixture file.
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Save writes a fixture as indented JSON.
func Save(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-io

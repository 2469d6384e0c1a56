package store

import (
	"path/filepath"
	"testing"

	"semgate/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "semgate.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadStateFresh(t *testing.T) {
	s := openTestStore(t)
	st, err := s.LoadState(session.DefaultCaps())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st.Cycle != 0 {
		t.Fatalf("fresh state must start at cycle 0, got %d", st.Cycle)
	}
}

func TestStateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	caps := session.DefaultCaps()

	st := session.New(caps)
	st.Update(session.Observation{Alignment: 0.75, ChosenID: "V2", Health: 0.5})
	if err := s.SaveState(st); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := s.LoadState(caps)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Cycle != 1 {
		t.Fatalf("expected cycle 1, got %d", loaded.Cycle)
	}
	if loaded.Alignment.Len() != 1 || loaded.Alignment.Values[0] != 0.75 {
		t.Fatalf("alignment history lost: %v", loaded.Alignment.Values)
	}
	if len(loaded.Chosen) != 1 || loaded.Chosen[0] != "V2" {
		t.Fatalf("chosen history lost: %v", loaded.Chosen)
	}
	if loaded.Params.Alpha.Cycle != 1 {
		t.Fatalf("params provenance lost: %+v", loaded.Params.Alpha)
	}
}

func TestSaveStateOverwrites(t *testing.T) {
	s := openTestStore(t)
	caps := session.DefaultCaps()

	st := session.New(caps)
	if err := s.SaveState(st); err != nil {
		t.Fatalf("first save: %v", err)
	}
	st.Update(session.Observation{ChosenID: "V0"})
	if err := s.SaveState(st); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, err := s.LoadState(caps)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Cycle != 1 {
		t.Fatalf("expected overwritten state at cycle 1, got %d", loaded.Cycle)
	}
}

func TestCycleLogAppendAndList(t *testing.T) {
	s := openTestStore(t)

	for i := 1; i <= 3; i++ {
		err := s.AppendCycle(CycleRecord{
			Cycle:       i,
			Intent:      "implement",
			Verdict:     "PASS",
			MetricsJSON: "{}",
			ParamsJSON:  "{}",
		})
		if err != nil {
			t.Fatalf("append cycle %d: %v", i, err)
		}
	}

	records, err := s.ListCycles(2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Cycle != 3 || records[1].Cycle != 2 {
		t.Fatalf("expected newest first, got cycles %d, %d", records[0].Cycle, records[1].Cycle)
	}
	if records[0].ID == "" || records[0].CreatedAt.IsZero() {
		t.Fatal("append must assign id and timestamp")
	}
	if records[0].PrimaryCode != "" {
		t.Fatalf("expected empty primary code for PASS, got %s", records[0].PrimaryCode)
	}
}

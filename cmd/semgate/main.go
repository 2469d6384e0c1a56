// Command semgate measures text against a declared intent and prints the
// resulting contract. Session state persists in SQLite between invocations,
// so consecutive runs form one measurement session.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"semgate/internal/config"
	"semgate/internal/contract"
	"semgate/internal/engine"
	"semgate/internal/logging"
	"semgate/internal/replay"
	"semgate/internal/session"
	"semgate/internal/store"
	"semgate/internal/vecspace"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// #region root
type app struct {
	cfgPath string

	cfg config.Config
	log *zap.Logger
}

// setup loads config and builds the logger. Called from every subcommand's
// PreRunE so flag parsing happens first.
func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "semgate",
		Short:         "Deterministic semantic measurement and gate engine",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.cfgPath, "config", "", "path to YAML config file")
	root.AddCommand(newMeasureCmd(a), newHistoryCmd(a), newReplayCmd(a), newResetCmd(a))
	return root
}

// #endregion root

// #region measure
func newMeasureCmd(a *app) *cobra.Command {
	var intentName string
	cmd := &cobra.Command{
		Use:   "measure [text]",
		Short: "Run one measurement cycle and print the contract",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if text == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(raw)
			}

			db, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			st, err := db.LoadState(a.cfg.Session)
			if err != nil {
				return err
			}

			eng := engine.New(a.cfg.Engine, a.log)
			intent := vecspace.ParseIntent(intentName)
			m, ctr := eng.Measure(text, intent, st)

			if err := db.SaveState(st); err != nil {
				return err
			}
			if err := appendCycle(db, st, intentName, m, ctr); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), ctr)
		},
	}
	cmd.Flags().StringVar(&intentName, "intent", "implement", "declared intent (implement|explain|audit|explore_paradox|compress)")
	return cmd
}

func appendCycle(db *store.Store, st *session.State, intent string, m contract.Metrics, ctr contract.Contract) error {
	metricsJSON, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	paramsJSON, err := json.Marshal(st.Params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	code := ""
	if len(ctr.FailCodes) > 0 {
		code = string(ctr.FailCodes[0].Code)
	}
	return db.AppendCycle(store.CycleRecord{
		Cycle:       st.Cycle,
		Intent:      intent,
		Verdict:     string(ctr.Verdict),
		PrimaryCode: code,
		MetricsJSON: string(metricsJSON),
		ParamsJSON:  string(paramsJSON),
	})
}

// #endregion measure

// #region history
func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent measurement cycles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			records, err := db.ListCycles(limit)
			if err != nil {
				return err
			}
			for _, rec := range records {
				code := rec.PrimaryCode
				if code == "" {
					code = "-"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "cycle %d  %s  intent=%s  %s  %s\n",
					rec.Cycle, rec.Verdict, rec.Intent, code,
					rec.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum cycles to list")
	return cmd
}

// #endregion history

// #region replay
func newReplayCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Record or verify measurement fixtures",
	}

	record := &cobra.Command{
		Use:   "record <fixture.json>",
		Short: "Re-run a fixture's input and pin the current output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := replay.Load(args[0])
			if err != nil {
				return err
			}
			replay.Record(f, a.cfg.Engine, a.cfg.Session)
			if err := replay.Save(args[0], f); err != nil {
				return err
			}
			a.log.Info("fixture recorded", zap.String("path", args[0]))
			return nil
		},
	}

	verify := &cobra.Command{
		Use:   "verify <fixture.json>...",
		Short: "Verify fixtures against the current engine",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				f, err := replay.Load(path)
				if err != nil {
					return err
				}
				res := replay.Verify(f, a.cfg.Engine, a.cfg.Session)
				if res.Pass {
					fmt.Fprintf(cmd.OutOrStdout(), "PASS %s\n", path)
					continue
				}
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s\n%s\n", path, res.Diff)
			}
			if failed > 0 {
				return fmt.Errorf("%d fixture(s) failed", failed)
			}
			return nil
		},
	}

	cmd.AddCommand(record, verify)
	return cmd
}

// #endregion replay

// #region reset
func newResetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the paradox trackers and accumulated MU markers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(a.cfg.Store.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			st, err := db.LoadState(a.cfg.Session)
			if err != nil {
				return err
			}
			st.ResetParadox()
			if err := db.SaveState(st); err != nil {
				return err
			}
			a.log.Info("paradox trackers reset", zap.Int("cycle", st.Cycle))
			return nil
		},
	}
}

// #endregion reset

// #region output
func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// #endregion output

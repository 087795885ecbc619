package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"wolfsheep/internal/results"
	"wolfsheep/internal/search"
)

func newTuneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Search for parameters that delay population collapse",
		Long: `Tune scores the configured parameters, samples random candidates from
the search space, then runs coordinate-descent passes over each
dimension. A candidate's score is the mean over --samples runs of the
ticks survived plus the standard deviation of both populations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			space, err := loadSpace(cmd, search.DefaultSpace())
			if err != nil {
				return err
			}
			samples, _ := cmd.Flags().GetInt("samples")
			random, _ := cmd.Flags().GetInt("random")
			passes, _ := cmd.Flags().GetInt("passes")
			workers, _ := cmd.Flags().GetInt("workers")
			dbPath, _ := cmd.Flags().GetString("db")
			study, _ := cmd.Flags().GetString("study")

			ctx := cmd.Context()
			log := newLogger(cmd)
			out := cmd.OutOrStdout()

			opts := search.Options{
				Samples:      samples,
				RandomTrials: random,
				Passes:       passes,
				Workers:      workers,
				Limits:       readLimits(cmd),
				Logger:       log,
			}

			var store *results.Store
			var saveErr error
			if dbPath != "" {
				if store, err = results.Open(dbPath); err != nil {
					return err
				}
				defer store.Close()
				if study == "" {
					study = time.Now().UTC().Format("tune-20060102-150405")
				}
				opts.OnTrial = func(tr search.Trial) {
					if saveErr != nil {
						return
					}
					saveErr = store.SaveTrial(ctx, results.Trial{Study: study, Number: tr.Number, Params: tr.Params, Score: tr.Score})
				}
			}

			fmt.Fprintf(out, "Tuning %d parameters (%d workers, %d samples, %d random trials, %d passes)\n",
				len(space.Dims), workers, samples, random, passes)
			res, err := search.Tune(ctx, cfg, space, opts)
			if err != nil {
				return err
			}
			if saveErr != nil {
				return fmt.Errorf("saving trials: %w", saveErr)
			}

			fmt.Fprintf(out, "Baseline: score %.2f\n", res.Trace[0].Score)
			fmt.Fprintf(out, "\nBest found: score %.2f after %d trials\n", res.Score, res.Trials)
			printParams(out, space, res.Params)
			if len(res.Trace) > 1 {
				fmt.Fprintln(out, "\nImprovements:")
				for _, rec := range res.Trace[1:] {
					if rec.Value == "" {
						fmt.Fprintf(out, "  pass %d: %s -> score=%.2f\n", rec.Pass, rec.Parameter, rec.Score)
						continue
					}
					fmt.Fprintf(out, "  pass %d: %s=%s -> score=%.2f\n", rec.Pass, rec.Parameter, rec.Value, rec.Score)
				}
			}
			if store != nil {
				fmt.Fprintf(out, "\nTrials stored as study %q\n", study)
			}
			return nil
		},
	}

	limitFlags(cmd)
	cmd.Flags().String("space", "", "YAML file with search ranges (default: built-in ranges)")
	cmd.Flags().Int("random", 16, "random candidates before coordinate descent")
	cmd.Flags().Int("passes", 3, "coordinate-descent passes to execute")
	cmd.Flags().Int("workers", runtime.NumCPU(), "parallel candidate evaluations")
	cmd.Flags().String("db", "", "record every trial in this SQLite database")
	cmd.Flags().String("study", "", "study name for stored trials (default: timestamp)")
	return cmd
}

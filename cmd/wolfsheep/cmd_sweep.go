package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"wolfsheep/internal/search"
)

// defaultSweepSpace is a small grid over the starting populations.
func defaultSweepSpace() search.Space {
	return search.Space{Dims: []search.Dimension{
		{Key: "initial_sheep", Kind: search.KindInt, Values: []float64{50, 100, 200}},
		{Key: "initial_wolves", Kind: search.KindInt, Values: []float64{10, 25, 50}},
		{Key: "grass", Kind: search.KindBool, Choices: []bool{false, true}},
	}}
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Score every combination of a parameter grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			space, err := loadSpace(cmd, defaultSweepSpace())
			if err != nil {
				return err
			}
			samples, _ := cmd.Flags().GetInt("samples")
			workers, _ := cmd.Flags().GetInt("workers")
			top, _ := cmd.Flags().GetInt("top")

			out := cmd.OutOrStdout()
			log := newLogger(cmd)

			combos := len(space.Combinations())
			fmt.Fprintf(out, "Sweeping %d parameter sets (%d workers, %d samples)\n", combos, workers, samples)

			start := time.Now()
			done := 0
			trials, err := search.Sweep(cmd.Context(), cfg, space, search.SweepOptions{
				Samples: samples,
				Workers: workers,
				Limits:  readLimits(cmd),
				OnTrial: func(tr search.Trial) {
					done++
					log.Debug("trial finished", "n", tr.Number, "score", tr.Score, "done", done, "total", combos)
				},
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(out, "\nTop %d results (elapsed %s):\n", min(top, len(trials)), elapsed.Round(time.Millisecond))
			for i := 0; i < len(trials) && i < top; i++ {
				tr := trials[i]
				fmt.Fprintf(out, "%2d) score=%.2f params=%s\n", i+1, tr.Score, formatParams(space, tr.Params))
			}
			if len(trials) > 0 {
				fmt.Fprintf(out, "\nBest overall: score=%.2f params=%s\n", trials[0].Score, formatParams(space, trials[0].Params))
			}
			return nil
		},
	}

	limitFlags(cmd)
	cmd.Flags().String("space", "", "YAML file with the grid (default: starting populations)")
	cmd.Flags().Int("workers", runtime.NumCPU(), "number of worker goroutines")
	cmd.Flags().Int("top", 5, "results to print")
	return cmd
}

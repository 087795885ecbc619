package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wolfsheep/internal/results"
	"wolfsheep/internal/sims/wolfsheep"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the model for a fixed number of ticks",
		Long: `Run builds a model from the configured parameters, ticks it, and
prints the population counts. The series can be exported as CSV, plotted
as a PNG chart, or stored in a results database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			steps, _ := cmd.Flags().GetInt("steps")
			every, _ := cmd.Flags().GetInt("every")
			csvPath, _ := cmd.Flags().GetString("csv")
			chartPath, _ := cmd.Flags().GetString("chart")
			dbPath, _ := cmd.Flags().GetString("db")
			if steps < 0 {
				return fmt.Errorf("steps must be >= 0, got %d", steps)
			}

			log := newLogger(cmd)
			out := cmd.OutOrStdout()

			var series wolfsheep.Series
			model, err := wolfsheep.New(cfg, wolfsheep.WithSink(&series), wolfsheep.WithLogger(log))
			if err != nil {
				return err
			}
			series.Record(wolfsheep.Sample{
				Sheep:  model.BreedCount(wolfsheep.Sheep),
				Wolves: model.BreedCount(wolfsheep.Wolf),
				Grass:  model.GrownGrass(),
			})

			ctx := cmd.Context()
			fmt.Fprintf(out, "%6s %6s %6s %6s\n", "step", "sheep", "wolves", "grass")
			printSample(cmd, series.Samples()[0])
			for i := 1; i <= steps; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				model.Tick()
				if (every > 0 && i%every == 0) || i == steps {
					printSample(cmd, series.Samples()[series.Len()-1])
				}
			}
			log.Info("run finished", "steps", model.Steps(), "sheep", model.BreedCount(wolfsheep.Sheep), "wolves", model.BreedCount(wolfsheep.Wolf))

			samples := series.Samples()
			if csvPath != "" {
				if err := writeFile(csvPath, func(f *os.File) error { return results.WriteCSV(f, samples) }); err != nil {
					return fmt.Errorf("writing csv: %w", err)
				}
				log.Info("csv written", "path", csvPath)
			}
			if chartPath != "" {
				opts := results.ChartOptions{Title: fmt.Sprintf("Wolf Sheep Predation (seed %d)", cfg.Seed)}
				if err := writeFile(chartPath, func(f *os.File) error { return results.RenderChart(f, samples, opts) }); err != nil {
					return fmt.Errorf("writing chart: %w", err)
				}
				log.Info("chart written", "path", chartPath)
			}
			if dbPath != "" {
				store, err := results.Open(dbPath)
				if err != nil {
					return err
				}
				defer store.Close()
				id, err := store.SaveRun(ctx, cfg, samples)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "stored run %s\n", id)
			}
			return nil
		},
	}

	cmd.Flags().Int("steps", 100, "ticks to simulate")
	cmd.Flags().Int("every", 10, "print counts every N ticks (0 prints only the last)")
	cmd.Flags().String("csv", "", "write the population series to this CSV file")
	cmd.Flags().String("chart", "", "render the population series to this PNG file")
	cmd.Flags().String("db", "", "store the run in this SQLite database")
	return cmd
}

func printSample(cmd *cobra.Command, s wolfsheep.Sample) {
	fmt.Fprintf(cmd.OutOrStdout(), "%6d %6d %6d %6d\n", s.Step, s.Sheep, s.Wolves, s.Grass)
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"wolfsheep/internal/logging"
	"wolfsheep/internal/search"
	"wolfsheep/internal/sims/wolfsheep"
)

// loadConfig builds the model parameters from --config, then applies every
// --set override in order.
func loadConfig(cmd *cobra.Command) (wolfsheep.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	overrides, _ := cmd.Flags().GetStringArray("set")

	cfg := wolfsheep.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = wolfsheep.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, fmt.Errorf("override %q: expected key=value", kv)
		}
		if err := cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
			return cfg, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadSpace reads --space when given and falls back to def otherwise.
func loadSpace(cmd *cobra.Command, def search.Space) (search.Space, error) {
	path, _ := cmd.Flags().GetString("space")
	if path == "" {
		return def, nil
	}
	return search.LoadSpace(path)
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	return logging.NewLogger(level, cmd.ErrOrStderr())
}

// limitFlags registers the collapse bounds shared by tune and sweep.
func limitFlags(cmd *cobra.Command) {
	def := search.DefaultLimits()
	cmd.Flags().Int("lower", def.Lower, "stop a run once either population is at or below this")
	cmd.Flags().Int("upper", def.Upper, "stop a run once either population exceeds this")
	cmd.Flags().Int("timeout", def.Timeout, "maximum ticks per run")
	cmd.Flags().Int("samples", 3, "runs averaged per candidate")
}

func readLimits(cmd *cobra.Command) search.Limits {
	lower, _ := cmd.Flags().GetInt("lower")
	upper, _ := cmd.Flags().GetInt("upper")
	timeout, _ := cmd.Flags().GetInt("timeout")
	return search.Limits{Lower: lower, Upper: upper, Timeout: timeout}
}

func printParams(w io.Writer, space search.Space, params map[string]string) {
	fmt.Fprintln(w, "Parameters:")
	for _, d := range space.Dims {
		fmt.Fprintf(w, "  %s=%s\n", d.Key, params[d.Key])
	}
}

func formatParams(space search.Space, params map[string]string) string {
	parts := make([]string, 0, len(space.Dims))
	for _, d := range space.Dims {
		parts = append(parts, d.Key+"="+params[d.Key])
	}
	return strings.Join(parts, " ")
}

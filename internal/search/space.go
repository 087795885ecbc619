package search

import (
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"wolfsheep/internal/sims/wolfsheep"
	pcore "wolfsheep/pkg/core"
)

// Kind is the value type of a tunable parameter.
type Kind string

const (
	KindInt   Kind = "int"
	KindFloat Kind = "float"
	KindBool  Kind = "bool"
)

// tunable lists every searchable config key with its kind, in the order
// dimensions are sampled and descended.
var tunable = []struct {
	key  string
	kind Kind
}{
	{"initial_sheep", KindInt},
	{"initial_wolves", KindInt},
	{"sheep_reproduce", KindFloat},
	{"wolf_reproduce", KindFloat},
	{"wolf_gain_from_food", KindInt},
	{"grass", KindBool},
	{"grass_regrowth_time", KindInt},
	{"sheep_gain_from_food", KindInt},
	{"moore", KindBool},
}

func kindOf(key string) (Kind, int, bool) {
	for i, t := range tunable {
		if t.key == key {
			return t.kind, i, true
		}
	}
	return "", 0, false
}

// gridPoints is how many evenly spaced values a range contributes when no
// explicit values are listed.
const gridPoints = 5

// Dimension is one searchable parameter. Numeric dimensions sample uniformly
// from [Min, Max]; boolean dimensions pick from Choices. Values, when set,
// replaces the evenly spaced grid used by coordinate descent and sweeps.
type Dimension struct {
	Key     string    `yaml:"-"`
	Kind    Kind      `yaml:"-"`
	Min     float64   `yaml:"min"`
	Max     float64   `yaml:"max"`
	Values  []float64 `yaml:"values,omitempty"`
	Choices []bool    `yaml:"choices,omitempty"`
}

// Space is an ordered set of dimensions.
type Space struct {
	Dims []Dimension
}

// DefaultSpace returns the default search ranges.
func DefaultSpace() Space {
	return Space{Dims: []Dimension{
		{Key: "initial_sheep", Kind: KindInt, Min: 0, Max: 400},
		{Key: "initial_wolves", Kind: KindInt, Min: 0, Max: 400},
		{Key: "sheep_reproduce", Kind: KindFloat, Min: 0, Max: 1},
		{Key: "wolf_reproduce", Kind: KindFloat, Min: 0, Max: 1},
		{Key: "wolf_gain_from_food", Kind: KindInt, Min: 1, Max: 50},
		{Key: "grass", Kind: KindBool, Choices: []bool{false, true}},
		{Key: "grass_regrowth_time", Kind: KindInt, Min: 1, Max: 50},
		{Key: "sheep_gain_from_food", Kind: KindInt, Min: 1, Max: 50},
		{Key: "moore", Kind: KindBool, Choices: []bool{false, true}},
	}}
}

// UnmarshalYAML reads a mapping of config key to range, e.g.
//
//	initial_sheep: {min: 0, max: 400}
//	sheep_reproduce: {min: 0, max: 1, values: [0.02, 0.04, 0.08]}
//	grass: {choices: [false, true]}
func (s *Space) UnmarshalYAML(node *yaml.Node) error {
	var raw map[string]Dimension
	if err := node.Decode(&raw); err != nil {
		return err
	}
	dims := make([]Dimension, 0, len(raw))
	for key, d := range raw {
		kind, _, ok := kindOf(key)
		if !ok {
			return fmt.Errorf("%w: %q is not a tunable parameter", wolfsheep.ErrInvalidConfig, key)
		}
		d.Key, d.Kind = key, kind
		if kind == KindBool && len(d.Choices) == 0 {
			d.Choices = []bool{false, true}
		}
		dims = append(dims, d)
	}
	slices.SortFunc(dims, func(a, b Dimension) int {
		_, ia, _ := kindOf(a.Key)
		_, ib, _ := kindOf(b.Key)
		return ia - ib
	})
	s.Dims = dims
	return s.Validate()
}

// Validate checks that every range is well formed.
func (s Space) Validate() error {
	var problems []string
	for _, d := range s.Dims {
		if _, _, ok := kindOf(d.Key); !ok {
			problems = append(problems, fmt.Sprintf("%s: not a tunable parameter", d.Key))
			continue
		}
		switch d.Kind {
		case KindBool:
			if len(d.Choices) == 0 {
				problems = append(problems, fmt.Sprintf("%s: no choices", d.Key))
			}
		default:
			if math.IsNaN(d.Min) || math.IsNaN(d.Max) || d.Max < d.Min {
				problems = append(problems, fmt.Sprintf("%s: invalid range [%v, %v]", d.Key, d.Min, d.Max))
			}
		}
	}
	if len(problems) > 0 {
		return &wolfsheep.ConfigError{Problems: problems}
	}
	return nil
}

// LoadSpace reads a YAML search space from path.
func LoadSpace(path string) (Space, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Space{}, fmt.Errorf("reading search space: %w", err)
	}
	var s Space
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Space{}, fmt.Errorf("parsing search space %s: %w", path, err)
	}
	return s, nil
}

// Sample draws one value per dimension.
func (s Space) Sample(rng *pcore.RNG) map[string]string {
	out := make(map[string]string, len(s.Dims))
	for _, d := range s.Dims {
		out[d.Key] = d.sample(rng)
	}
	return out
}

// Apply returns base with params assigned. The result is validated.
func Apply(base wolfsheep.Config, params map[string]string) (wolfsheep.Config, error) {
	cfg := base
	for _, t := range tunable {
		v, ok := params[t.key]
		if !ok {
			continue
		}
		if err := cfg.Set(t.key, v); err != nil {
			return base, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

// Params extracts the current values of the space's dimensions from cfg.
func (s Space) Params(cfg wolfsheep.Config) map[string]string {
	all := configParams(cfg)
	out := make(map[string]string, len(s.Dims))
	for _, d := range s.Dims {
		out[d.Key] = all[d.Key]
	}
	return out
}

func configParams(c wolfsheep.Config) map[string]string {
	return map[string]string{
		"initial_sheep":        strconv.Itoa(c.InitialSheep),
		"initial_wolves":       strconv.Itoa(c.InitialWolves),
		"sheep_reproduce":      formatFloat(c.SheepReproduce),
		"wolf_reproduce":       formatFloat(c.WolfReproduce),
		"wolf_gain_from_food":  strconv.Itoa(c.WolfGainFromFood),
		"grass":                strconv.FormatBool(c.Grass),
		"grass_regrowth_time":  strconv.Itoa(c.GrassRegrowthTime),
		"sheep_gain_from_food": strconv.Itoa(c.SheepGainFromFood),
		"moore":                strconv.FormatBool(c.Moore),
	}
}

func (d Dimension) sample(rng *pcore.RNG) string {
	switch d.Kind {
	case KindBool:
		return strconv.FormatBool(d.Choices[rng.IntN(len(d.Choices))])
	case KindInt:
		lo, hi := int(math.Ceil(d.Min)), int(math.Floor(d.Max))
		if hi <= lo {
			return strconv.Itoa(lo)
		}
		return strconv.Itoa(lo + rng.IntN(hi-lo+1))
	default:
		return formatFloat(d.Min + rng.Float64()*(d.Max-d.Min))
	}
}

// Grid returns the candidate values coordinate descent and sweeps try.
func (d Dimension) Grid() []string {
	if d.Kind == KindBool {
		out := make([]string, 0, len(d.Choices))
		for _, c := range d.Choices {
			out = appendUnique(out, strconv.FormatBool(c))
		}
		return out
	}
	values := d.Values
	if len(values) == 0 {
		values = linspace(d.Min, d.Max, gridPoints)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if d.Kind == KindInt {
			out = appendUnique(out, strconv.Itoa(int(math.Round(v))))
		} else {
			out = appendUnique(out, formatFloat(v))
		}
	}
	return out
}

func linspace(lo, hi float64, n int) []float64 {
	if hi <= lo || n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return out
}

func appendUnique(list []string, v string) []string {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

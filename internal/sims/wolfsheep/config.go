package wolfsheep

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds the run parameters. A Model never changes its Config once built.
type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	InitialSheep  int `yaml:"initial_sheep"`
	InitialWolves int `yaml:"initial_wolves"`

	SheepReproduce float64 `yaml:"sheep_reproduce"`
	WolfReproduce  float64 `yaml:"wolf_reproduce"`

	WolfGainFromFood  int `yaml:"wolf_gain_from_food"`
	SheepGainFromFood int `yaml:"sheep_gain_from_food"`

	Grass             bool `yaml:"grass"`
	GrassRegrowthTime int  `yaml:"grass_regrowth_time"`

	// Moore selects the 8-cell neighborhood; otherwise agents move N/E/S/W.
	Moore bool `yaml:"moore"`

	Seed int64 `yaml:"seed"`
}

// DefaultConfig returns the classic Wolf Sheep Predation parameters.
func DefaultConfig() Config {
	return Config{
		Width:             20,
		Height:            20,
		InitialSheep:      100,
		InitialWolves:     50,
		SheepReproduce:    0.04,
		WolfReproduce:     0.05,
		WolfGainFromFood:  20,
		SheepGainFromFood: 4,
		Grass:             true,
		GrassRegrowthTime: 30,
		Moore:             true,
		Seed:              1337,
	}
}

// Validate checks every parameter and reports all violations at once.
func (c Config) Validate() error {
	var problems []string
	if c.Width < 1 {
		problems = append(problems, fmt.Sprintf("width must be >= 1, got %d", c.Width))
	}
	if c.Height < 1 {
		problems = append(problems, fmt.Sprintf("height must be >= 1, got %d", c.Height))
	}
	if c.InitialSheep < 0 {
		problems = append(problems, fmt.Sprintf("initial_sheep must be >= 0, got %d", c.InitialSheep))
	}
	if c.InitialWolves < 0 {
		problems = append(problems, fmt.Sprintf("initial_wolves must be >= 0, got %d", c.InitialWolves))
	}
	if !isProbability(c.SheepReproduce) {
		problems = append(problems, fmt.Sprintf("sheep_reproduce must be in [0,1], got %v", c.SheepReproduce))
	}
	if !isProbability(c.WolfReproduce) {
		problems = append(problems, fmt.Sprintf("wolf_reproduce must be in [0,1], got %v", c.WolfReproduce))
	}
	if c.WolfGainFromFood < 1 {
		problems = append(problems, fmt.Sprintf("wolf_gain_from_food must be >= 1, got %d", c.WolfGainFromFood))
	}
	if c.SheepGainFromFood < 1 {
		problems = append(problems, fmt.Sprintf("sheep_gain_from_food must be >= 1, got %d", c.SheepGainFromFood))
	}
	if c.GrassRegrowthTime < 0 {
		problems = append(problems, fmt.Sprintf("grass_regrowth_time must be >= 0, got %d", c.GrassRegrowthTime))
	}
	if len(problems) > 0 {
		return &ConfigError{Problems: problems}
	}
	return nil
}

func isProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// LoadConfig reads a YAML file over DefaultConfig. Keys missing from the
// file keep their default values. The result is not validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Keys use the YAML names. Unparseable values are reported rather than skipped.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	for key, v := range cfg {
		if err := c.Set(key, v); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Set assigns a single parameter by its YAML key.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "w", "width":
		c.Width, err = strconv.Atoi(value)
	case "h", "height":
		c.Height, err = strconv.Atoi(value)
	case "initial_sheep":
		c.InitialSheep, err = strconv.Atoi(value)
	case "initial_wolves":
		c.InitialWolves, err = strconv.Atoi(value)
	case "sheep_reproduce":
		c.SheepReproduce, err = strconv.ParseFloat(value, 64)
	case "wolf_reproduce":
		c.WolfReproduce, err = strconv.ParseFloat(value, 64)
	case "wolf_gain_from_food":
		c.WolfGainFromFood, err = strconv.Atoi(value)
	case "sheep_gain_from_food":
		c.SheepGainFromFood, err = strconv.Atoi(value)
	case "grass":
		c.Grass, err = strconv.ParseBool(value)
	case "grass_regrowth_time":
		c.GrassRegrowthTime, err = strconv.Atoi(value)
	case "moore":
		c.Moore, err = strconv.ParseBool(value)
	case "seed":
		c.Seed, err = strconv.ParseInt(value, 10, 64)
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrInvalidConfig, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
	}
	return nil
}

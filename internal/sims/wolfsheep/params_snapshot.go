package wolfsheep

import (
	"fmt"
	"strconv"

	"wolfsheep/internal/core"
)

// Parameters reports the active run parameters. Pending edits show up only
// after the next Reset.
func (m *Model) Parameters() core.ParameterSnapshot { return snapshotOf(m.cfg) }

// PendingParameters reports the parameters staged for the next Reset.
func (m *Model) PendingParameters() core.ParameterSnapshot { return snapshotOf(m.pending) }

func snapshotOf(c Config) core.ParameterSnapshot {
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("width", "Width", c.Width),
				intParam("height", "Height", c.Height),
				int64Param("seed", "Seed", c.Seed),
				boolParam("moore", "Moore neighborhood", c.Moore),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				intParam("initial_sheep", "Initial sheep", c.InitialSheep),
				intParam("initial_wolves", "Initial wolves", c.InitialWolves),
				floatParam("sheep_reproduce", "Sheep reproduction rate", c.SheepReproduce),
				floatParam("wolf_reproduce", "Wolf reproduction rate", c.WolfReproduce),
			},
		},
		{
			Name: "Energy",
			Params: []core.Parameter{
				intParam("wolf_gain_from_food", "Wolf gain from food", c.WolfGainFromFood),
				intParam("sheep_gain_from_food", "Sheep gain from food", c.SheepGainFromFood),
			},
		},
		{
			Name: "Grass",
			Params: []core.Parameter{
				boolParam("grass", "Eat grass", c.Grass),
				intParam("grass_regrowth_time", "Grass regrowth time", c.GrassRegrowthTime),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD controls.
func (m *Model) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "grass", Label: "Eat grass", Type: core.ParamTypeBool},
		{Key: "moore", Label: "Moore", Type: core.ParamTypeBool},
		{Key: "initial_sheep", Label: "Initial sheep", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 400, HasMin: true, HasMax: true},
		{Key: "initial_wolves", Label: "Initial wolves", Type: core.ParamTypeInt, Step: 10, Min: 0, Max: 400, HasMin: true, HasMax: true},
		{Key: "sheep_reproduce", Label: "Sheep reproduce", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "wolf_reproduce", Label: "Wolf reproduce", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "wolf_gain_from_food", Label: "Wolf gain", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 30, HasMin: true, HasMax: true},
		{Key: "grass_regrowth_time", Label: "Grass regrowth", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 60, HasMin: true, HasMax: true},
		{Key: "sheep_gain_from_food", Label: "Sheep gain", Type: core.ParamTypeInt, Step: 1, Min: 1, Max: 30, HasMin: true, HasMax: true},
	}
}

// SetIntParameter stages an integer edit for the next Reset.
func (m *Model) SetIntParameter(key string, value int) bool {
	return m.stage(key, strconv.Itoa(value))
}

// SetFloatParameter stages a float edit for the next Reset.
func (m *Model) SetFloatParameter(key string, value float64) bool {
	return m.stage(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// SetBoolParameter stages a boolean edit for the next Reset.
func (m *Model) SetBoolParameter(key string, value bool) bool {
	return m.stage(key, strconv.FormatBool(value))
}

// PendingConfig returns the parameters the next Reset will use.
func (m *Model) PendingConfig() Config { return m.pending }

func (m *Model) stage(key, value string) bool {
	next := m.pending
	if err := next.Set(key, value); err != nil {
		return false
	}
	// Dimension changes would resize the host window; keep them fixed.
	if next.Width != m.cfg.Width || next.Height != m.cfg.Height {
		return false
	}
	if err := next.Validate(); err != nil {
		return false
	}
	m.pending = next
	return true
}

// Status returns short live lines for the HUD.
func (m *Model) Status() []string {
	lines := []string{
		fmt.Sprintf("Step %d", m.Steps()),
		fmt.Sprintf("Sheep %d  Wolves %d", m.BreedCount(Sheep), m.BreedCount(Wolf)),
		fmt.Sprintf("Grass %d/%d grown", m.grown, m.BreedCount(GrassPatch)),
	}
	if m.pending != m.cfg {
		lines = append(lines, "Edits apply on reset (R)")
	}
	return lines
}

// History returns the recent population series for overlays.
func (m *Model) History() map[string][]int {
	return map[string][]int{
		"Sheep":  m.history.Sheep(),
		"Wolves": m.history.Wolves(),
	}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

// Package config provides YAML-based game configuration loading and
// health-mode presets for the survival game.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// SurvivalConfig contains all tunables of the survival simulation.
// Tags carry both yaml (file format) and json (schema export) names.
type SurvivalConfig struct {
	World    WorldConfig      `yaml:"world" json:"world"`
	Player   PlayerConfig     `yaml:"player" json:"player"`
	Movement MovementConfig   `yaml:"movement" json:"movement"`
	Spawner  SpawnerConfig    `yaml:"spawner" json:"spawner"`
	Items    []ItemKindConfig `yaml:"items" json:"items" jsonschema:"minItems=1"`
	Effects  EffectsConfig    `yaml:"effects" json:"effects"`
	Health   HealthConfig     `yaml:"health" json:"health"`
	Biomes   []BiomeConfig    `yaml:"biomes" json:"biomes" jsonschema:"minItems=1"`
}

// WorldConfig maps terminal cells to continuous world units.
type WorldConfig struct {
	CellWidth  float64 `yaml:"cell_width" json:"cell_width" jsonschema:"description=World units per terminal column"`
	CellHeight float64 `yaml:"cell_height" json:"cell_height" jsonschema:"description=World units per terminal row"`
	HUDRows    int     `yaml:"hud_rows" json:"hud_rows" jsonschema:"description=Rows reserved for the status bar"`
}

// PlayerConfig defines the avatar's body and speed limits.
type PlayerConfig struct {
	Radius   float64 `yaml:"radius" json:"radius"`
	Speed    float64 `yaml:"speed" json:"speed" jsonschema:"description=Cruise speed toward the target (units/s)"`
	MaxSpeed float64 `yaml:"max_speed" json:"max_speed" jsonschema:"description=Hard velocity cap (units/s)"`
	Margin   float64 `yaml:"margin" json:"margin" jsonschema:"description=Gap kept between the body and the world edge"`
}

// MovementConfig defines the arrival/acceleration dynamics.
type MovementConfig struct {
	Accel          float64 `yaml:"accel" json:"accel"`
	Decel          float64 `yaml:"decel" json:"decel"`
	ArriveRadius   float64 `yaml:"arrive_radius" json:"arrive_radius"`
	StopRadius     float64 `yaml:"stop_radius" json:"stop_radius"`
	MinArriveScale float64 `yaml:"min_arrive_scale" json:"min_arrive_scale"`
}

// SpawnerConfig defines item population and placement rules.
// Intervals are in milliseconds.
type SpawnerConfig struct {
	MaxItems        int     `yaml:"max_items" json:"max_items"`
	InitialItems    int     `yaml:"initial_items" json:"initial_items"`
	PlacementTries  int     `yaml:"placement_tries" json:"placement_tries"`
	Padding         float64 `yaml:"padding" json:"padding"`
	PlayerClearance float64 `yaml:"player_clearance" json:"player_clearance"`
	ItemClearance   float64 `yaml:"item_clearance" json:"item_clearance"`
	MinIntervalMS   float64 `yaml:"min_interval_ms" json:"min_interval_ms"`
	MaxIntervalMS   float64 `yaml:"max_interval_ms" json:"max_interval_ms"`
}

// ItemKindConfig describes one collectible resource.
type ItemKindConfig struct {
	Kind        string  `yaml:"kind" json:"kind"`
	Glyph       string  `yaml:"glyph" json:"glyph"`
	Color       string  `yaml:"color" json:"color"`
	Radius      float64 `yaml:"radius" json:"radius"`
	Weight      float64 `yaml:"weight" json:"weight"`
	HealthBonus float64 `yaml:"health_bonus" json:"health_bonus"`
}

// EffectsConfig defines the cosmetic particle and indicator parameters.
type EffectsConfig struct {
	BurstCount     int     `yaml:"burst_count" json:"burst_count"`
	BurstSpeedMin  float64 `yaml:"burst_speed_min" json:"burst_speed_min"`
	BurstSpeedMax  float64 `yaml:"burst_speed_max" json:"burst_speed_max"`
	BurstTTLMin    float64 `yaml:"burst_ttl_min" json:"burst_ttl_min"`
	BurstTTLMax    float64 `yaml:"burst_ttl_max" json:"burst_ttl_max"`
	ParticleDrag   float64 `yaml:"particle_drag" json:"particle_drag"`
	IndicatorTTL   float64 `yaml:"indicator_ttl" json:"indicator_ttl"`
	PrimaryColor   string  `yaml:"primary_color" json:"primary_color"`
	SecondaryColor string  `yaml:"secondary_color" json:"secondary_color"`
}

// HealthConfig selects how maximum health is derived.
type HealthConfig struct {
	Mode     HealthMode `yaml:"mode" json:"mode" jsonschema:"enum=fixed,enum=biome_scaled"`
	FixedMax float64    `yaml:"fixed_max" json:"fixed_max"`
	ShowOdds bool       `yaml:"show_odds" json:"show_odds"`
	Ambience bool       `yaml:"ambience" json:"ambience"`
}

// BiomeConfig describes one biome of the draw pool.
type BiomeConfig struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description" json:"description"`
	Color       string  `yaml:"color" json:"color" jsonschema:"description=Terminal color name"`
	Hex         string  `yaml:"hex" json:"hex" jsonschema:"description=Display color for styled titles"`
	Rate        float64 `yaml:"rate" json:"rate" jsonschema:"description=Health change per second"`
	Cap         float64 `yaml:"cap" json:"cap" jsonschema:"description=Maximum health in biome_scaled mode (0 uses fixed_max)"`
	Weight      float64 `yaml:"weight" json:"weight"`
	Soundscape  string  `yaml:"soundscape,omitempty" json:"soundscape,omitempty"`
}

// SoundscapeKey returns the ambience key for the biome: the explicit
// soundscape when set, otherwise the lowercased first segment of the name.
func (b BiomeConfig) SoundscapeKey() string {
	if b.Soundscape != "" {
		return strings.ToLower(b.Soundscape)
	}
	first, _, _ := strings.Cut(b.Name, ",")
	return strings.ToLower(strings.TrimSpace(first))
}

// HealthMode represents a named health configuration.
type HealthMode string

const (
	HealthFixed       HealthMode = "fixed"
	HealthBiomeScaled HealthMode = "biome_scaled"
)

// ParseHealthMode validates a health mode name.
func ParseHealthMode(s string) (HealthMode, error) {
	switch HealthMode(strings.ToLower(strings.TrimSpace(s))) {
	case HealthFixed:
		return HealthFixed, nil
	case HealthBiomeScaled:
		return HealthBiomeScaled, nil
	}
	return "", fmt.Errorf("config: unknown health mode %q (want fixed or biome_scaled)", s)
}

// Validate reports configuration values the simulation cannot run with.
func (c SurvivalConfig) Validate() error {
	var errs []error

	if c.World.CellWidth <= 0 || c.World.CellHeight <= 0 {
		errs = append(errs, errors.New("world: cell dimensions must be positive"))
	}
	if c.Player.Radius <= 0 {
		errs = append(errs, errors.New("player: radius must be positive"))
	}
	if c.Player.MaxSpeed <= 0 {
		errs = append(errs, errors.New("player: max_speed must be positive"))
	}
	if c.Spawner.MaxItems < 0 || c.Spawner.PlacementTries <= 0 {
		errs = append(errs, errors.New("spawner: max_items must be >= 0 and placement_tries > 0"))
	}
	if c.Spawner.MaxIntervalMS < c.Spawner.MinIntervalMS {
		errs = append(errs, errors.New("spawner: max_interval_ms must be >= min_interval_ms"))
	}

	if len(c.Items) == 0 {
		errs = append(errs, errors.New("items: at least one item kind is required"))
	}
	for i, it := range c.Items {
		if it.Kind == "" {
			errs = append(errs, fmt.Errorf("items[%d]: kind is required", i))
		}
		if it.Radius <= 0 {
			errs = append(errs, fmt.Errorf("items[%d] %s: radius must be positive", i, it.Kind))
		}
		if it.Weight < 0 {
			errs = append(errs, fmt.Errorf("items[%d] %s: weight must not be negative", i, it.Kind))
		}
	}

	if len(c.Biomes) == 0 {
		errs = append(errs, errors.New("biomes: at least one biome is required"))
	}
	for i, b := range c.Biomes {
		if b.Name == "" {
			errs = append(errs, fmt.Errorf("biomes[%d]: name is required", i))
		}
		if b.Weight < 0 {
			errs = append(errs, fmt.Errorf("biomes[%d] %s: weight must not be negative", i, b.Name))
		}
		if b.Cap < 0 {
			errs = append(errs, fmt.Errorf("biomes[%d] %s: cap must not be negative", i, b.Name))
		}
	}

	if c.Health.FixedMax <= 0 {
		errs = append(errs, errors.New("health: fixed_max must be positive"))
	}
	if _, err := ParseHealthMode(string(c.Health.Mode)); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid survival config: %w", errors.Join(errs...))
	}
	return nil
}

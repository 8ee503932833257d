package config

import (
	_ "embed"
)

//go:embed defaults/survival.yaml
var defaultSurvivalYAML []byte

// DefaultSurvivalConfig returns the hardcoded survival configuration.
// It mirrors defaults/survival.yaml and is used when the embedded file
// cannot be parsed.
func DefaultSurvivalConfig() SurvivalConfig {
	return SurvivalConfig{
		World: WorldConfig{
			CellWidth:  12,
			CellHeight: 24,
			HUDRows:    3,
		},
		Player: PlayerConfig{
			Radius:   14,
			Speed:    260,
			MaxSpeed: 400,
			Margin:   2,
		},
		Movement: MovementConfig{
			Accel:          2400,
			Decel:          2600,
			ArriveRadius:   60,
			StopRadius:     4,
			MinArriveScale: 0.2,
		},
		Spawner: SpawnerConfig{
			MaxItems:        60,
			InitialItems:    12,
			PlacementTries:  40,
			Padding:         24,
			PlayerClearance: 30,
			ItemClearance:   6,
			MinIntervalMS:   600,
			MaxIntervalMS:   1800,
		},
		Items: []ItemKindConfig{
			{Kind: "food", Glyph: "♣", Color: "bright_green", Radius: 12, Weight: 1.0, HealthBonus: 15},
			{Kind: "water", Glyph: "≈", Color: "bright_blue", Radius: 12, Weight: 1.0, HealthBonus: 10},
			{Kind: "wood", Glyph: "≡", Color: "orange", Radius: 14, Weight: 0.8, HealthBonus: 5},
		},
		Effects: EffectsConfig{
			BurstCount:     10,
			BurstSpeedMin:  60,
			BurstSpeedMax:  160,
			BurstTTLMin:    0.3,
			BurstTTLMax:    0.6,
			ParticleDrag:   3.5,
			IndicatorTTL:   0.7,
			PrimaryColor:   "bright_blue",
			SecondaryColor: "bright_red",
		},
		Health: HealthConfig{
			Mode:     HealthFixed,
			FixedMax: 100,
			ShowOdds: false,
			Ambience: true,
		},
		Biomes: []BiomeConfig{
			{
				Name:        "Canterbury, New Zealand",
				Description: "Rolling green countryside with clean air and abundant farmland - a peaceful haven for recovery",
				Color:       "green", Hex: "#7fb069",
				Rate: 0.5, Cap: 120, Weight: 0.3,
			},
			{
				Name:        "Manaus, Brazil",
				Description: "Dense Amazon rainforest with dangerous wildlife, extreme humidity, and navigation challenges",
				Color:       "forest", Hex: "#2d5016",
				Rate: 0, Cap: 100, Weight: 0.25,
			},
			{
				Name:        "Phoenix, Arizona",
				Description: "Scorching desert heat with water scarcity, deadly temperatures, and sandstorms",
				Color:       "sand", Hex: "#d4a574",
				Rate: -2, Cap: 90, Weight: 0.2,
			},
			{
				Name:        "Yakutsk, Russia",
				Description: "World's coldest city with temperatures below -60°F, frostbite danger, and frozen infrastructure",
				Color:       "ice", Hex: "#a8dadc",
				Rate: -3, Cap: 80, Weight: 0.15,
			},
			{
				Name:        "Lagos, Nigeria",
				Description: "Coastal megacity with severe pollution, flooding, disease outbreaks, and contaminated water",
				Color:       "olive", Hex: "#606c38",
				Rate: -5, Cap: 70, Weight: 0.1,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSurvivalYAML
}

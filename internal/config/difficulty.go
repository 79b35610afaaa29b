package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownDifficulty is returned for a difficulty name with no preset.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// DefaultDifficulty is used when the player makes no choice.
const DefaultDifficulty = "easy"

// Preset scales a match. Multipliers below 1 make enemies slower, weaker or
// less damaging; SpawnRate below 1 spawns faster.
type Preset struct {
	Name         string  `yaml:"-"`
	PlayerHealth int     `yaml:"player_health"`
	EnemySpeed   float64 `yaml:"enemy_speed"`
	EnemyHealth  float64 `yaml:"enemy_health"`
	SpawnRate    float64 `yaml:"spawn_rate"`
	Damage       float64 `yaml:"damage"`
}

// Presets holds the difficulty presets by name.
type Presets map[string]Preset

// DefaultPresets returns the built-in presets.
func DefaultPresets() Presets {
	return Presets{
		"easy":   {Name: "easy", PlayerHealth: 50, EnemySpeed: 0.2, EnemyHealth: 0.3, SpawnRate: 1.5, Damage: 0.3},
		"medium": {Name: "medium", PlayerHealth: 20, EnemySpeed: 0.8, EnemyHealth: 0.8, SpawnRate: 1.0, Damage: 0.8},
		"hard":   {Name: "hard", PlayerHealth: 10, EnemySpeed: 1.3, EnemyHealth: 1.2, SpawnRate: 0.7, Damage: 1.5},
	}
}

// Lookup returns the preset with the given case-insensitive name.
func (p Presets) Lookup(name string) (Preset, error) {
	preset, ok := p[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, name)
	}
	return preset, nil
}

// Names returns the preset names ordered from easiest to hardest by player health.
func (p Presets) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := p[names[i]], p[names[j]]
		if a.PlayerHealth != b.PlayerHealth {
			return a.PlayerHealth > b.PlayerHealth
		}
		return names[i] < names[j]
	})
	return names
}

// LoadPresets reads preset overrides from a YAML file keyed by difficulty name
// and merges them over the defaults. Fields left out keep their default value.
func LoadPresets(path string) (Presets, error) {
	presets := DefaultPresets()
	if path == "" {
		return presets, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}

	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("parse presets %s: %w", path, err)
	}

	for name, node := range nodes {
		name = strings.ToLower(name)
		preset := presets[name]
		if err := node.Decode(&preset); err != nil {
			return nil, fmt.Errorf("parse preset %s: %w", name, err)
		}
		preset.Name = name
		if err := preset.validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
		presets[name] = preset
	}
	return presets, nil
}

func (p Preset) validate() error {
	switch {
	case p.PlayerHealth <= 0:
		return errors.New("player_health must be positive")
	case p.EnemySpeed <= 0, p.EnemyHealth <= 0, p.SpawnRate <= 0, p.Damage <= 0:
		return errors.New("multipliers must be positive")
	}
	return nil
}

package config

import (
	"github.com/caarlos0/env/v11"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Redis RedisConfig
	Rules RulesConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `env:"REDIS_URL"` // Optional: empty means in-memory storage
}

// RulesConfig holds the tunable combat numbers
type RulesConfig struct {
	MaximumHealth               int     `env:"COMBAT_MAXIMUM_HEALTH"          envDefault:"1000"`
	MeleeMaxAttackRange         float64 `env:"COMBAT_MELEE_RANGE"             envDefault:"2"`
	RangedMaxAttackRange        float64 `env:"COMBAT_RANGED_RANGE"            envDefault:"20"`
	LevelTierThreshold          int     `env:"COMBAT_LEVEL_TIER_THRESHOLD"    envDefault:"5"`
	HigherLevelDamageMultiplier float64 `env:"COMBAT_HIGHER_LEVEL_MULTIPLIER" envDefault:"0.5"`
	LowerLevelDamageMultiplier  float64 `env:"COMBAT_LOWER_LEVEL_MULTIPLIER"  envDefault:"1.5"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeValidation, "failed to parse environment")
	}

	if err := cfg.Rules.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects rule sets the combat math cannot work with
func (r RulesConfig) Validate() error {
	if r.MaximumHealth <= 0 {
		return dnderr.Validationf("COMBAT_MAXIMUM_HEALTH must be positive, got %d", r.MaximumHealth)
	}
	if r.MeleeMaxAttackRange < 0 {
		return dnderr.Validationf("COMBAT_MELEE_RANGE cannot be negative, got %v", r.MeleeMaxAttackRange)
	}
	if r.RangedMaxAttackRange < 0 {
		return dnderr.Validationf("COMBAT_RANGED_RANGE cannot be negative, got %v", r.RangedMaxAttackRange)
	}
	if r.LevelTierThreshold <= 0 {
		return dnderr.Validationf("COMBAT_LEVEL_TIER_THRESHOLD must be positive, got %d", r.LevelTierThreshold)
	}
	if r.HigherLevelDamageMultiplier < 0 || r.LowerLevelDamageMultiplier < 0 {
		return dnderr.Validation("damage multipliers cannot be negative")
	}
	return nil
}

// ToRules converts the configuration into the rule set characters use
func (r RulesConfig) ToRules() *character.Rules {
	return &character.Rules{
		MaximumHealth:               r.MaximumHealth,
		MeleeMaxAttackRange:         r.MeleeMaxAttackRange,
		RangedMaxAttackRange:        r.RangedMaxAttackRange,
		LevelTierThreshold:          r.LevelTierThreshold,
		HigherLevelDamageMultiplier: r.HigherLevelDamageMultiplier,
		LowerLevelDamageMultiplier:  r.LowerLevelDamageMultiplier,
	}
}

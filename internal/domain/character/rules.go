package character

const (
	// MaximumHealth is the ceiling healing can raise a character to
	MaximumHealth = 1000

	MeleeMaxAttackRange  = 2.0
	RangedMaxAttackRange = 20.0

	// LevelTierThreshold is the level gap at which damage starts scaling
	LevelTierThreshold = 5

	HigherLevelDamageMultiplier = 0.5
	LowerLevelDamageMultiplier  = 1.5
)

// Rules holds the tunable numbers the combat math runs on
type Rules struct {
	MaximumHealth        int
	MeleeMaxAttackRange  float64
	RangedMaxAttackRange float64
	LevelTierThreshold   int

	// HigherLevelDamageMultiplier applies when the target outlevels the actor by the threshold
	HigherLevelDamageMultiplier float64

	// LowerLevelDamageMultiplier applies when the actor outlevels the target by the threshold
	LowerLevelDamageMultiplier float64
}

// DefaultRules returns the standard rule set
func DefaultRules() *Rules {
	return &Rules{
		MaximumHealth:               MaximumHealth,
		MeleeMaxAttackRange:         MeleeMaxAttackRange,
		RangedMaxAttackRange:        RangedMaxAttackRange,
		LevelTierThreshold:          LevelTierThreshold,
		HigherLevelDamageMultiplier: HigherLevelDamageMultiplier,
		LowerLevelDamageMultiplier:  LowerLevelDamageMultiplier,
	}
}

// MaxAttackRange returns the reach for the given archetype
func (r *Rules) MaxAttackRange(archetype Archetype) float64 {
	if archetype == ArchetypeRanged {
		return r.RangedMaxAttackRange
	}
	return r.MeleeMaxAttackRange
}

// DamageMultiplier returns the scaling for a level gap of target.level - actor.level
func (r *Rules) DamageMultiplier(levelGap int) float64 {
	switch {
	case levelGap >= r.LevelTierThreshold:
		return r.HigherLevelDamageMultiplier
	case levelGap <= -r.LevelTierThreshold:
		return r.LowerLevelDamageMultiplier
	default:
		return 1
	}
}

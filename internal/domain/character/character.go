package character

import (
	"sync"
)

// Character is a combat capable entity. Level, position and archetype are fixed
// at construction; health and factions change through its methods.
type Character struct {
	id             string
	level          int
	position       int
	archetype      Archetype
	maxAttackRange float64

	// rules is shared and read only
	rules *Rules

	mu       sync.Mutex
	health   int
	factions []string
}

// NewCharacter creates a character with the default rules. Inputs are taken as
// given, so a character can start dead or above maximum health.
func NewCharacter(level, health, position int, archetype Archetype) *Character {
	if archetype != ArchetypeRanged {
		archetype = ArchetypeMelee
	}

	c := &Character{
		level:     level,
		health:    health,
		position:  position,
		archetype: archetype,
		factions:  []string{},
	}

	return c.WithRules(DefaultRules())
}

// WithRules swaps the rule set and re-derives the attack range from it
func (c *Character) WithRules(rules *Rules) *Character {
	if rules == nil {
		rules = DefaultRules()
	}
	c.rules = rules
	c.maxAttackRange = rules.MaxAttackRange(c.archetype)
	return c
}

// WithID sets the stable identifier used by storage
func (c *Character) WithID(id string) *Character {
	c.id = id
	return c
}

// WithFactions sets the initial faction collection
func (c *Character) WithFactions(factions ...string) *Character {
	c.JoinFaction(factions...)
	return c
}

func (c *Character) ID() string {
	return c.id
}

func (c *Character) Level() int {
	return c.level
}

func (c *Character) Position() int {
	return c.position
}

func (c *Character) Archetype() Archetype {
	return c.archetype
}

// MaxAttackRange is the highest target position this character can hit
func (c *Character) MaxAttackRange() float64 {
	return c.maxAttackRange
}

// Rules returns the rule set the character resolves its actions with
func (c *Character) Rules() *Rules {
	return c.rules
}

func (c *Character) Health() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.health
}

// IsAlive reports whether health is above zero
func (c *Character) IsAlive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.isAlive()
}

func (c *Character) isAlive() bool {
	return c.health > 0
}

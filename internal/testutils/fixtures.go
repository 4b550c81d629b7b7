package testutils

import (
	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
)

// CharacterBuilder builds characters for tests, starting from a level 1 melee
// character at full health standing at position 0
type CharacterBuilder struct {
	id        string
	level     int
	health    int
	position  int
	archetype character.Archetype
	factions  []string
}

// NewCharacterBuilder creates a builder with the default state
func NewCharacterBuilder() *CharacterBuilder {
	b := &CharacterBuilder{}
	b.reset()
	return b
}

func (b *CharacterBuilder) reset() {
	b.id = ""
	b.level = 1
	b.health = character.MaximumHealth
	b.position = 0
	b.archetype = character.ArchetypeMelee
	b.factions = nil
}

func (b *CharacterBuilder) WithID(id string) *CharacterBuilder {
	b.id = id
	return b
}

func (b *CharacterBuilder) WithLevel(level int) *CharacterBuilder {
	b.level = level
	return b
}

func (b *CharacterBuilder) WithHealth(health int) *CharacterBuilder {
	b.health = health
	return b
}

func (b *CharacterBuilder) WithPosition(position int) *CharacterBuilder {
	b.position = position
	return b
}

func (b *CharacterBuilder) WithArchetype(archetype character.Archetype) *CharacterBuilder {
	b.archetype = archetype
	return b
}

func (b *CharacterBuilder) WithFactions(factions ...string) *CharacterBuilder {
	b.factions = factions
	return b
}

// Ranged switches to a ranged character
func (b *CharacterBuilder) Ranged() *CharacterBuilder {
	b.archetype = character.ArchetypeRanged
	return b
}

// Build creates the character and resets the builder for the next one
func (b *CharacterBuilder) Build() *character.Character {
	char := character.NewCharacter(b.level, b.health, b.position, b.archetype).
		WithID(b.id).
		WithFactions(b.factions...)
	b.reset()
	return char
}

// CreateTestCharacter creates a full health level 1 melee character with the given ID
func CreateTestCharacter(id string, factions ...string) *character.Character {
	return NewCharacterBuilder().WithID(id).WithFactions(factions...).Build()
}

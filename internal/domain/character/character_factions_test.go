package character_test

import (
	"testing"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	"github.com/KirkDiggler/rpg-combat-kata/internal/testutils"
	"github.com/stretchr/testify/assert"
)

func TestCharacter_JoinFactionOverwrites(t *testing.T) {
	char := testutils.NewCharacterBuilder().WithFactions("red").Build()

	char.JoinFaction("blue", "green")

	assert.Equal(t, []string{"blue", "green"}, char.Factions())
}

func TestCharacter_JoinFactionKeepsOrderAndDuplicates(t *testing.T) {
	char := testutils.NewCharacterBuilder().Build()

	char.JoinFaction("b", "a", "b")

	assert.Equal(t, []string{"b", "a", "b"}, char.Factions())
}

func TestCharacter_FactionsIsASnapshot(t *testing.T) {
	char := testutils.NewCharacterBuilder().WithFactions("red").Build()

	factions := char.Factions()
	factions[0] = "mutated"

	assert.Equal(t, []string{"red"}, char.Factions())
}

func TestCharacter_JoinFactionCopiesInput(t *testing.T) {
	char := testutils.NewCharacterBuilder().Build()
	input := []string{"red", "blue"}

	char.JoinFaction(input...)
	input[0] = "mutated"

	assert.Equal(t, []string{"red", "blue"}, char.Factions())
}

func TestCharacter_LeaveFaction(t *testing.T) {
	char := testutils.NewCharacterBuilder().WithFactions("red", "blue", "red").Build()

	assert.True(t, char.LeaveFaction("red"))
	assert.Equal(t, []string{"blue"}, char.Factions())

	assert.False(t, char.LeaveFaction("green"))
	assert.Equal(t, []string{"blue"}, char.Factions())
}

func TestCharacter_IsAllyOf(t *testing.T) {
	builder := testutils.NewCharacterBuilder()
	a := builder.WithFactions("red", "blue").Build()
	b := builder.WithFactions("blue").Build()
	c := builder.WithFactions("green").Build()

	assert.True(t, a.IsAllyOf(b))
	assert.True(t, b.IsAllyOf(a))
	assert.False(t, a.IsAllyOf(c))
	assert.False(t, a.IsAllyOf(a))
	assert.False(t, a.IsAllyOf(nil))
}

func TestCharacter_AlliesCanDamageEachOther(t *testing.T) {
	builder := testutils.NewCharacterBuilder()
	a := builder.WithFactions("red").Build()
	b := builder.WithFactions("red").Build()

	assert.Equal(t, character.OutcomeApplied, a.Damage(b, 100))
	assert.Equal(t, 900, b.Health())
}

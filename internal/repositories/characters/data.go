package characters

import (
	"time"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
)

// CharacterData is the stored form of a character
type CharacterData struct {
	ID        string    `json:"id"`
	Level     int       `json:"level"`
	Health    int       `json:"health"`
	Position  int       `json:"position"`
	Archetype string    `json:"archetype"`
	Factions  []string  `json:"factions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TimeProvider supplies timestamps so tests can pin them
type TimeProvider interface {
	Now() time.Time
}

type utcClock struct{}

func (utcClock) Now() time.Time {
	return time.Now().UTC()
}

func toCharacterData(char *character.Character) *CharacterData {
	return &CharacterData{
		ID:        char.ID(),
		Level:     char.Level(),
		Health:    char.Health(),
		Position:  char.Position(),
		Archetype: char.Archetype().String(),
		Factions:  char.Factions(),
	}
}

// fromCharacterData rebuilds a character with default rules; services apply
// their configured rules after loading
func fromCharacterData(data *CharacterData) *character.Character {
	return character.NewCharacter(data.Level, data.Health, data.Position, character.ParseArchetype(data.Archetype)).
		WithID(data.ID).
		WithFactions(data.Factions...)
}

// uniqueFactions drops repeats while keeping order, for index maintenance
func uniqueFactions(factions []string) []string {
	seen := make(map[string]struct{}, len(factions))
	result := make([]string, 0, len(factions))
	for _, f := range factions {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		result = append(result, f)
	}
	return result
}

// factionDiff returns the factions only in before and only in after
func factionDiff(before, after []string) (removed, added []string) {
	inBefore := make(map[string]struct{}, len(before))
	for _, f := range before {
		inBefore[f] = struct{}{}
	}
	inAfter := make(map[string]struct{}, len(after))
	for _, f := range after {
		inAfter[f] = struct{}{}
	}

	for _, f := range uniqueFactions(before) {
		if _, ok := inAfter[f]; !ok {
			removed = append(removed, f)
		}
	}
	for _, f := range uniqueFactions(after) {
		if _, ok := inBefore[f]; !ok {
			added = append(added, f)
		}
	}
	return removed, added
}

func copyData(data *CharacterData) *CharacterData {
	dataCopy := *data
	dataCopy.Factions = append([]string(nil), data.Factions...)
	return &dataCopy
}

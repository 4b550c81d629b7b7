package character

// Archetype determines how far a character can reach with an attack
type Archetype string

const (
	ArchetypeMelee  Archetype = "melee"
	ArchetypeRanged Archetype = "ranged"
)

// ParseArchetype maps a stored or user supplied value onto an Archetype.
// Anything unrecognised is treated as melee.
func ParseArchetype(value string) Archetype {
	switch Archetype(value) {
	case ArchetypeRanged:
		return ArchetypeRanged
	default:
		return ArchetypeMelee
	}
}

func (a Archetype) String() string {
	return string(a)
}

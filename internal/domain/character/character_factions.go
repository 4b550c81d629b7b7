package character

// JoinFaction replaces the character's factions with the given collection.
// Order is kept and duplicates are not removed.
func (c *Character) JoinFaction(factions ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.factions = append(make([]string, 0, len(factions)), factions...)
}

// LeaveFaction removes every occurrence of faction. Returns false if the
// character was not a member.
func (c *Character) LeaveFaction(faction string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]string, 0, len(c.factions))
	for _, f := range c.factions {
		if f != faction {
			kept = append(kept, f)
		}
	}

	removed := len(kept) != len(c.factions)
	c.factions = kept
	return removed
}

// Factions returns a copy of the current factions in insertion order
func (c *Character) Factions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append(make([]string, 0, len(c.factions)), c.factions...)
}

// IsAllyOf reports whether the two characters share a faction.
// Damage does not consult this; allies can still hurt each other.
func (c *Character) IsAllyOf(other *Character) bool {
	if other == nil || other == c {
		return false
	}

	mine := c.Factions()
	theirs := other.Factions()
	for _, f := range mine {
		for _, o := range theirs {
			if f == o {
				return true
			}
		}
	}
	return false
}

package character

import "math"

// Damage deals amount to target, scaled by the level gap between the two.
// Self targeting and targets beyond reach are ignored. There is no floor on
// the resulting health and neither side has to be alive.
func (c *Character) Damage(target *Character, amount int) Outcome {
	if target == c {
		return OutcomeSelfTarget
	}

	// Reach is compared against the target's absolute position, not the distance between the two
	if float64(target.position) > c.maxAttackRange {
		return OutcomeOutOfRange
	}

	effective := c.effectiveDamage(target, amount)

	target.mu.Lock()
	defer target.mu.Unlock()

	target.health = subtractSaturating(target.health, effective)

	return OutcomeApplied
}

// effectiveDamage truncates toward zero when the multiplier produces a fraction
// and saturates at the int bounds
func (c *Character) effectiveDamage(target *Character, amount int) int {
	multiplier := c.rules.DamageMultiplier(target.level - c.level)
	if multiplier == 1 {
		return amount
	}

	scaled := float64(amount) * multiplier
	switch {
	case scaled >= math.MaxInt:
		return math.MaxInt
	case scaled <= math.MinInt:
		return math.MinInt
	default:
		return int(scaled)
	}
}

// Heal restores amount to target up to the maximum health. A character can only
// heal itself, and only while alive.
func (c *Character) Heal(target *Character, amount int) Outcome {
	if target != c {
		return OutcomeNotSelf
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isAlive() {
		return OutcomeTargetDead
	}

	// health is positive here, so the headroom cannot overflow. A character
	// constructed above the cap has negative headroom and lands on the cap.
	if amount >= c.rules.MaximumHealth-c.health {
		c.health = c.rules.MaximumHealth
	} else {
		c.health += amount
	}

	return OutcomeApplied
}

func subtractSaturating(a, b int) int {
	diff := a - b
	if b > 0 && diff > a {
		return math.MinInt
	}
	if b < 0 && diff < a {
		return math.MaxInt
	}
	return diff
}

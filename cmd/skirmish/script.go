package main

import (
	"strconv"
	"strings"

	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
)

type actionKind string

const (
	actionDamage actionKind = "damage"
	actionHeal   actionKind = "heal"
)

type step struct {
	Kind   actionKind
	Amount int
}

// parseScript reads a comma separated list such as "damage:100,heal:50"
func parseScript(script string) ([]step, error) {
	var steps []step

	for _, raw := range strings.Split(script, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		name, value, ok := strings.Cut(raw, ":")
		if !ok {
			return nil, dnderr.InvalidArgumentf("step %q must look like action:amount", raw)
		}

		kind := actionKind(strings.ToLower(strings.TrimSpace(name)))
		if kind != actionDamage && kind != actionHeal {
			return nil, dnderr.InvalidArgumentf("unknown action %q", name).
				WithMeta("step", raw)
		}

		amount, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "invalid amount in step "+raw)
		}
		if amount < 0 {
			return nil, dnderr.NegativeAmount(amount).WithMeta("step", raw)
		}

		steps = append(steps, step{Kind: kind, Amount: amount})
	}

	if len(steps) == 0 {
		return nil, dnderr.InvalidArgument("script has no steps")
	}

	return steps, nil
}

func splitFactions(value string) []string {
	var factions []string
	for _, f := range strings.Split(value, ",") {
		if f = strings.TrimSpace(f); f != "" {
			factions = append(factions, f)
		}
	}
	return factions
}

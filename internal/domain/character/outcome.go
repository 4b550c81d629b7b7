package character

// Outcome reports what a Damage or Heal call did. Callers are free to ignore it;
// every outcome other than OutcomeApplied means nothing changed.
type Outcome string

const (
	OutcomeApplied    Outcome = "applied"
	OutcomeSelfTarget Outcome = "self_target"
	OutcomeOutOfRange Outcome = "out_of_range"
	OutcomeNotSelf    Outcome = "not_self"
	OutcomeTargetDead Outcome = "target_dead"
)

// Applied reports whether the action changed the target
func (o Outcome) Applied() bool {
	return o == OutcomeApplied
}

func (o Outcome) String() string {
	return string(o)
}

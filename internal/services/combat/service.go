package combat

import (
	"context"
	"log"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
	"github.com/KirkDiggler/rpg-combat-kata/internal/events"
	"github.com/KirkDiggler/rpg-combat-kata/internal/locks"
	"github.com/KirkDiggler/rpg-combat-kata/internal/repositories/characters"
	"golang.org/x/sync/errgroup"
)

// Service resolves damage and healing between stored characters
type Service interface {
	// Damage has the actor damage the target
	Damage(ctx context.Context, input *ActionInput) (*ActionOutput, error)

	// Heal has the actor heal the target
	Heal(ctx context.Context, input *ActionInput) (*ActionOutput, error)
}

// ActionInput names who acts on whom and by how much
type ActionInput struct {
	ActorID  string
	TargetID string
	Amount   int
}

// ActionOutput describes the result. A non applied Outcome is not an error;
// the target is simply unchanged.
type ActionOutput struct {
	Outcome      character.Outcome
	Actor        *character.Character
	Target       *character.Character
	HealthBefore int
	HealthAfter  int
	Died         bool
}

type service struct {
	repository characters.Repository
	publisher  events.Publisher
	locker     *locks.Keyed
	rules      *character.Rules
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository characters.Repository // Required
	Publisher  events.Publisher      // Optional
	Locker     *locks.Keyed          // Optional, share with the character service
	Rules      *character.Rules      // Optional
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		publisher:  cfg.Publisher,
		locker:     cfg.Locker,
		rules:      cfg.Rules,
	}
	if svc.locker == nil {
		svc.locker = locks.NewKeyed()
	}
	if svc.rules == nil {
		svc.rules = character.DefaultRules()
	}

	return svc
}

func (s *service) Damage(ctx context.Context, input *ActionInput) (*ActionOutput, error) {
	return s.resolve(ctx, input, events.EventTypeCharacterDamaged, func(actor, target *character.Character, amount int) character.Outcome {
		return actor.Damage(target, amount)
	})
}

func (s *service) Heal(ctx context.Context, input *ActionInput) (*ActionOutput, error) {
	return s.resolve(ctx, input, events.EventTypeCharacterHealed, func(actor, target *character.Character, amount int) character.Outcome {
		return actor.Heal(target, amount)
	})
}

type action func(actor, target *character.Character, amount int) character.Outcome

// resolve runs one load, apply, save cycle while holding the target's lock
func (s *service) resolve(ctx context.Context, input *ActionInput, eventType events.EventType, apply action) (*ActionOutput, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	unlock := s.locker.Lock(input.TargetID)
	defer unlock()

	actor, target, err := s.loadPair(ctx, input.ActorID, input.TargetID)
	if err != nil {
		return nil, err
	}

	wasAlive := target.IsAlive()
	output := &ActionOutput{
		Actor:        actor,
		Target:       target,
		HealthBefore: target.Health(),
	}

	output.Outcome = apply(actor, target, input.Amount)
	output.HealthAfter = target.Health()

	if !output.Outcome.Applied() {
		log.Printf("CombatService: %s from %s to %s not applied: %s",
			eventType, input.ActorID, input.TargetID, output.Outcome)
		return output, nil
	}

	if err := s.repository.Update(ctx, target); err != nil {
		return nil, dnderr.Wrapf(err, "failed to save character %s", input.TargetID)
	}

	output.Died = wasAlive && !target.IsAlive()

	log.Printf("CombatService: %s %s -> %s requested %d, health %d -> %d",
		eventType, input.ActorID, input.TargetID, input.Amount, output.HealthBefore, output.HealthAfter)

	s.emit(events.NewCombatEvent(eventType, input.ActorID, input.TargetID,
		input.Amount, output.HealthBefore, output.HealthAfter, output.Outcome))

	if output.Died {
		log.Printf("CombatService: Character %s died", input.TargetID)
		s.emit(events.NewCombatEvent(events.EventTypeCharacterDied, input.ActorID, input.TargetID,
			input.Amount, output.HealthBefore, output.HealthAfter, output.Outcome))
	}

	return output, nil
}

// loadPair fetches actor and target concurrently. When both IDs match the same
// instance is returned twice, so the character sees itself as the target.
func (s *service) loadPair(ctx context.Context, actorID, targetID string) (*character.Character, *character.Character, error) {
	if actorID == targetID {
		char, err := s.load(ctx, actorID)
		if err != nil {
			return nil, nil, err
		}
		return char, char, nil
	}

	var actor, target *character.Character

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		actor, err = s.load(gctx, actorID)
		return err
	})
	g.Go(func() error {
		var err error
		target, err = s.load(gctx, targetID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return actor, target, nil
}

func (s *service) load(ctx context.Context, id string) (*character.Character, error) {
	char, err := s.repository.Get(ctx, id)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to load character %s", id)
	}
	return char.WithRules(s.rules), nil
}

func (s *service) emit(event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Emit(event); err != nil {
		log.Printf("CombatService: Failed to emit %s: %v", event.GetType(), err)
	}
}

func validate(input *ActionInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input cannot be nil")
	}
	if input.ActorID == "" {
		return dnderr.InvalidArgument("actor ID is required")
	}
	if input.TargetID == "" {
		return dnderr.InvalidArgument("target ID is required")
	}
	if input.Amount < 0 {
		return dnderr.NegativeAmount(input.Amount)
	}
	return nil
}

package character

import (
	"context"
	"log"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
	"github.com/KirkDiggler/rpg-combat-kata/internal/events"
	"github.com/KirkDiggler/rpg-combat-kata/internal/locks"
	"github.com/KirkDiggler/rpg-combat-kata/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-combat-kata/internal/uuid"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// Service manages character lifecycle and faction membership
type Service interface {
	// CreateCharacter creates and stores a new character
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*character.Character, error)

	// JoinFaction replaces the character's factions
	JoinFaction(ctx context.Context, characterID string, factions ...string) (*character.Character, error)

	// LeaveFaction removes the character from a faction
	LeaveFaction(ctx context.Context, characterID, faction string) (*character.Character, error)

	// ListByFaction lists the members of a faction
	ListByFaction(ctx context.Context, faction string) ([]*character.Character, error)
}

// CreateCharacterInput contains all data needed to create a character
type CreateCharacterInput struct {
	Level     int
	Health    int
	Position  int
	Archetype character.Archetype
	Factions  []string
}

// CreateCharacterOutput contains the created character
type CreateCharacterOutput struct {
	Character *character.Character
}

type service struct {
	repository    Repository
	uuidGenerator uuid.Generator
	publisher     events.Publisher
	locker        *locks.Keyed
	rules         *character.Rules
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    Repository       // Required
	UUIDGenerator uuid.Generator   // Optional, defaults to google uuid
	Publisher     events.Publisher // Optional, events are dropped when nil
	Locker        *locks.Keyed     // Optional, share with the combat service
	Rules         *character.Rules // Optional, defaults to character.DefaultRules
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:    cfg.Repository,
		uuidGenerator: cfg.UUIDGenerator,
		publisher:     cfg.Publisher,
		locker:        cfg.Locker,
		rules:         cfg.Rules,
	}

	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.locker == nil {
		svc.locker = locks.NewKeyed()
	}
	if svc.rules == nil {
		svc.rules = character.DefaultRules()
	}

	return svc
}

func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if input.Level < 0 {
		return nil, dnderr.InvalidArgumentf("level cannot be negative, got %d", input.Level)
	}

	char := character.NewCharacter(input.Level, input.Health, input.Position, input.Archetype).
		WithID(s.uuidGenerator.New()).
		WithFactions(input.Factions...).
		WithRules(s.rules)

	if err := s.repository.Create(ctx, char); err != nil {
		return nil, dnderr.Wrap(err, "failed to create character")
	}

	log.Printf("CharacterService: Created %s character %s (level %d, health %d, position %d)",
		char.Archetype(), char.ID(), char.Level(), char.Health(), char.Position())

	return &CreateCharacterOutput{Character: char}, nil
}

func (s *service) GetCharacter(ctx context.Context, characterID string) (*character.Character, error) {
	if characterID == "" {
		return nil, dnderr.CharacterIDRequired()
	}

	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get character %s", characterID)
	}

	return char.WithRules(s.rules), nil
}

func (s *service) JoinFaction(ctx context.Context, characterID string, factions ...string) (*character.Character, error) {
	for _, faction := range factions {
		if faction == "" {
			return nil, dnderr.InvalidArgument("faction names cannot be empty")
		}
	}

	return s.updateFactions(ctx, characterID, func(char *character.Character) bool {
		char.JoinFaction(factions...)
		return true
	})
}

func (s *service) LeaveFaction(ctx context.Context, characterID, faction string) (*character.Character, error) {
	if faction == "" {
		return nil, dnderr.FactionRequired()
	}

	return s.updateFactions(ctx, characterID, func(char *character.Character) bool {
		return char.LeaveFaction(faction)
	})
}

// updateFactions runs mutate under the character's lock and persists when it reports a change
func (s *service) updateFactions(ctx context.Context, characterID string, mutate func(*character.Character) bool) (*character.Character, error) {
	if characterID == "" {
		return nil, dnderr.CharacterIDRequired()
	}

	unlock := s.locker.Lock(characterID)
	defer unlock()

	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	previous := char.Factions()
	if !mutate(char) {
		return char, nil
	}

	if err := s.repository.Update(ctx, char); err != nil {
		return nil, dnderr.Wrapf(err, "failed to save factions for character %s", characterID)
	}

	log.Printf("CharacterService: Character %s factions %v -> %v", characterID, previous, char.Factions())

	if s.publisher != nil {
		if err := s.publisher.Emit(events.NewFactionsChangedEvent(characterID, previous, char.Factions())); err != nil {
			log.Printf("CharacterService: Failed to emit factions changed for %s: %v", characterID, err)
		}
	}

	return char, nil
}

func (s *service) ListByFaction(ctx context.Context, faction string) ([]*character.Character, error) {
	if faction == "" {
		return nil, dnderr.FactionRequired()
	}

	members, err := s.repository.ListByFaction(ctx, faction)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list faction %s", faction).
			WithMeta(dnderr.MetaFaction, faction)
	}

	for _, member := range members {
		member.WithRules(s.rules)
	}

	return members, nil
}

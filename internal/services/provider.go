package services

import (
	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	"github.com/KirkDiggler/rpg-combat-kata/internal/events"
	"github.com/KirkDiggler/rpg-combat-kata/internal/locks"
	"github.com/KirkDiggler/rpg-combat-kata/internal/repositories/characters"
	characterService "github.com/KirkDiggler/rpg-combat-kata/internal/services/character"
	combatService "github.com/KirkDiggler/rpg-combat-kata/internal/services/combat"
)

// Provider holds all service instances
type Provider struct {
	CharacterService characterService.Service
	CombatService    combatService.Service
	EventBus         *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	CharacterRepository characters.Repository
	EventBus            *events.Bus
	Rules               *character.Rules
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repository if none provided
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}

	rules := cfg.Rules
	if rules == nil {
		rules = character.DefaultRules()
	}

	// Both services serialize on the same character IDs
	locker := locks.NewKeyed()

	charService := characterService.NewService(&characterService.ServiceConfig{
		Repository: charRepo,
		Publisher:  bus,
		Locker:     locker,
		Rules:      rules,
	})

	combat := combatService.NewService(&combatService.ServiceConfig{
		Repository: charRepo,
		Publisher:  bus,
		Locker:     locker,
		Rules:      rules,
	})

	return &Provider{
		CharacterService: charService,
		CombatService:    combat,
		EventBus:         bus,
	}
}

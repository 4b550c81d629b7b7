package events

import (
	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
)

//go:generate mockgen -destination=mock/mock_publisher.go -package=mockevents github.com/KirkDiggler/rpg-combat-kata/internal/events Publisher

// EventType identifies what happened
type EventType string

const (
	EventTypeCharacterDamaged         EventType = "character.damaged"
	EventTypeCharacterHealed          EventType = "character.healed"
	EventTypeCharacterDied            EventType = "character.died"
	EventTypeCharacterFactionsChanged EventType = "character.factions_changed"
)

// Listener priorities, lower runs first
const (
	PriorityAudit   = 0
	PriorityDefault = 100
	PriorityNotify  = 500
)

// Event is the interface for everything emitted on the bus
type Event interface {
	GetType() EventType
	IsCancelled() bool
	Cancel()
}

// Publisher is the part of the bus services depend on
type Publisher interface {
	Emit(event Event) error
}

// BaseEvent provides the common event plumbing
type BaseEvent struct {
	Type      EventType
	Cancelled bool
}

func (e *BaseEvent) GetType() EventType { return e.Type }
func (e *BaseEvent) IsCancelled() bool  { return e.Cancelled }
func (e *BaseEvent) Cancel()            { e.Cancelled = true }

// CombatEvent describes a resolved Damage or Heal call
type CombatEvent struct {
	BaseEvent
	ActorID         string
	TargetID        string
	RequestedAmount int
	AppliedAmount   int
	HealthBefore    int
	HealthAfter     int
	Outcome         character.Outcome
}

// NewCombatEvent builds a combat event of the given type
func NewCombatEvent(eventType EventType, actorID, targetID string, requested, before, after int, outcome character.Outcome) *CombatEvent {
	applied := before - after
	if applied < 0 {
		applied = -applied
	}

	return &CombatEvent{
		BaseEvent:       BaseEvent{Type: eventType},
		ActorID:         actorID,
		TargetID:        targetID,
		RequestedAmount: requested,
		AppliedAmount:   applied,
		HealthBefore:    before,
		HealthAfter:     after,
		Outcome:         outcome,
	}
}

// FactionsChangedEvent is emitted after a character joins or leaves factions
type FactionsChangedEvent struct {
	BaseEvent
	CharacterID string
	Previous    []string
	Current     []string
}

func NewFactionsChangedEvent(characterID string, previous, current []string) *FactionsChangedEvent {
	return &FactionsChangedEvent{
		BaseEvent:   BaseEvent{Type: EventTypeCharacterFactionsChanged},
		CharacterID: characterID,
		Previous:    previous,
		Current:     current,
	}
}

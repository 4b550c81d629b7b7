package characters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu           sync.RWMutex
	characters   map[string]*CharacterData
	timeProvider TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters:   make(map[string]*CharacterData),
		timeProvider: utcClock{},
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}

	if char.ID() == "" {
		return dnderr.CharacterIDRequired()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID()]; exists {
		return dnderr.CharacterAlreadyExists(char.ID())
	}

	data := toCharacterData(char)
	data.CreatedAt = r.timeProvider.Now()
	data.UpdatedAt = data.CreatedAt
	r.characters[char.ID()] = data

	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, dnderr.CharacterIDRequired()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.characters[id]
	if !exists {
		return nil, dnderr.CharacterNotFound(id)
	}

	// A fresh character each time so callers never share state through the store
	return fromCharacterData(copyData(data)), nil
}

// Update updates an existing character
func (r *InMemoryRepository) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}

	if char.ID() == "" {
		return dnderr.CharacterIDRequired()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[char.ID()]
	if !exists {
		return dnderr.CharacterNotFound(char.ID())
	}

	data := toCharacterData(char)
	data.CreatedAt = existing.CreatedAt
	data.UpdatedAt = r.timeProvider.Now()
	r.characters[char.ID()] = data

	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.CharacterIDRequired()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return dnderr.CharacterNotFound(id)
	}

	delete(r.characters, id)
	return nil
}

// ListByFaction retrieves all characters in a faction, ordered by ID
func (r *InMemoryRepository) ListByFaction(ctx context.Context, faction string) ([]*character.Character, error) {
	if faction == "" {
		return nil, dnderr.FactionRequired()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*CharacterData
	for _, data := range r.characters {
		for _, f := range data.Factions {
			if f == faction {
				matched = append(matched, data)
				break
			}
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].ID < matched[j].ID
	})

	result := make([]*character.Character, 0, len(matched))
	for _, data := range matched {
		result = append(result, fromCharacterData(copyData(data)))
	}

	return result, nil
}

package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"
	"sort"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider // Optional, defaults to UTC wall clock
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = utcClock{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

// NewRedis creates a Redis repository with default settings
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{Client: client})
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// factionCharactersKey generates the Redis key for a faction's member set
func (r *redisRepo) factionCharactersKey(faction string) string {
	return fmt.Sprintf("faction:%s:characters", faction)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if char.ID() == "" {
		return dnderr.CharacterIDRequired()
	}

	exists, err := r.client.Exists(ctx, r.key(char.ID())).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return dnderr.CharacterAlreadyExists(char.ID())
	}

	data := toCharacterData(char)
	data.CreatedAt = r.timeProvider.Now()
	data.UpdatedAt = data.CreatedAt

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(char.ID()), string(jsonData), 0)
	for _, faction := range uniqueFactions(data.Factions) {
		pipe.SAdd(ctx, r.factionCharactersKey(faction), char.ID())
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}

	return nil
}

func (r *redisRepo) getData(ctx context.Context, id string) (*CharacterData, error) {
	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, dnderr.CharacterNotFound(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var data CharacterData
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &data); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", unmarshalErr)
	}

	return &data, nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, dnderr.CharacterIDRequired()
	}

	data, err := r.getData(ctx, id)
	if err != nil {
		return nil, err
	}

	return fromCharacterData(data), nil
}

// Update updates an existing character, moving it between faction indexes when
// its factions changed
func (r *redisRepo) Update(ctx context.Context, char *character.Character) error {
	if char == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if char.ID() == "" {
		return dnderr.CharacterIDRequired()
	}

	existing, err := r.getData(ctx, char.ID())
	if err != nil {
		return err
	}

	data := toCharacterData(char)
	data.CreatedAt = existing.CreatedAt
	data.UpdatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	removed, added := factionDiff(existing.Factions, data.Factions)

	// The blob and its faction index entries are written in one transaction
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(char.ID()), string(jsonData), 0)
	for _, faction := range removed {
		pipe.SRem(ctx, r.factionCharactersKey(faction), char.ID())
	}
	for _, faction := range added {
		pipe.SAdd(ctx, r.factionCharactersKey(faction), char.ID())
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}

	if len(removed) > 0 || len(added) > 0 {
		log.Printf("CharacterRepo: Moved character %s between faction indexes, removed %v added %v",
			char.ID(), removed, added)
	}

	return nil
}

// Delete removes a character and its faction index entries
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dnderr.CharacterIDRequired()
	}

	existing, err := r.getData(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	for _, faction := range uniqueFactions(existing.Factions) {
		pipe.SRem(ctx, r.factionCharactersKey(faction), id)
	}

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}

	return nil
}

// ListByFaction loads every member of a faction concurrently. Index entries
// pointing at characters that no longer exist are skipped.
func (r *redisRepo) ListByFaction(ctx context.Context, faction string) ([]*character.Character, error) {
	if faction == "" {
		return nil, dnderr.FactionRequired()
	}

	ids, err := r.client.SMembers(ctx, r.factionCharactersKey(faction)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list faction members: %w", err)
	}
	sort.Strings(ids)

	loaded := make([]*CharacterData, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			data, err := r.getData(gctx, id)
			if dnderr.IsNotFound(err) {
				log.Printf("CharacterRepo: Skipping stale entry %s in faction %s", id, faction)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get character %s: %w", id, err)
			}
			loaded[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*character.Character, 0, len(loaded))
	for _, data := range slices.DeleteFunc(loaded, func(d *CharacterData) bool { return d == nil }) {
		result = append(result, fromCharacterData(data))
	}

	return result, nil
}

package characters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	dnderr "github.com/KirkDiggler/rpg-combat-kata/internal/errors"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type RedisRepoTestSuite struct {
	suite.Suite
	client    *redis.Client
	mock      redismock.ClientMock
	repo      *redisRepo
	createdAt time.Time
	now       time.Time
	ctx       context.Context
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.client, s.mock = redismock.NewClientMock()
	s.createdAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = s.createdAt.Add(time.Hour)
	s.repo = &redisRepo{
		client:       s.client,
		timeProvider: fixedClock{now: s.now},
	}
	s.ctx = context.Background()
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) createTestCharacter(factions ...string) *character.Character {
	return character.NewCharacter(3, 750, 1, character.ArchetypeRanged).
		WithID("hero").
		WithFactions(factions...)
}

func (s *RedisRepoTestSuite) marshal(char *character.Character, createdAt, updatedAt time.Time) string {
	data := toCharacterData(char)
	data.CreatedAt = createdAt
	data.UpdatedAt = updatedAt

	jsonData, err := json.Marshal(data)
	s.Require().NoError(err)
	return string(jsonData)
}

func (s *RedisRepoTestSuite) TestCreate_HappyPath() {
	char := s.createTestCharacter("red", "blue", "red")

	s.mock.ExpectExists("character:hero").SetVal(0)
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:hero", s.marshal(char, s.now, s.now), 0).SetVal("OK")
	s.mock.ExpectSAdd("faction:red:characters", "hero").SetVal(1)
	s.mock.ExpectSAdd("faction:blue:characters", "hero").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Create(s.ctx, char)
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestCreate_AlreadyExists() {
	char := s.createTestCharacter()

	s.mock.ExpectExists("character:hero").SetVal(1)

	err := s.repo.Create(s.ctx, char)
	s.Error(err)
	s.True(dnderr.IsAlreadyExists(err))
	s.Equal("hero", dnderr.CharacterID(err))
}

func (s *RedisRepoTestSuite) TestCreate_InvalidInput() {
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, nil)))
	s.True(dnderr.IsInvalidArgument(s.repo.Create(s.ctx, character.NewCharacter(1, 1, 0, character.ArchetypeMelee))))
}

func (s *RedisRepoTestSuite) TestCreate_RedisError() {
	char := s.createTestCharacter()

	s.mock.ExpectExists("character:hero").SetErr(errors.New("redis error"))

	err := s.repo.Create(s.ctx, char)
	s.Error(err)
	s.Contains(err.Error(), "failed to check character existence")
}

func (s *RedisRepoTestSuite) TestGet_HappyPath() {
	char := s.createTestCharacter("red")

	s.mock.ExpectGet("character:hero").SetVal(s.marshal(char, s.createdAt, s.createdAt))

	result, err := s.repo.Get(s.ctx, "hero")
	s.Require().NoError(err)
	s.Equal("hero", result.ID())
	s.Equal(3, result.Level())
	s.Equal(750, result.Health())
	s.Equal(1, result.Position())
	s.Equal(character.ArchetypeRanged, result.Archetype())
	s.Equal(character.RangedMaxAttackRange, result.MaxAttackRange())
	s.Equal([]string{"red"}, result.Factions())
}

func (s *RedisRepoTestSuite) TestGet_NotFound() {
	s.mock.ExpectGet("character:missing").RedisNil()

	result, err := s.repo.Get(s.ctx, "missing")
	s.Nil(result)
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestGet_CorruptData() {
	s.mock.ExpectGet("character:hero").SetVal("{not json")

	_, err := s.repo.Get(s.ctx, "hero")
	s.Error(err)
	s.Contains(err.Error(), "failed to unmarshal character")
}

func (s *RedisRepoTestSuite) TestUpdate_SameFactions() {
	before := s.createTestCharacter("red")
	after := s.createTestCharacter("red")
	after.Heal(after, 100)

	s.mock.ExpectGet("character:hero").SetVal(s.marshal(before, s.createdAt, s.createdAt))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:hero", s.marshal(after, s.createdAt, s.now), 0).SetVal("OK")
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Update(s.ctx, after)
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestUpdate_FactionsChanged() {
	before := s.createTestCharacter("red", "green")
	after := s.createTestCharacter("green", "blue")

	s.mock.ExpectGet("character:hero").SetVal(s.marshal(before, s.createdAt, s.createdAt))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:hero", s.marshal(after, s.createdAt, s.now), 0).SetVal("OK")
	s.mock.ExpectSRem("faction:red:characters", "hero").SetVal(1)
	s.mock.ExpectSAdd("faction:blue:characters", "hero").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Update(s.ctx, after)
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestUpdate_IndexFailureFailsTheWholeWrite() {
	before := s.createTestCharacter("red")
	after := s.createTestCharacter("blue")

	s.mock.ExpectGet("character:hero").SetVal(s.marshal(before, s.createdAt, s.createdAt))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectSet("character:hero", s.marshal(after, s.createdAt, s.now), 0).SetVal("OK")
	s.mock.ExpectSRem("faction:red:characters", "hero").SetVal(1)
	s.mock.ExpectSAdd("faction:blue:characters", "hero").SetErr(errors.New("WRONGTYPE"))
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Update(s.ctx, after)
	s.Error(err)
	s.Contains(err.Error(), "failed to update character")
}

func (s *RedisRepoTestSuite) TestUpdate_NotFound() {
	s.mock.ExpectGet("character:hero").RedisNil()

	err := s.repo.Update(s.ctx, s.createTestCharacter())
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete_HappyPath() {
	char := s.createTestCharacter("red")

	s.mock.ExpectGet("character:hero").SetVal(s.marshal(char, s.createdAt, s.createdAt))
	s.mock.ExpectTxPipeline()
	s.mock.ExpectDel("character:hero").SetVal(1)
	s.mock.ExpectSRem("faction:red:characters", "hero").SetVal(1)
	s.mock.ExpectTxPipelineExec()

	err := s.repo.Delete(s.ctx, "hero")
	s.NoError(err)
}

func (s *RedisRepoTestSuite) TestDelete_NotFound() {
	s.mock.ExpectGet("character:hero").RedisNil()

	err := s.repo.Delete(s.ctx, "hero")
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestListByFaction_SkipsStaleEntries() {
	alive := character.NewCharacter(1, 1000, 0, character.ArchetypeMelee).WithID("a").WithFactions("red")

	s.mock.MatchExpectationsInOrder(false)
	s.mock.ExpectSMembers("faction:red:characters").SetVal([]string{"b", "a"})
	s.mock.ExpectGet("character:a").SetVal(s.marshal(alive, s.createdAt, s.createdAt))
	s.mock.ExpectGet("character:b").RedisNil()

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(os.Stderr)

	result, err := s.repo.ListByFaction(s.ctx, "red")
	s.Require().NoError(err)
	s.Require().Len(result, 1)
	s.Equal("a", result[0].ID())
	s.Contains(logs.String(), "CharacterRepo: Skipping stale entry b in faction red")
}

func (s *RedisRepoTestSuite) TestListByFaction_RedisError() {
	s.mock.ExpectSMembers("faction:red:characters").SetErr(errors.New("redis error"))

	_, err := s.repo.ListByFaction(s.ctx, "red")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestListByFaction_RequiresFaction() {
	_, err := s.repo.ListByFaction(s.ctx, "")
	s.True(dnderr.IsInvalidArgument(err))
}

func TestFactionDiff(t *testing.T) {
	removed, added := factionDiff([]string{"a", "b", "b"}, []string{"b", "c", "c"})

	if len(removed) != 1 || removed[0] != "a" {
		t.Fatalf("expected [a] removed, got %v", removed)
	}
	if len(added) != 1 || added[0] != "c" {
		t.Fatalf("expected [c] added, got %v", added)
	}
}

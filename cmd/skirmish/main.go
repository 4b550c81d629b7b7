package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-combat-kata/internal/config"
	"github.com/KirkDiggler/rpg-combat-kata/internal/domain/character"
	"github.com/KirkDiggler/rpg-combat-kata/internal/events"
	"github.com/KirkDiggler/rpg-combat-kata/internal/repositories/characters"
	"github.com/KirkDiggler/rpg-combat-kata/internal/services"
	characterService "github.com/KirkDiggler/rpg-combat-kata/internal/services/character"
	combatService "github.com/KirkDiggler/rpg-combat-kata/internal/services/combat"
)

type combatantFlags struct {
	level     *int
	health    *int
	position  *int
	archetype *string
	factions  *string
}

func registerCombatant(prefix string, defaultPosition int) combatantFlags {
	return combatantFlags{
		level:     flag.Int(prefix+"-level", 1, prefix+" level"),
		health:    flag.Int(prefix+"-health", character.MaximumHealth, prefix+" starting health"),
		position:  flag.Int(prefix+"-position", defaultPosition, prefix+" position"),
		archetype: flag.String(prefix+"-archetype", string(character.ArchetypeMelee), prefix+" archetype (melee or ranged)"),
		factions:  flag.String(prefix+"-factions", "", prefix+" factions, comma separated"),
	}
}

func (f combatantFlags) input() *characterService.CreateCharacterInput {
	return &characterService.CreateCharacterInput{
		Level:     *f.level,
		Health:    *f.health,
		Position:  *f.position,
		Archetype: character.ParseArchetype(*f.archetype),
		Factions:  splitFactions(*f.factions),
	}
}

func main() {
	attackerFlags := registerCombatant("attacker", 0)
	defenderFlags := registerCombatant("defender", 1)
	script := flag.String("script", "damage:100", "Actions the attacker takes, e.g. damage:100,heal:50")
	healTarget := flag.String("heal-target", "attacker", "Who the attacker heals: attacker or defender")
	flag.Parse()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	steps, err := parseScript(*script)
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}

	if *healTarget != "attacker" && *healTarget != "defender" {
		log.Fatalf("Invalid heal target %q, expected attacker or defender", *healTarget)
	}

	providerConfig := &services.ProviderConfig{
		Rules: cfg.Rules.ToRules(),
	}

	var redisClient *redis.Client

	if cfg.Redis.URL != "" {
		log.Printf("Connecting to Redis at: %s", cfg.Redis.URL)

		opts, parseErr := redis.ParseURL(cfg.Redis.URL)
		if parseErr != nil {
			log.Printf("Failed to parse Redis URL: %v", parseErr)
			log.Println("Falling back to in-memory repositories")
		} else {
			redisClient = redis.NewClient(opts)

			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			pingErr := redisClient.Ping(pingCtx).Err()
			cancel()

			if pingErr != nil {
				log.Printf("Failed to connect to Redis: %v", pingErr)
				log.Println("Falling back to in-memory repositories")
				_ = redisClient.Close()
				redisClient = nil
			} else {
				log.Println("Successfully connected to Redis")
				providerConfig.CharacterRepository = characters.NewRedis(redisClient)
			}
		}
	} else {
		log.Println("No REDIS_URL found, using in-memory repositories")
	}

	provider := services.NewProvider(providerConfig)
	subscribeNarrator(provider.EventBus)

	code := run(context.Background(), provider, attackerFlags, defenderFlags, steps, *healTarget)

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Printf("Failed to close Redis connection: %v", err)
		}
	}

	os.Exit(code)
}

func run(ctx context.Context, provider *services.Provider, attackerFlags, defenderFlags combatantFlags, steps []step, healTarget string) int {
	attacker, err := provider.CharacterService.CreateCharacter(ctx, attackerFlags.input())
	if err != nil {
		log.Printf("Failed to create attacker: %v", err)
		return 1
	}

	defender, err := provider.CharacterService.CreateCharacter(ctx, defenderFlags.input())
	if err != nil {
		log.Printf("Failed to create defender: %v", err)
		return 1
	}

	attackerID := attacker.Character.ID()
	defenderID := defender.Character.ID()

	for i, s := range steps {
		input := &combatService.ActionInput{ActorID: attackerID, TargetID: defenderID, Amount: s.Amount}

		var output *combatService.ActionOutput
		switch s.Kind {
		case actionDamage:
			output, err = provider.CombatService.Damage(ctx, input)
		case actionHeal:
			if healTarget == "attacker" {
				input.TargetID = attackerID
			}
			output, err = provider.CombatService.Heal(ctx, input)
		}
		if err != nil {
			log.Printf("Step %d (%s:%d) failed: %v", i+1, s.Kind, s.Amount, err)
			return 1
		}

		fmt.Printf("%2d. %-6s %4d  %-12s health %d -> %d\n",
			i+1, s.Kind, s.Amount, output.Outcome, output.HealthBefore, output.HealthAfter)
	}

	for _, id := range []string{attackerID, defenderID} {
		char, getErr := provider.CharacterService.GetCharacter(ctx, id)
		if getErr != nil {
			log.Printf("Failed to load character %s: %v", id, getErr)
			return 1
		}
		fmt.Printf("%s %s level %d health %d alive=%t factions=%v\n",
			char.ID(), char.Archetype(), char.Level(), char.Health(), char.IsAlive(), char.Factions())
	}

	return 0
}

func subscribeNarrator(bus *events.Bus) {
	narrator := &events.ListenerFunc{
		ListenerID:       "skirmish-narrator",
		ListenerPriority: events.PriorityNotify,
		Handler: func(e events.Event) error {
			if e.GetType() == events.EventTypeCharacterDied {
				if died, ok := e.(*events.CombatEvent); ok {
					fmt.Printf("    %s has fallen\n", died.TargetID)
				}
			}
			return nil
		},
	}
	bus.Subscribe(events.EventTypeCharacterDied, narrator)
}

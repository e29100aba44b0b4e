package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/core/event"
	coresys "github.com/l1jgo/skirmish/internal/core/system"
	"github.com/l1jgo/skirmish/internal/data"
	"github.com/l1jgo/skirmish/internal/handler"
	"github.com/l1jgo/skirmish/internal/persist"
	"github.com/l1jgo/skirmish/internal/scripting"
	"github.com/l1jgo/skirmish/internal/system"
	"github.com/l1jgo/skirmish/internal/world"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              skirmish  v0.1.0             \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        turn-based battle resolver         \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-handler.DisplayWidth(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := max(42-handler.DisplayWidth(label)-len(numStr), 3)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main loop ─────────────────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/skirmish.toml"
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 3. Data tables and scripts
	printSection("Data")
	monsters, err := data.LoadMonsterTable(cfg.Data.MonsterList)
	if err != nil {
		return fmt.Errorf("load monster table: %w", err)
	}
	printStat("Monster templates", monsters.Count())
	items, err := data.LoadItemTable(cfg.Data.ItemList)
	if err != nil {
		return fmt.Errorf("load item table: %w", err)
	}
	printStat("Items", items.Count())

	engine, err := scripting.NewEngine(cfg.Scripts.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("Lua scripts loaded")
	fmt.Println()

	// 4. Optional battle log
	var battleLog system.BattleLogWriter
	if cfg.Database.DSN != "" {
		printSection("Database")
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			cancel()
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("PostgreSQL connected")
		version, err := db.Migrate(dbCtx)
		if err != nil {
			cancel()
			return fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("Schema at version %d", version))
		repo := persist.NewBattleLogRepo(db)
		if cfg.Database.Retention > 0 {
			n, err := repo.DeleteBefore(dbCtx, time.Now().Add(-cfg.Database.Retention))
			if err != nil {
				cancel()
				return fmt.Errorf("prune battle log: %w", err)
			}
			printStat("Pruned log entries", int(n))
		}
		cancel()
		fmt.Println()
		battleLog = repo
	}

	// 5. World
	seed := cfg.Battle.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ws := world.NewState()
	if err := buildDemo(ws, monsters, items); err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	printSection("World")
	printStat("Players", len(ws.Players()))
	printStat("Locations", len(ws.Locations()))
	printStat("Battles", ws.BattleCount())
	ws.EachBattle(func(b *world.Battle) {
		printOK(b.String())
	})
	fmt.Println()

	// 6. Systems
	bus := event.NewBus()
	handler.SubscribeConsole(bus, os.Stdout)

	battles := system.NewBattleSystem(ws, bus, log)
	battles.SetEffects(engine)
	battles.SetProvider(world.KindMonster, system.NewRandomTargetPolicy(rng))
	var console *handler.ConsoleProvider
	if cfg.Battle.Autoplay {
		battles.SetProvider(world.KindPlayer, system.FirstTargetPolicy{})
	} else {
		console = handler.NewConsoleProvider(os.Stdin, os.Stdout)
		battles.SetProvider(world.KindPlayer, console)
		battles.SetLiveEvents(true)
	}
	if cfg.Battle.StatGrowth {
		battles.EnableStatGrowth(engine.LevelUpRolls(), rng)
	}

	ranking := system.NewRankingSystem(ws, 1)
	runner := coresys.NewRunner()
	runner.Register(battles)
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewReportSystem(ws, os.Stdout))
	runner.Register(ranking)
	var persistence *system.PersistenceSystem
	if battleLog != nil {
		persistence = system.NewPersistenceSystem(bus, battleLog, log, cfg.Database.FlushInterval)
		runner.Register(persistence)
	}
	runner.Register(system.NewCleanupSystem(ws, log))

	printReady(fmt.Sprintf("battle loop started (seed: %d, tick: %s)", seed, cfg.Battle.TickRate))
	fmt.Println()

	// 7. Battle loop
	for activeBattles(ws) > 0 {
		if cfg.Battle.MaxRounds > 0 && runner.Ticks() >= uint64(cfg.Battle.MaxRounds) {
			log.Warn("round limit reached", zap.Int("max_rounds", cfg.Battle.MaxRounds))
			break
		}
		runner.Tick(cfg.Battle.TickRate)
		if console != nil && console.Closed() {
			log.Info("input closed, stopping")
			break
		}
		if cfg.Battle.TickRate > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(cfg.Battle.TickRate):
			}
		}
		if ctx.Err() != nil {
			log.Info("shutdown signal received")
			break
		}
	}

	// 8. Shutdown
	bus.Flush()
	if persistence != nil {
		if err := persistence.Flush(); err != nil {
			log.Error("final battle log flush failed", zap.Error(err))
		}
	}
	ranking.Recalculate()
	fmt.Println()
	printSection("Ranking")
	for _, e := range ranking.Leaderboard() {
		status := ""
		if e.Dead {
			status = " (dead)"
		}
		fmt.Printf("  %d. %s Lv.%d exp %d%s\n", e.Place, e.Name, e.Level, e.Exp, status)
	}
	log.Info("battle loop stopped", zap.Uint64("rounds", runner.Ticks()))
	return nil
}

// buildDemo sets up two players fighting two slimes at Winterfell.
func buildDemo(ws *world.State, monsters *data.MonsterTable, items *data.ItemTable) error {
	slime := monsters.Get("slime")
	if slime == nil {
		return fmt.Errorf("monster template %q missing", "slime")
	}
	ws.AddLocation("Salzburg", "Town")
	winterfell := ws.AddLocation("Winterfell", "Castle")

	davion := ws.NewPlayer("Davion")
	maron := ws.NewPlayer("Maron")
	davion.Exp = 9

	for _, eq := range []struct {
		who  *world.Combatant
		item string
	}{
		{davion, "Iron Mace"},
		{maron, "Sword"},
	} {
		item := items.Get(eq.item)
		if item == nil {
			return fmt.Errorf("item %q missing", eq.item)
		}
		if _, err := system.Equip(eq.who, item); err != nil {
			return err
		}
	}
	for _, p := range ws.Players() {
		if potion := items.Get("Potion"); potion != nil {
			p.AddItem(potion)
		}
	}

	winterfell.AddBattle(
		[]*world.Combatant{davion, maron},
		[]*world.Combatant{ws.SpawnMonster(slime), ws.SpawnMonster(slime)},
	)
	return nil
}

// activeBattles counts battles that can still advance.
func activeBattles(ws *world.State) int {
	n := 0
	ws.EachBattle(func(b *world.Battle) {
		if !b.Broken && !b.Reported {
			n++
		}
	})
	return n
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

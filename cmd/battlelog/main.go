// battlelog prints the recorded events of one battle.
//
// Usage: battlelog <battle-id>
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/skirmish/internal/config"
	"github.com/l1jgo/skirmish/internal/persist"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "battlelog: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) != 2 {
		return fmt.Errorf("usage: battlelog <battle-id>")
	}
	id, err := uuid.Parse(os.Args[1])
	if err != nil {
		return fmt.Errorf("battle id: %w", err)
	}

	cfgPath := "config/skirmish.toml"
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := persist.NewDB(ctx, cfg.Database, zap.NewNop())
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	entries, err := persist.NewBattleLogRepo(db).LoadBattle(ctx, id)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("no entries for battle %s", id)
	}
	for _, e := range entries {
		fmt.Println(formatEntry(e))
	}
	return nil
}

func formatEntry(e persist.BattleLogEntry) string {
	line := fmt.Sprintf("%s  r%-3d #%-4d %-9s", e.CreatedAt.Format("15:04:05"), e.Round, e.Seq, e.Kind)
	if e.Actor != "" {
		line += " " + e.Actor
	}
	if e.Target != "" {
		line += " -> " + e.Target
	}
	if e.Amount != 0 {
		line += fmt.Sprintf(" %d", e.Amount)
	}
	if e.Detail != "" {
		line += " (" + e.Detail + ")"
	}
	return line
}

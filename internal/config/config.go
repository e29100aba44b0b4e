package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

type Config struct {
	Battle   BattleConfig   `toml:"battle"`
	Data     DataConfig     `toml:"data"`
	Scripts  ScriptsConfig  `toml:"scripts"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

type BattleConfig struct {
	Seed       int64         `toml:"seed" env:"SKIRMISH_SEED"`               // 0 = seed from the clock
	TickRate   time.Duration `toml:"tick_rate" env:"SKIRMISH_TICK_RATE"`     // pause between rounds
	MaxRounds  int           `toml:"max_rounds" env:"SKIRMISH_MAX_ROUNDS"`   // 0 = no limit
	Autoplay   bool          `toml:"autoplay" env:"SKIRMISH_AUTOPLAY"`       // players attack the first target instead of prompting
	StatGrowth bool          `toml:"stat_growth" env:"SKIRMISH_STAT_GROWTH"` // roll stat gains on every level reached
}

type DataConfig struct {
	MonsterList string `toml:"monster_list" env:"SKIRMISH_MONSTER_LIST"` // "" = built-in table
	ItemList    string `toml:"item_list" env:"SKIRMISH_ITEM_LIST"`
}

type ScriptsConfig struct {
	Dir string `toml:"dir" env:"SKIRMISH_SCRIPTS_DIR"` // overrides loaded after the built-in scripts
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn" env:"SKIRMISH_DATABASE_DSN"`                             // "" = battle log disabled
	MaxOpenConns    int           `toml:"max_open_conns" env:"SKIRMISH_DATABASE_MAX_OPEN_CONNS"`       // 0 = pgx default
	MaxIdleConns    int           `toml:"max_idle_conns" env:"SKIRMISH_DATABASE_MAX_IDLE_CONNS"`       // kept open as MinConns
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime" env:"SKIRMISH_DATABASE_CONN_MAX_LIFETIME"` // 0 = pgx default
	FlushInterval   int           `toml:"flush_interval" env:"SKIRMISH_DATABASE_FLUSH_INTERVAL"`       // ticks between battle log flushes
	Retention       time.Duration `toml:"retention" env:"SKIRMISH_DATABASE_RETENTION"`                 // prune entries older than this at startup; 0 = keep all
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"SKIRMISH_LOG_LEVEL"`
	Format string `toml:"format" env:"SKIRMISH_LOG_FORMAT"` // "json" or "console"
}

// Load reads the TOML file at path over the defaults, then applies
// SKIRMISH_* environment overrides. A missing file is not an error: the
// defaults plus environment are used.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Battle.MaxRounds < 0 {
		return fmt.Errorf("battle.max_rounds must be >= 0, got %d", c.Battle.MaxRounds)
	}
	if c.Battle.TickRate < 0 {
		return fmt.Errorf("battle.tick_rate must be >= 0, got %s", c.Battle.TickRate)
	}
	if c.Database.Retention < 0 {
		return fmt.Errorf("database.retention must be >= 0, got %s", c.Database.Retention)
	}
	if c.Database.FlushInterval < 1 {
		return fmt.Errorf("database.flush_interval must be >= 1, got %d", c.Database.FlushInterval)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Battle: BattleConfig{
			Seed:      0,
			TickRate:  500 * time.Millisecond,
			MaxRounds: 100,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    4,
			MaxIdleConns:    1,
			ConnMaxLifetime: 30 * time.Minute,
			FlushInterval:   5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

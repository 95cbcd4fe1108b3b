package rotebot

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.Game.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log  LogConfig  `toml:"log"`
	Bot  BotConfig  `toml:"bot"`
	DB   DBConfig   `toml:"db"`
	Game GameConfig `toml:"game"`
}

type BotConfig struct {
	DevGuilds []snowflake.ID `toml:"dev_guilds"`
	Token     string         `toml:"token"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

// GameConfig holds the gacha tuning knobs. Zero values fall back to the
// stock defaults.
type GameConfig struct {
	SpinCost           int64 `toml:"spin_cost"`
	MaxSpinsPerCommand int   `toml:"max_spins_per_command"`
	InitialPPT         int64 `toml:"initial_ppt"`
	InitialBlackTokens int64 `toml:"initial_black_tokens"`
	InjectAmount       int64 `toml:"inject_amount"`
	ConfirmTimeoutSecs int   `toml:"confirm_timeout_secs"`
}

func (g *GameConfig) applyDefaults() {
	if g.SpinCost <= 0 {
		g.SpinCost = 2000
	}
	if g.MaxSpinsPerCommand <= 0 {
		g.MaxSpinsPerCommand = 30
	}
	if g.InitialPPT <= 0 {
		g.InitialPPT = 100000
	}
	if g.InitialBlackTokens <= 0 {
		g.InitialBlackTokens = 30
	}
	if g.InjectAmount <= 0 {
		g.InjectAmount = 100000
	}
	if g.ConfirmTimeoutSecs <= 0 {
		g.ConfirmTimeoutSecs = 300
	}
}

// Package config loads runtime settings from an optional config file and the
// environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Rows       int    `mapstructure:"ROWS"`
	Cols       int    `mapstructure:"COLS"`
	MemoryPath string `mapstructure:"MEMORY_PATH"`
	ListenAddr string `mapstructure:"LISTEN_ADDR"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`
	Seed       uint64 `mapstructure:"SEED"`
	TrainGames int    `mapstructure:"TRAIN_GAMES"`
	OutputRoot string `mapstructure:"OUTPUT_ROOT"`
}

// Load builds the configuration from defaults, then the config file at
// cfgPath (if given), then environment variables, in increasing precedence.
func Load(cfgPath string) (*Config, error) {
	v := viper.New()
	v.SetDefault("ROWS", 3)
	v.SetDefault("COLS", 3)
	v.SetDefault("MEMORY_PATH", "hexapawn_memory.gob")
	v.SetDefault("LISTEN_ADDR", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED", 0)
	v.SetDefault("TRAIN_GAMES", 1000)
	v.SetDefault("OUTPUT_ROOT", "experiments")

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgPath, err)
		}
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Rows < 3 || cfg.Cols < 3 {
		return nil, fmt.Errorf("board must be at least 3x3, got %dx%d", cfg.Rows, cfg.Cols)
	}
	return &cfg, nil
}

package bot

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Auth struct {
		RedisURL         string `toml:"redis_url"`
		TokenKeyTemplate string `toml:"token_key_template"`
	} `toml:"auth"`
	Bot struct {
		Token    string  `toml:"token"`
		AdminIDs []int64 `toml:"admin_ids"`
	} `toml:"bot"`
	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`
	Exam struct {
		StateFile string `toml:"state_file"`
	} `toml:"exam"`
}

func ReadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("Failed to load config: %v", err)
	}

	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = "./migrations"
	}
	if cfg.Exam.StateFile == "" {
		cfg.Exam.StateFile = "current_exam.txt"
	}
	if cfg.Auth.TokenKeyTemplate == "" {
		cfg.Auth.TokenKeyTemplate = "auth:{clerk}"
	}

	return &cfg, nil
}

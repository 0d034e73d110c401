package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-default:"local"`

	// Productivity constant for the planned-end-date calculator.
	HoursPerDay float64 `yaml:"hours_per_day" env:"HOURS_PER_DAY" env-default:"9"`

	// "hours" (hours-weighted, primary) or "count".
	RollupPolicy string `yaml:"rollup_policy" env:"ROLLUP_POLICY" env-default:"hours"`

	Overdue Overdue `yaml:"overdue"`
}

type Overdue struct {
	Interval time.Duration `yaml:"interval" env:"OVERDUE_INTERVAL" env-default:"5m"`
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/local.yaml"
	}

	var cfg Config

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// No file, environment only.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from env: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return &cfg
}

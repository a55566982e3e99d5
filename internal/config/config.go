package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/Seemabie/SH-Reports-App/internal/ledger"
)

type Config struct {
	Env                  string  `mapstructure:"env"`
	LogLevel             string  `mapstructure:"log_level"`
	DatabaseURL          string  `mapstructure:"database_url"`
	OutputDir            string  `mapstructure:"output_dir"`
	PayOutMin            float64 `mapstructure:"payout_min"`
	PayOutMax            float64 `mapstructure:"payout_max"`
	RandomSeed           uint64  `mapstructure:"random_seed"`
	RandomSeedSet        bool    `mapstructure:"-"`
	StationsFile         string  `mapstructure:"stations_file"`
	DefaultTaxMultiplier float64 `mapstructure:"default_tax_multiplier"`
}

// ArchiveEnabled reports whether generated runs are recorded in Postgres
func (c *Config) ArchiveEnabled() bool {
	return c.DatabaseURL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("OUTPUT_DIR", ".")

	// Pay-out is synthesized from this range for every run
	v.SetDefault("PAYOUT_MIN", ledger.DefaultPayOutMin)
	v.SetDefault("PAYOUT_MAX", ledger.DefaultPayOutMax)

	// Unset means a seed is derived from the clock and logged
	v.SetDefault("RANDOM_SEED", 0)

	v.SetDefault("STATIONS_FILE", "")
	v.SetDefault("DEFAULT_TAX_MULTIPLIER", 1.08265)
}

// NewConfig reads configuration from the environment, after loading the
// nearest .env file if there is one.
func NewConfig() (*Config, error) {
	loadEnvFile()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}

	_, cfg.RandomSeedSet = os.LookupEnv("RANDOM_SEED")

	if cfg.Env != "dev" && cfg.Env != "prod" {
		logrus.WithField("env", cfg.Env).Warn("Invalid environment. Using default: prod")
		cfg.Env = "prod"
	}

	if cfg.PayOutMin < 0 || cfg.PayOutMax < cfg.PayOutMin {
		return nil, fmt.Errorf("invalid pay-out range %.2f..%.2f", cfg.PayOutMin, cfg.PayOutMax)
	}
	if cfg.DefaultTaxMultiplier < 1 {
		return nil, fmt.Errorf("DEFAULT_TAX_MULTIPLIER must be at least 1, got %v", cfg.DefaultTaxMultiplier)
	}

	return cfg, nil
}

// loadEnvFile loads .env from the working directory or up to two parents
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Debug("could not determine working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(cwd, "..", ".env"),
		filepath.Join(cwd, "..", "..", ".env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.WithField("path", location).Debug("loaded .env")
			return
		}
	}

	logrus.Debug(".env file not found, using environment variables and defaults")
}

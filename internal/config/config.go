package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config captures runtime configuration for one provisioning run, loaded from
// ADMINSEED_-prefixed environment variables.
type Config struct {
	SourcePath     string `env:"SOURCE_PATH" envDefault:"tamil_nadu_pincodes.csv"`
	TargetState    string `env:"TARGET_STATE" envDefault:"Tamil Nadu"`
	MongoURI       string `env:"MONGO_URI" envDefault:"mongodb://localhost:27017"`
	Database       string `env:"DATABASE" envDefault:"fixitfast"`
	Collection     string `env:"COLLECTION" envDefault:"admins"`
	EmailDomain    string `env:"EMAIL_DOMAIN" envDefault:"fixitfast.gov.in"`
	SharedPassword string `env:"SHARED_PASSWORD"`
	PasswordLength int    `env:"PASSWORD_LENGTH" envDefault:"12"`
	HashCost       int    `env:"HASH_COST" envDefault:"12"`
	ExportCSV      bool   `env:"EXPORT_CSV" envDefault:"true"`
	ExportXLSX     bool   `env:"EXPORT_XLSX" envDefault:"true"`
	OutputDir      string `env:"OUTPUT_DIR" envDefault:"."`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads configuration values from the environment and validates them.
// SharedPassword may stay empty; the pipeline then generates one password for
// the whole run.
func Load() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "ADMINSEED_"}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.TargetState = strings.TrimSpace(cfg.TargetState)
	if cfg.TargetState == "" {
		return Config{}, fmt.Errorf("ADMINSEED_TARGET_STATE must not be blank")
	}
	if cfg.EmailDomain == "" {
		return Config{}, fmt.Errorf("ADMINSEED_EMAIL_DOMAIN must not be blank")
	}
	// bcrypt accepts cost 4..31; anything outside is a configuration mistake.
	if cfg.HashCost < 4 || cfg.HashCost > 31 {
		return Config{}, fmt.Errorf("ADMINSEED_HASH_COST must be between 4 and 31, got %d", cfg.HashCost)
	}
	if cfg.PasswordLength < 8 {
		return Config{}, fmt.Errorf("ADMINSEED_PASSWORD_LENGTH must be at least 8, got %d", cfg.PasswordLength)
	}

	return cfg, nil
}

// Package config provides Viper-based configuration loading for the arena
// tools: logging, content locations, combat rule switches, and the optional
// lore database.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is where log lines go: "stderr", "stdout", or a file path.
	Output string `mapstructure:"output"`
}

// ContentConfig locates the YAML and Lua content directories.
type ContentConfig struct {
	RacesDir    string `mapstructure:"races_dir"`
	StatusesDir string `mapstructure:"statuses_dir"`
	PlayersDir  string `mapstructure:"players_dir"`
	ScriptsDir  string `mapstructure:"scripts_dir"`
}

// DefaultCharmRule raises charm power with Harmony and lowers it with Individualism.
const DefaultCharmRule = `power + virtues["harmony"] / 10 - virtues["individualism"] / 20`

// PowerAdjustConfig holds CEL expressions keyed by saving-throw kind.
type PowerAdjustConfig struct {
	Charm     string `mapstructure:"charm"`
	Confusion string `mapstructure:"confusion"`
	Fear      string `mapstructure:"fear"`
}

// Expressions returns the non-empty expressions keyed by save kind name.
func (p PowerAdjustConfig) Expressions() map[string]string {
	out := make(map[string]string, 3)
	for k, v := range map[string]string{"charm": p.Charm, "confusion": p.Confusion, "fear": p.Fear} {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// RulesConfig holds combat rule switches.
type RulesConfig struct {
	// Seed fixes the random source; 0 selects the crypto source.
	Seed uint64 `mapstructure:"seed"`
	// SmartLearn lets monsters remember the player's resistances.
	SmartLearn bool `mapstructure:"smart_learn"`
	// MaxTurns bounds a single duel.
	MaxTurns int `mapstructure:"max_turns"`
	// Depth is the dungeon level fights take place on.
	Depth       int               `mapstructure:"depth"`
	PowerAdjust PowerAdjustConfig `mapstructure:"power_adjust"`
}

// DatabaseConfig holds PostgreSQL connection settings for lore persistence.
type DatabaseConfig struct {
	// Enabled turns lore persistence on.
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Content  ContentConfig  `mapstructure:"content"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Database DatabaseConfig `mapstructure:"database"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string
	for _, err := range []error{
		validateLogging(c.Logging),
		validateContent(c.Content),
		validateRules(c.Rules),
		validateDatabase(c.Database),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.RacesDir == "" {
		errs = append(errs, "content.races_dir must not be empty")
	}
	if c.StatusesDir == "" {
		errs = append(errs, "content.statuses_dir must not be empty")
	}
	if c.PlayersDir == "" {
		errs = append(errs, "content.players_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateRules(r RulesConfig) error {
	var errs []string
	if r.MaxTurns < 1 {
		errs = append(errs, fmt.Sprintf("rules.max_turns must be >= 1, got %d", r.MaxTurns))
	}
	if r.Depth < 0 || r.Depth > 127 {
		errs = append(errs, fmt.Sprintf("rules.depth must be 0-127, got %d", r.Depth))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	if !d.Enabled {
		return nil
	}
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DEEPDELVE_ prefix
	v.SetEnvPrefix("DEEPDELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("content.races_dir", "content/races")
	v.SetDefault("content.statuses_dir", "content/statuses")
	v.SetDefault("content.players_dir", "content/players")
	v.SetDefault("content.scripts_dir", "content/scripts")

	v.SetDefault("rules.seed", 0)
	v.SetDefault("rules.smart_learn", true)
	v.SetDefault("rules.max_turns", 1000)
	v.SetDefault("rules.depth", 1)
	v.SetDefault("rules.power_adjust.charm", DefaultCharmRule)

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "deepdelve")
	v.SetDefault("database.password", "deepdelve")
	v.SetDefault("database.name", "deepdelve")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")
}

// Package config loads imp-refactor's project-level settings from
// .imprefactor.toml, layered under CLI flag overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config is the on-disk shape of .imprefactor.toml. --registry-name,
// when set, overrides RegistryName; --exclude patterns are added to
// Exclude rather than replacing it; and the defaults are disabled when
// either --no-default-excludes or NoDefaultExcludes is set. The other
// fields have no CLI flag.
type Config struct {
	RegistryName      string        `mapstructure:"registry_name" toml:"registry_name"`
	RegistryFile      string        `mapstructure:"registry_file" toml:"registry_file"`
	EvaluatorCommand  []string      `mapstructure:"evaluator_command" toml:"evaluator_command"`
	Exclude           []string      `mapstructure:"exclude" toml:"exclude"`
	NoDefaultExcludes bool          `mapstructure:"no_default_excludes" toml:"no_default_excludes"`
	Logging           LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// LoggingConfig controls the ambient slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format"` // "human" or "json"
}

// Default returns imp-refactor's built-in defaults, used when no
// .imprefactor.toml is present.
func Default() *Config {
	return &Config{
		RegistryName:     "registry",
		RegistryFile:     "flake.nix",
		EvaluatorCommand: []string{"nix", "eval", "--json", ".#registry"},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "human",
		},
	}
}

// Load reads .imprefactor.toml from repoRoot, if present, merging it
// over Default(). A missing file is not an error.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(".imprefactor")
	v.SetConfigType("toml")
	v.AddConfigPath(repoRoot)

	def := Default()
	v.SetDefault("registry_name", def.RegistryName)
	v.SetDefault("registry_file", def.RegistryFile)
	v.SetDefault("evaluator_command", def.EvaluatorCommand)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return def, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Save writes cfg to <repoRoot>/.imprefactor.toml.
func (c *Config) Save(repoRoot string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	path := filepath.Join(repoRoot, ".imprefactor.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

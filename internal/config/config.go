package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const defaultPageSize = 5

type Config struct {
	DBPath        string    `yaml:"db_path" mapstructure:"db_path"`
	PageSize      int       `yaml:"page_size" mapstructure:"page_size"`
	StrictUpdates bool      `yaml:"strict_updates" mapstructure:"strict_updates"`
	Theme         string    `yaml:"theme" mapstructure:"theme"`
	Log           LogConfig `yaml:"log" mapstructure:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	File   string `yaml:"file" mapstructure:"file"`
	Format string `yaml:"format" mapstructure:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		DBPath:   filepath.Join(dataDir(), "phonebook.json"),
		PageSize: defaultPageSize,
		Theme:    "green",
		Log: LogConfig{
			Level:  "info",
			File:   os.DevNull,
			Format: "text",
		},
	}
}

func dataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "phonebook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "phonebook")
}

// Dir is where the user level config.yaml lives.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "phonebook")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "phonebook")
}

// Load reads config.yaml from the working directory or Dir, then applies
// PHONEBOOK_* environment overrides. A missing file is not an error.
func Load() (*Config, error) {
	return load(viper.New(), ".", Dir())
}

func load(v *viper.Viper, paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	// Defaults must be registered for AutomaticEnv to see nested keys.
	v.SetDefault("db_path", cfg.DBPath)
	v.SetDefault("page_size", cfg.PageSize)
	v.SetDefault("strict_updates", cfg.StrictUpdates)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
	v.SetDefault("log.format", cfg.Log.Format)

	v.SetEnvPrefix("PHONEBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error produced
			return nil, err
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.DBPath = os.ExpandEnv(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("config: db_path is required")
	}
	if c.PageSize < 1 {
		c.PageSize = defaultPageSize
	}
	switch c.Theme {
	case "green", "amber", "mono":
	case "":
		c.Theme = "green"
	default:
		return fmt.Errorf("config: unknown theme %q (must be green, amber, or mono)", c.Theme)
	}
	return nil
}

// Save writes c as YAML to dir/config.yaml and returns the file path.
func Save(c *Config, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.yaml")
	return path, os.WriteFile(path, data, 0644)
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. BIKEDASH_DATASET_PATH.
const EnvPrefix = "BIKEDASH"

// Global configuration structure.
type Global struct {
	DatasetPath       string `mapstructure:"dataset_path" yaml:"dataset_path"`
	SheetName         string `mapstructure:"sheet_name" yaml:"sheet_name"`
	Delimiter         string `mapstructure:"delimiter" yaml:"delimiter"`
	MaxRejectWarnings int    `mapstructure:"max_reject_warnings" yaml:"max_reject_warnings"`

	// Presentation colors passed through to chart requests
	HighlightColor string `mapstructure:"highlight_color" yaml:"highlight_color"`
	MutedColor     string `mapstructure:"muted_color" yaml:"muted_color"`
	AccentColor    string `mapstructure:"accent_color" yaml:"accent_color"`

	// HTTP host
	ListenAddr     string `mapstructure:"listen_addr" yaml:"listen_addr"`
	ReadTimeoutSec int    `mapstructure:"read_timeout_sec" yaml:"read_timeout_sec"`
	Watch          bool   `mapstructure:"watch" yaml:"watch"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		DatasetPath:       "./dashboard/bike_data.csv",
		MaxRejectWarnings: 20,
		HighlightColor:    "#90CAF9",
		MutedColor:        "#D3D3D3",
		AccentColor:       "#FF5733",
		ListenAddr:        ":8501",
		ReadTimeoutSec:    10,
	}
}

// Dir returns ~/.bikedash.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".bikedash"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.bikedash/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. A .env file in the working
// directory seeds the environment without overriding variables already set.
func Load(cfgFile string) (*Global, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("dataset_path", d.DatasetPath)
	v.SetDefault("sheet_name", d.SheetName)
	v.SetDefault("delimiter", d.Delimiter)
	v.SetDefault("max_reject_warnings", d.MaxRejectWarnings)
	v.SetDefault("highlight_color", d.HighlightColor)
	v.SetDefault("muted_color", d.MutedColor)
	v.SetDefault("accent_color", d.AccentColor)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("read_timeout_sec", d.ReadTimeoutSec)
	v.SetDefault("watch", d.Watch)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := Dir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		// a missing file, explicit or default, means defaults; Save creates it
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix = "GOL"
	FileName  = ".gameoflife.yaml"
)

type Config struct {
	DBPath string       `mapstructure:"db_path" yaml:"db_path"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Player PlayerConfig `mapstructure:"player" yaml:"player"`
	Notify NotifyConfig `mapstructure:"notify" yaml:"notify"`
}

type LogConfig struct {
	File    string `mapstructure:"file" yaml:"file"`
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
}

type PlayerConfig struct {
	DefaultName string `mapstructure:"default_name" yaml:"default_name"`
}

type NotifyConfig struct {
	LevelUpDelay time.Duration `mapstructure:"level_up_delay" yaml:"level_up_delay"`
	RewardDelay  time.Duration `mapstructure:"reward_delay" yaml:"reward_delay"`
	Buffer       int           `mapstructure:"buffer" yaml:"buffer"`
}

// SetDefaults registers every key so env overrides resolve even without a file.
func SetDefaults(v *viper.Viper, home string) {
	v.SetDefault("db_path", filepath.Join(home, ".gameoflife.db"))
	v.SetDefault("log.file", filepath.Join(home, ".gameoflife.log"))
	v.SetDefault("log.verbose", false)
	v.SetDefault("player.default_name", "Player 1")
	v.SetDefault("notify.level_up_delay", 300*time.Millisecond)
	v.SetDefault("notify.reward_delay", 600*time.Millisecond)
	v.SetDefault("notify.buffer", 16)
}

// Configure sets up env lookup and the config file on v. An explicit path
// wins over ~/.gameoflife.yaml.
func Configure(v *viper.Viper, path string) error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("get home dir: %w", err)
	}
	SetDefaults(v, home)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigFile(filepath.Join(home, FileName))
	}
	v.SetConfigType("yaml")
	return nil
}

// Load reads the config file, if any, and decodes the effective settings.
// A missing default file is not an error; a missing explicit one is.
func Load(v *viper.Viper, explicit bool) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case !explicit && errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if c.Notify.LevelUpDelay < 0 || c.Notify.RewardDelay < 0 {
		return errors.New("config: notify delays must not be negative")
	}
	if c.Notify.Buffer < 1 {
		return fmt.Errorf("config: notify.buffer must be at least 1, got %d", c.Notify.Buffer)
	}
	return nil
}

// YAML renders the effective config.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	return string(out), nil
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const appName = "marquee"

// Config is the root configuration for marquee
type Config struct {
	TMDB     TMDBConfig     `mapstructure:"tmdb" yaml:"tmdb"`
	UI       UIConfig       `mapstructure:"ui" yaml:"ui"`
	History  HistoryConfig  `mapstructure:"history" yaml:"history"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
	Advanced AdvancedConfig `mapstructure:"advanced" yaml:"advanced"`

	path string
}

// TMDBConfig holds the movie catalog settings.
// Token is a TMDB v4 read access token sent as a bearer credential.
type TMDBConfig struct {
	Token        string        `mapstructure:"token" yaml:"token"`
	BaseURL      string        `mapstructure:"base_url" yaml:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url" yaml:"image_base_url"`
	Language     string        `mapstructure:"language" yaml:"language"`
	IncludeAdult bool          `mapstructure:"include_adult" yaml:"include_adult"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// UIConfig holds terminal UI settings
type UIConfig struct {
	ToastDuration time.Duration `mapstructure:"toast_duration" yaml:"toast_duration"`
	CardWidth     int           `mapstructure:"card_width" yaml:"card_width"`
}

// HistoryConfig controls the recent searches list
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	Limit   int  `mapstructure:"limit" yaml:"limit"`
}

// DatabaseConfig holds SQLite settings
type DatabaseConfig struct {
	Path           string `mapstructure:"path" yaml:"path"`
	MaxConnections int    `mapstructure:"max_connections" yaml:"max_connections"`
	WALMode        bool   `mapstructure:"wal_mode" yaml:"wal_mode"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
	Color      bool   `mapstructure:"color" yaml:"color"`
}

// AdvancedConfig holds debugging switches and platform overrides
type AdvancedConfig struct {
	Debug bool `mapstructure:"debug" yaml:"debug"`
	// ClipboardCommand receives copied text on stdin when the native
	// clipboard is unavailable, e.g. "wl-copy" or "clip.exe".
	ClipboardCommand string `mapstructure:"clipboard_command" yaml:"clipboard_command"`
}

// tokenEnvVars are checked in order when no token is set in the config file.
// VITE_TMDB_TOKEN keeps .env files written for the web client working.
var tokenEnvVars = []string{"MARQUEE_TMDB_TOKEN", "TMDB_TOKEN", "VITE_TMDB_TOKEN"}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p/w500",
			Language:     "en-US",
			IncludeAdult: false,
			Timeout:      15 * time.Second,
		},
		UI: UIConfig{
			ToastDuration: 3 * time.Second,
			CardWidth:     30,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   10,
		},
		Database: DatabaseConfig{
			Path:           filepath.Join(GetDataDir(), "marquee.db"),
			MaxConnections: 4,
			WALMode:        true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			File:       filepath.Join(getStateDir(), appName, appName+".log"),
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   false,
			Color:      true,
		},
	}
}

// Load reads configuration from file, .env and environment variables.
// Priority: environment > config file > defaults.
func Load(cfgFile string) (*Config, *viper.Viper, error) {
	// A missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(GetConfigDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv(append([]string{"tmdb.token"}, tokenEnvVars...)...); err != nil {
		return nil, nil, fmt.Errorf("failed to bind token env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := Reload(v)
	if err != nil {
		return nil, nil, err
	}
	if cfg.path == "" {
		cfg.path = cfgFile
	}

	return cfg, v, nil
}

// Reload decodes the current state of v, e.g. after its watcher saw the
// file change. The result remembers the file it came from.
func Reload(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = v.ConfigFileUsed()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("tmdb.token", "")
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", d.TMDB.Language)
	v.SetDefault("tmdb.include_adult", d.TMDB.IncludeAdult)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)

	v.SetDefault("ui.toast_duration", d.UI.ToastDuration)
	v.SetDefault("ui.card_width", d.UI.CardWidth)

	v.SetDefault("history.enabled", d.History.Enabled)
	v.SetDefault("history.limit", d.History.Limit)

	v.SetDefault("database.path", d.Database.Path)
	v.SetDefault("database.max_connections", d.Database.MaxConnections)
	v.SetDefault("database.wal_mode", d.Database.WALMode)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
	v.SetDefault("logging.max_size", d.Logging.MaxSize)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age", d.Logging.MaxAge)
	v.SetDefault("logging.compress", d.Logging.Compress)
	v.SetDefault("logging.color", d.Logging.Color)

	v.SetDefault("advanced.debug", false)
	v.SetDefault("advanced.clipboard_command", "")
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// HasToken reports whether a catalog credential is configured
func (c *Config) HasToken() bool {
	return strings.TrimSpace(c.TMDB.Token) != ""
}

// Save writes the configuration back to the file it was loaded from
func (c *Config) Save() error {
	path := c.path
	if path == "" {
		path = filepath.Join(GetConfigDir(), "config.yaml")
	}
	return writeYAML(path, c)
}

// SaveDefaultConfig writes the default configuration to path.
// The token is left empty so it is never persisted by accident.
func SaveDefaultConfig(path string) error {
	return writeYAML(path, DefaultConfig())
}

func writeYAML(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// InitializeDirs creates the config, data and state directories
func InitializeDirs() error {
	for _, dir := range []string{
		GetConfigDir(),
		GetDataDir(),
		filepath.Join(getStateDir(), appName),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// GetConfigDir returns $XDG_CONFIG_HOME/marquee
func GetConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(homeDir(), ".config", appName)
}

// GetDataDir returns $XDG_DATA_HOME/marquee
func GetDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, appName)
	}
	return filepath.Join(homeDir(), ".local", "share", appName)
}

func getStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(homeDir(), ".local", "state")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

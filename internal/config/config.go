package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database     DatabaseConfig     `mapstructure:"database"`
	Timing       TimingConfig       `mapstructure:"timing"`
	Auth         AuthConfig         `mapstructure:"auth"`
	GPS          GPSConfig          `mapstructure:"gps"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
	UI           UIConfig           `mapstructure:"ui"`
	Log          LogConfig          `mapstructure:"log"`
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// TimingConfig holds the delays of the shell's deferred callbacks.
type TimingConfig struct {
	SplashDelay   time.Duration `mapstructure:"splash_delay"`
	SyncDelay     time.Duration `mapstructure:"sync_delay"`
	ToastDuration time.Duration `mapstructure:"toast_duration"`
}

// AuthConfig holds the mocked verification settings.
type AuthConfig struct {
	ReservedIdentifier string   `mapstructure:"reserved_identifier"`
	ReservedName       string   `mapstructure:"reserved_name"`
	ReservedRank       string   `mapstructure:"reserved_rank"`
	AdminIdentifiers   []string `mapstructure:"admin_identifiers"`
	MockOTP            string   `mapstructure:"mock_otp"`
}

// GPSConfig holds the sampling interval bounds, in milliseconds.
type GPSConfig struct {
	DefaultIntervalMs int `mapstructure:"default_interval_ms"`
	StepMs            int `mapstructure:"step_ms"`
	MinIntervalMs     int `mapstructure:"min_interval_ms"`
}

// ConnectivityConfig controls the reachability probe. An empty ProbeAddress disables it.
type ConnectivityConfig struct {
	ProbeAddress  string        `mapstructure:"probe_address"`
	ProbeInterval time.Duration `mapstructure:"probe_interval"`
	StartOffline  bool          `mapstructure:"start_offline"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	DarkMode bool `mapstructure:"dark_mode"`
}

// LogConfig holds the log destination; empty discards logs while the TUI runs.
type LogConfig struct {
	Path string `mapstructure:"path"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "ebandobast", "ebandobast.db"))
	v.SetDefault("timing.splash_delay", 1800*time.Millisecond)
	v.SetDefault("timing.sync_delay", 2*time.Second)
	v.SetDefault("timing.toast_duration", 3*time.Second)
	v.SetDefault("auth.reserved_identifier", "123456789")
	v.SetDefault("auth.reserved_name", "રાકેશ જાડેજા")
	v.SetDefault("auth.reserved_rank", "PI")
	v.SetDefault("auth.admin_identifiers", []string{"123456789"})
	v.SetDefault("auth.mock_otp", "123456")
	v.SetDefault("gps.default_interval_ms", 30000)
	v.SetDefault("gps.step_ms", 10000)
	v.SetDefault("gps.min_interval_ms", 5000)
	v.SetDefault("connectivity.probe_address", "")
	v.SetDefault("connectivity.probe_interval", 10*time.Second)
	v.SetDefault("connectivity.start_offline", false)
	v.SetDefault("ui.dark_mode", false)
	v.SetDefault("log.path", "")
}

// Load reads configuration from file and env. Env var overrides use prefix EBANDOBAST_.
// A .env file in the working directory is loaded first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("EBANDOBAST_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "ebandobast"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EBANDOBAST")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// a missing default config file is fine; an explicit one must exist
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the shell cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("config: database.path is empty")
	}
	if c.GPS.DefaultIntervalMs <= 0 {
		return fmt.Errorf("config: gps.default_interval_ms must be positive, got %d", c.GPS.DefaultIntervalMs)
	}
	if c.GPS.MinIntervalMs <= 0 || c.GPS.MinIntervalMs > c.GPS.DefaultIntervalMs {
		return fmt.Errorf("config: gps.min_interval_ms must be in (0, %d], got %d", c.GPS.DefaultIntervalMs, c.GPS.MinIntervalMs)
	}
	if c.Timing.SplashDelay < 0 || c.Timing.SyncDelay < 0 || c.Timing.ToastDuration < 0 {
		return fmt.Errorf("config: timing values must not be negative")
	}
	return nil
}

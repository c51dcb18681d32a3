// Package config loads settings from config.yaml in the config directory,
// with CUBELAYERS_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envPrefix      = "CUBELAYERS"

	KeyTurnDuration  = "turn_duration"
	KeySwapDuration  = "swap_duration"
	KeyStepPause     = "step_pause"
	KeySettlePause   = "settle_pause"
	KeyFrameInterval = "frame_interval"
	KeyActiveLayers  = "active_layers"
	KeyJournal       = "journal"
	KeyLogLevel      = "log_level"
	KeyLogFile       = "log_file"
)

// ErrInvalid is returned when a setting cannot be used.
var ErrInvalid = errors.New("config: invalid setting")

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# cubelayers configuration

# Transition lengths
turn_duration: 300ms
swap_duration: 280ms

# Pauses between scripted demo steps
step_pause: 100ms
settle_pause: 300ms

# Redraw interval while animating
frame_interval: 16ms

# Layers selected at start: any of top, mid, bot, bay
active_layers: [top, mid]

# Session journal (SQLite). Empty disables it; unset uses journal.db here.
# journal:

# panic, fatal, error, warn, info, debug, trace
log_level: warn

# Log destination for the interactive view; empty discards.
# log_file:
`

// Config is the resolved configuration.
type Config struct {
	Dir           string
	TurnDuration  time.Duration
	SwapDuration  time.Duration
	StepPause     time.Duration
	SettlePause   time.Duration
	FrameInterval time.Duration
	ActiveLayers  []string
	Journal       string
	LogLevel      string
	LogFile       string
}

// DefaultDir returns ~/.cubelayers.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubelayers"), nil
}

// Load reads config.yaml from dir, writing the default file on first run.
// A missing file is not an error.
func Load(dir string) (*Config, error) {
	v, err := open(dir)
	if err != nil {
		return nil, err
	}
	return decode(v, dir)
}

// Viper returns the raw settings for dir, for callers that bind flags.
func Viper(dir string) (*viper.Viper, error) {
	return open(dir)
}

// FromViper resolves a Config from v.
func FromViper(v *viper.Viper, dir string) (*Config, error) {
	return decode(v, dir)
}

func open(dir string) (*viper.Viper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	setDefaults(v, dir)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault(KeyTurnDuration, 300*time.Millisecond)
	v.SetDefault(KeySwapDuration, 280*time.Millisecond)
	v.SetDefault(KeyStepPause, 100*time.Millisecond)
	v.SetDefault(KeySettlePause, 300*time.Millisecond)
	v.SetDefault(KeyFrameInterval, 16*time.Millisecond)
	v.SetDefault(KeyActiveLayers, []string{"top", "mid"})
	v.SetDefault(KeyJournal, filepath.Join(dir, "journal.db"))
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
}

func decode(v *viper.Viper, dir string) (*Config, error) {
	c := &Config{
		Dir:           dir,
		TurnDuration:  v.GetDuration(KeyTurnDuration),
		SwapDuration:  v.GetDuration(KeySwapDuration),
		StepPause:     v.GetDuration(KeyStepPause),
		SettlePause:   v.GetDuration(KeySettlePause),
		FrameInterval: v.GetDuration(KeyFrameInterval),
		ActiveLayers:  v.GetStringSlice(KeyActiveLayers),
		Journal:       v.GetString(KeyJournal),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFile:       v.GetString(KeyLogFile),
	}
	if c.Journal != "" && !filepath.IsAbs(c.Journal) {
		c.Journal = filepath.Join(dir, c.Journal)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that durations are usable.
func (c *Config) Validate() error {
	for name, d := range map[string]time.Duration{
		KeyTurnDuration: c.TurnDuration,
		KeySwapDuration: c.SwapDuration,
		KeyStepPause:    c.StepPause,
		KeySettlePause:  c.SettlePause,
	} {
		if d < 0 {
			return fmt.Errorf("%w: %s is negative", ErrInvalid, name)
		}
	}
	if c.FrameInterval <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalid, KeyFrameInterval)
	}
	return nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in dir.
func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Settings struct {
	HitWindow           float64         `mapstructure:"hit_window"`
	EarlyWindow         float64         `mapstructure:"early_window"`
	InterpolationFactor float64         `mapstructure:"interpolation_factor"`
	StartHealth         int32           `mapstructure:"start_health"`
	HealthPolicy        string          `mapstructure:"health_policy"`
	Keys                KeySettings     `mapstructure:"keys"`
	Logging             LoggingSettings `mapstructure:"logging"`
}

// KeySettings name the keys bound to each action. Arrow keys, space, escape and
// single characters are understood.
type KeySettings struct {
	Up    []string `mapstructure:"up"`
	Down  []string `mapstructure:"down"`
	Left  []string `mapstructure:"left"`
	Right []string `mapstructure:"right"`
	Pause []string `mapstructure:"pause"`
	Quit  []string `mapstructure:"quit"`
	Retry []string `mapstructure:"retry"`
}

type LoggingSettings struct {
	Directory  string `mapstructure:"directory"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hit_window", 0.2)
	v.SetDefault("early_window", 0.0)
	v.SetDefault("interpolation_factor", 0.5)
	v.SetDefault("start_health", 10)
	v.SetDefault("health_policy", "none")

	v.SetDefault("keys.up", []string{"up", "w"})
	v.SetDefault("keys.down", []string{"down", "s"})
	v.SetDefault("keys.left", []string{"left", "a"})
	v.SetDefault("keys.right", []string{"right", "d"})
	v.SetDefault("keys.pause", []string{"space"})
	v.SetDefault("keys.quit", []string{"esc", "q"})
	v.SetDefault("keys.retry", []string{"r"})

	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.max_size", 10) // megabytes
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 7) // days
	v.SetDefault("logging.compress", true)
}

// LoadSettings reads the settings file at path. A missing file gives the defaults.
func LoadSettings(path string) (*Settings, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("RUNBEAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); nil != err {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, nil, fmt.Errorf("unable to read settings: %w", err)
			}
		}
	}

	s, err := decode(v)
	if nil != err {
		return nil, nil, err
	}
	return s, v, nil
}

func decode(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); nil != err {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if err := s.Validate(); nil != err {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) Validate() error {
	if s.HitWindow <= 0 {
		return fmt.Errorf("hit_window must be positive, got %v", s.HitWindow)
	}
	if s.EarlyWindow < 0 {
		return fmt.Errorf("early_window must not be negative, got %v", s.EarlyWindow)
	}
	if s.InterpolationFactor <= 0 {
		return fmt.Errorf("interpolation_factor must be positive, got %v", s.InterpolationFactor)
	}
	if s.StartHealth <= 0 {
		return fmt.Errorf("start_health must be positive, got %v", s.StartHealth)
	}
	return nil
}

// Watch calls onChange with the new settings whenever the settings file changes.
// Invalid files are logged and ignored.
func Watch(v *viper.Viper, log *zap.Logger, onChange func(*Settings)) {
	if _, err := os.Stat(v.ConfigFileUsed()); nil != err {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		s, err := decode(v)
		if nil != err {
			log.Warn("ignoring invalid settings", zap.String("file", e.Name), zap.Error(err))
			return
		}
		log.Info("settings reloaded", zap.String("file", e.Name))
		onChange(s)
	})
	v.WatchConfig()
}

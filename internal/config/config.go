// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ColonelBlimp/morsemelody/internal/compose"
	"github.com/ColonelBlimp/morsemelody/internal/theory"
)

const (
	AppName       = "morsemelody"
	ConfigType    = "yaml"
	DefaultConfig = `# Morse Melody Configuration

# Musical settings
tempo: 0           # Beats per minute (20-300); 0 picks the style's own tempo
key: "C"           # Tonic (C, C#, D, Eb, E, F, F#, G, Ab, A, Bb, B)
scale: "major"     # major, minor, pentatonic_major, pentatonic_minor,
                   # blues, dorian, mixolydian
style: "folk"      # folk, classical, jazz, pop, blues
progression: ""    # Chord progression; empty picks the style's own
octave_span: 3     # Octaves the melody may roam across (1-5)

# Accompaniment tracks
harmony: true      # Sustained chords
bass: true         # Bass line
percussion: true   # Drums (styles without a drum pattern stay silent)

# Feel
humanize: false        # Jitter timing and velocity slightly
humanize_amount: 0.02  # Jitter depth (0.0-0.05); the melody stays decodable
velocity: 96           # Base note velocity (1-127)
`
)

// Settings holds all application configuration
type Settings struct {
	// Musical settings
	Tempo       float64 `mapstructure:"tempo"`
	Key         string  `mapstructure:"key"`
	Scale       string  `mapstructure:"scale"`
	Style       string  `mapstructure:"style"`
	Progression string  `mapstructure:"progression"`
	OctaveSpan  int     `mapstructure:"octave_span"`

	// Accompaniment tracks
	Harmony    bool `mapstructure:"harmony"`
	Bass       bool `mapstructure:"bass"`
	Percussion bool `mapstructure:"percussion"`

	// Feel
	Humanize       bool    `mapstructure:"humanize"`
	HumanizeAmount float64 `mapstructure:"humanize_amount"`
	Velocity       int     `mapstructure:"velocity"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/morsemelody/
func Init() error {
	// Set defaults
	viper.SetDefault("tempo", 0)
	viper.SetDefault("key", "C")
	viper.SetDefault("scale", "major")
	viper.SetDefault("style", "folk")
	viper.SetDefault("progression", "")
	viper.SetDefault("octave_span", 3)
	viper.SetDefault("harmony", true)
	viper.SetDefault("bass", true)
	viper.SetDefault("percussion", true)
	viper.SetDefault("humanize", false)
	viper.SetDefault("humanize_amount", 0.02)
	viper.SetDefault("velocity", 96)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/morsemelody/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	if s.Tempo != 0 && (s.Tempo < 20 || s.Tempo > 300) {
		errs = append(errs, fmt.Errorf("tempo must be 0 (style default) or between 20 and 300, got %v", s.Tempo))
	}
	if _, err := theory.KeyRoot(s.Key); err != nil {
		errs = append(errs, fmt.Errorf("key must be one of %s, got %q",
			strings.Join(theory.KeyNames(), ", "), s.Key))
	}
	if _, err := theory.ScaleIntervals(s.Scale); err != nil {
		errs = append(errs, fmt.Errorf("scale must be one of %s, got %q",
			strings.Join(theory.ScaleNames(), ", "), s.Scale))
	}
	if _, err := theory.StyleByName(s.Style); err != nil {
		errs = append(errs, fmt.Errorf("style must be one of %s, got %q",
			strings.Join(theory.StyleNames(), ", "), s.Style))
	}
	if s.Progression != "" {
		if _, err := theory.ProgressionByName(s.Progression); err != nil {
			errs = append(errs, fmt.Errorf("progression must be empty or one of %s, got %q",
				strings.Join(theory.ProgressionNames(), ", "), s.Progression))
		}
	}
	if s.OctaveSpan < 1 || s.OctaveSpan > 5 {
		errs = append(errs, fmt.Errorf("octave_span must be between 1 and 5, got %d", s.OctaveSpan))
	}
	if s.HumanizeAmount < 0 || s.HumanizeAmount > 0.05 {
		errs = append(errs, fmt.Errorf("humanize_amount must be between 0.0 and 0.05, got %v", s.HumanizeAmount))
	}
	if s.Velocity < 1 || s.Velocity > 127 {
		errs = append(errs, fmt.Errorf("velocity must be between 1 and 127, got %d", s.Velocity))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Options converts the settings into composition options. Validate must
// have passed, but the key lookup can still fail on a hand-built struct.
func (s *Settings) Options() (compose.Options, error) {
	root, err := theory.KeyRoot(s.Key)
	if err != nil {
		return compose.Options{}, fmt.Errorf("key %q: %w", s.Key, err)
	}
	return compose.Options{
		Tempo:           s.Tempo,
		KeyRoot:         root,
		ScaleName:       s.Scale,
		StyleName:       s.Style,
		ProgressionName: s.Progression,
		OctaveSpan:      s.OctaveSpan,
		Harmony:         s.Harmony,
		Bass:            s.Bass,
		Percussion:      s.Percussion,
		Humanize:        s.Humanize,
		HumanizeAmount:  s.HumanizeAmount,
		Velocity:        s.Velocity,
	}, nil
}

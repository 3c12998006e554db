package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the resolved basket configuration.
type Settings struct {
	Mining  MiningSettings
	Dataset DatasetSettings
	Logging LoggingSettings
}

// MiningSettings holds the thresholds and search options of a run.
type MiningSettings struct {
	MinSupport    float64
	MinConfidence float64
	Strategy      string
	MaxLength     int
}

// DatasetSettings controls how dataset files are parsed.
type DatasetSettings struct {
	Format    string // "text", "csv" or "" to infer from the extension
	Separator string
	Lowercase bool
	Header    bool // csv only: skip the first record
}

// LoggingSettings controls the logrus output.
type LoggingSettings struct {
	Level  string
	Format string
}

// SetDefaults registers the default value of every setting on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("mining.min_support", 0.5)
	v.SetDefault("mining.min_confidence", 0.5)
	v.SetDefault("mining.strategy", "apriori")
	v.SetDefault("mining.max_length", 0)
	v.SetDefault("dataset.format", "")
	v.SetDefault("dataset.separator", ",")
	v.SetDefault("dataset.lowercase", false)
	v.SetDefault("dataset.header", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// NewViper returns a viper instance with defaults, BASKET_ environment
// variables and, when present, the config file. cfgFile overrides the
// default {Dir()}/config.yaml location. A missing default file is not an
// error; a missing explicit file is.
func NewViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("BASKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
		return v, nil
	}

	dir, err := Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	v.AddConfigPath(dir)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config %s: %w", filepath.Join(dir, "config.yaml"), err)
		}
	}
	return v, nil
}

// Load resolves Settings from defaults, environment and config file.
func Load(cfgFile string) (*Settings, error) {
	v, err := NewViper(cfgFile)
	if err != nil {
		return nil, err
	}
	return FromViper(v), nil
}

// FromViper reads Settings out of an already configured viper instance.
func FromViper(v *viper.Viper) *Settings {
	return &Settings{
		Mining: MiningSettings{
			MinSupport:    v.GetFloat64("mining.min_support"),
			MinConfidence: v.GetFloat64("mining.min_confidence"),
			Strategy:      v.GetString("mining.strategy"),
			MaxLength:     v.GetInt("mining.max_length"),
		},
		Dataset: DatasetSettings{
			Format:    v.GetString("dataset.format"),
			Separator: v.GetString("dataset.separator"),
			Lowercase: v.GetBool("dataset.lowercase"),
			Header:    v.GetBool("dataset.header"),
		},
		Logging: LoggingSettings{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
	}
}

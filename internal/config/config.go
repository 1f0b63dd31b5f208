// Package config loads analyzer defaults from an optional YAML file and
// the environment. Compiled defaults apply when neither is set; command
// flags override both.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Defaults holds the configurable analyzer defaults.
type Defaults struct {
	GridResolution int     `mapstructure:"grid_resolution"`
	Interpolation  string  `mapstructure:"interpolation"`
	Components     int     `mapstructure:"components"`
	Standardize    bool    `mapstructure:"standardize"`
	Perplexity     float64 `mapstructure:"perplexity"`
	Iterations     int     `mapstructure:"iterations"`
	LearningRate   float64 `mapstructure:"learning_rate"`
	RandomSeed     int64   `mapstructure:"random_seed"`
}

// Builtin returns the compiled-in defaults.
func Builtin() *Defaults {
	return &Defaults{
		GridResolution: 50,
		Interpolation:  "linear",
		Components:     2,
		Standardize:    true,
		Perplexity:     30,
		Iterations:     1000,
		LearningRate:   200,
		RandomSeed:     42,
	}
}

// Load reads configuration from cfgFile when given, otherwise from an
// optional datalab.yaml in the working directory. Environment variables
// prefixed DATALAB_ override file values (e.g. DATALAB_GRID_RESOLUTION).
func Load(cfgFile string) (*Defaults, error) {
	v := viper.New()
	v.SetDefault("grid_resolution", 50)
	v.SetDefault("interpolation", "linear")
	v.SetDefault("components", 2)
	v.SetDefault("standardize", true)
	v.SetDefault("perplexity", 30.0)
	v.SetDefault("iterations", 1000)
	v.SetDefault("learning_rate", 200.0)
	v.SetDefault("random_seed", 42)

	v.SetEnvPrefix("DATALAB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("datalab")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// A missing default config file is fine.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}

	var d Defaults
	if err := v.Unmarshal(&d); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &d, nil
}

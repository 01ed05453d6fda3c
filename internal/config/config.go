package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete zhong configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data" yaml:"data"`
	Segment SegmentConfig `mapstructure:"segment" yaml:"segment"`
	Resolve ResolveConfig `mapstructure:"resolve" yaml:"resolve"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Output  OutputConfig  `mapstructure:"output" yaml:"output"`
}

// DataConfig locates the data files loaded at startup. Relative paths are
// resolved against the directory of the config file.
type DataConfig struct {
	// DecompositionFile holds id:type:relation:referent lines
	DecompositionFile string `mapstructure:"decomposition_file" yaml:"decomposition_file"`
	// DictionaryFile holds CC-CEDICT formatted lines
	DictionaryFile string `mapstructure:"dictionary_file" yaml:"dictionary_file"`
	// TraditionalFrequencyFile holds "char value" lines for traditional characters
	TraditionalFrequencyFile string `mapstructure:"traditional_frequency_file" yaml:"traditional_frequency_file"`
	// SimplifiedFrequencyFile holds "char value" lines for simplified characters
	SimplifiedFrequencyFile string `mapstructure:"simplified_frequency_file" yaml:"simplified_frequency_file"`
}

// SegmentConfig controls the word segmenter
type SegmentConfig struct {
	// CharacterSet is the default set for lookups: traditional, simplified or both
	CharacterSet string `mapstructure:"character_set" yaml:"character_set"`
	// MaxWordLength bounds dictionary word length in characters (default: 9)
	MaxWordLength int `mapstructure:"max_word_length" yaml:"max_word_length"`
	// ChunkLength is the number of words in each look-ahead chunk (default: 3)
	ChunkLength int `mapstructure:"chunk_length" yaml:"chunk_length"`
	// Parallelism caps concurrent run segmentation (0 or 1 = sequential)
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
	// NormalizeInput applies NFC normalization before decomposition
	NormalizeInput bool `mapstructure:"normalize_input" yaml:"normalize_input"`
}

// ResolveConfig controls decomposition tree resolution
type ResolveConfig struct {
	// MaxDepth aborts resolution of trees deeper than this (default: 64)
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `mapstructure:"level" yaml:"level"`
	// File receives JSON log lines; empty means stderr
	File string `mapstructure:"file" yaml:"file"`
}

// OutputConfig controls command output
type OutputConfig struct {
	// Format is one of text, json, yaml (default: text)
	Format string `mapstructure:"format" yaml:"format"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Segment: SegmentConfig{
			CharacterSet:  "traditional",
			MaxWordLength: 9,
			ChunkLength:   3,
			Parallelism:   1,
		},
		Resolve: ResolveConfig{
			MaxDepth: 64,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Format: "text",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Data defaults
	viper.SetDefault("data.decomposition_file", defaults.Data.DecompositionFile)
	viper.SetDefault("data.dictionary_file", defaults.Data.DictionaryFile)
	viper.SetDefault("data.traditional_frequency_file", defaults.Data.TraditionalFrequencyFile)
	viper.SetDefault("data.simplified_frequency_file", defaults.Data.SimplifiedFrequencyFile)

	// Segment defaults
	viper.SetDefault("segment.character_set", defaults.Segment.CharacterSet)
	viper.SetDefault("segment.max_word_length", defaults.Segment.MaxWordLength)
	viper.SetDefault("segment.chunk_length", defaults.Segment.ChunkLength)
	viper.SetDefault("segment.parallelism", defaults.Segment.Parallelism)
	viper.SetDefault("segment.normalize_input", defaults.Segment.NormalizeInput)

	viper.SetDefault("resolve.max_depth", defaults.Resolve.MaxDepth)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)

	viper.SetDefault("output.format", defaults.Output.Format)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ResolvePath expands a configured data path.
// An empty path stays empty. A leading ~ expands to the user's home
// directory, and relative paths are resolved against baseDir.
func ResolvePath(path, baseDir string) string {
	if path == "" {
		return ""
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	if !filepath.IsAbs(path) && baseDir != "" {
		path = filepath.Join(baseDir, path)
	}

	return path
}

// ResolvedData returns a copy of c.Data with every path passed through
// ResolvePath.
func (c *Config) ResolvedData(baseDir string) DataConfig {
	return DataConfig{
		DecompositionFile:        ResolvePath(c.Data.DecompositionFile, baseDir),
		DictionaryFile:           ResolvePath(c.Data.DictionaryFile, baseDir),
		TraditionalFrequencyFile: ResolvePath(c.Data.TraditionalFrequencyFile, baseDir),
		SimplifiedFrequencyFile:  ResolvePath(c.Data.SimplifiedFrequencyFile, baseDir),
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "zhong")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".zhong"
	}
	return filepath.Join(home, ".config", "zhong")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

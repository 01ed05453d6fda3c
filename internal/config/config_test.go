package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Segment.CharacterSet != "traditional" {
		t.Errorf("Segment.CharacterSet = %q, want %q", cfg.Segment.CharacterSet, "traditional")
	}
	if cfg.Segment.MaxWordLength != 9 {
		t.Errorf("Segment.MaxWordLength = %d, want 9", cfg.Segment.MaxWordLength)
	}
	if cfg.Segment.ChunkLength != 3 {
		t.Errorf("Segment.ChunkLength = %d, want 3", cfg.Segment.ChunkLength)
	}
	if cfg.Segment.Parallelism != 1 {
		t.Errorf("Segment.Parallelism = %d, want 1", cfg.Segment.Parallelism)
	}
	if cfg.Segment.NormalizeInput {
		t.Error("Segment.NormalizeInput should be false by default")
	}
	if cfg.Resolve.MaxDepth != 64 {
		t.Errorf("Resolve.MaxDepth = %d, want 64", cfg.Resolve.MaxDepth)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.File != "" {
		t.Errorf("Logging.File = %q, want empty", cfg.Logging.File)
	}
	if cfg.Output.Format != "text" {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, "text")
	}
	if cfg.Data != (DataConfig{}) {
		t.Errorf("Data = %+v, want zero value", cfg.Data)
	}
}

func TestResolvePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		name    string
		path    string
		baseDir string
		want    string
	}{
		{"empty stays empty", "", "/etc/zhong", ""},
		{"absolute unchanged", "/data/cedict.txt", "/etc/zhong", "/data/cedict.txt"},
		{"relative joined", "data/cedict.txt", "/etc/zhong", "/etc/zhong/data/cedict.txt"},
		{"relative without base", "cedict.txt", "", "cedict.txt"},
		{"tilde prefix", "~/zhong/cedict.txt", "/etc/zhong", filepath.Join(home, "zhong", "cedict.txt")},
		{"bare tilde", "~", "/etc/zhong", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolvePath(tt.path, tt.baseDir); got != tt.want {
				t.Errorf("ResolvePath(%q, %q) = %q, want %q", tt.path, tt.baseDir, got, tt.want)
			}
		})
	}
}

func TestConfig_ResolvedData(t *testing.T) {
	cfg := Default()
	cfg.Data.DecompositionFile = "decomp.txt"
	cfg.Data.DictionaryFile = "/abs/cedict.txt"

	got := cfg.ResolvedData("/etc/zhong")
	if got.DecompositionFile != "/etc/zhong/decomp.txt" {
		t.Errorf("DecompositionFile = %q, want %q", got.DecompositionFile, "/etc/zhong/decomp.txt")
	}
	if got.DictionaryFile != "/abs/cedict.txt" {
		t.Errorf("DictionaryFile = %q, want %q", got.DictionaryFile, "/abs/cedict.txt")
	}
	if got.TraditionalFrequencyFile != "" {
		t.Errorf("TraditionalFrequencyFile = %q, want empty", got.TraditionalFrequencyFile)
	}
	if cfg.Data.DecompositionFile != "decomp.txt" {
		t.Error("ResolvedData modified the receiver")
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/zhong"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "zhong")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/zhong/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestGet(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}
	if cfg.Segment.MaxWordLength != 9 {
		t.Errorf("Get().Segment.MaxWordLength = %d, want 9", cfg.Segment.MaxWordLength)
	}
}

func TestLoad_Overrides(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("segment.character_set", "simplified")
	viper.Set("resolve.max_depth", 8)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Segment.CharacterSet != "simplified" {
		t.Errorf("Segment.CharacterSet = %q, want %q", cfg.Segment.CharacterSet, "simplified")
	}
	if cfg.Resolve.MaxDepth != 8 {
		t.Errorf("Resolve.MaxDepth = %d, want 8", cfg.Resolve.MaxDepth)
	}
}

func TestLoad_InvalidFallsBackInGet(t *testing.T) {
	viper.Reset()
	defer viper.Reset()
	SetDefaults()

	viper.Set("segment.chunk_length", 0)

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected validation error")
	} else if _, ok := err.(ValidationErrors); !ok {
		t.Errorf("Load() error type = %T, want ValidationErrors", err)
	}

	if cfg := Get(); cfg.Segment.ChunkLength != 3 {
		t.Errorf("Get() should fall back to defaults, ChunkLength = %d", cfg.Segment.ChunkLength)
	}
}

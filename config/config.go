// Package config loads the number-format presets consumed by the
// explorer and demo driver. The arithmetic core itself stays
// configuration-free: every type parameter a blockbinary, integer,
// fixpnt, or cfloat family needs is supplied at construction, never
// read from a file at runtime.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config is the on-disk shape of a numeric-profile file.
type Config struct {
	// Default word settings used when the explorer or driver is not
	// told which format to build.
	Format struct {
		Kind      string `toml:"kind"`       // "blockbinary", "integer", "fixpnt", "cfloat"
		Bits      int    `toml:"bits"`       // total bit width N
		Fraction  int    `toml:"fraction"`   // R for fixpnt
		ExpBits   int    `toml:"exp_bits"`   // ES for cfloat
		BlockBits int    `toml:"block_bits"` // 8, 16, 32, or 64
	} `toml:"format"`

	// Policy settings, mapped to the Policy/Sub/Sup/Sat type
	// parameters at construction time.
	Policy struct {
		Saturating    bool `toml:"saturating"`
		Subnormals    bool `toml:"subnormals"`
		Supernormals  bool `toml:"supernormals"`
		StrictOnTraps bool `toml:"strict_on_traps"`
	} `toml:"policy"`

	// Explorer (TUI) display settings.
	Explorer struct {
		ColorOutput  bool   `toml:"color_output"`
		GroupBits    int    `toml:"group_bits"`
		NumberFormat string `toml:"number_format"` // hex, dec, both
	} `toml:"explorer"`

	// apiserver settings.
	Server struct {
		Port        int    `toml:"port"`
		OutputFile  string `toml:"output_file"`
		BroadcastWS bool   `toml:"broadcast_ws"`
	} `toml:"server"`
}

// DefaultConfig returns a configuration with default values: a 32-bit
// binary32-compatible cfloat over uint8 blocks, subnormals on,
// supernormals and saturation off.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Format.Kind = "cfloat"
	cfg.Format.Bits = 32
	cfg.Format.Fraction = 0
	cfg.Format.ExpBits = 8
	cfg.Format.BlockBits = 8

	cfg.Policy.Saturating = false
	cfg.Policy.Subnormals = true
	cfg.Policy.Supernormals = false
	cfg.Policy.StrictOnTraps = false

	cfg.Explorer.ColorOutput = true
	cfg.Explorer.GroupBits = 4
	cfg.Explorer.NumberFormat = "hex"

	cfg.Server.Port = 8080
	cfg.Server.OutputFile = "numeric-events.log"
	cfg.Server.BroadcastWS = true

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "numeric")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "numeric")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file. A missing file
// is not an error: the default profile is returned instead.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}

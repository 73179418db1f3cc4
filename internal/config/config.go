package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"sb6-assets/internal/ktx"
)

// Config holds the paths and conversion settings shared by the tools.
type Config struct {
	// Paths
	AssetDir  string `json:"asset_dir"`
	OutputDir string `json:"output_dir"`

	// Processing
	Workers         int    `json:"workers"`
	RowAlignment    int    `json:"row_alignment"`
	ImageSizePrefix bool   `json:"image_size_prefix"`
	DumpFormat      string `json:"dump_format"`
	GenerateMips    *bool  `json:"generate_mips"`
	Dump            bool   `json:"dump"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides, fills defaults and validates the result.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) error {
	if flags.AssetDir != "" {
		c.AssetDir = flags.AssetDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.RowAlignment > 0 {
		c.RowAlignment = flags.RowAlignment
	}
	if flags.DumpFormat != "" {
		c.DumpFormat = flags.DumpFormat
	}
	if flags.Dump {
		c.Dump = true
	}
	if flags.ImageSizePrefix {
		c.ImageSizePrefix = true
	}
	if flags.NoMips {
		off := false
		c.GenerateMips = &off
	}

	if c.AssetDir == "" {
		c.AssetDir = "."
	}
	// Output lands next to the assets unless given absolutely.
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.AssetDir, "out")
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		c.OutputDir = filepath.Join(c.AssetDir, c.OutputDir)
	}

	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.RowAlignment <= 0 {
		c.RowAlignment = 4
	}
	switch c.RowAlignment {
	case 1, 2, 4, 8:
	default:
		return fmt.Errorf("config: row_alignment %d is not 1, 2, 4 or 8", c.RowAlignment)
	}

	c.DumpFormat = strings.ToLower(c.DumpFormat)
	if c.DumpFormat == "" {
		c.DumpFormat = "webp"
	}
	if c.DumpFormat != "webp" && c.DumpFormat != "png" {
		return fmt.Errorf("config: dump_format %q is not webp or png", c.DumpFormat)
	}

	if c.GenerateMips == nil {
		on := true
		c.GenerateMips = &on
	}
	return nil
}

// Mips reports whether single-level textures get a generated chain.
func (c *Config) Mips() bool {
	return c.GenerateMips == nil || *c.GenerateMips
}

// KTX returns the texture reader options the settings describe.
func (c *Config) KTX() ktx.Options {
	return ktx.Options{
		RowAlignment:      c.RowAlignment,
		ImageSizePrefix:   c.ImageSizePrefix,
		SkipMipGeneration: !c.Mips(),
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	AssetDir        string
	OutputDir       string
	Workers         int
	RowAlignment    int
	ImageSizePrefix bool
	DumpFormat      string
	Dump            bool
	NoMips          bool
}

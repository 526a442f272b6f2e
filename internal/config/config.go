// Package config resolves callstrip settings from defaults, the config file
// and CALLSTRIP_* environment variables.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"callstrip/internal/icons"
	"callstrip/internal/logger"
	"callstrip/internal/strip"

	"github.com/caarlos0/env/v11"
	"github.com/lucasb-eyer/go-colorful"
)

// envConfig is read from CALLSTRIP_* variables. Unset pointer fields leave
// the file or default value in place.
type envConfig struct {
	ConfigDir      string  `env:"CALLSTRIP_CONFIG_DIR"`
	DB             string  `env:"CALLSTRIP_DB"`
	CarrierVariant *bool   `env:"CALLSTRIP_CARRIER_VARIANT"`
	Accounting     string  `env:"CALLSTRIP_ACCOUNTING"`
	LogLevel       string  `env:"CALLSTRIP_LOG_LEVEL"`
	Format         string  `env:"CALLSTRIP_FORMAT"`
	IconMargin     *int    `env:"CALLSTRIP_ICON_MARGIN"`
	CellMargin     *int    `env:"CALLSTRIP_CELL_MARGIN"`
	Glyphs         *string `env:"CALLSTRIP_TUI_GLYPHS"`
}

// File is the optional $CALLSTRIP_CONFIG_DIR/config.json.
type File struct {
	DB             string        `json:"db,omitempty"`
	CarrierVariant *bool         `json:"carrierVariant,omitempty"`
	Accounting     string        `json:"accounting,omitempty"`
	IconMargin     *int          `json:"iconMargin,omitempty"`
	CellMargin     *int          `json:"cellMargin,omitempty"`
	Glyphs         string        `json:"glyphs,omitempty"`
	Palette        icons.Palette `json:"palette,omitempty"`
}

// Config is resolved once per process: defaults, then the file, then env.
// Command-line flags are applied on top by the cli package.
type Config struct {
	Dir            string
	DB             string
	CarrierVariant bool
	Accounting     strip.Accounting
	LogLevel       logger.Level
	Format         string
	IconMargin     int
	CellMargin     int
	Glyphs         icons.GlyphSet
	Palette        icons.Palette
}

// Default is the configuration before the file and env are applied. Dir and
// DB are filled in by Load.
func Default() Config {
	return Config{
		Accounting: strip.Compat,
		LogLevel:   logger.LevelWarn,
		IconMargin: icons.DefaultStyle().Margin,
		CellMargin: 1,
		Glyphs:     icons.GlyphsUnicode,
		Palette:    icons.DefaultPalette(),
	}
}

// Dir returns the config directory. CALLSTRIP_CONFIG_DIR keeps tests away
// from ~/.callstrip.
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("CALLSTRIP_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".callstrip"), nil
}

func FilePath(dir string) string { return filepath.Join(dir, "config.json") }

// LoadFile reads the config file. A missing file is not an error.
func LoadFile(dir string) (*File, error) {
	b, err := os.ReadFile(FilePath(dir))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", FilePath(dir), err)
	}
	return &f, nil
}

// SaveFile writes f atomically.
func SaveFile(dir string, f *File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := FilePath(dir) + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, FilePath(dir))
}

// Keys lists the settings File.Set accepts, palette colors aside.
func Keys() []string {
	return []string{"db", "carrierVariant", "accounting", "iconMargin", "cellMargin", "glyphs"}
}

// Set assigns one setting from its string form. An empty value unsets it.
// Palette colors are set as palette.<incoming|outgoing|missed|secondary>.<light|dark>.
func (f *File) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "db":
		f.DB = value
	case "carrierVariant":
		if value == "" {
			f.CarrierVariant = nil
			return nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("config: carrierVariant: %w", err)
		}
		f.CarrierVariant = &b
	case "accounting":
		if value != "" {
			if _, err := strip.ParseAccounting(value); err != nil {
				return err
			}
		}
		f.Accounting = value
	case "iconMargin", "cellMargin":
		var n *int
		if value != "" {
			v, err := strconv.Atoi(value)
			if err != nil || v < 0 {
				return fmt.Errorf("config: %s must be a non-negative integer, got %q", key, value)
			}
			n = &v
		}
		if key == "iconMargin" {
			f.IconMargin = n
		} else {
			f.CellMargin = n
		}
	case "glyphs":
		if value != "" {
			if _, ok := icons.ParseGlyphSet(value); !ok {
				return fmt.Errorf("config: unknown glyph set %q", value)
			}
		}
		f.Glyphs = value
	default:
		return f.setPaletteColor(key, value)
	}
	return nil
}

func (f *File) setPaletteColor(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) != 3 || parts[0] != "palette" {
		return fmt.Errorf("config: unknown key %q (want one of %s or palette.<role>.<light|dark>)", key, strings.Join(Keys(), ", "))
	}
	var c *icons.Color
	switch parts[1] {
	case "incoming":
		c = &f.Palette.Incoming
	case "outgoing":
		c = &f.Palette.Outgoing
	case "missed":
		c = &f.Palette.Missed
	case "secondary":
		c = &f.Palette.Secondary
	default:
		return fmt.Errorf("config: unknown palette role %q", parts[1])
	}
	next := *c
	switch parts[2] {
	case "light":
		next.Light = value
	case "dark":
		next.Dark = value
	default:
		return fmt.Errorf("config: palette variant must be light or dark, got %q", parts[2])
	}
	if value != "" {
		if _, err := colorful.Hex(value); err != nil {
			return fmt.Errorf("config: %s: invalid color %q: %w", key, value, err)
		}
	}
	*c = next
	return nil
}

// Load resolves the configuration and validates the palette.
func Load() (Config, error) {
	var e envConfig
	if err := env.Parse(&e); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Default()
	dir := strings.TrimSpace(e.ConfigDir)
	if dir == "" {
		d, err := Dir()
		if err != nil {
			return Config{}, err
		}
		dir = d
	}
	cfg.Dir = dir
	cfg.DB = filepath.Join(dir, "calls.sqlite")

	f, err := LoadFile(dir)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyFile(f); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(e); err != nil {
		return Config{}, err
	}
	if err := cfg.Palette.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyFile(f *File) error {
	if f.DB != "" {
		c.DB = f.DB
	}
	if f.CarrierVariant != nil {
		c.CarrierVariant = *f.CarrierVariant
	}
	if f.Accounting != "" {
		a, err := strip.ParseAccounting(f.Accounting)
		if err != nil {
			return err
		}
		c.Accounting = a
	}
	if f.IconMargin != nil {
		c.IconMargin = *f.IconMargin
	}
	if f.CellMargin != nil {
		c.CellMargin = *f.CellMargin
	}
	if f.Glyphs != "" {
		gs, ok := icons.ParseGlyphSet(f.Glyphs)
		if !ok {
			return fmt.Errorf("config: unknown glyph set %q", f.Glyphs)
		}
		c.Glyphs = gs
	}
	c.Palette = c.Palette.Merge(f.Palette)
	return nil
}

func (c *Config) applyEnv(e envConfig) error {
	if e.DB != "" {
		c.DB = e.DB
	}
	if e.CarrierVariant != nil {
		c.CarrierVariant = *e.CarrierVariant
	}
	if e.Accounting != "" {
		a, err := strip.ParseAccounting(e.Accounting)
		if err != nil {
			return err
		}
		c.Accounting = a
	}
	if e.LogLevel != "" {
		l, err := logger.ParseLevel(e.LogLevel)
		if err != nil {
			return err
		}
		c.LogLevel = l
	}
	if e.Format != "" {
		c.Format = e.Format
	}
	if e.IconMargin != nil {
		c.IconMargin = *e.IconMargin
	}
	if e.CellMargin != nil {
		c.CellMargin = *e.CellMargin
	}
	if e.Glyphs != nil {
		// Unknown values are ignored, like the TUI glyph preference.
		if gs, ok := icons.ParseGlyphSet(*e.Glyphs); ok {
			c.Glyphs = gs
		}
	}
	return nil
}

// ImageStyle is the styling context for the pixel bundle.
func (c Config) ImageStyle(darkBackground bool) icons.Style {
	return icons.Style{
		Palette:        c.Palette,
		Margin:         c.IconMargin,
		CarrierVariant: c.CarrierVariant,
		DarkBackground: darkBackground,
		Glyphs:         c.Glyphs,
	}
}

// CellStyle is the styling context for the terminal bundle.
func (c Config) CellStyle() icons.Style {
	return icons.Style{
		Palette:        c.Palette,
		Margin:         c.CellMargin,
		CarrierVariant: c.CarrierVariant,
		Glyphs:         c.Glyphs,
	}
}

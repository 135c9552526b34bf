package textmesh

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/textmesh/atlas"
	"github.com/gogpu/textmesh/mesh"
)

// Built-in font faces accepted by FontConfig.Face. Any other value is read
// as a path to a TrueType or OpenType file.
const (
	FaceMono    = "mono"
	FaceRegular = "regular"
)

// FontConfig describes one font loaded by New.
type FontConfig struct {
	// Name identifies the font in Renderer.Font.
	Name string `toml:"name"`

	// Face is FaceMono, FaceRegular, or a font file path.
	Face string `toml:"face"`

	// Size is the pixel height of the em square.
	Size float64 `toml:"size"`

	// GlyphsMax caps the number of distinct glyphs. Zero uses the glyph
	// package default.
	GlyphsMax int `toml:"glyphs_max"`

	// WarmASCII rasterizes ' ' through '~' at load time.
	WarmASCII bool `toml:"warm_ascii"`

	// Warm lists extra runes rasterized at load time.
	Warm string `toml:"warm"`
}

// Config holds renderer configuration.
type Config struct {
	Atlas atlas.Config `toml:"atlas"`

	// Vertices is the frame vertex buffer capacity.
	// Default: 65536
	Vertices int `toml:"vertices"`

	// Normalize converts text to NFC before glyph lookup.
	Normalize bool `toml:"normalize"`

	Fonts []FontConfig `toml:"fonts"`
}

// DefaultConfig returns default configuration: a 512x512 atlas, a 64Ki
// vertex buffer, and two ASCII-warmed fonts, "console" (Go Mono, 10px)
// and "ui" (Go Regular, 8px).
func DefaultConfig() Config {
	return Config{
		Atlas:    atlas.DefaultConfig(),
		Vertices: mesh.DefaultBufferCapacity,
		Fonts:    defaultFonts(),
	}
}

func defaultFonts() []FontConfig {
	return []FontConfig{
		{Name: "console", Face: FaceMono, Size: 10, WarmASCII: true},
		{Name: "ui", Face: FaceRegular, Size: 8, WarmASCII: true},
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "textmesh: invalid config." + e.Field + ": " + e.Reason
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Atlas.Validate(); err != nil {
		return err
	}
	if c.Vertices < mesh.QuadVertices {
		return &ConfigError{Field: "Vertices", Reason: fmt.Sprintf("must be at least %d", mesh.QuadVertices)}
	}

	seen := make(map[string]bool, len(c.Fonts))
	for i, f := range c.Fonts {
		field := fmt.Sprintf("Fonts[%d]", i)
		switch {
		case f.Name == "":
			return &ConfigError{Field: field + ".Name", Reason: "must not be empty"}
		case seen[f.Name]:
			return &ConfigError{Field: field + ".Name", Reason: fmt.Sprintf("duplicate font %q", f.Name)}
		case f.Face == "":
			return &ConfigError{Field: field + ".Face", Reason: "must not be empty"}
		case f.Size <= 0:
			return &ConfigError{Field: field + ".Size", Reason: "must be positive"}
		case f.GlyphsMax < 0:
			return &ConfigError{Field: field + ".GlyphsMax", Reason: "must be non-negative"}
		}
		seen[f.Name] = true
	}
	return nil
}

// ParseConfig decodes TOML on top of DefaultConfig and validates the
// result. A [[fonts]] list in data replaces the default fonts entirely.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Fonts = nil

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("textmesh: decode config: %w", err)
	}
	if cfg.Fonts == nil {
		cfg.Fonts = defaultFonts()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML configuration file. See ParseConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("textmesh: read config: %w", err)
	}
	return ParseConfig(data)
}

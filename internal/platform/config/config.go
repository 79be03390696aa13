package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"travellog/internal/platform/geo"
)

const DefaultPath = "~/.config/travellog/config.yaml"

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	PositioningStatic = "static"
	PositioningIPAPI  = "ipapi"
	PositioningNone   = "none"
)

// HomeCoordinate is the fallback point attached to trips committed without one.
var HomeCoordinate = geo.Coordinate{Latitude: 60.1699, Longitude: 24.9384}

// PlaceholderThumbnail is the built-in image used when no photo was picked.
const PlaceholderThumbnail = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAoAAAAKCAYAAACNMs+9AAAAIElEQVQYV2NkYGBg+P//PwMDA4MKMJqGQYQwGg0GQxgAAGlUATr0JzpcAAAAAElFTkSuQmCC"

type Config struct {
	SeedCount            int            `yaml:"seed_count"`
	Store                string         `yaml:"store"`
	FallbackCoordinate   geo.Coordinate `yaml:"fallback_coordinate"`
	PlaceholderThumbnail string         `yaml:"placeholder_thumbnail"`
	PrefillLocation      bool           `yaml:"prefill_location"`
	PhotosDir            string         `yaml:"photos_dir"`
	Positioning          Positioning    `yaml:"positioning"`
	Log                  Log            `yaml:"log"`
}

type Positioning struct {
	Provider string `yaml:"provider"`
	// Device is the point reported by the static provider. Nil means the
	// static provider has nothing to report and denies.
	Device   *geo.Coordinate `yaml:"device"`
	Endpoint string          `yaml:"endpoint"`
	Timeout  time.Duration   `yaml:"timeout"`
}

type Log struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

func Default() Config {
	return Config{
		SeedCount:            3,
		Store:                StoreMemory,
		FallbackCoordinate:   HomeCoordinate,
		PlaceholderThumbnail: PlaceholderThumbnail,
		PrefillLocation:      true,
		PhotosDir:            "~/Pictures",
		Positioning: Positioning{
			Provider: PositioningStatic,
			Endpoint: "http://ip-api.com/json",
			Timeout:  5 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// New loads path over the defaults. An empty path means DefaultPath, which
// may be absent; an explicit path must exist.
func New(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("expand config path: %w", err)
	}
	payload, err := os.ReadFile(expanded)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(payload, &cfg); err != nil {
			return Config{}, fmt.Errorf("decode config %s: %w", expanded, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if cfg.PhotosDir, err = homedir.Expand(cfg.PhotosDir); err != nil {
		return Config{}, fmt.Errorf("expand photos dir: %w", err)
	}
	if cfg.Log.File, err = homedir.Expand(cfg.Log.File); err != nil {
		return Config{}, fmt.Errorf("expand log file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.SeedCount < 0 {
		return fmt.Errorf("seed_count must be non-negative")
	}
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("unsupported store %q", c.Store)
	}
	switch c.Positioning.Provider {
	case PositioningStatic, PositioningIPAPI, PositioningNone:
	default:
		return fmt.Errorf("unsupported positioning provider %q", c.Positioning.Provider)
	}
	if c.Positioning.Provider == PositioningIPAPI && strings.TrimSpace(c.Positioning.Endpoint) == "" {
		return fmt.Errorf("positioning endpoint is required for %s", PositioningIPAPI)
	}
	if err := c.FallbackCoordinate.Validate(); err != nil {
		return fmt.Errorf("fallback_coordinate: %w", err)
	}
	if c.Positioning.Device != nil {
		if err := c.Positioning.Device.Validate(); err != nil {
			return fmt.Errorf("positioning.device: %w", err)
		}
	}
	if strings.TrimSpace(c.PlaceholderThumbnail) == "" {
		return fmt.Errorf("placeholder_thumbnail must not be empty")
	}
	return nil
}

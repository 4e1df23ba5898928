package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultPath is used when GWARS_CONFIG is unset.
const DefaultPath = "config/gwars.toml"

// EnvPath names the environment variable overriding the config path.
const EnvPath = "GWARS_CONFIG"

type Config struct {
	Display DisplayConfig `toml:"display"`
	Game    GameConfig    `toml:"game"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

type DisplayConfig struct {
	Width     int `toml:"width"`      // framebuffer pixels
	Height    int `toml:"height"`     // framebuffer pixels, two per terminal row
	FrameRate int `toml:"frame_rate"` // frames per second
	// KeyHold is how long a key counts as held after its last repeat,
	// since terminals never report releases.
	KeyHold time.Duration `toml:"key_hold"`
	Mouse   bool          `toml:"mouse"`
}

type GameConfig struct {
	DataFile  string `toml:"data_file"`
	AssetDir  string `toml:"asset_dir"`
	ScriptDir string `toml:"script_dir"`
	Seed      int64  `toml:"seed"` // 0 = time based
	ScoreLang string `toml:"score_lang"`
}

type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"` // 0.0-1.0
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // the terminal belongs to the game, logs go here
}

// Path returns the config file path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the TOML file at path over the defaults. A missing file is only
// tolerated at DefaultPath, so a mistyped GWARS_CONFIG still fails loudly.
func Load(path string) (*Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultPath {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Display.Width < 8 || c.Display.Height < 8:
		return fmt.Errorf("display %dx%d too small", c.Display.Width, c.Display.Height)
	case c.Display.FrameRate < 1 || c.Display.FrameRate > 240:
		return fmt.Errorf("frame_rate %d out of range 1-240", c.Display.FrameRate)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio volume %v out of range 0-1", c.Audio.Volume)
	case c.Audio.Enabled && c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio sample_rate must be positive")
	}
	return nil
}

// FrameInterval is the duration of one frame at the configured rate.
func (d DisplayConfig) FrameInterval() time.Duration {
	return time.Second / time.Duration(d.FrameRate)
}

func defaults() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:     160,
			Height:    96,
			FrameRate: 30,
			KeyHold:   150 * time.Millisecond,
			Mouse:     true,
		},
		Game: GameConfig{
			DataFile:  "data/yaml/game.yaml",
			AssetDir:  "assets",
			ScriptDir: "scripts",
			ScoreLang: "en",
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0.5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "gwars.log",
		},
	}
}

package core

import (
	"os"

	"github.com/hubastard/grove3d/engine/colors"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config for the engine run.
type Config struct {
	Title      string       `yaml:"title"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	VSync      bool         `yaml:"vsync"`
	ClearColor colors.Color `yaml:"clear_color"`
	// Samples is the MSAA sample count, 0 to disable.
	Samples int  `yaml:"samples"`
	Debug   bool `yaml:"debug"`
	// TickRate is the fixed update frequency in Hz.
	TickRate int `yaml:"tick_rate"`
}

func DefaultConfig() Config {
	return Config{
		Title:      "grove3d",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: colors.DarkGray,
		Samples:    4,
		TickRate:   60,
	}
}

// LoadConfig reads a YAML file over DefaultConfig; keys absent from the
// file keep their default.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrapf(err, "config %q", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("invalid window size %dx%d", c.Width, c.Height)
	case c.TickRate <= 0:
		return errors.Errorf("invalid tick rate %d", c.TickRate)
	case c.Samples < 0:
		return errors.Errorf("invalid sample count %d", c.Samples)
	}
	return nil
}

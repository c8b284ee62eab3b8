// Package config loads the optional deckpress ini file. It covers the knobs
// the command line does not: card geometry and HTTP politeness. A missing
// path means built-in defaults.
package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

type Config struct {
	// Canonical card size every image is normalized to, in pixels.
	CardWidth  int
	CardHeight int
	// Gutter around each card on a montage page, in pixels.
	Gutter int

	UserAgent    string  // empty selects the client's built-in agent
	RequestsPerS float64 // zero selects the client's built-in rate
}

func Default() Config {
	return Config{
		CardWidth:  312,
		CardHeight: 445,
		Gutter:     8,
	}
}

// Load reads the config file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}

	img := cfg.Section("image")
	c.CardWidth = img.Key("width").MustInt(c.CardWidth)
	c.CardHeight = img.Key("height").MustInt(c.CardHeight)

	pg := cfg.Section("page")
	c.Gutter = pg.Key("gutter").MustInt(c.Gutter)

	httpSec := cfg.Section("http")
	c.UserAgent = httpSec.Key("user_agent").String()
	c.RequestsPerS = httpSec.Key("rate_limit").MustFloat64(c.RequestsPerS)

	if c.CardWidth < 1 || c.CardHeight < 1 {
		return c, fmt.Errorf("config %s: card size must be positive", path)
	}
	if c.Gutter < 0 {
		return c, fmt.Errorf("config %s: gutter must not be negative", path)
	}
	return c, nil
}

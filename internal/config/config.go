package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/san-kum/bonsai/internal/growth"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLife       = 32
	DefaultMultiplier = 5
	DefaultLeaves     = "&"
	DefaultBase       = BaseBig
	DefaultTimeStep   = 0.03
	DefaultWait       = 4.0
	DefaultTheme      = "classic"
	DefaultWidth      = 80
	DefaultHeight     = 24
)

// Base art drawn under the tree.
const (
	BaseNone  = "none"
	BaseSmall = "small"
	BaseBig   = "big"
)

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrUnknownBase   = errors.New("config: unknown base")
	ErrInvalid       = errors.New("config: invalid value")
)

type Config struct {
	Life        int      `yaml:"life" json:"life"`
	Multiplier  int      `yaml:"multiplier" json:"multiplier"`
	Leaves      []string `yaml:"leaves" json:"leaves"`
	Base        string   `yaml:"base" json:"base"`
	Message     string   `yaml:"message" json:"message,omitempty"`
	Seed        uint64   `yaml:"seed" json:"seed"`
	Live        bool     `yaml:"live" json:"live"`
	TimeStep    float64  `yaml:"time_step" json:"time_step"`
	Infinite    bool     `yaml:"infinite" json:"infinite"`
	Wait        float64  `yaml:"wait" json:"wait"`
	Screensaver bool     `yaml:"screensaver" json:"screensaver"`
	Print       bool     `yaml:"print" json:"print"`
	Verbose     bool     `yaml:"verbose" json:"verbose"`
	Theme       string   `yaml:"theme" json:"theme"`
	Width       int      `yaml:"width" json:"width,omitempty"`
	Height      int      `yaml:"height" json:"height,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Life:       DefaultLife,
		Multiplier: DefaultMultiplier,
		Leaves:     []string{DefaultLeaves},
		Base:       DefaultBase,
		TimeStep:   DefaultTimeStep,
		Wait:       DefaultWait,
		Theme:      DefaultTheme,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseLeaves splits a comma separated leaf list, dropping empty entries.
func ParseLeaves(s string) []string {
	var leaves []string
	for _, l := range strings.Split(s, ",") {
		if l = strings.TrimSpace(l); l != "" {
			leaves = append(leaves, l)
		}
	}
	return leaves
}

// Validate rejects values the growth engine or the driver cannot run with.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	switch c.Base {
	case BaseNone, BaseSmall, BaseBig:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBase, c.Base)
	}
	if c.TimeStep < 0 {
		return fmt.Errorf("%w: time step %.3f", ErrInvalid, c.TimeStep)
	}
	if c.Wait < 0 {
		return fmt.Errorf("%w: wait %.3f", ErrInvalid, c.Wait)
	}
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalid, c.Width, c.Height)
	}
	return nil
}

// Normalize applies the implications between modes: a screensaver is live
// and infinite.
func (c *Config) Normalize() {
	if c.Screensaver {
		c.Live = true
		c.Infinite = true
	}
}

// Params returns the growth parameters of one generation.
func (c *Config) Params() growth.Params {
	return growth.Params{
		LifeStart:  c.Life,
		Multiplier: c.Multiplier,
		Leaves:     c.Leaves,
		LeavesSize: len(c.Leaves),
		Verbose:    c.Verbose,
		Live:       c.Live,
		TimeStep:   seconds(c.TimeStep),
	}
}

// WaitDuration is the pause between trees in infinite mode.
func (c *Config) WaitDuration() time.Duration { return seconds(c.Wait) }

// BaseSize is the width and height of the base art.
func BaseSize(base string) (width, height int) {
	switch base {
	case BaseSmall:
		return 15, 3
	case BaseBig:
		return 31, 4
	}
	return 0, 0
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

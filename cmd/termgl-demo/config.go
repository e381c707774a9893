package main

import (
	"fmt"
	"log/slog"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/termgl"
)

// Config is the demo scene. It is read from an optional YAML file and then
// overridden by command-line flags.
type Config struct {
	Mode       string    `yaml:"mode"`
	FPS        int       `yaml:"fps"`
	FOV        float32   `yaml:"fov"`   // vertical field of view, degrees
	Speed      float32   `yaml:"speed"` // rotation, degrees per second
	Color      string    `yaml:"color"`
	Background string    `yaml:"background"`
	Glyph      string    `yaml:"glyph"`
	Workers    int       `yaml:"workers"`
	Log        LogConfig `yaml:"log"`
}

// LogConfig selects the log sink. The terminal is busy with frames, so logs
// always go to a file.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// scene holds a validated Config in the types the renderer uses.
type scene struct {
	mode       termgl.Topology
	fps        int
	fov        float32
	speed      float32
	color      termgl.Color
	background termgl.Color
	glyph      rune
	workers    int
	logLevel   slog.Level
}

func defaultConfig() Config {
	return Config{
		Mode:       "LINE_LOOP",
		FPS:        30,
		FOV:        60,
		Speed:      90,
		Color:      "#ffffff",
		Background: "#000000",
		Glyph:      " ",
		Log:        LogConfig{File: "termgl.log", Level: "info"},
	}
}

// loadConfig reads path over the defaults. Keys missing from the file keep
// their default value.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) scene() (scene, error) {
	var s scene
	var err error

	if s.mode, err = termgl.ParseTopology(c.Mode); err != nil {
		return s, err
	}
	if c.FPS <= 0 {
		return s, fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if c.FOV <= 0 || c.FOV >= 180 {
		return s, fmt.Errorf("fov must be in (0, 180), got %g", c.FOV)
	}
	if s.color, err = termgl.ParseHex(c.Color); err != nil {
		return s, fmt.Errorf("color: %w", err)
	}
	if s.background, err = termgl.ParseHex(c.Background); err != nil {
		return s, fmt.Errorf("background: %w", err)
	}
	if utf8.RuneCountInString(c.Glyph) != 1 {
		return s, fmt.Errorf("glyph must be a single character, got %q", c.Glyph)
	}
	s.glyph, _ = utf8.DecodeRuneInString(c.Glyph)
	if err := s.logLevel.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return s, fmt.Errorf("log level: %w", err)
	}

	s.fps = c.FPS
	s.fov = c.FOV
	s.speed = c.Speed
	s.workers = c.Workers
	return s, nil
}

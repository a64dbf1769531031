package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// BoardConfig describes one board of a room. Flipped determines seating
// orientation and, together with color, team identity.
type BoardConfig struct {
	Flipped bool `yaml:"flipped"`
}

type Config struct {
	ListenAddr    string        `yaml:"listen_addr"`
	AllowOrigins  string        `yaml:"allow_origins"`
	Boards        []BoardConfig `yaml:"boards"`
	ClockMs       int64         `yaml:"clock_ms"`
	TimeoutPollMs int64         `yaml:"timeout_poll_ms"`
}

func defaults() *Config {
	return &Config{
		ListenAddr:   ":3000",
		AllowOrigins: "http://localhost:5173",
		// the classic setup: two boards, opposite orientation, two teams
		Boards:        []BoardConfig{{Flipped: false}, {Flipped: true}},
		ClockMs:       5 * 60 * 1000,
		TimeoutPollMs: 250,
	}
}

// Load reads the optional yaml file at path, then applies env overrides
// (LISTEN_ADDR, ALLOW_ORIGINS, CLOCK_MS). An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	if v := strings.TrimSpace(os.Getenv("ALLOW_ORIGINS")); v != "" {
		cfg.AllowOrigins = v
	}
	if v := strings.TrimSpace(os.Getenv("CLOCK_MS")); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.ClockMs = n
		}
	}

	if len(cfg.Boards) == 0 {
		return nil, fmt.Errorf("config: at least one board is required")
	}
	if cfg.ClockMs <= 0 {
		return nil, fmt.Errorf("config: clock_ms must be positive")
	}
	if cfg.TimeoutPollMs <= 0 {
		cfg.TimeoutPollMs = 250
	}
	return cfg, nil
}

func (c *Config) Clock() time.Duration {
	return time.Duration(c.ClockMs) * time.Millisecond
}

func (c *Config) TimeoutPoll() time.Duration {
	return time.Duration(c.TimeoutPollMs) * time.Millisecond
}

// Flipped returns the per-board orientation flags in board order.
func (c *Config) Flipped() []bool {
	out := make([]bool, len(c.Boards))
	for i, b := range c.Boards {
		out[i] = b.Flipped
	}
	return out
}

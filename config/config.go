package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// General
	DefaultSource string
	RespectRobots bool
	DelayProfile  string // "cautious", "normal", "aggressive"

	// Scraping
	Headless  bool
	TimeoutMS int
	// SettleMS is the per-round render catch-up delay floor.
	SettleMS int
	// StallRounds is the convergence threshold: the loop stops after
	// this many consecutive rounds with no new items while at the
	// bottom of the list.
	StallRounds int
	// MaxRounds is the runaway guard on collection iterations.
	MaxRounds int

	// Rate limiting (batch mode and robots fetches)
	RatePerSecond float64
	RateBurst     int
	MaxConcurrent int

	// HTTP server
	HTTPPort string
	APIKey   string

	// Report generation
	CodexBin string
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultSource: "yandex_maps",
		RespectRobots: true,
		DelayProfile:  "normal",
		Headless:      true,
		TimeoutMS:     45_000,
		SettleMS:      450,
		StallRounds:   6,
		MaxRounds:     800,
		RatePerSecond: 0.5,
		RateBurst:     1,
		MaxConcurrent: 2,
		HTTPPort:      "8080",
		CodexBin:      "codex",
	}
}

// LoadFromEnv loads .env (if present) then overrides config from
// environment variables.
func (c *Config) LoadFromEnv() {
	// Auto-load .env file; silently ignored if missing
	_ = godotenv.Load()

	if v := os.Getenv("OTZYV_SOURCE"); v != "" {
		c.DefaultSource = v
	}
	if v := os.Getenv("OTZYV_DELAY_PROFILE"); v != "" {
		c.DelayProfile = v
	}
	if v := os.Getenv("OTZYV_RESPECT_ROBOTS"); v == "false" {
		c.RespectRobots = false
	}
	if v := os.Getenv("OTZYV_HEADLESS"); v == "false" {
		c.Headless = false
	}
	if v := os.Getenv("OTZYV_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.TimeoutMS = n
		}
	}
	if v := os.Getenv("OTZYV_SETTLE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.SettleMS = n
		}
	}
	if v := os.Getenv("OTZYV_STALL_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.StallRounds = n
		}
	}
	if v := os.Getenv("OTZYV_MAX_ROUNDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxRounds = n
		}
	}
	if v := os.Getenv("OTZYV_RATE_PER_SECOND"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RatePerSecond = f
		}
	}
	if v := os.Getenv("OTZYV_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}
	if v := os.Getenv("OTZYV_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxConcurrent = n
		}
	}
	if v := os.Getenv("PORT"); v != "" {
		c.HTTPPort = v
	}
	if v := os.Getenv("OTZYV_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("OTZYV_CODEX_BIN"); v != "" {
		c.CodexBin = v
	}
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/lukman83/otzyv-scrap/config"
	"github.com/lukman83/otzyv-scrap/internal/httputil"
	"github.com/lukman83/otzyv-scrap/internal/source"
	"github.com/lukman83/otzyv-scrap/internal/stealth"
	"github.com/lukman83/otzyv-scrap/internal/yamaps"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "otzyv",
	Short: "Otzyv Scrap - Yandex Maps review scraping CLI & MCP server",
	Long:  "A Go-based CLI tool and MCP server for extracting customer reviews from Yandex Maps organization listings.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("source", "yandex_maps", "Review source to scrape")
	rootCmd.PersistentFlags().String("delay-profile", "normal", "Delay profile: cautious, normal, aggressive")
	rootCmd.PersistentFlags().Bool("respect-robots", true, "Respect robots.txt rules")
}

func initConfig() {
	cfg = config.DefaultConfig()
	cfg.LoadFromEnv()

	// Override from flags
	if v, _ := rootCmd.PersistentFlags().GetString("source"); v != "" {
		cfg.DefaultSource = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("delay-profile"); v != "" {
		cfg.DelayProfile = v
	}
	if v, _ := rootCmd.PersistentFlags().GetBool("respect-robots"); !v {
		cfg.RespectRobots = false
	}
}

// buildRobots creates the robots.txt checker backed by a
// fingerprint-aware HTTP client.
func buildRobots() *stealth.RobotsChecker {
	client := httputil.NewHTTPClient(&stealth.Transport{
		Fingerprint: stealth.NewFingerprintPool(),
		RateLimiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
	})
	return stealth.NewRobotsChecker(client, cfg.RespectRobots)
}

// initSources registers all available review scrapers.
func initSources() {
	scraper := yamaps.NewScraper(yamaps.Config{
		Robots:        buildRobots(),
		Delay:         stealth.NewHumanDelay(stealth.DelayProfile(cfg.DelayProfile)),
		Limiter:       rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RateBurst),
		Settle:        time.Duration(cfg.SettleMS) * time.Millisecond,
		StallRounds:   cfg.StallRounds,
		MaxRounds:     cfg.MaxRounds,
		MaxConcurrent: cfg.MaxConcurrent,
	})
	source.Register("yandex_maps", scraper)
}

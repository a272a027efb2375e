package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/export"
	"github.com/lukman83/otzyv-scrap/internal/models"
	"github.com/lukman83/otzyv-scrap/internal/source"
	"github.com/lukman83/otzyv-scrap/internal/ui"
	"github.com/spf13/cobra"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews [url...]",
	Short: "Scrape reviews from organization listing URLs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReviews,
}

func init() {
	reviewsCmd.Flags().StringP("out", "o", "reviews.json", "Output file path")
	reviewsCmd.Flags().StringP("format", "f", "json", "Output format: json, csv, table (table prints to stdout)")
	reviewsCmd.Flags().IntP("limit", "l", 0, "Max reviews per listing (0 = all)")
	reviewsCmd.Flags().Bool("headful", false, "Show the browser (for debugging)")
	reviewsCmd.Flags().Int("timeout-ms", 0, "Per-wait timeout in ms (default from config)")
	reviewsCmd.Flags().String("debug-screenshot", "", "Save a screenshot after scraping (diagnostics)")
	rootCmd.AddCommand(reviewsCmd)
}

func runReviews(cmd *cobra.Command, args []string) error {
	initSources()

	out, _ := cmd.Flags().GetString("out")
	formatName, _ := cmd.Flags().GetString("format")
	limit, _ := cmd.Flags().GetInt("limit")
	headful, _ := cmd.Flags().GetBool("headful")
	timeoutMS, _ := cmd.Flags().GetInt("timeout-ms")
	screenshot, _ := cmd.Flags().GetString("debug-screenshot")

	var format export.Format
	table := formatName == "table"
	if !table {
		var ferr error
		format, ferr = export.ParseFormat(formatName)
		if ferr != nil {
			return ferr
		}
	}

	scraper, err := source.Get(cfg.DefaultSource)
	if err != nil {
		return err
	}

	if timeoutMS <= 0 {
		timeoutMS = cfg.TimeoutMS
	}
	opts := source.Options{
		Headless:       !headful && cfg.Headless,
		Timeout:        time.Duration(timeoutMS) * time.Millisecond,
		Limit:          limit,
		ScreenshotPath: screenshot,
	}

	spin := ui.NewSpinner()
	spin.Start(fmt.Sprintf("Scraping %d listing(s)...", len(args)))
	ctx := source.WithProgress(context.Background(), spin.Update)

	var reviews []models.Review
	if len(args) == 1 {
		reviews, err = scraper.Reviews(ctx, args[0], opts)
	} else if batch, ok := scraper.(source.BatchScraper); ok {
		reviews, err = batch.ReviewsAll(ctx, args, opts)
	} else {
		for _, u := range args {
			var part []models.Review
			part, err = scraper.Reviews(ctx, u, opts)
			if err != nil {
				break
			}
			reviews = append(reviews, part...)
		}
	}
	spin.Stop()
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	if table {
		printReviews(cmd, reviews)
		return nil
	}

	if err := export.Reviews(reviews, out, format); err != nil {
		return err
	}

	printRunSummary(cmd, len(reviews), out, string(format))
	return nil
}

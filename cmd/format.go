package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
	"github.com/spf13/cobra"
)

// printRunSummary prints a short result table after a scrape.
func printRunSummary(cmd *cobra.Command, count int, out, format string) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Done")
	fmt.Fprintf(w, "  Reviews: %d\n", count)
	fmt.Fprintf(w, "  File:    %s (%s)\n", out, format)
}

// printReviews prints reviews in a human-friendly card layout.
func printReviews(cmd *cobra.Command, reviews []models.Review) {
	w := cmd.OutOrStdout()
	for i, r := range reviews {
		if i > 0 {
			fmt.Fprintln(w)
		}

		head := r.Author
		if head == "" {
			head = "(anonymous)"
		}
		fmt.Fprintf(w, " %d. %s\n", i+1, head)

		meta := "    "
		if r.Rating != 0 {
			meta += stars(r.Rating)
		} else {
			meta += "no rating"
		}
		if r.Date != nil {
			meta += "  |  " + r.Date.Format(time.DateOnly)
		}
		fmt.Fprintln(w, meta)

		if r.Text != "" {
			fmt.Fprintf(w, "    %s\n", truncate(r.Text, 160))
		}
	}
}

func stars(rating int) string {
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

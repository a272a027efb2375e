package cmd

import (
	"fmt"

	"github.com/lukman83/otzyv-scrap/internal/stealth"
	"github.com/lukman83/otzyv-scrap/internal/yamaps"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [url]",
	Short: "Show the derived org id and robots.txt verdict for a listing URL",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	url := yamaps.NormalizeURL(args[0])

	orgID := yamaps.ExtractOrgID(url)
	if orgID == "" {
		orgID = "(not derivable)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "URL:    %s\n", url)
	fmt.Fprintf(cmd.OutOrStdout(), "Org ID: %s\n", orgID)

	robots := buildRobots()
	ua := stealth.NewFingerprintPool().Next().UserAgent
	allowed, err := robots.IsAllowed(ua, url)
	switch {
	case err != nil:
		fmt.Fprintf(cmd.OutOrStdout(), "Robots: check failed (%v)\n", err)
	case allowed:
		fmt.Fprintln(cmd.OutOrStdout(), "Robots: allowed")
	default:
		fmt.Fprintln(cmd.OutOrStdout(), "Robots: disallowed")
	}
	return nil
}

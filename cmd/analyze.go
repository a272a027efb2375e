package cmd

import (
	"errors"
	"fmt"
	"os/exec"

	"github.com/lukman83/otzyv-scrap/internal/report"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [reviews.json]",
	Short: "Generate a Markdown report from scraped reviews via Codex CLI",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("out", "o", "report.md", "Report output path (Markdown)")
	analyzeCmd.Flags().Int("max-reviews", 0, "Limit reviews sent for analysis (0 = all)")
	analyzeCmd.Flags().String("model", "", "Model override for Codex CLI")
	analyzeCmd.Flags().String("codex-bin", "", "Codex CLI binary (default from config)")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	maxReviews, _ := cmd.Flags().GetInt("max-reviews")
	model, _ := cmd.Flags().GetString("model")
	codexBin, _ := cmd.Flags().GetString("codex-bin")

	rcfg := report.DefaultConfig()
	rcfg.CodexBin = cfg.CodexBin
	if codexBin != "" {
		rcfg.CodexBin = codexBin
	}
	rcfg.Model = model

	err := report.Generate(cmd.Context(), args[0], out, rcfg, maxReviews)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("codex CLI not found (%q); install it, e.g.: npm install -g @openai/codex", rcfg.CodexBin)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", out)
	return nil
}

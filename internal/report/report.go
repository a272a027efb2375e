// Package report generates a Markdown analysis of scraped reviews by
// invoking a locally installed Codex CLI as a subprocess.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
)

// Config for report generation. Requires the codex binary on PATH and
// whatever auth Codex CLI itself needs (e.g. OPENAI_API_KEY).
type Config struct {
	CodexBin       string
	Model          string
	Sandbox        string
	OutputLanguage string
}

// DefaultConfig returns the standard report configuration.
func DefaultConfig() Config {
	return Config{
		CodexBin:       "codex",
		Sandbox:        "read-only",
		OutputLanguage: "ru",
	}
}

// MinimalReview is the privacy-stripped payload sent for analysis:
// no author, no raw fields.
type MinimalReview struct {
	Rating *int    `json:"rating"`
	Date   *string `json:"date"`
	Text   string  `json:"text"`
}

// LoadReviews reads a JSON array of review records from path.
func LoadReviews(path string) ([]models.Review, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var reviews []models.Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return nil, fmt.Errorf("parse %s: expected a JSON array of reviews: %w", path, err)
	}
	return reviews, nil
}

// Minimal strips reviews down to rating/date/text, dropping personal
// fields and reviews without text (nothing to analyze there).
func Minimal(reviews []models.Review) []MinimalReview {
	out := make([]MinimalReview, 0, len(reviews))
	for _, r := range reviews {
		text := strings.TrimSpace(r.Text)
		if text == "" {
			continue
		}
		m := MinimalReview{Text: text}
		if r.Rating != 0 {
			rating := r.Rating
			m.Rating = &rating
		}
		if r.Date != nil {
			date := r.Date.Format(time.DateOnly)
			m.Date = &date
		}
		out = append(out, m)
	}
	return out
}

// Generate loads reviews from inPath, writes a minimized temp file next
// to outPath, runs Codex CLI over it and stores the Markdown report at
// outPath. The temp file is always removed.
func Generate(ctx context.Context, inPath, outPath string, cfg Config, maxReviews int) error {
	reviews, err := LoadReviews(inPath)
	if err != nil {
		return err
	}
	if maxReviews > 0 && len(reviews) > maxReviews {
		reviews = reviews[:maxReviews]
	}

	minimal := Minimal(reviews)
	payload, err := json.MarshalIndent(minimal, "", "  ")
	if err != nil {
		return fmt.Errorf("encode minimal reviews: %w", err)
	}

	outDir := filepath.Dir(outPath)
	if outDir != "." {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	stem := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	tmpPath := filepath.Join(outDir, "."+stem+".minimal.json")
	if err := os.WriteFile(tmpPath, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write minimal payload: %w", err)
	}
	defer os.Remove(tmpPath)

	prompt := systemPrompt(cfg.OutputLanguage) +
		"\n\nThe data to analyze is in a local file at: " + tmpPath + "\n" +
		"Open the file, read the JSON array, and produce the report following the required sections above.\n"

	args := []string{"--sandbox", cfg.Sandbox, "exec"}
	if cfg.Model != "" {
		args = append(args, "--model", cfg.Model)
	}
	args = append(args, prompt)

	cmd := exec.CommandContext(ctx, cfg.CodexBin, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("codex CLI failed: %w\nstderr:\n%s", err, msg)
		}
		return fmt.Errorf("codex CLI failed: %w", err)
	}

	md := strings.TrimSpace(stdout.String())
	if md == "" {
		return fmt.Errorf("codex CLI returned no report (empty stdout)")
	}

	if err := os.WriteFile(outPath, []byte(md+"\n"), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

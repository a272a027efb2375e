// Package export serializes review records to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
)

// Format is a supported output file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format: %q (want json or csv)", s)
	}
}

// Reviews writes the review list to path in the given format,
// creating parent directories as needed.
func Reviews(reviews []models.Review, path string, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	switch format {
	case FormatJSON:
		return writeJSON(reviews, path)
	case FormatCSV:
		return writeCSV(reviews, path)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

func writeJSON(reviews []models.Review, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if reviews == nil {
		reviews = []models.Review{}
	}
	if err := enc.Encode(reviews); err != nil {
		return fmt.Errorf("encode reviews: %w", err)
	}
	return nil
}

// writeCSV flattens records into rows under a sorted union header, the
// date rendered as YYYY-MM-DD.
func writeCSV(reviews []models.Review, path string) error {
	rows := make([]map[string]string, 0, len(reviews))
	fields := make(map[string]struct{})
	for _, r := range reviews {
		row := flatten(r)
		for k := range row {
			fields[k] = struct{}{}
		}
		rows = append(rows, row)
	}

	header := make([]string, 0, len(fields))
	for k := range fields {
		header = append(header, k)
	}
	sort.Strings(header)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, k := range header {
			record[i] = row[k]
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func flatten(r models.Review) map[string]string {
	row := map[string]string{
		"source":  r.Source,
		"org_id":  r.OrgID,
		"org_url": r.OrgURL,
		"author":  r.Author,
		"text":    r.Text,
	}
	if r.Rating != 0 {
		row["rating"] = strconv.Itoa(r.Rating)
	} else {
		row["rating"] = ""
	}
	if r.Date != nil {
		row["date"] = r.Date.Format(time.DateOnly)
	} else {
		row["date"] = ""
	}
	if r.Likes != nil {
		row["likes"] = strconv.Itoa(*r.Likes)
	} else {
		row["likes"] = ""
	}
	if r.Dislikes != nil {
		row["dislikes"] = strconv.Itoa(*r.Dislikes)
	} else {
		row["dislikes"] = ""
	}
	return row
}

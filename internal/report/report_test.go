package report

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimalStripsPersonalFields(t *testing.T) {
	date := time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)
	reviews := []models.Review{
		{Author: "Иван", Rating: 4, Date: &date, Text: "  хорошо  ", Raw: map[string]any{"author": "Иван"}},
		{Author: "Мария", Rating: 5, Text: ""}, // textless: dropped
		{Author: "Пётр", Text: "без оценки"},   // no rating: kept, rating null
	}

	minimal := Minimal(reviews)
	require.Len(t, minimal, 2)

	require.NotNil(t, minimal[0].Rating)
	assert.Equal(t, 4, *minimal[0].Rating)
	require.NotNil(t, minimal[0].Date)
	assert.Equal(t, "2025-09-04", *minimal[0].Date)
	assert.Equal(t, "хорошо", minimal[0].Text)

	assert.Nil(t, minimal[1].Rating)
	assert.Nil(t, minimal[1].Date)

	payload, err := json.Marshal(minimal)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "Иван", "author names must not reach the analysis payload")
	assert.NotContains(t, string(payload), "author")
}

func TestLoadReviews(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "reviews.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"source":"yandex_maps","org_url":"u","text":"ок"}]`), 0o644))

	reviews, err := LoadReviews(path)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "ок", reviews[0].Text)

	_, err = LoadReviews(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o644))
	_, err = LoadReviews(bad)
	assert.Error(t, err)
}

func TestSystemPromptSections(t *testing.T) {
	p := systemPrompt("ru")
	assert.Contains(t, p, "Output language MUST be ru")
	for _, section := range []string{
		"#### Общая оценка",
		"#### Ключевые преимущества",
		"#### Ключевые недостатки/боли",
		"#### Темы и наблюдения",
		"#### Рекомендации (быстрые / стратегические)",
		"#### Резюме",
	} {
		assert.Contains(t, p, section)
	}
}

func TestGenerateWithStubCodex(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}
	dir := t.TempDir()

	in := filepath.Join(dir, "reviews.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"source":"yandex_maps","org_url":"u","rating":5,"text":"ок"}]`), 0o644))

	stub := filepath.Join(dir, "codex")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\necho '#### Общая оценка'\n"), 0o755))

	out := filepath.Join(dir, "report.md")
	cfg := DefaultConfig()
	cfg.CodexBin = stub

	require.NoError(t, Generate(context.Background(), in, out, cfg, 0))

	md, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "#### Общая оценка\n", string(md))

	// The minimal temp payload must not linger.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".minimal.json"))
	}
}

func TestGenerateFailsOnEmptyOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub")
	}
	dir := t.TempDir()

	in := filepath.Join(dir, "reviews.json")
	require.NoError(t, os.WriteFile(in, []byte(`[{"source":"yandex_maps","org_url":"u","text":"ок"}]`), 0o644))

	stub := filepath.Join(dir, "codex")
	require.NoError(t, os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755))

	cfg := DefaultConfig()
	cfg.CodexBin = stub

	err := Generate(context.Background(), in, filepath.Join(dir, "report.md"), cfg, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty stdout")
}

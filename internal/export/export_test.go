package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lukman83/otzyv-scrap/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReviews() []models.Review {
	date := time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)
	likes := 2
	return []models.Review{
		{
			Source: models.SourceYandexMaps,
			OrgID:  "1754533743",
			OrgURL: "https://yandex.ru/maps/org/x/1754533743/",
			Author: "Мария",
			Rating: 5,
			Date:   &date,
			Text:   "Очень уютно",
			Likes:  &likes,
		},
		{
			Source: models.SourceYandexMaps,
			OrgURL: "https://yandex.ru/maps/org/x/1754533743/",
			Text:   "Без оценки",
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "reviews.json")
	require.NoError(t, Reviews(sampleReviews(), path, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []models.Review
	require.NoError(t, json.Unmarshal(data, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "Мария", got[0].Author)
	assert.Equal(t, 5, got[0].Rating)
	require.NotNil(t, got[0].Date)
	assert.Zero(t, got[1].Rating)
}

func TestExportJSONEmptyListIsArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")
	require.NoError(t, Reviews(nil, path, FormatJSON))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, Reviews(sampleReviews(), path, FormatCSV))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 rows

	header := rows[0]
	assert.Contains(t, header, "author")
	assert.Contains(t, header, "rating")
	assert.Contains(t, header, "date")
	assert.IsIncreasing(t, header, "header fields are sorted")

	idx := make(map[string]int)
	for i, h := range header {
		idx[h] = i
	}
	assert.Equal(t, "5", rows[1][idx["rating"]])
	assert.Equal(t, "2025-09-04", rows[1][idx["date"]])
	assert.Equal(t, "2", rows[1][idx["likes"]])
	assert.Equal(t, "", rows[2][idx["rating"]])
	assert.Equal(t, "", rows[2][idx["date"]])
}

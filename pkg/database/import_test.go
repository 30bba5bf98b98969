package database

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBatch = `[
  {
    "status": 1,
    "score": 9,
    "num_read_chapters": 120,
    "num_read_volumes": 14,
    "created_at": 1546300800,
    "manga_title": "ベルセルク",
    "manga_english": "Berserk",
    "manga_num_chapters": 0,
    "manga_num_volumes": 0,
    "manga_publishing_status": 1,
    "manga_id": 2,
    "manga_url": "/manga/2/Berserk",
    "manga_image_path": "/images/manga/1/157897.jpg"
  },
  {
    "status": 2,
    "score": 10,
    "num_read_chapters": 162,
    "num_read_volumes": 18,
    "created_at": "1577836800",
    "manga_title": "鋼の錬金術師",
    "manga_english": "Fullmetal Alchemist",
    "manga_num_chapters": 116,
    "manga_num_volumes": 27,
    "manga_publishing_status": 2,
    "manga_id": 25,
    "manga_url": "/manga/25",
    "manga_image_path": "/images/manga/3/243675.jpg"
  }
]`

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, Migrate(db))
	return db
}

func writeBatch(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "all_lists.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestEpochSecondsUnmarshal(t *testing.T) {
	var e struct {
		A EpochSeconds `json:"a"`
		B EpochSeconds `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a": 1546300800, "b": "1546300800"}`), &e))
	assert.Equal(t, e.A, e.B)
	assert.Equal(t, time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), e.A.Time())

	require.Error(t, json.Unmarshal([]byte(`{"a": "not-a-number"}`), &e))
}

func TestImportRoundTrip(t *testing.T) {
	db := openTestDB(t)

	entries, err := LoadEntriesFromJSON(writeBatch(t, sampleBatch))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	n, err := ImportEntries(db, 1, entries)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	var (
		status, score, chRead, volRead, chTotal, volTotal int
		title, titleEng                                   string
		added                                             time.Time
	)
	err = db.QueryRow(`SELECT status, score, chapters_read, volumes_read, chapters_total, volumes_total,
		manga_title, manga_title_eng, added_date FROM readinglists WHERE manga_title_eng = 'Berserk'`).
		Scan(&status, &score, &chRead, &volRead, &chTotal, &volTotal, &title, &titleEng, &added)
	require.NoError(t, err)
	assert.Equal(t, 1, status)
	assert.Equal(t, 9, score)
	assert.Equal(t, 120, chRead)
	assert.Equal(t, 14, volRead)
	assert.Equal(t, 0, chTotal)
	assert.Equal(t, 0, volTotal)
	assert.Equal(t, "ベルセルク", title)
	assert.True(t, added.Equal(time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)),
		"added_date is the epoch timestamp in UTC, got %v", added)
}

func TestImportDuplicateTitleRollsBack(t *testing.T) {
	db := openTestDB(t)

	entries, err := LoadEntriesFromJSON(writeBatch(t, sampleBatch))
	require.NoError(t, err)

	_, err = ImportEntries(db, 1, entries)
	require.NoError(t, err)

	// re-running the same batch violates title uniqueness
	_, err = ImportEntries(db, 1, entries)
	require.ErrorIs(t, err, ErrImportConflict)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM readinglists`).Scan(&n))
	assert.Equal(t, 2, n, "failed batch must not leave partial rows")
}

func TestImportAllOrNothing(t *testing.T) {
	db := openTestDB(t)

	entries, err := LoadEntriesFromJSON(writeBatch(t, sampleBatch))
	require.NoError(t, err)
	// duplicate of the first record inside a single batch
	entries = append(entries, entries[0])

	_, err = ImportEntries(db, 1, entries)
	require.ErrorIs(t, err, ErrImportConflict)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM readinglists`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestLoadEntriesFromJSONMissingFile(t *testing.T) {
	_, err := LoadEntriesFromJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

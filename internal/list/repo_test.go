package list

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mangamanager/pkg/database"
	"mangamanager/pkg/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func insertEntry(t *testing.T, db *sql.DB, e models.ReadingEntry) int64 {
	t.Helper()
	now := time.Now().UTC()
	res, err := db.Exec(`INSERT INTO readinglists(user_id, status, score, chapters_read, volumes_read,
		added_date, manga_title, manga_title_eng, chapters_total, volumes_total,
		manga_pub_status, mal_manga_id, manga_url, manga_img_path, last_edited)
		VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.UserID, e.Status, e.Score, e.ChaptersRead, e.VolumesRead,
		now, e.MangaTitle, e.MangaTitleEng, e.ChaptersTotal, e.VolumesTotal,
		e.MangaPubStatus, e.MALMangaID, e.MangaURL, e.MangaImgPath, now)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

func seed(t *testing.T, db *sql.DB) {
	t.Helper()
	insertEntry(t, db, models.ReadingEntry{
		UserID: 1, Status: models.StatusReading, ChaptersRead: 12, ChaptersTotal: 0,
		VolumesRead: 2, VolumesTotal: 0,
		MangaTitle: "ベルセルク", MangaTitleEng: "Berserk", MALMangaID: 2,
	})
	insertEntry(t, db, models.ReadingEntry{
		UserID: 1, Status: models.StatusCompleted, ChaptersRead: 162, ChaptersTotal: 162,
		VolumesRead: 18, VolumesTotal: 18,
		MangaTitle: "鋼の錬金術師", MangaTitleEng: "Fullmetal Alchemist", MALMangaID: 25,
	})
	insertEntry(t, db, models.ReadingEntry{
		UserID: 2, Status: models.StatusReading, ChaptersRead: 3, ChaptersTotal: 90,
		MangaTitle: "ヨコハマ買い出し紀行", MangaTitleEng: "Yokohama Kaidashi Kikou", MALMangaID: 4,
	})
}

func TestListByStatus(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	reading, err := ListByStatus(db, 1, models.StatusReading)
	require.NoError(t, err)
	require.Len(t, reading, 1, "other users' rows are filtered out")
	assert.Equal(t, "Berserk", reading[0].MangaTitleEng)

	all, err := ListByStatus(db, 1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	dropped, err := ListByStatus(db, 1, models.StatusDropped)
	require.NoError(t, err)
	assert.Empty(t, dropped)
}

func TestFindByTitleSubstring(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	e, err := FindByTitle(db, "alchemist")
	require.NoError(t, err)
	assert.Equal(t, "Fullmetal Alchemist", e.MangaTitleEng)
	assert.Equal(t, "鋼の錬金術師", e.MangaTitle)

	_, err = FindByTitle(db, "nonexistent")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGetByTitleExact(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	e, err := GetByTitleExact(db, "berserk")
	require.NoError(t, err)
	assert.Equal(t, "Berserk", e.MangaTitleEng)

	// exact match only, no substring
	_, err = GetByTitleExact(db, "berser")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGetByID(t *testing.T) {
	db := openTestDB(t)
	id := insertEntry(t, db, models.ReadingEntry{
		UserID: 1, Status: models.StatusOnHold,
		MangaTitle: "保留", MangaTitleEng: "On Hold", MALMangaID: 7,
	})

	e, err := GetByID(db, id)
	require.NoError(t, err)
	assert.Equal(t, id, e.ID)
	assert.Equal(t, models.StatusOnHold, e.Status)
	assert.Nil(t, e.ReadingStartDate)

	_, err = GetByID(db, id+100)
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestMarkTotal(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	v, err := MarkTotal(db, 1, models.MarkChapter, "Fullmetal Alchemist")
	require.NoError(t, err)
	assert.Equal(t, 162, v)

	v, err = MarkTotal(db, 1, models.MarkVolume, "Fullmetal Alchemist")
	require.NoError(t, err)
	assert.Equal(t, 18, v)

	// scoped: user 2 does not own this title
	_, err = MarkTotal(db, 2, models.MarkChapter, "Fullmetal Alchemist")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestReadTotal(t *testing.T) {
	db := openTestDB(t)
	seed(t, db)

	v, err := ReadTotal(db, 1, models.MarkChapter, "Berserk")
	require.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = ReadTotal(db, 1, models.MarkVolume, "Berserk")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = ReadTotal(db, 1, models.MarkChapter, "Unknown Title")
	require.ErrorIs(t, err, ErrEntryNotFound)
}

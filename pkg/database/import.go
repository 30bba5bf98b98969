package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mattn/go-sqlite3"
)

// ErrImportConflict reports a title-uniqueness violation during a batch
// import. The whole batch is rolled back when it occurs.
var ErrImportConflict = errors.New("duplicate title in import batch")

// EpochSeconds accepts the upstream created_at field, which shows up as
// either a JSON number or a string of digits.
type EpochSeconds int64

func (e *EpochSeconds) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("parse created_at %q: %w", string(b), err)
	}
	*e = EpochSeconds(n)
	return nil
}

func (e EpochSeconds) Time() time.Time {
	return time.Unix(int64(e), 0).UTC()
}

// ExternalEntry is one record of the upstream list-export JSON.
type ExternalEntry struct {
	Status                int          `json:"status"`
	Score                 int          `json:"score"`
	NumReadChapters       int          `json:"num_read_chapters"`
	NumReadVolumes        int          `json:"num_read_volumes"`
	CreatedAt             EpochSeconds `json:"created_at"`
	MangaTitle            string       `json:"manga_title"`
	MangaEnglish          string       `json:"manga_english"`
	MangaNumChapters      int          `json:"manga_num_chapters"`
	MangaNumVolumes       int          `json:"manga_num_volumes"`
	MangaPublishingStatus int          `json:"manga_publishing_status"`
	MangaID               int64        `json:"manga_id"`
	MangaURL              string       `json:"manga_url"`
	MangaImagePath        string       `json:"manga_image_path"`
}

func LoadEntriesFromJSON(jsonPath string) ([]ExternalEntry, error) {
	b, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("read list json: %w", err)
	}

	var list []ExternalEntry
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, fmt.Errorf("unmarshal list json: %w", err)
	}

	return list, nil
}

// ImportEntries inserts every record in one transaction. Any failure,
// including a duplicate title, rolls back the whole batch.
func ImportEntries(db *sql.DB, userID int64, entries []ExternalEntry) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO readinglists (user_id, status, score, chapters_read, volumes_read,
			added_date, manga_title, manga_title_eng, chapters_total, volumes_total,
			manga_pub_status, mal_manga_id, manga_url, manga_img_path, last_edited)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert entry: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		_, err := stmt.Exec(userID, e.Status, e.Score, e.NumReadChapters, e.NumReadVolumes,
			e.CreatedAt.Time(), e.MangaTitle, e.MangaEnglish, e.MangaNumChapters,
			e.MangaNumVolumes, e.MangaPublishingStatus, e.MangaID, e.MangaURL,
			e.MangaImagePath, now)
		if err != nil {
			var sqErr sqlite3.Error
			if errors.As(err, &sqErr) && sqErr.ExtendedCode == sqlite3.ErrConstraintUnique {
				return 0, fmt.Errorf("insert %q: %w", e.MangaTitle, ErrImportConflict)
			}
			return 0, fmt.Errorf("insert %q: %w", e.MangaTitle, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit tx: %w", err)
	}
	return len(entries), nil
}

package list

import (
	"database/sql"
	"errors"
	"fmt"

	"mangamanager/pkg/models"
)

var ErrEntryNotFound = errors.New("reading entry not found")

const entryCols = `id, user_id, status, score, chapters_read, volumes_read,
	added_date, reading_start_date, reading_finished_date,
	manga_title, manga_title_eng, manga_title_localized,
	chapters_total, volumes_total, manga_pub_status, mal_manga_id,
	manga_url, manga_img_path, last_edited`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.ReadingEntry, error) {
	var e models.ReadingEntry
	err := row.Scan(&e.ID, &e.UserID, &e.Status, &e.Score, &e.ChaptersRead, &e.VolumesRead,
		&e.AddedDate, &e.ReadingStartDate, &e.ReadingFinishedDate,
		&e.MangaTitle, &e.MangaTitleEng, &e.MangaTitleLocalized,
		&e.ChaptersTotal, &e.VolumesTotal, &e.MangaPubStatus, &e.MALMangaID,
		&e.MangaURL, &e.MangaImgPath, &e.LastEdited)
	return e, err
}

// ListByStatus returns the caller's entries in one status bucket, in
// insertion order. status 0 means all buckets.
func ListByStatus(db *sql.DB, userID int64, status int) ([]models.ReadingEntry, error) {
	q := `SELECT ` + entryCols + ` FROM readinglists WHERE user_id = ?`
	args := []any{userID}
	if status != 0 {
		q += ` AND status = ?`
		args = append(args, status)
	}

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var res []models.ReadingEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

// FindByTitle returns the first entry whose English title contains the
// given text, case-insensitively.
func FindByTitle(db *sql.DB, title string) (models.ReadingEntry, error) {
	row := db.QueryRow(`SELECT `+entryCols+` FROM readinglists WHERE manga_title_eng LIKE ? LIMIT 1`,
		"%"+title+"%")
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadingEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return models.ReadingEntry{}, err
	}
	return e, nil
}

// GetByTitleExact matches the full English title, case-insensitively.
// LIKE without wildcards gives the case-insensitive exact match.
func GetByTitleExact(db *sql.DB, title string) (models.ReadingEntry, error) {
	row := db.QueryRow(`SELECT `+entryCols+` FROM readinglists WHERE manga_title_eng LIKE ? LIMIT 1`, title)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadingEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return models.ReadingEntry{}, err
	}
	return e, nil
}

func GetByID(db *sql.DB, id int64) (models.ReadingEntry, error) {
	row := db.QueryRow(`SELECT `+entryCols+` FROM readinglists WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadingEntry{}, ErrEntryNotFound
	}
	if err != nil {
		return models.ReadingEntry{}, err
	}
	return e, nil
}

// MarkTotal returns the chapter or volume total of the caller's entry.
func MarkTotal(db *sql.DB, userID int64, mark models.MarkType, title string) (int, error) {
	col := "chapters_total"
	if mark == models.MarkVolume {
		col = "volumes_total"
	}
	return intField(db, col, userID, title)
}

// ReadTotal returns the chapter or volume read counter of the caller's entry.
func ReadTotal(db *sql.DB, userID int64, mark models.MarkType, title string) (int, error) {
	col := "chapters_read"
	if mark == models.MarkVolume {
		col = "volumes_read"
	}
	return intField(db, col, userID, title)
}

func intField(db *sql.DB, col string, userID int64, title string) (int, error) {
	var v int
	err := db.QueryRow(`SELECT `+col+` FROM readinglists WHERE user_id = ? AND manga_title_eng LIKE ?`,
		userID, title).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrEntryNotFound
	}
	if err != nil {
		return 0, err
	}
	return v, nil
}

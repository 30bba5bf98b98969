package progress

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"mangamanager/internal/list"
	"mangamanager/pkg/models"
)

var (
	// ErrInvalidTransition means a counter adjustment would go below zero
	// or past a known total. The entry is left unchanged.
	ErrInvalidTransition = errors.New("read count update out of bounds")
	ErrInvalidStatus     = errors.New("status code not in allowed set")
	ErrInvalidRating     = errors.New("rating must be between 0 and 10")
)

// AdjustCounter applies one read/unread step to the chapter or volume
// counter of an entry. The read, bound check, write and log append run in
// a single transaction; a rejected update changes nothing.
//
// A total of 0 means the series length is unknown and reads are unbounded.
func AdjustCounter(db *sql.DB, entryID int64, mark models.MarkType, update models.UpdateType) (models.ReadUpdate, error) {
	tx, err := db.Begin()
	if err != nil {
		return models.ReadUpdate{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var (
		out                         models.ReadUpdate
		userID                      int64
		chaptersTotal, volumesTotal int
	)
	err = tx.QueryRow(`SELECT id, user_id, manga_title, manga_title_eng,
		chapters_read, chapters_total, volumes_read, volumes_total
		FROM readinglists WHERE id = ?`, entryID).
		Scan(&out.ID, &userID, &out.MangaTitle, &out.MangaTitleEng,
			&out.ChaptersRead, &chaptersTotal, &out.VolumesRead, &volumesTotal)
	if errors.Is(err, sql.ErrNoRows) {
		return models.ReadUpdate{}, list.ErrEntryNotFound
	}
	if err != nil {
		return models.ReadUpdate{}, err
	}

	col := "chapters_read"
	current, total := out.ChaptersRead, chaptersTotal
	if mark == models.MarkVolume {
		col = "volumes_read"
		current, total = out.VolumesRead, volumesTotal
	}

	if update == models.UpdateUnread && current-1 < 0 {
		return models.ReadUpdate{}, fmt.Errorf("%w: %s already at 0", ErrInvalidTransition, mark)
	}
	if update == models.UpdateRead && total != 0 && current+1 > total {
		return models.ReadUpdate{}, fmt.Errorf("%w: %s already at total %d", ErrInvalidTransition, mark, total)
	}

	next := current + 1
	if update == models.UpdateUnread {
		next = current - 1
	}

	now := time.Now().UTC()
	if _, err := tx.Exec(`UPDATE readinglists SET `+col+` = ?, last_edited = ? WHERE id = ?`,
		next, now, entryID); err != nil {
		return models.ReadUpdate{}, fmt.Errorf("update counter: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO readinglog(user_id, readinglists_id, mark_type, update_type, mark_value, updated_date)
		VALUES(?,?,?,?,?,?)`, userID, entryID, string(mark), string(update), next, now); err != nil {
		return models.ReadUpdate{}, fmt.Errorf("append reading log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.ReadUpdate{}, fmt.Errorf("commit tx: %w", err)
	}

	if mark == models.MarkVolume {
		out.VolumesRead = next
	} else {
		out.ChaptersRead = next
	}
	out.LastEdited = now

	slog.Debug("adjusted read counter", "entry", entryID, "mark", mark, "update", update, "value", next)
	return out, nil
}

// UpdateRating overwrites the score of an entry. 0 clears the rating.
func UpdateRating(db *sql.DB, entryID int64, rating int) (models.ScoreUpdate, error) {
	if rating < 0 || rating > 10 {
		return models.ScoreUpdate{}, ErrInvalidRating
	}

	e, err := list.GetByID(db, entryID)
	if err != nil {
		return models.ScoreUpdate{}, err
	}

	now := time.Now().UTC()
	if _, err := db.Exec(`UPDATE readinglists SET score = ?, last_edited = ? WHERE id = ?`,
		rating, now, entryID); err != nil {
		return models.ScoreUpdate{}, fmt.Errorf("update rating: %w", err)
	}

	return models.ScoreUpdate{
		MangaID:    models.MangaID{ID: e.ID, MangaTitle: e.MangaTitle, MangaTitleEng: e.MangaTitleEng},
		Score:      rating,
		LastEdited: now,
	}, nil
}

// UpdateStatus moves an entry to another reading-list bucket. 0, the
// reserved 5 and anything above 6 are rejected.
func UpdateStatus(db *sql.DB, entryID int64, status int) (models.StatusUpdate, error) {
	if !models.ValidStatus(status) {
		return models.StatusUpdate{}, fmt.Errorf("%w: %d", ErrInvalidStatus, status)
	}

	e, err := list.GetByID(db, entryID)
	if err != nil {
		return models.StatusUpdate{}, err
	}

	now := time.Now().UTC()
	if _, err := db.Exec(`UPDATE readinglists SET status = ?, last_edited = ? WHERE id = ?`,
		status, now, entryID); err != nil {
		return models.StatusUpdate{}, fmt.Errorf("update status: %w", err)
	}

	return models.StatusUpdate{
		MangaID:    models.MangaID{ID: e.ID, MangaTitle: e.MangaTitle, MangaTitleEng: e.MangaTitleEng},
		Status:     status,
		LastEdited: now,
	}, nil
}

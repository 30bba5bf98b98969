package readlog

import (
	"database/sql"
	"fmt"
	"time"

	"mangamanager/pkg/models"
)

// Append writes one reading-log row. UpdatedDate is assigned here; log
// rows are never mutated afterwards.
func Append(db *sql.DB, e models.ReadingLogEntry) (models.ReadingLogEntry, error) {
	e.UpdatedDate = time.Now().UTC()
	res, err := db.Exec(`INSERT INTO readinglog(user_id, readinglists_id, mark_type, update_type, mark_value, updated_date)
		VALUES(?,?,?,?,?,?)`,
		e.UserID, e.EntryID, string(e.MarkType), string(e.UpdateType), e.MarkValue, e.UpdatedDate)
	if err != nil {
		return models.ReadingLogEntry{}, fmt.Errorf("insert reading log: %w", err)
	}
	e.ID, err = res.LastInsertId()
	if err != nil {
		return models.ReadingLogEntry{}, err
	}
	return e, nil
}

// ListByEntry returns the log rows for one reading entry, oldest first.
func ListByEntry(db *sql.DB, entryID int64) ([]models.ReadingLogEntry, error) {
	rows, err := db.Query(`SELECT id, user_id, readinglists_id, mark_type, update_type, mark_value, updated_date
		FROM readinglog WHERE readinglists_id = ? ORDER BY id`, entryID)
	if err != nil {
		return nil, fmt.Errorf("query reading log: %w", err)
	}
	defer rows.Close()

	var res []models.ReadingLogEntry
	for rows.Next() {
		var e models.ReadingLogEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.EntryID, &e.MarkType, &e.UpdateType, &e.MarkValue, &e.UpdatedDate); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}

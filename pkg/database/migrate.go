package database

import (
	"database/sql"
	"fmt"
)

func Migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			full_name TEXT NOT NULL DEFAULT '',
			active INTEGER NOT NULL DEFAULT 1,
			hashed_password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS readinglists (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL DEFAULT 0 REFERENCES users(id),
			status INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			chapters_read INTEGER NOT NULL DEFAULT 0,
			volumes_read INTEGER NOT NULL DEFAULT 0,
			added_date TIMESTAMP NOT NULL,
			reading_start_date TIMESTAMP,
			reading_finished_date TIMESTAMP,
			manga_title TEXT NOT NULL UNIQUE,
			manga_title_eng TEXT NOT NULL UNIQUE,
			manga_title_localized TEXT NOT NULL DEFAULT '',
			chapters_total INTEGER NOT NULL DEFAULT 0,
			volumes_total INTEGER NOT NULL DEFAULT 0,
			manga_pub_status INTEGER NOT NULL DEFAULT 0,
			mal_manga_id INTEGER NOT NULL,
			manga_url TEXT NOT NULL DEFAULT '',
			manga_img_path TEXT NOT NULL DEFAULT '',
			last_edited TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
		`CREATE TABLE IF NOT EXISTS readinglog (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL DEFAULT 0 REFERENCES users(id),
			readinglists_id INTEGER NOT NULL REFERENCES readinglists(id),
			mark_type TEXT NOT NULL,
			update_type TEXT NOT NULL,
			mark_value INTEGER NOT NULL,
			updated_date TIMESTAMP NOT NULL
		);`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("migrate stmt %d: %w", i, err)
		}
	}
	return nil
}

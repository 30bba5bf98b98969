package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	// Single connection: counter updates are read-modify-write inside a
	// transaction, and serializing on one connection keeps them safe.
	db.SetMaxOpenConns(1)
	return db, nil
}

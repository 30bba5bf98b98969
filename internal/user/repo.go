package user

import (
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"mangamanager/pkg/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password so a caller cannot tell the cases apart.
	ErrInvalidCredentials = errors.New("no match for username and password")
)

func Create(db *sql.DB, username, fullName, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	res, err := db.Exec(`INSERT INTO users(username, full_name, active, hashed_password) VALUES(?,?,1,?)`,
		username, fullName, string(hash))
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", username, err)
	}
	return res.LastInsertId()
}

func GetByUsername(db *sql.DB, username string) (models.User, error) {
	var u models.User
	err := db.QueryRow(`SELECT id, username, full_name, active, hashed_password FROM users WHERE username = ?`, username).
		Scan(&u.ID, &u.Username, &u.FullName, &u.Active, &u.HashedPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func VerifyLogin(db *sql.DB, username, password string) (models.User, error) {
	u, err := GetByUsername(db, username)
	if errors.Is(err, ErrUserNotFound) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

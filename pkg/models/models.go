package models

import (
	"errors"
	"time"
)

// Reading-list status buckets. The numeric codes come from the upstream
// list service; 5 is reserved there and never stored.
const (
	StatusReading    = 1
	StatusCompleted  = 2
	StatusOnHold     = 3
	StatusDropped    = 4
	StatusPlanToRead = 6
)

var (
	ErrInvalidMarkType   = errors.New("mark type must be chapter or volume")
	ErrInvalidUpdateType = errors.New("update type must be read or unread")
)

func ValidStatus(s int) bool {
	switch s {
	case StatusReading, StatusCompleted, StatusOnHold, StatusDropped, StatusPlanToRead:
		return true
	}
	return false
}

// MarkType selects which counter a progress update targets.
type MarkType string

const (
	MarkChapter MarkType = "chapter"
	MarkVolume  MarkType = "volume"
)

func ParseMarkType(s string) (MarkType, error) {
	switch MarkType(s) {
	case MarkChapter, MarkVolume:
		return MarkType(s), nil
	}
	return "", ErrInvalidMarkType
}

// UpdateType is the direction of a counter adjustment.
type UpdateType string

const (
	UpdateRead   UpdateType = "read"
	UpdateUnread UpdateType = "unread"
)

func ParseUpdateType(s string) (UpdateType, error) {
	switch UpdateType(s) {
	case UpdateRead, UpdateUnread:
		return UpdateType(s), nil
	}
	return "", ErrInvalidUpdateType
}

// readinglists table
type ReadingEntry struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"user_id"`
	Status              int        `json:"status"`
	Score               int        `json:"score"`
	ChaptersRead        int        `json:"chapters_read"`
	VolumesRead         int        `json:"volumes_read"`
	AddedDate           time.Time  `json:"added_date"`
	ReadingStartDate    *time.Time `json:"reading_start_date"`
	ReadingFinishedDate *time.Time `json:"reading_finished_date"`
	MangaTitle          string     `json:"manga_title"`
	MangaTitleEng       string     `json:"manga_title_eng"`
	MangaTitleLocalized string     `json:"manga_title_localized"`
	ChaptersTotal       int        `json:"chapters_total"`
	VolumesTotal        int        `json:"volumes_total"`
	MangaPubStatus      int        `json:"manga_pub_status"`
	MALMangaID          int64      `json:"mal_manga_id"`
	MangaURL            string     `json:"manga_url"`
	MangaImgPath        string     `json:"manga_img_path"`
	LastEdited          time.Time  `json:"last_edited"`
}

// users table
type User struct {
	ID             int64  `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Active         bool   `json:"active"`
	HashedPassword string `json:"-"`
}

// readinglog table, append-only
type ReadingLogEntry struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	EntryID     int64      `json:"readinglists_id"`
	MarkType    MarkType   `json:"mark_type"`
	UpdateType  UpdateType `json:"update_type"`
	MarkValue   int        `json:"mark_value"`
	UpdatedDate time.Time  `json:"updated_date"`
}

// MangaID is the id-resolution projection returned by /manga_info/get_id.
type MangaID struct {
	ID            int64  `json:"id"`
	MangaTitle    string `json:"manga_title"`
	MangaTitleEng string `json:"manga_title_eng"`
}

// ReadInfo is the read-progress projection returned by /manga_info/read_info.
type ReadInfo struct {
	MangaID
	ChaptersRead        int        `json:"chapters_read"`
	VolumesRead         int        `json:"volumes_read"`
	ReadingStartDate    *time.Time `json:"reading_start_date"`
	ReadingFinishedDate *time.Time `json:"reading_finished_date"`
	ChaptersTotal       int        `json:"chapters_total"`
	VolumesTotal        int        `json:"volumes_total"`
}

// ReadUpdate is the projection returned after a counter adjustment.
type ReadUpdate struct {
	MangaID
	ChaptersRead int       `json:"chapters_read"`
	VolumesRead  int       `json:"volumes_read"`
	LastEdited   time.Time `json:"last_edited"`
}

// ScoreUpdate is the projection returned after a rating change.
type ScoreUpdate struct {
	MangaID
	Score      int       `json:"score"`
	LastEdited time.Time `json:"last_edited"`
}

// StatusUpdate is the projection returned after a status change.
type StatusUpdate struct {
	MangaID
	Status     int       `json:"status"`
	LastEdited time.Time `json:"last_edited"`
}

// Token is the /token response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

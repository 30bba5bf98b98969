package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"mangamanager/internal/auth"
	"mangamanager/internal/config"
	"mangamanager/internal/list"
	"mangamanager/internal/progress"
	"mangamanager/internal/readlog"
	"mangamanager/internal/user"
	"mangamanager/pkg/models"
)

func handleToken(c *gin.Context, db *sql.DB, cfg config.Config) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username/password required"})
		return
	}

	u, err := user.VerifyLogin(db, username, password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no match for username and password"})
		return
	}

	token, err := auth.SignToken(cfg.JWTSecret, cfg.JWTAlgorithm, u.Username, cfg.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign token failed"})
		return
	}

	c.JSON(http.StatusOK, models.Token{AccessToken: token, TokenType: "bearer"})
}

func listHandler(db *sql.DB, status int) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64(auth.CtxUserIDKey)
		res, err := list.ListByStatus(db, userID, status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res == nil {
			res = []models.ReadingEntry{}
		}
		c.JSON(http.StatusOK, res)
	}
}

func handleMarkTotal(c *gin.Context, db *sql.DB) {
	mark, title, ok := markTitleParams(c)
	if !ok {
		return
	}
	v, err := list.MarkTotal(db, c.GetInt64(auth.CtxUserIDKey), mark, title)
	intOrNull(c, v, err)
}

func handleReadTotal(c *gin.Context, db *sql.DB) {
	mark, title, ok := markTitleParams(c)
	if !ok {
		return
	}
	v, err := list.ReadTotal(db, c.GetInt64(auth.CtxUserIDKey), mark, title)
	intOrNull(c, v, err)
}

func markTitleParams(c *gin.Context) (models.MarkType, string, bool) {
	mark, err := models.ParseMarkType(c.Query("mark_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", "", false
	}
	title := c.Query("manga_title_eng")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manga_title_eng required"})
		return "", "", false
	}
	return mark, title, true
}

// Absent entries answer with a JSON null body, not 404.
func intOrNull(c *gin.Context, v int, err error) {
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func handleGetSeries(c *gin.Context, db *sql.DB) {
	title := c.Query("manga_title_eng")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manga_title_eng required"})
		return
	}
	e, err := list.FindByTitle(db, title)
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func handleGetID(c *gin.Context, db *sql.DB) {
	title := c.Query("manga_title_eng")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manga_title_eng required"})
		return
	}
	e, err := list.GetByTitleExact(db, title)
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, models.MangaID{ID: e.ID, MangaTitle: e.MangaTitle, MangaTitleEng: e.MangaTitleEng})
}

func handleReadInfo(c *gin.Context, db *sql.DB) {
	title := c.Query("manga_title_eng")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manga_title_eng required"})
		return
	}
	e, err := list.GetByTitleExact(db, title)
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, models.ReadInfo{
		MangaID:             models.MangaID{ID: e.ID, MangaTitle: e.MangaTitle, MangaTitleEng: e.MangaTitleEng},
		ChaptersRead:        e.ChaptersRead,
		VolumesRead:         e.VolumesRead,
		ReadingStartDate:    e.ReadingStartDate,
		ReadingFinishedDate: e.ReadingFinishedDate,
		ChaptersTotal:       e.ChaptersTotal,
		VolumesTotal:        e.VolumesTotal,
	})
}

// resolveEntry maps the title-based wire contract onto the id-based engine
// operations: one explicit exact-title lookup, then everything is by id.
func resolveEntry(c *gin.Context, db *sql.DB) (models.ReadingEntry, bool) {
	title := c.Query("manga_title_eng")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "manga_title_eng required"})
		return models.ReadingEntry{}, false
	}
	e, err := list.GetByTitleExact(db, title)
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no series found for %s", title)})
		return models.ReadingEntry{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return models.ReadingEntry{}, false
	}
	return e, true
}

func handleUpdateReadStatus(c *gin.Context, db *sql.DB) {
	mark, err := models.ParseMarkType(c.Query("mark_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := models.ParseUpdateType(c.Query("update_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, ok := resolveEntry(c, db)
	if !ok {
		return
	}

	res, err := progress.AdjustCounter(db, e.ID, mark, update)
	if errors.Is(err, progress.ErrInvalidTransition) || errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("error with updating read count for %s", e.MangaTitleEng)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func handleUpdateRating(c *gin.Context, db *sql.DB) {
	rating, err := strconv.Atoi(c.Query("new_rating"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_rating must be an integer"})
		return
	}
	e, ok := resolveEntry(c, db)
	if !ok {
		return
	}

	res, err := progress.UpdateRating(db, e.ID, rating)
	if errors.Is(err, progress.ErrInvalidRating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no series found for %s", e.MangaTitleEng)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func handleUpdateStatus(c *gin.Context, db *sql.DB) {
	status, err := strconv.Atoi(c.Query("new_status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "new_status must be an integer"})
		return
	}
	e, ok := resolveEntry(c, db)
	if !ok {
		return
	}

	res, err := progress.UpdateStatus(db, e.ID, status)
	if errors.Is(err, progress.ErrInvalidStatus) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, list.ErrEntryNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no series found for %s", e.MangaTitleEng)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func handleCreateReadLog(c *gin.Context, db *sql.DB) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}
	entryID, err := strconv.ParseInt(c.Query("readinglists_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "readinglists_id must be an integer"})
		return
	}
	mark, err := models.ParseMarkType(c.Query("mark_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	update, err := models.ParseUpdateType(c.Query("update_type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	markValue, err := strconv.Atoi(c.Query("mark_value"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mark_value must be an integer"})
		return
	}

	if _, err := list.GetByID(db, entryID); err != nil {
		if errors.Is(err, list.ErrEntryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reading entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}

	entry, err := readlog.Append(db, models.ReadingLogEntry{
		UserID:     userID,
		EntryID:    entryID,
		MarkType:   mark,
		UpdateType: update,
		MarkValue:  markValue,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func handleListReadLog(c *gin.Context, db *sql.DB) {
	entryID, err := strconv.ParseInt(c.Query("readinglists_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "readinglists_id must be an integer"})
		return
	}
	logs, err := readlog.ListByEntry(db, entryID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	if logs == nil {
		logs = []models.ReadingLogEntry{}
	}
	c.JSON(http.StatusOK, logs)
}

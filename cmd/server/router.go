package main

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"mangamanager/internal/auth"
	"mangamanager/internal/config"
)

func newRouter(db *sql.DB, cfg config.Config) *gin.Engine {
	r := gin.Default()

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })
	r.POST("/token", func(c *gin.Context) { handleToken(c, db, cfg) })

	authed := r.Group("/")
	authed.Use(auth.RequireUser(db, cfg.JWTSecret, cfg.JWTAlgorithm))

	lists := authed.Group("/lists")
	lists.GET("/all", listHandler(db, 0))
	lists.GET("/reading", listHandler(db, 1))
	lists.GET("/read", listHandler(db, 2))
	lists.GET("/onhold", listHandler(db, 3))
	lists.GET("/dropped", listHandler(db, 4))
	lists.GET("/plantoread", listHandler(db, 6))

	info := authed.Group("/manga_info")
	info.GET("/mark_total", func(c *gin.Context) { handleMarkTotal(c, db) })
	info.GET("/read_total", func(c *gin.Context) { handleReadTotal(c, db) })
	info.GET("/get_series", func(c *gin.Context) { handleGetSeries(c, db) })
	info.GET("/get_id", func(c *gin.Context) { handleGetID(c, db) })
	info.GET("/read_info", func(c *gin.Context) { handleReadInfo(c, db) })

	upd := authed.Group("/update")
	upd.PATCH("/update_read_status", func(c *gin.Context) { handleUpdateReadStatus(c, db) })
	upd.PATCH("/update_rating", func(c *gin.Context) { handleUpdateRating(c, db) })
	upd.PATCH("/update_status", func(c *gin.Context) { handleUpdateStatus(c, db) })
	upd.POST("/read_log", func(c *gin.Context) { handleCreateReadLog(c, db) })
	upd.GET("/read_log", func(c *gin.Context) { handleListReadLog(c, db) })

	return r
}

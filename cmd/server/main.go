package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"mangamanager/internal/config"
	"mangamanager/pkg/database"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("bad configuration", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		slog.Error("create data dir", "err", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("open database", "path", cfg.DBPath, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("migrate database", "err", err)
		os.Exit(1)
	}

	r := newRouter(db, cfg)

	slog.Info("HTTP API listening", "addr", cfg.HTTPAddr, "user", cfg.SourceUser)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		slog.Error("http server", "err", err)
		os.Exit(1)
	}
}

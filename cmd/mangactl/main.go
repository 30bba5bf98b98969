package main

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"mangamanager/internal/user"
	"mangamanager/pkg/database"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	root := &cobra.Command{
		Use:           "mangactl",
		Short:         "manga manager maintenance commands",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("db", "./data/manga_manager.db", "sqlite database path")

	root.AddCommand(importCommand(), addUserCommand())

	if err := root.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func importCommand() *cobra.Command {
	var file, username string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "one-shot batch import of a list-export JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			var userID int64
			if username != "" {
				u, err := user.GetByUsername(db, username)
				if err != nil {
					return fmt.Errorf("resolve owner %q: %w", username, err)
				}
				userID = u.ID
			}

			entries, err := database.LoadEntriesFromJSON(file)
			if err != nil {
				return err
			}

			n, err := database.ImportEntries(db, userID, entries)
			if errors.Is(err, database.ErrImportConflict) {
				return fmt.Errorf("batch rolled back: %w", err)
			}
			if err != nil {
				return err
			}

			slog.Info("imported entries", "count", n, "file", file)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "MALlists/all_lists.json", "list-export JSON file")
	cmd.Flags().StringVar(&username, "username", os.Getenv("MAL_USER"), "owner of the imported rows")
	return cmd
}

func addUserCommand() *cobra.Command {
	var username, fullName, password string

	cmd := &cobra.Command{
		Use:   "adduser",
		Short: "create an active user with a bcrypt-hashed password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return fmt.Errorf("--username and --password are required")
			}

			db, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := user.Create(db, username, fullName, password)
			if err != nil {
				return err
			}

			slog.Info("created user", "id", id, "username", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password to hash")
	return cmd
}

func openDB(cmd *cobra.Command) (*sql.DB, error) {
	path, _ := cmd.Flags().GetString("db")
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func Open(databasePath string) (*sql.DB, error) {
	if databasePath != ":memory:" {
		directory := filepath.Dir(databasePath)
		if err := os.MkdirAll(directory, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// sqlite allows a single writer, and every pooled connection to
	// :memory: would otherwise see its own empty database.
	database.SetMaxOpenConns(1)

	if _, err := database.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := database.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return database, nil
}

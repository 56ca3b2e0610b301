package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrations embed.FS

// InitDB opens the database and migrates it to the latest schema.
// With an empty primaryURL, dbPath is a local SQLite file (or ":memory:");
// otherwise the remote Turso database at primaryURL is used.
// The returned teardown closes the connection.
func InitDB(dbPath string, primaryURL string, authToken string) (*sql.DB, func(), error) {
	db, dialect, err := open(dbPath, primaryURL, authToken)
	if err != nil {
		return nil, nil, err
	}
	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}

	if err := migrate(db, dialect); err != nil {
		teardown()
		return nil, nil, err
	}
	log.Info("Database initialized successfully")
	return db, teardown, nil
}

func open(dbPath, primaryURL, authToken string) (*sql.DB, string, error) {
	if primaryURL == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err := sql.Open("sqlite3", "file:"+dbPath+"?_foreign_keys=on")
		if err != nil {
			return nil, "", fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == ":memory:" {
			// every new connection would otherwise get its own empty database
			db.SetMaxOpenConns(1)
		}
		return db, "sqlite3", nil
	}

	log.Info("Initializing Turso database", "url", primaryURL)
	db, err := sql.Open("libsql", primaryURL+"?authToken="+authToken)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open db %s: %w", primaryURL, err)
	}
	return db, "turso", nil
}

func migrate(db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	log.Debug("Database schema migrated", "version", version)
	return nil
}

// Package sqlite
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"vitals/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if needed) the metrics database file. WAL mode
// keeps the single writer concurrent with dashboard and analyzer reads.
func Open(dbPath string, log logger.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", dbPath)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database not responding: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Info("sqlite connection established", "path", dbPath)

	return db, nil
}

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"status-page/internal/config"
)

const memoryPath = ":memory:"

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(config *config.Storage) (*SQLiteProvider, error) {
	path := config.SQLite.Path
	if path == "" {
		return nil, fmt.Errorf("sqlite path is not configured")
	}

	if !isMemoryPath(path) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	provider, err := NewSQLProvider(config, "sqlite3", sqliteDSN(path))
	if err != nil {
		return nil, err
	}

	if isMemoryPath(path) {
		// Every connection to :memory: opens a separate database
		provider.db.SetMaxOpenConns(1)
	}

	return &SQLiteProvider{SQLProvider: *provider}, nil
}

func isMemoryPath(path string) bool {
	return path == memoryPath || strings.Contains(path, "mode=memory")
}

func sqliteDSN(path string) string {
	params := "_foreign_keys=on&_busy_timeout=5000"
	if !isMemoryPath(path) {
		params += "&_journal_mode=WAL"
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + params
}

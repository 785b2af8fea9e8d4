// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

// Package database is the catalog store. It persists tools, the capability
// taxonomy, survey runs, the user profile, analyzed projects and
// recommendations in an embedded DuckDB file, and provides full-text search
// over the tool catalog.
//
// Writes are serialized through a single mutex: the orchestrator takes no
// locks of its own, and a url upsert is a read followed by a write.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/logging"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// DB wraps the DuckDB connection and provides catalog access methods.
type DB struct {
	conn *sql.DB
	cfg  *config.DatabaseConfig

	ftsAvailable bool        // fts extension loaded
	ftsDirty     atomic.Bool // tools changed since the index was built
	ftsMu        sync.Mutex

	writeMu sync.Mutex

	now func() time.Time
}

// New opens (creating if needed) the catalog at cfg.Path and applies the schema.
// Use ":memory:" for a throwaway catalog.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database config is required")
	}

	if cfg.Path != ":memory:" {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
			}
		}
	}

	conn, err := sql.Open("duckdb", connectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		cfg:  cfg,
		now:  func() time.Time { return time.Now().UTC() },
	}

	if err := conn.Ping(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if cfg.FullTextSearch {
		db.loadFTS()
	}
	db.ftsDirty.Store(true)

	logging.Info().
		Str("path", cfg.Path).
		Bool("fts", db.ftsAvailable).
		Msg("Catalog store ready")
	return db, nil
}

func connectionString(cfg *config.DatabaseConfig) string {
	maxMemory := cfg.MaxMemory
	if maxMemory == "" {
		maxMemory = "1GB"
	}
	// Extensions are loaded explicitly by loadFTS with a hard timeout.
	s := fmt.Sprintf("%s?access_mode=read_write&max_memory=%s&autoinstall_known_extensions=false&autoload_known_extensions=false",
		cfg.Path, maxMemory)
	if cfg.Threads > 0 {
		s += fmt.Sprintf("&threads=%d", cfg.Threads)
	}
	return s
}

// Close releases the underlying connection.
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Conn exposes the raw connection for tests and one-off maintenance.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// IsFTSAvailable reports whether search uses the fts extension.
func (db *DB) IsFTSAvailable() bool {
	return db.ftsAvailable
}

// SetClockForTesting replaces the timestamp source.
func (db *DB) SetClockForTesting(now func() time.Time) {
	db.now = now
}

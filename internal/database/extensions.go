// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tomtom215/aiscout/internal/logging"
)

// extensionTimeout bounds INSTALL/LOAD. Override with DUCKDB_EXTENSION_TIMEOUT.
func extensionTimeout() time.Duration {
	if s := os.Getenv("DUCKDB_EXTENSION_TIMEOUT"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			return d
		}
	}
	return 30 * time.Second
}

// execWithHardTimeout runs query in a goroutine and gives up after the
// extension timeout. DuckDB CGO calls do not observe context cancellation.
func (db *DB) execWithHardTimeout(query string) error {
	timeout := extensionTimeout()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := db.conn.ExecContext(ctx, query)
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("%q timed out after %v", query, timeout)
	}
}

// loadFTS tries LOAD first (pre-installed extension), then INSTALL+LOAD.
// Search falls back to ILIKE matching when neither works.
func (db *DB) loadFTS() {
	if err := db.execWithHardTimeout("LOAD fts"); err == nil {
		db.ftsAvailable = true
		return
	}
	if err := db.execWithHardTimeout("INSTALL fts"); err != nil {
		logging.Warn().Err(err).Msg("fts extension unavailable, search will use substring matching")
		return
	}
	if err := db.execWithHardTimeout("LOAD fts"); err != nil {
		logging.Warn().Err(err).Msg("fts extension failed to load, search will use substring matching")
		return
	}
	db.ftsAvailable = true
}

// ensureFTSIndex rebuilds the tools index if the catalog changed since the
// last build. DuckDB fts indexes are static snapshots.
func (db *DB) ensureFTSIndex(ctx context.Context) error {
	if !db.ftsAvailable || !db.ftsDirty.Load() {
		return nil
	}
	db.ftsMu.Lock()
	defer db.ftsMu.Unlock()
	if !db.ftsDirty.Load() {
		return nil
	}

	db.writeMu.Lock()
	defer db.writeMu.Unlock()
	_, err := db.conn.ExecContext(ctx,
		`PRAGMA create_fts_index('tools', 'id', 'name', 'description', 'capabilities_text', overwrite=1)`)
	if err != nil {
		return fmt.Errorf("failed to build fts index: %w", err)
	}
	db.ftsDirty.Store(false)
	return nil
}

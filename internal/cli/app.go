// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/goccy/go-json"

	"github.com/tomtom215/aiscout/internal/config"
	"github.com/tomtom215/aiscout/internal/database"
	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/recommend"
	"github.com/tomtom215/aiscout/internal/survey"
	"github.com/tomtom215/aiscout/internal/validation"
)

// BuildInfo is stamped into the binary via ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// Error kinds printed as the prefix of a failed command.
const (
	kindConfig     = "configuration error"
	kindUsage      = "usage error"
	kindInvalid    = "invalid input"
	kindNotFound   = "not found"
	kindConflict   = "survey in progress"
	kindDatabase   = "database error"
	kindUnexpected = "error"
)

// cliError tags an error with the kind shown to the user.
type cliError struct {
	kind string
	err  error
}

func (e *cliError) Error() string { return e.err.Error() }
func (e *cliError) Unwrap() error { return e.err }

func withKind(kind string, err error) error {
	if err == nil {
		return nil
	}
	return &cliError{kind: kind, err: err}
}

// errorKind classifies err for the "kind: message" line on stderr.
func errorKind(err error) string {
	var ce *cliError
	if errors.As(err, &ce) {
		return ce.kind
	}
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		return kindInvalid
	case errors.Is(err, database.ErrNotFound):
		return kindNotFound
	case errors.Is(err, survey.ErrSurveyInProgress):
		return kindConflict
	case errors.Is(err, survey.ErrUnknownSource),
		errors.Is(err, recommend.ErrInvalidProjectPath):
		return kindInvalid
	default:
		return kindUnexpected
	}
}

// App is the state shared by every command: global flags, the loaded
// configuration and a lazily opened catalog.
type App struct {
	ConfigPath string
	LogLevel   string
	JSON       bool

	info   BuildInfo
	cfg    *config.Config
	db     *database.DB
	stdout io.Writer
	stderr io.Writer
}

// setup loads configuration and initializes logging. It runs before every
// command.
func (a *App) setup() error {
	cfg, err := config.Load(a.ConfigPath)
	if err != nil {
		return withKind(kindConfig, err)
	}
	level := cfg.Logging.Level
	if a.LogLevel != "" {
		level = a.LogLevel
	}
	logging.Init(logging.Config{
		Level:     level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    a.stderr,
	})
	a.cfg = cfg
	return nil
}

// DB opens the catalog on first use.
func (a *App) DB() (*database.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.New(&a.cfg.Database)
	if err != nil {
		return nil, withKind(kindDatabase, err)
	}
	a.db = db
	return db, nil
}

// Close releases the catalog if it was opened.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		logging.Error().Err(err).Msg("Failed to close database")
	}
	a.db = nil
}

func (a *App) printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(a.stdout, string(b))
	return err
}

func (a *App) table() *tabwriter.Writer {
	return tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer, info BuildInfo) int {
	app := &App{info: info, stdout: stdout, stderr: stderr}
	defer app.Close()

	root := NewRootCmd(app)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", errorKind(err), err)
		return 1
	}
	return 0
}

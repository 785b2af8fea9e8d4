// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package cli implements the aiscout command line.

Every command is built by a NewXCmd constructor around a shared *App, which
holds the global flags, loads configuration before each command runs, and
opens the DuckDB catalog on first use. Commands print tables by default and
indented JSON with --json.

Failures are printed to stderr as "kind: message" (for example
"not found: project 42: not found") and exit with status 1.
*/
package cli

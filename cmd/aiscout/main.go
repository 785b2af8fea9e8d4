// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package main is the entry point for the aiscout CLI.

Usage:

	aiscout [command]

Available Commands:

	serve         Run the HTTP API and the survey scheduler
	survey        Run a survey now (all enabled sources, or one)
	search        Search the tool catalog
	stats         Show catalog statistics
	runs          Show recent survey runs
	analyze       Analyze a local project's tech stack and AI needs
	projects      List analyzed projects
	recommend     Recommend catalog tools for an analyzed project
	personalized  Recommend tools from your profile
	profile       Read or write your user profile
	version       Print version information

Examples:

	# Fill the catalog from every enabled source
	aiscout survey

	# Find tools for a project
	aiscout analyze ~/code/chatbot
	aiscout recommend 1
*/
package main

import (
	"os"

	"github.com/tomtom215/aiscout/internal/cli"
)

// Version information (set via ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr, cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}))
}

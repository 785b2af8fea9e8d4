// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tomtom215/aiscout/internal/validation"
)

// NewRootCmd builds the aiscout command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "aiscout",
		Short: "Discover AI tools and match them to your projects",
		Long: `aiscout surveys HuggingFace, GitHub, YouTube and arXiv for AI tools,
keeps them in a local DuckDB catalog, and recommends tools for your projects
based on their tech stack and README.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", app.info.Version, app.info.Commit, app.info.Date),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup()
		},
	}

	root.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "Path to config.yaml (default: $CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "Override the configured log level")
	root.PersistentFlags().BoolVarP(&app.JSON, "json", "j", false, "Output as JSON")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return withKind(kindUsage, err)
	})

	root.AddCommand(NewServeCmd(app))
	root.AddCommand(NewSurveyCmd(app))
	root.AddCommand(NewSearchCmd(app))
	root.AddCommand(NewStatsCmd(app))
	root.AddCommand(NewRunsCmd(app))
	root.AddCommand(NewAnalyzeCmd(app))
	root.AddCommand(NewProjectsCmd(app))
	root.AddCommand(NewRecommendCmd(app))
	root.AddCommand(NewPersonalizedCmd(app))
	root.AddCommand(NewProfileCmd(app))
	root.AddCommand(NewVersionCmd(app))

	return root
}

// validate runs the request validator and returns a plain error.
func validate(req any) error {
	if verr := validation.ValidateStruct(req); verr != nil {
		return verr
	}
	return nil
}

// usageArgs wraps a cobra argument check so failures print as usage errors.
func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return withKind(kindUsage, check(cmd, args))
	}
}

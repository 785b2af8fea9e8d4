// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCmd creates the 'version' command. It needs no configuration.
func NewVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  usageArgs(cobra.NoArgs),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.JSON {
				return app.printJSON(map[string]string{
					"version":    app.info.Version,
					"commit":     app.info.Commit,
					"date":       app.info.Date,
					"go_version": runtime.Version(),
				})
			}
			fmt.Fprintf(app.stdout, "aiscout %s (commit: %s, built: %s, %s)\n",
				app.info.Version, app.info.Commit, app.info.Date, runtime.Version())
			return nil
		},
	}
}

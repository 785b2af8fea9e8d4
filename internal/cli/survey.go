// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/aiscout/internal/survey"
	"github.com/tomtom215/aiscout/internal/validation"
)

// NewSurveyCmd creates the 'survey' command, a one-off survey cycle.
func NewSurveyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "survey [source]",
		Short: "Run a survey now (all enabled sources, or one)",
		Long: `Survey the enabled sources once and record each adapter's run.
Sources: huggingface, github, youtube, arxiv.`,
		Example: `  aiscout survey
  aiscout survey arxiv`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := ""
			if len(args) == 1 {
				source = strings.ToLower(strings.TrimSpace(args[0]))
			}
			return runSurvey(cmd.Context(), app, source)
		},
	}
	return cmd
}

func runSurvey(ctx context.Context, app *App, source string) error {
	if err := validate(&validation.TriggerSurveyRequest{Source: source}); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := app.DB()
	if err != nil {
		return err
	}
	orch, err := survey.NewOrchestrator(app.cfg, db)
	if err != nil {
		return withKind(kindConfig, err)
	}

	result, err := orch.RunOnDemand(ctx, source)
	if err != nil {
		return err
	}
	if app.JSON {
		return app.printJSON(result)
	}

	tw := app.table()
	fmt.Fprintln(tw, "SOURCE\tSTATUS\tDISCOVERED\tUPDATED\tDURATION\tERROR")
	for _, a := range result.Adapters {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			a.Source, a.Status, a.Discovered, a.Updated, a.Duration.Round(time.Millisecond), a.Error)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(app.stdout, "\nRun %s: %d succeeded, %d failed in %s\n",
		result.RunID, result.Succeeded(), result.Failed(), result.Duration.Round(time.Millisecond))
	return nil
}

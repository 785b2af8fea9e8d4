// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/validation"
)

// NewSearchCmd creates the 'search' command.
func NewSearchCmd(app *App) *cobra.Command {
	var (
		category   string
		source     string
		openSource string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the tool catalog",
		Example: `  aiscout search "speech recognition"
  aiscout search embeddings --source huggingface --limit 5
  aiscout search agent --open-source true --json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := validation.SearchToolsRequest{
				Query:    args[0],
				Category: category,
				Source:   source,
				Limit:    limit,
			}
			if openSource != "" {
				b, err := strconv.ParseBool(openSource)
				if err != nil {
					return withKind(kindUsage, fmt.Errorf("--open-source must be true or false, got %q", openSource))
				}
				req.OpenSource = &b
			}
			return runSearch(cmd.Context(), app, req)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only tools in this category")
	cmd.Flags().StringVar(&source, "source", "", "Only tools from this source")
	cmd.Flags().StringVar(&openSource, "open-source", "", "Filter by open source (true or false)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum results")

	return cmd
}

func runSearch(ctx context.Context, app *App, req validation.SearchToolsRequest) error {
	if err := validate(&req); err != nil {
		return err
	}
	db, err := app.DB()
	if err != nil {
		return err
	}
	tools, err := db.SearchTools(ctx, req.Query, models.SearchFilters{
		Category:   req.Category,
		Source:     req.Source,
		OpenSource: req.OpenSource,
		Limit:      req.Limit,
	})
	if err != nil {
		return withKind(kindDatabase, err)
	}
	if app.JSON {
		return app.printJSON(nonNil(tools))
	}
	if len(tools) == 0 {
		fmt.Fprintf(app.stdout, "No tools match %q.\n", req.Query)
		return nil
	}
	return printTools(app, tools)
}

func printTools(app *App, tools []*models.Tool) error {
	tw := app.table()
	fmt.Fprintln(tw, "ID\tNAME\tSOURCE\tCATEGORY\tPOPULARITY\tURL")
	for _, t := range tools {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%s\n",
			t.ID, truncate(t.Name, 40), t.Source, t.Category, t.PopularityScore, t.URL)
	}
	return tw.Flush()
}

// NewStatsCmd creates the 'stats' command.
func NewStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), app)
		},
	}
}

func runStats(ctx context.Context, app *App) error {
	db, err := app.DB()
	if err != nil {
		return err
	}
	stats, err := db.GetStats(ctx)
	if err != nil {
		return withKind(kindDatabase, err)
	}
	if app.JSON {
		return app.printJSON(stats)
	}

	last := "never"
	if stats.LastSurveyRun != nil {
		last = stats.LastSurveyRun.Local().Format(time.DateTime)
	}
	fmt.Fprintf(app.stdout, "Tools:              %d\n", stats.TotalTools)
	fmt.Fprintf(app.stdout, "Capabilities:       %d\n", stats.TotalCapabilities)
	fmt.Fprintf(app.stdout, "Successful surveys: %d\n", stats.SuccessfulSurveys)
	fmt.Fprintf(app.stdout, "Last survey:        %s\n", last)

	printCounts(app, "By category", stats.ToolsByCategory)
	printCounts(app, "By source", stats.ToolsBySource)
	return nil
}

// printCounts lists a count map, largest first.
func printCounts(app *App, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintf(app.stdout, "\n%s:\n", title)
	tw := app.table()
	for _, k := range keys {
		fmt.Fprintf(tw, "  %s\t%d\n", k, counts[k])
	}
	_ = tw.Flush()
}

// NewRunsCmd creates the 'runs' command, the survey audit log.
func NewRunsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent survey runs",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(cmd.Context(), app, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

func runRuns(ctx context.Context, app *App, limit int) error {
	if err := validate(&validation.RecentRunsRequest{Limit: limit}); err != nil {
		return err
	}
	db, err := app.DB()
	if err != nil {
		return err
	}
	runs, err := db.GetRecentSurveyRuns(ctx, limit)
	if err != nil {
		return withKind(kindDatabase, err)
	}
	if app.JSON {
		return app.printJSON(nonNil(runs))
	}
	if len(runs) == 0 {
		fmt.Fprintln(app.stdout, "No survey runs recorded. Run 'aiscout survey' first.")
		return nil
	}

	tw := app.table()
	fmt.Fprintln(tw, "RUN AT\tSOURCE\tSTATUS\tDISCOVERED\tUPDATED\tDURATION")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.RunAt.Local().Format(time.DateTime), r.Source, r.Status,
			r.ItemsDiscovered, r.ItemsUpdated, r.Duration.Round(time.Millisecond))
	}
	return tw.Flush()
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// truncate shortens s to n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

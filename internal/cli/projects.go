// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/models"
	"github.com/tomtom215/aiscout/internal/recommend"
	"github.com/tomtom215/aiscout/internal/validation"
)

func (a *App) engine() (*recommend.Engine, error) {
	db, err := a.DB()
	if err != nil {
		return nil, err
	}
	engine, err := recommend.NewEngine(recommend.FromAppConfig(a.cfg.Recommend), db,
		logging.With().Str("component", "recommend").Logger())
	if err != nil {
		return nil, withKind(kindConfig, err)
	}
	return engine, nil
}

// NewAnalyzeCmd creates the 'analyze' command.
func NewAnalyzeCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "analyze <path>",
		Short: "Analyze a local project's tech stack and AI needs",
		Example: `  aiscout analyze .
  aiscout analyze ~/code/chatbot --name "Support Bot"`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), app, args[0], name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Project name (default: directory name)")
	return cmd
}

func runAnalyze(ctx context.Context, app *App, path, name string) error {
	if err := validate(&validation.AnalyzeProjectRequest{Path: path, Name: name}); err != nil {
		return err
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	engine, err := app.engine()
	if err != nil {
		return err
	}
	project, err := engine.AnalyzeProject(ctx, path, name)
	if err != nil {
		return err
	}
	if app.JSON {
		return app.printJSON(project)
	}

	fmt.Fprintf(app.stdout, "Project %d: %s\n", project.ID, project.Name)
	fmt.Fprintf(app.stdout, "  Path:       %s\n", project.Path)
	if project.Description != "" {
		fmt.Fprintf(app.stdout, "  About:      %s\n", truncate(project.Description, 100))
	}
	fmt.Fprintf(app.stdout, "  Tech stack: %s\n", listOrNone(project.TechStack))
	fmt.Fprintf(app.stdout, "  AI needs:   %s\n", listOrNone(project.AINeeds))
	fmt.Fprintf(app.stdout, "\nRun 'aiscout recommend %d' for tool suggestions.\n", project.ID)
	return nil
}

// NewProjectsCmd creates the 'projects' command.
func NewProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List analyzed projects",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjects(cmd.Context(), app)
		},
	}
}

func runProjects(ctx context.Context, app *App) error {
	db, err := app.DB()
	if err != nil {
		return err
	}
	projects, err := db.GetAllProjects(ctx)
	if err != nil {
		return withKind(kindDatabase, err)
	}
	if app.JSON {
		return app.printJSON(nonNil(projects))
	}
	if len(projects) == 0 {
		fmt.Fprintln(app.stdout, "No projects analyzed. Run 'aiscout analyze <path>' first.")
		return nil
	}

	tw := app.table()
	fmt.Fprintln(tw, "ID\tNAME\tTECH STACK\tAI NEEDS\tANALYZED")
	for _, p := range projects {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, p.Name, truncate(listOrNone(p.TechStack), 40), listOrNone(p.AINeeds),
			p.LastAnalyzed.Local().Format(time.DateTime))
	}
	return tw.Flush()
}

// NewRecommendCmd creates the 'recommend' command.
func NewRecommendCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "recommend <project-id>",
		Short:   "Recommend catalog tools for an analyzed project",
		Example: `  aiscout recommend 1`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return withKind(kindUsage, fmt.Errorf("project id must be a number, got %q", args[0]))
			}
			return runRecommend(cmd.Context(), app, id)
		},
	}
}

func runRecommend(ctx context.Context, app *App, projectID int64) error {
	if err := validate(&validation.GenerateRecommendationsRequest{ProjectID: projectID}); err != nil {
		return err
	}
	engine, err := app.engine()
	if err != nil {
		return err
	}
	scored, err := engine.GenerateRecommendations(ctx, projectID)
	if err != nil {
		return err
	}
	if app.JSON {
		return app.printJSON(nonNil(scored))
	}
	if len(scored) == 0 {
		fmt.Fprintln(app.stdout, "No tools scored above the relevance threshold.")
		return nil
	}
	return printScored(app, scored)
}

// NewPersonalizedCmd creates the 'personalized' command.
func NewPersonalizedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "personalized",
		Short: "Recommend tools from your profile",
		Long: `Score the catalog against the profile keys interests, skills and
preferred_categories. Set them with 'aiscout profile set'.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPersonalized(cmd.Context(), app)
		},
	}
}

func runPersonalized(ctx context.Context, app *App) error {
	engine, err := app.engine()
	if err != nil {
		return err
	}
	scored, err := engine.Personalized(ctx)
	if err != nil {
		return err
	}
	if app.JSON {
		return app.printJSON(nonNil(scored))
	}
	if len(scored) == 0 {
		fmt.Fprintln(app.stdout, "No matches. Set interests with 'aiscout profile set interests \"nlp, agents\"'.")
		return nil
	}
	return printScored(app, scored)
}

func printScored(app *App, scored []models.ScoredTool) error {
	tw := app.table()
	fmt.Fprintln(tw, "SCORE\tTOOL\tSOURCE\tCATEGORY\tREASON")
	for _, s := range scored {
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%s\t%s\n",
			s.Score, truncate(s.Tool.Name, 40), s.Tool.Source, s.Tool.Category, s.Reason)
	}
	return tw.Flush()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

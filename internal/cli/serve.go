// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/aiscout/internal/api"
	"github.com/tomtom215/aiscout/internal/database"
	"github.com/tomtom215/aiscout/internal/logging"
	"github.com/tomtom215/aiscout/internal/metrics"
	"github.com/tomtom215/aiscout/internal/recommend"
	"github.com/tomtom215/aiscout/internal/supervisor"
	"github.com/tomtom215/aiscout/internal/supervisor/services"
	"github.com/tomtom215/aiscout/internal/survey"
)

var (
	_ api.Catalog     = (*database.DB)(nil)
	_ api.Surveyor    = (*survey.Orchestrator)(nil)
	_ api.Schedule    = (*survey.Scheduler)(nil)
	_ api.Recommender = (*recommend.Engine)(nil)
)

// NewServeCmd creates the 'serve' command: HTTP API plus the daily
// survey scheduler under one supervisor tree.
func NewServeCmd(app *App) *cobra.Command {
	var noScheduler bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the survey scheduler",
		Example: `  aiscout serve
  HTTP_PORT=9000 aiscout serve --no-scheduler`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), app, noScheduler)
		},
	}

	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Serve the API without scheduled surveys")

	return cmd
}

func runServe(ctx context.Context, app *App, noScheduler bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := app.cfg

	metrics.AppInfo.WithLabelValues(app.info.Version, runtime.Version()).Set(1)

	db, err := app.DB()
	if err != nil {
		return err
	}

	orch, err := survey.NewOrchestrator(cfg, db)
	if err != nil {
		return withKind(kindConfig, err)
	}
	engine, err := recommend.NewEngine(recommend.FromAppConfig(cfg.Recommend), db,
		logging.With().Str("component", "recommend").Logger())
	if err != nil {
		return withKind(kindConfig, err)
	}

	deps := api.Deps{Catalog: db, Surveyor: orch, Recommender: engine}
	var sched *survey.Scheduler
	if !noScheduler {
		sched, err = survey.NewScheduler(orch, cfg.Survey.Times, cfg.Location(), cfg.Survey.RunOnStart)
		if err != nil {
			return withKind(kindConfig, err)
		}
		deps.Schedule = sched
	}

	handler, err := api.NewHandler(deps, cfg.Server)
	if err != nil {
		return err
	}
	defer handler.Close()
	orch.OnCycleComplete(handler.OnCycleComplete)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return err
	}
	if sched != nil {
		tree.AddSurveyService(services.NewSchedulerService(sched))
	}
	tree.AddAPIService(services.NewHTTPServerService(api.NewServer(handler, cfg.Server), 10*time.Second))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().
		Str("addr", api.Addr(cfg.Server)).
		Strs("sources", orch.Sources()).
		Strs("survey_times", cfg.Survey.Times).
		Str("timezone", cfg.Location().String()).
		Bool("scheduler", sched != nil).
		Msg("Starting AIScout")

	errCh := tree.ServeBackground(ctx)
	<-ctx.Done()
	logging.Info().Msg("Shutdown signal received, stopping services")

	err = <-errCh
	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logging.Info().Msg("AIScout stopped")
	return nil
}

// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package supervisor runs AIScout's long-lived services under a suture tree.

The serve command builds one SupervisorTree with two child supervisors: the
survey-layer holds the survey scheduler, and api-layer holds the HTTP
server. Each child restarts its own failing services with suture's
threshold and backoff settings. Canceling the root context stops both
layers, waiting up to TreeConfig.ShutdownTimeout for each service.

Supervisor events (restarts, backoff, timeouts) are logged through
sutureslog into the zerolog logger via logging.NewSlogLogger.

	tree, _ := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddSurveyService(services.NewSchedulerService(scheduler))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	err := tree.Serve(ctx)
*/
package supervisor

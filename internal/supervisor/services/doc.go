// AIScout - AI Tool Discovery and Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aiscout

/*
Package services adapts long-running components to suture.Service.

  - HTTPServerService runs the API's *http.Server and shuts it down
    gracefully when its context is canceled.
  - SchedulerService arms the daily survey scheduler, and on cancellation
    disarms it and waits for a running cycle to finish.

Both return ctx.Err() after a requested shutdown, which suture treats as a
normal stop. Any other error makes the supervisor restart the service with
backoff.

	tree.AddSurveyService(services.NewSchedulerService(scheduler))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
*/
package services

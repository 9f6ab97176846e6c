// Package jobs implements background maintenance tasks for the payment API.
//
// Jobs run independently of HTTP request handling and are started and
// stopped from cmd/server:
//
//	sweeper := jobs.NewAttemptSweeper(limiter, cfg.RateLimit.SweepInterval, logger)
//	sweeper.Start()
//	defer sweeper.Stop()
//
// Jobs log errors but don't crash the application.
package jobs

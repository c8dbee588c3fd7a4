// Package jobs provides scheduled background tasks for the order service.
//
// Jobs use github.com/robfig/cron/v3 with six-field expressions (seconds
// first).
//
// # Available Jobs
//
// OrderStateGaugeJob runs CountOrdersByStateQuery on STATE_GAUGE_SCHEDULE
// and publishes the result as the orderservice_orders_stored gauge.
//
// # Usage
//
//	job := jobs.NewOrderStateGaugeJob(countHandler, serviceMetrics, cfg.StateGaugeSchedule, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed refresh is logged with ErrorContext and retried on the next tick.
// A job that fails to start stops the jobs started before it.
package jobs

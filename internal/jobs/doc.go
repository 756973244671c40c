// Package jobs implements background jobs for the SmartWords API.
//
// Jobs run independently of HTTP request handling and follow one shape:
// a constructor taking dependencies and an interval, Start and Stop for the
// ticker loop, and RunOnce for tests or a manual trigger.
//
// # Jobs
//
//   - StoreHealthMonitor: pings the set store and feeds the store_up gauge
//
// # Usage
//
//	monitor := jobs.NewStoreHealthMonitor(jobs.StoreHealthConfig{
//	    Store:    store,
//	    Recorder: m,
//	    Logger:   logger,
//	    Interval: cfg.Store.HealthInterval,
//	})
//	monitor.Start()
//	defer monitor.Stop()
//
// Jobs log errors but never crash the application.
package jobs

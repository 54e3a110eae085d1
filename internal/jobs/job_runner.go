package jobs

import (
	"fmt"
	"time"

	"tesla-rent/internal/config"
	"tesla-rent/internal/logger"
	"tesla-rent/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	rentals service.RentalService
	config  *config.Config
	now     func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(rentals service.RentalService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		rentals: rentals,
		config:  cfg,
		now:     time.Now,
	}
}

// Config returns the configuration the jobs were built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// RunOnce runs the named job immediately
func (jr *JobRunner) RunOnce(jobName string) error {
	switch jobName {
	case "report-open-rentals":
		jr.ReportOpenRentals()
	default:
		return fmt.Errorf("unknown job: %s", jobName)
	}
	return nil
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	log := logger.WithComponent("jobs").With("job", jobName)
	defer func() {
		if r := recover(); r != nil {
			log.Error("Job panicked", "panic", r)
		}
	}()

	log.Info("Starting job")
	jobFunc()
	log.Info("Job completed")
}

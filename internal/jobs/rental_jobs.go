package jobs

import (
	"context"
	"time"

	"tesla-rent/internal/domain"
	"tesla-rent/internal/logger"
)

// ReportOpenRentals logs every open rental that has run longer than the
// configured alert threshold.
func (jr *JobRunner) ReportOpenRentals() {
	jr.runWithRecovery("ReportOpenRentals", func() {
		log := logger.WithComponent("jobs")
		overdue, err := jr.longRunningRentals(context.Background())
		if err != nil {
			log.Error("Failed to list open rentals", "error", err)
			return
		}

		for _, r := range overdue {
			log.Warn("Rental open past alert threshold",
				"rent_id", r.ID,
				"client", r.ClientName,
				"car", r.CarModel,
				"start", r.Start.Format(domain.DisplayTimeLayout),
				"open_hours", int(jr.now().Sub(r.Start).Hours()),
			)
		}
		log.Info("Open rental report", "long_running", len(overdue))
	})
}

func (jr *JobRunner) longRunningRentals(ctx context.Context) ([]domain.RentalInfo, error) {
	open, err := jr.rentals.ListOpenRentals(ctx)
	if err != nil {
		return nil, err
	}

	threshold := time.Duration(jr.config.Scheduler.OpenRentalAlertHours) * time.Hour
	cutoff := jr.now().Add(-threshold)

	var overdue []domain.RentalInfo
	for _, r := range open {
		if r.Start.Before(cutoff) {
			overdue = append(overdue, r)
		}
	}
	return overdue, nil
}

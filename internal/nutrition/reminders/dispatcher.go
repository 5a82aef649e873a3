package reminders

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=dispatcher_mocks_test.go -package=reminders_test

type scheduler interface {
	Schedule(ctx context.Context, schedule Schedule) error
}

type Dispatcher struct {
	scheduler scheduler
	debouncer Debouncer
	metrics   *metrics.Manager
}

func NewDispatcher(scheduler scheduler, debouncer Debouncer, metricsManager *metrics.Manager) *Dispatcher {
	return &Dispatcher{
		scheduler: scheduler,
		debouncer: debouncer,
		metrics:   metricsManager,
	}
}

// Dispatch sends the schedule unless the same plan was scheduled within the
// debounce window. It reports whether the scheduler was called.
func (d *Dispatcher) Dispatch(ctx context.Context, schedule Schedule) (bool, error) {
	allowed, err := d.debouncer.Allow(ctx, schedule.debounceKey())
	if err != nil {
		d.metrics.CounterReminders.WithLabelValues("failed").Inc()
		return false, fmt.Errorf("debounce check: %w", err)
	}
	if !allowed {
		log.Tracef("reminders for plan %d debounced", schedule.PlanID)
		d.metrics.CounterReminders.WithLabelValues("debounced").Inc()
		return false, nil
	}

	if err := d.scheduler.Schedule(ctx, schedule); err != nil {
		d.metrics.CounterReminders.WithLabelValues("failed").Inc()
		// a failed send must not hold the window, the next fetch retries
		if releaseErr := d.debouncer.Release(ctx, schedule.debounceKey()); releaseErr != nil {
			log.Errorf("release debounce window for plan %d: %s", schedule.PlanID, releaseErr)
		}
		return true, fmt.Errorf("schedule reminders: %w", err)
	}

	log.Debugf("scheduled %d reminders for plan %d", len(schedule.Reminders), schedule.PlanID)
	d.metrics.CounterReminders.WithLabelValues("sent").Inc()
	return true, nil
}

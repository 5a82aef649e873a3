package tracking

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/plans"
	"github.com/2beens/dietplan/internal/telemetry/metrics"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=tracker_mocks_test.go -package=tracking_test

type logsRepo interface {
	ListForDate(ctx context.Context, studentID string, date time.Time) ([]DailyLog, error)
	Insert(ctx context.Context, l DailyLog) (int, error)
	Update(ctx context.Context, id int, completed bool) error
}

type planSource interface {
	ActivePlanDetails(ctx context.Context, studentID string) (*plans.Plan, error)
}

const (
	dayStateTTL = 6 * time.Hour
	lockStripes = 64
)

// ErrPersistFailed is returned when a toggle could not be stored. The day
// was reloaded from the store, so the returned state is the stored truth.
var ErrPersistFailed = errors.New("completion was not saved")

var ErrMealNotInPlan = nutrition.NotFound("toggle meal", "meal is not in the active plan")

// Tracker keeps the completion state of recent days in memory. Toggles are
// applied to that state first and persisted after.
type Tracker struct {
	repo  logsRepo
	plans planSource
	days  *cache.Cache
	// toggles for the same student and day persist one at a time
	locks   [lockStripes]sync.Mutex
	metrics *metrics.Manager
}

func NewTracker(repo logsRepo, planSource planSource, metricsManager *metrics.Manager) *Tracker {
	return &Tracker{
		repo:    repo,
		plans:   planSource,
		days:    cache.New(dayStateTTL, 30*time.Minute),
		metrics: metricsManager,
	}
}

func (t *Tracker) lockFor(key string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return &t.locks[h.Sum32()%lockStripes]
}

func (t *Tracker) cached(key string) (DayState, bool) {
	v, found := t.days.Get(key)
	if !found {
		return DayState{}, false
	}
	state, ok := v.(DayState)
	return state, ok
}

func (t *Tracker) reload(ctx context.Context, studentID string, date time.Time) (DayState, error) {
	logs, err := t.repo.ListForDate(ctx, studentID, date)
	if err != nil {
		return DayState{}, err
	}
	state := newDayState(studentID, date, logs)
	t.days.SetDefault(state.key(), state)
	return state, nil
}

// State returns the day state, loading it from the store on a cache miss.
// It includes toggles whose persist is still running.
func (t *Tracker) State(ctx context.Context, studentID string, date time.Time) (DayState, error) {
	date = nutrition.DateOnly(date)
	if state, ok := t.cached(dayKey(studentID, date)); ok {
		return state, nil
	}
	return t.reload(ctx, studentID, date)
}

// Toggle marks a meal done or not done for the student on date.
func (t *Tracker) Toggle(ctx context.Context, studentID string, date time.Time, action Toggle) (_ DayState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracking.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("student.id", studentID),
		attribute.Int("meal.id", action.MealID),
		attribute.Bool("completed", action.Completed),
	)

	if studentID == "" {
		return DayState{}, nutrition.Validation("toggle meal", "student is required")
	}
	if action.MealID <= 0 {
		return DayState{}, nutrition.Validation("toggle meal", "meal is required")
	}

	plan, err := t.plans.ActivePlanDetails(ctx, studentID)
	if err != nil {
		return DayState{}, err
	}
	if !plan.HasMeal(action.MealID) {
		return DayState{}, ErrMealNotInPlan
	}

	date = nutrition.DateOnly(date)
	key := dayKey(studentID, date)
	lock := t.lockFor(key)
	lock.Lock()
	defer lock.Unlock()

	current, err := t.State(ctx, studentID, date)
	if err != nil {
		return DayState{}, err
	}

	next := ApplyOptimistic(current, action)
	t.days.SetDefault(key, next)

	stored, err := t.persist(ctx, next.Logs[action.MealID])
	if err != nil {
		t.metrics.CounterCompletionToggles.WithLabelValues("failed").Inc()
		log.Errorf("persist completion of meal %d for %s on %s: %s", action.MealID, studentID, date.Format(nutrition.DateLayout), err)

		reloaded, reloadErr := t.reload(ctx, studentID, date)
		if reloadErr != nil {
			t.days.Delete(key)
			return DayState{}, multierr.Combine(
				nutrition.Transient("toggle meal", fmt.Errorf("%w: %w", ErrPersistFailed, err)),
				fmt.Errorf("reload day: %w", reloadErr),
			)
		}
		return reloaded, nutrition.Transient("toggle meal", fmt.Errorf("%w: %w", ErrPersistFailed, err))
	}

	// readers may hold next, so the id goes into a fresh copy
	next = next.withLog(stored)
	t.days.SetDefault(key, next)
	t.metrics.CounterCompletionToggles.WithLabelValues("ok").Inc()
	return next, nil
}

// persist writes the log, updating it when it has an id and inserting it
// otherwise. The stored log is returned with its id.
func (t *Tracker) persist(ctx context.Context, l DailyLog) (DailyLog, error) {
	if l.ID > 0 {
		return l, t.repo.Update(ctx, l.ID, l.Completed)
	}

	id, err := t.repo.Insert(ctx, l)
	if err != nil {
		return l, err
	}
	l.ID = id
	return l, nil
}

// Summary aggregates what the student ate on date against the active plan.
// The plan and the day's logs are fetched concurrently.
func (t *Tracker) Summary(ctx context.Context, studentID string, date time.Time) (_ *DailySummary, _ *plans.Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.tracking.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", studentID))

	date = nutrition.DateOnly(date)

	var (
		plan  *plans.Plan
		state DayState
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := t.plans.ActivePlanDetails(gCtx, studentID)
		if nutrition.IsNotFound(err) {
			return nil
		}
		plan = p
		return err
	})
	g.Go(func() error {
		s, err := t.State(gCtx, studentID, date)
		state = s
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	summary := AggregateDay(plan, state)
	return &summary, plan, nil
}

// SummaryFor is Summary as seen by actor: the student or the author of the
// active plan.
func (t *Tracker) SummaryFor(ctx context.Context, actor auth.Identity, studentID string, date time.Time) (*DailySummary, error) {
	if actor.Role == auth.RoleStudent && !actor.Is(studentID) {
		return nil, ErrLogNotFound
	}

	summary, plan, err := t.Summary(ctx, studentID, date)
	if err != nil {
		return nil, err
	}
	if !actor.Is(studentID) && (plan == nil || !actor.Is(plan.PersonalID)) {
		return nil, ErrLogNotFound
	}
	return summary, nil
}

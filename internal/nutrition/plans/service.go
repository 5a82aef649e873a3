package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/foods"
	"github.com/2beens/dietplan/internal/nutrition/reminders"
	"github.com/2beens/dietplan/internal/telemetry/metrics"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=plans_test

type plansRepo interface {
	ActivePlan(ctx context.Context, studentID string) (*Plan, error)
	GetPlan(ctx context.Context, id int) (*Plan, error)
	GetPlanWithMeals(ctx context.Context, id int) (*Plan, error)
	ListPlans(ctx context.Context, studentID string) ([]Plan, error)
	CreatePlan(ctx context.Context, plan Plan, sourcePlanID int) (*Plan, error)
	UpdatePlan(ctx context.Context, plan Plan) error
	SetStatus(ctx context.Context, id int, status Status, endDate *time.Time) error
	DeletePlan(ctx context.Context, id int) error
	ListMeals(ctx context.Context, planID int, day *nutrition.Weekday) ([]Meal, error)
	GetMeal(ctx context.Context, id int) (*Meal, error)
	AddMeal(ctx context.Context, meal Meal) (*Meal, error)
	UpdateMeal(ctx context.Context, meal Meal) error
	DeleteMeal(ctx context.Context, id int) error
	GetItem(ctx context.Context, id int) (*MealItem, error)
	AddItem(ctx context.Context, item MealItem) (*MealItem, error)
	UpdateItem(ctx context.Context, item MealItem) error
	DeleteItem(ctx context.Context, id int) error
	ReplaceDay(ctx context.Context, planID int, day nutrition.Weekday, meals []Meal) ([]Meal, error)
	DeleteDay(ctx context.Context, planID int, day nutrition.Weekday) (int, error)
}

type foodSource interface {
	Get(ctx context.Context, id int, userID string) (*foods.Food, error)
}

type reminderDispatcher interface {
	Dispatch(ctx context.Context, schedule reminders.Schedule) (bool, error)
}

const clipboardTTL = time.Hour

// Service owns the plan rules: one active plan per student, cloning,
// expiration on read, and who may see or edit what.
type Service struct {
	repo      plansRepo
	foods     foodSource
	reminders reminderDispatcher
	clipboard *cache.Cache
	metrics   *metrics.Manager
	// Now is swapped in tests.
	Now func() time.Time
}

func NewService(repo plansRepo, catalog foodSource, dispatcher reminderDispatcher, metricsManager *metrics.Manager) *Service {
	return &Service{
		repo:      repo,
		foods:     catalog,
		reminders: dispatcher,
		clipboard: cache.New(clipboardTTL, 10*time.Minute),
		metrics:   metricsManager,
		Now:       time.Now,
	}
}

func canEdit(actor auth.Identity, p *Plan) bool {
	return actor.Is(p.PersonalID)
}

func canView(actor auth.Identity, p *Plan) bool {
	return canEdit(actor, p) || actor.Is(p.StudentID)
}

// editablePlan loads a plan the actor may change. Plans the actor has no
// rights on look the same as missing ones.
func (s *Service) editablePlan(ctx context.Context, actor auth.Identity, planID int) (*Plan, error) {
	p, err := s.repo.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !canEdit(actor, p) {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

// expire moves an active plan past its end date to completed. Failures are
// logged only; the check runs again on the next read.
func (s *Service) expire(ctx context.Context, p *Plan) {
	if !p.IsExpired(s.Now()) {
		return
	}
	if err := s.repo.SetStatus(ctx, p.ID, StatusCompleted, nil); err != nil {
		log.Errorf("expire plan %d: %s", p.ID, err)
		return
	}
	log.Debugf("plan %d expired, end date %s", p.ID, p.EndDate.Format(nutrition.DateLayout))
	s.metrics.CounterPlanTransitions.WithLabelValues(string(StatusCompleted)).Inc()
	p.Status = StatusCompleted
	p.IsActive = false
}

// activePlan returns the student's active plan after the expiration check.
func (s *Service) activePlan(ctx context.Context, studentID string) (*Plan, error) {
	p, err := s.repo.ActivePlan(ctx, studentID)
	if err != nil {
		return nil, err
	}
	s.expire(ctx, p)
	if p.Status != StatusActive {
		return nil, ErrPlanNotFound
	}
	return p, nil
}

func (s *Service) ensureNoActivePlan(ctx context.Context, studentID string) error {
	_, err := s.activePlan(ctx, studentID)
	switch {
	case err == nil:
		return ErrActivePlanExists
	case errors.Is(err, ErrPlanNotFound):
		return nil
	default:
		return fmt.Errorf("check active plan: %w", err)
	}
}

// CreatePlan creates a plan authored by actor. With sourcePlanID set, the
// meals and items of that plan are copied into the new one.
func (s *Service) CreatePlan(ctx context.Context, actor auth.Identity, plan Plan, sourcePlanID int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", plan.StudentID), attribute.Int("source_plan.id", sourcePlanID))

	const op = "create plan"
	if actor.Role != auth.RolePersonal {
		return nil, nutrition.Validation(op, "only a personal trainer can create plans")
	}

	plan.ID = 0
	plan.Meals = nil
	plan.PersonalID = actor.UserID
	plan.Version = 1
	plan.CreatedAt = s.Now()
	if plan.Status == "" {
		plan.Status = StatusActive
	}
	if plan.Status.IsTerminal() {
		return nil, nutrition.Validation(op, "a new plan must be draft or active")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	if sourcePlanID > 0 {
		source, err := s.repo.GetPlan(ctx, sourcePlanID)
		if err != nil {
			return nil, fmt.Errorf("source plan: %w", err)
		}
		if !canEdit(actor, source) {
			return nil, ErrPlanNotFound
		}
		if source.StudentID == plan.StudentID {
			plan.Version = source.Version + 1
		}
	}

	if plan.Status == StatusActive {
		if err := s.ensureNoActivePlan(ctx, plan.StudentID); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.CreatePlan(ctx, plan, sourcePlanID)
	if err != nil {
		return nil, err
	}

	source := "new"
	if sourcePlanID > 0 {
		source = "clone"
	}
	s.metrics.CounterPlansCreated.WithLabelValues(source).Inc()
	log.Debugf("plan %d created for student %s by %s [%s, v%d]", created.ID, created.StudentID, actor.UserID, source, created.Version)

	return created, nil
}

// GetPlan returns the plan with its meals.
func (s *Service) GetPlan(ctx context.Context, actor auth.Identity, id int) (*Plan, error) {
	p, err := s.repo.GetPlanWithMeals(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, p) {
		return nil, ErrPlanNotFound
	}
	s.expire(ctx, p)
	return p, nil
}

// ListPlans lists the student's plans the actor may see, newest first.
func (s *Service) ListPlans(ctx context.Context, actor auth.Identity, studentID string) ([]Plan, error) {
	all, err := s.repo.ListPlans(ctx, studentID)
	if err != nil {
		return nil, err
	}
	visible := make([]Plan, 0, len(all))
	for i := range all {
		if canView(actor, &all[i]) {
			s.expire(ctx, &all[i])
			visible = append(visible, all[i])
		}
	}
	return visible, nil
}

// UpdatePlan edits the descriptive fields and targets. Status has its own
// transitions.
func (s *Service) UpdatePlan(ctx context.Context, actor auth.Identity, update Plan) (*Plan, error) {
	p, err := s.editablePlan(ctx, actor, update.ID)
	if err != nil {
		return nil, err
	}

	p.Name = update.Name
	p.Description = update.Description
	p.PlanType = update.PlanType
	p.StartDate = update.StartDate
	p.EndDate = update.EndDate
	p.TargetCalories = update.TargetCalories
	p.TargetProtein = update.TargetProtein
	p.TargetCarbs = update.TargetCarbs
	p.TargetFat = update.TargetFat
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdatePlan(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

// ActivatePlan moves a draft plan to active.
func (s *Service) ActivatePlan(ctx context.Context, actor auth.Identity, id int) (*Plan, error) {
	p, err := s.editablePlan(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	switch {
	case p.Status == StatusActive:
		return p, nil
	case p.Status.IsTerminal():
		return nil, nutrition.Invariant("activate plan", "a finished plan cannot be activated again")
	}

	if err := s.ensureNoActivePlan(ctx, p.StudentID); err != nil {
		return nil, err
	}
	if err := s.repo.SetStatus(ctx, p.ID, StatusActive, nil); err != nil {
		return nil, err
	}

	s.metrics.CounterPlanTransitions.WithLabelValues(string(StatusActive)).Inc()
	p.Status = StatusActive
	p.IsActive = true
	return p, nil
}

// FinishPlan ends a plan as completed or finished, stamping today as its
// end date.
func (s *Service) FinishPlan(ctx context.Context, actor auth.Identity, id int, status Status) (*Plan, error) {
	if status == "" {
		status = StatusFinished
	}
	if !status.IsTerminal() {
		return nil, nutrition.Validation("finish plan", "status must be completed or finished")
	}

	p, err := s.editablePlan(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if p.Status.IsTerminal() {
		return p, nil
	}

	endDate := nutrition.DateOnly(s.Now())
	if err := s.repo.SetStatus(ctx, p.ID, status, &endDate); err != nil {
		return nil, err
	}

	s.metrics.CounterPlanTransitions.WithLabelValues(string(status)).Inc()
	p.Status = status
	p.IsActive = false
	p.EndDate = &endDate
	return p, nil
}

// DeletePlan removes the plan with its meals and items.
func (s *Service) DeletePlan(ctx context.Context, actor auth.Identity, id int) error {
	if _, err := s.editablePlan(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.DeletePlan(ctx, id)
}

// StudentPlan is the student's active plan with meals. Reminders are
// scheduled only when the student fetches it themselves.
func (s *Service) StudentPlan(ctx context.Context, actor auth.Identity, studentID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.student_plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if actor.Role == auth.RoleStudent && !actor.Is(studentID) {
		return nil, ErrPlanNotFound
	}

	active, err := s.activePlan(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, active) {
		return nil, ErrPlanNotFound
	}

	p, err := s.repo.GetPlanWithMeals(ctx, active.ID)
	if err != nil {
		return nil, err
	}

	isOwnPlan := actor.Is(p.StudentID)
	span.SetAttributes(attribute.Bool("own_plan", isOwnPlan))
	if isOwnPlan {
		s.scheduleReminders(ctx, p)
	}

	return p, nil
}

// ActivePlanDetails loads the student's active plan with meals. It has no
// side effects besides expiration.
func (s *Service) ActivePlanDetails(ctx context.Context, studentID string) (*Plan, error) {
	active, err := s.activePlan(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetPlanWithMeals(ctx, active.ID)
}

func reminderSchedule(p *Plan) reminders.Schedule {
	schedule := reminders.Schedule{
		PlanID:    p.ID,
		StudentID: p.StudentID,
		Reminders: []reminders.MealReminder{},
	}
	for _, m := range p.Meals {
		if m.MealTime == nil {
			continue
		}
		foodNames := make([]string, 0, len(m.Items))
		for _, item := range m.Items {
			if item.Food != nil {
				foodNames = append(foodNames, item.Food.Name)
			}
		}
		schedule.Reminders = append(schedule.Reminders, reminders.MealReminder{
			MealID:    m.ID,
			MealName:  m.Name,
			MealTime:  *m.MealTime,
			DayOfWeek: int(m.DayOfWeek),
			FoodNames: foodNames,
		})
	}
	return schedule
}

func (s *Service) scheduleReminders(ctx context.Context, p *Plan) {
	if s.reminders == nil {
		return
	}
	if _, err := s.reminders.Dispatch(ctx, reminderSchedule(p)); err != nil {
		log.Errorf("schedule reminders for plan %d: %s", p.ID, err)
	}
}

// checkFoods fails with foods.ErrFoodNotFound when an item points at a
// custom food the plan author did not create.
func (s *Service) checkFoods(ctx context.Context, actor auth.Identity, items ...MealItem) error {
	for _, item := range items {
		if _, err := s.foods.Get(ctx, item.FoodID, actor.UserID); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) AddMeal(ctx context.Context, actor auth.Identity, meal Meal) (*Meal, error) {
	if _, err := s.editablePlan(ctx, actor, meal.PlanID); err != nil {
		return nil, err
	}
	meal.ID = 0
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	for _, item := range meal.Items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	if err := s.checkFoods(ctx, actor, meal.Items...); err != nil {
		return nil, err
	}
	return s.repo.AddMeal(ctx, meal)
}

func (s *Service) UpdateMeal(ctx context.Context, actor auth.Identity, meal Meal) (*Meal, error) {
	existing, err := s.repo.GetMeal(ctx, meal.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.editablePlan(ctx, actor, existing.PlanID); err != nil {
		return nil, ErrMealNotFound
	}
	meal.PlanID = existing.PlanID
	if err := meal.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateMeal(ctx, meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

func (s *Service) DeleteMeal(ctx context.Context, actor auth.Identity, mealID int) error {
	existing, err := s.repo.GetMeal(ctx, mealID)
	if err != nil {
		return err
	}
	if _, err := s.editablePlan(ctx, actor, existing.PlanID); err != nil {
		return ErrMealNotFound
	}
	return s.repo.DeleteMeal(ctx, mealID)
}

func (s *Service) AddItem(ctx context.Context, actor auth.Identity, item MealItem) (*MealItem, error) {
	meal, err := s.repo.GetMeal(ctx, item.MealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.editablePlan(ctx, actor, meal.PlanID); err != nil {
		return nil, ErrMealNotFound
	}
	item.ID = 0
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkFoods(ctx, actor, item); err != nil {
		return nil, err
	}
	return s.repo.AddItem(ctx, item)
}

func (s *Service) UpdateItem(ctx context.Context, actor auth.Identity, item MealItem) (*MealItem, error) {
	existing, err := s.repo.GetItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	meal, err := s.repo.GetMeal(ctx, existing.MealID)
	if err != nil {
		return nil, err
	}
	if _, err := s.editablePlan(ctx, actor, meal.PlanID); err != nil {
		return nil, ErrMealItemNotFound
	}
	item.MealID = existing.MealID
	if err := item.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkFoods(ctx, actor, item); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) DeleteItem(ctx context.Context, actor auth.Identity, itemID int) error {
	existing, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	meal, err := s.repo.GetMeal(ctx, existing.MealID)
	if err != nil {
		return err
	}
	if _, err := s.editablePlan(ctx, actor, meal.PlanID); err != nil {
		return ErrMealItemNotFound
	}
	return s.repo.DeleteItem(ctx, itemID)
}

package plans

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/dietplan/internal/auth"
	"github.com/2beens/dietplan/internal/nutrition"
)

// DaySnapshot is a copied day held in the actor's clipboard until pasted.
type DaySnapshot struct {
	PlanID   int               `json:"planId"`
	Day      nutrition.Weekday `json:"day"`
	Meals    []Meal            `json:"meals"`
	CopiedAt time.Time         `json:"copiedAt"`
}

func clipboardKey(actor auth.Identity) string {
	return "clipboard::" + actor.UserID
}

// dayPlan loads a cyclic plan the actor edits. Unique plans have a single
// shared set of meals, so day operations make no sense there.
func (s *Service) dayPlan(ctx context.Context, actor auth.Identity, planID int, day nutrition.Weekday, op string) (*Plan, error) {
	if !day.IsValid() {
		return nil, nutrition.Validation(op, "day of week must be between 0 and 6")
	}
	p, err := s.editablePlan(ctx, actor, planID)
	if err != nil {
		return nil, err
	}
	if p.PlanType != PlanTypeCyclic {
		return nil, nutrition.Validation(op, "day operations need a cyclic plan")
	}
	return p, nil
}

// CopyDay snapshots the meals of day into the actor's clipboard. Nothing is
// written to the store.
func (s *Service) CopyDay(ctx context.Context, actor auth.Identity, planID int, day nutrition.Weekday) (*DaySnapshot, error) {
	if _, err := s.dayPlan(ctx, actor, planID, day, "copy day"); err != nil {
		return nil, err
	}

	meals, err := s.repo.ListMeals(ctx, planID, &day)
	if err != nil {
		return nil, err
	}

	snapshot := &DaySnapshot{
		PlanID:   planID,
		Day:      day,
		Meals:    make([]Meal, 0, len(meals)),
		CopiedAt: s.Now(),
	}
	for _, m := range meals {
		snapshot.Meals = append(snapshot.Meals, m.clone(0, day))
	}
	s.clipboard.Set(clipboardKey(actor), snapshot, cache.DefaultExpiration)

	s.metrics.CounterDayOperations.WithLabelValues("copy").Inc()
	log.Debugf("day %s of plan %d copied by %s: %d meals", day, planID, actor.UserID, len(meals))

	return snapshot, nil
}

// Copied returns the actor's clipboard, if any.
func (s *Service) Copied(actor auth.Identity) (*DaySnapshot, bool) {
	v, found := s.clipboard.Get(clipboardKey(actor))
	if !found {
		return nil, false
	}
	snapshot, ok := v.(*DaySnapshot)
	return snapshot, ok
}

// PasteDay replaces every meal of day with fresh copies of the clipboard
// meals. Existing meals on day are removed first.
func (s *Service) PasteDay(ctx context.Context, actor auth.Identity, planID int, day nutrition.Weekday) ([]Meal, error) {
	snapshot, ok := s.Copied(actor)
	if !ok {
		return nil, ErrNothingCopied
	}
	if _, err := s.dayPlan(ctx, actor, planID, day, "paste day"); err != nil {
		return nil, err
	}

	meals, err := s.repo.ReplaceDay(ctx, planID, day, snapshot.Meals)
	if err != nil {
		return nil, err
	}
	if meals == nil {
		meals = []Meal{}
	}

	s.metrics.CounterDayOperations.WithLabelValues("paste").Inc()
	log.Debugf("day %s pasted into day %s of plan %d by %s: %d meals", snapshot.Day, day, planID, actor.UserID, len(meals))

	return meals, nil
}

// ClearDay removes all meals of day. Clearing an empty day is a no-op.
func (s *Service) ClearDay(ctx context.Context, actor auth.Identity, planID int, day nutrition.Weekday) (int, error) {
	if _, err := s.dayPlan(ctx, actor, planID, day, "clear day"); err != nil {
		return 0, err
	}

	deleted, err := s.repo.DeleteDay(ctx, planID, day)
	if err != nil {
		return 0, err
	}

	s.metrics.CounterDayOperations.WithLabelValues("clear").Inc()
	log.Debugf("day %s of plan %d cleared by %s: %d meals", day, planID, actor.UserID, deleted)

	return deleted, nil
}

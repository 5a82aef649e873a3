package tracking

import (
	"math"
	"time"

	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/plans"
)

// Progress is consumed as a percentage of target, rounded and capped at 100.
// A target of zero has no progress.
func Progress(consumed, target float64) int {
	if target <= 0 || consumed <= 0 {
		return 0
	}
	p := math.Round(consumed / target * 100)
	if p > 100 {
		return 100
	}
	return int(p)
}

type MacroProgress struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type DailySummary struct {
	StudentID string    `json:"studentId"`
	Date      time.Time `json:"date"`
	// PlanID is zero when the student has no active plan.
	PlanID         int              `json:"planId"`
	Consumed       nutrition.Macros `json:"consumed"`
	Targets        nutrition.Macros `json:"targets"`
	Progress       MacroProgress    `json:"progress"`
	MealsScheduled int              `json:"mealsScheduled"`
	MealsCompleted int              `json:"mealsCompleted"`
}

// AggregateDay sums the items of the meals completed on the state's day.
// Only meals scheduled for that week day count; unique plans schedule all
// their meals every day.
func AggregateDay(plan *plans.Plan, state DayState) DailySummary {
	summary := DailySummary{
		StudentID: state.StudentID,
		Date:      state.Date,
	}
	if plan == nil {
		return summary
	}

	summary.PlanID = plan.ID
	summary.Targets = plan.Targets()

	meals := plan.MealsForDay(nutrition.WeekdayOf(state.Date))
	summary.MealsScheduled = len(meals)
	for _, meal := range meals {
		if !state.IsCompleted(meal.ID) {
			continue
		}
		summary.MealsCompleted++
		summary.Consumed = summary.Consumed.Add(meal.Totals())
	}

	summary.Progress = MacroProgress{
		Calories: Progress(summary.Consumed.Calories, summary.Targets.Calories),
		Protein:  Progress(summary.Consumed.Protein, summary.Targets.Protein),
		Carbs:    Progress(summary.Consumed.Carbs, summary.Targets.Carbs),
		Fat:      Progress(summary.Consumed.Fat, summary.Targets.Fat),
	}
	summary.Consumed = summary.Consumed.Rounded()

	return summary
}

package plans

import (
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/foods"
)

var (
	ErrActivePlanExists = nutrition.Invariant("create plan", "student already has an active plan, finish the current plan first")
	ErrPlanNotFound     = nutrition.NotFound("plan", "plan not found")
	ErrMealNotFound     = nutrition.NotFound("meal", "meal not found")
	ErrMealItemNotFound = nutrition.NotFound("meal item", "meal item not found")
	ErrNothingCopied    = nutrition.Validation("paste day", "no day was copied")
)

type PlanType string

const (
	// PlanTypeUnique plans share one set of meals for every day.
	PlanTypeUnique PlanType = "unique"
	// PlanTypeCyclic plans have an independent set of meals per week day.
	PlanTypeCyclic PlanType = "cyclic"
)

func (t PlanType) IsValid() bool {
	return t == PlanTypeUnique || t == PlanTypeCyclic
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFinished  Status = "finished"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted, StatusFinished:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFinished
}

type Plan struct {
	ID             int        `json:"id"`
	StudentID      string     `json:"studentId"`
	PersonalID     string     `json:"personalId"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	PlanType       PlanType   `json:"planType"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate,omitempty"`
	Status         Status     `json:"status"`
	Version        int        `json:"version"`
	IsActive       bool       `json:"isActive"`
	TargetCalories float64    `json:"targetCalories"`
	TargetProtein  float64    `json:"targetProtein"`
	TargetCarbs    float64    `json:"targetCarbs"`
	TargetFat      float64    `json:"targetFat"`
	CreatedAt      time.Time  `json:"createdAt"`
	Meals          []Meal     `json:"meals,omitempty"`
}

func (p *Plan) Targets() nutrition.Macros {
	return nutrition.Macros{
		Calories: p.TargetCalories,
		Protein:  p.TargetProtein,
		Carbs:    p.TargetCarbs,
		Fat:      p.TargetFat,
	}
}

// IsExpired reports whether an active plan ran past its end date.
func (p *Plan) IsExpired(now time.Time) bool {
	if p.Status != StatusActive || p.EndDate == nil {
		return false
	}
	return nutrition.DateOnly(*p.EndDate).Before(nutrition.DateOnly(now))
}

// MealsForDay returns the meals scheduled on day. Unique plans serve all
// their meals every day.
func (p *Plan) MealsForDay(day nutrition.Weekday) []Meal {
	if p.PlanType == PlanTypeUnique {
		return p.Meals
	}
	var meals []Meal
	for _, m := range p.Meals {
		if m.DayOfWeek == day {
			meals = append(meals, m)
		}
	}
	return meals
}

func (p *Plan) HasMeal(mealID int) bool {
	for _, m := range p.Meals {
		if m.ID == mealID {
			return true
		}
	}
	return false
}

func (p *Plan) Validate() error {
	const op = "validate plan"
	if strings.TrimSpace(p.Name) == "" {
		return nutrition.Validation(op, "name is required")
	}
	if p.StudentID == "" {
		return nutrition.Validation(op, "student is required")
	}
	if p.StartDate.IsZero() {
		return nutrition.Validation(op, "start date is required")
	}
	if !p.PlanType.IsValid() {
		return nutrition.Validation(op, "plan type must be unique or cyclic")
	}
	if !p.Status.IsValid() {
		return nutrition.Validation(op, "unknown status: "+string(p.Status))
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return nutrition.Validation(op, "end date is before start date")
	}
	for _, v := range []float64{p.TargetCalories, p.TargetProtein, p.TargetCarbs, p.TargetFat} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nutrition.Validation(op, "targets must be non-negative numbers")
		}
	}
	return nil
}

var mealTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type Meal struct {
	ID             int                `json:"id"`
	PlanID         int                `json:"planId"`
	DayOfWeek      nutrition.Weekday  `json:"dayOfWeek"`
	MealType       nutrition.MealType `json:"mealType"`
	MealOrder      int                `json:"mealOrder"`
	Name           string             `json:"name"`
	MealTime       *string            `json:"mealTime,omitempty"`
	TargetCalories *float64           `json:"targetCalories,omitempty"`
	Items          []MealItem         `json:"items"`
}

// Totals sums what the meal's items deliver.
func (m Meal) Totals() nutrition.Macros {
	var total nutrition.Macros
	for _, item := range m.Items {
		total = total.Add(item.Macros())
	}
	return total
}

func (m Meal) Validate() error {
	const op = "validate meal"
	if strings.TrimSpace(m.Name) == "" {
		return nutrition.Validation(op, "name is required")
	}
	if !m.DayOfWeek.IsValid() {
		return nutrition.Validation(op, "day of week must be between 0 and 6")
	}
	if !m.MealType.IsValid() {
		return nutrition.Validation(op, "unknown meal type: "+string(m.MealType))
	}
	if m.MealTime != nil && !mealTimeRegex.MatchString(*m.MealTime) {
		return nutrition.Validation(op, "meal time must be HH:MM")
	}
	if m.TargetCalories != nil && (*m.TargetCalories < 0 || math.IsNaN(*m.TargetCalories)) {
		return nutrition.Validation(op, "target calories must not be negative")
	}
	return nil
}

// clone copies the meal for another plan/day. Identities are dropped.
func (m Meal) clone(planID int, day nutrition.Weekday) Meal {
	c := m
	c.ID = 0
	c.PlanID = planID
	c.DayOfWeek = day
	if m.MealTime != nil {
		t := *m.MealTime
		c.MealTime = &t
	}
	if m.TargetCalories != nil {
		tc := *m.TargetCalories
		c.TargetCalories = &tc
	}
	c.Items = make([]MealItem, len(m.Items))
	for i, item := range m.Items {
		item.ID = 0
		item.MealID = 0
		c.Items[i] = item
	}
	return c
}

type MealItem struct {
	ID         int     `json:"id"`
	MealID     int     `json:"mealId"`
	FoodID     int     `json:"foodId"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	OrderIndex int     `json:"orderIndex"`
	// Food is filled on reads.
	Food *foods.Food `json:"food,omitempty"`
}

func (i MealItem) Macros() nutrition.Macros {
	if i.Food == nil {
		return nutrition.Macros{}
	}
	return i.Food.MacrosFor(i.Quantity)
}

func (i MealItem) Validate() error {
	const op = "validate meal item"
	if i.FoodID <= 0 {
		return nutrition.Validation(op, "food is required")
	}
	if !(i.Quantity > 0) || math.IsInf(i.Quantity, 0) {
		return nutrition.Validation(op, "quantity must be positive")
	}
	if strings.TrimSpace(i.Unit) == "" {
		return nutrition.Validation(op, "unit is required")
	}
	return nil
}

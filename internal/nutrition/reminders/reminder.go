// Package reminders hands meal reminder lists to the external notification
// scheduler, at most once per plan within a debounce window.
package reminders

import (
	"context"
	"strconv"
	"time"
)

// MinDebounceWindow is the shortest accepted gap between two scheduling
// calls for the same plan.
const MinDebounceWindow = 5 * time.Second

type MealReminder struct {
	MealID    int      `json:"mealId"`
	MealName  string   `json:"mealName"`
	MealTime  string   `json:"mealTime,omitempty"`
	DayOfWeek int      `json:"dayOfWeek"`
	FoodNames []string `json:"foodNames"`
}

type Schedule struct {
	PlanID    int            `json:"planId"`
	StudentID string         `json:"studentId"`
	Reminders []MealReminder `json:"reminders"`
}

func (s Schedule) debounceKey() string {
	return "plan:" + strconv.Itoa(s.PlanID)
}

type Debouncer interface {
	// Allow reports whether key may proceed now, and if so starts its window.
	Allow(ctx context.Context, key string) (bool, error)
	// Release ends the window of key early.
	Release(ctx context.Context, key string) error
}

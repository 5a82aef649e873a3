package tracking

import (
	"fmt"
	"maps"
	"time"

	"github.com/2beens/dietplan/internal/nutrition"
)

var ErrLogNotFound = nutrition.NotFound("daily log", "daily log not found")

// DailyLog is the completion record of one meal on one calendar day.
type DailyLog struct {
	ID          int       `json:"id"`
	StudentID   string    `json:"studentId"`
	MealID      int       `json:"mealId"`
	LoggedDate  time.Time `json:"loggedDate"`
	Completed   bool      `json:"completed"`
	ActualItems *string   `json:"actualItems,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	PhotoURL    *string   `json:"photoUrl,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Toggle sets the completion of a meal.
type Toggle struct {
	MealID    int  `json:"mealId"`
	Completed bool `json:"completed"`
}

// DayState holds the logs of one student on one day, by meal id.
type DayState struct {
	StudentID string           `json:"studentId"`
	Date      time.Time        `json:"date"`
	Logs      map[int]DailyLog `json:"logs"`
}

func newDayState(studentID string, date time.Time, logs []DailyLog) DayState {
	state := DayState{
		StudentID: studentID,
		Date:      nutrition.DateOnly(date),
		Logs:      make(map[int]DailyLog, len(logs)),
	}
	for _, l := range logs {
		state.Logs[l.MealID] = l
	}
	return state
}

func dayKey(studentID string, date time.Time) string {
	return fmt.Sprintf("%s||%s", studentID, date.Format(nutrition.DateLayout))
}

func (s DayState) key() string {
	return dayKey(s.StudentID, s.Date)
}

// IsCompleted reports whether the meal is marked done.
func (s DayState) IsCompleted(mealID int) bool {
	return s.Logs[mealID].Completed
}

func (s DayState) withLog(l DailyLog) DayState {
	next := s
	next.Logs = maps.Clone(s.Logs)
	if next.Logs == nil {
		next.Logs = map[int]DailyLog{}
	}
	next.Logs[l.MealID] = l
	return next
}

// ApplyOptimistic returns the state with the toggle applied. The input state
// is left untouched; a known log keeps its id so the persist updates it.
func ApplyOptimistic(state DayState, action Toggle) DayState {
	l, found := state.Logs[action.MealID]
	if !found {
		l = DailyLog{
			StudentID:  state.StudentID,
			MealID:     action.MealID,
			LoggedDate: state.Date,
		}
	}
	l.Completed = action.Completed
	return state.withLog(l)
}

// Package nutrition holds the vocabulary shared by the diet planning packages:
// macro amounts, macro identifiers, week days and the error taxonomy.
package nutrition

import (
	"fmt"
	"math"
	"time"
)

const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// Macro identifies one of the tracked nutrients.
type Macro string

const (
	MacroCalories Macro = "calories"
	MacroProtein  Macro = "protein"
	MacroCarbs    Macro = "carbs"
	MacroFat      Macro = "fat"
)

// AllMacros is the fixed display order of macros.
var AllMacros = []Macro{MacroCalories, MacroProtein, MacroCarbs, MacroFat}

func (m Macro) String() string {
	return string(m)
}

func (m Macro) IsValid() bool {
	switch m {
	case MacroCalories, MacroProtein, MacroCarbs, MacroFat:
		return true
	default:
		return false
	}
}

// Macros is an amount of energy (kcal) and macronutrients (grams).
type Macros struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

func (m Macros) Get(macro Macro) float64 {
	switch macro {
	case MacroCalories:
		return m.Calories
	case MacroProtein:
		return m.Protein
	case MacroCarbs:
		return m.Carbs
	case MacroFat:
		return m.Fat
	default:
		return 0
	}
}

func (m Macros) Add(other Macros) Macros {
	return Macros{
		Calories: m.Calories + other.Calories,
		Protein:  m.Protein + other.Protein,
		Carbs:    m.Carbs + other.Carbs,
		Fat:      m.Fat + other.Fat,
	}
}

func (m Macros) Scale(factor float64) Macros {
	return Macros{
		Calories: m.Calories * factor,
		Protein:  m.Protein * factor,
		Carbs:    m.Carbs * factor,
		Fat:      m.Fat * factor,
	}
}

// Rounded returns m with every field rounded to the nearest integer.
func (m Macros) Rounded() Macros {
	return Macros{
		Calories: math.Round(m.Calories),
		Protein:  math.Round(m.Protein),
		Carbs:    math.Round(m.Carbs),
		Fat:      math.Round(m.Fat),
	}
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (t MealType) IsValid() bool {
	switch t {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	default:
		return false
	}
}

// Weekday is a canonical week day, 0=Sunday .. 6=Saturday.
type Weekday int

const DaysInWeek = 7

func (d Weekday) IsValid() bool {
	return d >= 0 && d < DaysInWeek
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return time.Weekday(d).String()
}

func WeekdayOf(t time.Time) Weekday {
	return Weekday(t.Weekday())
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, Validation("parse date", fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", s))
	}
	return d, nil
}

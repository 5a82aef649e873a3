// Package macros contains the energy and macro split calculations used to
// derive daily targets from a body profile. Everything here is pure.
package macros

import (
	"math"

	"github.com/2beens/dietplan/internal/nutrition"
)

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

func (s Sex) IsValid() bool {
	return s == SexMale || s == SexFemale
}

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ActivityLevels in increasing order of energy expenditure.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLight,
	ActivityModerate,
	ActivityActive,
	ActivityVeryActive,
}

var activityFactors = map[ActivityLevel]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

func (a ActivityLevel) Factor() (float64, bool) {
	f, ok := activityFactors[a]
	return f, ok
}

type Goal string

const (
	GoalCutting     Goal = "cutting"
	GoalMaintenance Goal = "maintenance"
	GoalBulking     Goal = "bulking"
)

func (g Goal) IsValid() bool {
	_, ok := goalFactors[g]
	return ok
}

var goalFactors = map[Goal]float64{
	GoalCutting:     0.80,
	GoalMaintenance: 1.00,
	GoalBulking:     1.10,
}

// SplitConfig anchors protein to body weight; whatever energy is left is
// shared between fat (FatShare) and carbs (the rest).
type SplitConfig struct {
	ProteinPerKg float64
	FatShare     float64
}

var GoalSplits = map[Goal]SplitConfig{
	GoalCutting:     {ProteinPerKg: 2.2, FatShare: 0.30},
	GoalMaintenance: {ProteinPerKg: 1.8, FatShare: 0.30},
	GoalBulking:     {ProteinPerKg: 2.0, FatShare: 0.25},
}

// Grams is a macro split in whole grams.
type Grams struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

func (g Grams) Calories() int {
	return g.Protein*nutrition.KcalPerGramProtein +
		g.Carbs*nutrition.KcalPerGramCarbs +
		g.Fat*nutrition.KcalPerGramFat
}

// BasalMetabolicRate uses the Mifflin-St Jeor equation.
func BasalMetabolicRate(weightKg, heightCm float64, age int, sex Sex) (float64, error) {
	const op = "basal metabolic rate"
	if weightKg <= 0 || heightCm <= 0 {
		return 0, nutrition.Validation(op, "weight and height must be positive")
	}
	if age < 0 {
		return 0, nutrition.Validation(op, "age must not be negative")
	}
	if !sex.IsValid() {
		return 0, nutrition.Validation(op, "unknown sex: "+string(sex))
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == SexMale {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, nil
}

func TotalDailyEnergyExpenditure(bmr float64, level ActivityLevel) (float64, error) {
	factor, ok := level.Factor()
	if !ok {
		return 0, nutrition.Validation("total daily energy expenditure", "unknown activity level: "+string(level))
	}
	return bmr * factor, nil
}

func TargetCalories(tdee float64, goal Goal) (float64, error) {
	factor, ok := goalFactors[goal]
	if !ok {
		return 0, nutrition.Validation("target calories", "unknown goal: "+string(goal))
	}
	return tdee * factor, nil
}

// FromCalories splits calories into grams. The result's energy stays within
// 2 kcal of calories: protein and fat are floored where needed so the carb
// remainder is never negative, and only carbs carry the rounding error.
func FromCalories(calories, weightKg float64, goal Goal) (Grams, error) {
	const op = "macros from calories"
	split, ok := GoalSplits[goal]
	if !ok {
		return Grams{}, nutrition.Validation(op, "unknown goal: "+string(goal))
	}
	if weightKg <= 0 {
		return Grams{}, nutrition.Validation(op, "weight must be positive")
	}
	if calories <= 0 {
		return Grams{}, nil
	}

	protein := math.Round(weightKg * split.ProteinPerKg)
	if protein*nutrition.KcalPerGramProtein > calories {
		protein = math.Floor(calories / nutrition.KcalPerGramProtein)
	}
	remaining := calories - protein*nutrition.KcalPerGramProtein

	fat := math.Floor(remaining * split.FatShare / nutrition.KcalPerGramFat)
	remaining -= fat * nutrition.KcalPerGramFat

	carbs := math.Round(remaining / nutrition.KcalPerGramCarbs)

	return Grams{
		Protein: int(protein),
		Carbs:   int(carbs),
		Fat:     int(fat),
	}, nil
}

// GramsFromPercentages converts a percentage split of calories to grams,
// each macro rounded on its own.
func GramsFromPercentages(calories float64, proteinPct, carbsPct, fatPct float64) Grams {
	return Grams{
		Protein: int(math.Round(calories * proteinPct / 100 / nutrition.KcalPerGramProtein)),
		Carbs:   int(math.Round(calories * carbsPct / 100 / nutrition.KcalPerGramCarbs)),
		Fat:     int(math.Round(calories * fatPct / 100 / nutrition.KcalPerGramFat)),
	}
}

// Profile is what a student reports about themselves.
type Profile struct {
	WeightKg      float64       `json:"weightKg"`
	HeightCm      float64       `json:"heightCm"`
	Age           int           `json:"age"`
	Sex           Sex           `json:"sex"`
	ActivityLevel ActivityLevel `json:"activityLevel"`
	Goal          Goal          `json:"goal"`
}

type Targets struct {
	BMR            int   `json:"bmr"`
	TDEE           int   `json:"tdee"`
	TargetCalories int   `json:"targetCalories"`
	Macros         Grams `json:"macros"`
}

// ComputeTargets chains the calculations above for one profile.
func ComputeTargets(p Profile) (*Targets, error) {
	bmr, err := BasalMetabolicRate(p.WeightKg, p.HeightCm, p.Age, p.Sex)
	if err != nil {
		return nil, err
	}
	tdee, err := TotalDailyEnergyExpenditure(bmr, p.ActivityLevel)
	if err != nil {
		return nil, err
	}
	target, err := TargetCalories(tdee, p.Goal)
	if err != nil {
		return nil, err
	}
	grams, err := FromCalories(math.Round(target), p.WeightKg, p.Goal)
	if err != nil {
		return nil, err
	}

	return &Targets{
		BMR:            int(math.Round(bmr)),
		TDEE:           int(math.Round(tdee)),
		TargetCalories: int(math.Round(target)),
		Macros:         grams,
	}, nil
}

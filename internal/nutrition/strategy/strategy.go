// Package strategy turns one daily calorie figure into a weekly macro
// schedule for a dietary strategy. All strategy content lives in the
// strategies table below; Compute only reads it.
package strategy

import (
	"math"

	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/macros"
)

type Strategy string

const (
	StrategyStandard            Strategy = "standard"
	StrategyCarbCycling         Strategy = "carb_cycling"
	StrategyKetogenic           Strategy = "ketogenic"
	StrategyIntermittentFasting Strategy = "intermittent_fasting"
)

func (s Strategy) IsValid() bool {
	_, ok := strategies[s]
	return ok
}

type MealTemplate struct {
	Name string             `json:"name"`
	Time string             `json:"time"`
	Type nutrition.MealType `json:"type"`
}

// archetype is one kind of day: how much of the base calories it gets and
// how those calories are split (percentages summing to 100).
type archetype struct {
	label       string
	description string
	multiplier  float64
	proteinPct  float64
	carbsPct    float64
	fatPct      float64
}

type definition struct {
	name        string
	description string
	// week holds the archetype of each day, indexed by weekday (0=Sunday).
	week  [nutrition.DaysInWeek]archetype
	meals []MealTemplate
}

var standardMeals = []MealTemplate{
	{Name: "Café da manhã", Time: "07:00", Type: nutrition.MealBreakfast},
	{Name: "Lanche da manhã", Time: "10:00", Type: nutrition.MealSnack},
	{Name: "Almoço", Time: "12:30", Type: nutrition.MealLunch},
	{Name: "Lanche da tarde", Time: "16:00", Type: nutrition.MealSnack},
	{Name: "Jantar", Time: "19:30", Type: nutrition.MealDinner},
	{Name: "Ceia", Time: "22:00", Type: nutrition.MealSnack},
}

// 8 hour eating window, 12:00 - 20:00
var fastingWindowMeals = []MealTemplate{
	{Name: "Quebra do jejum", Time: "12:00", Type: nutrition.MealLunch},
	{Name: "Lanche", Time: "15:00", Type: nutrition.MealSnack},
	{Name: "Jantar", Time: "18:00", Type: nutrition.MealDinner},
	{Name: "Última refeição", Time: "20:00", Type: nutrition.MealSnack},
}

var (
	balanced = archetype{
		label:       "Balanceado",
		description: "Distribuição equilibrada de macronutrientes",
		multiplier:  1.0,
		proteinPct:  30, carbsPct: 40, fatPct: 30,
	}
	highCarb = archetype{
		label:       "Alto Carboidrato",
		description: "Dia de treino intenso, reposição de glicogênio",
		multiplier:  1.15,
		proteinPct:  25, carbsPct: 50, fatPct: 25,
	}
	lowCarb = archetype{
		label:       "Baixo Carboidrato",
		description: "Dia de descanso ou treino leve",
		multiplier:  0.85,
		proteinPct:  30, carbsPct: 20, fatPct: 50,
	}
	maintenance = archetype{
		label:       "Manutenção",
		description: "Dia de transição com calorias de manutenção",
		multiplier:  1.0,
		proteinPct:  30, carbsPct: 40, fatPct: 30,
	}
	ketogenic = archetype{
		label:       "Cetogênico",
		description: "Gordura alta, carboidrato mínimo para manter a cetose",
		multiplier:  1.0,
		proteinPct:  25, carbsPct: 5, fatPct: 70,
	}
	fasting = archetype{
		label:       "Jejum Intermitente",
		description: "Janela de alimentação de 8 horas",
		multiplier:  1.0,
		proteinPct:  30, carbsPct: 40, fatPct: 30,
	}
)

func everyDay(a archetype) [nutrition.DaysInWeek]archetype {
	var week [nutrition.DaysInWeek]archetype
	for i := range week {
		week[i] = a
	}
	return week
}

var strategies = map[Strategy]definition{
	StrategyStandard: {
		name:        "Padrão",
		description: "Mesmas calorias e macros todos os dias (30/40/30)",
		week:        everyDay(balanced),
		meals:       standardMeals,
	},
	StrategyCarbCycling: {
		name:        "Ciclo de Carboidratos",
		description: "Alterna dias de alto e baixo carboidrato ao longo da semana",
		week: [nutrition.DaysInWeek]archetype{
			maintenance, // Sunday
			highCarb,    // Monday
			lowCarb,     // Tuesday
			highCarb,    // Wednesday
			lowCarb,     // Thursday
			highCarb,    // Friday
			lowCarb,     // Saturday
		},
		meals: standardMeals,
	},
	StrategyKetogenic: {
		name:        "Cetogênica",
		description: "Gordura alta e carboidrato muito baixo todos os dias (25/5/70)",
		week:        everyDay(ketogenic),
		meals:       standardMeals,
	},
	StrategyIntermittentFasting: {
		name:        "Jejum Intermitente",
		description: "Macros balanceados em 4 refeições numa janela de 8 horas",
		week:        everyDay(fasting),
		meals:       fastingWindowMeals,
	},
}

// Strategies lists the known strategies in a stable order.
var Strategies = []Strategy{
	StrategyStandard,
	StrategyCarbCycling,
	StrategyKetogenic,
	StrategyIntermittentFasting,
}

type DayTemplate struct {
	DayOfWeek   nutrition.Weekday `json:"dayOfWeek"`
	Label       string            `json:"label"`
	Description string            `json:"description"`
	// Calories is the exact day figure, base calories times the day multiplier.
	Calories float64        `json:"calories"`
	Protein  int            `json:"protein"`
	Carbs    int            `json:"carbs"`
	Fat      int            `json:"fat"`
	Meals    []MealTemplate `json:"meals"`
}

type AverageMacros struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

type Result struct {
	Strategy       Strategy                          `json:"strategy"`
	Name           string                            `json:"name"`
	Description    string                            `json:"description"`
	AverageMacros  AverageMacros                     `json:"averageMacros"`
	WeeklySchedule [nutrition.DaysInWeek]DayTemplate `json:"weeklySchedule"`
}

type Info struct {
	Strategy    Strategy `json:"strategy"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

func List() []Info {
	infos := make([]Info, 0, len(Strategies))
	for _, s := range Strategies {
		def := strategies[s]
		infos = append(infos, Info{Strategy: s, Name: def.name, Description: def.description})
	}
	return infos
}

// Compute builds the weekly schedule for a strategy. The same input always
// yields the same result.
func Compute(s Strategy, baseCalories float64) (*Result, error) {
	const op = "compute strategy"
	if s == "" {
		return nil, nutrition.Validation(op, "strategy is empty")
	}
	def, ok := strategies[s]
	if !ok {
		return nil, nutrition.Validation(op, "unknown strategy: "+string(s))
	}
	if baseCalories < 0 || math.IsNaN(baseCalories) || math.IsInf(baseCalories, 0) {
		return nil, nutrition.Validation(op, "base calories must be a non-negative number")
	}

	res := &Result{
		Strategy:    s,
		Name:        def.name,
		Description: def.description,
	}

	var sum nutrition.Macros
	for day, a := range def.week {
		calories := baseCalories * a.multiplier
		grams := macros.GramsFromPercentages(calories, a.proteinPct, a.carbsPct, a.fatPct)

		meals := make([]MealTemplate, len(def.meals))
		copy(meals, def.meals)

		res.WeeklySchedule[day] = DayTemplate{
			DayOfWeek:   nutrition.Weekday(day),
			Label:       a.label,
			Description: a.description,
			Calories:    calories,
			Protein:     grams.Protein,
			Carbs:       grams.Carbs,
			Fat:         grams.Fat,
			Meals:       meals,
		}

		sum = sum.Add(nutrition.Macros{
			Calories: calories,
			Protein:  float64(grams.Protein),
			Carbs:    float64(grams.Carbs),
			Fat:      float64(grams.Fat),
		})
	}

	avg := sum.Scale(1.0 / nutrition.DaysInWeek).Rounded()
	res.AverageMacros = AverageMacros{
		Calories: int(avg.Calories),
		Protein:  int(avg.Protein),
		Carbs:    int(avg.Carbs),
		Fat:      int(avg.Fat),
	}

	return res, nil
}

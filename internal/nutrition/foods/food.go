package foods

import (
	"math"
	"strings"
	"time"

	"github.com/2beens/dietplan/internal/nutrition"
)

var ErrFoodNotFound = nutrition.NotFound("food", "food not found")

// Food is a catalog entry. Nutrients are given per ServingSize of ServingUnit.
type Food struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	ServingSize float64   `json:"servingSize"`
	ServingUnit string    `json:"servingUnit"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	IsCustom    bool      `json:"isCustom"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (f Food) Nutrient(m nutrition.Macro) float64 {
	return f.PerServing().Get(m)
}

func (f Food) PerServing() nutrition.Macros {
	return nutrition.Macros{
		Calories: f.Calories,
		Protein:  f.Protein,
		Carbs:    f.Carbs,
		Fat:      f.Fat,
	}
}

// MacrosFor returns what quantity (in the serving unit) of this food delivers.
func (f Food) MacrosFor(quantity float64) nutrition.Macros {
	if f.ServingSize <= 0 {
		return nutrition.Macros{}
	}
	return f.PerServing().Scale(quantity / f.ServingSize)
}

// Validate checks the catalog invariants a food must hold before it is stored.
func (f Food) Validate() error {
	const op = "validate food"
	if strings.TrimSpace(f.Name) == "" {
		return nutrition.Validation(op, "name is required")
	}
	if !(f.ServingSize > 0) || math.IsInf(f.ServingSize, 0) {
		return nutrition.Validation(op, "serving size must be positive")
	}
	if strings.TrimSpace(f.ServingUnit) == "" {
		return nutrition.Validation(op, "serving unit is required")
	}
	for _, m := range nutrition.AllMacros {
		v := f.Nutrient(m)
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nutrition.Validation(op, string(m)+" must be a non-negative number")
		}
	}
	return nil
}

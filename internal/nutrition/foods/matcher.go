package foods

import (
	"math"
	"slices"

	"github.com/2beens/dietplan/internal/nutrition"
)

// Targets are the macro amounts a single serving should deliver. Only
// positive values constrain the match.
type Targets map[nutrition.Macro]float64

// Active returns the constraining macros in display order.
func (t Targets) Active() []nutrition.Macro {
	var active []nutrition.Macro
	for _, m := range nutrition.AllMacros {
		if v, ok := t[m]; ok && v > 0 && !math.IsInf(v, 0) {
			active = append(active, m)
		}
	}
	return active
}

func (t Targets) IsEmpty() bool {
	return len(t.Active()) == 0
}

type Match struct {
	Food     Food    `json:"food"`
	Quantity float64 `json:"quantity"`
	Score    float64 `json:"score"`
	IsMatch  bool    `json:"isMatch"`
}

// MatchFood finds the single quantity of f that best meets every active
// target at once. For each target the exact quantity q = v / f[m] * serving
// is computed; the suggestion is their mean and the score decays with their
// variance. A food lacking a targeted macro can never match.
func MatchFood(f Food, targets Targets) Match {
	active := targets.Active()
	if len(active) == 0 || f.ServingSize <= 0 {
		return Match{Food: f}
	}

	quantities := make([]float64, 0, len(active))
	for _, m := range active {
		density := f.Nutrient(m)
		if density == 0 {
			return Match{Food: f}
		}
		quantities = append(quantities, targets[m]/density*f.ServingSize)
	}

	var sum float64
	for _, q := range quantities {
		sum += q
	}
	avg := sum / float64(len(quantities))

	var sqDiff float64
	for _, q := range quantities {
		sqDiff += (q - avg) * (q - avg)
	}
	variance := sqDiff / float64(len(quantities))

	return Match{
		Food:     f,
		Quantity: avg,
		Score:    100 / (1 + variance/1000),
		IsMatch:  true,
	}
}

// Rank scores every food and orders matches by descending score. Non-matches
// follow in their original order. With no active target the input order is
// kept and nothing is a match.
func Rank(catalog []Food, targets Targets) []Match {
	matches := make([]Match, 0, len(catalog))
	for _, f := range catalog {
		matches = append(matches, MatchFood(f, targets))
	}
	if targets.IsEmpty() {
		return matches
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.IsMatch && !b.IsMatch:
			return -1
		case !a.IsMatch && b.IsMatch:
			return 1
		case !a.IsMatch && !b.IsMatch:
			return 0
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return matches
}

// ResolveQuantity decides the quantity used when a food is picked for a meal.
// A quantity confirmed by the caller always wins. Otherwise a matched food
// brings its suggested quantity, and a non-match has none to offer.
func ResolveQuantity(m Match, confirmed float64) (float64, error) {
	const op = "select food"
	if confirmed < 0 || math.IsNaN(confirmed) || math.IsInf(confirmed, 0) {
		return 0, nutrition.Validation(op, "quantity must be positive")
	}
	if confirmed > 0 {
		return confirmed, nil
	}
	if m.IsMatch && m.Quantity > 0 {
		return m.Quantity, nil
	}
	return 0, nutrition.Validation(op, "quantity is required for a food that does not match the targets")
}

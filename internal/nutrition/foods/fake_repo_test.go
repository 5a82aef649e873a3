package foods_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/2beens/dietplan/internal/nutrition/foods"
)

// fakeRepo is an in-memory foods repo that counts searches.
type fakeRepo struct {
	mu       sync.Mutex
	foods    []foods.Food
	nextID   int
	searches int
	failWith error
}

func newFakeRepo(initial ...foods.Food) *fakeRepo {
	r := &fakeRepo{nextID: 1}
	for _, f := range initial {
		f.ID = r.nextID
		r.nextID++
		r.foods = append(r.foods, f)
	}
	return r
}

func (r *fakeRepo) Search(_ context.Context, params foods.SearchParams) ([]foods.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.searches++
	if r.failWith != nil {
		return nil, r.failWith
	}

	var found []foods.Food
	for _, f := range r.foods {
		if f.IsCustom && f.CreatedBy != params.UserID {
			continue
		}
		if params.Query != "" && !strings.Contains(strings.ToLower(f.Name), strings.ToLower(params.Query)) {
			continue
		}
		if params.Category != "" && f.Category != params.Category {
			continue
		}
		found = append(found, f)
	}
	slices.SortStableFunc(found, func(a, b foods.Food) int {
		return strings.Compare(a.Name, b.Name)
	})
	if params.Limit > 0 && len(found) > params.Limit {
		found = found[:params.Limit]
	}
	return found, nil
}

func (r *fakeRepo) Get(_ context.Context, id int, userID string) (*foods.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.foods {
		if f.ID == id && (!f.IsCustom || f.CreatedBy == userID) {
			return &f, nil
		}
	}
	return nil, foods.ErrFoodNotFound
}

func (r *fakeRepo) Add(_ context.Context, food foods.Food) (*foods.Food, error) {
	if err := food.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	food.ID = r.nextID
	r.nextID++
	r.foods = append(r.foods, food)
	return &food, nil
}

func (r *fakeRepo) Update(_ context.Context, food foods.Food, userID string) error {
	if err := food.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.foods {
		if f.ID == food.ID && f.IsCustom && f.CreatedBy == userID {
			food.IsCustom = true
			food.CreatedBy = userID
			r.foods[i] = food
			return nil
		}
	}
	return foods.ErrFoodNotFound
}

func (r *fakeRepo) Delete(_ context.Context, id int, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, f := range r.foods {
		if f.ID == id && f.IsCustom && f.CreatedBy == userID {
			r.foods = append(r.foods[:i], r.foods[i+1:]...)
			return nil
		}
	}
	return foods.ErrFoodNotFound
}

func (r *fakeRepo) searchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.searches
}

var errStoreDown = errors.New("store down")

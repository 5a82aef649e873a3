package plans

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/nutrition/foods"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

// dbtx is satisfied by both the pool and a transaction.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo stores plans, meals and meal items. The tables carry no cascading
// foreign keys, every delete removes its children in the same transaction.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) inTx(ctx context.Context, op string, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s [begin tx]: %w", op, err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = multierr.Append(err, fmt.Errorf("%s [rollback]: %w", op, rollbackErr))
			}
			return
		}
		if commitErr := tx.Commit(ctx); commitErr != nil {
			// the outcome of a failed commit is unknown to us
			err = nutrition.PartialWrite(op, commitErr)
		}
	}()
	return fn(tx)
}

// partial unique index on diet_plan (student_id) WHERE status = 'active'
const singleActivePlanIndex = "diet_plan_single_active_idx"

const planColumns = `id, student_id, personal_id, name, description, plan_type, start_date, end_date, status, version, is_active, target_calories, target_protein, target_carbs, target_fat, created_at`

func scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	if err := row.Scan(
		&p.ID,
		&p.StudentID,
		&p.PersonalID,
		&p.Name,
		&p.Description,
		&p.PlanType,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.Version,
		&p.IsActive,
		&p.TargetCalories,
		&p.TargetProtein,
		&p.TargetCarbs,
		&p.TargetFat,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) ActivePlan(ctx context.Context, studentID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.active_plan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := scanPlan(r.db.QueryRow(ctx,
		`SELECT `+planColumns+` FROM diet_plan WHERE student_id = $1 AND status = 'active' ORDER BY id DESC LIMIT 1`,
		studentID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("active plan [query row]: %w", err)
	}
	return p, nil
}

func (r *Repo) GetPlan(ctx context.Context, id int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return getPlan(ctx, r.db, id)
}

func getPlan(ctx context.Context, q dbtx, id int) (*Plan, error) {
	p, err := scanPlan(q.QueryRow(ctx, `SELECT `+planColumns+` FROM diet_plan WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan [query row]: %w", err)
	}
	return p, nil
}

// GetPlanWithMeals returns the plan with all its meals, items and foods.
func (r *Repo) GetPlanWithMeals(ctx context.Context, id int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get_with_meals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	p, err := getPlan(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	p.Meals, err = listMeals(ctx, r.db, id, nil)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Repo) ListPlans(ctx context.Context, studentID string) (_ []Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx,
		`SELECT `+planColumns+` FROM diet_plan WHERE student_id = $1 ORDER BY created_at DESC, id DESC`,
		studentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans [query]: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("list plans [rows scan]: %w", err)
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list plans [rows error]: %w", err)
	}
	return plans, nil
}

// CreatePlan inserts the plan and, when sourcePlanID is set, deep copies the
// source plan's meals and items into it. It all happens in one transaction.
func (r *Repo) CreatePlan(ctx context.Context, plan Plan, sourcePlanID int) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("source_plan.id", sourcePlanID))

	err = r.inTx(ctx, "create plan", func(tx pgx.Tx) error {
		var sourceMeals []Meal
		if sourcePlanID > 0 {
			if _, err := getPlan(ctx, tx, sourcePlanID); err != nil {
				return err
			}
			meals, err := listMeals(ctx, tx, sourcePlanID, nil)
			if err != nil {
				return err
			}
			sourceMeals = meals
		}

		err := tx.QueryRow(ctx,
			`
				INSERT INTO diet_plan
					(student_id, personal_id, name, description, plan_type, start_date, end_date, status, version, is_active,
					 target_calories, target_protein, target_carbs, target_fat, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
				RETURNING id
			`,
			plan.StudentID, plan.PersonalID, plan.Name, plan.Description, plan.PlanType,
			plan.StartDate, plan.EndDate, plan.Status, plan.Version, plan.Status == StatusActive,
			plan.TargetCalories, plan.TargetProtein, plan.TargetCarbs, plan.TargetFat, plan.CreatedAt,
		).Scan(&plan.ID)
		if err != nil {
			if pkg.ViolatesUniqueConstraint(err, singleActivePlanIndex) {
				return ErrActivePlanExists
			}
			return fmt.Errorf("insert plan: %w", err)
		}

		plan.Meals = nil
		for _, m := range sourceMeals {
			inserted, err := insertMeal(ctx, tx, m.clone(plan.ID, m.DayOfWeek))
			if err != nil {
				return err
			}
			plan.Meals = append(plan.Meals, *inserted)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	plan.IsActive = plan.Status == StatusActive
	span.SetAttributes(attribute.Int("plan.id", plan.ID), attribute.Int("meals.cloned", len(plan.Meals)))
	return &plan, nil
}

func (r *Repo) UpdatePlan(ctx context.Context, plan Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", plan.ID))

	tag, err := r.db.Exec(ctx,
		`
			UPDATE diet_plan
			SET name = $1, description = $2, plan_type = $3, start_date = $4, end_date = $5,
			    target_calories = $6, target_protein = $7, target_carbs = $8, target_fat = $9
			WHERE id = $10
		`,
		plan.Name, plan.Description, plan.PlanType, plan.StartDate, plan.EndDate,
		plan.TargetCalories, plan.TargetProtein, plan.TargetCarbs, plan.TargetFat,
		plan.ID,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// SetStatus moves the plan to status. is_active always mirrors status.
func (r *Repo) SetStatus(ctx context.Context, id int, status Status, endDate *time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.set_status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id), attribute.String("status", string(status)))

	tag, err := r.db.Exec(ctx,
		`UPDATE diet_plan SET status = $1, is_active = $2, end_date = COALESCE($3, end_date) WHERE id = $4`,
		status, status == StatusActive, endDate, id,
	)
	if err != nil {
		if pkg.ViolatesUniqueConstraint(err, singleActivePlanIndex) {
			return ErrActivePlanExists
		}
		return fmt.Errorf("set plan status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// DeletePlan removes the plan with its meals and items. Daily logs stay.
func (r *Repo) DeletePlan(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.inTx(ctx, "delete plan", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM diet_meal_item WHERE diet_meal_id IN (SELECT id FROM diet_meal WHERE diet_plan_id = $1)`,
			id,
		); err != nil {
			return fmt.Errorf("delete plan items: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM diet_meal WHERE diet_plan_id = $1`, id); err != nil {
			return fmt.Errorf("delete plan meals: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM diet_plan WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete plan: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrPlanNotFound
		}
		return nil
	})
}

const mealColumns = `id, diet_plan_id, day_of_week, meal_type, meal_order, name, meal_time, target_calories`

func scanMeal(row pgx.Row) (*Meal, error) {
	var m Meal
	var day int16
	if err := row.Scan(
		&m.ID,
		&m.PlanID,
		&day,
		&m.MealType,
		&m.MealOrder,
		&m.Name,
		&m.MealTime,
		&m.TargetCalories,
	); err != nil {
		return nil, err
	}
	m.DayOfWeek = nutrition.Weekday(day)
	m.Items = []MealItem{}
	return &m, nil
}

func (r *Repo) ListMeals(ctx context.Context, planID int, day *nutrition.Weekday) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list_meals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID))

	return listMeals(ctx, r.db, planID, day)
}

// listMeals loads meals in display order with their items and foods. A nil
// day loads the whole plan.
func listMeals(ctx context.Context, q dbtx, planID int, day *nutrition.Weekday) ([]Meal, error) {
	var dayParam *int
	if day != nil {
		d := int(*day)
		dayParam = &d
	}

	rows, err := q.Query(ctx,
		`
			SELECT `+mealColumns+`
			FROM diet_meal
			WHERE diet_plan_id = $1 AND ($2::int IS NULL OR day_of_week = $2)
			ORDER BY day_of_week, meal_order, id
		`,
		planID, dayParam,
	)
	if err != nil {
		return nil, fmt.Errorf("list meals [query]: %w", err)
	}
	defer rows.Close()

	var meals []Meal
	mealIndex := map[int]int{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("list meals [rows scan]: %w", err)
		}
		mealIndex[m.ID] = len(meals)
		meals = append(meals, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list meals [rows error]: %w", err)
	}
	rows.Close()

	if len(meals) == 0 {
		return meals, nil
	}

	itemRows, err := q.Query(ctx,
		`
			SELECT i.id, i.diet_meal_id, i.food_id, i.quantity, i.unit, i.order_index,
			       f.id, f.name, f.category, f.serving_size, f.serving_unit, f.calories, f.protein, f.carbs, f.fat,
			       f.is_custom, COALESCE(f.created_by, ''), f.created_at
			FROM diet_meal_item i
			JOIN diet_meal m ON m.id = i.diet_meal_id
			JOIN food f ON f.id = i.food_id
			WHERE m.diet_plan_id = $1 AND ($2::int IS NULL OR m.day_of_week = $2)
			ORDER BY i.diet_meal_id, i.order_index, i.id
		`,
		planID, dayParam,
	)
	if err != nil {
		return nil, fmt.Errorf("list meal items [query]: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item MealItem
		var f foods.Food
		if err := itemRows.Scan(
			&item.ID, &item.MealID, &item.FoodID, &item.Quantity, &item.Unit, &item.OrderIndex,
			&f.ID, &f.Name, &f.Category, &f.ServingSize, &f.ServingUnit, &f.Calories, &f.Protein, &f.Carbs, &f.Fat,
			&f.IsCustom, &f.CreatedBy, &f.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("list meal items [rows scan]: %w", err)
		}
		item.Food = &f
		if idx, ok := mealIndex[item.MealID]; ok {
			meals[idx].Items = append(meals[idx].Items, item)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("list meal items [rows error]: %w", err)
	}

	return meals, nil
}

func (r *Repo) GetMeal(ctx context.Context, id int) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get_meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	m, err := scanMeal(r.db.QueryRow(ctx, `SELECT `+mealColumns+` FROM diet_meal WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meal [query row]: %w", err)
	}
	return m, nil
}

// AddMeal inserts the meal together with any items it carries.
func (r *Repo) AddMeal(ctx context.Context, meal Meal) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.add_meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var added *Meal
	err = r.inTx(ctx, "add meal", func(tx pgx.Tx) error {
		m, err := insertMeal(ctx, tx, meal)
		added = m
		return err
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("meal.id", added.ID))
	return added, nil
}

func insertMeal(ctx context.Context, q dbtx, meal Meal) (*Meal, error) {
	err := q.QueryRow(ctx,
		`
			INSERT INTO diet_meal (diet_plan_id, day_of_week, meal_type, meal_order, name, meal_time, target_calories)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
		meal.PlanID, int(meal.DayOfWeek), meal.MealType, meal.MealOrder, meal.Name, meal.MealTime, meal.TargetCalories,
	).Scan(&meal.ID)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}

	items := meal.Items
	meal.Items = make([]MealItem, 0, len(items))
	for _, item := range items {
		item.MealID = meal.ID
		added, err := insertItem(ctx, q, item)
		if err != nil {
			return nil, err
		}
		meal.Items = append(meal.Items, *added)
	}
	return &meal, nil
}

func (r *Repo) UpdateMeal(ctx context.Context, meal Meal) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.update_meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", meal.ID))

	tag, err := r.db.Exec(ctx,
		`
			UPDATE diet_meal
			SET day_of_week = $1, meal_type = $2, meal_order = $3, name = $4, meal_time = $5, target_calories = $6
			WHERE id = $7
		`,
		int(meal.DayOfWeek), meal.MealType, meal.MealOrder, meal.Name, meal.MealTime, meal.TargetCalories, meal.ID,
	)
	if err != nil {
		return fmt.Errorf("update meal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealNotFound
	}
	return nil
}

func (r *Repo) DeleteMeal(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete_meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	return r.inTx(ctx, "delete meal", func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM diet_meal_item WHERE diet_meal_id = $1`, id); err != nil {
			return fmt.Errorf("delete meal items: %w", err)
		}
		tag, err := tx.Exec(ctx, `DELETE FROM diet_meal WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete meal: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrMealNotFound
		}
		return nil
	})
}

func (r *Repo) GetItem(ctx context.Context, id int) (_ *MealItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get_item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	var item MealItem
	err = r.db.QueryRow(ctx,
		`SELECT id, diet_meal_id, food_id, quantity, unit, order_index FROM diet_meal_item WHERE id = $1`,
		id,
	).Scan(&item.ID, &item.MealID, &item.FoodID, &item.Quantity, &item.Unit, &item.OrderIndex)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMealItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meal item [query row]: %w", err)
	}
	return &item, nil
}

func (r *Repo) AddItem(ctx context.Context, item MealItem) (_ *MealItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.add_item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	added, err := insertItem(ctx, r.db, item)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("item.id", added.ID))
	return added, nil
}

func insertItem(ctx context.Context, q dbtx, item MealItem) (*MealItem, error) {
	err := q.QueryRow(ctx,
		`
			INSERT INTO diet_meal_item (diet_meal_id, food_id, quantity, unit, order_index)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
		item.MealID, item.FoodID, item.Quantity, item.Unit, item.OrderIndex,
	).Scan(&item.ID)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, nutrition.Validation("add meal item", "meal or food does not exist")
		}
		return nil, fmt.Errorf("insert meal item: %w", err)
	}
	return &item, nil
}

func (r *Repo) UpdateItem(ctx context.Context, item MealItem) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.update_item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", item.ID))

	tag, err := r.db.Exec(ctx,
		`UPDATE diet_meal_item SET food_id = $1, quantity = $2, unit = $3, order_index = $4 WHERE id = $5`,
		item.FoodID, item.Quantity, item.Unit, item.OrderIndex, item.ID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nutrition.Validation("update meal item", "food does not exist")
		}
		return fmt.Errorf("update meal item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealItemNotFound
	}
	return nil
}

func (r *Repo) DeleteItem(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete_item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx, `DELETE FROM diet_meal_item WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete meal item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMealItemNotFound
	}
	return nil
}

// ReplaceDay deletes every meal on day and inserts meals in their place,
// in one transaction. The deletes run before any insert.
func (r *Repo) ReplaceDay(ctx context.Context, planID int, day nutrition.Weekday, meals []Meal) (_ []Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.replace_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID), attribute.Int("day", int(day)))

	var inserted []Meal
	err = r.inTx(ctx, "replace day", func(tx pgx.Tx) error {
		if _, err := deleteDay(ctx, tx, planID, day); err != nil {
			return err
		}
		for _, m := range meals {
			added, err := insertMeal(ctx, tx, m.clone(planID, day))
			if err != nil {
				return err
			}
			inserted = append(inserted, *added)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// DeleteDay removes the meals on day with their items and returns how many
// meals were removed.
func (r *Repo) DeleteDay(ctx context.Context, planID int, day nutrition.Weekday) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.delete_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", planID), attribute.Int("day", int(day)))

	var deleted int
	err = r.inTx(ctx, "delete day", func(tx pgx.Tx) error {
		n, err := deleteDay(ctx, tx, planID, day)
		deleted = n
		return err
	})
	return deleted, err
}

func deleteDay(ctx context.Context, q dbtx, planID int, day nutrition.Weekday) (int, error) {
	if _, err := q.Exec(ctx,
		`
			DELETE FROM diet_meal_item
			WHERE diet_meal_id IN (SELECT id FROM diet_meal WHERE diet_plan_id = $1 AND day_of_week = $2)
		`,
		planID, int(day),
	); err != nil {
		return 0, fmt.Errorf("delete day items: %w", err)
	}
	tag, err := q.Exec(ctx, `DELETE FROM diet_meal WHERE diet_plan_id = $1 AND day_of_week = $2`, planID, int(day))
	if err != nil {
		return 0, fmt.Errorf("delete day meals: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

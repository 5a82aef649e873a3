package foods

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/dietplan/internal/nutrition"
	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

const (
	DefaultSearchLimit = 50
	MaxSearchLimit     = 200
)

type SearchParams struct {
	// Query matches name or category, case insensitive.
	Query    string
	Category string
	// UserID makes the user's own custom foods visible next to the shared catalog.
	UserID string
	Limit  int
}

func (p SearchParams) normalized() SearchParams {
	if p.Limit <= 0 {
		p.Limit = DefaultSearchLimit
	}
	if p.Limit > MaxSearchLimit {
		p.Limit = MaxSearchLimit
	}
	return p
}

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const foodColumns = `id, name, category, serving_size, serving_unit, calories, protein, carbs, fat, is_custom, COALESCE(created_by, ''), created_at`

func scanFood(row pgx.Row) (*Food, error) {
	var f Food
	if err := row.Scan(
		&f.ID,
		&f.Name,
		&f.Category,
		&f.ServingSize,
		&f.ServingUnit,
		&f.Calories,
		&f.Protein,
		&f.Carbs,
		&f.Fat,
		&f.IsCustom,
		&f.CreatedBy,
		&f.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *Repo) Search(ctx context.Context, params SearchParams) (_ []Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.foods.search")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	params = params.normalized()
	span.SetAttributes(
		attribute.String("params.query", params.Query),
		attribute.String("params.category", params.Category),
		attribute.Int("params.limit", params.Limit),
	)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT `+foodColumns+`
			FROM food
			WHERE (is_custom = false OR created_by = $3)
			  AND ($1::text = '' OR name ILIKE '%' || $1 || '%' OR category ILIKE '%' || $1 || '%')
			  AND ($2::text = '' OR category = $2)
			ORDER BY name, id
			LIMIT $4
		`,
		params.Query,
		params.Category,
		params.UserID,
		params.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("search foods [query]: %w", err)
	}
	defer rows.Close()

	var foods []Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("search foods [rows scan]: %w", err)
		}
		foods = append(foods, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search foods [rows error]: %w", err)
	}

	span.SetAttributes(attribute.Int("foods.count", len(foods)))
	return foods, nil
}

// Get hides custom foods from everyone but their creator.
func (r *Repo) Get(ctx context.Context, id int, userID string) (_ *Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.foods.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	f, err := scanFood(r.db.QueryRow(
		ctx,
		`SELECT `+foodColumns+` FROM food WHERE id = $1 AND (is_custom = false OR created_by = $2)`,
		id, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get food [query row]: %w", err)
	}
	return f, nil
}

// Add stores a food and returns it with its assigned id.
func (r *Repo) Add(ctx context.Context, food Food) (_ *Food, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.foods.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := food.Validate(); err != nil {
		return nil, err
	}

	var createdBy *string
	if food.CreatedBy != "" {
		createdBy = &food.CreatedBy
	}

	err = r.db.QueryRow(
		ctx,
		`
			INSERT INTO food
				(name, category, serving_size, serving_unit, calories, protein, carbs, fat, is_custom, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`,
		food.Name, food.Category, food.ServingSize, food.ServingUnit,
		food.Calories, food.Protein, food.Carbs, food.Fat,
		food.IsCustom, createdBy, food.CreatedAt,
	).Scan(&food.ID)
	if err != nil {
		return nil, fmt.Errorf("add food: %w", err)
	}

	span.SetAttributes(attribute.Int("food.id", food.ID))
	return &food, nil
}

// Update edits a custom food owned by userID.
func (r *Repo) Update(ctx context.Context, food Food, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.foods.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", food.ID))

	if err := food.Validate(); err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`
			UPDATE food
			SET name = $1, category = $2, serving_size = $3, serving_unit = $4,
			    calories = $5, protein = $6, carbs = $7, fat = $8
			WHERE id = $9 AND is_custom = true AND created_by = $10
		`,
		food.Name, food.Category, food.ServingSize, food.ServingUnit,
		food.Calories, food.Protein, food.Carbs, food.Fat,
		food.ID, userID,
	)
	if err != nil {
		return fmt.Errorf("update food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFoodNotFound
	}
	return nil
}

// Delete removes a custom food owned by userID.
func (r *Repo) Delete(ctx context.Context, id int, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.foods.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM food WHERE id = $1 AND is_custom = true AND created_by = $2`,
		id, userID,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nutrition.Invariant("delete food", "food is used by a meal item")
		}
		return fmt.Errorf("delete food: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFoodNotFound
	}
	return nil
}

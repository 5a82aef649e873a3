package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/dietplan/internal/telemetry/tracing"
	"github.com/2beens/dietplan/pkg"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

const logColumns = `id, student_id, diet_meal_id, logged_date, completed, actual_items, notes, photo_url, updated_at`

func (r *Repo) ListForDate(ctx context.Context, studentID string, date time.Time) (_ []DailyLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.list_for_date")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("student.id", studentID))

	rows, err := r.db.Query(ctx,
		`SELECT `+logColumns+` FROM daily_log WHERE student_id = $1 AND logged_date = $2 ORDER BY diet_meal_id`,
		studentID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list logs [query]: %w", err)
	}
	defer rows.Close()

	var logs []DailyLog
	for rows.Next() {
		var l DailyLog
		if err := rows.Scan(
			&l.ID,
			&l.StudentID,
			&l.MealID,
			&l.LoggedDate,
			&l.Completed,
			&l.ActualItems,
			&l.Notes,
			&l.PhotoURL,
			&l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("list logs [scan]: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list logs [rows]: %w", err)
	}

	return logs, nil
}

// Insert stores a new log and returns its id. When a log for the same
// student, meal and day already exists, that row is updated instead.
func (r *Repo) Insert(ctx context.Context, l DailyLog) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("meal.id", l.MealID))

	var id int
	err = r.db.QueryRow(ctx,
		`
			INSERT INTO daily_log (student_id, diet_meal_id, logged_date, completed, actual_items, notes, photo_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id
		`,
		l.StudentID, l.MealID, l.LoggedDate, l.Completed, l.ActualItems, l.Notes, l.PhotoURL,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !pkg.IsUniqueViolationError(err) {
		return 0, fmt.Errorf("insert log: %w", err)
	}

	// another request inserted it first
	span.SetAttributes(attribute.Bool("insert.conflict", true))
	err = r.db.QueryRow(ctx,
		`
			UPDATE daily_log SET completed = $4, updated_at = now()
			WHERE student_id = $1 AND diet_meal_id = $2 AND logged_date = $3
			RETURNING id
		`,
		l.StudentID, l.MealID, l.LoggedDate, l.Completed,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrLogNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("insert log [conflict update]: %w", err)
	}
	return id, nil
}

func (r *Repo) Update(ctx context.Context, id int, completed bool) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.tracking.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(ctx,
		`UPDATE daily_log SET completed = $2, updated_at = now() WHERE id = $1`,
		id, completed,
	)
	if err != nil {
		return fmt.Errorf("update log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLogNotFound
	}
	return nil
}

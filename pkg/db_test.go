package pkg

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationError(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: "23505"}
	assert.True(t, IsUniqueViolationError(uniqueErr))
	assert.True(t, IsUniqueViolationError(fmt.Errorf("insert log: %w", uniqueErr)))
	assert.False(t, IsUniqueViolationError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolationError(errors.New("23505")))
	assert.False(t, IsUniqueViolationError(nil))
}

func TestIsForeignKeyViolationError(t *testing.T) {
	assert.True(t, IsForeignKeyViolationError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyViolationError(&pgconn.PgError{Code: "23505"}))
}

func TestViolatesUniqueConstraint(t *testing.T) {
	err := fmt.Errorf("insert plan: %w", &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "diet_plan_single_active_idx",
	})
	assert.True(t, ViolatesUniqueConstraint(err, "diet_plan_single_active_idx"))
	assert.False(t, ViolatesUniqueConstraint(err, "daily_log_student_id_diet_meal_id_logged_date_key"))
	assert.False(t, ViolatesUniqueConstraint(&pgconn.PgError{
		Code:           "23503",
		ConstraintName: "diet_plan_single_active_idx",
	}, "diet_plan_single_active_idx"))
}

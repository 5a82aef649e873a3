package testing

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/2beens/dietplan/internal/db"
)

// GetDBPool connects to the postgres named by POSTGRES_HOST, POSTGRES_PORT,
// POSTGRES_DB and POSTGRES_PASS, applies the schema and empties every table.
func GetDBPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	params := db.NewDBPoolParams{
		DBHost:     envOr("POSTGRES_HOST", "localhost"),
		DBPort:     envOr("POSTGRES_PORT", "5432"),
		DBName:     envOr("POSTGRES_DB", "dietplan"),
		DBUser:     envOr("POSTGRES_USER", "postgres"),
		DBPassword: envOr("POSTGRES_PASS", ""),
	}
	t.Logf("using postgres: %s:%s/%s", params.DBHost, params.DBPort, params.DBName)

	dbPool, err := db.NewDBPool(ctx, params)
	require.NoError(t, err)
	t.Cleanup(dbPool.Close)

	require.NoError(t, db.Migrate(ctx, dbPool))
	require.NoError(t, TruncateAll(ctx, dbPool))

	return dbPool
}

func TruncateAll(ctx context.Context, dbPool *pgxpool.Pool) error {
	_, err := dbPool.Exec(ctx, `TRUNCATE daily_log, diet_meal_item, diet_meal, diet_plan, food RESTART IDENTITY`)
	return err
}

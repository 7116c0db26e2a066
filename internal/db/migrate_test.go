package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/goaltrack/internal/db"
	"github.com/templui/goaltrack/internal/db/dbtest"
)

func TestRunMigrations_CreatesTables(t *testing.T) {
	database := dbtest.New(t)

	for _, table := range []string{"users", "goals", "goal_progress"} {
		var count int
		err := database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = $1`, table)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s", table)
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	database := dbtest.New(t)
	require.NoError(t, db.RunMigrations(context.Background(), database.DB, db.DriverSQLite))
}

func TestMigrateDown_DropsLatest(t *testing.T) {
	database := dbtest.New(t)
	ctx := context.Background()

	require.NoError(t, db.MigrateDown(ctx, database.DB, db.DriverSQLite))

	var count int
	err := database.Get(&count, `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'goal_progress'`)
	require.NoError(t, err)
	assert.Zero(t, count)
}

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db, _, cleanupFunc := SetupTestDB(t)
	t.Cleanup(cleanupFunc)

	// SetupTestDB already applied the initial migration; verify the seeded
	// policy exists, roll everything back, and reapply.
	var enabled bool
	err := db.QueryRow(ctx, `
		SELECT enabled FROM sync_policies WHERE sync_type = 'azure_ad_sync'`).Scan(&enabled)
	require.NoError(t, err)
	assert.False(t, enabled, "seeded policy must ship disabled")

	err = MigrateDown(ctx, db)
	assert.NoError(t, err)

	var tableCount int
	err = db.QueryRow(ctx, `
		SELECT COUNT(*) FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_name IN ('mirror_users', 'sync_policies', 'sync_run_logs', 'scheduler_logs')`).
		Scan(&tableCount)
	require.NoError(t, err)
	assert.Equal(t, 0, tableCount)

	err = MigrateUp(ctx, db)
	assert.NoError(t, err)

	err = db.QueryRow(ctx, `
		SELECT enabled FROM sync_policies WHERE sync_type = 'azure_ad_sync'`).Scan(&enabled)
	assert.NoError(t, err)
}

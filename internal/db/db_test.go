package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db"
)

func TestDialector(t *testing.T) {
	for _, engine := range []string{config.EngineMySQL, config.EnginePostgres, config.EngineSQLite} {
		d, err := db.Dialector(&config.Config{DB: config.DB{GormEngine: engine, Host: "localhost", Port: 1}})
		require.NoError(t, err, engine)
		assert.Equal(t, engine, d.Name())
	}

	_, err := db.Dialector(&config.Config{DB: config.DB{GormEngine: "oracle"}})
	require.ErrorIs(t, err, config.ErrUnknownGormEngine)
}

func TestOpenAndMigrateSQLite(t *testing.T) {
	conn, err := db.Open(&config.Config{DB: config.DB{GormEngine: config.EngineSQLite}})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))

	for _, table := range []string{"permissions", "roles", "users", "role_permissions", "user_roles", "user_permissions"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
}

package dsn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db/dsn"
)

func TestCreate(t *testing.T) {
	tests := []struct {
		name string
		db   config.DB
		want string
	}{
		{
			name: "mysql",
			db: config.DB{
				GormEngine: config.EngineMySQL,
				User:       "rbac",
				Password:   "secret",
				Host:       "db",
				Port:       3306,
				Name:       "rbac",
				Extras:     "parseTime=true",
			},
			want: "rbac:secret@tcp(db:3306)/rbac?parseTime=true",
		},
		{
			name: "postgres escapes credentials",
			db: config.DB{
				GormEngine: config.EnginePostgres,
				User:       "rbac",
				Password:   "p@ss word",
				Host:       "db",
				Port:       5432,
				Name:       "rbac",
				Extras:     "sslmode=disable",
			},
			want: "postgres://rbac:p%40ss%20word@db:5432/rbac?sslmode=disable",
		},
		{
			name: "sqlite file",
			db:   config.DB{GormEngine: config.EngineSQLite, Path: "./rbac.db"},
			want: "./rbac.db",
		},
		{
			name: "sqlite defaults to memory",
			db:   config.DB{GormEngine: config.EngineSQLite},
			want: ":memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dsn.Create(&config.Config{DB: tt.db}))
		})
	}
}

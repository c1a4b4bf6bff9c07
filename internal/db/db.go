// Package db opens the gorm connection for the configured engine and migrates the schema.
package db

import (
	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	gormmysql "gorm.io/driver/mysql"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/db/dsn"
	"github.com/rbac-admin/rbac-admin/internal/db/models"
	gormadapter "github.com/rbac-admin/rbac-admin/internal/logger/adapter/gorm"
)

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DB.GormEngine {
	case config.EngineMySQL:
		return gormmysql.Open(dsn.MySQL(&cfg.DB)), nil
	case config.EnginePostgres:
		return gormpostgres.Open(dsn.Postgres(&cfg.DB)), nil
	case config.EngineSQLite:
		return sqlite.Open(dsn.SQLite(&cfg.DB)), nil
	default:
		return nil, errors.Wrap(config.ErrUnknownGormEngine, cfg.DB.GormEngine)
	}
}

// GormConfig is shared by every connection, tests included.
// TranslateError lets the drivers report unique violations as gorm.ErrDuplicatedKey.
func GormConfig(logSQL bool) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         gormadapter.New(log.Logger, logSQL),
	}
}

// Open connects to the configured database.
func Open(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := gorm.Open(dialector, GormConfig(cfg.DB.LogSQL))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if cfg.DB.GormEngine == config.EngineSQLite {
		// a single connection keeps ":memory:" databases alive and serializes sqlite writers
		if sqlDB, sqlErr := conn.DB(); sqlErr == nil {
			sqlDB.SetMaxOpenConns(1)
		}
	}

	return conn, nil
}

// Migrate creates or updates all tables, the many2many join tables included.
func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(models.All()...); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

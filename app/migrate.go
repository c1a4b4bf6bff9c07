package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rbac-admin/rbac-admin/internal/daemon"
	"github.com/rbac-admin/rbac-admin/internal/db"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd, seedCmd)
}

var (
	migrateCmd = &cobra.Command{
		Use:     "migrate",
		Short:   "Create or update the database schema",
		PreRunE: loadConfig,
		RunE: func(_ *cobra.Command, _ []string) error {
			conn, err := db.Open(&cfg)
			if err != nil {
				return err
			}

			defer func() {
				if sqlDB, err := conn.DB(); err == nil {
					_ = sqlDB.Close()
				}
			}()

			if err = db.Migrate(conn); err != nil {
				return err
			}

			log.Info().Str("engine", cfg.DB.GormEngine).Msg("schema migrated")

			return nil
		},
	}

	seedCmd = &cobra.Command{
		Use:     "seed",
		Short:   "Migrate the schema and create the built-in permissions, the super admin role and the admin user",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := daemon.Prepare(cmd.Context(), &cfg)
			if err != nil {
				return err
			}

			if sqlDB, err := conn.DB(); err == nil {
				_ = sqlDB.Close()
			}

			log.Info().Msg("database seeded")

			return nil
		},
	}
)

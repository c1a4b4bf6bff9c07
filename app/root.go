// Package app implements the main application commands.
package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rbac-admin/rbac-admin/internal/config"
	"github.com/rbac-admin/rbac-admin/internal/logger"
)

var (
	configPath string        // Path to the configuration directory
	cfg        config.Config // configuration loaded by loadConfig
)

var rootCmd = &cobra.Command{
	Use:   "rbac-admin",
	Short: "rbac-admin manages users, roles and permissions",
	Long: `rbac-admin is a JSON admin API for role based access control.
Users get permissions through roles and direct grants; every admin action is checked
against the effective permission set of the signed in user.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "directory holding main.toml")
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error

	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	if err = logger.Init(cfg.Log); err != nil {
		return err
	}

	log.Debug().Str("path", configPath).Msg("configuration loaded")

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

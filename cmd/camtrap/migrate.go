package main

import (
	"fmt"

	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := store.Migrate(cmd.Context(), viper.GetString(constants.ViperDatabaseURL)); err != nil {
				return fmt.Errorf("store.Migrate: %w", err)
			}

			logger.Infof(cmd.Context(), "migrations applied")
			return nil
		},
	}
}

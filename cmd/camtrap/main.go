package main

import (
	"os"

	"github.com/ougirez/camtrap/internal/pkg/config"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "camtrap",
		Short:         "Camera-trap annotation ingestion and occurrence statistics",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(configPath); err != nil {
				return err
			}
			return logger.Init(viper.GetString(constants.ViperLogLevel), viper.GetString(constants.ViperLogMode))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file (yaml)")
	cmd.AddCommand(serveCmd(), migrateCmd())

	return cmd
}

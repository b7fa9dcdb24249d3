package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/camtrap/internal/api"
	"github.com/ougirez/camtrap/internal/pkg/config"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/ougirez/camtrap/internal/pkg/store"
	"github.com/ougirez/camtrap/internal/pkg/store/xpgx"
	"github.com/ougirez/camtrap/internal/service/synonym"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pool, err := xpgx.Connect(ctx, viper.GetString(constants.ViperDatabaseURL))
			if err != nil {
				return fmt.Errorf("xpgx.Connect: %w", err)
			}
			defer pool.Close()

			table, err := config.SynonymTable()
			if err != nil {
				return err
			}

			st := store.NewStore(pool)
			opts := api.OptionsFromViper()
			svc, err := api.NewAPIService(st, synonym.NewResolver(st, table, opts.Locale), opts)
			if err != nil {
				return fmt.Errorf("api.NewAPIService: %w", err)
			}

			go svc.Serve(viper.GetString(constants.ViperHTTPAddr))
			logger.Infof(ctx, "listening on %s, %d synonym groups", viper.GetString(constants.ViperHTTPAddr), len(table))

			<-ctx.Done()

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return svc.Shutdown(shutdownCtx)
		},
	}
}

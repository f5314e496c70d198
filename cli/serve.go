package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"chartd/api"
	"chartd/core/journal"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(opts *globalOpts) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP render service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}
			logger := opts.logger(cfg, "")
			ctx := cmd.Context()

			deps := api.ServerDeps{}
			if cfg.Journal.Enabled {
				db, store, err := journal.Bootstrap(ctx, cfg.Journal, logger)
				if err != nil {
					return err
				}
				defer db.Close()
				deps = api.ServerDeps{
					DB:      db,
					Journal: store,
					Pruner:  journal.NewPruner(store, cfg.Journal.Retention, cfg.Journal.PruneSchedule, logger),
				}
			}

			srv := api.NewServer(cfg, logger, deps)
			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Start()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}
			logger.Printf("shutting down")
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Stop(stopCtx); err != nil {
				logger.Errorf("graceful shutdown: %v", err)
				return err
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides listen_addr")
	return cmd
}

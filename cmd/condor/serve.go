package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/api"
	"github.com/dgnsrekt/gex-condor/internal/gex"
	"github.com/dgnsrekt/gex-condor/internal/server"
)

func serveCmd() *cobra.Command {
	var (
		dataDir    string
		refreshSec int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations over HTTP",
		Long: `Loads every snapshot in the data directory and serves recommendations:
GET /recommend/{ticker} for one-shot JSON, GET /recommend/{ticker}/ws for a
websocket stream. With --refresh and an API key, snapshots are re-fetched
from the live API in the background.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dataDir
			if dir == "" {
				dir = cfg.Data.Directory
			}

			store := gex.NewStore(logger)
			if err := store.LoadDir(dir); err != nil {
				return err
			}

			condorCfg, err := cfg.Condor.ToAnalysis()
			if err != nil {
				return err
			}

			srv := server.NewServer(store, newSelector(), condorCfg,
				cfg.Server.StreamInterval(), logger)
			router := server.NewRouter(srv, logger)

			httpServer := &http.Server{
				Addr:              cfg.Server.Addr(),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx := cmd.Context()

			if refreshSec > 0 {
				client, err := newAPIClient()
				if err != nil {
					return err
				}
				go refreshLoop(ctx, store, client, time.Duration(refreshSec)*time.Second)
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("server listening",
					zap.String("addr", httpServer.Addr),
					zap.Strings("symbols", store.Symbols()))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return httpServer.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "snapshot directory (default from config)")
	cmd.Flags().IntVar(&refreshSec, "refresh", 0, "seconds between live snapshot refreshes (0 disables)")

	return cmd
}

// refreshLoop re-fetches every loaded symbol on an interval. Failures leave
// the previous snapshot in place.
func refreshLoop(ctx context.Context, store *gex.Store, client api.Client, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, symbol := range store.Symbols() {
				snap, err := client.FetchSnapshot(ctx, symbol)
				if err != nil {
					logger.Warn("refresh failed", zap.String("symbol", symbol), zap.Error(err))
					continue
				}
				store.Put(snap)
				logger.Debug("snapshot refreshed",
					zap.String("symbol", symbol),
					zap.Float64("spot", snap.Spot))
			}
		}
	}
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/report"
)

func watchCmd() *cobra.Command {
	var (
		flags    condorFlags
		symbol   string
		dataFile string
		live     bool
		jsonOut  bool
		interval int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-fetch and re-render the recommendation on an interval",
		Long: `Re-reads the snapshot source every interval and prints a fresh
recommendation. Each pass is independent; a failing pass is logged and the
loop keeps going until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			condorCfg, err := condorConfig(cmd, &flags)
			if err != nil {
				return err
			}

			run := func(ctx context.Context) {
				snap, err := loadSnapshot(ctx, symbol, dataFile, live)
				if err != nil {
					logger.Warn("snapshot load failed", zap.Error(err))
					return
				}

				rec, err := newSelector().Select(snap, condorCfg, time.Now())
				if err != nil {
					logger.Warn("no recommendation this pass", zap.Error(err))
					return
				}

				if jsonOut {
					out, err := report.JSON(rec)
					if err != nil {
						logger.Warn("encoding failed", zap.Error(err))
						return
					}
					fmt.Println(string(out))
					return
				}
				fmt.Print(report.Text(rec))
			}

			ctx := cmd.Context()
			run(ctx)

			ticker := time.NewTicker(time.Duration(interval) * time.Second)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					logger.Info("watch stopped")
					return nil
				case <-ticker.C:
					run(ctx)
				}
			}
		},
	}

	registerCondorFlags(cmd, &flags)
	cmd.Flags().StringVar(&symbol, "symbol", "SPX", "underlying symbol")
	cmd.Flags().StringVar(&dataFile, "data", "", "path to a GEX snapshot file (default from config)")
	cmd.Flags().BoolVar(&live, "live", false, "fetch fresh snapshots from the API instead of a file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON instead of the text report")
	cmd.Flags().IntVar(&interval, "interval", 60, "seconds between passes")

	return cmd
}

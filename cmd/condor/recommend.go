package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dgnsrekt/gex-condor/internal/report"
)

func recommendCmd() *cobra.Command {
	var (
		flags    condorFlags
		symbol   string
		dataFile string
		live     bool
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend iron condor strikes from a GEX snapshot",
		Example: `  condor recommend --symbol SPX --data gex_data.json
  condor recommend --symbol SPX --live --risk aggressive --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			condorCfg, err := condorConfig(cmd, &flags)
			if err != nil {
				return err
			}

			snap, err := loadSnapshot(cmd.Context(), symbol, dataFile, live)
			if err != nil {
				return err
			}

			rec, err := newSelector().Select(snap, condorCfg, time.Now())
			if err != nil {
				return err
			}

			if rec.LowConfidence {
				logger.Warn("low confidence recommendation", zap.Strings("warnings", rec.Warnings))
			}

			if jsonOut {
				out, err := report.JSON(rec)
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Print(report.Text(rec))
			return nil
		},
	}

	registerCondorFlags(cmd, &flags)
	cmd.Flags().StringVar(&symbol, "symbol", "SPX", "underlying symbol")
	cmd.Flags().StringVar(&dataFile, "data", "", "path to a GEX snapshot file (default from config)")
	cmd.Flags().BoolVar(&live, "live", false, "fetch a fresh snapshot from the API instead of a file")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output JSON instead of the text report")

	return cmd
}

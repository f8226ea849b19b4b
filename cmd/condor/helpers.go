package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
	"github.com/dgnsrekt/gex-condor/internal/api"
	"github.com/dgnsrekt/gex-condor/internal/gex"
	"github.com/dgnsrekt/gex-condor/internal/market"
)

// condorFlags are the per-command overrides of the configured defaults.
type condorFlags struct {
	risk      string
	wingWidth int
	signMode  string
}

func registerCondorFlags(cmd *cobra.Command, flags *condorFlags) {
	cmd.Flags().StringVar(&flags.risk, "risk", "", "risk profile: conservative, moderate or aggressive")
	cmd.Flags().IntVar(&flags.wingWidth, "wing-width", 0, "width of the condor wings in points")
	cmd.Flags().StringVar(&flags.signMode, "sign-mode", "", "anomalous gex handling: flag or strict")
}

// condorConfig merges config-file defaults with any flags the user set.
func condorConfig(cmd *cobra.Command, flags *condorFlags) (analysis.Config, error) {
	ac, err := cfg.Condor.ToAnalysis()
	if err != nil {
		return analysis.Config{}, err
	}

	if cmd.Flags().Changed("risk") {
		profile, err := analysis.ParseRiskProfile(flags.risk)
		if err != nil {
			return analysis.Config{}, err
		}
		ac.RiskProfile = profile
	}
	if cmd.Flags().Changed("wing-width") {
		ac.WingWidth = flags.wingWidth
	}
	if cmd.Flags().Changed("sign-mode") {
		mode, err := analysis.ParseSignMode(flags.signMode)
		if err != nil {
			return analysis.Config{}, err
		}
		ac.SignMode = mode
	}

	return ac, nil
}

func newSelector() *analysis.Selector {
	return analysis.NewSelector(analysis.BandEstimator{}, market.NewSession(cfg.Market.Timezone), logger)
}

func newAPIClient() (*api.HTTPClient, error) {
	if cfg.API.APIKey == "" {
		return nil, fmt.Errorf("live fetch needs an API key (set GEXCONDOR_API_KEY)")
	}
	return api.NewClient(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.RatePerSecond,
		cfg.API.Timeout(), cfg.API.RetryDelay(), cfg.API.RetryCount, logger), nil
}

// loadSnapshot resolves one snapshot: from an explicit file, from the live
// API when requested, or from the configured data locations.
func loadSnapshot(ctx context.Context, symbol, dataFile string, live bool) (*gex.Snapshot, error) {
	symbol = strings.ToUpper(symbol)

	if live {
		client, err := newAPIClient()
		if err != nil {
			return nil, err
		}
		return client.FetchSnapshot(ctx, symbol)
	}

	path := dataFile
	if path == "" {
		path = cfg.Data.File
	}
	if path == "" {
		path = filepath.Join(cfg.Data.Directory, symbol+".json")
	}
	return gex.LoadFile(path, symbol)
}

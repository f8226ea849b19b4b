package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/dgnsrekt/gex-condor/internal/analysis"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Data    DataConfig    `mapstructure:"data"`
	Condor  CondorConfig  `mapstructure:"condor"`
	Server  ServerConfig  `mapstructure:"server"`
	Market  MarketConfig  `mapstructure:"market"`
	Logging LoggingConfig `mapstructure:"logging"`
}

type APIConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	TimeoutSec    int    `mapstructure:"timeout_sec"`
	RetryCount    int    `mapstructure:"retry_count"`
	RetryDelaySec int    `mapstructure:"retry_delay_sec"`
	RatePerSecond int    `mapstructure:"rate_per_second"`
}

func (c *APIConfig) Timeout() time.Duration    { return time.Duration(c.TimeoutSec) * time.Second }
func (c *APIConfig) RetryDelay() time.Duration { return time.Duration(c.RetryDelaySec) * time.Second }

type DataConfig struct {
	Directory string `mapstructure:"directory"`
	File      string `mapstructure:"file"`
}

type CondorConfig struct {
	RiskProfile     string  `mapstructure:"risk_profile"`
	WingWidth       int     `mapstructure:"wing_width"`
	StrikeIncrement float64 `mapstructure:"strike_increment"`
	MinRangePoints  float64 `mapstructure:"min_range_points"`
	StrongWallGex   float64 `mapstructure:"strong_wall_gex"`
	SignMode        string  `mapstructure:"sign_mode"`
}

// ToAnalysis converts the YAML/env representation into the core config.
func (c *CondorConfig) ToAnalysis() (analysis.Config, error) {
	profile, err := analysis.ParseRiskProfile(c.RiskProfile)
	if err != nil {
		return analysis.Config{}, err
	}
	signMode, err := analysis.ParseSignMode(c.SignMode)
	if err != nil {
		return analysis.Config{}, err
	}
	return analysis.Config{
		RiskProfile:     profile,
		WingWidth:       c.WingWidth,
		StrikeIncrement: c.StrikeIncrement,
		MinRangePoints:  c.MinRangePoints,
		StrongWallGex:   c.StrongWallGex,
		SignMode:        signMode,
	}, nil
}

type ServerConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	StreamIntervalSec int    `mapstructure:"stream_interval_sec"`
}

func (c *ServerConfig) Addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func (c *ServerConfig) StreamInterval() time.Duration {
	return time.Duration(c.StreamIntervalSec) * time.Second
}

type MarketConfig struct {
	Timezone string `mapstructure:"timezone"`
}

type LoggingConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
	Level     string `mapstructure:"level"`
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("api.base_url", "https://api.gexbot.com")
	v.SetDefault("api.timeout_sec", 30)
	v.SetDefault("api.retry_count", 3)
	v.SetDefault("api.retry_delay_sec", 2)
	v.SetDefault("api.rate_per_second", 2)
	v.SetDefault("data.directory", "data")
	v.SetDefault("data.file", "")
	v.SetDefault("condor.risk_profile", string(analysis.Conservative))
	v.SetDefault("condor.wing_width", analysis.DefaultWingWidth)
	v.SetDefault("condor.strike_increment", analysis.DefaultStrikeIncrement)
	v.SetDefault("condor.min_range_points", analysis.DefaultMinRangePoints)
	v.SetDefault("condor.strong_wall_gex", analysis.DefaultStrongWallGex)
	v.SetDefault("condor.sign_mode", string(analysis.SignModeFlag))
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8089)
	v.SetDefault("server.stream_interval_sec", 60)
	v.SetDefault("market.timezone", "America/New_York")
	v.SetDefault("logging.enabled", true)
	v.SetDefault("logging.directory", "logs")
	v.SetDefault("logging.level", "info")

	// Environment variable support
	v.SetEnvPrefix("GEXCONDOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("api.api_key", "GEXCONDOR_API_KEY")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("default")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.Condor.ToAnalysis(); err != nil {
		return err
	}
	if c.Condor.WingWidth <= 0 {
		return fmt.Errorf("condor.wing_width must be positive")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.StreamIntervalSec < 1 {
		return fmt.Errorf("server.stream_interval_sec must be >= 1")
	}
	return nil
}

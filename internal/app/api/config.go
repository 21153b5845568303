package api

import (
	"strings"

	"github.com/spf13/viper"
	"go.temporal.io/sdk/client"
)

// Config carries environment-driven settings for the API process. A .env file
// in the working directory is honored when present; environment variables win.
type Config struct {
	Port              string `mapstructure:"PORT"`
	PostgresDSN       string `mapstructure:"POSTGRES_DSN"`
	TemporalAddress   string `mapstructure:"TEMPORAL_ADDRESS"`
	TemporalNamespace string `mapstructure:"TEMPORAL_NAMESPACE"`
	TemporalDisabled  bool   `mapstructure:"TEMPORAL_DISABLED"`
	MetricsEnabled    bool   `mapstructure:"METRICS_ENABLED"`
}

// LoadConfig reads settings via viper, applying defaults for everything not
// set explicitly.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("TEMPORAL_ADDRESS", client.DefaultHostPort)
	v.SetDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace)
	v.SetDefault("TEMPORAL_DISABLED", false)
	v.SetDefault("METRICS_ENABLED", true)

	// A missing .env file is fine; the environment alone is a valid source.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !isNotExist(err) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	return cfg, nil
}

func isNotExist(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such file")
}

package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the server.
type Config struct {
	DataPath    string `mapstructure:"data_path"`
	ListenAddr  string `mapstructure:"listen_addr"`
	YearColor   string `mapstructure:"year_color"`
	RegionColor string `mapstructure:"region_color"`
}

// Load reads crimeboard.yaml from the working directory when present and
// applies CRIMEBOARD_* environment overrides on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("data_path", "crimes.csv")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("year_color", "royalblue")
	v.SetDefault("region_color", "indianred")

	v.SetConfigName("crimeboard")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("CRIMEBOARD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

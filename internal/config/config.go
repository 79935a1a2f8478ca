package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Port string
	}
	Bank struct {
		// URL of a remote bankd; empty means the ATM runs an in-process bank.
		URL string
	}
	Seed struct {
		Enabled bool
	}
}

// Load reads configuration from environment variables and an optional config file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ATM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("bank.url", "")
	v.SetDefault("seed.enabled", true)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

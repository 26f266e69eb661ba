package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Verifier VerifierConfig `mapstructure:"verifier"`
	Assets   AssetsConfig   `mapstructure:"assets"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Match    MatchConfig    `mapstructure:"match"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
	// PublicBaseURL is the externally reachable base of this service; every
	// post_url in a rendered frame is built on top of it.
	PublicBaseURL string `mapstructure:"public_base_url"`
}

type VerifierConfig struct {
	// BaseURL of the frame action verification service (black box: signed
	// blob in, verified identity + button + URL out).
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type AssetsConfig struct {
	// ImageBaseURL is where the static screen images live; the service only
	// ever references them, it never serves or stores them.
	ImageBaseURL string `mapstructure:"image_base_url"`
}

type WalletConfig struct {
	// ConnectURL is the external wallet-connect destination rendered as a
	// link button; the service assigns no meaning to it.
	ConnectURL string `mapstructure:"connect_url"`
}

type MatchConfig struct {
	// TTL is how long an unresolved lobby may live before the sweeper
	// disposes of it.
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// Load reads configuration from an optional config.yaml in path, with
// environment variables (SERVER_ADDRESS, VERIFIER_BASE_URL, ...) taking
// precedence and baked-in defaults below both.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.address", ":5200")
	v.SetDefault("server.public_base_url", "http://localhost:5200")
	v.SetDefault("verifier.base_url", "")
	v.SetDefault("verifier.api_key", "")
	v.SetDefault("verifier.timeout", 10*time.Second)
	v.SetDefault("assets.image_base_url", "http://localhost:5200/images")
	v.SetDefault("wallet.connect_url", "")
	v.SetDefault("match.ttl", 30*time.Minute)
	v.SetDefault("match.sweep_interval", 1*time.Minute)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A config file is optional; env + defaults carry a deployment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Frames need absolute URLs; a trailing slash would double up when
	// routes are appended.
	config.Server.PublicBaseURL = strings.TrimRight(config.Server.PublicBaseURL, "/")
	config.Assets.ImageBaseURL = strings.TrimRight(config.Assets.ImageBaseURL, "/")

	return &config, nil
}

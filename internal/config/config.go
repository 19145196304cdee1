// Package config loads the slider server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix every environment variable carries, e.g. LOGSLIDER_ADDRESS.
const Prefix = "LOGSLIDER"

// Default configuration values.
const (
	DefaultNetwork           = "tcp"
	DefaultAddress           = "127.0.0.1:50051"
	DefaultMinAmount         = 0.0
	DefaultMaxAmount         = 100000.0
	DefaultSliderSteps       = 100.0
	DefaultDistributorBuffer = 100
)

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Network is the listener network, tcp or unix.
	// Env: LOGSLIDER_NETWORK (default: tcp)
	Network string `envconfig:"NETWORK" default:"tcp"`

	// Address to listen on, a host:port or a socket path.
	// Env: LOGSLIDER_ADDRESS (default: 127.0.0.1:50051)
	Address string `envconfig:"ADDRESS" default:"127.0.0.1:50051"`

	// Configure the slider at startup. When false, clients have to call Configure first.
	// Env: LOGSLIDER_CONFIGURE (default: true)
	Configure bool `envconfig:"CONFIGURE" default:"true"`

	// Env: LOGSLIDER_MIN_AMOUNT (default: 0)
	MinAmount float64 `envconfig:"MIN_AMOUNT" default:"0"`

	// Env: LOGSLIDER_MAX_AMOUNT (default: 100000)
	MaxAmount float64 `envconfig:"MAX_AMOUNT" default:"100000"`

	// Env: LOGSLIDER_SLIDER_STEPS (default: 100)
	SliderSteps float64 `envconfig:"SLIDER_STEPS" default:"100"`

	// DistributorBuffer sizes the event channel of every subscriber.
	// Env: LOGSLIDER_DISTRIBUTOR_BUFFER (default: 100)
	DistributorBuffer int `envconfig:"DISTRIBUTOR_BUFFER" default:"100"`
}

// LoadFromEnv loads the configuration from LOGSLIDER_ prefixed environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file.
// If path is empty, it loads from ".env" in the current directory.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// LoadConfig loads the .env file (optional) and then the environment. Variables already set in the
// environment win over the file.
func LoadConfig(envPath string) (EnvConfig, error) {
	if err := LoadDotEnv(envPath); err != nil {
		return EnvConfig{}, err
	}
	cfg, err := LoadFromEnv()
	if err != nil {
		return EnvConfig{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings the server can not start with. Slider parameters are not checked here,
// a degenerate range is reported to clients as a status instead.
func (c EnvConfig) Validate() error {
	switch c.Network {
	case "tcp", "tcp4", "tcp6", "unix":
	default:
		return fmt.Errorf("unsupported network %q", c.Network)
	}
	if c.Address == "" {
		return errors.New("address must not be empty")
	}
	if c.DistributorBuffer <= 0 {
		return fmt.Errorf("distributor buffer must be positive, got %d", c.DistributorBuffer)
	}
	return nil
}

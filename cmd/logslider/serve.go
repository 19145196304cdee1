package main

import (
	"context"

	logslider "github.com/SKAARHOJ/ibeam-logslider-go"
	log "github.com/s00500/env_logger"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		address string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the gRPC slider server",
		Long: `Start the gRPC slider server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  LOGSLIDER_NETWORK             Listener network: tcp, unix (default: tcp)
  LOGSLIDER_ADDRESS             Listen address (default: 127.0.0.1:50051)
  LOGSLIDER_CONFIGURE           Configure the slider at startup (default: true)
  LOGSLIDER_MIN_AMOUNT          Lowest amount (default: 0)
  LOGSLIDER_MAX_AMOUNT          Highest amount (default: 100000)
  LOGSLIDER_SLIDER_STEPS        Slider steps (default: 100)
  LOGSLIDER_DISTRIBUTOR_BUFFER  Events buffered per subscriber (default: 100)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), envFile, address)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&address, "address", "", "Listen address (default: 127.0.0.1:50051)")

	return cmd
}

func runServe(ctx context.Context, envFile, address string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	if address != "" {
		cfg.Address = address
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if sig := logslider.WaitForShutdown(ctx); sig != nil {
			log.Infof("Received %v, shutting down", sig)
		}
		cancel()
	}()

	opts := []logslider.ServerOption{logslider.WithDistributorBuffer(cfg.DistributorBuffer)}
	if cfg.Configure {
		opts = append(opts, logslider.WithInitialParameters(cfg.MinAmount, cfg.MaxAmount, cfg.SliderSteps))
	}
	server := logslider.NewServer(opts...)
	return server.StartWithServer(ctx, cfg.Network, cfg.Address)
}

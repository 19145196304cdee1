// Package main is the entry point for the logslider CLI.
package main

import (
	"fmt"
	"os"

	"github.com/SKAARHOJ/ibeam-logslider-go/internal/config"
	"github.com/spf13/cobra"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logslider",
		Short: "Logarithmic range slider server",
		Long:  `logslider maps a wide amount range onto a linear two-handle slider with a power curve and serves it over gRPC.`,
	}

	cmd.AddCommand(serveCmd())
	cmd.AddCommand(sweepCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.EnvConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.EnvConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("logslider version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
		},
	}
}

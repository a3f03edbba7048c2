package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"home-budget/config"
	"home-budget/logger"
)

var (
	flagPolicyFile string
	flagPolicy     string
)

var rootCmd = &cobra.Command{
	Use:   "home-budget",
	Short: "Home buying budget calculator",
	Long:  "Estimate the home price you can afford, its monthly costs and how to fund the down payment.",
	// Bare invocation serves HTTP
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagPolicyFile, "policy-file", "", "TOML file overriding cities and policies (env POLICY_FILE)")
	rootCmd.PersistentFlags().StringVar(&flagPolicy, "policy", "", "Policy preset to use by default (env POLICY)")
	rootCmd.Flags().IntVar(&flagPort, "port", 0, "HTTP port (env PORT)")
}

// loadConfig reads the environment and applies command line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagPolicyFile != "" {
		cfg.PolicyFile = flagPolicyFile
	}
	if flagPolicy != "" {
		cfg.Policy = flagPolicy
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	return cfg, nil
}

// newLogger builds the process logger from config.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func loadCatalog(cfg *config.Config) (config.Catalog, error) {
	cat, err := config.LoadCatalog(cfg.PolicyFile, cfg.Policy)
	if err != nil {
		return config.Catalog{}, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/leanaid/leanaid-go/internal/infrastructure/config"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "leanaid",
	Short: "Proof assistant suggestion service for Lean sources",
	Long: `leanaid parses Lean-style proof sources and produces ranked
suggestions for the next proof step.

Suggestions come from a built-in rule engine and, when an Ollama
instance is reachable, from a local language model. The model is
optional: the rule engine always answers.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if debug {
		cfg.Debug = true
	}
	return cfg, nil
}

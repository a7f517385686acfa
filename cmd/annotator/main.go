// Package main provides the entry point for the error log annotator.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jonathan/error-annotator/internal/config"
	"github.com/jonathan/error-annotator/internal/observability"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "annotator",
	Short:         "Error log annotator",
	Long:          "Annotator marks the ERROR lines of a log file against per-OS reference documents and produces a .docx report.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config named by --config and builds the matching logger.
func loadConfig(logOutput io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Output:      logOutput,
		ServiceName: "annotator",
	})
	return cfg, logger, nil
}

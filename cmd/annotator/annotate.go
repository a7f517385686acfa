package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/error-annotator/internal/annotate"
	"github.com/jonathan/error-annotator/internal/observability"
	"github.com/jonathan/error-annotator/internal/reference"
	"github.com/spf13/cobra"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Annotate a log file without starting the server",
	Long:  "Annotate reads a local log file, matches its ERROR lines against the reference document for --os and writes the .docx report.",
	RunE:  runAnnotate,
}

var (
	annotateInput  string
	annotateOS     string
	annotateOutput string
)

func init() {
	annotateCmd.Flags().StringVarP(&annotateInput, "input", "i", "", "Path to the log file (required)")
	annotateCmd.Flags().StringVar(&annotateOS, "os", "", "OS identifier, e.g. windows16 (required)")
	annotateCmd.Flags().StringVarP(&annotateOutput, "output", "o", "", `Output path (default "<prefix> - <date>.docx")`)

	_ = annotateCmd.MarkFlagRequired("input")
	_ = annotateCmd.MarkFlagRequired("os")

	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	catalog := cfg.Catalog()
	refPath, ok := catalog.Primary(annotateOS)
	if !ok {
		return fmt.Errorf("invalid OS choice %q (expected one of: %s)", annotateOS, strings.Join(catalog.Identifiers(), ", "))
	}

	output := annotateOutput
	if output == "" {
		output = fmt.Sprintf("%s - %s.docx", cfg.OutputPrefix, time.Now().Format("2006-01-02"))
	}

	refLines := reference.NewExtractor(logger).Lines(refPath)
	summary, err := annotate.New(catalog, logger).Annotate(cmd.Context(), annotateInput, refLines, output)
	if err != nil {
		return fmt.Errorf("failed to annotate %s: %w", annotateInput, err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintSummary(annotateOS, output, summary)
	return nil
}

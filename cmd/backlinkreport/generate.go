package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/backlinkreport/internal/config"
	"github.com/nao1215/backlinkreport/internal/ledger"
	"github.com/nao1215/backlinkreport/internal/model"
	"github.com/nao1215/backlinkreport/internal/pipeline"
	"github.com/nao1215/backlinkreport/internal/report"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <file>",
		Short: "Generate an affiliate report from a backlink export",
		Long: `Generate reads a backlink export, looks up the affiliate behind every
tracking link token and writes the report.

The report has one row per backlink with the columns Affiliate, Website,
Landing Page, Tracking Link and Date. It is named after the first target
URL's host and today's date, for example:

  example_com_Ahrefs_Report_05-03-2024.xlsx

If the affiliate feed cannot be reached the report is still written, with
the Affiliate column left blank.

Examples:
  # Write the report to your desktop
  backlinkreport generate backlinks.csv

  # Write a CSV report to another directory
  backlinkreport generate -f csv -o ./reports backlinks.csv

  # Also print the report as a markdown table
  backlinkreport generate -p backlinks.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("output-dir", "o", "",
		"Directory to write the report to (default: your desktop)")
	cmd.Flags().StringP("format", "f", "",
		"Report format: xlsx, csv, markdown or json (default: xlsx)")
	cmd.Flags().BoolP("preview", "p", false,
		"Print the report as a markdown table to stdout")
	cmd.Flags().Bool("no-ledger", false,
		"Do not record the report in the run ledger")
	addConfigFlag(cmd)

	return cmd
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := buildGenerateConfig(cmd, logger)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	var previewOut io.Writer
	if preview {
		previewOut = cmd.OutOrStdout()
	}

	return runGenerate(ctx, cmd.OutOrStdout(), previewOut, cfg, args[0], logger)
}

// buildGenerateConfig loads the configuration and applies the generate flags.
// Flags only override the file when they are given explicitly.
func buildGenerateConfig(cmd *cobra.Command, logger *slog.Logger) (*config.Config, error) {
	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("output-dir") {
		cfg.OutputDir, err = cmd.Flags().GetString("output-dir")
		if err != nil {
			return nil, err
		}
	}

	if cmd.Flags().Changed("format") {
		name, err := cmd.Flags().GetString("format")
		if err != nil {
			return nil, err
		}
		format, err := model.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}

	noLedger, err := cmd.Flags().GetBool("no-ledger")
	if err != nil {
		return nil, err
	}
	if noLedger {
		cfg.SaveToDB = false
	}

	return cfg, nil
}

// runGenerate runs the full pipeline for one input file and prints the
// outcome to out. preview, when non-nil, receives a markdown rendering.
func runGenerate(ctx context.Context, out, preview io.Writer, cfg *config.Config, input string, logger *slog.Logger) error {
	var configOpts []pipeline.DefaultPipelineOption
	if preview != nil {
		configOpts = append(configOpts, pipeline.WithPipelinePreview(preview))
	}

	if cfg.SaveToDB {
		l, err := ledger.Open(cfg.DBDir, ledger.DefaultOptions())
		if err != nil {
			// The report is still useful without a ledger entry
			logger.Warn("run ledger unavailable, report will not be recorded",
				"dir", cfg.DBDir,
				"error", err,
			)
		} else {
			defer l.Close()
			configOpts = append(configOpts, pipeline.WithRecorder(l))
		}
	}

	p, err := pipeline.DefaultPipeline(cfg, []pipeline.Option{pipeline.WithLogger(logger)}, configOpts...)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}

	logger.Info("generating report",
		"input", input,
		"outputDir", cfg.OutputDir,
		"format", string(cfg.Format),
	)

	res := p.Execute(ctx, model.NewRunContext(input, cfg.OutputDir, cfg.Format))
	if !res.OK() {
		return resultError(res)
	}

	return report.NewSummaryWriter(out, report.WithVerbose(cfg.Verbose)).WriteResult(res)
}

// resultError turns a failed Result into the error shown to the user.
func resultError(res model.Result) error {
	switch res.Reason {
	case model.ReasonInput:
		return fmt.Errorf("invalid input: %w", res.Err)
	case model.ReasonCanceled:
		return fmt.Errorf("report generation canceled: %w", res.Err)
	default:
		return fmt.Errorf("error generating the report: %w", res.Err)
	}
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/backlinkreport/internal/model"
	"github.com/nao1215/backlinkreport/internal/pipeline"
	"github.com/nao1215/backlinkreport/internal/report"
)

// NewLoadCmd creates the load command.
func NewLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load <file>",
		Short: "Check that a backlink export can be read",
		Long: `Load reads and validates a backlink export without contacting the
affiliate feed or writing anything.

It prints the detected delimiter, the number of data rows, the number of
unique affiliate tokens and how many malformed lines were skipped.

Examples:
  backlinkreport load backlinks.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runLoadCmd,
	}

	addConfigFlag(cmd)

	return cmd
}

// runLoadCmd executes the load command.
func runLoadCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	p, err := pipeline.LoadPipeline(cfg, pipeline.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	input := args[0]
	run := model.NewRun(model.NewRunContext(input, cfg.OutputDir, cfg.Format))
	if err := p.ExecuteRun(ctx, run); err != nil {
		return fmt.Errorf("failed to load %s: %w", input, err)
	}

	return report.NewSummaryWriter(cmd.OutOrStdout()).WriteLoad(input, run.Table, len(run.Tokens))
}

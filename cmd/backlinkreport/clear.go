package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/backlinkreport/internal/ledger"
)

// clearedMessage is printed after every successful clear.
const clearedMessage = "Data cleared. Ready to start again."

// NewClearCmd creates the clear command.
func NewClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the last generated report",
		Long: `Clear deletes the most recently generated report file, if it still
exists, and marks it cleared in the run ledger. Running clear again moves
on to the report generated before that one.

Reports generated with --no-ledger are not known to clear.`,
		Args: cobra.NoArgs,
		RunE: runClearCmd,
	}

	addConfigFlag(cmd)

	return cmd
}

// runClearCmd executes the clear command.
func runClearCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	l, err := ledger.Open(cfg.DBDir, ledger.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open run ledger: %w", err)
	}
	defer l.Close()

	ctx, stop := signalContext(cmd)
	defer stop()

	out := cmd.OutOrStdout()
	res, err := l.ClearLatest(ctx)
	switch {
	case errors.Is(err, ledger.ErrNoRuns):
		logger.Debug("nothing to clear", "ledger", l.Path())
	case err != nil:
		return err
	case res.Removed:
		fmt.Fprintf(out, "Deleted: %s\n", res.Entry.OutputPath)
	default:
		logger.Info("report file was already gone", "path", res.Entry.OutputPath)
	}

	fmt.Fprintln(out, clearedMessage)
	return nil
}

package main

import (
	"fmt"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/backlinkreport/internal/ledger"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List generated reports",
		Long: `History lists the reports recorded in the run ledger, newest first,
as a markdown table.

Examples:
  # Show the last 20 reports
  backlinkreport history

  # Show every recorded report
  backlinkreport history -n 0`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20, "Maximum number of entries to show (0 for all)")
	addConfigFlag(cmd)

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	logger := setupLogger(cmd)

	cfg, err := loadConfig(cmd, logger)
	if err != nil {
		return err
	}

	limit, err := cmd.Flags().GetInt("limit")
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

	entries, err := l.List(ctx, limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No reports recorded yet.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		status := "live"
		if e.Cleared() {
			status = "cleared"
		}
		rows = append(rows, []string{
			e.CreatedAt.Local().Format("2006-01-02 15:04"),
			e.OutputPath,
			string(e.Format),
			strconv.Itoa(e.RowCount),
			fmt.Sprintf("%d/%d", e.EnrichedCount, e.TokenCount),
			status,
		})
	}

	md := markdown.NewMarkdown(out)
	md.Table(markdown.TableSet{
		Header: []string{"Generated", "Report", "Format", "Rows", "Enriched", "Status"},
		Rows:   rows,
	})
	return md.Build()
}

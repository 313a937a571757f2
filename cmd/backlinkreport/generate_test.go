package main

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func TestNewGenerateCmd(t *testing.T) {
	t.Parallel()

	cmd := NewGenerateCmd()
	tests := []struct {
		name      string
		shorthand string
	}{
		{"output-dir", "o"},
		{"format", "f"},
		{"preview", "p"},
		{"config", "c"},
		{"no-ledger", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			flag := cmd.Flags().Lookup(tt.name)
			if flag == nil {
				t.Fatalf("expected %s flag", tt.name)
			}
			if flag.Shorthand != tt.shorthand {
				t.Errorf("expected shorthand %q, got %q", tt.shorthand, flag.Shorthand)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	t.Run("writes xlsx report and records it", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		stdout, _, err := executeCmd(t, "generate", "-c", env.configPath, env.input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		files := env.reports(t, "x_com_Ahrefs_Report_*.xlsx")
		if len(files) != 1 {
			t.Fatalf("expected one report, got %v", files)
		}
		if !strings.Contains(stdout, "Report generated: "+files[0]) {
			t.Errorf("unexpected output %q", stdout)
		}

		f, err := excelize.OpenFile(files[0])
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()
		rows, err := f.GetRows("Sheet1")
		if err != nil {
			t.Fatal(err)
		}
		want := [][]string{
			{"Affiliate", "Website", "Landing Page", "Tracking Link", "Date"},
			{"alice", "ref1", "LP1", "http://x.com/ABC_" + testToken + "/y", "2024-01-01"},
			{"", "ref2", "", "http://x.com/no-token-here", "N/A"},
		}
		if diff := cmp.Diff(want, rows); diff != "" {
			t.Errorf("report rows mismatch (-want +got):\n%s", diff)
		}

		history, _, err := executeCmd(t, "history", "-c", env.configPath)
		if err != nil {
			t.Fatalf("history failed: %v", err)
		}
		if !strings.Contains(history, files[0]) || !strings.Contains(history, "live") {
			t.Errorf("expected history to list the report, got %q", history)
		}
	})

	t.Run("format and output dir flags override config", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		outDir := filepath.Join(t.TempDir(), "elsewhere")
		_, _, err := executeCmd(t, "generate", "-c", env.configPath,
			"-f", "json", "-o", outDir, "--no-ledger", env.input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		files, err := filepath.Glob(filepath.Join(outDir, "x_com_Ahrefs_Report_*.json"))
		if err != nil || len(files) != 1 {
			t.Fatalf("expected one json report, got %v (%v)", files, err)
		}
		data, err := os.ReadFile(files[0])
		if err != nil {
			t.Fatal(err)
		}
		var rows []map[string]any
		if err := json.Unmarshal(data, &rows); err != nil {
			t.Fatalf("invalid json report: %v", err)
		}
		if len(rows) != 2 {
			t.Errorf("expected 2 rows, got %d", len(rows))
		}
		if _, err := os.Stat(filepath.Join(env.ledgerDir, "backlinkreport.db")); !os.IsNotExist(err) {
			t.Error("expected no ledger with --no-ledger")
		}
	})

	t.Run("preview prints markdown table", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		stdout, _, err := executeCmd(t, "generate", "-c", env.configPath, "-p", "--no-ledger", env.input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "[alice](https://admin.example.com/affiliate_summary.php") {
			t.Errorf("expected affiliate link in preview, got %q", stdout)
		}
		if !strings.Contains(stdout, "Report generated:") {
			t.Errorf("expected result line, got %q", stdout)
		}
	})

	t.Run("feed failure still writes report with warning", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusInternalServerError)
		stdout, _, err := executeCmd(t, "generate", "-c", env.configPath, "--no-ledger", env.input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(stdout, "Warning: affiliate data unavailable") {
			t.Errorf("expected enrichment warning, got %q", stdout)
		}
		if files := env.reports(t, "*.xlsx"); len(files) != 1 {
			t.Errorf("expected one report, got %v", files)
		}
	})

	t.Run("missing input is an input error", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		_, _, err := executeCmd(t, "generate", "-c", env.configPath,
			filepath.Join(t.TempDir(), "missing.csv"))
		if err == nil || !strings.Contains(err.Error(), "invalid input") {
			t.Fatalf("expected invalid input error, got %v", err)
		}
		if files := env.reports(t, "*"); len(files) != 0 {
			t.Errorf("expected no output, got %v", files)
		}
	})

	t.Run("unknown format is rejected", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		_, _, err := executeCmd(t, "generate", "-c", env.configPath, "-f", "pdf", env.input)
		if err == nil {
			t.Fatal("expected error for unknown format")
		}
	})

	t.Run("requires exactly one file", func(t *testing.T) {
		t.Parallel()

		if _, _, err := executeCmd(t, "generate"); err == nil {
			t.Fatal("expected error without input file")
		}
	})
}

func TestClear(t *testing.T) {
	t.Parallel()

	t.Run("deletes last generated report", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		if _, _, err := executeCmd(t, "generate", "-c", env.configPath, env.input); err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		files := env.reports(t, "*.xlsx")
		if len(files) != 1 {
			t.Fatalf("expected one report, got %v", files)
		}

		stdout, _, err := executeCmd(t, "clear", "-c", env.configPath)
		if err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if !strings.Contains(stdout, "Deleted: "+files[0]) {
			t.Errorf("expected deleted path in output, got %q", stdout)
		}
		if !strings.Contains(stdout, clearedMessage) {
			t.Errorf("expected %q, got %q", clearedMessage, stdout)
		}
		if _, err := os.Stat(files[0]); !os.IsNotExist(err) {
			t.Error("expected report file to be deleted")
		}

		history, _, err := executeCmd(t, "history", "-c", env.configPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(history, "cleared") {
			t.Errorf("expected cleared status in history, got %q", history)
		}
	})

	t.Run("nothing to clear still resets", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(t, http.StatusOK)
		stdout, _, err := executeCmd(t, "clear", "-c", env.configPath)
		if err != nil {
			t.Fatalf("clear failed: %v", err)
		}
		if strings.TrimSpace(stdout) != clearedMessage {
			t.Errorf("expected only %q, got %q", clearedMessage, stdout)
		}
	})
}

func TestHistoryEmpty(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.StatusOK)
	stdout, _, err := executeCmd(t, "history", "-c", env.configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "No reports recorded yet.") {
		t.Errorf("unexpected output %q", stdout)
	}
}

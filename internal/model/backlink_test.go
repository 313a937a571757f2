package model

import (
	"errors"
	"testing"
	"time"
)

func TestLookupGet(t *testing.T) {
	t.Parallel()

	lookup := Lookup{
		"11111111111111111111111111111111": {Username: "alice", ObjectDescription: "LP1"},
	}

	t.Run("known token", func(t *testing.T) {
		t.Parallel()
		rec, ok := lookup.Get("11111111111111111111111111111111")
		if !ok {
			t.Fatal("expected token to be found")
		}
		if rec.Username != "alice" {
			t.Errorf("expected username alice, got %q", rec.Username)
		}
	})

	t.Run("unknown token yields zero record", func(t *testing.T) {
		t.Parallel()
		rec, ok := lookup.Get("22222222222222222222222222222222")
		if ok {
			t.Fatal("expected token to be missing")
		}
		if rec != (EnrichmentRecord{}) {
			t.Errorf("expected zero record, got %+v", rec)
		}
	})

	t.Run("nil lookup is safe", func(t *testing.T) {
		t.Parallel()
		var empty Lookup
		if _, ok := empty.Get("x"); ok {
			t.Error("expected nil lookup to miss")
		}
	})
}

func TestHyperlinkIsZero(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		link Hyperlink
		want bool
	}{
		{name: "empty", link: Hyperlink{}, want: true},
		{name: "url without label", link: Hyperlink{URL: "https://example.com"}, want: true},
		{name: "label only", link: Hyperlink{Label: "alice"}, want: false},
		{name: "label and url", link: Hyperlink{URL: "https://example.com", Label: "alice"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.link.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTableDelimiterName(t *testing.T) {
	t.Parallel()

	tests := map[rune]string{',': "comma", ';': "semicolon", '\t': "tab", '|': "|"}
	for delim, want := range tests {
		tbl := &Table{Delimiter: delim}
		if got := tbl.DelimiterName(); got != want {
			t.Errorf("DelimiterName(%q) = %q, want %q", delim, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantExt string
		wantErr bool
	}{
		{in: "", want: FormatXLSX, wantExt: "xlsx"},
		{in: "XLSX", want: FormatXLSX, wantExt: "xlsx"},
		{in: "csv", want: FormatCSV, wantExt: "csv"},
		{in: "md", want: FormatMarkdown, wantExt: "md"},
		{in: " markdown ", want: FormatMarkdown, wantExt: "md"},
		{in: "json", want: FormatJSON, wantExt: "json"},
		{in: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if got.Extension() != tt.wantExt {
				t.Errorf("Extension() = %q, want %q", got.Extension(), tt.wantExt)
			}
		})
	}
}

func TestRunStats(t *testing.T) {
	t.Parallel()

	run := NewRun(NewRunContext("in.csv", "/tmp", FormatXLSX))
	run.Table = &Table{
		Rows:         make([]InputRow, 3),
		SkippedLines: 2,
	}
	run.Tokens = []Token{"a", "b"}
	run.Lookup = Lookup{"a": {Username: "alice"}}

	got := run.Stats()
	want := Stats{Rows: 3, UniqueTokens: 2, EnrichedTokens: 1, SkippedLines: 2}
	if got != want {
		t.Errorf("Stats() = %+v, want %+v", got, want)
	}
}

func TestRunContextDate(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	rc := NewRunContext("in.csv", "out", FormatXLSX)
	rc.Now = func() time.Time { return fixed }

	if !rc.Date().Equal(fixed) {
		t.Errorf("Date() = %v, want %v", rc.Date(), fixed)
	}

	var zero RunContext
	if zero.Date().IsZero() {
		t.Error("zero RunContext should fall back to the wall clock")
	}
}

func TestResult(t *testing.T) {
	t.Parallel()

	t.Run("succeeded carries warning and path", func(t *testing.T) {
		t.Parallel()
		warn := errors.New("feed down")
		run := NewRun(NewRunContext("in.csv", "out", FormatXLSX))
		run.OutputPath = "out/report.xlsx"
		run.EnrichmentErr = warn

		res := Succeeded(run)
		if !res.OK() {
			t.Fatal("expected OK result")
		}
		if res.OutputPath != "out/report.xlsx" {
			t.Errorf("unexpected output path %q", res.OutputPath)
		}
		if !errors.Is(res.Warning, warn) {
			t.Errorf("expected warning to be preserved, got %v", res.Warning)
		}
	})

	t.Run("failed with nil run", func(t *testing.T) {
		t.Parallel()
		res := Failed(ReasonInput, errors.New("no file"), nil)
		if res.OK() {
			t.Fatal("expected failed result")
		}
		if res.Reason.String() != "input" {
			t.Errorf("unexpected reason %q", res.Reason)
		}
		if res.Status.String() != "failed" {
			t.Errorf("unexpected status %q", res.Status)
		}
	})
}

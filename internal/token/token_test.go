package token

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/backlinkreport/internal/model"
)

const validToken = "11111111111111111111111111111111"

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		url    string
		want   model.Token
		wantOK bool
	}{
		{
			name:   "token followed by path",
			url:    "http://x.com/ABC_" + validToken + "/y",
			want:   validToken,
			wantOK: true,
		},
		{
			name:   "token at end of url",
			url:    "http://x.com/ABC_" + validToken,
			want:   validToken,
			wantOK: true,
		},
		{
			name:   "no underscore",
			url:    "http://x.com/no-token-here",
			wantOK: false,
		},
		{
			name:   "segment too short",
			url:    "http://x.com/ABC_" + validToken[:31] + "/y",
			wantOK: false,
		},
		{
			name:   "segment too long",
			url:    "http://x.com/ABC_" + validToken + "1/y",
			wantOK: false,
		},
		{
			name:   "only first underscore is used",
			url:    "http://x.com/a_b/ABC_" + validToken + "/y",
			wantOK: false,
		},
		{
			name:   "empty string",
			url:    "",
			wantOK: false,
		},
		{
			name:   "underscore at end",
			url:    "http://x.com/ABC_",
			wantOK: false,
		},
		{
			name:   "32 characters without underscore or slash",
			url:    validToken,
			want:   validToken,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Extract(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("Extract(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Extract(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

// TestExtractLengthProperty checks that only 32-character segments are accepted
// for every segment length around the boundary.
func TestExtractLengthProperty(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 64; n++ {
		segment := strings.Repeat("a", n)
		url := "https://example.com/go/ref_" + segment + "/landing"

		got, ok := Extract(url)
		if n == model.TokenLength {
			if !ok || string(got) != segment {
				t.Errorf("length %d: expected segment to be extracted, got %q (ok=%v)", n, got, ok)
			}
			continue
		}
		if ok {
			t.Errorf("length %d: expected no token, got %q", n, got)
		}
	}
}

func TestUnique(t *testing.T) {
	t.Parallel()

	other := strings.Repeat("2", 32)
	rows := []model.InputRow{
		{TargetURL: "http://x.com/A_" + validToken + "/1"},
		{TargetURL: "http://x.com/no-token"},
		{TargetURL: "http://x.com/B_" + other + "/2"},
		{TargetURL: "http://x.com/C_" + validToken + "/3"},
		{TargetURL: ""},
	}

	got := Unique(rows)
	want := []model.Token{validToken, model.Token(other)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Unique() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{validToken, other}, Strings(got)); diff != "" {
		t.Errorf("Strings() mismatch (-want +got):\n%s", diff)
	}
}

func TestUniqueEmpty(t *testing.T) {
	t.Parallel()

	got := Unique(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

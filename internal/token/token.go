package token

import (
	"strings"

	"github.com/nao1215/backlinkreport/internal/model"
)

// Extract returns the token embedded in rawURL.
// It returns false when the candidate segment is not exactly
// model.TokenLength bytes long.
func Extract(rawURL string) (model.Token, bool) {
	// With no underscore the candidate starts at the beginning of the URL,
	// which is then rejected by the length check for any real link.
	start := strings.IndexByte(rawURL, '_') + 1

	candidate := rawURL[start:]
	if end := strings.IndexByte(candidate, '/'); end >= 0 {
		candidate = candidate[:end]
	}

	if len(candidate) != model.TokenLength {
		return "", false
	}
	return model.Token(candidate), true
}

// Unique extracts the tokens of all rows and removes duplicates.
// The result keeps first-seen order, so the feed request is deterministic.
func Unique(rows []model.InputRow) []model.Token {
	seen := make(map[model.Token]struct{}, len(rows))
	tokens := make([]model.Token, 0, len(rows))
	for _, row := range rows {
		t, ok := Extract(row.TargetURL)
		if !ok {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tokens = append(tokens, t)
	}
	return tokens
}

// Strings converts tokens to plain strings.
func Strings(tokens []model.Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = string(t)
	}
	return out
}

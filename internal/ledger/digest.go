package ledger

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/sha3"
)

// DigestFile returns the hex SHA3-256 digest of the file at path.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // Input path recorded by the user's own run
	if err != nil {
		return "", fmt.Errorf("failed to open input for digest: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to digest input: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

package ingest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding names a supported input text encoding.
type Encoding string

const (
	// EncodingUTF16 detects the byte order from the BOM and falls back to
	// little-endian, which is what backlink exports use.
	EncodingUTF16 Encoding = "utf-16"

	// EncodingUTF16LE is little-endian UTF-16; a BOM is honored if present.
	EncodingUTF16LE Encoding = "utf-16le"

	// EncodingUTF16BE is big-endian UTF-16; a BOM is honored if present.
	EncodingUTF16BE Encoding = "utf-16be"

	// EncodingUTF8 is UTF-8 with an optional BOM.
	EncodingUTF8 Encoding = "utf-8"
)

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = EncodingUTF16

// ParseEncoding converts a configured name into an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-16", "utf16":
		return EncodingUTF16, nil
	case "utf-16le", "utf16le":
		return EncodingUTF16LE, nil
	case "utf-16be", "utf16be":
		return EncodingUTF16BE, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
	}
}

// decoder returns the x/text decoder for the encoding.
// All of them replace invalid input with U+FFFD instead of failing.
func (e Encoding) decoder() *encoding.Decoder {
	switch e {
	case EncodingUTF8:
		return unicode.UTF8BOM.NewDecoder()
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	default:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	}
}

// Decode reads r completely and converts it to a Go string.
func Decode(r io.Reader, enc Encoding) (string, error) {
	data, err := io.ReadAll(transform.NewReader(r, enc.decoder()))
	if err != nil {
		return "", fmt.Errorf("failed to decode input as %s: %w", enc, err)
	}
	return string(data), nil
}

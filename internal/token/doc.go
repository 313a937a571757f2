// Package token extracts affiliate tokens from tracking URLs.
//
// A tracking URL embeds its token right after the first underscore, for
// example https://example.com/go/ABC_0123456789abcdef0123456789abcdef/page.
// The token runs up to the next slash, or to the end of the URL when no
// slash follows, and must be exactly 32 characters long.
//
// Only the first underscore is considered. URLs with an underscore earlier in
// the path than the token segment therefore yield no token; this mirrors how
// the exported links have always been read.
package token

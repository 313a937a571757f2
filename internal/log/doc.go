// Package log provides logging with automatic redaction of secrets, built on
// top of the standard slog package.
//
// backlinkreport handles two kinds of sensitive data: the feed credentials
// (HTTP Basic user/password) and the affiliate tokens embedded in tracking
// links. The SecureHandler keeps both out of log output:
//   - attributes whose key names a secret (password, authorization, token...)
//     are replaced by MaskValue
//   - string values that look like a credential (Basic/Bearer header values,
//     long opaque identifiers such as a bare token) are replaced by MaskValue
//   - URLs keep their shape but lose the password of their userinfo and the
//     token segment of a tracking path
//
// Redaction applies in verbose mode too.
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("feed request", "url", requestURL, "password", pw)
//	// url=https://feed.example.com/feeds.php?FEED_ID=4 password=***REDACTED***
//	slog.SetDefault(logger)
package log

package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/backlinkreport/internal/ingest"
	"github.com/nao1215/backlinkreport/internal/model"
)

// Default configuration values.
// The feed endpoint and credentials are the fixed values the affiliate
// platform hands out for the token feed; the config file overrides them.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "backlinkreport"

	// DefaultFeedURL is the token feed endpoint.
	DefaultFeedURL = "https://admin.throneneataffiliates.com/feeds.php"

	// DefaultSummaryURL is the affiliate summary page linked from each report row.
	DefaultSummaryURL = "https://admin.throneneataffiliates.com/affiliate_summary.php"

	// DefaultFeedID selects the token feed.
	DefaultFeedID = 4

	// DefaultUsername is the feed's basic auth user.
	DefaultUsername = "TokenAPI"

	// DefaultPassword is the feed's basic auth password.
	DefaultPassword = "ToKenChAnGeMePaS$1234" //nolint:gosec // Published default credential, overridable via config file

	// DefaultTimeout of zero means the feed request waits as long as the
	// server takes. Set a positive value in the config file to bound it.
	DefaultTimeout time.Duration = 0

	// DefaultUserAgent identifies backlinkreport in feed requests.
	DefaultUserAgent = "backlinkreport/1.0 (+https://github.com/nao1215/backlinkreport)"

	// DefaultMaxBodySize limits how much of the feed response is read.
	DefaultMaxBodySize = 32 * 1024 * 1024 // 32MB

	// DefaultFormat is the report format written by generate.
	DefaultFormat = model.FormatXLSX

	// DefaultEncoding is the text encoding of backlink exports.
	DefaultEncoding = string(ingest.DefaultEncoding)
)

// Config holds all configuration options for backlinkreport.
// It is populated from defaults, the config file and CLI flags, and passed
// to the pipeline explicitly rather than read from global state.
//
// Design decision: a single flat struct, like the file sections it is
// merged from. Each file section maps onto a group of fields below.
type Config struct {
	// FeedURL is the enrichment feed endpoint. FEED_ID and TOKENS are
	// appended as query parameters.
	FeedURL string

	// SummaryURL is the base of the access URL built for each affiliate.
	// When empty, affiliates are written without a hyperlink.
	SummaryURL string

	// FeedID is sent as the FEED_ID query parameter.
	FeedID int

	// Username and Password are the HTTP Basic credentials for the feed.
	Username string
	Password string

	// Timeout bounds the single feed request. Zero disables the timeout.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with the feed request.
	UserAgent string

	// MaxBodySize is the maximum feed response size in bytes.
	// Zero means DefaultMaxBodySize.
	MaxBodySize int64

	// OutputDir is the directory reports are written to.
	// Defaults to the user's desktop directory.
	OutputDir string

	// Format is the report format.
	Format model.Format

	// Encoding is the text encoding of input files (utf-16, utf-16le,
	// utf-16be, utf-8).
	Encoding string

	// DBDir is the directory holding the run ledger database.
	// Defaults to the XDG data directory (~/.local/share/backlinkreport on Linux).
	DBDir string

	// SaveToDB records generated reports in the run ledger.
	// clear and history only know about runs recorded here.
	SaveToDB bool

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches the current directory, the home
	// directory and the XDG config directory.
	ConfigFilePath string

	// Verbose enables debug logging.
	Verbose bool
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		FeedURL:     DefaultFeedURL,
		SummaryURL:  DefaultSummaryURL,
		FeedID:      DefaultFeedID,
		Username:    DefaultUsername,
		Password:    DefaultPassword,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		OutputDir:   DefaultOutputDir(),
		Format:      DefaultFormat,
		Encoding:    DefaultEncoding,
		DBDir:       XDGDataDir(),
		SaveToDB:    true,
	}
}

// DefaultOutputDir returns the user's desktop directory.
// On Linux this honors XDG_DESKTOP_DIR and falls back to ~/Desktop.
func DefaultOutputDir() string {
	return xdg.UserDirs.Desktop
}

// XDGDataDir returns the XDG data directory for backlinkreport.
// On Linux: ~/.local/share/backlinkreport
// On macOS: ~/Library/Application Support/backlinkreport
// On Windows: %LOCALAPPDATA%\backlinkreport
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for backlinkreport.
// On Linux: ~/.config/backlinkreport
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// InputEncoding returns the configured encoding as an ingest.Encoding.
func (c *Config) InputEncoding() (ingest.Encoding, error) {
	return ingest.ParseEncoding(c.Encoding)
}

// Validate checks if the configuration is valid.
// It returns the first problem found as one of the sentinel errors.
func (c *Config) Validate() error {
	u, err := url.Parse(c.FeedURL)
	if c.FeedURL == "" || err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidFeedURL
	}

	if c.SummaryURL != "" {
		u, err := url.Parse(c.SummaryURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ErrInvalidSummaryURL
		}
	}

	if c.FeedID <= 0 {
		return ErrInvalidFeedID
	}

	// Zero is allowed and means no timeout
	if c.Timeout < 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.OutputDir == "" {
		return ErrNoOutputDir
	}

	if _, err := model.ParseFormat(string(c.Format)); err != nil {
		return ErrInvalidFormat
	}

	if _, err := c.InputEncoding(); err != nil {
		return ErrInvalidEncoding
	}

	return nil
}

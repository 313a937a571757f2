package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/backlinkreport/internal/model"
)

// FeedSection configures the enrichment feed.
type FeedSection struct {
	// URL is the feed endpoint.
	URL string `yaml:"url,omitempty"`

	// SummaryURL is the affiliate summary page base.
	SummaryURL string `yaml:"summaryURL,omitempty"`

	// ID is the FEED_ID query parameter.
	ID int `yaml:"id,omitempty"`

	// Username and Password are the basic auth credentials.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`

	// Timeout such as "30s". Zero or absent keeps the current value.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// OutputSection configures where and how reports are written.
type OutputSection struct {
	// Dir is the report directory.
	Dir string `yaml:"dir,omitempty"`

	// Format is xlsx, csv, markdown or json.
	Format string `yaml:"format,omitempty"`
}

// InputSection configures how backlink exports are read.
type InputSection struct {
	// Encoding is utf-16, utf-16le, utf-16be or utf-8.
	Encoding string `yaml:"encoding,omitempty"`
}

// LedgerSection configures the run ledger.
type LedgerSection struct {
	// Dir holds the ledger database.
	Dir string `yaml:"dir,omitempty"`

	// Disabled turns off recording of generated reports.
	Disabled bool `yaml:"disabled,omitempty"`
}

// File represents the structure of the .backlinkreport configuration file.
type File struct {
	Feed   FeedSection   `yaml:"feed,omitempty"`
	Output OutputSection `yaml:"output,omitempty"`
	Input  InputSection  `yaml:"input,omitempty"`
	Ledger LedgerSection `yaml:"ledger,omitempty"`
}

// Apply copies every value set in the file onto c.
// Unset (zero) values leave the current configuration untouched, so
// defaults survive a partial file and CLI flags can be applied afterwards.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}

	if f.Feed.URL != "" {
		c.FeedURL = f.Feed.URL
	}
	if f.Feed.SummaryURL != "" {
		c.SummaryURL = f.Feed.SummaryURL
	}
	if f.Feed.ID != 0 {
		c.FeedID = f.Feed.ID
	}
	if f.Feed.Username != "" {
		c.Username = f.Feed.Username
	}
	if f.Feed.Password != "" {
		c.Password = f.Feed.Password
	}
	if f.Feed.Timeout != 0 {
		c.Timeout = f.Feed.Timeout
	}
	if f.Feed.UserAgent != "" {
		c.UserAgent = f.Feed.UserAgent
	}

	if f.Output.Dir != "" {
		c.OutputDir = expandHome(f.Output.Dir)
	}
	if f.Output.Format != "" {
		c.Format = model.Format(f.Output.Format)
		if parsed, err := model.ParseFormat(f.Output.Format); err == nil {
			c.Format = parsed
		}
	}

	if f.Input.Encoding != "" {
		c.Encoding = f.Input.Encoding
	}

	if f.Ledger.Dir != "" {
		c.DBDir = expandHome(f.Ledger.Dir)
	}
	if f.Ledger.Disabled {
		c.SaveToDB = false
	}
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

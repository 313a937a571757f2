package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/backlinkreport/internal/model"
)

// FileName is the database file name inside the ledger directory.
const FileName = "backlinkreport.db"

// timestampLayout sorts lexicographically in time order.
const timestampLayout = "2006-01-02 15:04:05.000000"

// Ledger provides SQLite-based storage for run entries.
type Ledger struct {
	db     *sql.DB
	dbPath string

	// now is the clock used for created_at and cleared_at.
	now func() time.Time
}

// Options configures Ledger behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if needed.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default ledger options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Entry is one recorded report.
type Entry struct {
	ID            string
	InputPath     string
	InputDigest   string
	OutputPath    string
	Format        model.Format
	RowCount      int
	TokenCount    int
	EnrichedCount int
	SkippedLines  int

	// Warning holds the enrichment error message, if any.
	Warning string

	CreatedAt time.Time

	// ClearedAt is zero while the report file is still considered live.
	ClearedAt time.Time
}

// Cleared reports whether the entry's file has been cleared.
func (e *Entry) Cleared() bool {
	return !e.ClearedAt.IsZero()
}

// Open opens or creates the ledger in dbDir.
func Open(dbDir string, opts Options) (*Ledger, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("ledger not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check ledger path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}

	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	l := &Ledger{db: db, dbPath: dbPath, now: time.Now}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := l.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return l, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Path returns the database file path.
func (l *Ledger) Path() string {
	return l.dbPath
}

func (l *Ledger) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		input_path TEXT NOT NULL,
		input_digest TEXT NOT NULL DEFAULT '',
		output_path TEXT NOT NULL UNIQUE,
		format TEXT NOT NULL,
		row_count INTEGER NOT NULL DEFAULT 0,
		token_count INTEGER NOT NULL DEFAULT 0,
		enriched_count INTEGER NOT NULL DEFAULT 0,
		skipped_lines INTEGER NOT NULL DEFAULT 0,
		warning TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		cleared_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := l.db.ExecContext(context.Background(), schema)
	return err
}

// Record stores a completed run. A run writing to an output path that is
// already recorded replaces that entry, which also makes it live again.
// The input digest is left empty when the input can no longer be read.
func (l *Ledger) Record(ctx context.Context, run *model.Run) error {
	if run.OutputPath == "" {
		return errors.New("run has no output path")
	}

	digest, err := DigestFile(run.Context.InputPath)
	if err != nil {
		digest = ""
	}

	var warning string
	if run.EnrichmentErr != nil {
		warning = run.EnrichmentErr.Error()
	}

	stats := run.Stats()
	query := `
	INSERT INTO runs (id, input_path, input_digest, output_path, format,
		row_count, token_count, enriched_count, skipped_lines, warning, created_at, cleared_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	ON CONFLICT(output_path) DO UPDATE SET
		input_path = excluded.input_path,
		input_digest = excluded.input_digest,
		format = excluded.format,
		row_count = excluded.row_count,
		token_count = excluded.token_count,
		enriched_count = excluded.enriched_count,
		skipped_lines = excluded.skipped_lines,
		warning = excluded.warning,
		created_at = excluded.created_at,
		cleared_at = NULL
	`
	_, err = l.db.ExecContext(ctx, query,
		uuid.Must(uuid.NewV7()).String(),
		run.Context.InputPath,
		digest,
		run.OutputPath,
		string(run.Context.Format),
		stats.Rows,
		stats.UniqueTokens,
		stats.EnrichedTokens,
		stats.SkippedLines,
		warning,
		l.timestamp(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Latest returns the most recent entry that has not been cleared.
// It returns ErrNoRuns when there is none.
func (l *Ledger) Latest(ctx context.Context) (*Entry, error) {
	query := selectEntry + `
	WHERE cleared_at IS NULL
	ORDER BY created_at DESC, rowid DESC
	LIMIT 1
	`
	e, err := scanEntry(l.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return e, nil
}

// Get returns the entry with the given id.
func (l *Ledger) Get(ctx context.Context, id string) (*Entry, error) {
	e, err := scanEntry(l.db.QueryRowContext(ctx, selectEntry+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return e, nil
}

// MarkCleared marks the entry as cleared.
func (l *Ledger) MarkCleared(ctx context.Context, id string) error {
	res, err := l.db.ExecContext(ctx, `UPDATE runs SET cleared_at = ? WHERE id = ?`, l.timestamp(), id)
	if err != nil {
		return fmt.Errorf("failed to mark run cleared: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark run cleared: %w", err)
	}
	if n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// List returns up to limit entries, newest first. A limit of zero or less
// returns every entry.
func (l *Ledger) List(ctx context.Context, limit int) ([]Entry, error) {
	query := selectEntry + ` ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// ClearResult describes what ClearLatest did.
type ClearResult struct {
	Entry *Entry

	// Removed is false when the report file was already gone.
	Removed bool
}

// ClearLatest deletes the most recent live report file, if it still
// exists, and marks its entry cleared. It returns ErrNoRuns when there is
// nothing to clear.
func (l *Ledger) ClearLatest(ctx context.Context) (ClearResult, error) {
	e, err := l.Latest(ctx)
	if err != nil {
		return ClearResult{}, err
	}

	removed := true
	if err := os.Remove(e.OutputPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return ClearResult{Entry: e}, fmt.Errorf("failed to delete report file: %w", err)
		}
		removed = false
	}

	if err := l.MarkCleared(ctx, e.ID); err != nil {
		return ClearResult{Entry: e, Removed: removed}, err
	}
	e.ClearedAt = l.now().UTC()
	return ClearResult{Entry: e, Removed: removed}, nil
}

func (l *Ledger) timestamp() string {
	return l.now().UTC().Format(timestampLayout)
}

const selectEntry = `
	SELECT id, input_path, input_digest, output_path, format,
		row_count, token_count, enriched_count, skipped_lines, warning,
		created_at, cleared_at
	FROM runs`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(s rowScanner) (*Entry, error) {
	var (
		e         Entry
		format    string
		createdAt string
		clearedAt sql.NullString
	)
	err := s.Scan(
		&e.ID, &e.InputPath, &e.InputDigest, &e.OutputPath, &format,
		&e.RowCount, &e.TokenCount, &e.EnrichedCount, &e.SkippedLines, &e.Warning,
		&createdAt, &clearedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Format = model.Format(format)
	e.CreatedAt = parseTimestamp(createdAt)
	if clearedAt.Valid {
		e.ClearedAt = parseTimestamp(clearedAt.String)
	}
	return &e, nil
}

// timestampFormats contains the timestamp formats the ledger may hold.
// The order matters: the format written by this package comes first.
var timestampFormats = []string{
	timestampLayout,
	"2006-01-02 15:04:05", // SQLite default datetime format
	time.RFC3339Nano,
	time.RFC3339,
}

// parseTimestamp tries each known format and returns zero time if none match.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

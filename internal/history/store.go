package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/pagesift/pagesift/internal/model"
)

// ErrNotFound is returned when a requested history entry does not exist.
var ErrNotFound = errors.New("history entry not found")

// Store provides SQLite-backed persistence for completed jobs.
type Store struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// read performance while the serve command is writing.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Entry is one archived job.
type Entry struct {
	// ID is the archive row ID, newest-last.
	ID int64

	// Job is the submitted crawl job.
	Job model.CrawlJob

	// Table is the extracted result.
	Table model.ResultTable

	// PagesFetched is the number of pages the crawl fetched.
	PagesFetched int

	// Took is the crawl duration.
	Took time.Duration

	// CreatedAt is when the job finished.
	CreatedAt time.Time
}

// Open opens or creates the history database under dir.
func Open(dir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dir, "pagesift.db")

	if opts.CreateIfNotExists {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	} else {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("history database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check history database path: %w", err)
		}
	}

	// modernc.org/sqlite DSN: mode=rwc allows creation, mode=rw does not.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite supports a single writer; keep the pool at one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// createTables creates the schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- One row per completed scrape job.
	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		seed TEXT NOT NULL,
		follow_pattern TEXT NOT NULL DEFAULT '',
		max_depth INTEGER NOT NULL DEFAULT 0,
		searches TEXT NOT NULL,
		result TEXT NOT NULL,
		pages_fetched INTEGER NOT NULL DEFAULT 0,
		took_ms INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at);
	CREATE INDEX IF NOT EXISTS idx_jobs_seed ON jobs(seed);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Save archives one completed job and returns its row ID.
func (s *Store) Save(ctx context.Context, job model.CrawlJob, result *model.CrawlResult) (int64, error) {
	searches, err := json.Marshal(job.Searches)
	if err != nil {
		return 0, fmt.Errorf("failed to encode searches: %w", err)
	}
	table, err := json.Marshal(result.Table)
	if err != nil {
		return 0, fmt.Errorf("failed to encode result table: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (seed, follow_pattern, max_depth, searches, result, pages_fetched, took_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		job.URL, job.FollowLinks, job.MaxDepth,
		string(searches), string(table),
		result.PagesFetched, result.Took.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save job: %w", err)
	}

	return res.LastInsertId()
}

// Recent returns up to limit archived jobs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seed, follow_pattern, max_depth, searches, result, pages_fetched, took_ms, created_at
		FROM jobs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Get returns one archived job by ID, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (*Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seed, follow_pattern, max_depth, searches, result, pages_fetched, took_ms, created_at
		FROM jobs WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return entry, err
}

// scanner abstracts *sql.Row and *sql.Rows for scanEntry.
type scanner interface {
	Scan(dest ...any) error
}

// scanEntry decodes one jobs row.
func scanEntry(row scanner) (*Entry, error) {
	var (
		entry      Entry
		searches   string
		table      string
		tookMillis int64
		createdAt  string
	)

	err := row.Scan(
		&entry.ID, &entry.Job.URL, &entry.Job.FollowLinks, &entry.Job.MaxDepth,
		&searches, &table, &entry.PagesFetched, &tookMillis, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(searches), &entry.Job.Searches); err != nil {
		return nil, fmt.Errorf("failed to decode searches for job %d: %w", entry.ID, err)
	}
	if err := json.Unmarshal([]byte(table), &entry.Table); err != nil {
		return nil, fmt.Errorf("failed to decode result for job %d: %w", entry.ID, err)
	}

	entry.Took = time.Duration(tookMillis) * time.Millisecond
	if ts, err := time.Parse("2006-01-02 15:04:05", createdAt); err == nil {
		entry.CreatedAt = ts
	}

	return &entry, nil
}

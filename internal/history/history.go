package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Import outcome values stored in the status column.
const (
	// StatusImported marks an attempt that created a listing.
	StatusImported = "imported"
	// StatusFailed marks an attempt that did not produce a listing.
	StatusFailed = "failed"
)

// Record is one import attempt.
type Record struct {
	// ID is assigned by the database.
	ID int64

	// URL is the marketplace listing URL the import was requested for.
	URL string

	// ExternalID is the platform-assigned listing id, when known.
	ExternalID string

	// CarID is the created listing id. Empty for failed attempts.
	CarID string

	// SellerID is the requesting user's id.
	SellerID string

	// Status is StatusImported or StatusFailed.
	Status string

	// CreatedAt is when the attempt was recorded.
	CreatedAt time.Time
}

// DB provides SQLite-based storage for import records.
// It manages connection pooling and provides methods for recording and
// querying attempts.
type DB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures DB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the import history database in dbDir.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*DB, error) {
	dbPath := filepath.Join(dbDir, "carmarketd.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection strings: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; multiple connections don't help.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &DB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the path of the database file.
func (d *DB) Path() string {
	return d.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (d *DB) createTables() error {
	schema := `
	-- Import records store individual import attempts
	CREATE TABLE IF NOT EXISTS imports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		external_id TEXT,
		car_id TEXT,
		seller_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_imports_external_id ON imports(external_id);
	CREATE INDEX IF NOT EXISTS idx_imports_seller ON imports(seller_id);
	CREATE INDEX IF NOT EXISTS idx_imports_created_at ON imports(created_at);
	`

	if _, err := d.db.ExecContext(context.Background(), schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Add records one import attempt. CreatedAt defaults to the current time
// when zero.
func (d *DB) Add(ctx context.Context, r Record) error {
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := d.db.ExecContext(ctx,
		`INSERT INTO imports (url, external_id, car_id, seller_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.URL, r.ExternalID, r.CarID, r.SellerID, r.Status, createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert import record: %w", err)
	}
	return nil
}

// CountImported returns how many successful imports exist for the given
// external listing id. Zero for an empty external id: attempts without an
// id cannot be correlated.
func (d *DB) CountImported(ctx context.Context, externalID string) (int64, error) {
	if externalID == "" {
		return 0, nil
	}

	var n int64
	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM imports WHERE external_id = ? AND status = ?`,
		externalID, StatusImported,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count imports: %w", err)
	}
	return n, nil
}

// Recent returns the most recent import attempts, newest first.
func (d *DB) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT id, url, external_id, car_id, seller_id, status, created_at
		 FROM imports ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.URL, &r.ExternalID, &r.CarID, &r.SellerID, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan import record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import records: %w", err)
	}

	return records, nil
}

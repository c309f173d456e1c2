package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/pileus-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/pileus-cli/internal/core/domain"
	"github.com/custodia-labs/pileus-cli/internal/core/ports/driven"
)

// DatabaseFileName is the database file inside the data directory.
const DatabaseFileName = "history.db"

// Store is a SQLite-based storage that provides access to the metadata
// store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.pileus/data/history.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".pileus", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFileName)

	// WAL lets the TUI read history while an MCP server writes it.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// OnboardingStore returns an OnboardingStore interface backed by this store.
func (s *Store) OnboardingStore() driven.OnboardingStore {
	return &onboardingStore{store: s}
}

// migrate runs all pending migrations, each in its own transaction.
func (s *Store) migrate(fsys fs.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(content); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ==================== Onboarding Store ====================

// onboardingStore implements driven.OnboardingStore.
type onboardingStore struct {
	store *Store
}

var _ driven.OnboardingStore = (*onboardingStore)(nil)

const onboardingColumns = `id, mode, account_id, account_name, bucket_name, bucket_region,
	account_type, reseller_customer_name, status, error, script_path, created_at`

// Save stores or updates a record.
func (s *onboardingStore) Save(ctx context.Context, record domain.OnboardingRecord) error {
	if record.ID == "" {
		return domain.ErrInvalidInput
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO onboarding_history (`+onboardingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			script_path = excluded.script_path
	`,
		record.ID, string(record.Mode), record.AccountID, record.AccountName,
		record.BucketName, record.BucketRegion, string(record.AccountType),
		record.ResellerCustomerName, record.Status, record.Error, record.ScriptPath,
		record.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving onboarding record: %w", err)
	}
	return nil
}

// Get retrieves a record by ID.
func (s *onboardingStore) Get(ctx context.Context, id string) (*domain.OnboardingRecord, error) {
	row := s.store.db.QueryRowContext(ctx,
		`SELECT `+onboardingColumns+` FROM onboarding_history WHERE id = ?`, id)

	record, err := scanOnboarding(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// List returns records newest first.
func (s *onboardingStore) List(ctx context.Context, limit int) ([]domain.OnboardingRecord, error) {
	query := `SELECT ` + onboardingColumns + ` FROM onboarding_history ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying onboarding history: %w", err)
	}
	defer rows.Close()

	records := []domain.OnboardingRecord{}
	for rows.Next() {
		record, err := scanOnboarding(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating onboarding history: %w", err)
	}
	return records, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanOnboarding(row rowScanner) (*domain.OnboardingRecord, error) {
	var record domain.OnboardingRecord
	var mode, accountType string

	if err := row.Scan(&record.ID, &mode, &record.AccountID, &record.AccountName,
		&record.BucketName, &record.BucketRegion, &accountType, &record.ResellerCustomerName,
		&record.Status, &record.Error, &record.ScriptPath, &record.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning onboarding record: %w", err)
	}

	record.Mode = domain.OnboardingMode(mode)
	record.AccountType = domain.AccountType(accountType)
	return &record, nil
}

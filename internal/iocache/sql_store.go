package iocache

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver

	"github.com/Dustyposa/github-stars-mcp-server/internal/contract"
	"github.com/Dustyposa/github-stars-mcp-server/schema"
)

const cacheTableName = "response_cache"

// SQLStore handles durable cache storage on SQLite, MySQL or PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	backend schema.CacheBackend
}

var _ contract.CacheStore = &SQLStore{} // Compile-time check

// NewSQLStore opens the database for the given backend and ensures the cache
// table exists.
func NewSQLStore(backend schema.CacheBackend, connStr string) (*SQLStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetCacheDBFilePath()
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite cache at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL cache: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=secret dbname=postgres
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL cache: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, fmt.Errorf("unsupported SQL cache backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(createTableQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", cacheTableName, err)
	}

	return &SQLStore{db: db, backend: backend}, nil
}

// createTableQuery returns the CREATE TABLE statement for the given backend.
func createTableQuery(backend schema.CacheBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key VARCHAR(255) PRIMARY KEY,
				cache_value BLOB NOT NULL,
				expires_at BIGINT NOT NULL,
				created_at BIGINT NOT NULL
			);
		`, cacheTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BYTEA NOT NULL,
				expires_at BIGINT NOT NULL,
				created_at BIGINT NOT NULL
			);
		`, cacheTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				cache_key TEXT PRIMARY KEY,
				cache_value BLOB NOT NULL,
				expires_at INTEGER NOT NULL,
				created_at INTEGER NOT NULL
			);
		`, cacheTableName)
	}
}

// placeholder returns the parameter placeholder for the backend.
func (ss *SQLStore) placeholder(n int) string {
	if ss.backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Get retrieves a value by key. Expired entries are deleted on access and
// reported as a miss.
func (ss *SQLStore) Get(key string) ([]byte, error) {
	query := fmt.Sprintf(`SELECT cache_value, expires_at FROM %s WHERE cache_key = %s`,
		cacheTableName, ss.placeholder(1))

	var value []byte
	var expiresAt int64
	if err := ss.db.QueryRow(query, key).Scan(&value, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, contract.ErrCacheMiss
		}
		return nil, err
	}

	if time.Now().Unix() >= expiresAt {
		del := fmt.Sprintf(`DELETE FROM %s WHERE cache_key = %s`, cacheTableName, ss.placeholder(1))
		_, _ = ss.db.Exec(del, key)
		return nil, contract.ErrCacheMiss
	}
	return value, nil
}

// Set inserts or replaces a key/value pair with the given TTL.
func (ss *SQLStore) Set(key string, value []byte, ttl time.Duration) error {
	now := time.Now()
	_, err := ss.db.Exec(ss.upsertQuery(), key, value, now.Add(ttl).Unix(), now.Unix())
	return err
}

// upsertQuery returns the UPSERT statement for the backend.
func (ss *SQLStore) upsertQuery() string {
	switch ss.backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, expires_at, created_at) VALUES (?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE cache_value = new.cache_value, expires_at = new.expires_at, created_at = new.created_at`, cacheTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`INSERT INTO %s (cache_key, cache_value, expires_at, created_at) VALUES ($1, $2, $3, $4)
			ON CONFLICT (cache_key) DO UPDATE SET cache_value = EXCLUDED.cache_value, expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`, cacheTableName)

	default: // SQLite
		return fmt.Sprintf(`INSERT OR REPLACE INTO %s (cache_key, cache_value, expires_at, created_at) VALUES (?, ?, ?, ?)`, cacheTableName)
	}
}

// Clear removes all entries and returns how many were dropped.
func (ss *SQLStore) Clear() (int64, error) {
	res, err := ss.db.Exec(fmt.Sprintf(`DELETE FROM %s`, cacheTableName))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// GetStatus reports entry counts and age bounds for live entries.
func (ss *SQLStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:   string(ss.backend),
		Connected: true,
	}

	now := time.Now().Unix()
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE expires_at > %s`,
		cacheTableName, ss.placeholder(1))
	if err := ss.db.QueryRow(countQuery, now).Scan(&status.TotalEntries); err != nil {
		return status, fmt.Errorf("failed to get total entries: %w", err)
	}
	if status.TotalEntries == 0 {
		return status, nil
	}

	boundsQuery := fmt.Sprintf(`SELECT MIN(created_at), MAX(created_at) FROM %s WHERE expires_at > %s`,
		cacheTableName, ss.placeholder(1))
	var oldest, newest int64
	if err := ss.db.QueryRow(boundsQuery, now).Scan(&oldest, &newest); err != nil {
		return status, fmt.Errorf("failed to get entry time bounds: %w", err)
	}
	status.OldestEntryTime = time.Unix(oldest, 0)
	status.LastEntryTime = time.Unix(newest, 0)
	return status, nil
}

// Close closes the underlying DB connection.
func (ss *SQLStore) Close() error {
	return ss.db.Close()
}

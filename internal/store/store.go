package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/egarim/editorhost/pkg/document"
	"github.com/egarim/editorhost/pkg/persist"
)

// Record is one persisted document row.
type Record struct {
	Key       string
	Text      string
	Language  string
	UpdatedAt time.Time
}

// Store persists serialized documents in a SQLite database. It is the demo
// application's stand-in for the business-object layer behind the persistence
// bridge; serialization faults surface as returned errors for the caller's
// own reporting path.
type Store struct {
	conn *sql.DB
}

// New opens (or creates) the document database at dbPath.
func New(dbPath string) (*Store, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	s := &Store{conn: conn}
	if err := s.initSchema(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize database schema: %v", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// initSchema creates the necessary tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT UNIQUE NOT NULL,
		text TEXT NOT NULL DEFAULT '',
		language TEXT NOT NULL DEFAULT 'markdown',
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_key ON documents(key);
	CREATE INDEX IF NOT EXISTS idx_documents_updated_at ON documents(updated_at);

	CREATE TABLE IF NOT EXISTS app_settings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		key TEXT UNIQUE NOT NULL,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_app_settings_key ON app_settings(key);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// SaveDocument saves or updates a serialized document under key.
func (s *Store) SaveDocument(key, text, language string) error {
	query := `
	INSERT INTO documents (key, text, language, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		text = excluded.text,
		language = excluded.language,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.conn.Exec(query, key, text, language)
	return err
}

// SaveDocuments saves multiple records in a transaction.
func (s *Store) SaveDocuments(records []Record) error {
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
	INSERT INTO documents (key, text, language, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		text = excluded.text,
		language = excluded.language,
		updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %v", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.Exec(record.Key, record.Text, record.Language); err != nil {
			return fmt.Errorf("failed to save document %s: %v", record.Key, err)
		}
	}

	return tx.Commit()
}

// LoadDocument loads one record by key. sql.ErrNoRows passes through when the
// key does not exist.
func (s *Store) LoadDocument(key string) (Record, error) {
	query := `
	SELECT key, text, language, updated_at
	FROM documents
	WHERE key = ?
	`

	var record Record
	err := s.conn.QueryRow(query, key).Scan(&record.Key, &record.Text, &record.Language, &record.UpdatedAt)
	if err != nil {
		return Record{}, err
	}
	return record, nil
}

// ListDocuments returns all records, most recently updated first.
func (s *Store) ListDocuments() ([]Record, error) {
	query := `
	SELECT key, text, language, updated_at
	FROM documents
	ORDER BY updated_at DESC, key ASC
	`

	rows, err := s.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %v", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(&record.Key, &record.Text, &record.Language, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document row: %v", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document rows: %v", err)
	}
	return records, nil
}

// DeleteDocument removes a record by key.
func (s *Store) DeleteDocument(key string) error {
	_, err := s.conn.Exec(`DELETE FROM documents WHERE key = ?`, key)
	return err
}

// SaveSetting saves an application setting.
func (s *Store) SaveSetting(key, value string) error {
	query := `
	INSERT INTO app_settings (key, value, updated_at)
	VALUES (?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(key) DO UPDATE SET
		value = excluded.value,
		updated_at = CURRENT_TIMESTAMP
	`

	_, err := s.conn.Exec(query, key, value)
	return err
}

// LoadSetting loads an application setting, returning "" when absent.
func (s *Store) LoadSetting(key string) (string, error) {
	var value string
	err := s.conn.QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// LoadInto re-hydrates a document through the bridge and returns it along with
// its stored language tag applied.
func (s *Store) LoadInto(bridge persist.Bridge, key string) (*document.Document, error) {
	record, err := s.LoadDocument(key)
	if err != nil {
		return nil, err
	}

	doc := bridge.OnLoad(record.Text)
	if record.Language != "" {
		doc.SetLanguage(record.Language)
	}
	return doc, nil
}

// SaveFrom serializes a document through the bridge and stores it under key.
func (s *Store) SaveFrom(bridge persist.Bridge, key string, doc *document.Document) error {
	language := document.DefaultLanguage
	if doc != nil {
		language = doc.Language()
	}
	return s.SaveDocument(key, bridge.OnSave(doc), language)
}

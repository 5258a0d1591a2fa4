package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Domenick1991/tripflow/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLiteLedgerStore is the default, local-file profile: a one-table key-value
// store with the whole ledger document under LedgerKey.
type SQLiteLedgerStore struct {
	db *sql.DB
}

func NewSQLiteLedgerStore(path string) (*SQLiteLedgerStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteLedgerStore{db: db}, nil
}

func (s *SQLiteLedgerStore) Load(ctx context.Context) ([]domain.BookingRecord, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, LedgerKey).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	var records []domain.BookingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return records, nil
}

func (s *SQLiteLedgerStore) Save(ctx context.Context, records []domain.BookingRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, LedgerKey, data)
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

func (s *SQLiteLedgerStore) Close() error {
	return s.db.Close()
}

var _ LedgerStore = (*SQLiteLedgerStore)(nil)

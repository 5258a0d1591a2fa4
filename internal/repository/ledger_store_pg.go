package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Domenick1991/tripflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGLedgerStore keeps the same whole-document contract on Postgres, for
// deployments where the booking core runs as a shared long-lived service
// rather than against a local file.
type PGLedgerStore struct {
	db *pgxpool.Pool
}

func NewPGLedgerStore(ctx context.Context, db *pgxpool.Pool) (*PGLedgerStore, error) {
	if _, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS tripflow_kv (
		key   TEXT PRIMARY KEY,
		value JSONB NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("migrate postgres: %w", err)
	}
	return &PGLedgerStore{db: db}, nil
}

func (s *PGLedgerStore) Load(ctx context.Context) ([]domain.BookingRecord, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM tripflow_kv WHERE key = $1`, LedgerKey).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
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

func (s *PGLedgerStore) Save(ctx context.Context, records []domain.BookingRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO tripflow_kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, LedgerKey, data)
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

var _ LedgerStore = (*PGLedgerStore)(nil)

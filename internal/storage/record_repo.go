package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type RecordRepo struct {
	db *sql.DB
}

func NewRecordRepo(db *sql.DB) *RecordRepo {
	return &RecordRepo{db: db}
}

// Record pairs a key with the value that will be JSON encoded under it.
type Record struct {
	Key   string
	Value any
}

// Get returns the raw JSON stored under key. ok is false when the key is absent.
func (r *RecordRepo) Get(ctx context.Context, key string) (raw []byte, ok bool, err error) {
	row := r.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key)
	var v string
	if err := row.Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("record get %s: %w", key, err)
	}
	return []byte(v), true, nil
}

// Save JSON encodes every record and writes them in one transaction.
func (r *RecordRepo) Save(ctx context.Context, recs ...Record) error {
	encoded := make([][]byte, len(recs))
	for i, rec := range recs {
		data, err := json.Marshal(rec.Value)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", rec.Key, err)
		}
		encoded[i] = data
	}
	if len(recs) == 1 {
		return putRaw(ctx, r.db, recs[0].Key, encoded[0])
	}
	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		for i, rec := range recs {
			if err := putRaw(ctx, tx, rec.Key, encoded[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putRaw(ctx context.Context, e execer, key string, raw []byte) error {
	_, err := e.ExecContext(ctx, `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(raw))
	if err != nil {
		return fmt.Errorf("record put %s: %w", key, err)
	}
	return nil
}

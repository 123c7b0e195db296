package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jask/ebandobast/internal/database"
)

// Setting represents a settings row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// SettingsRepo handles the key/value settings table.
type SettingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) *SettingsRepo { return &SettingsRepo{db: db} }

// Get returns the setting for key, or nil when it has never been written.
func (r *SettingsRepo) Get(ctx context.Context, key string) (*Setting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM settings WHERE key = ?`, key)
	var s Setting
	if err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *SettingsRepo) Upsert(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO settings(key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at;
	`, key, value, database.Now())
	return err
}

// GetInt reads an integer setting. ok is false when the key is absent.
func (r *SettingsRepo) GetInt(ctx context.Context, key string) (value int, ok bool, err error) {
	s, err := r.Get(ctx, key)
	if err != nil || s == nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(s.Value)
	if err != nil {
		return 0, false, fmt.Errorf("setting %s: %w", key, err)
	}
	return n, true, nil
}

func (r *SettingsRepo) SetInt(ctx context.Context, key string, value int) error {
	return r.Upsert(ctx, key, strconv.Itoa(value))
}

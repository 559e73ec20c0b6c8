package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"pmcc-analyzer/internal/errors"
	"pmcc-analyzer/internal/models"
)

// SQLiteStore implements PositionStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based position store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the slots table.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		symbol TEXT NOT NULL,
		spot_price REAL NOT NULL DEFAULT 0,
		long_expiry DATETIME NOT NULL,
		short_expiry DATETIME NOT NULL,
		long_strike REAL NOT NULL,
		short_strike REAL NOT NULL,
		long_premium REAL NOT NULL DEFAULT 0,
		short_premium REAL NOT NULL DEFAULT 0,
		long_iv REAL NOT NULL DEFAULT 0,
		short_iv REAL NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveSlot inserts or replaces a named slot.
func (s *SQLiteStore) SaveSlot(ctx context.Context, slot *models.PositionSlot) error {
	if slot.Name == "" {
		return errors.NewValidationError("name", slot.Name, "slot name must not be empty")
	}

	query := `
	INSERT INTO slots (name, kind, symbol, spot_price, long_expiry, short_expiry,
		long_strike, short_strike, long_premium, short_premium, long_iv, short_iv, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(name) DO UPDATE SET
		kind = excluded.kind,
		symbol = excluded.symbol,
		spot_price = excluded.spot_price,
		long_expiry = excluded.long_expiry,
		short_expiry = excluded.short_expiry,
		long_strike = excluded.long_strike,
		short_strike = excluded.short_strike,
		long_premium = excluded.long_premium,
		short_premium = excluded.short_premium,
		long_iv = excluded.long_iv,
		short_iv = excluded.short_iv,
		updated_at = CURRENT_TIMESTAMP
	`
	_, err := s.db.ExecContext(ctx, query,
		slot.Name, string(slot.Kind), slot.Symbol, slot.SpotPrice,
		slot.LongExpiry, slot.ShortExpiry,
		slot.LongStrike, slot.ShortStrike,
		slot.LongPremium, slot.ShortPremium,
		slot.LongIV, slot.ShortIV,
	)
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return nil
}

// GetSlot retrieves a slot by name.
func (s *SQLiteStore) GetSlot(ctx context.Context, name string) (*models.PositionSlot, error) {
	query := `
	SELECT name, kind, symbol, spot_price, long_expiry, short_expiry,
		long_strike, short_strike, long_premium, short_premium, long_iv, short_iv, updated_at
	FROM slots WHERE name = ?
	`
	row := s.db.QueryRowContext(ctx, query, name)
	slot, err := scanSlot(row)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(errors.ErrSlotNotFound, "slot %q", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return slot, nil
}

// ListSlots returns all slots ordered by name.
func (s *SQLiteStore) ListSlots(ctx context.Context) ([]models.PositionSlot, error) {
	query := `
	SELECT name, kind, symbol, spot_price, long_expiry, short_expiry,
		long_strike, short_strike, long_premium, short_premium, long_iv, short_iv, updated_at
	FROM slots ORDER BY name
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	defer rows.Close()

	var slots []models.PositionSlot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	return slots, nil
}

// DeleteSlot removes a slot by name.
func (s *SQLiteStore) DeleteSlot(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM slots WHERE name = ?", name)
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(errors.ErrDatabaseError, err.Error())
	}
	if affected == 0 {
		return errors.Wrapf(errors.ErrSlotNotFound, "slot %q", name)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// scanner abstracts sql.Row and sql.Rows for scanSlot.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row scanner) (*models.PositionSlot, error) {
	var slot models.PositionSlot
	var kind string
	var longExpiry, shortExpiry, updatedAt time.Time
	err := row.Scan(
		&slot.Name, &kind, &slot.Symbol, &slot.SpotPrice,
		&longExpiry, &shortExpiry,
		&slot.LongStrike, &slot.ShortStrike,
		&slot.LongPremium, &slot.ShortPremium,
		&slot.LongIV, &slot.ShortIV,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	slot.Kind = models.SlotKind(kind)
	slot.LongExpiry = longExpiry
	slot.ShortExpiry = shortExpiry
	slot.UpdatedAt = updatedAt
	return &slot, nil
}

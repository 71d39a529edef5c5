package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/holiman/uint256"
	_ "modernc.org/sqlite"

	"github.com/pflow-xyz/go-ledger/account"
)

// SQLiteStore persists events to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at path. Use ":memory:"
// for an ephemeral store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		kind TEXT NOT NULL,
		at TEXT NOT NULL,
		from_addr TEXT NOT NULL,
		to_addr TEXT NOT NULL,
		amount TEXT,
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append stores one event.
func (s *SQLiteStore) Append(ctx context.Context, ev *Event) error {
	var amount any
	if ev.Amount != nil {
		amount = ev.Amount.Hex()
	}
	var detail any
	if len(ev.Detail) > 0 {
		b, err := json.Marshal(ev.Detail)
		if err != nil {
			return fmt.Errorf("encode detail: %w", err)
		}
		detail = string(b)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO events (seq, id, kind, at, from_addr, to_addr, amount, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.Seq, ev.ID, string(ev.Kind), ev.At.UTC().Format(time.RFC3339Nano),
		ev.From.Hex(), ev.To.Hex(), amount, detail,
	)
	return err
}

// Read returns up to limit events with Seq > after.
func (s *SQLiteStore) Read(ctx context.Context, after uint64, limit int) ([]*Event, error) {
	query := `SELECT seq, id, kind, at, from_addr, to_addr, amount, detail
		FROM events WHERE seq > ? ORDER BY seq`
	args := []any{after}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func scanEvent(rows *sql.Rows) (*Event, error) {
	var (
		ev             Event
		kind, at       string
		fromHex, toHex string
		amount, detail sql.NullString
	)
	if err := rows.Scan(&ev.Seq, &ev.ID, &kind, &at, &fromHex, &toHex, &amount, &detail); err != nil {
		return nil, err
	}
	ev.Kind = Kind(kind)

	ts, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, fmt.Errorf("decode timestamp: %w", err)
	}
	ev.At = ts

	if ev.From, err = account.HexToAddress(fromHex); err != nil {
		return nil, fmt.Errorf("decode from: %w", err)
	}
	if ev.To, err = account.HexToAddress(toHex); err != nil {
		return nil, fmt.Errorf("decode to: %w", err)
	}
	if amount.Valid {
		v, err := uint256.FromHex(amount.String)
		if err != nil {
			return nil, fmt.Errorf("decode amount: %w", err)
		}
		ev.Amount = v
	}
	if detail.Valid {
		if err := json.Unmarshal([]byte(detail.String), &ev.Detail); err != nil {
			return nil, fmt.Errorf("decode detail: %w", err)
		}
	}
	return &ev, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Package sqlite implements the game store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	_ "modernc.org/sqlite"

	"github.com/strainfour/contagion/internal/platform/storage/sqlitemigrate"
	"github.com/strainfour/contagion/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store persists games and event journals in a single SQLite file.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return nil, err
	}
	if err := sqlitemigrate.Apply(db, migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) guard() error {
	if s == nil || s.db == nil {
		return errors.New("storage is not configured")
	}
	return nil
}

func (s *Store) CreateGame(ctx context.Context, rec storage.GameRecord) error {
	if err := s.guard(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, created_at) VALUES (?, ?)`,
		rec.ID, toMillis(rec.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create game %s: %w", rec.ID, err)
	}
	return nil
}

func (s *Store) GetGame(ctx context.Context, id string) (storage.GameRecord, error) {
	if err := s.guard(); err != nil {
		return storage.GameRecord{}, err
	}
	var rec storage.GameRecord
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at FROM games WHERE id = ?`, id,
	).Scan(&rec.ID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.GameRecord{}, storage.ErrNotFound
	}
	if err != nil {
		return storage.GameRecord{}, fmt.Errorf("get game %s: %w", id, err)
	}
	rec.CreatedAt = fromMillis(createdAt)
	return rec, nil
}

func (s *Store) ListGames(ctx context.Context) ([]storage.GameRecord, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at FROM games ORDER BY created_at, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var out []storage.GameRecord
	for rows.Next() {
		var rec storage.GameRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &createdAt); err != nil {
			return nil, err
		}
		rec.CreatedAt = fromMillis(createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AppendEvent journals one event with the next per-game sequence number.
func (s *Store) AppendEvent(ctx context.Context, gameID string, payload []byte) (int64, error) {
	if err := s.guard(); err != nil {
		return 0, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM games WHERE id = ?`, gameID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, storage.ErrNotFound
	}
	if err != nil {
		return 0, err
	}

	var seq int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM events WHERE game_id = ?`, gameID,
	).Scan(&seq)
	if err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO events (game_id, seq, payload, recorded_at) VALUES (?, ?, ?, ?)`,
		gameID, seq, payload, toMillis(time.Now()),
	)
	if err != nil {
		return 0, fmt.Errorf("append event %d to game %s: %w", seq, gameID, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return seq, nil
}

func (s *Store) ListEvents(ctx context.Context, gameID string, afterSeq int64) ([]storage.EventRecord, error) {
	if err := s.guard(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, payload, recorded_at FROM events WHERE game_id = ? AND seq > ? ORDER BY seq`,
		gameID, afterSeq,
	)
	if err != nil {
		return nil, fmt.Errorf("list events for game %s: %w", gameID, err)
	}
	defer rows.Close()

	var out []storage.EventRecord
	for rows.Next() {
		rec := storage.EventRecord{GameID: gameID}
		var recordedAt int64
		if err := rows.Scan(&rec.Seq, &rec.Payload, &recordedAt); err != nil {
			return nil, err
		}
		rec.RecordedAt = fromMillis(recordedAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// Package storage defines the persistence contract for game event journals.
// Games are append-only: a game row plus an ordered event log reconstructs
// the full state at any point.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when the requested game does not exist.
var ErrNotFound = errors.New("not found")

// GameRecord identifies one stored game.
type GameRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRecord is one journaled event. Seq starts at 1 and is contiguous per
// game; Payload is the event's wire form.
type EventRecord struct {
	GameID     string
	Seq        int64
	Payload    []byte
	RecordedAt time.Time
}

// GameStore persists games and their event journals.
type GameStore interface {
	CreateGame(ctx context.Context, rec GameRecord) error
	GetGame(ctx context.Context, id string) (GameRecord, error)
	ListGames(ctx context.Context) ([]GameRecord, error)

	// AppendEvent journals one event and returns its sequence number.
	AppendEvent(ctx context.Context, gameID string, payload []byte) (int64, error)
	// ListEvents returns the game's events with Seq > afterSeq, in order.
	ListEvents(ctx context.Context, gameID string, afterSeq int64) ([]EventRecord, error)
}

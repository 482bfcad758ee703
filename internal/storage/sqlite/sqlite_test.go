package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/strainfour/contagion/internal/storage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "games.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCreateAndGetGame(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	rec := storage.GameRecord{ID: "g1", CreatedAt: created}
	if err := s.CreateGame(ctx, rec); err != nil {
		t.Fatalf("create game: %v", err)
	}

	got, err := s.GetGame(ctx, "g1")
	if err != nil {
		t.Fatalf("get game: %v", err)
	}
	if got.ID != "g1" || !got.CreatedAt.Equal(created) {
		t.Fatalf("got %+v, want %+v", got, rec)
	}
}

func TestGetGameNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetGame(context.Background(), "missing")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreateGameRejectsDuplicate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	rec := storage.GameRecord{ID: "g1", CreatedAt: time.Now()}
	if err := s.CreateGame(ctx, rec); err != nil {
		t.Fatalf("create game: %v", err)
	}
	if err := s.CreateGame(ctx, rec); err == nil {
		t.Fatal("duplicate id accepted")
	}
}

func TestAppendEventSequences(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, id := range []string{"g1", "g2"} {
		if err := s.CreateGame(ctx, storage.GameRecord{ID: id, CreatedAt: time.Now()}); err != nil {
			t.Fatalf("create game: %v", err)
		}
	}

	for i := 1; i <= 3; i++ {
		seq, err := s.AppendEvent(ctx, "g1", []byte(`{"event_type":"infect"}`))
		if err != nil {
			t.Fatalf("append: %v", err)
		}
		if got, want := seq, int64(i); got != want {
			t.Fatalf("seq = %d, want %d", got, want)
		}
	}

	// sequences are independent per game
	seq, err := s.AppendEvent(ctx, "g2", []byte(`{"event_type":"outbreak"}`))
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if seq != 1 {
		t.Fatalf("g2 first seq = %d, want 1", seq)
	}
}

func TestAppendEventUnknownGame(t *testing.T) {
	s := openTestStore(t)
	_, err := s.AppendEvent(context.Background(), "missing", []byte(`{}`))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListEventsAfterSeq(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.CreateGame(ctx, storage.GameRecord{ID: "g1", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create game: %v", err)
	}
	payloads := []string{`{"a":1}`, `{"b":2}`, `{"c":3}`}
	for _, p := range payloads {
		if _, err := s.AppendEvent(ctx, "g1", []byte(p)); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := s.ListEvents(ctx, "g1", 1)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events after seq 1, want 2", len(events))
	}
	if got, want := string(events[0].Payload), payloads[1]; got != want {
		t.Fatalf("first payload = %s, want %s", got, want)
	}
	if events[0].Seq != 2 || events[1].Seq != 3 {
		t.Fatalf("sequences = %d, %d, want 2, 3", events[0].Seq, events[1].Seq)
	}
}

func TestNilStoreIsGuarded(t *testing.T) {
	var s *Store
	if _, err := s.GetGame(context.Background(), "g1"); err == nil {
		t.Fatal("nil store did not error")
	}
}

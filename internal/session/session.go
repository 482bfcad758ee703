// Package session coordinates live games on top of a GameStore: it creates
// games, serializes actions per game, and rebuilds state by folding the
// journal.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/strainfour/contagion/internal/game/action"
	"github.com/strainfour/contagion/internal/game/def"
	"github.com/strainfour/contagion/internal/game/engine"
	"github.com/strainfour/contagion/internal/game/event"
	"github.com/strainfour/contagion/internal/game/replay"
	"github.com/strainfour/contagion/internal/game/rng"
	"github.com/strainfour/contagion/internal/game/state"
	"github.com/strainfour/contagion/internal/random"
	"github.com/strainfour/contagion/internal/storage"
)

// Manager owns game lifecycles. All mutations of one game are serialized;
// distinct games proceed concurrently.
type Manager struct {
	store      storage.GameStore
	definition def.Definition
	tracer     trace.Tracer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager returns a manager playing on the given board definition.
func NewManager(store storage.GameStore, definition def.Definition) *Manager {
	return &Manager{
		store:      store,
		definition: definition,
		tracer:     otel.Tracer("contagion/session"),
		locks:      make(map[string]*sync.Mutex),
	}
}

func (m *Manager) gameLock(id string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[id]
	if !ok {
		l = &sync.Mutex{}
		m.locks[id] = l
	}
	return l
}

// collector buffers events during an engine call so they can be journaled
// after the call succeeds.
type collector struct {
	events []event.Event
}

func (c *collector) Emit(e event.Event) {
	c.events = append(c.events, e)
}

func (m *Manager) appendAll(ctx context.Context, gameID string, events []event.Event) error {
	for _, e := range events {
		payload, err := event.Encode(e)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.EventType(), err)
		}
		if _, err := m.store.AppendEvent(ctx, gameID, payload); err != nil {
			return err
		}
	}
	return nil
}

// CreateGame sets up a new game for the given players and journals the
// setup events. It returns the game id and the starting situation.
func (m *Manager) CreateGame(ctx context.Context, playerIDs []string, settings engine.Settings) (string, *state.Situation, error) {
	ctx, span := m.tracer.Start(ctx, "session.CreateGame",
		trace.WithAttributes(attribute.Int("players", len(playerIDs))))
	defer span.End()

	seed, err := random.NewSeed()
	if err != nil {
		return "", nil, err
	}
	sink := &collector{}
	g := engine.New(sink, rng.NewSeeded(seed))
	if err := g.Setup(m.definition, playerIDs, settings); err != nil {
		return "", nil, err
	}

	id := uuid.NewString()
	rec := storage.GameRecord{ID: id, CreatedAt: time.Now().UTC()}
	if err := m.store.CreateGame(ctx, rec); err != nil {
		return "", nil, err
	}
	if err := m.appendAll(ctx, id, sink.events); err != nil {
		return "", nil, err
	}
	return id, g.Situation(), nil
}

// load folds the journal into a live situation.
func (m *Manager) load(ctx context.Context, gameID string) (*state.Situation, error) {
	if _, err := m.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	records, err := m.store.ListEvents(ctx, gameID, 0)
	if err != nil {
		return nil, err
	}
	events := make([]event.Event, len(records))
	for i, rec := range records {
		e, err := event.Decode(rec.Payload)
		if err != nil {
			return nil, fmt.Errorf("decode event %d of game %s: %w", rec.Seq, gameID, err)
		}
		events[i] = e
	}
	return replay.Fold(events), nil
}

// Act applies one player action to a stored game. It reports whether the
// action was accepted; a rejected action journals nothing.
func (m *Manager) Act(ctx context.Context, gameID, playerID string, a action.Action) (bool, *state.Situation, error) {
	ctx, span := m.tracer.Start(ctx, "session.Act",
		trace.WithAttributes(
			attribute.String("game.id", gameID),
			attribute.String("action", string(a.Kind)),
		))
	defer span.End()

	lock := m.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()

	situation, err := m.load(ctx, gameID)
	if err != nil {
		return false, nil, err
	}

	seed, err := random.NewSeed()
	if err != nil {
		return false, nil, err
	}
	sink := &collector{}
	g := engine.Resume(situation, sink, rng.NewSeeded(seed))

	if !g.Act(playerID, a) {
		return false, g.Situation(), nil
	}
	if err := m.appendAll(ctx, gameID, sink.events); err != nil {
		return false, nil, err
	}
	return true, g.Situation(), nil
}

// Situation returns the current state of a stored game.
func (m *Manager) Situation(ctx context.Context, gameID string) (*state.Situation, error) {
	ctx, span := m.tracer.Start(ctx, "session.Situation",
		trace.WithAttributes(attribute.String("game.id", gameID)))
	defer span.End()

	lock := m.gameLock(gameID)
	lock.Lock()
	defer lock.Unlock()
	return m.load(ctx, gameID)
}

// Events returns a game's journaled events with sequence numbers greater
// than afterSeq.
func (m *Manager) Events(ctx context.Context, gameID string, afterSeq int64) ([]storage.EventRecord, error) {
	if _, err := m.store.GetGame(ctx, gameID); err != nil {
		return nil, err
	}
	return m.store.ListEvents(ctx, gameID, afterSeq)
}

// Games lists the stored games.
func (m *Manager) Games(ctx context.Context) ([]storage.GameRecord, error) {
	return m.store.ListGames(ctx)
}

// Package engine is the authoritative game state machine: setup, action
// validation and resolution, and infection propagation. Every mutation goes
// through the replay fold, so the emitted event log reconstructs the live
// Situation exactly.
package engine

import (
	"fmt"

	"github.com/strainfour/contagion/internal/game/def"
	"github.com/strainfour/contagion/internal/game/event"
	"github.com/strainfour/contagion/internal/game/replay"
	"github.com/strainfour/contagion/internal/game/rng"
	"github.com/strainfour/contagion/internal/game/state"
)

// Role names with special rules.
const (
	RoleDispatcher       = "Dispatcher"
	RoleOperationsExpert = "Operations Expert"
	RoleScientist        = "Scientist"
	RoleMedic            = "Medic"
	RoleResearcher       = "Researcher"
)

const (
	turnActions    = 4
	playerDraws    = 2
	epidemicInfect = 3
	outbreakAt     = 3
)

// Settings are the per-game difficulty knobs.
type Settings struct {
	NumberOfEpidemics int `json:"number_of_epidemics"`
}

// Game owns one Situation and mutates it in response to Act calls. Calls
// must be serialized by the caller; the engine itself does no locking.
type Game struct {
	situation *state.Situation
	sink      event.Sink
	randy     rng.Randomizer
}

// New returns an engine that reports every observable change to sink and
// draws randomness from randy.
func New(sink event.Sink, randy rng.Randomizer) *Game {
	return &Game{sink: sink, randy: randy}
}

// Resume wraps an already materialized situation, typically one rebuilt by
// folding an event journal.
func Resume(s *state.Situation, sink event.Sink, randy rng.Randomizer) *Game {
	return &Game{situation: s, sink: sink, randy: randy}
}

// Situation returns a deep copy of the current state.
func (g *Game) Situation() *state.Situation {
	if g.situation == nil {
		return nil
	}
	return g.situation.Clone()
}

// emit applies the event to the live Situation and forwards it to the sink.
// Replay of the emitted log therefore tracks live state event by event.
func (g *Game) emit(e event.Event) {
	replay.Apply(g.situation, e)
	g.sink.Emit(e)
}

// Setup materializes the initial Situation: assigns roles, shuffles both
// decks, plants the epidemics, seeds the starting research center, carries
// out initial infections and the opening deal, and grants the first turn.
func (g *Game) Setup(d def.Definition, playerIDs []string, settings Settings) error {
	if g.situation != nil {
		return fmt.Errorf("game is already set up")
	}
	if len(playerIDs) < 2 || len(playerIDs) > 4 {
		return fmt.Errorf("player count %d out of range [2,4]", len(playerIDs))
	}
	deal, ok := d.InitialPlayerCards[len(playerIDs)]
	if !ok {
		return fmt.Errorf("no initial deal defined for %d players", len(playerIDs))
	}
	if len(d.Roles) < len(playerIDs) {
		return fmt.Errorf("%d roles for %d players", len(d.Roles), len(playerIDs))
	}

	s, err := def.Normalize(d)
	if err != nil {
		return err
	}

	roleIdx := g.randy.Sample(len(d.Roles), len(playerIDs))
	for i, id := range playerIDs {
		s.Players = append(s.Players, &state.Player{
			ID:       id,
			Role:     d.Roles[roleIdx[i]],
			Location: d.StartingLocation,
			Hand:     []state.Card{},
		})
	}

	s.InfectionCardsDraw = g.shuffleCards(s.InfectionCardsDraw)

	reserved := deal * len(playerIDs)
	if reserved > len(s.PlayerCardsDraw) {
		return fmt.Errorf("initial deal needs %d cards, deck has %d", reserved, len(s.PlayerCardsDraw))
	}
	s.PlayerCardsDraw = g.insertEpidemics(g.shuffleCards(s.PlayerCardsDraw), settings.NumberOfEpidemics, reserved)

	s.ResearchCenters = append(s.ResearchCenters, state.ResearchCenter{Location: d.StartingLocation})
	s.ResearchCentersAvailable--

	g.situation = s
	g.emit(event.InitialSituation{Situation: s.Clone()})

	for _, count := range d.InitialInfections {
		if !g.drawInfection(count, false) {
			return nil
		}
	}

	for round := 0; round < deal; round++ {
		for _, p := range s.Players {
			g.emit(event.DrawPlayerCard{Player: p.ID, Card: s.PlayerCardsDraw[0]})
		}
	}

	g.emit(event.StateChange{State: state.Stack{{
		Name:             state.NodePlayerActions,
		Player:           s.Players[0].ID,
		ActionsRemaining: turnActions,
	}}})
	return nil
}

func (g *Game) shuffleCards(cards []state.Card) []state.Card {
	out := make([]state.Card, len(cards))
	copy(out, cards)
	g.randy.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// insertEpidemics reserves the opening-deal cards on top, splits the rest
// into epidemic-count chunks (larger chunks first) and plants one epidemic
// at a random offset within each chunk, bounds inclusive.
func (g *Game) insertEpidemics(cards []state.Card, epidemics, reserved int) []state.Card {
	if epidemics <= 0 {
		return cards
	}
	n := len(cards) - reserved
	chunkSize := n / epidemics
	larger := n - epidemics*chunkSize

	out := append([]state.Card{}, cards[:reserved]...)
	start := reserved
	for i := 0; i < epidemics; i++ {
		count := chunkSize
		if i < larger {
			count++
		}
		end := start + count
		where := g.randy.IntRange(start, end)
		out = append(out, cards[start:where]...)
		out = append(out, state.EpidemicCard(i+1))
		out = append(out, cards[where:end]...)
		start = end
	}
	return out
}

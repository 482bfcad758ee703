// Package replay reconstructs a Situation from an event log. Apply is a
// deterministic fold step; the engine funnels its own mutations through the
// same fold, so a replayed log matches live state after every event.
package replay

import (
	"fmt"

	"github.com/strainfour/contagion/internal/game/event"
	"github.com/strainfour/contagion/internal/game/state"
)

// Fold builds a Situation from scratch by applying every event in order.
// The first event must be initial_situation.
func Fold(events []event.Event) *state.Situation {
	s := &state.Situation{}
	for _, e := range events {
		Apply(s, e)
	}
	return s
}

// Resume returns an independent Situation from a raw snapshot.
func Resume(snapshot *state.Situation) *state.Situation {
	return snapshot.Clone()
}

// Apply mutates s with the deterministic effect of one event. Events that
// reference entities missing from s indicate a corrupted log and panic.
func Apply(s *state.Situation, e event.Event) {
	switch e := e.(type) {
	case event.InitialSituation:
		*s = *e.Situation.Clone()

	case event.StateChange:
		s.State = e.State.Clone()

	case event.DrawPlayerCard:
		var ok bool
		s.PlayerCardsDraw, ok = state.RemoveCard(s.PlayerCardsDraw, e.Card)
		if !ok {
			panic(fmt.Sprintf("drawn player card %+v is not in the draw pile", e.Card))
		}
		if e.Card.Type == state.CardEpidemic {
			s.PlayerCardsDiscard = append([]state.Card{e.Card}, s.PlayerCardsDiscard...)
		} else {
			player(s, e.Player).Hand = append(player(s, e.Player).Hand, e.Card)
		}

	case event.DrawAndDiscardInfectionCard:
		var ok bool
		s.InfectionCardsDraw, ok = state.RemoveCard(s.InfectionCardsDraw, e.Card)
		if !ok {
			panic(fmt.Sprintf("drawn infection card %+v is not in the draw pile", e.Card))
		}
		s.InfectionCardsDiscard = append([]state.Card{e.Card}, s.InfectionCardsDiscard...)

	case event.Infect:
		location(s, e.Location).Infections[e.Disease]++
		disease(s, e.Disease).Cubes--

	case event.Outbreak:
		s.OutbreakCount++

	case event.InfectionRateIncreased:
		s.InfectionRateIndex++

	case event.InfectionCardsRestack:
		s.InfectionCardsDiscard = []state.Card{}
		draw := make([]state.Card, 0, len(e.Cards)+len(s.InfectionCardsDraw))
		draw = append(draw, e.Cards...)
		s.InfectionCardsDraw = append(draw, s.InfectionCardsDraw...)

	case event.DiscardPlayerCard:
		p := player(s, e.Player)
		var ok bool
		p.Hand, ok = state.RemoveCard(p.Hand, e.Card)
		if !ok {
			panic(fmt.Sprintf("discarded card %+v is not in %s's hand", e.Card, e.Player))
		}
		s.PlayerCardsDiscard = append([]state.Card{e.Card}, s.PlayerCardsDiscard...)

	case event.MovePawn:
		player(s, e.Player).Location = e.Location

	case event.TreatDisease:
		location(s, e.Location).Infections[e.Disease] -= e.Number
		disease(s, e.Disease).Cubes += e.Number

	case event.BuildResearchCenter:
		s.ResearchCenters = append(s.ResearchCenters, state.ResearchCenter{Location: e.Location})
		s.ResearchCentersAvailable--

	case event.DiscoverCure:
		disease(s, e.Disease).Status = state.StatusCureDiscovered

	case event.EradicateDisease:
		disease(s, e.Disease).Status = state.StatusEradicated

	case event.TransferPlayerCard:
		from := player(s, e.FromPlayer)
		var ok bool
		from.Hand, ok = state.RemoveCard(from.Hand, e.Card)
		if !ok {
			panic(fmt.Sprintf("transferred card %+v is not in %s's hand", e.Card, e.FromPlayer))
		}
		to := player(s, e.ToPlayer)
		to.Hand = append(to.Hand, e.Card)

	case event.DiscardDiscardedCity:
		card := state.LocationCard(e.Location)
		var ok bool
		s.InfectionCardsDiscard, ok = state.RemoveCard(s.InfectionCardsDiscard, card)
		if !ok {
			panic(fmt.Sprintf("removed city %q is not in the infection discard", e.Location))
		}
		s.InfectionCardsRemoved = append([]state.Card{card}, s.InfectionCardsRemoved...)

	case event.ApproveAction:
		s.State = s.State.Pop().Clone()

	case event.OneQuietNight:
		s.QuietNight = true

	case event.QuietNightSkip:
		s.QuietNight = false

	case event.Forecast:
		s.InfectionCardsDraw = append(append([]state.Card{}, e.Cards...), s.InfectionCardsDraw[len(e.Cards):]...)

	default:
		panic(fmt.Sprintf("unhandled event type %q", e.EventType()))
	}
}

func player(s *state.Situation, id string) *state.Player {
	p := s.Player(id)
	if p == nil {
		panic("unknown player " + id)
	}
	return p
}

func location(s *state.Situation, name string) *state.Location {
	l := s.Location(name)
	if l == nil {
		panic("unknown location " + name)
	}
	return l
}

func disease(s *state.Situation, name string) *state.Disease {
	d := s.Disease(name)
	if d == nil {
		panic("unknown disease " + name)
	}
	return d
}

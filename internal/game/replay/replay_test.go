package replay

import (
	"reflect"
	"testing"

	"github.com/strainfour/contagion/internal/game/event"
	"github.com/strainfour/contagion/internal/game/state"
)

func testSituation() *state.Situation {
	return &state.Situation{
		Locations: []*state.Location{
			{Name: "Atlanta", Disease: "Blue", Adjacent: []string{"Chicago", "Miami"}, Infections: map[string]int{}},
			{Name: "Chicago", Disease: "Blue", Adjacent: []string{"Atlanta"}, Infections: map[string]int{}},
			{Name: "Miami", Disease: "Yellow", Adjacent: []string{"Atlanta"}, Infections: map[string]int{}},
		},
		Diseases: []*state.Disease{
			{Name: "Blue", Status: state.StatusNoCure, Cubes: 10, CubesTotal: 10},
			{Name: "Yellow", Status: state.StatusNoCure, Cubes: 10, CubesTotal: 10},
		},
		Players: []*state.Player{
			{ID: "alice", Role: "Medic", Location: "Atlanta", Hand: []state.Card{state.LocationCard("Chicago")}},
			{ID: "bob", Role: "Scientist", Location: "Atlanta", Hand: []state.Card{}},
		},
		ResearchCenters:          []state.ResearchCenter{{Location: "Atlanta"}},
		ResearchCentersAvailable: 5,
		PlayerCardsDraw:          []state.Card{state.LocationCard("Miami"), state.EpidemicCard(1), state.LocationCard("Atlanta")},
		PlayerCardsDiscard:       []state.Card{},
		InfectionCardsDraw:       []state.Card{state.LocationCard("Atlanta"), state.LocationCard("Chicago"), state.LocationCard("Miami")},
		InfectionCardsDiscard:    []state.Card{},
		InfectionCardsRemoved:    []state.Card{},
		InfectionRates:           []int{2, 3},
		MaxOutbreaks:             7,
		MaxPlayerCards:           7,
		State: state.Stack{{
			Name:             state.NodePlayerActions,
			Player:           "alice",
			ActionsRemaining: 4,
		}},
	}
}

func TestFoldRebuildsFromLog(t *testing.T) {
	log := []event.Event{
		event.InitialSituation{Situation: testSituation()},
		event.DrawAndDiscardInfectionCard{Card: state.LocationCard("Atlanta")},
		event.Infect{Location: "Atlanta", Disease: "Blue"},
		event.Infect{Location: "Atlanta", Disease: "Blue"},
		event.MovePawn{Player: "bob", Location: "Chicago"},
		event.StateChange{State: state.Stack{{
			Name:             state.NodePlayerActions,
			Player:           "alice",
			ActionsRemaining: 3,
		}}},
	}

	s := Fold(log)

	if got, want := s.Location("Atlanta").Infections["Blue"], 2; got != want {
		t.Fatalf("Atlanta blue infections = %d, want %d", got, want)
	}
	if got, want := s.Disease("Blue").Cubes, 8; got != want {
		t.Fatalf("blue cubes = %d, want %d", got, want)
	}
	if got, want := s.Player("bob").Location, "Chicago"; got != want {
		t.Fatalf("bob is at %q, want %q", got, want)
	}
	if got, want := len(s.InfectionCardsDraw), 2; got != want {
		t.Fatalf("infection draw pile has %d cards, want %d", got, want)
	}
	wantDiscard := []state.Card{state.LocationCard("Atlanta")}
	if !reflect.DeepEqual(s.InfectionCardsDiscard, wantDiscard) {
		t.Fatalf("infection discard = %+v, want %+v", s.InfectionCardsDiscard, wantDiscard)
	}
	if got, want := s.State.Current().ActionsRemaining, 3; got != want {
		t.Fatalf("actions remaining = %d, want %d", got, want)
	}
}

func TestResumeDetachesSnapshot(t *testing.T) {
	snapshot := testSituation()
	s := Resume(snapshot)

	Apply(s, event.MovePawn{Player: "alice", Location: "Miami"})

	if got, want := snapshot.Player("alice").Location, "Atlanta"; got != want {
		t.Fatalf("snapshot mutated: alice at %q, want %q", got, want)
	}
	if got, want := s.Player("alice").Location, "Miami"; got != want {
		t.Fatalf("resumed situation: alice at %q, want %q", got, want)
	}
}

func TestApplyDrawPlayerCard(t *testing.T) {
	s := testSituation()
	Apply(s, event.DrawPlayerCard{Player: "bob", Card: state.LocationCard("Miami")})

	if got, want := len(s.PlayerCardsDraw), 2; got != want {
		t.Fatalf("draw pile has %d cards, want %d", got, want)
	}
	if !s.Player("bob").HoldsCard(state.LocationCard("Miami")) {
		t.Fatal("bob does not hold the drawn card")
	}
}

func TestApplyDrawEpidemicGoesToDiscard(t *testing.T) {
	s := testSituation()
	Apply(s, event.DrawPlayerCard{Player: "bob", Card: state.EpidemicCard(1)})

	if s.Player("bob").HoldsCard(state.EpidemicCard(1)) {
		t.Fatal("epidemic card ended up in a hand")
	}
	want := []state.Card{state.EpidemicCard(1)}
	if !reflect.DeepEqual(s.PlayerCardsDiscard, want) {
		t.Fatalf("player discard = %+v, want %+v", s.PlayerCardsDiscard, want)
	}
}

func TestApplyRestackPutsDiscardOnTop(t *testing.T) {
	s := testSituation()
	Apply(s, event.DrawAndDiscardInfectionCard{Card: state.LocationCard("Atlanta")})
	Apply(s, event.DrawAndDiscardInfectionCard{Card: state.LocationCard("Chicago")})

	Apply(s, event.InfectionCardsRestack{Cards: []state.Card{
		state.LocationCard("Chicago"),
		state.LocationCard("Atlanta"),
	}})

	wantDraw := []state.Card{
		state.LocationCard("Chicago"),
		state.LocationCard("Atlanta"),
		state.LocationCard("Miami"),
	}
	if !reflect.DeepEqual(s.InfectionCardsDraw, wantDraw) {
		t.Fatalf("infection draw = %+v, want %+v", s.InfectionCardsDraw, wantDraw)
	}
	if got := len(s.InfectionCardsDiscard); got != 0 {
		t.Fatalf("infection discard has %d cards after restack, want 0", got)
	}
	if s.InfectionCardsDiscard == nil {
		t.Fatal("infection discard is nil after restack, want empty slice")
	}
}

func TestApplyForecastReordersTop(t *testing.T) {
	s := testSituation()
	Apply(s, event.Forecast{Cards: []state.Card{
		state.LocationCard("Chicago"),
		state.LocationCard("Atlanta"),
	}})

	wantDraw := []state.Card{
		state.LocationCard("Chicago"),
		state.LocationCard("Atlanta"),
		state.LocationCard("Miami"),
	}
	if !reflect.DeepEqual(s.InfectionCardsDraw, wantDraw) {
		t.Fatalf("infection draw = %+v, want %+v", s.InfectionCardsDraw, wantDraw)
	}
}

func TestApplyApproveActionPopsState(t *testing.T) {
	s := testSituation()
	s.State = s.State.Push(state.Node{
		Name:          state.NodeApproveAction,
		Player:        "alice",
		ApprovePlayer: "bob",
	})

	Apply(s, event.ApproveAction{})

	if got, want := s.State.Current().Name, state.NodePlayerActions; got != want {
		t.Fatalf("current state = %q, want %q", got, want)
	}
}

func TestApplyQuietNightFlag(t *testing.T) {
	s := testSituation()
	Apply(s, event.OneQuietNight{})
	if !s.QuietNight {
		t.Fatal("quiet night flag not set")
	}
	Apply(s, event.QuietNightSkip{})
	if s.QuietNight {
		t.Fatal("quiet night flag not cleared")
	}
}

func TestApplyPanicsOnCorruptLog(t *testing.T) {
	s := testSituation()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for a draw of a card not in the pile")
		}
	}()
	Apply(s, event.DrawPlayerCard{Player: "bob", Card: state.LocationCard("Nowhere")})
}

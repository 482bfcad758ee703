// Package event defines the closed event taxonomy the engine emits and the
// replay fold consumes. Every observable mutation is one of these types;
// the set is sealed so switches over it can be exhaustive.
package event

import "github.com/strainfour/contagion/internal/game/state"

// Wire type names.
const (
	TypeInitialSituation            = "initial_situation"
	TypeStateChange                 = "state_change"
	TypeDrawPlayerCard              = "draw_player_card"
	TypeDrawAndDiscardInfectionCard = "draw_and_discard_infection_card"
	TypeInfect                      = "infect"
	TypeOutbreak                    = "outbreak"
	TypeInfectionRateIncreased      = "infection_rate_increased"
	TypeInfectionCardsRestack       = "infection_cards_restack"
	TypeDiscardPlayerCard           = "discard_player_card"
	TypeMovePawn                    = "move_pawn"
	TypeTreatDisease                = "treat_disease"
	TypeBuildResearchCenter         = "build_research_center"
	TypeDiscoverCure                = "discover_cure"
	TypeEradicateDisease            = "eradicate_disease"
	TypeTransferPlayerCard          = "transfer_player_card"
	TypeDiscardDiscardedCity        = "discard_discarded_city"
	TypeApproveAction               = "approve_action"
	TypeOneQuietNight               = "one_quiet_night"
	TypeQuietNightSkip              = "quiet_night_skip"
	TypeForecast                    = "forecast"
)

// Event is one observable game mutation. Implementations are the structs in
// this package and nothing else.
type Event interface {
	EventType() string
}

// Sink receives every event the engine emits. The engine never reads back.
type Sink interface {
	Emit(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) Emit(e Event) { f(e) }

// InitialSituation carries the fully materialized starting state.
type InitialSituation struct {
	Situation *state.Situation `json:"situation"`
}

// StateChange overwrites the state-machine stack verbatim.
type StateChange struct {
	State state.Stack `json:"state"`
}

// DrawPlayerCard moves the top player card into the player's hand, except
// for epidemic cards, which go to the player discard pile.
type DrawPlayerCard struct {
	Player string     `json:"player"`
	Card   state.Card `json:"card"`
}

// DrawAndDiscardInfectionCard moves an infection card from the draw pile to
// the top of the infection discard pile.
type DrawAndDiscardInfectionCard struct {
	Card state.Card `json:"card"`
}

// Infect places exactly one cube; a multi-cube infection emits one event
// per cube.
type Infect struct {
	Location string `json:"location"`
	Disease  string `json:"disease"`
}

// Outbreak marks a saturated location spilling into its neighbors.
type Outbreak struct {
	Location string `json:"location"`
	Disease  string `json:"disease"`
}

// InfectionRateIncreased advances the infection-rate index by one.
type InfectionRateIncreased struct{}

// InfectionCardsRestack places the shuffled infection discard on top of the
// draw pile and clears the discard.
type InfectionCardsRestack struct {
	Cards []state.Card `json:"cards"`
}

// DiscardPlayerCard moves a card from a hand to the player discard pile.
type DiscardPlayerCard struct {
	Player string     `json:"player"`
	Card   state.Card `json:"card"`
}

// MovePawn sets a player's location.
type MovePawn struct {
	Player   string `json:"player"`
	Location string `json:"location"`
}

// TreatDisease removes Number cubes at a location, returning them to supply.
type TreatDisease struct {
	Location string `json:"location"`
	Disease  string `json:"disease"`
	Number   int    `json:"number"`
}

// BuildResearchCenter places a station and decrements the available count.
type BuildResearchCenter struct {
	Location string `json:"location"`
}

// DiscoverCure sets a disease's status to cure_discovered.
type DiscoverCure struct {
	Disease string `json:"disease"`
}

// EradicateDisease sets a cured disease's status to eradicated.
type EradicateDisease struct {
	Disease string `json:"disease"`
}

// TransferPlayerCard moves a card between two hands.
type TransferPlayerCard struct {
	FromPlayer string     `json:"from_player"`
	ToPlayer   string     `json:"to_player"`
	Card       state.Card `json:"card"`
}

// DiscardDiscardedCity removes a location card from the infection discard
// pile out of the game.
type DiscardDiscardedCity struct {
	Location string `json:"location"`
}

// ApproveAction resolves a pending approval, popping the approval state.
type ApproveAction struct{}

// OneQuietNight sets the quiet-night flag.
type OneQuietNight struct{}

// QuietNightSkip consumes the quiet-night flag, skipping an infection phase.
type QuietNightSkip struct{}

// Forecast rearranges the top of the infection draw pile into Cards order.
type Forecast struct {
	Cards []state.Card `json:"cards"`
}

func (InitialSituation) EventType() string            { return TypeInitialSituation }
func (StateChange) EventType() string                 { return TypeStateChange }
func (DrawPlayerCard) EventType() string              { return TypeDrawPlayerCard }
func (DrawAndDiscardInfectionCard) EventType() string { return TypeDrawAndDiscardInfectionCard }
func (Infect) EventType() string                      { return TypeInfect }
func (Outbreak) EventType() string                    { return TypeOutbreak }
func (InfectionRateIncreased) EventType() string      { return TypeInfectionRateIncreased }
func (InfectionCardsRestack) EventType() string       { return TypeInfectionCardsRestack }
func (DiscardPlayerCard) EventType() string           { return TypeDiscardPlayerCard }
func (MovePawn) EventType() string                    { return TypeMovePawn }
func (TreatDisease) EventType() string                { return TypeTreatDisease }
func (BuildResearchCenter) EventType() string         { return TypeBuildResearchCenter }
func (DiscoverCure) EventType() string                { return TypeDiscoverCure }
func (EradicateDisease) EventType() string            { return TypeEradicateDisease }
func (TransferPlayerCard) EventType() string          { return TypeTransferPlayerCard }
func (DiscardDiscardedCity) EventType() string        { return TypeDiscardDiscardedCity }
func (ApproveAction) EventType() string               { return TypeApproveAction }
func (OneQuietNight) EventType() string               { return TypeOneQuietNight }
func (QuietNightSkip) EventType() string              { return TypeQuietNightSkip }
func (Forecast) EventType() string                    { return TypeForecast }

// Package action defines the closed set of player actions. Free-form input
// is decoded into the union once, at the boundary; the engine dispatches on
// Kind with an exhaustive switch.
package action

import (
	"encoding/json"
	"fmt"

	"github.com/strainfour/contagion/internal/game/state"
)

// Kind identifies an action. The wire value is the "name" field.
type Kind string

const (
	KindPass                = Kind("action_pass")
	KindDrive               = Kind("action_drive")
	KindDirectFlight        = Kind("action_direct_flight")
	KindCharterFlight       = Kind("action_charter_flight")
	KindShuttleFlight       = Kind("action_shuttle_flight")
	KindConverge            = Kind("action_converge")
	KindTreatDisease        = Kind("action_treat_disease")
	KindBuildResearchCenter = Kind("action_build_research_center")
	KindDiscoverCure        = Kind("action_discover_cure")
	KindShareKnowledge      = Kind("action_share_knowledge")
	KindDrawPlayerCard      = Kind("draw_player_card")
	KindDrawInfectionCard   = Kind("draw_infection_card")
	KindIncreaseIntensity   = Kind("increase_infection_intensity")
	KindDiscardPlayerCard   = Kind("discard_player_card")
	KindAirlift             = Kind("special_airlift")
	KindGovernmentGrant     = Kind("special_government_grant")
	KindOneQuietNight       = Kind("special_one_quiet_night")
	KindResilientPopulation = Kind("special_resilient_population")
	KindForecast            = Kind("special_forecast")
	KindApprove             = Kind("approve_action")
	KindRefuse              = Kind("refuse_action")
)

// TurnAction reports whether the kind consumes one of the four per-turn
// actions and therefore requires the player_actions state.
func (k Kind) TurnAction() bool {
	switch k {
	case KindPass, KindDrive, KindDirectFlight, KindCharterFlight,
		KindShuttleFlight, KindConverge, KindTreatDisease,
		KindBuildResearchCenter, KindDiscoverCure, KindShareKnowledge:
		return true
	}
	return false
}

// Special reports whether the kind plays a special-action card. Specials
// are playable outside the holder's turn but never during an epidemic.
func (k Kind) Special() bool {
	switch k {
	case KindAirlift, KindGovernmentGrant, KindOneQuietNight,
		KindResilientPopulation, KindForecast:
		return true
	}
	return false
}

// Move reports whether the kind relocates a pawn and so may target another
// player, subject to approval.
func (k Kind) Move() bool {
	switch k {
	case KindDrive, KindDirectFlight, KindCharterFlight,
		KindShuttleFlight, KindConverge, KindAirlift:
		return true
	}
	return false
}

// Action is a decoded player action. Which fields are meaningful depends on
// Kind; unset ones stay zero and are dropped from the wire form.
type Action struct {
	Kind       Kind         `json:"name"`
	Player     string       `json:"player,omitempty"`
	Location   string       `json:"location,omitempty"`
	Disease    string       `json:"disease,omitempty"`
	Card       *state.Card  `json:"card,omitempty"`
	Cards      []state.Card `json:"cards,omitempty"`
	FromPlayer string       `json:"from_player,omitempty"`
	ToPlayer   string       `json:"to_player,omitempty"`
}

// Decode parses a raw action payload and checks the kind is known.
func Decode(raw []byte) (Action, error) {
	var a Action
	if err := json.Unmarshal(raw, &a); err != nil {
		return Action{}, fmt.Errorf("decode action: %w", err)
	}
	if !known(a.Kind) {
		return Action{}, fmt.Errorf("unknown action %q", a.Kind)
	}
	return a, nil
}

// Encode renders the action in its wire form, used to park a pending action
// inside an approval state.
func Encode(a Action) json.RawMessage {
	raw, err := json.Marshal(a)
	if err != nil {
		panic("encode action: " + err.Error())
	}
	return raw
}

func known(k Kind) bool {
	switch k {
	case KindPass, KindDrive, KindDirectFlight, KindCharterFlight,
		KindShuttleFlight, KindConverge, KindTreatDisease,
		KindBuildResearchCenter, KindDiscoverCure, KindShareKnowledge,
		KindDrawPlayerCard, KindDrawInfectionCard, KindIncreaseIntensity,
		KindDiscardPlayerCard, KindAirlift, KindGovernmentGrant,
		KindOneQuietNight, KindResilientPopulation, KindForecast,
		KindApprove, KindRefuse:
		return true
	}
	return false
}

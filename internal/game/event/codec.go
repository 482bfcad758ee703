package event

import (
	"encoding/json"
	"fmt"
)

// Encode flattens an event into its wire form: the event_type discriminator
// merged with the payload fields at the top level.
func Encode(e Event) ([]byte, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", e.EventType(), err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, fmt.Errorf("flatten %s payload: %w", e.EventType(), err)
	}
	if fields == nil {
		fields = map[string]json.RawMessage{}
	}
	fields["event_type"] = json.RawMessage(fmt.Sprintf("%q", e.EventType()))

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", e.EventType(), err)
	}
	return raw, nil
}

// Decode parses a wire-form event back into its typed form. Unknown event
// types are errors; the taxonomy is closed.
func Decode(raw []byte) (Event, error) {
	var head struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decode event header: %w", err)
	}

	var (
		e   Event
		err error
	)
	switch head.EventType {
	case TypeInitialSituation:
		e, err = decodeAs[InitialSituation](raw)
	case TypeStateChange:
		e, err = decodeAs[StateChange](raw)
	case TypeDrawPlayerCard:
		e, err = decodeAs[DrawPlayerCard](raw)
	case TypeDrawAndDiscardInfectionCard:
		e, err = decodeAs[DrawAndDiscardInfectionCard](raw)
	case TypeInfect:
		e, err = decodeAs[Infect](raw)
	case TypeOutbreak:
		e, err = decodeAs[Outbreak](raw)
	case TypeInfectionRateIncreased:
		e, err = decodeAs[InfectionRateIncreased](raw)
	case TypeInfectionCardsRestack:
		e, err = decodeAs[InfectionCardsRestack](raw)
	case TypeDiscardPlayerCard:
		e, err = decodeAs[DiscardPlayerCard](raw)
	case TypeMovePawn:
		e, err = decodeAs[MovePawn](raw)
	case TypeTreatDisease:
		e, err = decodeAs[TreatDisease](raw)
	case TypeBuildResearchCenter:
		e, err = decodeAs[BuildResearchCenter](raw)
	case TypeDiscoverCure:
		e, err = decodeAs[DiscoverCure](raw)
	case TypeEradicateDisease:
		e, err = decodeAs[EradicateDisease](raw)
	case TypeTransferPlayerCard:
		e, err = decodeAs[TransferPlayerCard](raw)
	case TypeDiscardDiscardedCity:
		e, err = decodeAs[DiscardDiscardedCity](raw)
	case TypeApproveAction:
		e, err = decodeAs[ApproveAction](raw)
	case TypeOneQuietNight:
		e, err = decodeAs[OneQuietNight](raw)
	case TypeQuietNightSkip:
		e, err = decodeAs[QuietNightSkip](raw)
	case TypeForecast:
		e, err = decodeAs[Forecast](raw)
	default:
		return nil, fmt.Errorf("unknown event type %q", head.EventType)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", head.EventType, err)
	}
	return e, nil
}

func decodeAs[T Event](raw []byte) (Event, error) {
	var e T
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return e, nil
}

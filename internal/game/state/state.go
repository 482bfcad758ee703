// Package state holds the Situation aggregate: the complete mutable game
// state owned by the engine and reconstructed verbatim by replay. Field
// names double as the wire shape of the initial_situation event.
package state

import "encoding/json"

// Disease statuses, a one-way progression.
const (
	StatusNoCure         = "no_cure"
	StatusCureDiscovered = "cure_discovered"
	StatusEradicated     = "eradicated"
)

// Card types.
const (
	CardLocation = "location"
	CardSpecial  = "special"
	CardEpidemic = "epidemic"
)

// Card is a tagged variant: a location card, a special-action card, or an
// epidemic card. Cards compare by value; removal from piles matches the
// first equal card.
type Card struct {
	Type     string `json:"type"`
	Location string `json:"location,omitempty"`
	Special  string `json:"special,omitempty"`
	Number   int    `json:"number,omitempty"`
}

// LocationCard returns a card naming a city.
func LocationCard(name string) Card {
	return Card{Type: CardLocation, Location: name}
}

// SpecialCard returns a special-action card.
func SpecialCard(name string) Card {
	return Card{Type: CardSpecial, Special: name}
}

// EpidemicCard returns the n-th epidemic card.
func EpidemicCard(n int) Card {
	return Card{Type: CardEpidemic, Number: n}
}

// Location is a city on the board. Adjacency is symmetric and keeps route
// insertion order; outbreak propagation visits neighbors in that order.
type Location struct {
	Name       string         `json:"name"`
	Disease    string         `json:"disease"`
	Adjacent   []string       `json:"adjacent"`
	Infections map[string]int `json:"infections"`
}

// Disease tracks cure status and the remaining cube supply.
type Disease struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Cubes      int    `json:"cubes"`
	CubesTotal int    `json:"cubes_total"`
}

// Player is a seated player. Seating order is the slice order in
// Situation.Players and never changes after setup.
type Player struct {
	ID       string `json:"id"`
	Role     string `json:"role"`
	Location string `json:"location"`
	Hand     []Card `json:"hand"`
}

// ResearchCenter marks a placed station.
type ResearchCenter struct {
	Location string `json:"location"`
}

// Situation is the single mutable root aggregate. Discard piles are
// newest-first; draw piles are drawn from index 0.
type Situation struct {
	Locations                []*Location      `json:"locations"`
	Diseases                 []*Disease       `json:"diseases"`
	Players                  []*Player        `json:"players"`
	ResearchCenters          []ResearchCenter `json:"research_centers"`
	ResearchCentersAvailable int              `json:"research_centers_available"`
	PlayerCardsDraw          []Card           `json:"player_cards_draw"`
	PlayerCardsDiscard       []Card           `json:"player_cards_discard"`
	InfectionCardsDraw       []Card           `json:"infection_cards_draw"`
	InfectionCardsDiscard    []Card           `json:"infection_cards_discard"`
	InfectionCardsRemoved    []Card           `json:"infection_cards_removed"`
	InfectionRates           []int            `json:"infection_rates"`
	InfectionRateIndex       int              `json:"infection_rate_index"`
	OutbreakCount            int              `json:"outbreak_count"`
	MaxOutbreaks             int              `json:"max_outbreaks"`
	MaxPlayerCards           int              `json:"max_player_cards"`
	State                    Stack            `json:"state"`
	QuietNight               bool             `json:"quiet_night"`
}

// Location returns the named location, or nil.
func (s *Situation) Location(name string) *Location {
	for _, l := range s.Locations {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// Disease returns the named disease, or nil.
func (s *Situation) Disease(name string) *Disease {
	for _, d := range s.Diseases {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Player returns the player with the given id, or nil.
func (s *Situation) Player(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// NextPlayer returns the player seated after id, wrapping around.
func (s *Situation) NextPlayer(id string) *Player {
	for i, p := range s.Players {
		if p.ID == id {
			return s.Players[(i+1)%len(s.Players)]
		}
	}
	return nil
}

// HasResearchCenter reports whether a station is placed at the location.
func (s *Situation) HasResearchCenter(location string) bool {
	for _, rc := range s.ResearchCenters {
		if rc.Location == location {
			return true
		}
	}
	return false
}

// InfectionRate returns the current per-turn infection draw count.
func (s *Situation) InfectionRate() int {
	idx := s.InfectionRateIndex
	if idx >= len(s.InfectionRates) {
		idx = len(s.InfectionRates) - 1
	}
	return s.InfectionRates[idx]
}

// Clone returns a deep copy, detached from the original.
func (s *Situation) Clone() *Situation {
	raw, err := json.Marshal(s)
	if err != nil {
		panic("situation clone marshal: " + err.Error())
	}
	var out Situation
	if err := json.Unmarshal(raw, &out); err != nil {
		panic("situation clone unmarshal: " + err.Error())
	}
	return &out
}

// RemoveCard deletes the first card equal to c from pile, reporting whether
// a card was removed.
func RemoveCard(pile []Card, c Card) ([]Card, bool) {
	for i, have := range pile {
		if have == c {
			return append(pile[:i:i], pile[i+1:]...), true
		}
	}
	return pile, false
}

// HoldsCard reports whether the player's hand contains c.
func (p *Player) HoldsCard(c Card) bool {
	for _, have := range p.Hand {
		if have == c {
			return true
		}
	}
	return false
}

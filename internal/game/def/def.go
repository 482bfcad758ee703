// Package def loads declarative board descriptions and normalizes them
// into the initial Situation skeleton the engine consumes.
package def

import (
	"fmt"

	"github.com/strainfour/contagion/internal/game/state"
)

// Location is a declared city and its endemic disease.
type Location struct {
	Name    string `json:"name"`
	Disease string `json:"disease"`
}

// Disease is a declared strain and its total cube supply.
type Disease struct {
	Name  string `json:"name"`
	Cubes int    `json:"cubes"`
}

// Route connects two cities. Adjacency is derived symmetrically.
type Route [2]string

// Definition is the declarative board description. The field order of
// Locations and Routes is meaningful: it fixes deck order before shuffling
// and the neighbor visit order during outbreak propagation.
type Definition struct {
	Locations                []Location  `json:"locations"`
	Routes                   []Route     `json:"routes"`
	Diseases                 []Disease   `json:"diseases"`
	Roles                    []string    `json:"roles"`
	Specials                 []string    `json:"specials"`
	InfectionRates           []int       `json:"infection_rates"`
	InitialInfections        []int       `json:"initial_infections"`
	InitialPlayerCards       map[int]int `json:"initial_player_cards"`
	MaxPlayerCards           int         `json:"max_player_cards"`
	MaxOutbreaks             int         `json:"max_outbreaks"`
	ResearchCentersAvailable int         `json:"research_centers_available"`
	StartingLocation         string      `json:"starting_location"`
}

// Validate checks internal consistency: route endpoints and the starting
// location must name declared cities, and every city's disease must be a
// declared strain.
func (d Definition) Validate() error {
	if len(d.Locations) == 0 {
		return fmt.Errorf("definition has no locations")
	}
	if len(d.Diseases) == 0 {
		return fmt.Errorf("definition has no diseases")
	}
	if len(d.InfectionRates) == 0 {
		return fmt.Errorf("definition has no infection rates")
	}

	locations := map[string]bool{}
	for _, l := range d.Locations {
		if locations[l.Name] {
			return fmt.Errorf("duplicate location %q", l.Name)
		}
		locations[l.Name] = true
	}
	diseases := map[string]bool{}
	for _, dis := range d.Diseases {
		diseases[dis.Name] = true
	}
	for _, l := range d.Locations {
		if !diseases[l.Disease] {
			return fmt.Errorf("location %q has unknown disease %q", l.Name, l.Disease)
		}
	}
	for _, r := range d.Routes {
		for _, end := range r {
			if !locations[end] {
				return fmt.Errorf("route endpoint %q is not a location", end)
			}
		}
	}
	if !locations[d.StartingLocation] {
		return fmt.Errorf("starting location %q is not a location", d.StartingLocation)
	}
	return nil
}

// Normalize builds the initial Situation skeleton: symmetric adjacency in
// route order, zeroed infection counters, unshuffled decks, and the setup
// state. Players and the starting research center are added by game setup.
func Normalize(d Definition) (*state.Situation, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	s := &state.Situation{
		ResearchCenters:          []state.ResearchCenter{},
		ResearchCentersAvailable: d.ResearchCentersAvailable,
		PlayerCardsDiscard:       []state.Card{},
		InfectionCardsDiscard:    []state.Card{},
		InfectionCardsRemoved:    []state.Card{},
		InfectionRates:           append([]int{}, d.InfectionRates...),
		MaxOutbreaks:             d.MaxOutbreaks,
		MaxPlayerCards:           d.MaxPlayerCards,
		State:                    state.Stack{{Name: state.NodeSetup}},
	}

	for _, dis := range d.Diseases {
		s.Diseases = append(s.Diseases, &state.Disease{
			Name:       dis.Name,
			Status:     state.StatusNoCure,
			Cubes:      dis.Cubes,
			CubesTotal: dis.Cubes,
		})
	}

	for _, l := range d.Locations {
		infections := map[string]int{}
		for _, dis := range d.Diseases {
			infections[dis.Name] = 0
		}
		s.Locations = append(s.Locations, &state.Location{
			Name:       l.Name,
			Disease:    l.Disease,
			Adjacent:   []string{},
			Infections: infections,
		})
	}
	for _, r := range d.Routes {
		a := s.Location(r[0])
		b := s.Location(r[1])
		a.Adjacent = append(a.Adjacent, b.Name)
		b.Adjacent = append(b.Adjacent, a.Name)
	}

	for _, l := range d.Locations {
		s.PlayerCardsDraw = append(s.PlayerCardsDraw, state.LocationCard(l.Name))
		s.InfectionCardsDraw = append(s.InfectionCardsDraw, state.LocationCard(l.Name))
	}
	for _, sp := range d.Specials {
		s.PlayerCardsDraw = append(s.PlayerCardsDraw, state.SpecialCard(sp))
	}

	return s, nil
}

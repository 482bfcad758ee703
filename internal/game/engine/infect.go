package engine

import (
	"github.com/strainfour/contagion/internal/game/event"
	"github.com/strainfour/contagion/internal/game/state"
)

// drawInfection draws one infection card (from the bottom during an
// epidemic) and infects its city with count cubes. It returns false when
// the infection ended the game in defeat.
func (g *Game) drawInfection(count int, fromBottom bool) bool {
	pile := g.situation.InfectionCardsDraw
	if len(pile) == 0 {
		return true
	}
	idx := 0
	if fromBottom {
		idx = len(pile) - 1
	}
	card := pile[idx]
	g.emit(event.DrawAndDiscardInfectionCard{Card: card})

	loc := g.situation.Location(card.Location)
	return g.infect(loc.Name, loc.Disease, count)
}

type infectJob struct {
	location string
	count    int
}

// infect places count cubes of the disease on the origin city. A city
// already holding three cubes outbreaks instead: the outbreak counter
// advances and each neighbor receives one cube, cascading breadth first. A
// city outbreaks at most once per cascade. Cube supply is checked before
// every single placement; exhausting the supply or the outbreak track is an
// immediate defeat and aborts the cascade. Returns false on defeat.
func (g *Game) infect(origin, diseaseName string, count int) bool {
	s := g.situation
	d := s.Disease(diseaseName)
	if d.Status == state.StatusEradicated {
		return true
	}

	queue := []infectJob{{location: origin, count: count}}
	outbroken := make(map[string]bool)
	for len(queue) > 0 {
		job := queue[0]
		queue = queue[1:]
		if outbroken[job.location] {
			continue
		}
		loc := s.Location(job.location)
		place := job.count
		capacity := outbreakAt - loc.Infections[diseaseName]
		overflow := place > capacity
		if overflow {
			place = capacity
		}
		for i := 0; i < place; i++ {
			if d.Cubes == 0 {
				g.emit(event.StateChange{State: state.Stack{{
					Name:    state.NodeDefeatTooManyInfections,
					Disease: diseaseName,
				}}})
				return false
			}
			g.emit(event.Infect{Location: job.location, Disease: diseaseName})
		}
		if !overflow {
			continue
		}
		outbroken[job.location] = true
		g.emit(event.Outbreak{Location: job.location, Disease: diseaseName})
		if s.OutbreakCount > s.MaxOutbreaks {
			g.emit(event.StateChange{State: state.Stack{{
				Name: state.NodeDefeatTooManyOutbreaks,
			}}})
			return false
		}
		for _, n := range loc.Adjacent {
			if !outbroken[n] {
				queue = append(queue, infectJob{location: n, count: 1})
			}
		}
	}
	return true
}

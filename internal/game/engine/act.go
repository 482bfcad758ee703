package engine

import (
	"github.com/strainfour/contagion/internal/game/action"
	"github.com/strainfour/contagion/internal/game/event"
	"github.com/strainfour/contagion/internal/game/state"
)

// Act validates and resolves one player action. It returns false when the
// action is rejected, in which case nothing was mutated and no event was
// emitted. A true return means the action resolved, even when resolving it
// ended the game.
func (g *Game) Act(playerID string, a action.Action) bool {
	if g.situation == nil {
		return false
	}
	current := g.situation.State.Current()
	if current.Terminal() {
		return false
	}

	switch {
	case a.Kind == action.KindApprove || a.Kind == action.KindRefuse:
		return g.resolveApproval(playerID, a.Kind)
	case a.Kind == action.KindDiscardPlayerCard:
		return g.discardPlayerCard(playerID, a)
	case a.Kind.Special():
		return g.playSpecial(playerID, a, current)
	case a.Kind.TurnAction():
		if current.Name != state.NodePlayerActions || current.Player != playerID {
			return false
		}
		return g.applyTurnAction(playerID, a, false)
	case a.Kind == action.KindDrawPlayerCard:
		return g.drawPlayerCard(playerID, current)
	case a.Kind == action.KindDrawInfectionCard:
		return g.drawInfectionCard(playerID, current)
	case a.Kind == action.KindIncreaseIntensity:
		return g.increaseIntensity(playerID, current)
	}
	return false
}

// --- turn actions ---

func (g *Game) applyTurnAction(actor string, a action.Action, approved bool) bool {
	if !g.checkTurnAction(actor, a) {
		return false
	}
	if !approved {
		if approver := approverFor(actor, a); approver != "" {
			g.requestApproval(actor, approver, a)
			return true
		}
	}
	overflow := g.applyTurnEffects(actor, a)
	g.runHook()
	if g.terminal() {
		return true
	}
	if overflow != "" {
		g.emit(event.StateChange{State: g.situation.State.Push(state.Node{
			Name:   state.NodeHandLimitExceeded,
			Player: overflow,
		})})
		return true
	}
	g.advanceTurnActionOn(g.situation.State)
	return true
}

func (g *Game) checkTurnAction(actor string, a action.Action) bool {
	s := g.situation
	p := s.Player(actor)
	if p == nil {
		return false
	}
	switch a.Kind {
	case action.KindPass:
		return true
	case action.KindDrive, action.KindDirectFlight, action.KindCharterFlight,
		action.KindShuttleFlight, action.KindConverge:
		return g.checkMove(p, a)
	case action.KindTreatDisease:
		if s.Disease(a.Disease) == nil {
			return false
		}
		return s.Location(p.Location).Infections[a.Disease] > 0
	case action.KindBuildResearchCenter:
		if s.ResearchCentersAvailable == 0 || s.HasResearchCenter(p.Location) {
			return false
		}
		if p.Role == RoleOperationsExpert {
			return true
		}
		return p.HoldsCard(state.LocationCard(p.Location))
	case action.KindDiscoverCure:
		return g.checkDiscoverCure(p, a)
	case action.KindShareKnowledge:
		return g.checkShareKnowledge(p, a)
	}
	return false
}

func (g *Game) checkMove(p *state.Player, a action.Action) bool {
	s := g.situation
	moved := s.Player(a.Player)
	dest := s.Location(a.Location)
	if moved == nil || dest == nil || moved.Location == a.Location {
		return false
	}
	if moved.ID != p.ID && p.Role != RoleDispatcher {
		return false
	}
	switch a.Kind {
	case action.KindDrive:
		for _, n := range s.Location(moved.Location).Adjacent {
			if n == a.Location {
				return true
			}
		}
		return false
	case action.KindDirectFlight:
		return p.HoldsCard(state.LocationCard(a.Location))
	case action.KindCharterFlight:
		return p.HoldsCard(state.LocationCard(p.Location))
	case action.KindShuttleFlight:
		return s.HasResearchCenter(moved.Location) && s.HasResearchCenter(a.Location)
	case action.KindConverge:
		for _, other := range s.Players {
			if other.ID != moved.ID && other.Location == a.Location {
				return true
			}
		}
		return false
	}
	return false
}

func (g *Game) checkDiscoverCure(p *state.Player, a action.Action) bool {
	s := g.situation
	need := 5
	if p.Role == RoleScientist {
		need = 4
	}
	if len(a.Cards) != need {
		return false
	}
	var diseaseName string
	for i, c := range a.Cards {
		if c.Type != state.CardLocation || !p.HoldsCard(c) {
			return false
		}
		for _, prev := range a.Cards[:i] {
			if prev == c {
				return false
			}
		}
		loc := s.Location(c.Location)
		if loc == nil {
			return false
		}
		if diseaseName == "" {
			diseaseName = loc.Disease
		} else if loc.Disease != diseaseName {
			return false
		}
	}
	return s.Disease(diseaseName).Status == state.StatusNoCure
}

// checkShareKnowledge: both players share a location, the giver holds the
// card, and the card names that location unless the giver is the
// Researcher, who may hand over any location card. The actor must be one of
// the two participants.
func (g *Game) checkShareKnowledge(p *state.Player, a action.Action) bool {
	s := g.situation
	from := s.Player(a.FromPlayer)
	to := s.Player(a.ToPlayer)
	if from == nil || to == nil || from.ID == to.ID {
		return false
	}
	if p.ID != from.ID && p.ID != to.ID {
		return false
	}
	if from.Location != to.Location {
		return false
	}
	if s.Location(a.Location) == nil {
		return false
	}
	if !from.HoldsCard(state.LocationCard(a.Location)) {
		return false
	}
	if from.Role != RoleResearcher && a.Location != from.Location {
		return false
	}
	return true
}

// applyTurnEffects emits the action's effect events. It returns the id of a
// player left over their hand limit, or "".
func (g *Game) applyTurnEffects(actor string, a action.Action) string {
	s := g.situation
	p := s.Player(actor)
	switch a.Kind {
	case action.KindPass:
	case action.KindDrive, action.KindShuttleFlight, action.KindConverge:
		g.emit(event.MovePawn{Player: a.Player, Location: a.Location})
	case action.KindDirectFlight:
		g.emit(event.DiscardPlayerCard{Player: actor, Card: state.LocationCard(a.Location)})
		g.emit(event.MovePawn{Player: a.Player, Location: a.Location})
	case action.KindCharterFlight:
		g.emit(event.DiscardPlayerCard{Player: actor, Card: state.LocationCard(p.Location)})
		g.emit(event.MovePawn{Player: a.Player, Location: a.Location})
	case action.KindTreatDisease:
		loc := s.Location(p.Location)
		d := s.Disease(a.Disease)
		number := 1
		if d.Status == state.StatusCureDiscovered || p.Role == RoleMedic {
			number = loc.Infections[a.Disease]
		}
		g.emit(event.TreatDisease{Location: loc.Name, Disease: a.Disease, Number: number})
	case action.KindBuildResearchCenter:
		if p.Role != RoleOperationsExpert {
			g.emit(event.DiscardPlayerCard{Player: actor, Card: state.LocationCard(p.Location)})
		}
		g.emit(event.BuildResearchCenter{Location: p.Location})
	case action.KindDiscoverCure:
		diseaseName := s.Location(a.Cards[0].Location).Disease
		for _, c := range a.Cards {
			g.emit(event.DiscardPlayerCard{Player: actor, Card: c})
		}
		g.emit(event.DiscoverCure{Disease: diseaseName})
	case action.KindShareKnowledge:
		g.emit(event.TransferPlayerCard{
			FromPlayer: a.FromPlayer,
			ToPlayer:   a.ToPlayer,
			Card:       state.LocationCard(a.Location),
		})
		if to := s.Player(a.ToPlayer); len(to.Hand) > s.MaxPlayerCards {
			return a.ToPlayer
		}
	}
	return ""
}

// --- approval ---

// approverFor names the player whose consent the action needs: the moved
// pawn's owner, or the other participant of a knowledge share.
func approverFor(actor string, a action.Action) string {
	switch {
	case a.Kind.Move() && a.Player != actor:
		return a.Player
	case a.Kind == action.KindShareKnowledge:
		if actor == a.FromPlayer {
			return a.ToPlayer
		}
		return a.FromPlayer
	}
	return ""
}

// requestApproval parks the validated action in an approval state. No effect
// event is emitted until the approver answers.
func (g *Game) requestApproval(actor, approver string, a action.Action) {
	g.emit(event.StateChange{State: g.situation.State.Push(state.Node{
		Name:          state.NodeApproveAction,
		Player:        actor,
		ApprovePlayer: approver,
		ApproveAction: action.Encode(a),
	})})
}

// resolveApproval answers a pending approval. Approving re-validates the
// parked action; when its preconditions no longer hold the approval state
// is dropped like a refusal.
func (g *Game) resolveApproval(playerID string, kind action.Kind) bool {
	current := g.situation.State.Current()
	if current.Name != state.NodeApproveAction || current.ApprovePlayer != playerID {
		return false
	}
	if kind == action.KindRefuse {
		g.emit(event.StateChange{State: g.situation.State.Pop()})
		return true
	}

	parked, err := action.Decode(current.ApproveAction)
	if err != nil {
		panic("parked approval action does not decode: " + err.Error())
	}
	actor := current.Player
	ok := false
	if parked.Kind.TurnAction() {
		ok = g.checkTurnAction(actor, parked)
	} else {
		ok = g.checkSpecial(actor, parked)
	}
	if !ok {
		g.emit(event.StateChange{State: g.situation.State.Pop()})
		return true
	}

	g.emit(event.ApproveAction{})
	if parked.Kind.TurnAction() {
		g.applyTurnAction(actor, parked, true)
	} else {
		g.applySpecial(actor, parked)
	}
	return true
}

// --- special cards ---

func specialCardFor(k action.Kind) state.Card {
	return state.SpecialCard(string(k))
}

func (g *Game) playSpecial(playerID string, a action.Action, current state.Node) bool {
	switch current.Name {
	case state.NodePlayerActions, state.NodeDrawPlayerCards, state.NodeDrawInfectionCards:
	default:
		return false
	}
	if !g.checkSpecial(playerID, a) {
		return false
	}
	if a.Kind == action.KindAirlift && a.Player != playerID {
		g.requestApproval(playerID, a.Player, a)
		return true
	}
	g.applySpecial(playerID, a)
	return true
}

func (g *Game) checkSpecial(actor string, a action.Action) bool {
	s := g.situation
	p := s.Player(actor)
	if p == nil || !p.HoldsCard(specialCardFor(a.Kind)) {
		return false
	}
	switch a.Kind {
	case action.KindAirlift:
		moved := s.Player(a.Player)
		return moved != nil && s.Location(a.Location) != nil && moved.Location != a.Location
	case action.KindGovernmentGrant:
		return s.Location(a.Location) != nil &&
			s.ResearchCentersAvailable > 0 &&
			!s.HasResearchCenter(a.Location)
	case action.KindOneQuietNight:
		return !s.QuietNight
	case action.KindResilientPopulation:
		for _, c := range s.InfectionCardsDiscard {
			if c == state.LocationCard(a.Location) {
				return true
			}
		}
		return false
	case action.KindForecast:
		return checkForecastOrder(s, a.Cards)
	}
	return false
}

// checkForecastOrder requires the submitted cards to be a permutation of
// the top six (or all remaining) infection draw cards.
func checkForecastOrder(s *state.Situation, cards []state.Card) bool {
	n := len(s.InfectionCardsDraw)
	if n > 6 {
		n = 6
	}
	if n == 0 || len(cards) != n {
		return false
	}
	top := append([]state.Card{}, s.InfectionCardsDraw[:n]...)
	for _, c := range cards {
		var removed bool
		top, removed = state.RemoveCard(top, c)
		if !removed {
			return false
		}
	}
	return true
}

// applySpecial emits the special's effects. Specials cost no action and
// leave the state machine alone; the card itself is always discarded.
func (g *Game) applySpecial(actor string, a action.Action) {
	g.emit(event.DiscardPlayerCard{Player: actor, Card: specialCardFor(a.Kind)})
	switch a.Kind {
	case action.KindAirlift:
		g.emit(event.MovePawn{Player: a.Player, Location: a.Location})
	case action.KindGovernmentGrant:
		g.emit(event.BuildResearchCenter{Location: a.Location})
	case action.KindOneQuietNight:
		g.emit(event.OneQuietNight{})
	case action.KindResilientPopulation:
		g.emit(event.DiscardDiscardedCity{Location: a.Location})
	case action.KindForecast:
		g.emit(event.Forecast{Cards: a.Cards})
	}
	g.runHook()
}

// --- draws ---

func (g *Game) drawPlayerCard(playerID string, current state.Node) bool {
	if current.Name != state.NodeDrawPlayerCards || current.Player != playerID {
		return false
	}
	s := g.situation
	if len(s.PlayerCardsDraw) == 0 {
		g.defeatOutOfPlayerCards()
		return true
	}

	card := s.PlayerCardsDraw[0]
	remaining := current.DrawsRemaining - 1
	g.emit(event.DrawPlayerCard{Player: playerID, Card: card})

	if card.Type == state.CardEpidemic {
		g.emit(event.InfectionRateIncreased{})
		if !g.drawInfection(epidemicInfect, true) {
			return true
		}
		g.runHook()
		if g.terminal() {
			return true
		}
		st := g.situation.State.Replace(state.Node{
			Name:           state.NodeDrawPlayerCards,
			Player:         playerID,
			DrawsRemaining: remaining,
		})
		g.emit(event.StateChange{State: st.Push(state.Node{
			Name:   state.NodeEpidemic,
			Player: playerID,
		})})
		return true
	}

	g.runHook()
	if g.terminal() {
		return true
	}
	if p := s.Player(playerID); len(p.Hand) > s.MaxPlayerCards {
		st := g.situation.State.Replace(state.Node{
			Name:           state.NodeDrawPlayerCards,
			Player:         playerID,
			DrawsRemaining: remaining,
		})
		g.emit(event.StateChange{State: st.Push(state.Node{
			Name:   state.NodeHandLimitExceeded,
			Player: playerID,
		})})
		return true
	}
	g.advancePlayerDraw(g.situation.State, playerID, remaining)
	return true
}

// advancePlayerDraw moves the draw phase forward after a non-epidemic draw
// resolved: more draws, the infection phase, or defeat on an empty deck.
func (g *Game) advancePlayerDraw(base state.Stack, playerID string, remaining int) {
	if remaining == 0 {
		g.enterInfectionPhase(base, playerID)
		return
	}
	if len(g.situation.PlayerCardsDraw) == 0 {
		g.defeatOutOfPlayerCards()
		return
	}
	g.emit(event.StateChange{State: base.Replace(state.Node{
		Name:           state.NodeDrawPlayerCards,
		Player:         playerID,
		DrawsRemaining: remaining,
	})})
}

func (g *Game) drawInfectionCard(playerID string, current state.Node) bool {
	if current.Name != state.NodeDrawInfectionCards || current.Player != playerID {
		return false
	}
	remaining := current.DrawsRemaining - 1
	if !g.drawInfection(1, false) {
		return true
	}
	g.runHook()
	if g.terminal() {
		return true
	}
	if remaining == 0 {
		g.startNextTurn(g.situation.State, playerID)
		return true
	}
	g.emit(event.StateChange{State: g.situation.State.Replace(state.Node{
		Name:           state.NodeDrawInfectionCards,
		Player:         playerID,
		DrawsRemaining: remaining,
	})})
	return true
}

// increaseIntensity shuffles the infection discard back on top of the draw
// pile and resumes the interrupted draw phase.
func (g *Game) increaseIntensity(playerID string, current state.Node) bool {
	if current.Name != state.NodeEpidemic || current.Player != playerID {
		return false
	}
	shuffled := g.shuffleCards(g.situation.InfectionCardsDiscard)
	g.emit(event.InfectionCardsRestack{Cards: shuffled})

	popped := g.situation.State.Pop(state.NodeDrawPlayerCards)
	parent := popped.Current()
	if parent.DrawsRemaining == 0 {
		g.enterInfectionPhase(popped, parent.Player)
		return true
	}
	if len(g.situation.PlayerCardsDraw) == 0 {
		g.defeatOutOfPlayerCards()
		return true
	}
	g.emit(event.StateChange{State: popped})
	return true
}

// --- discarding ---

// discardPlayerCard discards voluntarily, or satisfies a hand-limit state
// and resumes its parent.
func (g *Game) discardPlayerCard(playerID string, a action.Action) bool {
	if a.Card == nil {
		return false
	}
	s := g.situation
	current := s.State.Current()
	switch current.Name {
	case state.NodeHandLimitExceeded:
		if current.Player != playerID {
			return false
		}
	case state.NodePlayerActions, state.NodeDrawPlayerCards, state.NodeDrawInfectionCards:
	default:
		return false
	}
	p := s.Player(playerID)
	if p == nil || !p.HoldsCard(*a.Card) {
		return false
	}
	g.emit(event.DiscardPlayerCard{Player: playerID, Card: *a.Card})
	if current.Name != state.NodeHandLimitExceeded {
		return true
	}
	if len(p.Hand) > s.MaxPlayerCards {
		return true
	}

	popped := s.State.Pop(state.NodePlayerActions, state.NodeDrawPlayerCards)
	parent := popped.Current()
	if parent.Name == state.NodePlayerActions {
		g.advanceTurnActionOn(popped)
		return true
	}
	g.advancePlayerDraw(popped, parent.Player, parent.DrawsRemaining)
	return true
}

// --- phase advancement ---

func (g *Game) advanceTurnActionOn(base state.Stack) {
	current := base.Current()
	remaining := current.ActionsRemaining - 1
	if remaining == 0 {
		g.enterPlayerDraw(base, current.Player)
		return
	}
	g.emit(event.StateChange{State: base.Replace(state.Node{
		Name:             state.NodePlayerActions,
		Player:           current.Player,
		ActionsRemaining: remaining,
	})})
}

func (g *Game) enterPlayerDraw(base state.Stack, playerID string) {
	if len(g.situation.PlayerCardsDraw) == 0 {
		g.defeatOutOfPlayerCards()
		return
	}
	g.emit(event.StateChange{State: base.Replace(state.Node{
		Name:           state.NodeDrawPlayerCards,
		Player:         playerID,
		DrawsRemaining: playerDraws,
	})})
}

func (g *Game) enterInfectionPhase(base state.Stack, playerID string) {
	if g.situation.QuietNight {
		g.emit(event.QuietNightSkip{})
		g.startNextTurn(base, playerID)
		return
	}
	g.emit(event.StateChange{State: base.Replace(state.Node{
		Name:           state.NodeDrawInfectionCards,
		Player:         playerID,
		DrawsRemaining: g.situation.InfectionRate(),
	})})
}

func (g *Game) startNextTurn(base state.Stack, playerID string) {
	next := g.situation.NextPlayer(playerID)
	g.emit(event.StateChange{State: base.Replace(state.Node{
		Name:             state.NodePlayerActions,
		Player:           next.ID,
		ActionsRemaining: turnActions,
	})})
}

func (g *Game) defeatOutOfPlayerCards() {
	g.emit(event.StateChange{State: state.Stack{{
		Name: state.NodeDefeatOutOfPlayerCards,
	}}})
}

func (g *Game) terminal() bool {
	return g.situation.State.Current().Terminal()
}

// --- end-of-action hook ---

// runHook settles derived consequences after any successful action: the
// Medic clears cured diseases from their own city for free, diseases with
// every cube back in supply become eradicated, and eradicating the last
// disease wins the game.
func (g *Game) runHook() {
	s := g.situation
	for _, p := range s.Players {
		if p.Role != RoleMedic {
			continue
		}
		loc := s.Location(p.Location)
		for _, d := range s.Diseases {
			if d.Status != state.StatusCureDiscovered {
				continue
			}
			if n := loc.Infections[d.Name]; n > 0 {
				g.emit(event.TreatDisease{Location: loc.Name, Disease: d.Name, Number: n})
			}
		}
	}
	for _, d := range s.Diseases {
		if d.Status == state.StatusCureDiscovered && d.Cubes == d.CubesTotal {
			g.emit(event.EradicateDisease{Disease: d.Name})
		}
	}
	for _, d := range s.Diseases {
		if d.Status != state.StatusEradicated {
			return
		}
	}
	g.emit(event.StateChange{State: state.Stack{{Name: state.NodeVictory}}})
}

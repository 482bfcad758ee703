package state

import (
	"encoding/json"
	"strings"
)

// State-machine node names.
const (
	NodeSetup                   = "setup"
	NodePlayerActions           = "player_actions"
	NodeApproveAction           = "approve_action"
	NodeDrawPlayerCards         = "draw_player_cards"
	NodeEpidemic                = "epidemic"
	NodeDrawInfectionCards      = "draw_infection_cards"
	NodeHandLimitExceeded       = "hand_limit_exceeded"
	NodeDefeatOutOfPlayerCards  = "defeat_out_of_player_cards"
	NodeDefeatTooManyOutbreaks  = "defeat_too_many_outbreaks"
	NodeDefeatTooManyInfections = "defeat_too_many_infections"
	NodeVictory                 = "victory"
)

// Node is one state-machine state. Which fields are meaningful depends on
// Name; the rest stay zero and are omitted from the wire form.
type Node struct {
	Name             string          `json:"name"`
	Player           string          `json:"player,omitempty"`
	ActionsRemaining int             `json:"actions_remaining,omitempty"`
	DrawsRemaining   int             `json:"draws_remaining,omitempty"`
	ApprovePlayer    string          `json:"approve_player,omitempty"`
	ApproveAction    json.RawMessage `json:"approve_action,omitempty"`
	Disease          string          `json:"disease,omitempty"`
}

// Terminal reports whether the node ends the game.
func (n Node) Terminal() bool {
	switch n.Name {
	case NodeDefeatOutOfPlayerCards,
		NodeDefeatTooManyOutbreaks,
		NodeDefeatTooManyInfections,
		NodeVictory:
		return true
	}
	return false
}

// Stack is the state-machine stack. The last element is the current node;
// earlier elements are parents awaiting resumption.
type Stack []Node

// Current returns the top of the stack.
func (s Stack) Current() Node {
	if len(s) == 0 {
		panic("state stack is empty")
	}
	return s[len(s)-1]
}

// Replace swaps the top of the stack for n, keeping parents.
func (s Stack) Replace(n Node) Stack {
	if len(s) == 0 {
		panic("state stack is empty")
	}
	out := append(s[:len(s)-1:len(s)-1], n)
	return out
}

// Push enters a substate on top of the current node.
func (s Stack) Push(n Node) Stack {
	return append(s[:len(s):len(s)], n)
}

// Pop resumes the parent. When expected names are given the parent must
// carry one of them; a mismatch means the state machine was corrupted and
// is fatal.
func (s Stack) Pop(expectParent ...string) Stack {
	if len(s) < 2 {
		panic("state stack has no parent to resume")
	}
	out := s[:len(s)-1:len(s)-1]
	if len(expectParent) > 0 {
		name := out.Current().Name
		for _, want := range expectParent {
			if name == want {
				return out
			}
		}
		panic("resumed parent is " + name + ", expected one of: " + strings.Join(expectParent, ", "))
	}
	return out
}

// Clone returns an independent copy of the stack.
func (s Stack) Clone() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}

// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

// Action is a logged hand action.
type Action string

// Canonical action kinds.
const (
	ActionFold     Action = "fold"
	ActionCheck    Action = "check"
	ActionCall     Action = "call"
	ActionBet      Action = "bet"
	ActionThreeBet Action = "3bet"
	ActionFourBet  Action = "4bet"
)

// DefaultActions is the default button order.
var DefaultActions = []Action{ActionFold, ActionCheck, ActionCall, ActionBet, ActionThreeBet, ActionFourBet}

var actionAliases = map[string]Action{
	"fold":      ActionFold,
	"check":     ActionCheck,
	"call":      ActionCall,
	"bet":       ActionBet,
	"raise":     ActionBet,
	"3bet":      ActionThreeBet,
	"3-bet":     ActionThreeBet,
	"threebet":  ActionThreeBet,
	"three-bet": ActionThreeBet,
	"4bet":      ActionFourBet,
	"4-bet":     ActionFourBet,
	"fourbet":   ActionFourBet,
	"four-bet":  ActionFourBet,
}

// ParseAction normalizes an action name. Unknown names are kept as-is and
// count as a non-voluntary hand.
func ParseAction(name string) Action {
	key := strings.ToLower(strings.TrimSpace(name))
	if a, ok := actionAliases[key]; ok {
		return a
	}
	return Action(key)
}

// ParseActions parses a configured button list, rejecting empty names and duplicates.
func ParseActions(names []string) ([]Action, error) {
	if len(names) == 0 {
		return append([]Action(nil), DefaultActions...), nil
	}
	seen := make(map[Action]struct{}, len(names))
	out := make([]Action, 0, len(names))
	for _, name := range names {
		a := ParseAction(name)
		if a == "" {
			return nil, fmt.Errorf("action name must not be empty")
		}
		if _, ok := seen[a]; ok {
			return nil, fmt.Errorf("duplicate action %q", a)
		}
		seen[a] = struct{}{}
		out = append(out, a)
	}
	return out, nil
}

// Voluntary reports whether the action puts money in the pot voluntarily.
func (a Action) Voluntary() bool {
	switch a {
	case ActionCall, ActionBet, ActionThreeBet, ActionFourBet:
		return true
	}
	return false
}

// Aggressive reports whether the action is a raise.
func (a Action) Aggressive() bool {
	switch a {
	case ActionBet, ActionThreeBet, ActionFourBet:
		return true
	}
	return false
}

// Label returns a short display label.
func (a Action) Label() string {
	switch a {
	case ActionThreeBet:
		return "3-Bet"
	case ActionFourBet:
		return "4-Bet"
	case "":
		return ""
	}
	s := string(a)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Record classifies an action into the counters. Hands is left to the caller,
// which mirrors it from the session hand count.
func Record(s *model.Stats, a Action) {
	if a.Voluntary() {
		s.VPIP++
	}
	if a.Aggressive() {
		s.PFR++
	}
	switch a {
	case ActionThreeBet:
		s.ThreeBet++
	case ActionFourBet:
		s.FourBet++
	}
}

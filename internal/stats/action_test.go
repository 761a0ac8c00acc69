package stats

import (
	"testing"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

func TestRecordClassification(t *testing.T) {
	tests := []struct {
		action Action
		want   model.Stats
	}{
		{ActionFold, model.Stats{}},
		{ActionCheck, model.Stats{}},
		{Action("limp"), model.Stats{}},
		{ActionCall, model.Stats{VPIP: 1}},
		{ActionBet, model.Stats{VPIP: 1, PFR: 1}},
		{ActionThreeBet, model.Stats{VPIP: 1, PFR: 1, ThreeBet: 1}},
		{ActionFourBet, model.Stats{VPIP: 1, PFR: 1, FourBet: 1}},
	}
	for _, tt := range tests {
		var got model.Stats
		Record(&got, tt.action)
		if got != tt.want {
			t.Fatalf("%s: expected %+v, got %+v", tt.action, tt.want, got)
		}
	}
}

func TestRecordLeavesHandsToCaller(t *testing.T) {
	s := model.Stats{Hands: 7}
	Record(&s, ActionBet)
	if s.Hands != 7 {
		t.Fatalf("expected hands untouched, got %d", s.Hands)
	}
}

func TestParseAction(t *testing.T) {
	tests := map[string]Action{
		"call":      ActionCall,
		" BET ":     ActionBet,
		"raise":     ActionBet,
		"3bet":      ActionThreeBet,
		"Three-Bet": ActionThreeBet,
		"4-bet":     ActionFourBet,
		"fourbet":   ActionFourBet,
		"Fold":      ActionFold,
		"straddle":  Action("straddle"),
	}
	for in, want := range tests {
		if got := ParseAction(in); got != want {
			t.Fatalf("ParseAction(%q): expected %q, got %q", in, want, got)
		}
	}
}

func TestParseActions(t *testing.T) {
	actions, err := ParseActions(nil)
	if err != nil {
		t.Fatalf("parse defaults: %v", err)
	}
	if len(actions) != len(DefaultActions) {
		t.Fatalf("expected default actions, got %v", actions)
	}
	actions, err = ParseActions([]string{"call", "3-bet"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(actions) != 2 || actions[1] != ActionThreeBet {
		t.Fatalf("unexpected actions: %v", actions)
	}
	if _, err := ParseActions([]string{"bet", "raise"}); err == nil {
		t.Fatalf("expected duplicate alias to be rejected")
	}
	if _, err := ParseActions([]string{"call", "  "}); err == nil {
		t.Fatalf("expected empty action to be rejected")
	}
}

func TestActionLabel(t *testing.T) {
	if got := ActionThreeBet.Label(); got != "3-Bet" {
		t.Fatalf("expected 3-Bet, got %q", got)
	}
	if got := ActionCall.Label(); got != "Call" {
		t.Fatalf("expected Call, got %q", got)
	}
}

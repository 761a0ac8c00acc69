package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

func TestPctZeroHands(t *testing.T) {
	for _, count := range []int{0, 1, 10, 1000} {
		if got := Pct(count, 0); got != 0 {
			t.Fatalf("expected 0 for count %d with no hands, got %d", count, got)
		}
	}
}

func TestPctRoundsAndClamps(t *testing.T) {
	tests := []struct {
		count, hands, want int
	}{
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{10, 10, 100},
		{15, 10, 100},
		{-1, 10, 0},
	}
	for _, tt := range tests {
		if got := Pct(tt.count, tt.hands); got != tt.want {
			t.Fatalf("Pct(%d, %d): expected %d, got %d", tt.count, tt.hands, tt.want, got)
		}
	}
}

func TestPercentages(t *testing.T) {
	got := Percentages(model.Stats{VPIP: 5, PFR: 4, ThreeBet: 2, FourBet: 1, Hands: 20})
	want := model.Percentages{VPIP: 25, PFR: 20, ThreeBet: 10, FourBet: 5}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
	if got := Sparkline([]float64{5, 5, 5}); got != "+++" {
		t.Fatalf("expected flat sparkline, got %q", got)
	}
	if got := Sparkline([]float64{0, 100}); got != " @" {
		t.Fatalf("expected min/max sparkline, got %q", got)
	}
}

func TestRenderSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderSummary(&buf, nil); err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if !strings.Contains(buf.String(), "No runs found.") {
		t.Fatalf("expected empty message, got %q", buf.String())
	}

	runs := []model.RunRecord{
		{Outcome: model.OutcomeCompleted, LevelReached: 2, SessionHands: 20, Stats: model.Stats{VPIP: 20, PFR: 10, Hands: 20}},
		{Outcome: model.OutcomeFailed, LevelReached: 5, SessionHands: 20, Stats: model.Stats{VPIP: 0, PFR: 0, ThreeBet: 4, Hands: 20}},
	}
	buf.Reset()
	if err := RenderSummary(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Runs: 2", "Completed: 1 (50%)", "Hands: 40", "Highest level: 5", "VPIP 50%  PFR 25%  3-Bet 10%  4-Bet 0%"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}

func TestRenderRunTable(t *testing.T) {
	runs := []model.RunRecord{{
		Outcome:      model.OutcomeCompleted,
		StartLevel:   1,
		EndLevel:     2,
		LevelReached: 2,
		SessionHands: 20,
		Stats:        model.Stats{VPIP: 20, PFR: 10, Hands: 20},
		EndedAt:      time.Date(2026, 5, 1, 9, 30, 0, 0, time.Local),
	}}
	var buf bytes.Buffer
	if err := RenderRunTable(&buf, runs); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	for _, want := range []string{"2026-05-01 09:30", "completed", "1-2", "100%", "50%"} {
		if !strings.Contains(lines[1], want) {
			t.Fatalf("row missing %q: %q", want, lines[1])
		}
	}
}

func TestRenderCurvesTrimsToWidth(t *testing.T) {
	runs := make([]model.RunRecord, 30)
	for i := range runs {
		runs[i] = model.RunRecord{Stats: model.Stats{VPIP: i, PFR: i / 2, Hands: 30}}
	}
	var buf bytes.Buffer
	if err := RenderCurves(&buf, runs, 1, 16); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected title and two curves, got %d lines", len(lines))
	}
	if got := len(lines[1]); got != 16 {
		t.Fatalf("expected curve line of width 16, got %d: %q", got, lines[1])
	}
}

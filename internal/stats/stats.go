// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Pct returns count as a whole percentage of hands, clamped to [0, 100].
// Zero hands yields 0.
func Pct(count, hands int) int {
	if hands <= 0 {
		return 0
	}
	v := int(math.Floor(100*float64(count)/float64(hands) + 0.5))
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Percentages derives display percentages from counters.
func Percentages(s model.Stats) model.Percentages {
	return model.Percentages{
		VPIP:     Pct(s.VPIP, s.Hands),
		PFR:      Pct(s.PFR, s.Hands),
		ThreeBet: Pct(s.ThreeBet, s.Hands),
		FourBet:  Pct(s.FourBet, s.Hands),
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		idx = max(0, min(idx, len(sparkChars)-1))
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary block for archived runs.
func RenderSummary(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs found.")
		return err
	}
	var completed, hands int
	var total model.Stats
	bestLevel := 0
	for _, r := range runs {
		if r.Outcome == model.OutcomeCompleted {
			completed++
		}
		hands += r.SessionHands
		total.VPIP += r.Stats.VPIP
		total.PFR += r.Stats.PFR
		total.ThreeBet += r.Stats.ThreeBet
		total.FourBet += r.Stats.FourBet
		bestLevel = max(bestLevel, r.LevelReached)
	}
	total.Hands = hands
	pct := Percentages(total)

	lines := []string{
		"Summary",
		fmt.Sprintf("Runs: %d", len(runs)),
		fmt.Sprintf("Completed: %d (%d%%)", completed, Pct(completed, len(runs))),
		fmt.Sprintf("Hands: %d", hands),
		fmt.Sprintf("Highest level: %d", bestLevel),
		fmt.Sprintf("VPIP %d%%  PFR %d%%  3-Bet %d%%  4-Bet %d%%", pct.VPIP, pct.PFR, pct.ThreeBet, pct.FourBet),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderRunTable prints one row per archived run.
func RenderRunTable(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		return nil
	}
	headers := []string{"Ended", "Outcome", "Levels", "Reached", "Hands", "VPIP", "PFR", "3B", "4B"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		pct := Percentages(r.Stats)
		rows = append(rows, []string{
			r.EndedAt.Local().Format("2006-01-02 15:04"),
			r.Outcome,
			fmt.Sprintf("%d-%d", r.StartLevel, r.EndLevel),
			fmt.Sprintf("%d", r.LevelReached),
			fmt.Sprintf("%d", r.SessionHands),
			fmt.Sprintf("%d%%", pct.VPIP),
			fmt.Sprintf("%d%%", pct.PFR),
			fmt.Sprintf("%d%%", pct.ThreeBet),
			fmt.Sprintf("%d%%", pct.FourBet),
		})
	}
	rightAlign := map[int]bool{3: true, 4: true, 5: true, 6: true, 7: true, 8: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}

// RenderCurves prints VPIP and PFR sparklines across runs, trimmed to width.
func RenderCurves(w io.Writer, runs []model.RunRecord, window, width int) error {
	if len(runs) == 0 {
		return nil
	}
	vpips := make([]float64, len(runs))
	pfrs := make([]float64, len(runs))
	for i, r := range runs {
		pct := Percentages(r.Stats)
		vpips[i] = float64(pct.VPIP)
		pfrs[i] = float64(pct.PFR)
	}
	vpips = MovingAverage(vpips, window)
	pfrs = MovingAverage(pfrs, window)

	const labelWidth = 6
	if width > labelWidth && len(runs) > width-labelWidth {
		keep := width - labelWidth
		vpips = vpips[len(vpips)-keep:]
		pfrs = pfrs[len(pfrs)-keep:]
	}
	if _, err := fmt.Fprintf(w, "Curves (window %d)\n", window); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s%s\n", labelWidth, "VPIP", Sparkline(vpips)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%-*s%s\n", labelWidth, "PFR", Sparkline(pfrs)); err != nil {
		return err
	}
	return nil
}

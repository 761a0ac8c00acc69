// Package stats contains statistics calculations and reporting.
package stats

import (
	"context"
	"io"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

// RunLister lists archived runs.
type RunLister interface {
	ListRuns(ctx context.Context, filter model.RunFilter) ([]model.RunRecord, error)
}

// Report contains precomputed data for stats rendering.
type Report struct {
	Runs   []model.RunRecord
	Window int
}

// BuildReport loads and prepares data for stats rendering.
func BuildReport(ctx context.Context, st RunLister, filter model.RunFilter, window int) (Report, error) {
	runs, err := st.ListRuns(ctx, filter)
	if err != nil {
		return Report{}, err
	}
	if filter.Last > 0 && len(runs) > filter.Last {
		runs = runs[len(runs)-filter.Last:]
	}
	return Report{Runs: runs, Window: window}, nil
}

// Render writes the summary, run table and curves sized to width.
func (r Report) Render(w io.Writer, width int) error {
	if err := RenderSummary(w, r.Runs); err != nil {
		return err
	}
	if err := RenderRunTable(w, r.Runs); err != nil {
		return err
	}
	return RenderCurves(w, r.Runs, r.Window, width)
}

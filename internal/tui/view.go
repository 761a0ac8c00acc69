package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/pokerdrill/internal/drill"
	"github.com/verte-zerg/pokerdrill/internal/model"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	levelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	flashStyle  = levelStyle.Copy().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A")).Bold(true)
	hudStyle    = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	hudLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	hudValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	snap := m.drill.Snapshot()
	switch snap.Phase {
	case drill.PhaseIdle:
		content = m.renderStart()
	case drill.PhaseInLevel:
		content = m.renderGame(snap)
		if m.confirming {
			content = modalStyle.Render("Are you sure? This will reset the game.\n\n[y] yes   [n] no")
		}
	case drill.PhaseComplete:
		content = m.renderFinished(snap, winStyle.Render("Run complete!"))
	case drill.PhaseFailed:
		content = m.renderFinished(snap, errorStyle.Render("Run failed"))
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) renderStart() string {
	lines := []string{titleStyle.Render("Poker discipline drill"), ""}
	for _, input := range m.inputs {
		lines = append(lines, input.View())
	}
	lines = append(lines, "", mutedStyle.Render("Set total levels, or a start and end level."))
	if m.formError != "" {
		lines = append(lines, errorStyle.Render(m.formError))
	}
	lines = append(lines, footerStyle.Render("tab next field · enter start · esc quit"))
	return strings.Join(lines, "\n")
}

func (m *Model) renderGame(snap drill.Snapshot) string {
	s := snap.State
	level := fmt.Sprintf("Level %d of %d", s.CurrentLevel, s.EndLevel)
	if m.flash {
		level = flashStyle.Render(level)
	} else {
		level = levelStyle.Render(level)
	}
	lines := []string{
		level,
		m.progress.ViewAs(handFraction(s.HandsInLevel, snap.HandsPerLevel)),
		mutedStyle.Render(fmt.Sprintf("Hands Completed: %d / %d", s.HandsInLevel, snap.HandsPerLevel)),
		"",
		m.renderHUD(snap),
		"",
		m.renderActions(),
	}
	if m.status != "" {
		lines = append(lines, "", mutedStyle.Render(m.status))
	}
	lines = append(lines, "", m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFinished(snap drill.Snapshot, title string) string {
	lines := []string{
		title,
		"",
		mutedStyle.Render(fmt.Sprintf("Reached level %d of %d", snap.State.CurrentLevel, snap.State.EndLevel)),
		renderHUD(snap.Percentages, snap.State.Stats, false),
		"",
		footerStyle.Render("enter new run · q quit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderHUD(snap drill.Snapshot) string {
	return renderHUD(snap.Percentages, snap.State.Stats, m.privacy)
}

func renderHUD(pct model.Percentages, st model.Stats, hidden bool) string {
	cells := []struct {
		label string
		value string
	}{
		{"VPIP", fmt.Sprintf("%d", pct.VPIP)},
		{"PFR", fmt.Sprintf("%d", pct.PFR)},
		{"3B", fmt.Sprintf("%d", pct.ThreeBet)},
		{"4B", fmt.Sprintf("%d", pct.FourBet)},
		{"Hands", fmt.Sprintf("%d", st.Hands)},
	}
	parts := make([]string, 0, len(cells))
	for _, c := range cells {
		value := c.value
		if hidden {
			value = "--"
		}
		parts = append(parts, hudLabelStyle.Render(c.label)+" "+hudValueStyle.Render(value))
	}
	return hudStyle.Render(strings.Join(parts, "   "))
}

func (m *Model) renderActions() string {
	parts := make([]string, 0, len(m.actions))
	for i, a := range m.actions {
		if i >= len(m.keys.Actions) {
			break
		}
		parts = append(parts, fmt.Sprintf("[%d] %s", i+1, a.Label()))
	}
	return strings.Join(parts, "  ")
}

func handFraction(hands, perLevel int) float64 {
	if perLevel <= 0 {
		return 0
	}
	return float64(hands) / float64(perLevel)
}

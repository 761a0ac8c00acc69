// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/verte-zerg/pokerdrill/internal/drill"
	"github.com/verte-zerg/pokerdrill/internal/model"
	"github.com/verte-zerg/pokerdrill/internal/stats"
)

const flashDuration = 400 * time.Millisecond

const (
	fieldTotal = iota
	fieldStart
	fieldEnd
)

type flashDoneMsg struct {
	id int
}

// Model implements the Bubble Tea drill UI.
type Model struct {
	drill   *drill.Drill
	actions []stats.Action
	logger  *log.Logger
	bell    io.Writer

	keys     keyMap
	help     help.Model
	progress progress.Model

	inputs     []textinput.Model
	inputIndex int
	formError  string

	confirming bool
	privacy    bool
	sound      bool
	status     string
	flash      bool
	flashID    int

	width  int
	height int
}

// NewModel constructs a drill TUI model. A drill already resumed from storage
// opens straight on the game screen.
func NewModel(d *drill.Drill, settings model.Settings, actions []stats.Action, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Model{
		drill:    d,
		actions:  actions,
		logger:   logger,
		bell:     os.Stderr,
		keys:     newKeyMap(actions),
		help:     help.New(),
		progress: progress.New(progress.WithSolidFill("#C89A3A"), progress.WithoutPercentage()),
		privacy:  settings.Privacy,
		sound:    settings.Sound,
	}
	m.initInputs()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.drill.Phase() == drill.PhaseIdle {
		return m.setInputIndex(fieldTotal)
	}
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = max(10, min(40, msg.Width-10))
		m.help.Width = msg.Width
		return m, nil
	case flashDoneMsg:
		if msg.id == m.flashID {
			m.flash = false
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.drill.Phase() {
		case drill.PhaseIdle:
			return m.updateStart(msg)
		case drill.PhaseInLevel:
			if m.confirming {
				return m.updateConfirm(msg)
			}
			return m.updateGame(msg)
		default:
			return m.updateFinished(msg)
		}
	}
	if m.drill.Phase() == drill.PhaseIdle && len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.inputIndex], cmd = m.inputs[m.inputIndex].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateStart(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		params, err := m.formParams()
		if err == nil {
			err = m.drill.Configure(context.Background(), params)
		}
		if err != nil {
			if errors.Is(err, drill.ErrInvalidConfiguration) {
				m.formError = "Enter valid level settings"
			} else {
				m.formError = err.Error()
			}
			return m, nil
		}
		m.formError = ""
		m.status = "Run started"
		return m, m.ring()
	case tea.KeyTab, tea.KeyDown:
		return m, m.setInputIndex(m.inputIndex + 1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m, m.setInputIndex(m.inputIndex - 1)
	}
	var cmd tea.Cmd
	m.inputs[m.inputIndex], cmd = m.inputs[m.inputIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateGame(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	for i, binding := range m.keys.Actions {
		if key.Matches(msg, binding) {
			sig, err := m.drill.RecordAction(ctx, m.actions[i])
			return m, m.handleSignal(sig, err)
		}
	}
	switch {
	case key.Matches(msg, m.keys.Undo):
		sig, err := m.drill.Undo(ctx)
		return m, m.handleSignal(sig, err)
	case key.Matches(msg, m.keys.AddLevel):
		sig, err := m.drill.AddLevel(ctx)
		return m, m.handleSignal(sig, err)
	case key.Matches(msg, m.keys.Fail):
		if m.drill.NeedsConfirmation() {
			m.confirming = true
			return m, nil
		}
		sig, err := m.drill.Fail(ctx, drill.Confirmed)
		return m, m.handleSignal(sig, err)
	case key.Matches(msg, m.keys.Privacy):
		m.privacy = !m.privacy
		return m, nil
	case key.Matches(msg, m.keys.Sound):
		m.sound = !m.sound
		if m.sound {
			m.status = "Sound on"
		} else {
			m.status = "Sound off"
		}
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	answer := drill.Declined
	switch msg.String() {
	case "y", "Y":
		answer = drill.Confirmed
	case "n", "N", "esc":
	default:
		return m, nil
	}
	m.confirming = false
	sig, err := m.drill.Fail(context.Background(), answer)
	return m, m.handleSignal(sig, err)
}

func (m *Model) updateFinished(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		m.drill.Dismiss()
		m.status = ""
		m.resetInputs()
		return m, m.setInputIndex(fieldTotal)
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// handleSignal maps a core signal to status text and fire-and-forget feedback.
func (m *Model) handleSignal(sig drill.Signal, err error) tea.Cmd {
	if err != nil {
		m.logger.Warn("drill operation rejected", "err", err)
		m.status = err.Error()
		return nil
	}
	switch sig {
	case drill.SignalHandRecorded:
		m.status = ""
	case drill.SignalLevelAdvanced:
		m.status = fmt.Sprintf("Level up! Now on level %d", m.drill.Snapshot().State.CurrentLevel)
		return tea.Batch(m.startFlash(), m.ring())
	case drill.SignalLevelAdded:
		m.status = "Level added"
		return m.startFlash()
	case drill.SignalRunCompleted:
		m.status = ""
		return m.ring()
	case drill.SignalRunFailed:
		m.status = ""
		return m.ring()
	case drill.SignalFailCancelled:
		m.status = "Run continues"
	case drill.SignalUndoApplied:
		m.status = "Undid last hand"
	case drill.SignalUndoEmpty:
		m.status = "Nothing to undo"
	case drill.SignalDebounced:
		m.status = "Ignored double tap"
	}
	return nil
}

func (m *Model) startFlash() tea.Cmd {
	m.flash = true
	m.flashID++
	id := m.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{id: id}
	})
}

func (m *Model) ring() tea.Cmd {
	if !m.sound || m.bell == nil {
		return nil
	}
	w := m.bell
	return func() tea.Msg {
		if _, err := io.WriteString(w, "\a"); err != nil {
			// Best-effort terminal bell.
			_ = err
		}
		return nil
	}
}

func (m *Model) initInputs() {
	m.inputs = []textinput.Model{
		newLevelInput("Total levels: ", "e.g. 5"),
		newLevelInput("Start level:  ", "or a range start"),
		newLevelInput("End level:    ", "range end"),
	}
}

func newLevelInput(prompt, placeholder string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = 4
	input.Validate = func(s string) error {
		for _, r := range s {
			if r < '0' || r > '9' {
				return fmt.Errorf("digits only")
			}
		}
		return nil
	}
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) resetInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.formError = ""
}

func (m *Model) setInputIndex(idx int) tea.Cmd {
	count := len(m.inputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.inputIndex = idx
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.inputIndex {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// formParams reads the start form. Blank fields are zero and left to validation.
func (m *Model) formParams() (drill.Params, error) {
	values := make([]int, len(m.inputs))
	for i, input := range m.inputs {
		raw := strings.TrimSpace(input.Value())
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return drill.Params{}, fmt.Errorf("%s must be a number", strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(input.Prompt), ":")))
		}
		values[i] = n
	}
	return drill.Params{
		TotalLevels: values[fieldTotal],
		StartLevel:  values[fieldStart],
		EndLevel:    values[fieldEnd],
	}, nil
}

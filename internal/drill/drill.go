// Package drill implements the level progression state machine for a
// poker-discipline drill run.
//
// A Drill owns the session state, its undo history and the persisted slot.
// All mutation goes through its methods; each runs to completion synchronously.
package drill

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/pokerdrill/internal/model"
	"github.com/verte-zerg/pokerdrill/internal/stats"
)

// Defaults applied when Options leave a field zero.
const (
	DefaultHandsPerLevel = 10
	DefaultDebounce      = 250 * time.Millisecond
	DefaultUndoLimit     = 100
)

// ErrNoActiveRun is returned by run operations outside of PhaseInLevel.
var ErrNoActiveRun = errors.New("no active run")

// Phase is the state of the progression machine.
type Phase int

// Phases.
const (
	PhaseIdle Phase = iota
	PhaseInLevel
	PhaseComplete
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInLevel:
		return "in-level"
	case PhaseComplete:
		return "complete"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Signal is emitted to the presentation layer after an operation.
type Signal string

// Signals.
const (
	SignalNone          Signal = ""
	SignalHandRecorded  Signal = "handRecorded"
	SignalLevelAdvanced Signal = "levelAdvanced"
	SignalRunCompleted  Signal = "runCompleted"
	SignalRunFailed     Signal = "runFailed"
	SignalFailCancelled Signal = "failCancelled"
	SignalUndoApplied   Signal = "undoApplied"
	SignalUndoEmpty     Signal = "undoEmpty"
	SignalLevelAdded    Signal = "levelAdded"
	SignalDebounced     Signal = "debounced"
)

// ConfirmFunc is the yes/no gate consulted by Fail.
type ConfirmFunc func() bool

// Confirmed and Declined are fixed answers for callers that collect
// the confirmation themselves.
var (
	Confirmed ConfirmFunc = func() bool { return true }
	Declined  ConfirmFunc = func() bool { return false }
)

// Archiver stores finished runs.
type Archiver interface {
	InsertRun(ctx context.Context, run model.RunRecord) (int64, error)
}

// Snapshot is a read-only view of the drill for rendering.
type Snapshot struct {
	Phase         Phase
	State         model.SessionState
	Percentages   model.Percentages
	HandsPerLevel int
	UndoDepth     int
}

// Options configures a Drill.
type Options struct {
	HandsPerLevel int
	// Debounce is the minimum gap between recorded hands; negative disables it.
	Debounce time.Duration
	// UndoLimit bounds the undo history; negative means unbounded.
	UndoLimit int
	Persister *Persister
	Archiver  Archiver
	Logger    *log.Logger
	Listener  func(Signal, Snapshot)
	Now       func() time.Time
}

// Drill is the single owner of a run's state.
type Drill struct {
	handsPerLevel int
	debounce      time.Duration
	persister     *Persister
	archiver      Archiver
	logger        *log.Logger
	listener      func(Signal, Snapshot)
	now           func() time.Time

	phase     Phase
	state     model.SessionState
	history   history
	lastHand  time.Time
	startedAt time.Time
}

// New constructs an idle Drill.
func New(opts Options) *Drill {
	d := &Drill{
		handsPerLevel: opts.HandsPerLevel,
		debounce:      opts.Debounce,
		persister:     opts.Persister,
		archiver:      opts.Archiver,
		logger:        opts.Logger,
		listener:      opts.Listener,
		now:           opts.Now,
	}
	if d.handsPerLevel <= 0 {
		d.handsPerLevel = DefaultHandsPerLevel
	}
	switch {
	case d.debounce == 0:
		d.debounce = DefaultDebounce
	case d.debounce < 0:
		d.debounce = 0
	}
	switch {
	case opts.UndoLimit == 0:
		d.history.limit = DefaultUndoLimit
	case opts.UndoLimit > 0:
		d.history.limit = opts.UndoLimit
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}
	if d.now == nil {
		d.now = time.Now
	}
	return d
}

// Resume restores a persisted run. It reports whether a run was found; when
// found the drill enters PhaseInLevel directly.
func (d *Drill) Resume(ctx context.Context) (bool, error) {
	if d.persister == nil {
		return false, nil
	}
	state, found, err := d.persister.Load(ctx)
	if errors.Is(err, errCorrupt) {
		d.logger.Warn("discarding corrupt saved run", "err", err)
		d.clearSlot(ctx)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	d.state = state
	d.phase = PhaseInLevel
	d.history.reset()
	d.lastHand = time.Time{}
	d.startedAt = d.now()
	d.logger.Info("resumed run",
		"level", state.CurrentLevel, "end", state.EndLevel, "hands", state.HandsInLevel)
	return true, nil
}

// Configure starts a fresh run, discarding any prior state. Invalid params
// return ErrInvalidConfiguration and leave everything unchanged.
func (d *Drill) Configure(ctx context.Context, p Params) error {
	start, end, err := Validate(p)
	if err != nil {
		return err
	}
	d.clearSlot(ctx)
	d.state = newState(start, end)
	d.phase = PhaseInLevel
	d.history.reset()
	d.lastHand = time.Time{}
	d.startedAt = d.now()
	d.save(ctx)
	d.logger.Info("run configured", "start", start, "end", end)
	return nil
}

// RecordAction logs one hand with the given action.
func (d *Drill) RecordAction(ctx context.Context, a stats.Action) (Signal, error) {
	if d.phase != PhaseInLevel {
		return SignalNone, ErrNoActiveRun
	}
	now := d.now()
	if !d.lastHand.IsZero() && now.Sub(d.lastHand) < d.debounce {
		return d.emit(SignalDebounced), nil
	}
	d.lastHand = now

	d.history.push(d.state)
	stats.Record(&d.state.Stats, a)
	d.state.HandsInLevel++
	d.state.SessionHands++
	d.state.Stats.Hands = d.state.SessionHands

	if d.state.HandsInLevel < d.handsPerLevel {
		d.save(ctx)
		return d.emit(SignalHandRecorded), nil
	}
	if d.state.CurrentLevel >= d.state.FinalLevel() {
		d.finish(ctx, PhaseComplete, model.OutcomeCompleted)
		return d.emit(SignalRunCompleted), nil
	}
	d.state.CurrentLevel++
	d.state.HandsInLevel = 0
	d.save(ctx)
	d.logger.Debug("level advanced", "level", d.state.CurrentLevel)
	return d.emit(SignalLevelAdvanced), nil
}

// AddLevel extends the run by one level without touching any counters.
func (d *Drill) AddLevel(ctx context.Context) (Signal, error) {
	if d.phase != PhaseInLevel {
		return SignalNone, ErrNoActiveRun
	}
	d.state.EndLevel++
	d.state.TotalLevels = d.state.EndLevel - d.state.StartLevel + 1
	d.save(ctx)
	return d.emit(SignalLevelAdded), nil
}

// Undo rolls back the most recent hand. With empty history it changes nothing
// and returns SignalUndoEmpty.
func (d *Drill) Undo(ctx context.Context) (Signal, error) {
	if d.phase != PhaseInLevel {
		return SignalNone, ErrNoActiveRun
	}
	prev, ok := d.history.pop()
	if !ok {
		return d.emit(SignalUndoEmpty), nil
	}
	d.state = prev
	d.save(ctx)
	return d.emit(SignalUndoApplied), nil
}

// NeedsConfirmation reports whether Fail will consult its confirmation gate.
func (d *Drill) NeedsConfirmation() bool {
	return d.phase == PhaseInLevel
}

// Fail abandons the run if confirm returns true. A nil confirm is treated
// as declined.
func (d *Drill) Fail(ctx context.Context, confirm ConfirmFunc) (Signal, error) {
	if d.phase != PhaseInLevel {
		return SignalNone, ErrNoActiveRun
	}
	if confirm == nil || !confirm() {
		return d.emit(SignalFailCancelled), nil
	}
	d.finish(ctx, PhaseFailed, model.OutcomeFailed)
	return d.emit(SignalRunFailed), nil
}

// Dismiss returns a finished drill to PhaseIdle.
func (d *Drill) Dismiss() {
	if d.phase == PhaseComplete || d.phase == PhaseFailed {
		d.phase = PhaseIdle
		d.state = model.SessionState{}
	}
}

// Phase returns the current phase.
func (d *Drill) Phase() Phase {
	return d.phase
}

// Snapshot returns a copy of the current state with derived percentages.
// After a run finishes it still holds the final state until Dismiss.
func (d *Drill) Snapshot() Snapshot {
	return Snapshot{
		Phase:         d.phase,
		State:         d.state,
		Percentages:   stats.Percentages(d.state.Stats),
		HandsPerLevel: d.handsPerLevel,
		UndoDepth:     d.history.depth(),
	}
}

func (d *Drill) finish(ctx context.Context, phase Phase, outcome string) {
	d.phase = phase
	d.history.reset()
	d.clearSlot(ctx)
	d.archive(ctx, outcome)
	d.logger.Info("run finished", "outcome", outcome,
		"level", d.state.CurrentLevel, "hands", d.state.SessionHands)
}

func (d *Drill) archive(ctx context.Context, outcome string) {
	if d.archiver == nil {
		return
	}
	run := model.RunRecord{
		Outcome:      outcome,
		StartLevel:   d.state.StartLevel,
		EndLevel:     d.state.EndLevel,
		LevelReached: d.state.CurrentLevel,
		SessionHands: d.state.SessionHands,
		Stats:        d.state.Stats,
		StartedAt:    d.startedAt,
		EndedAt:      d.now(),
	}
	if _, err := d.archiver.InsertRun(ctx, run); err != nil {
		d.logger.Error("failed to archive run", "err", err)
	}
}

func (d *Drill) save(ctx context.Context) {
	if d.persister == nil {
		return
	}
	if err := d.persister.Save(ctx, d.state); err != nil {
		d.logger.Error("failed to save run", "err", err)
	}
}

func (d *Drill) clearSlot(ctx context.Context) {
	if d.persister == nil {
		return
	}
	if err := d.persister.Clear(ctx); err != nil {
		d.logger.Error("failed to clear saved run", "err", err)
	}
}

func (d *Drill) emit(sig Signal) Signal {
	if d.listener != nil {
		d.listener(sig, d.Snapshot())
	}
	return sig
}

// Package model defines shared data structures.
package model

import "time"

// Settings defines drill settings.
type Settings struct {
	HandsPerLevel int
	Debounce      time.Duration
	UndoLimit     int
	Actions       []string
	Slot          string
	Sound         bool
	Privacy       bool
}

// Stats holds cumulative action counters for a run.
type Stats struct {
	VPIP     int
	PFR      int
	ThreeBet int
	FourBet  int
	Hands    int
}

// Percentages are display values derived from Stats.
type Percentages struct {
	VPIP     int
	PFR      int
	ThreeBet int
	FourBet  int
}

// SessionState is the full progress record of an active run.
// It holds no references, so a plain copy is an independent snapshot.
type SessionState struct {
	StartLevel   int
	CurrentLevel int
	EndLevel     int
	TotalLevels  int
	HandsInLevel int
	SessionHands int
	Stats        Stats
}

// FinalLevel returns the last level of the run.
func (s SessionState) FinalLevel() int {
	return s.StartLevel + s.TotalLevels - 1
}

// Run outcomes stored in the archive.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// RunRecord captures a finished run.
type RunRecord struct {
	ID           int64
	Outcome      string
	StartLevel   int
	EndLevel     int
	LevelReached int
	SessionHands int
	Stats        Stats
	StartedAt    time.Time
	EndedAt      time.Time
}

// RunFilter defines filters for listing archived runs.
type RunFilter struct {
	Outcome string
	Since   *time.Time
	Last    int
}

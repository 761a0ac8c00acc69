package drill

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/tidwall/gjson"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

// DefaultSlot is the slot key used when none is configured.
const DefaultSlot = "pokerDisciplineGame"

// errCorrupt marks a slot that does not hold a JSON object.
var errCorrupt = errors.New("persisted state is corrupt")

// KV is a durable key/value slot store.
type KV interface {
	Put(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Delete(ctx context.Context, key string) error
}

// Persister saves and restores SessionState in a single named slot.
type Persister struct {
	kv  KV
	key string
}

// NewPersister returns a Persister for the given slot. An empty key uses DefaultSlot.
func NewPersister(kv KV, key string) *Persister {
	if key == "" {
		key = DefaultSlot
	}
	return &Persister{kv: kv, key: key}
}

type record struct {
	StartLevel   int         `json:"startLevel"`
	CurrentLevel int         `json:"currentLevel"`
	EndLevel     int         `json:"endLevel"`
	TotalLevels  int         `json:"totalLevels"`
	Hands        int         `json:"hands"`
	SessionHands int         `json:"sessionHands"`
	Stats        recordStats `json:"stats"`
}

type recordStats struct {
	VPIP     int `json:"VPIP"`
	PFR      int `json:"PFR"`
	ThreeBet int `json:"threeBet"`
	FourBet  int `json:"fourBet"`
	Hands    int `json:"hands"`
}

// Save overwrites the slot with state.
func (p *Persister) Save(ctx context.Context, state model.SessionState) error {
	data, err := json.Marshal(record{
		StartLevel:   state.StartLevel,
		CurrentLevel: state.CurrentLevel,
		EndLevel:     state.EndLevel,
		TotalLevels:  state.TotalLevels,
		Hands:        state.HandsInLevel,
		SessionHands: state.SessionHands,
		Stats: recordStats{
			VPIP:     state.Stats.VPIP,
			PFR:      state.Stats.PFR,
			ThreeBet: state.Stats.ThreeBet,
			FourBet:  state.Stats.FourBet,
			Hands:    state.Stats.Hands,
		},
	})
	if err != nil {
		return err
	}
	return p.kv.Put(ctx, p.key, data)
}

// Load reads the slot. found is false when the slot is empty. Missing or falsy
// fields are filled with defaults; a value that is not a JSON object returns
// errCorrupt.
func (p *Persister) Load(ctx context.Context) (state model.SessionState, found bool, err error) {
	data, ok, err := p.kv.Get(ctx, p.key)
	if err != nil || !ok {
		return model.SessionState{}, false, err
	}
	state, err = decodeState(data)
	if err != nil {
		return model.SessionState{}, false, err
	}
	return state, true, nil
}

// Clear erases the slot.
func (p *Persister) Clear(ctx context.Context) error {
	return p.kv.Delete(ctx, p.key)
}

func decodeState(data []byte) (model.SessionState, error) {
	if !gjson.ValidBytes(data) {
		return model.SessionState{}, errCorrupt
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return model.SessionState{}, errCorrupt
	}

	var s model.SessionState
	s.StartLevel = positive(root.Get("startLevel"), 1)
	s.CurrentLevel = positive(root.Get("currentLevel"), s.StartLevel)
	s.HandsInLevel = positive(root.Get("hands"), 0)
	s.TotalLevels = positive(root.Get("totalLevels"), 1)
	s.EndLevel = positive(root.Get("endLevel"), s.StartLevel+s.TotalLevels-1)
	s.SessionHands = positive(root.Get("sessionHands"), 0)

	stats := root.Get("stats")
	if stats.IsObject() {
		s.Stats = model.Stats{
			VPIP:     positive(stats.Get("VPIP"), 0),
			PFR:      positive(stats.Get("PFR"), 0),
			ThreeBet: positive(stats.Get("threeBet"), 0),
			FourBet:  positive(stats.Get("fourBet"), 0),
			Hands:    positive(stats.Get("hands"), s.SessionHands),
		}
	}
	return s, nil
}

// positive returns the field as an int, or def when it is missing, not a
// number, or not greater than zero.
func positive(v gjson.Result, def int) int {
	if v.Type != gjson.Number {
		return def
	}
	n := v.Int()
	if n <= 0 {
		return def
	}
	return int(n)
}

package drill

import (
	"context"
	"errors"
	"testing"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

func TestPersisterRoundTrip(t *testing.T) {
	kv := newMemKV()
	p := NewPersister(kv, "custom")
	ctx := context.Background()
	states := []model.SessionState{
		{StartLevel: 1, CurrentLevel: 1, EndLevel: 1, TotalLevels: 1},
		{StartLevel: 3, CurrentLevel: 5, EndLevel: 8, TotalLevels: 6, HandsInLevel: 7, SessionHands: 27,
			Stats: model.Stats{VPIP: 20, PFR: 11, ThreeBet: 4, FourBet: 1, Hands: 27}},
	}
	for _, want := range states {
		if err := p.Save(ctx, want); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, found, err := p.Load(ctx)
		if err != nil || !found {
			t.Fatalf("load: found=%v err=%v", found, err)
		}
		if got != want {
			t.Fatalf("expected %+v, got %+v", want, got)
		}
	}
	if _, ok := kv.data["custom"]; !ok {
		t.Fatalf("expected custom slot key to be used")
	}
	if err := p.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, found, _ := p.Load(ctx); found {
		t.Fatalf("expected empty slot after clear")
	}
}

func TestPersisterWritesDocumentedLayout(t *testing.T) {
	kv := newMemKV()
	p := NewPersister(kv, "")
	state := model.SessionState{StartLevel: 1, CurrentLevel: 2, EndLevel: 2, TotalLevels: 2, HandsInLevel: 3, SessionHands: 13,
		Stats: model.Stats{VPIP: 5, PFR: 4, ThreeBet: 2, FourBet: 1, Hands: 13}}
	if err := p.Save(context.Background(), state); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := `{"startLevel":1,"currentLevel":2,"endLevel":2,"totalLevels":2,"hands":3,"sessionHands":13,` +
		`"stats":{"VPIP":5,"PFR":4,"threeBet":2,"fourBet":1,"hands":13}}`
	if got := string(kv.data[DefaultSlot]); got != want {
		t.Fatalf("unexpected record:\n got %s\nwant %s", got, want)
	}
}

func TestDecodeStateDefaults(t *testing.T) {
	tests := []struct {
		name string
		data string
		want model.SessionState
	}{
		{
			name: "empty object",
			data: `{}`,
			want: model.SessionState{StartLevel: 1, CurrentLevel: 1, EndLevel: 1, TotalLevels: 1},
		},
		{
			name: "start only",
			data: `{"startLevel":4}`,
			want: model.SessionState{StartLevel: 4, CurrentLevel: 4, EndLevel: 4, TotalLevels: 1},
		},
		{
			name: "end derived from total",
			data: `{"startLevel":2,"totalLevels":3,"currentLevel":3,"hands":6}`,
			want: model.SessionState{StartLevel: 2, CurrentLevel: 3, EndLevel: 4, TotalLevels: 3, HandsInLevel: 6},
		},
		{
			name: "falsy and wrong types",
			data: `{"startLevel":0,"currentLevel":"7","hands":null,"totalLevels":-1,"stats":false}`,
			want: model.SessionState{StartLevel: 1, CurrentLevel: 1, EndLevel: 1, TotalLevels: 1},
		},
		{
			name: "partial stats",
			data: `{"startLevel":1,"currentLevel":1,"endLevel":2,"totalLevels":2,"sessionHands":4,"stats":{"VPIP":3}}`,
			want: model.SessionState{StartLevel: 1, CurrentLevel: 1, EndLevel: 2, TotalLevels: 2, SessionHands: 4,
				Stats: model.Stats{VPIP: 3, Hands: 4}},
		},
		{
			name: "unknown fields ignored",
			data: `{"startLevel":1,"endLevel":3,"totalLevels":3,"firstHandClicked":true}`,
			want: model.SessionState{StartLevel: 1, CurrentLevel: 1, EndLevel: 3, TotalLevels: 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeState([]byte(tt.data))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestDecodeStateCorrupt(t *testing.T) {
	for _, data := range []string{"", "{", "[1,2]", `"text"`, "42"} {
		if _, err := decodeState([]byte(data)); !errors.Is(err, errCorrupt) {
			t.Fatalf("expected errCorrupt for %q, got %v", data, err)
		}
	}
}

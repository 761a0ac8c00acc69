package drill

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		params    Params
		wantStart int
		wantEnd   int
		wantErr   bool
	}{
		{params: Params{TotalLevels: 1}, wantStart: 1, wantEnd: 1},
		{params: Params{TotalLevels: 12}, wantStart: 1, wantEnd: 12},
		{params: Params{StartLevel: 3, EndLevel: 3}, wantStart: 3, wantEnd: 3},
		{params: Params{StartLevel: 3, EndLevel: 10}, wantStart: 3, wantEnd: 10},
		{params: Params{TotalLevels: 4, StartLevel: 9, EndLevel: 2}, wantStart: 1, wantEnd: 4},
		{params: Params{}, wantErr: true},
		{params: Params{StartLevel: 0, EndLevel: 4}, wantErr: true},
		{params: Params{StartLevel: 6, EndLevel: 5}, wantErr: true},
		{params: Params{TotalLevels: -3}, wantErr: true},
	}
	for _, tt := range tests {
		start, end, err := Validate(tt.params)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Fatalf("expected ErrInvalidConfiguration for %+v, got %v", tt.params, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("unexpected error for %+v: %v", tt.params, err)
		}
		if start != tt.wantStart || end != tt.wantEnd {
			t.Fatalf("expected [%d,%d] for %+v, got [%d,%d]", tt.wantStart, tt.wantEnd, tt.params, start, end)
		}
	}
}

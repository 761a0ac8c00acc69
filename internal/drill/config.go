package drill

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/pokerdrill/internal/model"
)

// ErrInvalidConfiguration is returned by Configure when neither a positive
// level count nor a valid start/end pair is supplied.
var ErrInvalidConfiguration = errors.New("invalid level configuration")

// Params configures a new run. TotalLevels takes precedence when positive.
type Params struct {
	TotalLevels int
	StartLevel  int
	EndLevel    int
}

// Validate resolves params into the first and last level of the run.
func Validate(p Params) (start, end int, err error) {
	switch {
	case p.TotalLevels > 0:
		return 1, p.TotalLevels, nil
	case p.StartLevel > 0 && p.EndLevel >= p.StartLevel:
		return p.StartLevel, p.EndLevel, nil
	}
	return 0, 0, fmt.Errorf("%w: need total levels > 0 or 0 < start <= end (got total=%d start=%d end=%d)",
		ErrInvalidConfiguration, p.TotalLevels, p.StartLevel, p.EndLevel)
}

func newState(start, end int) model.SessionState {
	return model.SessionState{
		StartLevel:   start,
		CurrentLevel: start,
		EndLevel:     end,
		TotalLevels:  end - start + 1,
	}
}

package drill

import "github.com/verte-zerg/pokerdrill/internal/model"

// history is a bounded stack of state snapshots. A limit of zero means unbounded;
// when full, the oldest snapshot is dropped.
type history struct {
	limit int
	items []model.SessionState
}

func (h *history) push(s model.SessionState) {
	if h.limit > 0 && len(h.items) >= h.limit {
		copy(h.items, h.items[1:])
		h.items = h.items[:len(h.items)-1]
	}
	h.items = append(h.items, s)
}

func (h *history) pop() (model.SessionState, bool) {
	if len(h.items) == 0 {
		return model.SessionState{}, false
	}
	last := h.items[len(h.items)-1]
	h.items = h.items[:len(h.items)-1]
	return last, true
}

func (h *history) depth() int {
	return len(h.items)
}

func (h *history) reset() {
	h.items = nil
}

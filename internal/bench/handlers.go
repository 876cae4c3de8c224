package bench

import "github.com/vango-dev/reactor/pkg/dom"

// The handlers below are small records carrying only what they act on, so
// a row's handler never keeps the row's signals alive.

// action triggers a named store action from a button.
type action struct {
	store *Store
	name  string
}

func (h action) HandleEvent(*dom.Event) {
	if err := h.store.Dispatch(h.name); err != nil {
		h.store.logger.Error("action failed", "action", h.name, "error", err)
	}
}

// selectRow selects a row when its label is clicked.
type selectRow struct {
	store *Store
	id    int
}

func (h selectRow) HandleEvent(*dom.Event) {
	h.store.Select(h.id)
}

// removeRow deletes a row when its remove icon is clicked.
type removeRow struct {
	store *Store
	id    int
}

func (h removeRow) HandleEvent(*dom.Event) {
	h.store.Remove(h.id)
}

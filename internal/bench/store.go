package bench

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/vango-dev/reactor/pkg/reactive"
)

// Action names, as used by button ids and Dispatch.
const (
	ActionRun      = "run"
	ActionRunLots  = "runlots"
	ActionAdd      = "add"
	ActionUpdate   = "update"
	ActionClear    = "clear"
	ActionSwapRows = "swaprows"
)

// Actions lists the button actions in page order.
var Actions = []string{ActionRun, ActionRunLots, ActionAdd, ActionUpdate, ActionClear, ActionSwapRows}

// ErrUnknownAction is returned by Dispatch for an unrecognised name.
var ErrUnknownAction = errors.New("bench: unknown action")

// Store holds the benchmark state: the row list and the selected id.
// Selected id 0 means no selection; row ids start at 1.
type Store struct {
	scope *reactive.Scope

	// gen owns the label signals of the current rows. It is replaced
	// whenever every row is replaced.
	gen *reactive.Scope

	data     *reactive.Signal[[]Row]
	selected *reactive.Signal[int]
	selector *reactive.Selector[int]

	words  *Generator
	nextID int
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithSeed seeds the label generator.
func WithSeed(seed int64) StoreOption {
	return func(s *Store) {
		s.words = NewGenerator(seed)
	}
}

// WithStoreLogger sets the store's logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty store owned by s.
func NewStore(s *reactive.Scope, opts ...StoreOption) *Store {
	st := &Store{
		scope:  s,
		gen:    s.Child(),
		nextID: 1,
		logger: s.Runtime().Logger().With("component", "bench"),
	}
	for _, opt := range opts {
		opt(st)
	}
	if st.words == nil {
		st.words = NewGenerator(1)
	}

	st.data = reactive.NewSignal(s, []Row(nil))
	st.selected = reactive.NewSignal(s, 0)
	st.selector = reactive.NewSelector(s, st.selected.Get)

	reactive.CreateEffect(s, func() reactive.Cleanup {
		rows := st.data.Get()
		st.logger.Debug("rows changed", "count", len(rows))
		return nil
	})
	return st
}

// Data returns the row list cell.
func (s *Store) Data() *reactive.Signal[[]Row] {
	return s.data
}

// Rows returns the current rows without subscribing.
func (s *Store) Rows() []Row {
	return s.data.Peek()
}

// Selected returns the selected id without subscribing, or 0.
func (s *Store) Selected() int {
	return s.selected.Peek()
}

// IsSelected reports whether id is selected. Inside a computation it
// subscribes to changes of id's selection state only.
func (s *Store) IsSelected(id int) bool {
	return s.selector.Is(id)
}

// Run replaces the rows with 1,000 new ones and clears the selection.
func (s *Store) Run() {
	s.Create(1000)
}

// RunLots replaces the rows with 10,000 new ones and clears the selection.
func (s *Store) RunLots() {
	s.Create(10000)
}

// Create replaces the rows with count new ones and clears the selection.
func (s *Store) Create(count int) {
	gen := s.scope.Child()
	s.replace(gen, s.build(gen, count))
}

// Add appends 1,000 rows.
func (s *Store) Add() {
	rows := s.data.Peek()
	next := make([]Row, 0, len(rows)+1000)
	next = append(next, rows...)
	s.data.Set(append(next, s.build(s.gen, 1000)...))
}

// Update appends " !!!" to the label of every 10th row, then notifies the
// row list.
func (s *Store) Update() {
	s.data.Update(func(rows []Row) []Row {
		for i := 0; i < len(rows); i += 10 {
			rows[i].Label.Update(func(l string) string { return l + " !!!" })
		}
		return rows
	})
}

// Clear removes every row and clears the selection.
func (s *Store) Clear() {
	s.replace(s.scope.Child(), nil)
}

// SwapRows swaps the rows at positions 1 and 998 when there are more than
// 998 rows.
func (s *Store) SwapRows() {
	rows := s.data.Peek()
	if len(rows) <= 998 {
		return
	}
	next := append([]Row(nil), rows...)
	next[1], next[998] = next[998], next[1]
	s.data.Set(next)
}

// Remove deletes the row with the given id.
func (s *Store) Remove(id int) {
	rows := s.data.Peek()
	next := make([]Row, 0, len(rows))
	var removed *reactive.Scope
	for _, r := range rows {
		if r.ID != id {
			next = append(next, r)
		} else {
			removed = r.scope
		}
	}
	if removed == nil {
		return
	}
	s.data.Set(next)
	removed.Dispose()
}

// Select marks id as the selected row.
func (s *Store) Select(id int) {
	s.selected.Set(id)
}

// Dispatch runs the named button action.
func (s *Store) Dispatch(name string) error {
	switch name {
	case ActionRun:
		s.Run()
	case ActionRunLots:
		s.RunLots()
	case ActionAdd:
		s.Add()
	case ActionUpdate:
		s.Update()
	case ActionClear:
		s.Clear()
	case ActionSwapRows:
		s.SwapRows()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
	return nil
}

// replace swaps in a new row list and its label generation. The old
// generation is disposed after the rows that read it are gone.
func (s *Store) replace(gen *reactive.Scope, rows []Row) {
	old := s.gen
	s.gen = gen
	s.data.Set(rows)
	s.selected.Set(0)
	old.Dispose()
}

func (s *Store) build(gen *reactive.Scope, count int) []Row {
	rows := make([]Row, count)
	for i := range rows {
		rs := gen.Child()
		rows[i] = Row{
			ID:    s.nextID,
			Label: reactive.NewSignal(rs, s.words.Label()),
			scope: rs,
		}
		s.nextID++
	}
	return rows
}

package bench

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reactor/pkg/dom"
)

func newTestInstance(t *testing.T) (*Instance, *dom.MemoryDocument, *dom.MemNode) {
	t.Helper()
	in, doc := NewMemoryInstance(Options{Seed: 1})
	t.Cleanup(in.Close)
	tbody := doc.GetElementByID("tbody")
	require.NotNil(t, tbody)
	return in, doc, tbody
}

func rowIDs(rows []Row) []int {
	ids := make([]int, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func labels(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Label.Peek()
	}
	return out
}

// rowLabel returns the label text rendered in tr.
func rowLabel(tr *dom.MemNode) string {
	return tr.Child(1).TextContent()
}

func TestStore_RoundTrip(t *testing.T) {
	in, _, tbody := newTestInstance(t)
	st := in.Store

	st.Run()
	require.Len(t, st.Rows(), 1000)
	require.Equal(t, 1, st.Rows()[0].ID)
	require.Equal(t, 1000, st.Rows()[999].ID)
	before := labels(st.Rows())

	st.Remove(500)
	rows := st.Rows()
	require.Len(t, rows, 999)
	require.NotContains(t, rowIDs(rows), 500)
	require.Equal(t, before[:499], labels(rows[:499]))
	require.Equal(t, before[500:], labels(rows[499:]))
	require.Equal(t, 999, tbody.ChildCount())

	st.Add()
	rows = st.Rows()
	require.Len(t, rows, 1999)
	require.Equal(t, 1001, rows[999].ID)
	require.Equal(t, 2000, rows[1998].ID)
	require.Equal(t, before[:499], labels(rows[:499]))
	require.Equal(t, 1999, tbody.ChildCount())

	for i, tr := range tbody.Children() {
		require.Equal(t, rows[i].Label.Peek(), rowLabel(tr), "row %d", i)
	}
}

func TestStore_Create(t *testing.T) {
	in, _, tbody := newTestInstance(t)
	st := in.Store

	st.Create(5)
	st.Select(3)
	require.Equal(t, []int{1, 2, 3, 4, 5}, rowIDs(st.Rows()))
	require.Equal(t, 5, tbody.ChildCount())

	st.Create(2)
	require.Equal(t, []int{6, 7}, rowIDs(st.Rows()))
	require.Equal(t, 2, tbody.ChildCount())
	require.Zero(t, st.Selected())
}

func TestStore_UpdateEveryTenth(t *testing.T) {
	in, doc, tbody := newTestInstance(t)
	st := in.Store
	st.Run()
	before := labels(st.Rows())

	doc.ResetCounters()
	runs := in.Runtime.Stats().EffectRuns
	st.Update()

	// 100 label texts, the row list and the row-count logger.
	require.Equal(t, uint64(102), in.Runtime.Stats().EffectRuns-runs)
	c := doc.Counters()
	require.Equal(t, 100, c.TextWrites)
	require.Zero(t, c.Created)
	require.Zero(t, c.Moved)
	require.Zero(t, c.Removed)

	for i, r := range st.Rows() {
		want := before[i]
		if i%10 == 0 {
			want += " !!!"
		}
		require.Equal(t, want, r.Label.Peek(), "row %d", i)
		require.Equal(t, want, rowLabel(tbody.Child(i)))
	}
}

func TestStore_SelectTouchesTwoRows(t *testing.T) {
	in, doc, tbody := newTestInstance(t)
	st := in.Store
	st.Run()

	doc.ResetCounters()
	runs := in.Runtime.Stats().EffectRuns
	st.Select(5)
	require.Equal(t, uint64(2), in.Runtime.Stats().EffectRuns-runs, "selector and one row")
	require.Equal(t, 1, doc.Counters().AttrWrites)
	class, _ := tbody.Child(4).Attr("class")
	require.Equal(t, "danger", class)

	runs = in.Runtime.Stats().EffectRuns
	st.Select(7)
	require.Equal(t, uint64(3), in.Runtime.Stats().EffectRuns-runs, "selector, old row and new row")
	_, ok := tbody.Child(4).Attr("class")
	require.False(t, ok)
	class, _ = tbody.Child(6).Attr("class")
	require.Equal(t, "danger", class)

	st.Run()
	require.Zero(t, st.Selected())
}

func TestStore_SwapRows(t *testing.T) {
	in, doc, tbody := newTestInstance(t)
	st := in.Store

	st.Create(998)
	doc.ResetCounters()
	st.SwapRows()
	require.Zero(t, doc.Counters().Moved, "998 rows is too few to swap")

	st.Create(999)
	first, last := st.Rows()[1], st.Rows()[998]
	doc.ResetCounters()
	st.SwapRows()
	require.Equal(t, 2, doc.Counters().Moved, "999 rows swap")
	require.Equal(t, last.ID, st.Rows()[1].ID)
	require.Equal(t, first.ID, st.Rows()[998].ID)

	st.Run()
	first, last = st.Rows()[1], st.Rows()[998]
	doc.ResetCounters()
	st.SwapRows()
	require.Equal(t, 2, doc.Counters().Moved)
	require.Zero(t, doc.Counters().Created)
	require.Equal(t, last.ID, st.Rows()[1].ID)
	require.Equal(t, first.ID, st.Rows()[998].ID)
	require.Equal(t, last.Label.Peek(), rowLabel(tbody.Child(1)))
	require.Equal(t, first.Label.Peek(), rowLabel(tbody.Child(998)))
}

func TestStore_ClearUsesOneOperation(t *testing.T) {
	in, doc, tbody := newTestInstance(t)
	st := in.Store
	st.Run()
	scopes := in.Runtime.Stats().Scopes

	doc.ResetCounters()
	st.Clear()
	require.Empty(t, st.Rows())
	require.Zero(t, tbody.ChildCount())
	require.Equal(t, 1, doc.Counters().Clears)
	require.Equal(t, 1000, doc.Counters().Removed)
	require.Less(t, in.Runtime.Stats().Scopes, scopes)
}

func TestStore_RemoveReleasesLabel(t *testing.T) {
	in, _, _ := newTestInstance(t)
	st := in.Store
	st.Run()
	require.Equal(t, 1000, st.gen.Children())

	for i := 0; i < 3; i++ {
		st.Add()
		removed := st.Rows()[len(st.Rows())-1]
		st.Remove(removed.ID)
		require.True(t, removed.scope.IsDisposed())
		require.Zero(t, removed.Label.Subscribers())

		last := st.Rows()[len(st.Rows())-1]
		st.Remove(last.ID)
	}
	require.Len(t, st.Rows(), 1000+3*1000-6)
	require.Equal(t, len(st.Rows()), st.gen.Children())
}

func TestStore_IDsNeverReused(t *testing.T) {
	in, _, _ := newTestInstance(t)
	st := in.Store
	st.Run()
	st.Clear()
	st.Run()
	require.Equal(t, 1001, st.Rows()[0].ID)
}

func TestStore_Dispatch(t *testing.T) {
	in, _, _ := newTestInstance(t)
	st := in.Store

	for _, name := range Actions {
		require.NoError(t, st.Dispatch(name), name)
	}
	err := st.Dispatch("jump")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownAction))
	require.Contains(t, err.Error(), `"jump"`)
}

func TestStore_ButtonsDispatch(t *testing.T) {
	in, doc, tbody := newTestInstance(t)

	click := func(id string) {
		t.Helper()
		n := doc.GetElementByID(id)
		require.NotNil(t, n, id)
		require.NoError(t, doc.Dispatch(n.NodeID(), "click"))
	}

	click(ActionRun)
	require.Equal(t, 1000, tbody.ChildCount())

	// Select then remove through the row links.
	tr := tbody.Child(2)
	require.NoError(t, doc.Dispatch(tr.Child(1).FirstChild().NodeID(), "click"))
	require.Equal(t, in.Store.Rows()[2].ID, in.Store.Selected())

	icon := tr.Child(2).FirstChild().FirstChild()
	require.NoError(t, doc.Dispatch(icon.NodeID(), "click"))
	require.Equal(t, 999, tbody.ChildCount())

	click(ActionClear)
	require.Zero(t, tbody.ChildCount())
}

func TestGenerator_Deterministic(t *testing.T) {
	a, b := NewGenerator(42), NewGenerator(42)
	for i := 0; i < 100; i++ {
		la := a.Label()
		require.Equal(t, la, b.Label())
		require.Len(t, strings.Fields(la), 3)
	}
}

package vdom

import (
	"strings"
	"testing"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/render"
)

func newBuilder() (*Builder, *dom.MemoryDocument, *reactive.Scope) {
	rt := reactive.NewRuntime()
	root := rt.NewRoot()
	doc := dom.NewMemoryDocument()
	return NewBuilder(doc, root), doc, root
}

func TestBuildStatic(t *testing.T) {
	b, doc, _ := newBuilder()
	b.Build(Div(ID("main"), Class("container", "wide"),
		H1("Title"),
		Fragment(P(Textf("%d rows", 3)), nil, Span(AriaHidden(true))),
	), doc.Root())

	got := render.InnerHTML(doc.Root())
	want := `<div id="main" class="container wide"><h1>Title</h1><p>3 rows</p><span aria-hidden="true"></span></div>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBuildDynText(t *testing.T) {
	b, doc, root := newBuilder()
	label := reactive.NewSignal(root, "hello")
	b.Build(Span(DynText(label.Get)), doc.Root())
	doc.ResetCounters()

	label.Set("world")
	if got := render.InnerHTML(doc.Root()); got != "<span>world</span>" {
		t.Errorf("got %s", got)
	}
	label.Set("world")
	if c := doc.Counters(); c.TextWrites != 1 || c.Created != 0 {
		t.Errorf("counters = %+v", c)
	}
}

func TestBuildDynAttr(t *testing.T) {
	b, doc, root := newBuilder()
	href := reactive.NewSignal(root, "/a")
	b.Build(A(DynAttr("href", href.Get), "link"), doc.Root())

	href.Set("/b")
	if got := render.InnerHTML(doc.Root()); got != `<a href="/b">link</a>` {
		t.Errorf("got %s", got)
	}
	writes := doc.Counters().AttrWrites
	href.Set("/b")
	if doc.Counters().AttrWrites != writes {
		t.Error("unchanged attribute rewritten")
	}
}

func TestBuildToggleClass(t *testing.T) {
	b, doc, root := newBuilder()
	danger := reactive.NewSignal(root, false)
	active := reactive.NewSignal(root, false)
	b.Build(Tr(Class("row"),
		ToggleClass("danger", danger.Get),
		ToggleClass("active", active.Get),
	), doc.Root())
	b.Build(Tr(ToggleClass("danger", danger.Get)), doc.Root())

	html := func() string { return render.InnerHTML(doc.Root()) }
	if got := html(); got != `<tr class="row"></tr><tr></tr>` {
		t.Fatalf("got %s", got)
	}

	danger.Set(true)
	active.Set(true)
	if got := html(); got != `<tr class="row danger active"></tr><tr class="danger"></tr>` {
		t.Fatalf("got %s", got)
	}

	danger.Set(false)
	if got := html(); got != `<tr class="row active"></tr><tr></tr>` {
		t.Fatalf("got %s", got)
	}
}

func TestBuildEvents(t *testing.T) {
	b, doc, _ := newBuilder()
	clicks := 0
	nodes := b.Build(Button(ID("run"), OnClick(HandlerFunc(func() { clicks++ })), "Run"), doc.Root())

	if err := doc.Dispatch(nodes[0].NodeID(), "click"); err != nil {
		t.Fatal(err)
	}
	if clicks != 1 {
		t.Errorf("clicks = %d", clicks)
	}
}

func TestBuildRegionSlots(t *testing.T) {
	b, doc, _ := newBuilder()
	var slots []Slot
	region := Region(func(b *Builder, slot Slot) {
		slots = append(slots, slot)
		b.Doc.InsertBefore(slot.Parent, b.Doc.CreateText("R"), slot.Anchor)
	})

	b.Build(Div(
		Ul(region),
		Ul(region, Li("tail")),
		Ul(Li("head"), region),
	), doc.Root())

	if len(slots) != 3 {
		t.Fatalf("region ran %d times", len(slots))
	}
	if !slots[0].Exclusive || slots[0].Anchor != nil {
		t.Errorf("only child slot = %+v", slots[0])
	}
	if slots[1].Exclusive || slots[1].Anchor == nil {
		t.Errorf("leading slot = %+v", slots[1])
	}
	if slots[2].Exclusive || slots[2].Anchor != nil {
		t.Errorf("trailing slot = %+v", slots[2])
	}

	got := render.InnerHTML(doc.Root())
	want := `<div><ul>R</ul><ul>R<li>tail</li></ul><ul><li>head</li>R</ul></div>`
	if got != want {
		t.Errorf("got  %s\nwant %s", got, want)
	}
}

func TestBuildBindingsOwnedByScope(t *testing.T) {
	b, doc, root := newBuilder()
	label := reactive.NewSignal(root, "x")
	row := root.Child()
	b.With(row).Build(Span(DynText(label.Get), ToggleClass("c", func() bool { return label.Get() != "" })), doc.Root())

	if label.Subscribers() != 2 {
		t.Fatalf("Subscribers() = %d, want 2", label.Subscribers())
	}
	row.Dispose()
	if label.Subscribers() != 0 {
		t.Errorf("bindings survive scope disposal")
	}
}

func TestNodeRejectsMultiple(t *testing.T) {
	b, _, _ := newBuilder()
	defer func() {
		r := recover()
		if r == nil || !strings.Contains(r.(string), "single node") {
			t.Errorf("recover() = %v", r)
		}
	}()
	b.Node(Fragment(Text("a"), Text("b")))
}

func TestElArgs(t *testing.T) {
	v := Td(nil, []Attr{Class("a"), {}}, []*VNode{Text("x"), nil}, "y")
	if v.Tag != "td" || len(v.Attrs) != 1 || len(v.Children) != 2 {
		t.Errorf("unexpected node %+v", v)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for unsupported argument")
		}
	}()
	El("div", 42)
}

func TestKindString(t *testing.T) {
	tests := map[VKind]string{
		KindElement:  "Element",
		KindText:     "Text",
		KindDynText:  "DynText",
		KindFragment: "Fragment",
		KindRegion:   "Region",
		VKind(99):    "Unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

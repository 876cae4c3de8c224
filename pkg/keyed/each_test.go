package keyed

import (
	"testing"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/render"
	"github.com/vango-dev/reactor/pkg/vdom"
)

func TestEachInsideTree(t *testing.T) {
	rt := reactive.NewRuntime()
	root := rt.NewRoot()
	doc := dom.NewMemoryDocument()
	items := reactive.NewSignal(root, []string{"a", "b"})
	selected := reactive.NewSignal(root, "b")
	sel := reactive.NewSelector(root, selected.Get)

	id := func(s string) string { return s }
	vdom.Mount(root, doc, doc.Root(), func(*reactive.Scope) *vdom.VNode {
		return vdom.Div(
			vdom.Ul(Each(items, id, func(_ *reactive.Scope, s string) *vdom.VNode {
				return vdom.Li(vdom.ToggleClass("on", func() bool { return sel.Is(s) }), s)
			})),
			vdom.Ul(vdom.Li("first"), Each(items, id, func(_ *reactive.Scope, s string) *vdom.VNode {
				return vdom.Li(s)
			}), vdom.Li("last")),
		)
	})

	got := render.InnerHTML(doc.Root())
	want := `<div><ul><li>a</li><li class="on">b</li></ul><ul><li>first</li><li>a</li><li>b</li><li>last</li></ul></div>`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	items.Set([]string{"c", "a"})
	selected.Set("c")
	got = render.InnerHTML(doc.Root())
	want = `<div><ul><li class="on">c</li><li>a</li></ul><ul><li>first</li><li>c</li><li>a</li><li>last</li></ul></div>`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}

	items.Set(nil)
	if c := doc.Counters(); c.Clears != 1 {
		t.Errorf("Clears = %d, want 1 (exclusive list only)", c.Clears)
	}
}

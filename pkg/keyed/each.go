package keyed

import (
	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Each describes a keyed list as a tree region. render returns the row's
// description; it is lowered by the enclosing builder with the row scope as
// owner, so the row's bindings are disposed with it.
//
//	vdom.Tbody(keyed.Each(store.Data(), Row.Key, app.row))
func Each[T any, K comparable](
	each reactive.Reader[[]T],
	key func(T) K,
	render func(*reactive.Scope, T) *vdom.VNode,
	opts ...Option,
) *vdom.VNode {
	return vdom.Region(func(b *vdom.Builder, slot vdom.Slot) {
		all := make([]Option, 0, len(opts)+2)
		all = append(all, WithAnchor(slot.Anchor), WithExclusive(slot.Exclusive))
		all = append(all, opts...)
		For(b.Scope, b.Doc, slot.Parent, each, key, func(s *reactive.Scope, item T) dom.Node {
			return b.With(s).Node(render(s, item))
		}, all...)
	})
}

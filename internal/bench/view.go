package bench

import (
	"github.com/vango-dev/reactor/pkg/keyed"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Title is the heading shown in the jumbotron.
const Title = "Reactor Keyed"

var buttonLabels = map[string]string{
	ActionRun:      "Create 1,000 rows",
	ActionRunLots:  "Create 10,000 rows",
	ActionAdd:      "Append 1,000 rows",
	ActionUpdate:   "Update every 10th row",
	ActionClear:    "Clear",
	ActionSwapRows: "Swap Rows",
}

// View describes the benchmark page for store. Extra list options, such as
// a stats observer, are passed to the row list.
func View(store *Store, opts ...keyed.Option) *vdom.VNode {
	buttons := make([]*vdom.VNode, 0, len(Actions))
	for _, name := range Actions {
		buttons = append(buttons, actionButton(store, name))
	}

	return vdom.Div(vdom.Class("container"),
		vdom.Div(vdom.Class("jumbotron"),
			vdom.Div(vdom.Class("row"),
				vdom.Div(vdom.Class("col-md-6"), vdom.H1(Title)),
				vdom.Div(vdom.Class("col-md-6"),
					vdom.Div(vdom.Class("row"), buttons),
				),
			),
		),
		vdom.Table(vdom.Class("table table-hover table-striped test-data"),
			vdom.Tbody(vdom.ID("tbody"),
				keyed.Each(store.Data(), Row.Key, func(_ *reactive.Scope, r Row) *vdom.VNode {
					return rowView(store, r)
				}, opts...),
			),
		),
	)
}

func actionButton(store *Store, name string) *vdom.VNode {
	return vdom.Div(vdom.Class("col-sm-6 smallpad"),
		vdom.Button(vdom.Class("btn btn-primary btn-block"), vdom.Type("button"), vdom.ID(name),
			vdom.OnClick(action{store: store, name: name}),
			buttonLabels[name],
		),
	)
}

func rowView(store *Store, r Row) *vdom.VNode {
	id := r.ID
	return vdom.Tr(vdom.ToggleClass("danger", func() bool { return store.IsSelected(id) }),
		vdom.Td(vdom.Class("col-md-1"), vdom.Textf("%d", id)),
		vdom.Td(vdom.Class("col-md-4"),
			vdom.A(vdom.OnClick(selectRow{store: store, id: id}), vdom.DynText(r.Label.Get)),
		),
		vdom.Td(vdom.Class("col-md-1"),
			vdom.A(vdom.OnClick(removeRow{store: store, id: id}),
				vdom.Span(vdom.Class("glyphicon glyphicon-remove"), vdom.AriaHidden(true)),
			),
		),
		vdom.Td(vdom.Class("col-md-6")),
	)
}

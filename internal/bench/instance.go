package bench

import (
	"log/slog"

	"github.com/vango-dev/reactor/pkg/dom"
	"github.com/vango-dev/reactor/pkg/keyed"
	"github.com/vango-dev/reactor/pkg/reactive"
	"github.com/vango-dev/reactor/pkg/vdom"
)

// Options configures an Instance.
type Options struct {
	Seed     int64
	MaxDepth int
	Logger   *slog.Logger

	// Observer receives the stats of every row-list pass.
	Observer func(keyed.Stats)
}

// Instance is one mounted benchmark app with its own runtime.
type Instance struct {
	Runtime *reactive.Runtime
	Doc     dom.Document
	Store   *Store
	Root    *vdom.Root

	scope *reactive.Scope
}

// NewInstance mounts the app into container of doc.
func NewInstance(doc dom.Document, container dom.Node, opts Options) *Instance {
	rtOpts := []reactive.Option{reactive.WithLogger(opts.Logger)}
	if opts.MaxDepth > 0 {
		rtOpts = append(rtOpts, reactive.WithMaxDepth(opts.MaxDepth))
	}
	rt := reactive.NewRuntime(rtOpts...)
	scope := rt.NewRoot()

	store := NewStore(scope, WithSeed(opts.Seed), WithStoreLogger(opts.Logger))
	var listOpts []keyed.Option
	if opts.Observer != nil {
		listOpts = append(listOpts, keyed.WithObserver(opts.Observer))
	}
	if opts.Logger != nil {
		listOpts = append(listOpts, keyed.WithLogger(opts.Logger))
	}

	root := vdom.Mount(scope, doc, container, func(*reactive.Scope) *vdom.VNode {
		return View(store, listOpts...)
	})
	return &Instance{
		Runtime: rt,
		Doc:     doc,
		Store:   store,
		Root:    root,
		scope:   scope,
	}
}

// NewMemoryInstance mounts the app into the body of a new memory document.
func NewMemoryInstance(opts Options) (*Instance, *dom.MemoryDocument) {
	doc := dom.NewMemoryDocument()
	return NewInstance(doc, doc.Root(), opts), doc
}

// Close unmounts the app and disposes its runtime's root scope.
func (in *Instance) Close() {
	in.Root.Unmount()
	in.scope.Dispose()
}

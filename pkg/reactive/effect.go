package reactive

// Effect is a computation that re-runs when its dependencies change.
//
// Effects run immediately when created and re-run synchronously whenever a
// signal or memo read during their last run is written. Each run replaces
// the dependency set wholesale: sources from the previous run are dropped
// before the body executes, so only signals actually read by the latest run
// can trigger the next one.
type Effect struct {
	id    uint64
	rt    *Runtime
	owner *Scope

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals/memos read during the last run.
	sources []*signalBase

	queued     bool
	running    bool
	rerun      bool
	isDisposed bool
	runs       int
}

// CreateEffect creates an effect owned by scope s and runs it immediately.
//
// Example:
//
//	reactive.CreateEffect(scope, func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return func() { fmt.Println("cleanup") }
//	})
func CreateEffect(s *Scope, fn func() Cleanup) *Effect {
	s.mustLive("CreateEffect")
	e := &Effect{
		id:    nextID(),
		rt:    s.rt,
		owner: s,
		fn:    fn,
	}
	s.own(e)
	s.rt.stats.Effects++
	e.run()
	return e
}

// MarkDirty schedules the effect. Outside a batch it re-runs immediately;
// inside a batch it is queued once. Disposed effects are never scheduled.
// Implements the Listener interface.
func (e *Effect) MarkDirty() {
	if e.isDisposed {
		return
	}
	if e.rt.batchDepth > 0 {
		e.rt.enqueue(e)
		return
	}
	e.run()
}

// ID returns the unique identifier for this effect.
// Implements the Listener interface.
func (e *Effect) ID() uint64 {
	return e.id
}

// Runs returns how many times the body has executed.
func (e *Effect) Runs() int {
	return e.runs
}

// Dependencies returns the number of signals read during the last run.
func (e *Effect) Dependencies() int {
	return len(e.sources)
}

// Dispose stops the effect, runs its cleanup and unsubscribes it from all
// sources. Disposing twice is a no-op.
func (e *Effect) Dispose() {
	e.dispose()
}

// IsDisposed reports whether the effect has been disposed.
func (e *Effect) IsDisposed() bool {
	return e.isDisposed
}

// run executes the effect body with e as the tracking target. A write
// that dirties e while its body is running does not recurse: the body
// finishes, its cleanup runs and the body runs again, until a pass ends
// without being dirtied.
func (e *Effect) run() {
	if e.isDisposed {
		return
	}
	if e.running {
		e.rerun = true
		return
	}
	rt := e.rt
	rt.enter("Effect.run", e.id)
	defer rt.leave()

	for pass := 1; ; pass++ {
		if rt.maxDepth > 0 && pass > rt.maxDepth {
			rt.logger.Error("reactive cycle", "op", "Effect.run", "id", e.id, "passes", pass-1)
			fail("Effect.run", e.id, ErrCycle)
		}
		e.rerun = false
		e.runOnce()
		if !e.rerun || e.isDisposed {
			return
		}
	}
}

func (e *Effect) runOnce() {
	rt := e.rt
	if e.cleanup != nil {
		cleanup := e.cleanup
		e.cleanup = nil
		rt.Untrack(cleanup)
	}
	e.clearSources()

	e.runs++
	rt.stats.EffectRuns++

	var cleanup Cleanup
	e.running = true
	func() {
		defer func() { e.running = false }()
		rt.withListener(e, func() {
			cleanup = e.fn()
		})
	}()

	if e.isDisposed {
		// The body disposed its own scope.
		e.clearSources()
		if cleanup != nil {
			rt.Untrack(cleanup)
		}
		return
	}
	e.cleanup = cleanup
}

func (e *Effect) addSource(b *signalBase) bool {
	for _, s := range e.sources {
		if s == b {
			return false
		}
	}
	e.sources = append(e.sources, b)
	return true
}

func (e *Effect) disposed() bool {
	return e.isDisposed
}

func (e *Effect) clearSources() {
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	clear(e.sources)
	e.sources = e.sources[:0]
}

// dispose cleans up the effect and unsubscribes from all sources.
func (e *Effect) dispose() {
	if e.isDisposed {
		return
	}
	e.isDisposed = true
	e.rt.stats.Effects--

	e.clearSources()
	e.sources = nil

	// A running body's cleanup is handled when run unwinds.
	if e.cleanup != nil && !e.running {
		cleanup := e.cleanup
		e.cleanup = nil
		e.rt.Untrack(cleanup)
	}
}

// OnUpdate creates an effect that tracks deps on every run but calls
// callback only on runs after the first.
//
// Example:
//
//	reactive.OnUpdate(scope,
//	    func() { _ = count.Get() },
//	    func() { fmt.Println("count changed") },
//	)
func OnUpdate(s *Scope, deps func(), callback func()) *Effect {
	first := true
	return CreateEffect(s, func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		s.rt.Untrack(callback)
		return nil
	})
}

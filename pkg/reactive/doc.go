// Package reactive provides the fine-grained reactive graph that drives
// surgical updates to a rendered tree.
//
// Reading a Signal while a computation runs subscribes that computation to
// the signal. Writing the signal re-runs every subscriber synchronously, in
// the order the subscriptions were registered, before Set returns.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	rt := reactive.NewRuntime()
//	root := rt.NewRoot()
//	count := reactive.NewSignal(root, 0)
//	count.Get()   // read, subscribes the running computation
//	count.Set(5)  // write, re-runs subscribers
//	count.Update(func(n int) int { return n + 1 })
//
// Effect is a computation re-run whenever a signal it read changes:
//
//	reactive.CreateEffect(root, func() reactive.Cleanup {
//	    fmt.Println("count is", count.Get())
//	    return nil
//	})
//
// Memo[T] caches a derived value and is itself readable like a signal.
// Selector[K] answers "is k the selected key" while notifying only the
// readers of the previous and the next key.
//
// # Scopes
//
// Every signal and computation is owned by a Scope. Disposing a scope
// disposes its child scopes depth-first, unsubscribes its computations from
// every signal they read and releases its signals. Using a signal or
// computation of a disposed scope panics with an *Error wrapping ErrDisposed.
//
// # Threading
//
// A Runtime is single-threaded. Hosts that touch one graph from several
// goroutines must funnel every access through Runtime.Do, which serialises
// them behind one mutex per graph.
package reactive

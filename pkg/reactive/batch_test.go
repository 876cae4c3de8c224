package reactive

import "testing"

func TestBatchRunsEffectOnce(t *testing.T) {
	rt, root := newTestRoot()
	a := NewSignal(root, 0)
	b := NewSignal(root, 0)

	var sums []int
	CreateEffect(root, func() Cleanup {
		sums = append(sums, a.Get()+b.Get())
		return nil
	})

	rt.Batch(func() {
		a.Set(1)
		b.Set(2)
		rt.Batch(func() {
			a.Set(10)
		})
		if len(sums) != 1 {
			t.Errorf("effect ran inside batch")
		}
	})

	if len(sums) != 2 || sums[1] != 12 {
		t.Errorf("sums = %v, want [0 12]", sums)
	}
}

func TestBatchMemoInvalidatesImmediately(t *testing.T) {
	rt, root := newTestRoot()
	a := NewSignal(root, 1)
	m := NewMemo(root, func() int { return a.Get() * 3 })
	_ = m.Get()

	rt.Batch(func() {
		a.Set(2)
		if m.Peek() != 6 {
			t.Errorf("memo read inside batch = %d, want 6", m.Peek())
		}
	})
}

func TestBatchPanicDropsQueue(t *testing.T) {
	rt, root := newTestRoot()
	a := NewSignal(root, 0)
	runs := 0
	CreateEffect(root, func() Cleanup {
		_ = a.Get()
		runs++
		return nil
	})

	func() {
		defer func() { _ = recover() }()
		rt.Batch(func() {
			a.Set(1)
			panic("boom")
		})
	}()

	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
	a.Set(2)
	if runs != 2 {
		t.Errorf("effect not re-armed after dropped batch: runs = %d", runs)
	}
}

func TestUntrack(t *testing.T) {
	rt, root := newTestRoot()
	a := NewSignal(root, 0)
	b := NewSignal(root, 0)
	e := CreateEffect(root, func() Cleanup {
		_ = a.Get()
		rt.Untrack(func() { _ = b.Get() })
		return nil
	})
	b.Set(1)
	if e.Runs() != 1 || e.Dependencies() != 1 {
		t.Errorf("runs=%d deps=%d, want 1/1", e.Runs(), e.Dependencies())
	}
}

func TestDoSerialisesAccess(t *testing.T) {
	rt, root := newTestRoot()
	s := NewSignal(root, 0)

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 100; j++ {
				rt.Do(func() { s.Update(func(n int) int { return n + 1 }) })
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
	var got int
	rt.Do(func() { got = s.Peek() })
	if got != 800 {
		t.Errorf("got %d, want 800", got)
	}
}

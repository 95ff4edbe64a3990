package event

import "testing"

func TestChangeEmitterFiresImmediatelyOutsideScope(t *testing.T) {
	e := NewChangeEmitter[int]()
	var got []int
	e.Subscribe(func(v int) { got = append(got, v) })

	e.Fire(1)
	e.Fire(2)
	if len(got) != 2 {
		t.Fatalf("got %v, want two immediate fires", got)
	}
}

func TestChangeEmitterQueuesUntilOutermostEnd(t *testing.T) {
	e := NewChangeEmitter[int]()
	var got []int
	e.Subscribe(func(v int) { got = append(got, v) })

	e.BeginDeferred()
	e.BeginDeferred()
	e.Fire(1)
	e.Fire(2)
	if len(got) != 0 {
		t.Fatalf("got %v before outermost EndDeferred, want none", got)
	}
	e.EndDeferred()
	if len(got) != 0 {
		t.Fatalf("got %v after inner EndDeferred, want none (still nested)", got)
	}
	e.EndDeferred()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("got %v, want [1 2] in FIFO order", got)
	}
}

func TestFlagEmitterCollapsesMultipleFires(t *testing.T) {
	e := NewFlagEmitter()
	count := 0
	e.Subscribe(func() { count++ })

	e.BeginDeferred()
	e.Fire()
	e.Fire()
	e.Fire()
	e.EndDeferred()

	if count != 1 {
		t.Fatalf("count = %d, want 1 (collapsed)", count)
	}
}

func TestFlagEmitterNoFireMeansNoDispatch(t *testing.T) {
	e := NewFlagEmitter()
	count := 0
	e.Subscribe(func() { count++ })

	e.BeginDeferred()
	e.EndDeferred()

	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestFlagEmitterFiresImmediatelyOutsideScope(t *testing.T) {
	e := NewFlagEmitter()
	count := 0
	e.Subscribe(func() { count++ })
	e.Fire()
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}
}

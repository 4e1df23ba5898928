package typeid

import (
	"sync"
	"testing"
)

type alpha struct{}
type beta struct{ n int }

func TestForAssignsMonotonicIDs(t *testing.T) {
	r := NewRegistry()

	a := For[alpha](r)
	b := For[beta](r)
	if a == Invalid || b == Invalid {
		t.Fatalf("expected non-zero ids, got %d and %d", a, b)
	}
	if b != a+1 {
		t.Errorf("expected beta id %d, got %d", a+1, b)
	}
	if again := For[alpha](r); again != a {
		t.Errorf("alpha id changed from %d to %d", a, again)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 registered types, got %d", r.Len())
	}
}

func TestPointerAndValueTypesDiffer(t *testing.T) {
	r := NewRegistry()
	if For[alpha](r) == For[*alpha](r) {
		t.Error("alpha and *alpha share an id")
	}
}

func TestNameAndLookup(t *testing.T) {
	r := NewRegistry()
	id := For[beta](r)

	if got := r.Name(id); got != "typeid.beta" {
		t.Errorf("Name(%d) = %q", id, got)
	}
	if got := r.Name(Invalid); got != "" {
		t.Errorf("Name(Invalid) = %q, want empty", got)
	}
	if got := r.Name(id + 10); got != "" {
		t.Errorf("Name(unknown) = %q, want empty", got)
	}
}

func TestConcurrentRegistrationIsStable(t *testing.T) {
	r := NewRegistry()
	const workers = 16

	ids := make([]ID, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ids[i] = For[alpha](r)
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("worker %d saw id %d, worker 0 saw %d", i, ids[i], ids[0])
		}
	}
	if r.Len() != 1 {
		t.Errorf("expected a single registration, got %d", r.Len())
	}
}

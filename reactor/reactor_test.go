package reactor_test

import (
	"sync"
	"testing"

	"github.com/shulhi/inferno/reactor"
)

func TestDoRunsOnOneGoroutineInOrder(t *testing.T) {
	r := reactor.New(16)
	defer r.Stop()

	var mu sync.Mutex
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		if err := r.Do(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
		}); err != nil {
			t.Fatalf("Do: %v", err)
		}
	}
	for i, v := range order {
		if v != i {
			t.Fatalf("order = %v, want 0..4 in sequence", order)
		}
	}
}

func TestDoRecoversPanicAsError(t *testing.T) {
	r := reactor.New(1)
	defer r.Stop()

	err := r.Do(func() { panic("boom") })
	if err == nil {
		t.Fatal("expected an error from a panicking Action")
	}
}

func TestSubmitIsFireAndForgetButSerialized(t *testing.T) {
	r := reactor.New(16)
	defer r.Stop()

	var mu sync.Mutex
	var seen []int
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		r.Submit(func() {
			mu.Lock()
			seen = append(seen, i)
			mu.Unlock()
			if i == 9 {
				close(done)
			}
		})
	}
	<-done
	if len(seen) != 10 {
		t.Fatalf("got %d actions run, want 10", len(seen))
	}
	for i, v := range seen {
		if v != i {
			t.Fatalf("seen = %v, want strictly increasing order", seen)
		}
	}
}

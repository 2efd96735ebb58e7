package telemetry_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/shulhi/inferno/telemetry"
)

func TestTracerRecordIsAppendOnly(t *testing.T) {
	tr := telemetry.NewTracer("test")
	tr.Record("eval", "started")
	tr.Record("eval", "finished")

	events := tr.Events()
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Message != "started" || events[1].Message != "finished" {
		t.Errorf("got %v", events)
	}
}

func TestTracerStringRendersAllEvents(t *testing.T) {
	tr := telemetry.NewTracer("test")
	tr.Record("reactor", "submit")
	s := tr.String()
	if !strings.Contains(s, "reactor") || !strings.Contains(s, "submit") {
		t.Errorf("got %q", s)
	}
}

func TestTracerConcurrentRecord(t *testing.T) {
	tr := telemetry.NewTracer("test")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record("c", "event")
		}()
	}
	wg.Wait()
	if len(tr.Events()) != 50 {
		t.Errorf("got %d events, want 50", len(tr.Events()))
	}
}

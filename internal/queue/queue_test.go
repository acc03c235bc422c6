package queue

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/chronostack/chronostack/internal/chronology"
	"github.com/chronostack/chronostack/internal/config"
	"github.com/chronostack/chronostack/internal/dispatch"
	"github.com/chronostack/chronostack/internal/metrics"
	"github.com/chronostack/chronostack/internal/store"
)

// fakeDeliverer records delivered results and optionally fails them all.
type fakeDeliverer struct {
	mu        sync.Mutex
	delivered []dispatch.Result
	err       error
}

func (f *fakeDeliverer) Deliver(_ context.Context, res dispatch.Result) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.delivered = append(f.delivered, res)
	return nil
}

func (f *fakeDeliverer) results() []dispatch.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dispatch.Result, len(f.delivered))
	copy(out, f.delivered)
	return out
}

func newQueue(d Deliverer, bufferSize int) (*Queue, *store.Store) {
	st := store.New(time.Hour)
	fb := chronology.NewFallbackWithSource(rand.New(rand.NewSource(1)))
	q := New(config.QueueConfig{Workers: 2, BufferSize: bufferSize}, fb, d, st, metrics.New())
	return q, st
}

// waitFor polls cond until it returns true or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestQueue_ProcessesJob(t *testing.T) {
	d := &fakeDeliverer{}
	q, st := newQueue(d, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	taskID, err := q.Enqueue(Job{RequestID: 7, Text: "thou hath dost verily", Purpose: "test"})
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if taskID == "" {
		t.Error("Enqueue returned empty task ID")
	}

	waitFor(t, func() bool { return len(d.results()) == 1 })

	res := d.results()[0]
	if res.RequestID != 7 || res.FromYear != 1300 || res.ToYear != 1350 || res.MatchedLayers != 4 {
		t.Errorf("delivered result = %+v, want {7 1300 1350 4}", res)
	}

	e, ok := st.Get(7)
	if !ok {
		t.Fatal("record not stored")
	}
	if e.Record.Status != store.StatusSuccess {
		t.Errorf("record status = %q, want success", e.Record.Status)
	}
	if e.Record.Purpose != "test" {
		t.Errorf("record purpose = %q, want test", e.Record.Purpose)
	}
}

func TestQueue_FallbackAppliedForUnmatchedText(t *testing.T) {
	d := &fakeDeliverer{}
	q, _ := newQueue(d, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	if _, err := q.Enqueue(Job{RequestID: 1, Text: "completely mundane gardening words here"}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	waitFor(t, func() bool { return len(d.results()) == 1 })

	res := d.results()[0]
	if res.MatchedLayers < 1 || res.MatchedLayers > 5 {
		t.Errorf("fallback matched layers = %d, want within [1, 5]", res.MatchedLayers)
	}
	switch res.FromYear {
	case 1300, 1500, 1700, 1900:
	default:
		t.Errorf("fallback year = %d, not an anchor", res.FromYear)
	}
	if res.ToYear != res.FromYear+50 {
		t.Errorf("range end = %d, want from_year + 50", res.ToYear)
	}
}

func TestQueue_DeliveryExhaustionMarksRecordError(t *testing.T) {
	d := &fakeDeliverer{err: dispatch.ErrRetriesExhausted}
	q, st := newQueue(d, 10)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go q.Run(ctx)

	if _, err := q.Enqueue(Job{RequestID: 3, Text: "thou hath dost verily"}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	waitFor(t, func() bool {
		e, ok := st.Get(3)
		return ok && e.Record.Status == store.StatusError
	})

	e, _ := st.Get(3)
	if e.Record.Error == "" {
		t.Error("record error message is empty")
	}
	// The computed result survives even though delivery failed.
	if e.Record.FromYear != 1300 || e.Record.MatchedLayers != 4 {
		t.Errorf("record = %+v, want computed 1300/4 result", e.Record)
	}
}

func TestQueue_EnqueueRejectsWhenFull(t *testing.T) {
	d := &fakeDeliverer{}
	q, _ := newQueue(d, 1) // workers not started — buffer fills immediately

	if _, err := q.Enqueue(Job{RequestID: 1, Text: "x"}); err != nil {
		t.Fatalf("first Enqueue: %v", err)
	}
	_, err := q.Enqueue(Job{RequestID: 2, Text: "y"})
	if !errors.Is(err, ErrFull) {
		t.Fatalf("second Enqueue error = %v, want ErrFull", err)
	}
}

func TestQueue_RunStopsOnCancel(t *testing.T) {
	d := &fakeDeliverer{}
	q, _ := newQueue(d, 10)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

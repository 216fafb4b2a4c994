package parallel

import (
	"context"
	"sync/atomic"
	"testing"
)

func TestPoolRunsEveryTask(t *testing.T) {
	p := NewPool(4)
	defer p.Close()
	var ran atomic.Int64
	for i := 0; i < 100; i++ {
		if err := p.Submit(context.Background(), func() { ran.Add(1) }); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}
	p.Wait()
	if ran.Load() != 100 {
		t.Fatalf("ran %d tasks, want 100", ran.Load())
	}
}

func TestPoolSubmitHonorsContext(t *testing.T) {
	p := NewPool(1)
	defer p.Close()
	block := make(chan struct{})
	// Saturate the single worker and its queue.
	p.Submit(context.Background(), func() { <-block })
	for i := 0; i < 2; i++ {
		p.Submit(context.Background(), func() {})
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Submit(ctx, func() {}); err == nil {
		t.Fatalf("expected a context error under backpressure")
	}
	close(block)
	p.Wait()
}

func TestPoolCloseIsIdempotent(t *testing.T) {
	p := NewPool(2)
	p.Submit(context.Background(), func() {})
	p.Wait()
	p.Close()
	p.Close()
}

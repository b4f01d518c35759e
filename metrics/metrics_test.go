package metrics

import (
	"sync"
	"testing"
)

func TestCounterAdd(t *testing.T) {
	c := NewCounter("test.counter")
	c.Inc()
	c.Add(4)
	c.Add(-10) // ignored
	if c.Value() != 5 {
		t.Fatalf("Value = %d, want 5", c.Value())
	}
	if c.Name() != "test.counter" {
		t.Fatalf("Name = %q", c.Name())
	}
}

func TestGaugeSetIncDec(t *testing.T) {
	g := NewGauge("test.gauge")
	g.Set(10)
	g.Inc()
	g.Dec()
	g.Dec()
	if g.Value() != 9 {
		t.Fatalf("Value = %d, want 9", g.Value())
	}
}

func TestRegistryGetOrCreate(t *testing.T) {
	r := NewRegistry()
	a := r.Counter("x")
	b := r.Counter("x")
	if a != b {
		t.Fatal("same name should return the same counter")
	}
	a.Inc()

	snap := r.Snapshot()
	if snap["x"] != 1 {
		t.Fatalf("snapshot[x] = %d, want 1", snap["x"])
	}
}

func TestCounterConcurrent(t *testing.T) {
	c := NewCounter("concurrent")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()
	if c.Value() != 8000 {
		t.Fatalf("Value = %d, want 8000", c.Value())
	}
}

package entropy

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// overlapGenerator records whether two GetBytes calls ever ran at once.
type overlapGenerator struct {
	active  atomic.Int32
	overlap atomic.Bool
	calls   atomic.Int32
}

func (g *overlapGenerator) GetBytes(dst []byte) error {
	if g.active.Add(1) > 1 {
		g.overlap.Store(true)
	}
	g.calls.Add(1)
	time.Sleep(50 * time.Microsecond)
	for i := range dst {
		dst[i] = 0xAB
	}
	g.active.Add(-1)
	return nil
}

type failingGenerator struct{}

func (failingGenerator) GetBytes([]byte) error { return errors.New("not seeded") }

func TestBridge_ConcurrentCallsNeverInterleave(t *testing.T) {
	gen := &overlapGenerator{}
	b := NewBridge(gen)

	const workers = 16
	const perWorker = 20

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 32)
			for range perWorker {
				if n := b.Fill(buf); n != len(buf) {
					t.Errorf("Fill() = %d, want %d", n, len(buf))
				}
			}
		}()
	}
	wg.Wait()

	if gen.overlap.Load() {
		t.Error("two bridge draws ran concurrently")
	}
	if got := gen.calls.Load(); got != workers*perWorker {
		t.Errorf("generator calls = %d, want %d", got, workers*perWorker)
	}
}

func TestBridge_FailureReturnsZero(t *testing.T) {
	b := NewBridge(failingGenerator{})
	if n := b.Fill(make([]byte, 16)); n != 0 {
		t.Errorf("Fill() = %d, want 0", n)
	}
}

func TestBridge_OverDRBG(t *testing.T) {
	d := NewDRBG()
	if err := d.AddEntropySource(PlatformSource, DefaultThreshold); err != nil {
		t.Fatalf("AddEntropySource() error = %v", err)
	}

	b := NewBridge(d)
	if n := b.Fill(make([]byte, 48)); n != 48 {
		t.Errorf("Fill() = %d, want 48", n)
	}
}

func TestLegacySlot(t *testing.T) {
	var slot LegacySlot

	if n := slot.Random(make([]byte, 8)); n != 0 {
		t.Errorf("Random() without rng = %d, want 0", n)
	}

	if err := slot.SetRNG(nil); !errors.Is(err, ErrNilRNG) {
		t.Errorf("SetRNG(nil) error = %v, want ErrNilRNG", err)
	}

	b := NewBridge(&overlapGenerator{})
	if err := slot.SetRNG(b.Fill); err != nil {
		t.Fatalf("SetRNG() error = %v", err)
	}

	buf := make([]byte, 8)
	if n := slot.Random(buf); n != 8 || buf[0] != 0xAB {
		t.Errorf("Random() = %d, buf[0] = %#x", n, buf[0])
	}

	if err := slot.SetRNG(b.Fill); !errors.Is(err, ErrSlotOccupied) {
		t.Errorf("second SetRNG() error = %v, want ErrSlotOccupied", err)
	}
}

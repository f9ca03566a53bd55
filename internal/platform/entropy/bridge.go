package entropy

import "sync"

// RNGFunc fills dest and returns the number of bytes written, 0 on failure.
// It is the callback shape the legacy ECC signer expects.
type RNGFunc func(dest []byte) int

// Generator produces random bytes.
type Generator interface {
	GetBytes(dst []byte) error
}

// LegacySigner accepts an RNG for its key generation and signing.
type LegacySigner interface {
	SetRNG(fn RNGFunc) error
}

// Bridge serialises legacy signer draws on the DRBG. The lock is held for
// exactly one draw.
type Bridge struct {
	mu  sync.Mutex
	gen Generator
}

// NewBridge returns a bridge over gen.
func NewBridge(gen Generator) *Bridge {
	return &Bridge{gen: gen}
}

// Fill writes len(dest) random bytes to dest and returns len(dest).
// If the generator fails it returns 0.
func (b *Bridge) Fill(dest []byte) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.gen.GetBytes(dest); err != nil {
		return 0
	}
	return len(dest)
}

// LegacySlot is the RNG slot of the legacy ECC signer. It holds one RNG,
// installed once.
type LegacySlot struct {
	mu sync.RWMutex
	fn RNGFunc
}

// SetRNG installs fn. A slot that already holds an RNG returns ErrSlotOccupied.
func (s *LegacySlot) SetRNG(fn RNGFunc) error {
	if fn == nil {
		return ErrNilRNG
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fn != nil {
		return ErrSlotOccupied
	}
	s.fn = fn
	return nil
}

// Random draws from the installed RNG. Without one it returns 0.
func (s *LegacySlot) Random(dest []byte) int {
	s.mu.RLock()
	fn := s.fn
	s.mu.RUnlock()

	if fn == nil {
		return 0
	}
	return fn(dest)
}

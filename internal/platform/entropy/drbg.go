package entropy

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/hkdf"
)

// Generator limits.
const (
	// DefaultThreshold is the number of bytes a source must supply before
	// the generator produces output.
	DefaultThreshold = 16

	// MaxSources is the number of sources a DRBG accepts.
	MaxSources = 20

	// MaxThreshold is the largest threshold a source may register with.
	MaxThreshold = 128

	// ReseedInterval is the number of draws between automatic reseeds.
	ReseedInterval = 10000

	// maxEmptyPolls is how many consecutive zero-length reads a source may
	// return before seeding gives up on it.
	maxEmptyPolls = 256

	keySize = chacha20.KeySize
)

var seedInfo = []byte("graylogic-device|drbg|seed")

type source struct {
	fn        SourceFunc
	threshold int
}

// DRBG is a ChaCha20 generator seeded through HKDF-SHA256 from the
// registered entropy sources. After each draw the key is replaced with
// fresh keystream, so earlier output cannot be recovered from the state.
//
// All methods are safe for concurrent use.
type DRBG struct {
	mu      sync.Mutex
	sources []source
	key     [keySize]byte
	seeded  bool
	draws   uint64
}

// NewDRBG returns an unseeded generator with no sources.
func NewDRBG() *DRBG {
	return &DRBG{}
}

// AddEntropySource registers fn. Before the next draw fn must deliver at
// least threshold bytes. Registering a source forces a reseed.
func (d *DRBG) AddEntropySource(fn SourceFunc, threshold int) error {
	if fn == nil {
		return fmt.Errorf("%w: nil source", ErrSourceFailed)
	}
	if threshold < 1 || threshold > MaxThreshold {
		return fmt.Errorf("%w: %d", ErrInvalidThreshold, threshold)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.sources) >= MaxSources {
		return ErrTooManySources
	}
	d.sources = append(d.sources, source{fn: fn, threshold: threshold})
	d.seeded = false
	return nil
}

// Sources returns the number of registered sources.
func (d *DRBG) Sources() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sources)
}

// Reseed gathers fresh entropy from every source now.
func (d *DRBG) Reseed() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.reseedLocked()
}

// GetBytes fills dst with random bytes, seeding first when needed.
// On error dst is left zeroed.
func (d *DRBG) GetBytes(dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.seeded || d.draws >= ReseedInterval {
		if err := d.reseedLocked(); err != nil {
			clear(dst)
			return err
		}
	}

	var nonce [chacha20.NonceSize]byte
	binary.LittleEndian.PutUint64(nonce[4:], d.draws)

	c, err := chacha20.NewUnauthenticatedCipher(d.key[:], nonce[:])
	if err != nil {
		clear(dst)
		return fmt.Errorf("creating stream: %w", err)
	}

	var next [keySize]byte
	c.XORKeyStream(next[:], next[:])
	clear(dst)
	c.XORKeyStream(dst, dst)

	d.key = next
	d.draws++
	return nil
}

// Read implements io.Reader over GetBytes.
func (d *DRBG) Read(p []byte) (int, error) {
	if err := d.GetBytes(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (d *DRBG) reseedLocked() error {
	if len(d.sources) == 0 {
		return ErrNotSeeded
	}

	var ikm []byte
	if d.seeded {
		ikm = append(ikm, d.key[:]...)
	}
	for i, s := range d.sources {
		b, err := gather(s)
		if err != nil {
			return fmt.Errorf("source %d: %w", i, err)
		}
		ikm = append(ikm, b...)
	}

	r := hkdf.New(sha256.New, ikm, nil, seedInfo)
	if _, err := io.ReadFull(r, d.key[:]); err != nil {
		return fmt.Errorf("deriving seed: %w", err)
	}
	clear(ikm)

	d.seeded = true
	d.draws = 0
	return nil
}

// gather polls s until it has supplied its threshold.
func gather(s source) ([]byte, error) {
	out := make([]byte, 0, s.threshold)
	buf := make([]byte, s.threshold)
	empty := 0

	for len(out) < s.threshold {
		n, err := s.fn(buf[:s.threshold-len(out)])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceFailed, err)
		}
		if n <= 0 {
			empty++
			if empty >= maxEmptyPolls {
				return nil, fmt.Errorf("%w: no data after %d polls", ErrSourceFailed, empty)
			}
			continue
		}
		empty = 0
		out = append(out, buf[:n]...)
	}

	return out, nil
}
